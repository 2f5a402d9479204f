package response

import "github.com/gin-gonic/gin"

const (
	CodeOK                = 0
	CodeBadRequest        = 40000
	CodeUnauthorized      = 40100
	CodeNotFound          = 40400
	CodeRegionNotFound    = 40401
	CodePayloadTooLarge   = 41300
	CodeNoFileSelected    = 42200
	CodeInternalServer    = 50000
	CodeRegionUnavailable = 50300
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}

// Fragment writes an HTML fragment for the page to swap in.
func Fragment(c *gin.Context, html string) {
	c.Data(200, "text/html; charset=utf-8", []byte(html))
}
