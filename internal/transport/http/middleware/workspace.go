package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"insight-console/internal/config"
	"insight-console/internal/pkg/workspacetoken"
	"insight-console/internal/transport/http/response"
)

const ContextWorkspaceIDKey = "workspace_id"

// Workspace binds every request to a workspace id carried in a signed
// cookie, issuing a fresh one when the cookie is missing or invalid.
func Workspace(cfg config.WorkspaceConfig) gin.HandlerFunc {
	ttl := time.Duration(cfg.ExpireMinute) * time.Minute

	return func(c *gin.Context) {
		if raw, err := c.Cookie(cfg.CookieName); err == nil && raw != "" {
			if workspaceID, err := workspacetoken.Parse(cfg.Secret, raw); err == nil {
				c.Set(ContextWorkspaceIDKey, workspaceID)
				c.Next()
				return
			}
		}

		workspaceID, signed, err := workspacetoken.Issue(cfg.Secret, ttl)
		if err != nil {
			log.Printf("issue workspace token failed: %v", err)
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "workspace unavailable")
			c.Abort()
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, signed, int(ttl/time.Second), "/", "", cfg.SecureCookieOnly, true)
		c.Set(ContextWorkspaceIDKey, workspaceID)
		c.Next()
	}
}

func WorkspaceID(c *gin.Context) string {
	return c.GetString(ContextWorkspaceIDKey)
}
