package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	appsvc "insight-console/internal/app"
	"insight-console/internal/model"
	"insight-console/internal/region"
	"insight-console/internal/transport/http/middleware"
	"insight-console/internal/transport/http/response"
)

const uploadField = "file"

type AuditLister interface {
	ListByWorkspaceID(workspaceID string, limit int) ([]model.UploadAudit, error)
}

// ConsoleHandler serves the fragments of the upload and history regions.
type ConsoleHandler struct {
	uploads        *appsvc.UploadHandler
	history        *appsvc.HistoryLoader
	regions        region.Store
	audits         AuditLister
	maxUploadBytes int64
}

func NewConsoleHandler(
	uploads *appsvc.UploadHandler,
	history *appsvc.HistoryLoader,
	regions region.Store,
	audits AuditLister,
	maxUploadBytes int64,
) *ConsoleHandler {
	return &ConsoleHandler{
		uploads:        uploads,
		history:        history,
		regions:        regions,
		audits:         audits,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload takes the multipart form field "file" and answers with the
// result region after the backend replied.
func (h *ConsoleHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	file, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrMissingFile):
			noFileSelected(c)
		case errors.As(err, &tooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodePayloadTooLarge, "file too large")
		default:
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid upload form")
		}
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}
	defer f.Close()

	workspaceID := middleware.WorkspaceID(c)
	out := h.regions.Region(workspaceID, region.Result)
	// the backend call outlives a closed tab; the region keeps its result
	ctx := context.WithoutCancel(c.Request.Context())

	err = h.uploads.Submit(ctx, out, appsvc.Upload{
		WorkspaceID: workspaceID,
		Filename:    file.Filename,
		Content:     f,
	})
	if err != nil {
		if errors.Is(err, appsvc.ErrNoFileSelected) {
			noFileSelected(c)
			return
		}
		log.Printf("upload region failed: %v", err)
		response.Error(c, http.StatusServiceUnavailable, response.CodeRegionUnavailable, "result region unavailable")
		return
	}

	h.writeRegion(c, out)
}

// History reloads the history region.
func (h *ConsoleHandler) History(c *gin.Context) {
	out := h.regions.Region(middleware.WorkspaceID(c), region.HistoryList)
	ctx := context.WithoutCancel(c.Request.Context())

	if err := h.history.Load(ctx, out); err != nil {
		log.Printf("history region failed: %v", err)
		response.Error(c, http.StatusServiceUnavailable, response.CodeRegionUnavailable, "history region unavailable")
		return
	}

	h.writeRegion(c, out)
}

// Region returns what a region currently shows, placeholder included.
func (h *ConsoleHandler) Region(c *gin.Context) {
	name := c.Param("region")
	if !region.Known(name) {
		response.Error(c, http.StatusNotFound, response.CodeRegionNotFound, "unknown region")
		return
	}
	h.writeRegion(c, h.regions.Region(middleware.WorkspaceID(c), name))
}

// Uploads lists the upload attempts of the current workspace.
func (h *ConsoleHandler) Uploads(c *gin.Context) {
	if h.audits == nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "upload audit disabled")
		return
	}
	audits, err := h.audits.ListByWorkspaceID(middleware.WorkspaceID(c), 50)
	if err != nil {
		log.Printf("list upload audits failed: %v", err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list uploads failed")
		return
	}
	response.OK(c, audits)
}

func (h *ConsoleHandler) writeRegion(c *gin.Context, out region.Region) {
	content, err := out.Get(c.Request.Context())
	if err != nil {
		log.Printf("read region failed: %v", err)
		response.Error(c, http.StatusServiceUnavailable, response.CodeRegionUnavailable, "region unavailable")
		return
	}
	response.Fragment(c, content)
}

func noFileSelected(c *gin.Context) {
	trigger, _ := json.Marshal(map[string]string{"showAlert": appsvc.NoFileNotice})
	c.Header("HX-Trigger", string(trigger))
	response.Error(c, http.StatusUnprocessableEntity, response.CodeNoFileSelected, appsvc.NoFileNotice)
}
