package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"insight-console/internal/model"
	"insight-console/internal/pkg/fingerprint"
	"insight-console/internal/region"
)

// NoFileNotice is the blocking notice shown when the form is submitted
// without a file.
const NoFileNotice = "Please select a PDF file"

var ErrNoFileSelected = errors.New("no file selected")

type ResumeUploader interface {
	UploadResume(ctx context.Context, filename string, content io.Reader) (*model.UploadResult, error)
}

type UploadView interface {
	UploadLoading() string
	UploadCard(result model.UploadResult) (string, error)
	UploadFailed() string
}

// UploadAuditRecorder receives one entry per upload attempt.
type UploadAuditRecorder interface {
	Record(ctx context.Context, audit model.UploadAudit) error
}

// RecorderFunc adapts a function to UploadAuditRecorder.
type RecorderFunc func(ctx context.Context, audit model.UploadAudit) error

func (f RecorderFunc) Record(ctx context.Context, audit model.UploadAudit) error {
	return f(ctx, audit)
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, model.UploadAudit) error { return nil }

// Upload is one form submission. A nil Content means no file was chosen.
type Upload struct {
	WorkspaceID string
	Filename    string
	Content     io.Reader
}

// UploadHandler sends a selected document to the backend and renders the
// outcome into a region.
type UploadHandler struct {
	uploader ResumeUploader
	view     UploadView
	recorder UploadAuditRecorder
}

func NewUploadHandler(uploader ResumeUploader, view UploadView, recorder UploadAuditRecorder) *UploadHandler {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &UploadHandler{
		uploader: uploader,
		view:     view,
		recorder: recorder,
	}
}

// Submit runs one upload. Only ErrNoFileSelected and region store failures
// are returned; backend failures end up rendered as the failure notice.
func (h *UploadHandler) Submit(ctx context.Context, out region.Region, upload Upload) error {
	if upload.Content == nil || strings.TrimSpace(upload.Filename) == "" {
		return ErrNoFileSelected
	}

	token, err := out.Begin(ctx, h.view.UploadLoading())
	if err != nil {
		return fmt.Errorf("begin upload region failed: %w", err)
	}

	digest := fingerprint.New()
	result, uploadErr := h.uploader.UploadResume(ctx, upload.Filename, io.TeeReader(upload.Content, digest))

	content := h.view.UploadFailed()
	audit := model.UploadAudit{
		WorkspaceID: upload.WorkspaceID,
		Filename:    upload.Filename,
		SizeBytes:   digest.Size(),
		Digest:      digest.Hex(),
		Outcome:     model.OutcomeError,
	}
	if uploadErr == nil {
		card, renderErr := h.view.UploadCard(*result)
		if renderErr != nil {
			uploadErr = renderErr
		} else {
			content = card
			audit.Outcome = model.OutcomeRendered
		}
	}
	if uploadErr != nil {
		log.Printf("upload %q failed: %v", upload.Filename, uploadErr)
		audit.Error = uploadErr.Error()
	}

	if err := h.recorder.Record(ctx, audit); err != nil {
		log.Printf("record upload audit failed: %v", err)
	}

	committed, err := out.Commit(ctx, token, content)
	if err != nil {
		return fmt.Errorf("commit upload region failed: %w", err)
	}
	if !committed {
		log.Printf("upload %q finished after a newer request, response dropped", upload.Filename)
	}
	return nil
}
