package model

import "time"

const (
	OutcomeRendered = "rendered"
	OutcomeError    = "error"
)

type UploadAudit struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WorkspaceID string    `gorm:"size:64;not null;index" json:"workspace_id"`
	Filename    string    `gorm:"size:256;not null" json:"filename"`
	SizeBytes   int64     `gorm:"not null" json:"size_bytes"`
	Digest      string    `gorm:"size:64;index" json:"digest"`
	Outcome     string    `gorm:"size:16;not null;index" json:"outcome"`
	Error       string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
