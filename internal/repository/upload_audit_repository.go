package repository

import (
	"fmt"

	"gorm.io/gorm"

	"insight-console/internal/model"
)

type UploadAuditRepository struct {
	db *gorm.DB
}

func NewUploadAuditRepository(db *gorm.DB) *UploadAuditRepository {
	return &UploadAuditRepository{db: db}
}

func (r *UploadAuditRepository) Create(audit *model.UploadAudit) error {
	if err := r.db.Create(audit).Error; err != nil {
		return fmt.Errorf("create upload audit failed: %w", err)
	}
	return nil
}

func (r *UploadAuditRepository) ListByWorkspaceID(workspaceID string, limit int) ([]model.UploadAudit, error) {
	if limit <= 0 {
		limit = 50
	}
	var audits []model.UploadAudit
	if err := r.db.Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Limit(limit).
		Find(&audits).Error; err != nil {
		return nil, fmt.Errorf("list upload audits failed: %w", err)
	}
	return audits, nil
}
