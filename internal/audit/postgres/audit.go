package postgres

import (
	"gorm.io/gorm"

	"github.com/minjae-dev/asset-management/internal/audit"
	auditDatamodel "github.com/minjae-dev/asset-management/internal/core/datamodel/audit"
)

// AuditRepository implements the audit.Repository interface using GORM
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.Repository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(log *audit.Log) error {
	dm := audit.ToDataModel(log)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	log.ID = dm.ID
	log.CreatedAt = dm.CreatedAt
	return nil
}

// List returns matching rows newest first together with the total
// match count before pagination.
func (r *AuditRepository) List(query audit.ListQuery) ([]*audit.Log, int, error) {
	db := r.db.Model(&auditDatamodel.AuditLog{})

	if query.Action != "" {
		db = db.Where("action = ?", query.Action)
	}
	if query.EntityType != "" {
		db = db.Where("entity_type = ?", query.EntityType)
	}
	if query.EntityID != "" {
		db = db.Where("entity_id = ?", query.EntityID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.PerPage

	var dms []*auditDatamodel.AuditLog
	err := db.Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(query.PerPage).
		Find(&dms).Error
	if err != nil {
		return nil, 0, err
	}

	return audit.FromDataModelSlice(dms), int(total), nil
}
