package postgres

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	errors "github.com/minjae-dev/asset-management/internal"
	"github.com/minjae-dev/asset-management/internal/asset"
	assetDatamodel "github.com/minjae-dev/asset-management/internal/core/datamodel/asset"
)

// AssetRepository implements the asset.Repository interface using GORM
type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) asset.Repository {
	return &AssetRepository{db: db}
}

// Create stores a new asset under a type-prefixed sequential ID, HW
// for hardware and SW for software.
func (r *AssetRepository) Create(a *asset.Asset) (*asset.Asset, error) {
	var createdID string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if a.SerialNumber != "" {
			var count int64
			if err := tx.Model(&assetDatamodel.Asset{}).
				Where("serial_number = ?", a.SerialNumber).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return errors.NewConflictError("serial number already registered", errors.ErrCodeDuplicateSerial)
			}
		}

		prefix := "HW"
		if a.AssetType == asset.TypeSoftware {
			prefix = "SW"
		}
		id, err := nextSequentialID(tx, "assets", prefix)
		if err != nil {
			return err
		}

		dm := asset.ToDataModel(a)
		dm.ID = id
		if err := tx.Create(dm).Error; err != nil {
			return err
		}

		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(createdID)
}

func (r *AssetRepository) GetByID(id string) (*asset.Asset, error) {
	var dm assetDatamodel.Asset
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAssetNotFound
		}
		return nil, err
	}
	return asset.FromDataModel(&dm), nil
}

func (r *AssetRepository) GetAll() ([]*asset.Asset, error) {
	var dms []*assetDatamodel.Asset
	err := r.db.Order("id ASC").Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return asset.FromDataModelSlice(dms), nil
}

func (r *AssetRepository) Update(a *asset.Asset) (*asset.Asset, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var current assetDatamodel.Asset
		if err := tx.Where("id = ?", a.ID).First(&current).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAssetNotFound
			}
			return err
		}

		if a.SerialNumber != "" && a.SerialNumber != current.SerialNumber {
			var count int64
			if err := tx.Model(&assetDatamodel.Asset{}).
				Where("serial_number = ? AND id <> ?", a.SerialNumber, a.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return errors.NewConflictError("serial number already registered", errors.ErrCodeDuplicateSerial)
			}
		}

		dm := asset.ToDataModel(a)
		dm.CreatedAt = current.CreatedAt
		dm.UpdatedAt = time.Now()
		return tx.Save(dm).Error
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(a.ID)
}

// Delete refuses while the asset is checked out so assignment rows
// never dangle.
func (r *AssetRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current assetDatamodel.Asset
		if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAssetNotFound
			}
			return err
		}
		if current.Status == asset.StatusInUse {
			return errors.NewConflictError("asset is currently assigned", errors.ErrCodeAssetUnavailable)
		}
		return tx.Where("id = ?", id).Delete(&assetDatamodel.Asset{}).Error
	})
}

func nextSequentialID(tx *gorm.DB, table, prefix string) (string, error) {
	var last string
	err := tx.Table(table).
		Select("id").
		Where("id LIKE ?", prefix+"%").
		Order("length(id) DESC, id DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil {
		return "", err
	}

	n := 0
	if last != "" {
		parsed, perr := strconv.Atoi(strings.TrimPrefix(last, prefix))
		if perr != nil {
			return "", fmt.Errorf("malformed id %q for prefix %s", last, prefix)
		}
		n = parsed
	}
	return fmt.Sprintf("%s%03d", prefix, n+1), nil
}
