package assignment

import (
	"time"

	"github.com/minjae-dev/asset-management/internal/core/datamodel/asset"
	"github.com/minjae-dev/asset-management/internal/core/datamodel/employee"
)

type Assignment struct {
	ID           string     `gorm:"primaryKey"`
	EmployeeID   string     `gorm:"column:employee_id;not null;index"`
	AssetID      string     `gorm:"column:asset_id;not null;index"`
	AssetType    string     `gorm:"column:asset_type;not null"`
	AssignedDate time.Time  `gorm:"column:assigned_date;type:date;not null"`
	ReturnDate   *time.Time `gorm:"column:return_date;type:date"`
	Status       string     `gorm:"column:status;not null;default:in_use"`
	Notes        string     `gorm:"column:notes"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID;references:ID"`
	Asset    *asset.Asset       `gorm:"foreignKey:AssetID;references:ID"`
}
