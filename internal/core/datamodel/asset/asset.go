package asset

import (
	"time"

	"github.com/shopspring/decimal"
)

type Asset struct {
	ID            string          `gorm:"primaryKey"`
	Name          string          `gorm:"column:name;not null"`
	AssetType     string          `gorm:"column:asset_type;not null"`
	Category      string          `gorm:"column:category"`
	Manufacturer  string          `gorm:"column:manufacturer"`
	Model         string          `gorm:"column:model"`
	SerialNumber  string          `gorm:"column:serial_number;uniqueIndex"`
	Status        string          `gorm:"column:status;not null;default:available"`
	PurchaseDate  *time.Time      `gorm:"column:purchase_date;type:date"`
	PurchasePrice decimal.Decimal `gorm:"column:purchase_price;type:numeric(14,2)"`
	Location      string          `gorm:"column:location"`
	Notes         string          `gorm:"column:notes"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
