package asset

import (
	"time"

	"github.com/shopspring/decimal"

	assetDatamodel "github.com/minjae-dev/asset-management/internal/core/datamodel/asset"
)

const (
	TypeHardware = "hardware"
	TypeSoftware = "software"
)

const (
	StatusAvailable = "available"
	StatusInUse     = "in_use"
	StatusRepair    = "repair"
	StatusRetired   = "retired"
)

var statusLabels = map[string]string{
	StatusAvailable: "사용가능",
	StatusInUse:     "사용중",
	StatusRepair:    "수리중",
	StatusRetired:   "폐기",
}

// StatusLabel returns the Korean display label for an asset status,
// falling back to the raw code.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

func ValidStatus(status string) bool {
	_, ok := statusLabels[status]
	return ok
}

func ValidType(assetType string) bool {
	return assetType == TypeHardware || assetType == TypeSoftware
}

type Asset struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	AssetType     string          `json:"asset_type"`
	Category      string          `json:"category,omitempty"`
	Manufacturer  string          `json:"manufacturer,omitempty"`
	Model         string          `json:"model,omitempty"`
	SerialNumber  string          `json:"serial_number,omitempty"`
	Status        string          `json:"status"`
	PurchaseDate  string          `json:"purchase_date,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Location      string          `json:"location,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

const dateLayout = "2006-01-02"

func (a *Asset) IsAssignable() bool {
	return a.Status == StatusAvailable
}

func ToDataModel(a *Asset) *assetDatamodel.Asset {
	dm := &assetDatamodel.Asset{
		ID:            a.ID,
		Name:          a.Name,
		AssetType:     a.AssetType,
		Category:      a.Category,
		Manufacturer:  a.Manufacturer,
		Model:         a.Model,
		SerialNumber:  a.SerialNumber,
		Status:        a.Status,
		PurchasePrice: a.PurchasePrice,
		Location:      a.Location,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if a.PurchaseDate != "" {
		if purchased, err := time.Parse(dateLayout, a.PurchaseDate); err == nil {
			dm.PurchaseDate = &purchased
		}
	}
	return dm
}

func FromDataModel(dm *assetDatamodel.Asset) *Asset {
	a := &Asset{
		ID:            dm.ID,
		Name:          dm.Name,
		AssetType:     dm.AssetType,
		Category:      dm.Category,
		Manufacturer:  dm.Manufacturer,
		Model:         dm.Model,
		SerialNumber:  dm.SerialNumber,
		Status:        dm.Status,
		PurchasePrice: dm.PurchasePrice,
		Location:      dm.Location,
		Notes:         dm.Notes,
		CreatedAt:     dm.CreatedAt,
		UpdatedAt:     dm.UpdatedAt,
	}
	if dm.PurchaseDate != nil {
		a.PurchaseDate = dm.PurchaseDate.Format(dateLayout)
	}
	return a
}

func FromDataModelSlice(dms []*assetDatamodel.Asset) []*Asset {
	result := make([]*Asset, len(dms))
	for i, dm := range dms {
		result[i] = FromDataModel(dm)
	}
	return result
}
