package asset

import (
	"net/url"
	"strconv"

	errors "github.com/minjae-dev/asset-management/internal"
	"github.com/minjae-dev/asset-management/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

// CreateAssetDTO is the request payload for registering an asset.
// PurchasePrice arrives as a decimal string to avoid float rounding
// on money values.
type CreateAssetDTO struct {
	Name          string `json:"name"`
	AssetType     string `json:"asset_type"`
	Category      string `json:"category,omitempty"`
	Manufacturer  string `json:"manufacturer,omitempty"`
	Model         string `json:"model,omitempty"`
	SerialNumber  string `json:"serial_number,omitempty"`
	PurchaseDate  string `json:"purchase_date,omitempty"`
	PurchasePrice string `json:"purchase_price,omitempty"`
	Location      string `json:"location,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

func (dto CreateAssetDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(200)
	v.Field("asset_type", dto.AssetType).Required().OneOf([]string{TypeHardware, TypeSoftware}, errors.ErrCodeInvalidAssetType)
	v.Field("purchase_date", dto.PurchaseDate).ISODate()
	v.Field("notes", dto.Notes).MaxLength(500)
	if err := v.Validate(); err != nil {
		return err
	}
	if dto.PurchasePrice != "" {
		price, err := decimal.NewFromString(dto.PurchasePrice)
		if err != nil {
			return errors.NewValidationFieldError("purchase_price", "purchase_price must be a decimal number", errors.ErrCodeValidationFailed)
		}
		if price.IsNegative() {
			return errors.NewValidationFieldError("purchase_price", "purchase_price cannot be negative", errors.ErrCodeValidationFailed)
		}
	}
	return nil
}

func (dto CreateAssetDTO) Price() decimal.Decimal {
	if dto.PurchasePrice == "" {
		return decimal.Zero
	}
	price, err := decimal.NewFromString(dto.PurchasePrice)
	if err != nil {
		return decimal.Zero
	}
	return price
}

// UpdateAssetDTO edits an asset. Empty fields are left unchanged.
type UpdateAssetDTO struct {
	Name          string `json:"name,omitempty"`
	Category      string `json:"category,omitempty"`
	Manufacturer  string `json:"manufacturer,omitempty"`
	Model         string `json:"model,omitempty"`
	SerialNumber  string `json:"serial_number,omitempty"`
	Status        string `json:"status,omitempty"`
	PurchaseDate  string `json:"purchase_date,omitempty"`
	PurchasePrice string `json:"purchase_price,omitempty"`
	Location      string `json:"location,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

func (dto UpdateAssetDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).MaxLength(200)
	v.Field("status", dto.Status).OneOf([]string{StatusAvailable, StatusInUse, StatusRepair, StatusRetired}, errors.ErrCodeInvalidStatus)
	v.Field("purchase_date", dto.PurchaseDate).ISODate()
	v.Field("notes", dto.Notes).MaxLength(500)
	if err := v.Validate(); err != nil {
		return err
	}
	if dto.PurchasePrice != "" {
		if _, err := decimal.NewFromString(dto.PurchasePrice); err != nil {
			return errors.NewValidationFieldError("purchase_price", "purchase_price must be a decimal number", errors.ErrCodeValidationFailed)
		}
	}
	return nil
}

// ListQuery filters the asset catalog.
type ListQuery struct {
	Search    string
	AssetType string
	Status    string
	Page      int
	PerPage   int
}

func ParseListQuery(values url.Values) ListQuery {
	q := ListQuery{
		Search:    values.Get("q"),
		AssetType: values.Get("asset_type"),
		Status:    values.Get("status"),
		Page:      1,
		PerPage:   20,
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if perPage, err := strconv.Atoi(values.Get("per_page")); err == nil && perPage > 0 && perPage <= 100 {
		q.PerPage = perPage
	}
	return q
}

// AssetResponse decorates an asset with its status display label.
type AssetResponse struct {
	*Asset
	StatusLabel string `json:"status_label"`
}

func NewAssetResponse(a *Asset) AssetResponse {
	return AssetResponse{Asset: a, StatusLabel: StatusLabel(a.Status)}
}

type ListResponse struct {
	Data       []AssetResponse `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
