package asset

import (
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines the data access methods for assets.
type Repository interface {
	Create(a *Asset) (*Asset, error)
	GetByID(id string) (*Asset, error)
	GetAll() ([]*Asset, error)
	Update(a *Asset) (*Asset, error)
	Delete(id string) error
}

// Service handles asset catalog business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List filters the catalog in memory: free-text search over name,
// manufacturer, model, and serial number, then type and status
// predicates, then pagination.
func (s *Service) List(query ListQuery) (*ListResponse, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to load assets", "error", err)
		return nil, err
	}

	visible := make([]*Asset, 0, len(all))
	needle := strings.ToLower(strings.TrimSpace(query.Search))
	for _, a := range all {
		if needle != "" && !matchesSearch(a, needle) {
			continue
		}
		if query.AssetType != "" && a.AssetType != query.AssetType {
			continue
		}
		if query.Status != "" && a.Status != query.Status {
			continue
		}
		visible = append(visible, a)
	}

	total := len(visible)
	start := (query.Page - 1) * query.PerPage
	if start > total {
		start = total
	}
	end := start + query.PerPage
	if end > total {
		end = total
	}

	data := make([]AssetResponse, 0, end-start)
	for _, a := range visible[start:end] {
		data = append(data, NewAssetResponse(a))
	}

	totalPages := 0
	if query.PerPage > 0 {
		totalPages = (total + query.PerPage - 1) / query.PerPage
	}

	return &ListResponse{
		Data: data,
		Pagination: Pagination{
			Page:       query.Page,
			PerPage:    query.PerPage,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func matchesSearch(a *Asset, needle string) bool {
	for _, candidate := range []string{a.ID, a.Name, a.Manufacturer, a.Model, a.SerialNumber} {
		if candidate != "" && strings.Contains(strings.ToLower(candidate), needle) {
			return true
		}
	}
	return false
}

func (s *Service) GetByID(id string) (*Asset, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get asset", "error", err, "asset_id", id)
		return nil, err
	}
	return a, nil
}

func (s *Service) Create(dto CreateAssetDTO) (*Asset, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("asset validation failed", "error", err)
		return nil, err
	}

	a := &Asset{
		Name:          dto.Name,
		AssetType:     dto.AssetType,
		Category:      dto.Category,
		Manufacturer:  dto.Manufacturer,
		Model:         dto.Model,
		SerialNumber:  dto.SerialNumber,
		Status:        StatusAvailable,
		PurchaseDate:  dto.PurchaseDate,
		PurchasePrice: dto.Price(),
		Location:      dto.Location,
		Notes:         dto.Notes,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	created, err := s.repo.Create(a)
	if err != nil {
		s.logger.Error("failed to create asset", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("asset created", "asset_id", created.ID, "asset_type", created.AssetType)
	return created, nil
}

func (s *Service) Update(id string, dto UpdateAssetDTO) (*Asset, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("asset validation failed", "error", err, "asset_id", id)
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != "" {
		existing.Name = dto.Name
	}
	if dto.Category != "" {
		existing.Category = dto.Category
	}
	if dto.Manufacturer != "" {
		existing.Manufacturer = dto.Manufacturer
	}
	if dto.Model != "" {
		existing.Model = dto.Model
	}
	if dto.SerialNumber != "" {
		existing.SerialNumber = dto.SerialNumber
	}
	if dto.Status != "" {
		existing.Status = dto.Status
	}
	if dto.PurchaseDate != "" {
		existing.PurchaseDate = dto.PurchaseDate
	}
	if dto.PurchasePrice != "" {
		if price, perr := parsePrice(dto.PurchasePrice); perr == nil {
			existing.PurchasePrice = price
		}
	}
	if dto.Location != "" {
		existing.Location = dto.Location
	}
	if dto.Notes != "" {
		existing.Notes = dto.Notes
	}

	updated, err := s.repo.Update(existing)
	if err != nil {
		s.logger.Error("failed to update asset", "error", err, "asset_id", id)
		return nil, err
	}

	s.logger.Info("asset updated", "asset_id", updated.ID)
	return updated, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(raw)
}

// Delete removes an asset from the catalog. The repository refuses
// while the asset is checked out.
func (s *Service) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete asset", "error", err, "asset_id", id)
		return err
	}
	s.logger.Info("asset deleted", "asset_id", id)
	return nil
}
