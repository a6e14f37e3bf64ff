package assignment

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/minjae-dev/asset-management/internal"
	"github.com/minjae-dev/asset-management/internal/core/events"
)

// Repository defines the data access methods for assignments. Create,
// Update, MarkReturned, and Delete also apply the compensating writes
// to the referenced asset's availability and the employee's active
// assignment counter, atomically with the assignment row. Mutating
// methods return the canonical stored record, rehydrated, so callers
// never patch local state themselves.
type Repository interface {
	Create(a *Assignment) (*Assignment, error)
	GetByID(id string) (*Assignment, error)
	GetAll() ([]*Assignment, error)
	Update(a *Assignment) (*Assignment, error)
	MarkReturned(id, returnDate, notes string) (*Assignment, error)
	Delete(id string) error
}

// EventPublisher dispatches domain events to interested handlers.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service handles assignment business logic.
type Service struct {
	repo   Repository
	events EventPublisher
	logger *slog.Logger
}

func NewService(repo Repository, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: publisher,
		logger: logger,
	}
}

// Collect runs the in-memory pipeline over the full collection:
// search, then filters, then sort. Pagination is left to List so that
// statistics and exports consume the same visible collection.
func (s *Service) Collect(query ListQuery) ([]*Assignment, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to load assignments", "error", err)
		return nil, err
	}
	visible := Search(all, query.Search)
	visible = ApplyFilters(visible, query.Filters)
	visible = SortBy(visible, query.SortField, query.SortOrder)
	return visible, nil
}

func (s *Service) List(query ListQuery) (*ListResponse, error) {
	visible, err := s.Collect(query)
	if err != nil {
		return nil, err
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

	totalPages := 0
	if query.PerPage > 0 {
		totalPages = (total + query.PerPage - 1) / query.PerPage
	}

	return &ListResponse{
		Data: NewAssignmentResponses(visible[start:end]),
		Pagination: Pagination{
			Page:       query.Page,
			PerPage:    query.PerPage,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *Service) GetByID(id string) (*Assignment, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get assignment", "error", err, "assignment_id", id)
		return nil, err
	}
	return a, nil
}

// Stats computes the statistics over the collection selected by the
// query, so callers can aggregate either the whole dataset or a
// filtered view.
func (s *Service) Stats(query ListQuery) (Stats, error) {
	visible, err := s.Collect(query)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(visible), nil
}

func (s *Service) Create(actorID string, dto CreateAssignmentDTO) (*Assignment, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("assignment validation failed", "error", err, "actor_id", actorID)
		return nil, err
	}

	a := &Assignment{
		EmployeeID:   dto.EmployeeID,
		AssetID:      dto.AssetID,
		AssignedDate: dto.AssignedDate,
		Status:       StatusInUse,
		Notes:        dto.Notes,
	}

	created, err := s.repo.Create(a)
	if err != nil {
		s.logger.Error("failed to create assignment", "error", err, "employee_id", dto.EmployeeID, "asset_id", dto.AssetID)
		return nil, err
	}

	s.events.Publish(context.Background(), events.NewAssignmentCreatedEvent(
		created.ID, created.EmployeeID, created.AssetID, string(created.Status), actorID))

	s.logger.Info("assignment created",
		"assignment_id", created.ID,
		"employee_id", created.EmployeeID,
		"asset_id", created.AssetID)

	return created, nil
}

func (s *Service) Update(actorID, id string, dto UpdateAssignmentDTO) (*Assignment, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("assignment validation failed", "error", err, "assignment_id", id)
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing.Status == StatusReturned {
		return nil, errors.ErrAlreadyReturned
	}

	if dto.EmployeeID != "" {
		existing.EmployeeID = dto.EmployeeID
	}
	if dto.AssetID != "" {
		existing.AssetID = dto.AssetID
	}
	if dto.AssignedDate != "" {
		existing.AssignedDate = dto.AssignedDate
	}
	if dto.Status != "" {
		status, _ := ParseStatus(dto.Status)
		existing.Status = status
	}
	if dto.Notes != "" {
		existing.Notes = dto.Notes
	}

	updated, err := s.repo.Update(existing)
	if err != nil {
		s.logger.Error("failed to update assignment", "error", err, "assignment_id", id)
		return nil, err
	}

	s.events.Publish(context.Background(), events.NewAssignmentUpdatedEvent(
		updated.ID, updated.EmployeeID, updated.AssetID, string(updated.Status), actorID))

	s.logger.Info("assignment updated", "assignment_id", updated.ID)
	return updated, nil
}

// Return closes an assignment. The return date defaults to today and
// must not precede the assigned date.
func (s *Service) Return(actorID, id string, dto ReturnAssignmentDTO) (*Assignment, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("return validation failed", "error", err, "assignment_id", id)
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !existing.CanBeReturned() {
		return nil, errors.ErrAlreadyReturned
	}

	returnDate := dto.ReturnDate
	if returnDate == "" {
		returnDate = time.Now().Format(DateLayout)
	}
	if returnDate < existing.AssignedDate {
		return nil, errors.NewValidationError("return date cannot be before assigned date", errors.ErrCodeInvalidDateRange)
	}

	returned, err := s.repo.MarkReturned(id, returnDate, dto.Notes)
	if err != nil {
		s.logger.Error("failed to return assignment", "error", err, "assignment_id", id)
		return nil, err
	}

	s.events.Publish(context.Background(), events.NewAssignmentReturnedEvent(
		returned.ID, returned.EmployeeID, returned.AssetID, actorID))

	s.logger.Info("assignment returned",
		"assignment_id", returned.ID,
		"return_date", returnDate)

	return returned, nil
}

func (s *Service) Delete(actorID, id string) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete assignment", "error", err, "assignment_id", id)
		return err
	}

	s.events.Publish(context.Background(), events.NewAssignmentDeletedEvent(
		existing.ID, existing.EmployeeID, existing.AssetID, actorID))

	s.logger.Info("assignment deleted", "assignment_id", id)
	return nil
}
