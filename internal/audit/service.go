package audit

import (
	"log/slog"
)

// Repository persists and queries trail rows.
type Repository interface {
	Create(log *Log) error
	List(query ListQuery) ([]*Log, int, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Record appends one row. On the event path a failure is logged by
// the bus and never fails the request that raised the event.
func (s *Service) Record(log *Log) error {
	if err := s.repo.Create(log); err != nil {
		s.logger.Error("failed to record audit log",
			"error", err,
			"action", log.Action,
			"entity_id", log.EntityID)
		return err
	}
	return nil
}

// List returns trail rows newest first.
func (s *Service) List(query ListQuery) (*ListResponse, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PerPage < 1 {
		query.PerPage = 50
	}

	logs, total, err := s.repo.List(query)
	if err != nil {
		s.logger.Error("failed to list audit logs", "error", err)
		return nil, err
	}

	totalPages := (total + query.PerPage - 1) / query.PerPage

	return &ListResponse{
		Data: logs,
		Pagination: Pagination{
			Page:       query.Page,
			PerPage:    query.PerPage,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}
