package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	errors "github.com/minjae-dev/asset-management/internal"
	"github.com/minjae-dev/asset-management/internal/assignment"
	"github.com/minjae-dev/asset-management/internal/core/events"
)

// DefaultMaxRows bounds a single import file.
const DefaultMaxRows = 1000

// AssignmentWriter persists a validated batch in one transaction.
type AssignmentWriter interface {
	CreateBatch(assignments []*assignment.Assignment) ([]*assignment.Assignment, error)
}

// RowValidator checks parsed rows and reports every violation.
type RowValidator interface {
	ValidateRows(rows []Row) []RowError
}

// EventPublisher dispatches domain events to interested handlers.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service ingests assignment CSV files. A file is either applied in
// full or rejected with row-indexed errors; there is no partial
// import.
type Service struct {
	writer    AssignmentWriter
	validator RowValidator
	events    EventPublisher
	logger    *slog.Logger
	maxRows   int
}

func NewService(writer AssignmentWriter, validator RowValidator, publisher EventPublisher, maxRows int, logger *slog.Logger) *Service {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &Service{
		writer:    writer,
		validator: validator,
		events:    publisher,
		logger:    logger,
		maxRows:   maxRows,
	}
}

// Summary reports an applied import.
type Summary struct {
	FileName      string   `json:"file_name"`
	RowCount      int      `json:"row_count"`
	AssignmentIDs []string `json:"assignment_ids"`
}

func (s *Service) Import(actorID, fileName string, r io.Reader) (*Summary, error) {
	rows, err := ParseCSV(r)
	if err != nil {
		s.logger.Error("import parse failed", "error", err, "file_name", fileName)
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.NewValidationError("file contains no data rows", errors.ErrCodeImportValidationFailed)
	}
	if len(rows) > s.maxRows {
		return nil, errors.NewUnprocessableError(
			fmt.Sprintf("file has %d rows, the limit is %d", len(rows), s.maxRows),
			errors.ErrCodeImportTooLarge)
	}

	if rowErrors := s.validator.ValidateRows(rows); len(rowErrors) > 0 {
		s.logger.Error("import rejected",
			"file_name", fileName,
			"rows", len(rows),
			"row_errors", len(rowErrors))
		return nil, errors.NewUnprocessableError(
			"import rejected, fix the listed rows and retry",
			errors.ErrCodeImportValidationFailed).WithDetails(RowErrors{Errors: rowErrors})
	}

	assignments := make([]*assignment.Assignment, len(rows))
	for i, row := range rows {
		assignments[i] = toAssignment(row)
	}

	created, err := s.writer.CreateBatch(assignments)
	if err != nil {
		s.logger.Error("import batch failed", "error", err, "file_name", fileName)
		return nil, err
	}

	ids := make([]string, len(created))
	for i, a := range created {
		ids[i] = a.ID
	}

	s.events.Publish(context.Background(), events.NewAssignmentsImportedEvent(
		len(created), fileName, actorID))

	s.logger.Info("assignments imported",
		"file_name", fileName,
		"rows", len(created))

	return &Summary{
		FileName:      fileName,
		RowCount:      len(created),
		AssignmentIDs: ids,
	}, nil
}

func toAssignment(row Row) *assignment.Assignment {
	status := assignment.StatusInUse
	if row.Status != "" {
		status, _ = assignment.ParseStatus(row.Status)
	}
	return &assignment.Assignment{
		EmployeeID:   row.EmployeeID,
		AssetID:      row.AssetID,
		AssignedDate: row.AssignedDate,
		ReturnDate:   row.ReturnDate,
		Status:       status,
		Notes:        row.Notes,
	}
}
