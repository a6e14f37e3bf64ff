package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minjae-dev/asset-management/internal/core/events"
)

// Recorder appends rows to the trail. The audit service satisfies it.
type Recorder interface {
	Record(log *Log) error
}

// EventHandler turns assignment lifecycle events into trail rows.
type EventHandler struct {
	recorder Recorder
	logger   *slog.Logger
}

func NewEventHandler(recorder Recorder, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		recorder: recorder,
		logger:   logger,
	}
}

func (h *EventHandler) HandleAssignmentEvent(ctx context.Context, event events.Event) error {
	assignmentEvent, ok := event.(*events.AssignmentEvent)
	if !ok {
		h.logger.Error("invalid event type for assignment audit handler", "event_type", event.EventType())
		return fmt.Errorf("expected AssignmentEvent, got %T", event)
	}

	detail := fmt.Sprintf("employee=%s asset=%s", assignmentEvent.EmployeeID, assignmentEvent.AssetID)
	if assignmentEvent.Status != "" {
		detail += " status=" + assignmentEvent.Status
	}

	return h.recorder.Record(&Log{
		ActorID:    assignmentEvent.ActorID,
		Action:     assignmentEvent.EventType(),
		EntityType: EntityAssignment,
		EntityID:   assignmentEvent.AssignmentID,
		Detail:     detail,
	})
}

func (h *EventHandler) HandleAssignmentsImported(ctx context.Context, event events.Event) error {
	imported, ok := event.(*events.AssignmentsImportedEvent)
	if !ok {
		h.logger.Error("invalid event type for import audit handler", "event_type", event.EventType())
		return fmt.Errorf("expected AssignmentsImportedEvent, got %T", event)
	}

	return h.recorder.Record(&Log{
		ActorID:    imported.ActorID,
		Action:     imported.EventType(),
		EntityType: EntityImport,
		EntityID:   imported.FileName,
		Detail:     fmt.Sprintf("rows=%d", imported.RowCount),
	})
}

func (h *EventHandler) HandleAssignmentsExported(ctx context.Context, event events.Event) error {
	exported, ok := event.(*events.AssignmentsExportedEvent)
	if !ok {
		h.logger.Error("invalid event type for export audit handler", "event_type", event.EventType())
		return fmt.Errorf("expected AssignmentsExportedEvent, got %T", event)
	}

	return h.recorder.Record(&Log{
		ActorID:    exported.ActorID,
		Action:     exported.EventType(),
		EntityType: EntityExport,
		EntityID:   exported.FileName,
		Detail:     fmt.Sprintf("rows=%d format=%s", exported.RowCount, exported.Format),
	})
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeAssignmentCreated, h.HandleAssignmentEvent)
	eventBus.Subscribe(events.EventTypeAssignmentUpdated, h.HandleAssignmentEvent)
	eventBus.Subscribe(events.EventTypeAssignmentReturned, h.HandleAssignmentEvent)
	eventBus.Subscribe(events.EventTypeAssignmentDeleted, h.HandleAssignmentEvent)
	eventBus.Subscribe(events.EventTypeAssignmentsImported, h.HandleAssignmentsImported)
	eventBus.Subscribe(events.EventTypeAssignmentsExported, h.HandleAssignmentsExported)

	h.logger.Info("audit event handlers registered",
		"handlers", []string{
			events.EventTypeAssignmentCreated,
			events.EventTypeAssignmentUpdated,
			events.EventTypeAssignmentReturned,
			events.EventTypeAssignmentDeleted,
			events.EventTypeAssignmentsImported,
			events.EventTypeAssignmentsExported,
		})
}
