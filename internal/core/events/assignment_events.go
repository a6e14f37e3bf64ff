package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAssignmentCreated   = "assignment.created"
	EventTypeAssignmentUpdated   = "assignment.updated"
	EventTypeAssignmentReturned  = "assignment.returned"
	EventTypeAssignmentDeleted   = "assignment.deleted"
	EventTypeAssignmentsImported = "assignment.imported"
	EventTypeAssignmentsExported = "assignment.exported"
)

type AssignmentEvent struct {
	BaseEvent
	AssignmentID string `json:"assignment_id"`
	EmployeeID   string `json:"employee_id"`
	AssetID      string `json:"asset_id"`
	Status       string `json:"status"`
	ActorID      string `json:"actor_id"`
}

func newAssignmentEvent(eventType, assignmentID, employeeID, assetID, status, actorID string) *AssignmentEvent {
	return &AssignmentEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"assignment_id": assignmentID,
				"employee_id":   employeeID,
				"asset_id":      assetID,
				"status":        status,
				"actor_id":      actorID,
			},
		},
		AssignmentID: assignmentID,
		EmployeeID:   employeeID,
		AssetID:      assetID,
		Status:       status,
		ActorID:      actorID,
	}
}

func NewAssignmentCreatedEvent(assignmentID, employeeID, assetID, status, actorID string) *AssignmentEvent {
	return newAssignmentEvent(EventTypeAssignmentCreated, assignmentID, employeeID, assetID, status, actorID)
}

func NewAssignmentUpdatedEvent(assignmentID, employeeID, assetID, status, actorID string) *AssignmentEvent {
	return newAssignmentEvent(EventTypeAssignmentUpdated, assignmentID, employeeID, assetID, status, actorID)
}

func NewAssignmentReturnedEvent(assignmentID, employeeID, assetID, actorID string) *AssignmentEvent {
	return newAssignmentEvent(EventTypeAssignmentReturned, assignmentID, employeeID, assetID, "returned", actorID)
}

func NewAssignmentDeletedEvent(assignmentID, employeeID, assetID, actorID string) *AssignmentEvent {
	return newAssignmentEvent(EventTypeAssignmentDeleted, assignmentID, employeeID, assetID, "", actorID)
}

type AssignmentsImportedEvent struct {
	BaseEvent
	RowCount int    `json:"row_count"`
	ActorID  string `json:"actor_id"`
	FileName string `json:"file_name"`
}

func NewAssignmentsImportedEvent(rowCount int, fileName, actorID string) *AssignmentsImportedEvent {
	return &AssignmentsImportedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAssignmentsImported,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"row_count": rowCount,
				"file_name": fileName,
				"actor_id":  actorID,
			},
		},
		RowCount: rowCount,
		ActorID:  actorID,
		FileName: fileName,
	}
}

type AssignmentsExportedEvent struct {
	BaseEvent
	RowCount int    `json:"row_count"`
	Format   string `json:"format"`
	FileName string `json:"file_name"`
	ActorID  string `json:"actor_id"`
}

func NewAssignmentsExportedEvent(rowCount int, format, fileName, actorID string) *AssignmentsExportedEvent {
	return &AssignmentsExportedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAssignmentsExported,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"row_count": rowCount,
				"format":    format,
				"file_name": fileName,
				"actor_id":  actorID,
			},
		},
		RowCount: rowCount,
		Format:   format,
		FileName: fileName,
		ActorID:  actorID,
	}
}
