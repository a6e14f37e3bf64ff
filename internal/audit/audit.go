package audit

import (
	"net/url"
	"strconv"
	"time"

	auditDatamodel "github.com/minjae-dev/asset-management/internal/core/datamodel/audit"
)

// Entity types recorded in the trail.
const (
	EntityAssignment = "assignment"
	EntityImport     = "import"
	EntityExport     = "export"
)

// Log is one recorded action. The trail is append only; nothing in
// the system updates or deletes rows once written.
type Log struct {
	ID         int64     `json:"id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Detail     string    `json:"detail"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToDataModel(l *Log) *auditDatamodel.AuditLog {
	return &auditDatamodel.AuditLog{
		ID:         l.ID,
		ActorID:    l.ActorID,
		Action:     l.Action,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Detail:     l.Detail,
		CreatedAt:  l.CreatedAt,
	}
}

func FromDataModel(dm *auditDatamodel.AuditLog) *Log {
	return &Log{
		ID:         dm.ID,
		ActorID:    dm.ActorID,
		Action:     dm.Action,
		EntityType: dm.EntityType,
		EntityID:   dm.EntityID,
		Detail:     dm.Detail,
		CreatedAt:  dm.CreatedAt,
	}
}

func FromDataModelSlice(dms []*auditDatamodel.AuditLog) []*Log {
	result := make([]*Log, len(dms))
	for i, dm := range dms {
		result[i] = FromDataModel(dm)
	}
	return result
}

type ListQuery struct {
	Action     string
	EntityType string
	EntityID   string
	Page       int
	PerPage    int
}

func ParseListQuery(values url.Values) ListQuery {
	q := ListQuery{
		Action:     values.Get("action"),
		EntityType: values.Get("entity_type"),
		EntityID:   values.Get("entity_id"),
		Page:       1,
		PerPage:    50,
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if perPage, err := strconv.Atoi(values.Get("per_page")); err == nil && perPage > 0 && perPage <= 200 {
		q.PerPage = perPage
	}
	return q
}

type ListResponse struct {
	Data       []*Log     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
