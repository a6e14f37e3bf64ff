package assignment

// Status is the stable, language-independent assignment status code.
// Display labels are looked up separately so filtering and statistics
// never compare against locale-specific strings.
type Status string

const (
	StatusInUse    Status = "in_use"
	StatusReturned Status = "returned"
	StatusPending  Status = "pending"
	StatusOverdue  Status = "overdue"
	StatusLost     Status = "lost"
	StatusDamaged  Status = "damaged"
)

var statusLabels = map[Status]string{
	StatusInUse:    "사용중",
	StatusReturned: "반납완료",
	StatusPending:  "대기중",
	StatusOverdue:  "연체",
	StatusLost:     "분실",
	StatusDamaged:  "파손",
}

var labelToStatus = map[string]Status{
	"사용중":  StatusInUse,
	"반납완료": StatusReturned,
	"대기중":  StatusPending,
	"연체":   StatusOverdue,
	"분실":   StatusLost,
	"파손":   StatusDamaged,
}

// AllStatuses returns every valid status code in declaration order.
func AllStatuses() []Status {
	return []Status{StatusInUse, StatusReturned, StatusPending, StatusOverdue, StatusLost, StatusDamaged}
}

// Label returns the Korean display label for the status, or the raw
// code when the status is unknown.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// IsClosed reports whether the status represents an assignment whose
// asset is no longer held by the employee.
func (s Status) IsClosed() bool {
	return s == StatusReturned
}

// ParseStatus normalizes a status value to its internal code. It
// accepts internal codes, hyphenated legacy codes ("in-use"), and
// Korean display labels. Unknown values are returned as-is with
// ok=false so callers can decide whether to reject or ignore them.
func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusInUse, StatusReturned, StatusPending, StatusOverdue, StatusLost, StatusDamaged:
		return Status(value), true
	}
	if value == "in-use" {
		return StatusInUse, true
	}
	if status, ok := labelToStatus[value]; ok {
		return status, true
	}
	return Status(value), false
}
