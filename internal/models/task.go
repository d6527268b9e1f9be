package models

const (
	StatusPending = "pending"
	StatusDoing   = "doing"
	StatusBlocked = "blocked"
	StatusDone    = "done"

	DefaultStatus = StatusPending
)

// statusLabels is the closed set of legal task statuses mapped to
// their human-readable labels. Unknown codes are rejected at the
// boundary rather than coerced.
var statusLabels = map[string]string{
	StatusPending: "Pending",
	StatusDoing:   "Doing",
	StatusBlocked: "Blocked",
	StatusDone:    "Done",
}

func ValidStatus(status string) bool {
	_, ok := statusLabels[status]
	return ok
}

// StatusLabels returns a copy of the status code to label mapping.
func StatusLabels() map[string]string {
	labels := make(map[string]string, len(statusLabels))
	for code, label := range statusLabels {
		labels[code] = label
	}
	return labels
}

type Task struct {
	ID          int64
	UserID      int64
	Description string
	Status      string
}

// ArchivedTask preserves a task's fields, including its original ID,
// after it has been moved out of the live set.
type ArchivedTask struct {
	ID          int64
	UserID      int64
	Description string
	Status      string
}
