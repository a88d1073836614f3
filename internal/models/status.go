package models

// Status is the completion state shared by every schedulable item.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusSkipped   Status = "SKIPPED"
)

// Valid reports whether s is one of the known completion states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

// FocusStatus is the readiness axis on pool missions, orthogonal to Status.
type FocusStatus string

const (
	FocusActive   FocusStatus = "ACTIVE"
	FocusDeferred FocusStatus = "DEFERRED"
)

// Valid reports whether f is one of the known focus states.
func (f FocusStatus) Valid() bool {
	return f == FocusActive || f == FocusDeferred
}
