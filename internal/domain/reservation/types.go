package reservation

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusSeated    Status = "seated"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
	StatusNoShow    Status = "no_show"
)

// Occupies reports whether a reservation in this status still holds its
// table assignment for overlap purposes.
func (s Status) Occupies() bool {
	return s == StatusConfirmed || s == StatusSeated
}
