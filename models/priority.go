package models

// Priority levels shared by clients, practices and reminders.
// Values are the user-facing Italian labels stored as-is.
const (
	PriorityHigh   = "Alta"
	PriorityMedium = "Media"
	PriorityLow    = "Bassa"
)

// IsValidPriority checks if the priority is one of the known levels
func IsValidPriority(priority string) bool {
	return priority == PriorityHigh || priority == PriorityMedium || priority == PriorityLow
}
