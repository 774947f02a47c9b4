package models

// Reminder represents a dated to-do, optionally linked to a practice.
// There is no completion state: reminders are deleted, not marked done.
type Reminder struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	PracticeID *uint  `gorm:"index" json:"practiceId,omitempty"`
	Title      string `gorm:"not null" json:"title"`
	DueDate    string `gorm:"not null;index" json:"dueDate"` // date, YYYY-MM-DD
	Priority   string `gorm:"not null;default:Media" json:"priority"`
}

// TableName specifies the table name for Reminder model
func (Reminder) TableName() string {
	return "reminders"
}
