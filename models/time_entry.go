package models

// TimeEntry is one row of the append-only billable-hours ledger of a
// practice. Deletion is supported only for user correction.
type TimeEntry struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	PracticeID  uint    `gorm:"not null;index" json:"practiceId"`
	Date        string  `gorm:"not null" json:"date"` // date, YYYY-MM-DD
	Hours       float64 `gorm:"not null" json:"hours"`
	Description string  `gorm:"type:text" json:"description"`
}

// TableName specifies the table name for TimeEntry model
func (TimeEntry) TableName() string {
	return "time_entries"
}
