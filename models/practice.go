package models

// Practice status constants
const (
	PracticeStatusOpen       = "Aperta"
	PracticeStatusInProgress = "In corso"
	PracticeStatusClosed     = "Chiusa"
)

// Practice represents a legal case/matter owned by exactly one client and
// optionally assigned to one lawyer. Status is a free three-state machine:
// any status may move to any other.
type Practice struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	ClientID   uint    `gorm:"not null;index" json:"clientId"`
	LawyerID   *uint   `gorm:"index" json:"lawyerId,omitempty"`
	Title      string  `gorm:"not null" json:"title"`
	Type       string  `json:"type"`
	Status     string  `gorm:"not null;default:Aperta" json:"status"`
	Value      float64 `json:"value"`      // disputed value
	Fee        float64 `json:"fee"`        // agreed fee
	PaidAmount float64 `json:"paidAmount"` // amount already paid; not constrained to be <= Fee
	Priority   string  `gorm:"not null;default:Media" json:"priority"`
	OpenedAt   string  `json:"openedAt"` // date, YYYY-MM-DD
	Notes      string  `gorm:"type:text" json:"notes,omitempty"`
}

// TableName specifies the table name for Practice model
func (Practice) TableName() string {
	return "practices"
}

// IsValidPracticeStatus checks if the status is valid
func IsValidPracticeStatus(status string) bool {
	return status == PracticeStatusOpen || status == PracticeStatusInProgress || status == PracticeStatusClosed
}

// IsClosed checks if the practice is closed
func (p *Practice) IsClosed() bool {
	return p.Status == PracticeStatusClosed
}

// Outstanding returns the unpaid part of the agreed fee
func (p *Practice) Outstanding() float64 {
	return p.Fee - p.PaidAmount
}
