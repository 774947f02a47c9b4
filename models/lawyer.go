package models

// Lawyer billing type constants
const (
	BillingTypeHourly = "Oraria"
	BillingTypeFixed  = "Fissa"
)

// Lawyer represents a lawyer of the firm. Referenced by zero or more
// practices; deletion is refused while any practice still references it.
type Lawyer struct {
	ID             uint    `gorm:"primarykey" json:"id"`
	FirstName      string  `gorm:"not null" json:"firstName"`
	LastName       string  `gorm:"not null;index" json:"lastName"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Specialization string  `json:"specialization"`
	PhotoURL       string  `gorm:"column:photo_url;type:text" json:"photoUrl,omitempty"` // base64 encoded image
	BillingType    string  `gorm:"not null;default:Oraria" json:"billingType"`
	BillingRate    float64 `json:"billingRate"`
}

// TableName specifies the table name for Lawyer model
func (Lawyer) TableName() string {
	return "lawyers"
}

// FullName returns the display name of the lawyer
func (l *Lawyer) FullName() string {
	return l.FirstName + " " + l.LastName
}

// IsValidBillingType checks if the billing type is valid
func IsValidBillingType(billingType string) bool {
	return billingType == BillingTypeHourly || billingType == BillingTypeFixed
}
