package models

// FirmProfileID is the fixed identifier of the singleton firm profile row
const FirmProfileID = 1

// FirmProfile is the singleton record holding the firm's own letterhead data
type FirmProfile struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	Address   string `json:"address"`
	VATNumber string `gorm:"column:vat_number" json:"vatNumber"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	LogoURL   string `gorm:"column:logo_url;type:text" json:"logoUrl,omitempty"` // base64 encoded image
}

// TableName specifies the table name for FirmProfile model
func (FirmProfile) TableName() string {
	return "firm_profiles"
}
