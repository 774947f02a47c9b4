package models

import "time"

// Client represents a client of the firm
type Client struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `json:"phone"`
	TaxCode   string    `gorm:"column:taxcode;not null" json:"taxcode"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Priority  string    `gorm:"not null;default:Media" json:"priority"`
}

// TableName specifies the table name for Client model
func (Client) TableName() string {
	return "clients"
}
