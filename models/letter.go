package models

import "time"

// Letter is a generated correspondence artifact linked to a client.
// Pure persisted record: no lifecycle beyond create/delete.
type Letter struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ClientID  uint      `gorm:"not null;index" json:"clientId"`
	Subject   string    `gorm:"not null" json:"subject"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// TableName specifies the table name for Letter model
func (Letter) TableName() string {
	return "letters"
}
