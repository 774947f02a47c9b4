package models

import "time"

// Document represents a stored file belonging to one client and optionally
// one practice. Content is embedded as a base64 data URL.
type Document struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ClientID   uint      `gorm:"not null;index" json:"clientId"`
	PracticeID *uint     `gorm:"index" json:"practiceId,omitempty"`
	Name       string    `gorm:"not null" json:"name"`
	Type       string    `json:"type"` // MIME type, e.g. application/pdf
	DataURL    string    `gorm:"column:data_url;type:text" json:"dataUrl"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName specifies the table name for Document model
func (Document) TableName() string {
	return "documents"
}
