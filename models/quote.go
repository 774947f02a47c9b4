package models

import "time"

// Quote is a fee proposal artifact linked to a client, with its own fixed
// fee/tax breakdown. Pure persisted record: no lifecycle beyond create/delete.
type Quote struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ClientID      uint      `gorm:"not null;index" json:"clientId"`
	PracticeTitle string    `json:"practiceTitle"`
	PracticeType  string    `json:"practiceType"`
	PracticeNotes string    `gorm:"type:text" json:"practiceNotes"`
	Fee           float64   `json:"fee"`
	CPA           float64   `gorm:"column:cpa" json:"cpa"` // lawyers' pension fund contribution
	VAT           float64   `gorm:"column:vat" json:"vat"`
	Total         float64   `json:"total"`
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`
}

// TableName specifies the table name for Quote model
func (Quote) TableName() string {
	return "quotes"
}
