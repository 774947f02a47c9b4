package services

import (
	"bytes"
	"fmt"

	"legal_crm_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// PracticeBilling is the computed billing position of one practice
type PracticeBilling struct {
	PracticeID  uint    `json:"practiceId"`
	Title       string  `json:"title"`
	ClientName  string  `json:"clientName"`
	LawyerName  string  `json:"lawyerName,omitempty"`
	Status      string  `json:"status"`
	Fee         float64 `json:"fee"`
	PaidAmount  float64 `json:"paidAmount"`
	Outstanding float64 `json:"outstanding"`
	Hours       float64 `json:"hours"`
	// BillableAmount is hours x rate for hourly lawyers, the agreed fee
	// for fixed billing or when no lawyer is assigned.
	BillableAmount float64 `json:"billableAmount"`
}

// BillingSummary computes the billing position of every practice from the
// time-entry ledger and the assigned lawyer's billing settings.
func BillingSummary(gdb *gorm.DB) ([]PracticeBilling, error) {
	var practices []models.Practice
	if err := gdb.Order("id ASC").Find(&practices).Error; err != nil {
		return nil, fmt.Errorf("failed to load practices: %w", err)
	}

	var clients []models.Client
	if err := gdb.Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}
	clientNames := make(map[uint]string, len(clients))
	for _, c := range clients {
		clientNames[c.ID] = c.Name
	}

	var lawyers []models.Lawyer
	if err := gdb.Find(&lawyers).Error; err != nil {
		return nil, fmt.Errorf("failed to load lawyers: %w", err)
	}
	lawyersByID := make(map[uint]models.Lawyer, len(lawyers))
	for _, l := range lawyers {
		lawyersByID[l.ID] = l
	}

	type hoursRow struct {
		PracticeID uint
		Total      float64
	}
	var hours []hoursRow
	err := gdb.Model(&models.TimeEntry{}).
		Select("practice_id AS practice_id, SUM(hours) AS total").
		Group("practice_id").
		Scan(&hours).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate time entries: %w", err)
	}
	hoursByPractice := make(map[uint]float64, len(hours))
	for _, h := range hours {
		hoursByPractice[h.PracticeID] = h.Total
	}

	summary := make([]PracticeBilling, 0, len(practices))
	for _, p := range practices {
		b := PracticeBilling{
			PracticeID:  p.ID,
			Title:       p.Title,
			ClientName:  clientNames[p.ClientID],
			Status:      p.Status,
			Fee:         p.Fee,
			PaidAmount:  p.PaidAmount,
			Outstanding: p.Outstanding(),
			Hours:       hoursByPractice[p.ID],
		}

		b.BillableAmount = p.Fee
		if p.LawyerID != nil {
			if lawyer, ok := lawyersByID[*p.LawyerID]; ok {
				b.LawyerName = lawyer.FullName()
				if lawyer.BillingType == models.BillingTypeHourly {
					b.BillableAmount = b.Hours * lawyer.BillingRate
				}
			}
		}

		summary = append(summary, b)
	}
	return summary, nil
}

// ExportBillingReport writes the billing summary as an xlsx workbook
func ExportBillingReport(gdb *gorm.DB) ([]byte, error) {
	summary, err := BillingSummary(gdb)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Fatturazione"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Pratica", "Cliente", "Avvocato", "Stato", "Onorario", "Saldato", "Da saldare", "Ore", "Importo fatturabile"}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, b := range summary {
		values := []any{b.Title, b.ClientName, b.LawyerName, b.Status, b.Fee, b.PaidAmount, b.Outstanding, b.Hours, b.BillableAmount}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write billing report: %w", err)
	}
	return buf.Bytes(), nil
}
