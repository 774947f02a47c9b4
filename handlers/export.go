package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"legal_crm_go/db"
	"legal_crm_go/models"
	"legal_crm_go/services"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler renders letters and quotes to PDF on the firm letterhead
// and produces the billing workbook. Every export is also archived to the
// configured storage provider.
type ExportHandler struct{}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

func loadFirmProfile() (*models.FirmProfile, error) {
	var firm models.FirmProfile
	if err := db.DB.First(&firm, models.FirmProfileID).Error; err != nil {
		return nil, err
	}
	return &firm, nil
}

// archive stores an exported artifact; failures are logged, not fatal,
// since the client still gets the download.
func archive(c echo.Context, data []byte, key, contentType string) {
	if services.Storage == nil {
		return
	}
	_, err := services.Storage.UploadReader(c.Request().Context(), bytes.NewReader(data), key, contentType, int64(len(data)))
	if err != nil {
		log.Printf("[WARNING] Failed to archive export %s: %v", key, err)
	}
}

// ExportLetterPDF renders a stored letter as PDF
func (h *ExportHandler) ExportLetterPDF(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var letter models.Letter
	if err := db.DB.First(&letter, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "letter not found")
	}
	firm, err := loadFirmProfile()
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, "firm profile not configured")
	}

	html, err := services.RenderLetterHTML(firm, &letter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render letter")
	}
	pdf, err := services.GeneratePDF(html, services.DefaultPDFOptions())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate PDF")
	}

	key := fmt.Sprintf("letters/letter-%d-%s.pdf", letter.ID, time.Now().Format("20060102"))
	archive(c, pdf, key, "application/pdf")

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="lettera-%d.pdf"`, letter.ID))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// ExportQuotePDF renders a stored quote as PDF
func (h *ExportHandler) ExportQuotePDF(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var quote models.Quote
	if err := db.DB.First(&quote, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "quote not found")
	}
	firm, err := loadFirmProfile()
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, "firm profile not configured")
	}

	var client models.Client
	clientName := ""
	if err := db.DB.First(&client, quote.ClientID).Error; err == nil {
		clientName = client.Name
	}

	html, err := services.RenderQuoteHTML(firm, &quote, clientName)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render quote")
	}
	pdf, err := services.GeneratePDF(html, services.DefaultPDFOptions())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate PDF")
	}

	key := fmt.Sprintf("quotes/quote-%d-%s.pdf", quote.ID, time.Now().Format("20060102"))
	archive(c, pdf, key, "application/pdf")

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="preventivo-%d.pdf"`, quote.ID))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// ExportBillingReport produces the billing workbook
func (h *ExportHandler) ExportBillingReport(c echo.Context) error {
	data, err := services.ExportBillingReport(db.DB)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build billing report")
	}

	key := fmt.Sprintf("billing/fatturazione-%s.xlsx", time.Now().Format("20060102-150405"))
	archive(c, data, key, xlsxContentType)

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="fatturazione.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, data)
}
