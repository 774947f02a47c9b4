package handlers

import (
	"errors"
	"net/http"

	"legal_crm_go/db"
	"legal_crm_go/models"
	"legal_crm_go/services"
	"legal_crm_go/services/ai"
	"legal_crm_go/store"

	"github.com/labstack/echo/v4"
)

// AIHandler serves the drafting and analysis assistants. Letter drafting
// persists its result, so the handler also holds the cache to invalidate.
type AIHandler struct {
	svc   *ai.Service
	cache *store.Cache
}

func NewAIHandler(svc *ai.Service, cache *store.Cache) *AIHandler {
	return &AIHandler{svc: svc, cache: cache}
}

func aiHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ai.ErrInsufficientInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ai.ErrInvalidDataURL):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadGateway, "content generation failed")
	}
}

func textResult(c echo.Context, result string) error {
	return c.JSON(http.StatusOK, map[string]string{"result": result})
}

// Summarize condenses free text into key points
func (h *AIHandler) Summarize(c echo.Context) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	out, err := h.svc.SummarizeText(c.Request().Context(), req.Text)
	if err != nil {
		return aiHTTPError(err)
	}
	return textResult(c, out)
}

// DraftEmail produces a subject and body for a client email
func (h *AIHandler) DraftEmail(c echo.Context) error {
	var req struct {
		ClientName string `json:"clientName"`
		Topic      string `json:"topic"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	draft, err := h.svc.DraftEmail(c.Request().Context(), req.ClientName, req.Topic)
	if err != nil {
		return aiHTTPError(err)
	}
	subject, body := services.SplitGeneratedDraft(draft)
	return c.JSON(http.StatusOK, map[string]string{"subject": subject, "body": body})
}

// DraftOfficialEmail produces a formal email from key points and a tone
func (h *AIHandler) DraftOfficialEmail(c echo.Context) error {
	var req struct {
		ClientName string `json:"clientName"`
		Tone       string `json:"tone"`
		Points     string `json:"points"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	draft, err := h.svc.DraftOfficialEmail(c.Request().Context(), req.ClientName, req.Tone, req.Points)
	if err != nil {
		return aiHTTPError(err)
	}
	subject, body := services.SplitGeneratedDraft(draft)
	return c.JSON(http.StatusOK, map[string]string{"subject": subject, "body": body})
}

// DraftLetter generates a legal letter for a client and persists it
func (h *AIHandler) DraftLetter(c echo.Context) error {
	var req struct {
		ClientID   uint   `json:"clientId"`
		LetterType string `json:"letterType"`
		Context    string `json:"context"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var client models.Client
	if err := db.DB.First(&client, req.ClientID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "client not found")
	}
	var firm models.FirmProfile
	if err := db.DB.First(&firm, models.FirmProfileID).Error; err != nil {
		return echo.NewHTTPError(http.StatusConflict, "firm profile not configured")
	}

	draft, err := h.svc.DraftLegalLetter(c.Request().Context(), &firm, &client, req.LetterType, req.Context)
	if err != nil {
		return aiHTTPError(err)
	}

	subject, body := services.SplitGeneratedDraft(draft)
	letter := models.Letter{
		ClientID: client.ID,
		Subject:  subject,
		Body:     services.SanitizeGeneratedBody(body),
	}
	if _, err := store.CreateLetter(db.DB, &letter); err != nil {
		return storeHTTPError(err)
	}
	h.cache.InvalidateFor(store.ResourceLetters)
	return c.JSON(http.StatusCreated, letter)
}

// ClassifyPractice assigns a category and priority to practice text
func (h *AIHandler) ClassifyPractice(c echo.Context) error {
	var req struct {
		Title string `json:"title"`
		Notes string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	out, err := h.svc.ClassifyPractice(c.Request().Context(), req.Title, req.Notes)
	if err != nil {
		return aiHTTPError(err)
	}
	// The model is schema-constrained to a JSON object
	return c.JSONBlob(http.StatusOK, []byte(out))
}

// SearchKnowledgeBase answers a question against the practice archive
func (h *AIHandler) SearchKnowledgeBase(c echo.Context) error {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var practices []models.Practice
	if err := db.DB.Find(&practices).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load practices")
	}
	out, err := h.svc.SearchKnowledgeBase(c.Request().Context(), req.Query, practices)
	if err != nil {
		return aiHTTPError(err)
	}
	return textResult(c, out)
}

// AnalyzeDocument answers a question about a stored document
func (h *AIHandler) AnalyzeDocument(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req struct {
		Question string `json:"question"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var doc models.Document
	if err := db.DB.First(&doc, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "document not found")
	}
	out, err := h.svc.AnalyzeDocument(c.Request().Context(), &doc, req.Question)
	if err != nil {
		return aiHTTPError(err)
	}
	return textResult(c, out)
}

// AnalyzePractice estimates duration and value from historical practices
func (h *AIHandler) AnalyzePractice(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var practice models.Practice
	if err := db.DB.First(&practice, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "practice not found")
	}
	var historical []models.Practice
	if err := db.DB.Find(&historical).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load practices")
	}

	out, err := h.svc.AnalyzePractice(c.Request().Context(), &practice, historical)
	if err != nil {
		return aiHTTPError(err)
	}
	return textResult(c, out)
}

// SuggestMilestones proposes procedural phases for a practice
func (h *AIHandler) SuggestMilestones(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var practice models.Practice
	if err := db.DB.First(&practice, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "practice not found")
	}

	out, err := h.svc.SuggestMilestones(c.Request().Context(), &practice)
	if err != nil {
		return aiHTTPError(err)
	}
	return textResult(c, out)
}

// SuggestFee proposes a fee grounded on a web search of Italian rates
func (h *AIHandler) SuggestFee(c echo.Context) error {
	var req struct {
		PracticeTitle string `json:"practiceTitle"`
		PracticeType  string `json:"practiceType"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	out, err := h.svc.SuggestFee(c.Request().Context(), req.PracticeTitle, req.PracticeType)
	if err != nil {
		return aiHTTPError(err)
	}
	return textResult(c, out)
}

// CheckQuoteCompliance reviews a quote against forensic fee parameters
func (h *AIHandler) CheckQuoteCompliance(c echo.Context) error {
	var req struct {
		QuoteText    string `json:"quoteText"`
		PracticeType string `json:"practiceType"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	out, err := h.svc.CheckQuoteCompliance(c.Request().Context(), req.QuoteText, req.PracticeType)
	if err != nil {
		return aiHTTPError(err)
	}
	return textResult(c, out)
}
