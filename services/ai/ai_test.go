package ai

import (
	"context"
	"encoding/base64"
	"testing"

	"legal_crm_go/models"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

// fakeGenerator records the last request and returns a canned reply
type fakeGenerator struct {
	reply    string
	err      error
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	calls    int
}

func (f *fakeGenerator) Generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	f.calls++
	f.contents = contents
	f.config = config
	return f.reply, f.err
}

func promptText(t *testing.T, contents []*genai.Content) string {
	t.Helper()
	if assert.NotEmpty(t, contents) && assert.NotEmpty(t, contents[0].Parts) {
		return contents[0].Parts[0].Text
	}
	return ""
}

func TestSummarizeText(t *testing.T) {
	fake := &fakeGenerator{reply: "- punto uno"}
	svc := NewService(fake)

	t.Run("Empty input is rejected without a call", func(t *testing.T) {
		_, err := svc.SummarizeText(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrInsufficientInput)
		assert.Equal(t, 0, fake.calls)
	})

	t.Run("Notes are embedded in the prompt", func(t *testing.T) {
		out, err := svc.SummarizeText(context.Background(), "verbale di udienza")
		assert.NoError(t, err)
		assert.Equal(t, "- punto uno", out)
		assert.Contains(t, promptText(t, fake.contents), "verbale di udienza")
		assert.Nil(t, fake.config)
	})
}

func TestDraftEmail(t *testing.T) {
	fake := &fakeGenerator{reply: "Oggetto: Aggiornamento\n---BODY---\nGentile cliente"}
	svc := NewService(fake)

	_, err := svc.DraftEmail(context.Background(), "", "rinnovo contratto")
	assert.ErrorIs(t, err, ErrInsufficientInput)

	out, err := svc.DraftEmail(context.Background(), "Mario Rossi", "rinnovo contratto")
	assert.NoError(t, err)
	assert.Contains(t, out, "---BODY---")
	prompt := promptText(t, fake.contents)
	assert.Contains(t, prompt, "Mario Rossi")
	assert.Contains(t, prompt, "rinnovo contratto")
	assert.Contains(t, prompt, "---BODY---")
}

func TestDraftLegalLetter(t *testing.T) {
	fake := &fakeGenerator{reply: "Oggetto: Diffida\n---BODY---\n..."}
	svc := NewService(fake)
	firm := &models.FirmProfile{Name: "Studio Bianchi", Address: "Via Roma 1", VATNumber: "IT123", Email: "info@bianchi.it", Phone: "06 555"}
	client := &models.Client{Name: "ACME Srl", TaxCode: "ACM123"}

	_, err := svc.DraftLegalLetter(context.Background(), firm, nil, "Diffida", "pagamento fattura")
	assert.ErrorIs(t, err, ErrInsufficientInput)

	_, err = svc.DraftLegalLetter(context.Background(), firm, client, "Diffida", "pagamento fattura scaduta")
	assert.NoError(t, err)
	prompt := promptText(t, fake.contents)
	assert.Contains(t, prompt, "Studio Bianchi")
	assert.Contains(t, prompt, "ACM123")
	assert.Contains(t, prompt, "Diffida")
	assert.Contains(t, prompt, "Spett.le ACME Srl")
}

func TestAnalyzePractice(t *testing.T) {
	fake := &fakeGenerator{reply: "{}"}
	svc := NewService(fake)
	practice := &models.Practice{Title: "Recupero crediti", Type: "Commerciale", Notes: "urgente"}
	practice.ID = 3
	closed := models.Practice{Type: "Commerciale", Value: 10000, Status: models.PracticeStatusClosed, OpenedAt: "2024-01-10"}
	closed.ID = 1
	open := models.Practice{Type: "Societario", Status: models.PracticeStatusOpen, OpenedAt: "2024-02-01"}
	open.ID = 2

	_, err := svc.AnalyzePractice(context.Background(), practice, []models.Practice{closed, open})
	assert.NoError(t, err)
	prompt := promptText(t, fake.contents)
	assert.Contains(t, prompt, "Tipo: Commerciale, Valore: 10000")
	// Open practices never enter the historical summary
	assert.NotContains(t, prompt, "Societario")

	t.Run("No history falls back to placeholder", func(t *testing.T) {
		_, err := svc.AnalyzePractice(context.Background(), practice, nil)
		assert.NoError(t, err)
		assert.Contains(t, promptText(t, fake.contents), "Nessun dato storico disponibile.")
	})
}

func TestClassifyPracticeUsesJSONSchema(t *testing.T) {
	fake := &fakeGenerator{reply: `{"type":"Commerciale","priority":"Alta"}`}
	svc := NewService(fake)

	_, err := svc.ClassifyPractice(context.Background(), "", " ")
	assert.ErrorIs(t, err, ErrInsufficientInput)

	out, err := svc.ClassifyPractice(context.Background(), "Recupero crediti", "decreto ingiuntivo urgente")
	assert.NoError(t, err)
	assert.JSONEq(t, `{"type":"Commerciale","priority":"Alta"}`, out)

	if assert.NotNil(t, fake.config) {
		assert.Equal(t, "application/json", fake.config.ResponseMIMEType)
		if assert.NotNil(t, fake.config.ResponseSchema) {
			assert.Equal(t, genai.TypeObject, fake.config.ResponseSchema.Type)
			assert.Contains(t, fake.config.ResponseSchema.Properties, "type")
			assert.Contains(t, fake.config.ResponseSchema.Properties, "priority")
			assert.ElementsMatch(t, []string{"type", "priority"}, fake.config.ResponseSchema.Required)
		}
	}
}

func TestSearchKnowledgeBase(t *testing.T) {
	fake := &fakeGenerator{reply: "Pratica ID 7"}
	svc := NewService(fake)
	p := models.Practice{Title: "Sfratto", Type: "Civile Immobiliare", Notes: "morosità"}
	p.ID = 7

	_, err := svc.SearchKnowledgeBase(context.Background(), "", []models.Practice{p})
	assert.ErrorIs(t, err, ErrInsufficientInput)

	_, err = svc.SearchKnowledgeBase(context.Background(), "sfratti in corso", []models.Practice{p})
	assert.NoError(t, err)
	prompt := promptText(t, fake.contents)
	assert.Contains(t, prompt, "ID: 7, Titolo: Sfratto")
	assert.Contains(t, prompt, "sfratti in corso")
}

func TestAnalyzeDocument(t *testing.T) {
	fake := &fakeGenerator{reply: "Il documento è un contratto."}
	svc := NewService(fake)
	payload := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 contenuto"))
	doc := &models.Document{Name: "contratto.pdf", Type: "application/pdf", DataURL: "data:application/pdf;base64," + payload}

	t.Run("Malformed data URL is rejected", func(t *testing.T) {
		bad := &models.Document{Type: "application/pdf", DataURL: "not-a-data-url"}
		_, err := svc.AnalyzeDocument(context.Background(), bad, "Di cosa si tratta?")
		assert.ErrorIs(t, err, ErrInvalidDataURL)
	})

	t.Run("Invalid base64 payload is rejected", func(t *testing.T) {
		bad := &models.Document{Type: "application/pdf", DataURL: "data:application/pdf;base64,!!!"}
		_, err := svc.AnalyzeDocument(context.Background(), bad, "Di cosa si tratta?")
		assert.ErrorIs(t, err, ErrInvalidDataURL)
	})

	t.Run("Decoded bytes travel with the question", func(t *testing.T) {
		out, err := svc.AnalyzeDocument(context.Background(), doc, "Di cosa si tratta?")
		assert.NoError(t, err)
		assert.Equal(t, "Il documento è un contratto.", out)

		parts := fake.contents[0].Parts
		assert.Len(t, parts, 2)
		assert.Contains(t, parts[0].Text, "Di cosa si tratta?")
		if assert.NotNil(t, parts[1].InlineData) {
			assert.Equal(t, "application/pdf", parts[1].InlineData.MIMEType)
			assert.Equal(t, []byte("%PDF-1.4 contenuto"), parts[1].InlineData.Data)
		}
	})
}

func TestSuggestFeeEnablesSearchGrounding(t *testing.T) {
	fake := &fakeGenerator{reply: `{"suggestedFee": 2500, "justification": "tariffe medie"}`}
	svc := NewService(fake)

	_, err := svc.SuggestFee(context.Background(), "Recupero crediti", "Commerciale")
	assert.NoError(t, err)
	if assert.NotNil(t, fake.config) && assert.Len(t, fake.config.Tools, 1) {
		assert.NotNil(t, fake.config.Tools[0].GoogleSearch)
	}
	// No response schema together with search tools
	assert.Nil(t, fake.config.ResponseSchema)
}

func TestCheckQuoteCompliance(t *testing.T) {
	fake := &fakeGenerator{reply: "CONFORMITÀ: NO\nManca la stima della durata."}
	svc := NewService(fake)

	_, err := svc.CheckQuoteCompliance(context.Background(), "  ", "Commerciale")
	assert.ErrorIs(t, err, ErrInsufficientInput)

	out, err := svc.CheckQuoteCompliance(context.Background(), "Onorario 2000 euro, rappresentanza nelle opportune sedi", "Commerciale")
	assert.NoError(t, err)
	assert.Contains(t, out, "CONFORMITÀ:")
	assert.Contains(t, promptText(t, fake.contents), "D.M. 147/2022")
}
