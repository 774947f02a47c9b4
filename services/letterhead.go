package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"legal_crm_go/models"

	"github.com/microcosm-cc/bluemonday"
)

// SanitizeGeneratedBody strips any markup a generated draft may carry
// before it is persisted or rendered on the letterhead. Drafts come from
// the text-generation service and are treated as untrusted input.
func SanitizeGeneratedBody(body string) string {
	return bluemonday.UGCPolicy().Sanitize(body)
}

// SplitGeneratedDraft separates the subject line from the body of a
// generated draft. Drafting prompts ask for "Oggetto: ..." followed by a
// "---BODY---" separator; drafts missing the separator become all body.
func SplitGeneratedDraft(draft string) (subject, body string) {
	const separator = "---BODY---"
	head, tail, found := strings.Cut(draft, separator)
	if !found {
		return "", strings.TrimSpace(draft)
	}
	subject = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(head), "Oggetto:"))
	return subject, strings.TrimSpace(tail)
}

const letterTemplate = `<!DOCTYPE html>
<html lang="it">
<head>
<meta charset="utf-8">
<style>
  body { font-family: Georgia, 'Times New Roman', serif; font-size: 12pt; color: #1a1a1a; }
  .letterhead { border-bottom: 2px solid #1a1a1a; padding-bottom: 12px; margin-bottom: 28px; }
  .letterhead h1 { font-size: 16pt; margin: 0; }
  .letterhead p { font-size: 9pt; margin: 2px 0; color: #444; }
  .subject { font-weight: bold; margin: 24px 0 16px 0; }
  .body { white-space: pre-wrap; line-height: 1.5; }
  .totals td { padding: 4px 12px; }
  .totals .grand { font-weight: bold; border-top: 1px solid #1a1a1a; }
</style>
</head>
<body>
<div class="letterhead">
  <h1>{{.Firm.Name}}</h1>
  <p>{{.Firm.Address}}</p>
  <p>P.IVA {{.Firm.VATNumber}} &middot; {{.Firm.Email}} &middot; {{.Firm.Phone}}</p>
</div>
<div class="subject">Oggetto: {{.Subject}}</div>
<div class="body">{{.Body}}</div>
</body>
</html>`

const quoteTemplate = `<!DOCTYPE html>
<html lang="it">
<head>
<meta charset="utf-8">
<style>
  body { font-family: Georgia, 'Times New Roman', serif; font-size: 12pt; color: #1a1a1a; }
  .letterhead { border-bottom: 2px solid #1a1a1a; padding-bottom: 12px; margin-bottom: 28px; }
  .letterhead h1 { font-size: 16pt; margin: 0; }
  .letterhead p { font-size: 9pt; margin: 2px 0; color: #444; }
  h2 { font-size: 13pt; }
  .notes { white-space: pre-wrap; line-height: 1.5; margin: 16px 0; }
  .totals { border-collapse: collapse; margin-top: 24px; }
  .totals td { padding: 4px 12px; }
  .totals .grand td { font-weight: bold; border-top: 1px solid #1a1a1a; }
</style>
</head>
<body>
<div class="letterhead">
  <h1>{{.Firm.Name}}</h1>
  <p>{{.Firm.Address}}</p>
  <p>P.IVA {{.Firm.VATNumber}} &middot; {{.Firm.Email}} &middot; {{.Firm.Phone}}</p>
</div>
<h2>Preventivo &mdash; {{.Quote.PracticeTitle}}</h2>
<p>Spett.le {{.ClientName}}</p>
<p>Tipo pratica: {{.Quote.PracticeType}}</p>
<div class="notes">{{.Quote.PracticeNotes}}</div>
<table class="totals">
  <tr><td>Onorario</td><td>&euro; {{printf "%.2f" .Quote.Fee}}</td></tr>
  <tr><td>CPA</td><td>&euro; {{printf "%.2f" .Quote.CPA}}</td></tr>
  <tr><td>IVA</td><td>&euro; {{printf "%.2f" .Quote.VAT}}</td></tr>
  <tr class="grand"><td>Totale</td><td>&euro; {{printf "%.2f" .Quote.Total}}</td></tr>
</table>
</body>
</html>`

var (
	letterTmpl = template.Must(template.New("letter").Parse(letterTemplate))
	quoteTmpl  = template.Must(template.New("quote").Parse(quoteTemplate))
)

// RenderLetterHTML renders a persisted letter on the firm letterhead
func RenderLetterHTML(firm *models.FirmProfile, letter *models.Letter) (string, error) {
	data := struct {
		Firm    *models.FirmProfile
		Subject string
		Body    string
	}{firm, letter.Subject, SanitizeGeneratedBody(letter.Body)}

	var buf bytes.Buffer
	if err := letterTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render letter: %w", err)
	}
	return buf.String(), nil
}

// RenderQuoteHTML renders a persisted quote on the firm letterhead
func RenderQuoteHTML(firm *models.FirmProfile, quote *models.Quote, clientName string) (string, error) {
	sanitized := *quote
	sanitized.PracticeNotes = SanitizeGeneratedBody(quote.PracticeNotes)

	data := struct {
		Firm       *models.FirmProfile
		Quote      *models.Quote
		ClientName string
	}{firm, &sanitized, clientName}

	var buf bytes.Buffer
	if err := quoteTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render quote: %w", err)
	}
	return buf.String(), nil
}
