package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"legal_crm_go/models"

	"google.golang.org/genai"
)

var (
	// ErrInsufficientInput is returned when a drafting operation is called
	// without the inputs its prompt needs.
	ErrInsufficientInput = errors.New("insufficient input for generation")
	// ErrInvalidDataURL is returned when a document's data URL cannot be
	// decoded for multimodal analysis.
	ErrInvalidDataURL = errors.New("invalid document data URL")
)

// Generator produces text from prompt contents. The production
// implementation talks to the Gemini API; tests substitute a fake.
type Generator interface {
	Generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error)
}

// GeminiGenerator implements Generator using Google's Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini-backed generator
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("content generation failed: %w", err)
	}
	return resp.Text(), nil
}

// Service exposes the firm's drafting and analysis assistants
type Service struct {
	gen Generator
}

// NewService creates the drafting service on top of a generator
func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

func textContents(prompt string) []*genai.Content {
	return []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
}

// SummarizeText condenses legal notes into a few key points
func (s *Service) SummarizeText(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrInsufficientInput
	}
	prompt := fmt.Sprintf("Riassumi le seguenti note legali in 3-4 punti chiave. Sii conciso e professionale:\n\n---\n%s\n---", text)
	return s.gen.Generate(ctx, textContents(prompt), nil)
}

// DraftEmail drafts a courteous client email about a topic. The result
// carries the generated subject first, separated from the body by
// "---BODY---".
func (s *Service) DraftEmail(ctx context.Context, clientName, topic string) (string, error) {
	if strings.TrimSpace(clientName) == "" || strings.TrimSpace(topic) == "" {
		return "", ErrInsufficientInput
	}
	prompt := fmt.Sprintf(`Scrivi una bozza di email professionale e cortese per un cliente di uno studio legale di nome %s.
Basandoti sull'argomento, genera prima un oggetto (subject) appropriato.
L'argomento è: "%s".
L'email deve avere un tono rassicurante e informativo. Includi un segnaposto per i dettagli specifici.
Separa l'oggetto dal corpo con "---BODY---".`, clientName, topic)
	return s.gen.Generate(ctx, textContents(prompt), nil)
}

// DraftOfficialEmail drafts a formal client email covering given key
// points in a requested tone, subject and body separated by "---BODY---".
func (s *Service) DraftOfficialEmail(ctx context.Context, clientName, tone, points string) (string, error) {
	if clientName == "" || tone == "" || strings.TrimSpace(points) == "" {
		return "", ErrInsufficientInput
	}
	prompt := fmt.Sprintf(`Agisci come un avvocato. Scrivi una bozza di email formale per il cliente %s.

Il tono dell'email deve essere: %s.

L'email deve coprire i seguenti punti chiave:
---
%s
---

Basandoti sui punti chiave, genera prima un oggetto (subject) appropriato per l'email.
Poi, struttura l'email con un'apertura formale, sviluppa i punti in paragrafi chiari e concludi con una chiusura professionale e i segnaposto per la firma.

Separa l'oggetto dal corpo dell'email con "---BODY---".
Formato atteso:
Oggetto: [Generato dall'AI]
---BODY---
[Corpo dell'email]`, clientName, tone, points)
	return s.gen.Generate(ctx, textContents(prompt), nil)
}

// DraftLegalLetter drafts a complete legal letter on the firm's
// letterhead data, ready for the PDF renderer. Subject and body are
// separated by "---BODY---".
func (s *Service) DraftLegalLetter(ctx context.Context, firm *models.FirmProfile, client *models.Client, letterType, letterContext string) (string, error) {
	if firm == nil || client == nil || letterType == "" || letterContext == "" {
		return "", ErrInsufficientInput
	}
	prompt := fmt.Sprintf(`Agisci come un avvocato per lo studio legale "%s". Redigi una lettera legale completa e pronta per l'uso in italiano. NON usare asterischi o segnaposto generici come "[Data]" o "[Indirizzo Cliente]", ma componi un documento realistico e professionale.

INTESTAZIONE MITTENTE (Usa questi dati):
- Studio Legale: %s
- Indirizzo: %s
- Email: %s
- Telefono: %s
- P.IVA: %s

DATI DESTINATARIO (Usa questi dati):
- Nome: %s
- Codice Fiscale: %s
- Riferimento per indirizzo: "Spett.le %s"

DETTAGLI LETTERA:
- Tipo di Lettera: "%s"
- Contesto e Punti Chiave forniti: "%s"

ISTRUZIONI:
1. Genera un Oggetto (Subject) chiaro e professionale basato sul tipo di lettera e sul contesto.
2. Scrivi il corpo della lettera. Sviluppa i punti chiave del contesto in un testo legale formale e completo.
3. Formatta l'intera lettera includendo: l'intestazione completa del mittente, la data odierna (in formato "Luogo, gg mese aaaa"), i dati del destinatario, l'oggetto e il corpo del testo.
4. Termina con una chiusura formale (es. "Distinti saluti,") e la firma dello studio ("%s").
5. Separa l'oggetto generato dal corpo completo della lettera con "---BODY---".

FORMATO ATTESO:
Oggetto: [Generato dall'AI]
---BODY---
[Corpo completo della lettera, iniziando con l'intestazione del mittente, seguito da data, destinatario, oggetto ripetuto e testo]`,
		firm.Name, firm.Name, firm.Address, firm.Email, firm.Phone, firm.VATNumber,
		client.Name, client.TaxCode, client.Name,
		letterType, letterContext, firm.Name)
	return s.gen.Generate(ctx, textContents(prompt), nil)
}

// AnalyzePractice estimates duration and final value of a practice from
// the firm's closed-practice history.
func (s *Service) AnalyzePractice(ctx context.Context, practice *models.Practice, historical []models.Practice) (string, error) {
	if practice == nil {
		return "", ErrInsufficientInput
	}

	var lines []string
	for _, p := range historical {
		if p.ID == practice.ID || !p.IsClosed() {
			continue
		}
		lines = append(lines, fmt.Sprintf("Tipo: %s, Valore: %.0f, Durata: %d mesi", p.Type, p.Value, monthsSince(p.OpenedAt)))
	}
	historySummary := strings.Join(lines, "; ")
	if historySummary == "" {
		historySummary = "Nessun dato storico disponibile."
	}

	prompt := fmt.Sprintf(`Sei un analista di dati per uno studio legale. Basandoti sui seguenti dati storici anonimizzati di pratiche concluse:
---
%s
---
Analizza la seguente nuova pratica:
- Titolo: "%s"
- Tipo: "%s"
- Note: "%s"

Fornisci una stima della durata probabile in mesi e del valore finale potenziale della pratica. Spiega il tuo ragionamento in una frase.
Rispondi in formato JSON con le chiavi "stima_durata_mesi", "stima_valore" e "ragionamento".`, historySummary, practice.Title, practice.Type, practice.Notes)
	return s.gen.Generate(ctx, textContents(prompt), nil)
}

func monthsSince(date string) int {
	opened, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	days := time.Since(opened).Hours() / 24
	return int(days/30 + 0.5)
}

// ClassifyPractice assigns a legal category and a priority to a practice
// from its title and notes. The model is constrained to a JSON object
// with "type" and "priority" keys.
func (s *Service) ClassifyPractice(ctx context.Context, title, notes string) (string, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(notes) == "" {
		return "", ErrInsufficientInput
	}
	prompt := fmt.Sprintf(`Analizza il titolo e la descrizione di questa pratica legale e classificala.
Titolo: "%s"
Descrizione: "%s"
Le categorie di tipo possibili sono ['Civile Immobiliare', 'Societario', 'Diritto del Lavoro', 'Commerciale', 'Contrattualistica'].
Le priorità sono ['Alta', 'Media', 'Bassa']. Scegli la priorità in base a potenziali urgenze o complessità menzionate.`, title, notes)

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"type":     {Type: genai.TypeString, Description: "La categoria legale della pratica."},
				"priority": {Type: genai.TypeString, Description: "La priorità stimata (Alta, Media, Bassa)."},
			},
			Required: []string{"type", "priority"},
		},
	}
	return s.gen.Generate(ctx, textContents(prompt), config)
}

// SearchKnowledgeBase answers a free-text question against the firm's
// practice archive, citing practice IDs.
func (s *Service) SearchKnowledgeBase(ctx context.Context, query string, practices []models.Practice) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrInsufficientInput
	}
	entries := make([]string, 0, len(practices))
	for _, p := range practices {
		entries = append(entries, fmt.Sprintf("ID: %d, Titolo: %s, Tipo: %s, Note: %s", p.ID, p.Title, p.Type, p.Notes))
	}
	prompt := fmt.Sprintf(`Agisci come un assistente legale esperto. Analizza il seguente archivio di pratiche legali e rispondi alla domanda dell'utente.

Domanda Utente: "%s"

Archivio Interno:
---
%s
---

Identifica le pratiche più pertinenti alla domanda. Fornisci un riassunto dei punti salienti per ciascuna pratica trovata, includendo sempre il loro ID. Se non trovi nulla di pertinente, indicalo.`, query, strings.Join(entries, "\n---\n"))
	return s.gen.Generate(ctx, textContents(prompt), nil)
}

// AnalyzeDocument answers a question about a stored document. The
// document content travels inline as decoded bytes with its MIME type.
func (s *Service) AnalyzeDocument(ctx context.Context, doc *models.Document, question string) (string, error) {
	if doc == nil || strings.TrimSpace(question) == "" {
		return "", ErrInsufficientInput
	}

	// Data URL format: data:<mime>;base64,<payload>
	_, payload, found := strings.Cut(doc.DataURL, ",")
	if !found {
		return "", ErrInvalidDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(fmt.Sprintf("Analizza il seguente documento e rispondi alla domanda. Domanda: %s", question)),
			genai.NewPartFromBytes(data, doc.Type),
		}, genai.RoleUser),
	}
	return s.gen.Generate(ctx, contents, nil)
}

// SuggestMilestones proposes the typical procedural phases for a practice
func (s *Service) SuggestMilestones(ctx context.Context, practice *models.Practice) (string, error) {
	if practice == nil {
		return "", ErrInsufficientInput
	}
	prompt := fmt.Sprintf(`Agisci come un assistente legale esperto. Per una pratica di tipo "%s" intitolata "%s", suggerisci un elenco di 5-7 milestone o fasi procedurali tipiche e importanti in Italia. Fornisci solo un elenco puntato. Esempi: 'Prima udienza', 'Deposito memoria conclusionale', 'Sentenza'.`, practice.Type, practice.Title)
	return s.gen.Generate(ctx, textContents(prompt), nil)
}

// SuggestFee proposes a competitive fee for a practice, grounded on a
// web search of current Italian legal rates.
func (s *Service) SuggestFee(ctx context.Context, practiceTitle, practiceType string) (string, error) {
	if strings.TrimSpace(practiceTitle) == "" && strings.TrimSpace(practiceType) == "" {
		return "", ErrInsufficientInput
	}
	prompt := fmt.Sprintf(`Basandoti su una ricerca web di tariffe legali in Italia, suggerisci un onorario competitivo per una pratica con il seguente titolo e tipo.
Titolo: "%s"
Tipo: "%s"
Fornisci una stima numerica e una breve giustificazione in una frase.
Rispondi in formato JSON con le chiavi "suggestedFee" (numero) e "justification" (stringa).`, practiceTitle, practiceType)

	// Response schemas cannot be combined with search grounding, so the
	// JSON shape is asked for in the prompt instead.
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}
	return s.gen.Generate(ctx, textContents(prompt), config)
}

// CheckQuoteCompliance reviews a quote against Italian forensic fee
// parameters and professional conduct rules.
func (s *Service) CheckQuoteCompliance(ctx context.Context, quoteText, practiceType string) (string, error) {
	if strings.TrimSpace(quoteText) == "" {
		return "", ErrInsufficientInput
	}
	prompt := fmt.Sprintf(`Agisci come un esperto avvocato italiano specializzato in deontologia e parametri forensi (D.M. 147/2022).
Analizza in modo critico e approfondito il seguente preventivo per una pratica legale di tipo "%s".

Testo del Preventivo:
---
%s
---

Valuta la conformità del preventivo, prestando particolare attenzione ai seguenti punti deboli comuni:
1.  **Chiarezza della Descrizione dell'Attività:** Voci come "Rappresentanza e difesa nelle opportune sedi" sono troppo generiche. La descrizione è precisa? Specifica se l'attività è stragiudiziale o giudiziale, quali fasi sono incluse (es. negoziazione, mediazione, primo grado di giudizio) e quali sono escluse?
2.  **Equità e Parametri Forensi:** L'onorario è proporzionato e giustificato rispetto alla complessità descritta e ai parametri forensi? La mancanza di dettaglio nella descrizione dell'attività rende difficile questa valutazione.
3.  **Completezza:** Il preventivo include tutte le informazioni necessarie per la trasparenza verso il cliente? Controlla la presenza di: modalità e tempistiche di pagamento, stima della durata, stima delle spese vive, e clausole per la revisione del compenso.

ISTRUZIONI PER LA RISPOSTA:
- Inizia la risposta con "CONFORMITÀ: SÌ" o "CONFORMITÀ: NO".
- Fornisci un sommario di una o due frasi che riassuma il tuo giudizio complessivo.
- Elenca i suggerimenti di miglioramento in modo dettagliato e strutturato. Usa titoli chiari in grassetto (es. **Chiarezza della Descrizione dell'Attività (Punto 1):**) e utilizza elenchi puntati (con '*' o '-') per ogni raccomandazione specifica.
- Sii molto specifico nei tuoi suggerimenti, come se stessi istruendo un collega.
- Mantieni un tono professionale e costruttivo.`, practiceType, quoteText)
	return s.gen.Generate(ctx, textContents(prompt), nil)
}
