// Package enrich implements the generative completion adapter. It
// summarizes the known dossier fields into a French prompt, asks the
// Gemini API for a strict-JSON completion, and maps the answer onto a
// partial record. The whole answer is discarded on any transport or
// parse failure; generated fields are advisory and merge fill-empty
// like any other source.
package enrich

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/entityscope/orbite/pkg/constants"
	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/errors"
	"github.com/entityscope/orbite/pkg/logging"
)

// GenerateFunc produces a raw completion for a prompt. The default
// implementation calls the Gemini API; tests and alternative backends
// can replace it.
type GenerateFunc func(ctx context.Context, model, prompt string) (string, error)

// Enricher is the generative-text adapter.
type Enricher struct {
	apiKey   string
	model    string
	timeout  time.Duration
	generate GenerateFunc

	mu     sync.Mutex
	client *genai.Client
}

// Option configures the adapter.
type Option func(*Enricher)

// WithAPIKey replaces the API key read from GEMINI_API_KEY.
func WithAPIKey(key string) Option {
	return func(e *Enricher) {
		e.apiKey = key
	}
}

// WithModel replaces the completion model.
func WithModel(model string) Option {
	return func(e *Enricher) {
		e.model = model
	}
}

// WithTimeout replaces the per-call completion timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Enricher) {
		e.timeout = d
	}
}

// WithGenerateFunc replaces the completion backend.
func WithGenerateFunc(fn GenerateFunc) Option {
	return func(e *Enricher) {
		e.generate = fn
	}
}

// New creates a Gemini-backed enricher. The API key defaults to the
// GEMINI_API_KEY environment variable; it is only required once Enrich
// is called with the default backend.
func New(opts ...Option) *Enricher {
	e := &Enricher{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		model:   constants.DefaultEnrichModel,
		timeout: constants.EnrichTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.generate == nil {
		e.generate = e.generateGemini
	}
	return e
}

// ID returns the source identifier.
func (e *Enricher) ID() entity.SourceID {
	return entity.SourceEnrich
}

// Name returns the source display name.
func (e *Enricher) Name() string {
	return "Gemini"
}

// completion is the structured answer the model is asked for.
type completion struct {
	DescriptionFR string    `json:"description_fr"`
	DescriptionEN string    `json:"description_en"`
	ExpertiseFR   commaList `json:"expertise_fr"`
	ExpertiseEN   commaList `json:"expertise_en"`
	ParentOrgName string    `json:"parent_org_name"`
	ParentOrgQID  string    `json:"parent_org_qid"`
}

// commaList decodes either a JSON string or an array of strings;
// arrays are joined with ", ". Models return both shapes for topic
// lists regardless of the instructions.
type commaList string

// UnmarshalJSON implements json.Unmarshaler.
func (c *commaList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = commaList(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*c = commaList(strings.Join(items, ", "))
	return nil
}

// Enrich generates candidate narrative fields for the current entity.
// The entity must carry at least a name; an unnamed dossier gives the
// model nothing to ground on.
func (e *Enricher) Enrich(ctx context.Context, ent *entity.Entity) (*entity.PartialRecord, error) {
	if ent == nil {
		return nil, &errors.ValidationError{Field: "entity", Message: "entity must not be nil"}
	}
	if strings.TrimSpace(ent.Name) == "" && strings.TrimSpace(ent.LegalName) == "" {
		return nil, &errors.ValidationError{Field: "name", Message: "dossier has no name to summarize"}
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.generate(ctx, e.model, buildPrompt(ent))
	if err != nil {
		return nil, classifyGenerate(err)
	}

	body := extractJSON(raw)
	if body == "" {
		return nil, errors.NewParseError("json", "enrich", "completion carries no JSON object", nil)
	}
	var got completion
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		return nil, errors.WrapParse("json", "enrich", err)
	}

	rec := &entity.PartialRecord{
		Source:        entity.SourceEnrich,
		DescriptionFR: strings.TrimSpace(got.DescriptionFR),
		DescriptionEN: strings.TrimSpace(got.DescriptionEN),
		ExpertiseFR:   strings.TrimSpace(string(got.ExpertiseFR)),
		ExpertiseEN:   strings.TrimSpace(string(got.ExpertiseEN)),
		ParentOrgName: strings.TrimSpace(got.ParentOrgName),
		ParentOrgQID:  strings.TrimSpace(got.ParentOrgQID),
	}
	if rec.ParentOrgQID != "" && !entity.ValidQID(rec.ParentOrgQID) {
		logging.Ctx(ctx).Warn().
			Str("parent_org_qid", rec.ParentOrgQID).
			Msg("discarding malformed generated QID")
		rec.ParentOrgQID = ""
	}
	return rec, nil
}

// buildPrompt renders the known fields into a French completion prompt
// that demands a bare JSON object in return.
func buildPrompt(ent *entity.Entity) string {
	var b strings.Builder
	b.WriteString("Tu es un assistant de veille économique. Complète la fiche de l'organisation suivante.\n\nFiche actuelle :\n")
	for _, f := range entity.MergeFields() {
		if v := ent.Get(f); v != "" {
			fmt.Fprintf(&b, "- %s : %s\n", f, v)
		}
	}
	b.WriteString(`
Réponds uniquement avec un objet JSON ayant exactement ces clés (chaîne vide si inconnu) :
{"description_fr": "", "description_en": "", "expertise_fr": "", "expertise_en": "", "parent_org_name": "", "parent_org_qid": ""}

- description_fr / description_en : une phrase factuelle décrivant l'organisation, en français puis en anglais.
- expertise_fr / expertise_en : 3 à 6 domaines d'expertise séparés par des virgules.
- parent_org_name : nom de l'organisation mère si elle existe.
- parent_org_qid : identifiant Wikidata de l'organisation mère (forme Q1234), uniquement si tu en es certain.
N'invente aucun identifiant.`)
	return b.String()
}

var fencedJSON = regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")

// extractJSON returns the first JSON object carried in a completion,
// tolerating markdown code fences and prose around it. Returns "" when
// no object boundary is found.
func extractJSON(raw string) string {
	if m := fencedJSON.FindStringSubmatch(raw); len(m) > 1 {
		raw = m[1]
	}
	start := strings.Index(raw, "{")
	if start < 0 {
		return ""
	}
	dec := json.NewDecoder(strings.NewReader(raw[start:]))
	var obj json.RawMessage
	if err := dec.Decode(&obj); err != nil {
		return ""
	}
	return string(obj)
}

// classifyGenerate maps a completion backend failure onto the fetch
// error taxonomy so retry dispatch and degradation work the same way
// as for the lookup sources.
func classifyGenerate(err error) error {
	var cfgErr *errors.ConfigError
	if stderrors.As(err, &cfgErr) {
		return err
	}
	var apiErr *genai.APIError
	if stderrors.As(err, &apiErr) {
		return &errors.FetchError{
			Source:     string(entity.SourceEnrich),
			Op:         "generate",
			Reason:     errors.ClassifyStatus(apiErr.Code),
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
			Err:        err,
		}
	}
	if stderrors.Is(err, context.Canceled) {
		return &errors.FetchError{
			Source:  string(entity.SourceEnrich),
			Op:      "generate",
			Reason:  errors.ReasonClient,
			Message: "canceled",
			Err:     errors.ErrCanceled,
		}
	}
	return &errors.FetchError{
		Source:  string(entity.SourceEnrich),
		Op:      "generate",
		Reason:  errors.ReasonTransient,
		Message: err.Error(),
		Err:     err,
	}
}

// generateGemini is the default backend. The client is created on
// first use and reused for the lifetime of the enricher.
func (e *Enricher) generateGemini(ctx context.Context, model, prompt string) (string, error) {
	client, err := e.getOrCreateClient(ctx)
	if err != nil {
		return "", err
	}
	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(float32(0.2)),
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (e *Enricher) getOrCreateClient(ctx context.Context) (*genai.Client, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client != nil {
		return e.client, nil
	}
	if e.apiKey == "" {
		return nil, errors.NewConfigError("enrich", "GEMINI_API_KEY not set", errors.ErrAPIKeyRequired)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  e.apiKey,
	})
	if err != nil {
		return nil, err
	}
	e.client = client
	return e.client, nil
}
