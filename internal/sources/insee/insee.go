// Package insee implements the French company-registry source adapter
// on top of the public recherche-entreprises search API. One endpoint
// serves both operations: free-text search lists candidate companies,
// and fetching by SIREN narrows the same search to the exact match and
// maps the head-office block onto the address fields.
package insee

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/entityscope/orbite/internal/sources/cache"
	"github.com/entityscope/orbite/internal/transport"
	"github.com/entityscope/orbite/pkg/constants"
	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/errors"
)

// searchResponse is the recherche-entreprises payload.
type searchResponse struct {
	Results []result `json:"results"`
}

type result struct {
	SIREN              string `json:"siren"`
	NomComplet         string `json:"nom_complet"`
	NomRaisonSociale   string `json:"nom_raison_sociale"`
	ActivitePrincipale string `json:"activite_principale"`
	EtatAdministratif  string `json:"etat_administratif"`
	Siege              siege  `json:"siege"`
}

type siege struct {
	SIRET          string `json:"siret"`
	Adresse        string `json:"adresse"`
	CodePostal     string `json:"code_postal"`
	LibelleCommune string `json:"libelle_commune"`
}

// Source is the INSEE registry adapter.
type Source struct {
	client  *transport.Client
	cache   *cache.Cache
	retry   transport.RetryConfig
	baseURL string
}

// Option configures the adapter.
type Option func(*Source)

// WithTransport replaces the HTTP client.
func WithTransport(c *transport.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// WithCache replaces the response cache.
func WithCache(c *cache.Cache) Option {
	return func(s *Source) {
		s.cache = c
	}
}

// WithRetryConfig replaces the retry policy.
func WithRetryConfig(cfg transport.RetryConfig) Option {
	return func(s *Source) {
		s.retry = cfg
	}
}

// WithBaseURL overrides the search endpoint.
func WithBaseURL(u string) Option {
	return func(s *Source) {
		s.baseURL = u
	}
}

// New creates an INSEE adapter.
func New(opts ...Option) *Source {
	s := &Source{
		client:  transport.New(),
		retry:   transport.DefaultRetryConfig(),
		baseURL: constants.INSEESearchURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = cache.NewForSource(entity.SourceINSEE)
	}
	return s
}

// ID returns the source identifier.
func (s *Source) ID() entity.SourceID {
	return entity.SourceINSEE
}

// Name returns the source display name.
func (s *Source) Name() string {
	return "INSEE"
}

// Search returns candidate companies for a name or SIREN query.
func (s *Source) Search(ctx context.Context, query string) ([]entity.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &errors.ValidationError{Field: "query", Message: "empty search query"}
	}

	key := cache.Key("search", query)
	if v, found := s.cache.Get(key); found {
		if hits, ok := v.([]entity.SearchHit); ok {
			return hits, nil
		}
	}

	results, err := s.search(ctx, "search", query)
	if err != nil {
		return nil, err
	}

	hits := make([]entity.SearchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, entity.SearchHit{
			Source:      entity.SourceINSEE,
			ID:          r.SIREN,
			Label:       r.NomComplet,
			Description: describe(r),
		})
	}
	s.cache.Set(key, hits)
	return hits, nil
}

// Fetch builds the typed record for one SIREN.
func (s *Source) Fetch(ctx context.Context, siren string) (*entity.PartialRecord, error) {
	siren = strings.TrimSpace(siren)
	if !entity.ValidSIREN(siren) {
		return nil, &errors.FetchError{
			Source:  s.ID().String(),
			Op:      "fetch",
			Reason:  errors.ReasonClient,
			Message: "malformed SIREN " + siren,
		}
	}

	key := cache.Key("fetch", siren)
	if v, found := s.cache.Get(key); found {
		if rec, ok := v.(*entity.PartialRecord); ok {
			return rec, nil
		}
	}

	results, err := s.search(ctx, "fetch", siren)
	if err != nil {
		return nil, err
	}

	for _, r := range results {
		if r.SIREN != siren {
			continue
		}
		rec := &entity.PartialRecord{
			Source:        entity.SourceINSEE,
			Name:          r.NomComplet,
			LegalName:     r.NomRaisonSociale,
			SIREN:         r.SIREN,
			SIRET:         r.Siege.SIRET,
			NAF:           r.ActivitePrincipale,
			AddressStreet: r.Siege.Adresse,
			AddressPostal: r.Siege.CodePostal,
			AddressCity:   r.Siege.LibelleCommune,
		}
		s.cache.Set(key, rec)
		return rec, nil
	}

	return nil, &errors.NotFoundError{Resource: "company", ID: siren}
}

// search runs one registry query.
func (s *Source) search(ctx context.Context, op, query string) ([]result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("per_page", strconv.Itoa(constants.SearchPageSize))

	var out searchResponse
	err := transport.Retry(ctx, s.retry, func() error {
		var resp searchResponse
		if err := s.client.GetJSON(ctx, s.ID().String(), op, s.baseURL+"?"+params.Encode(), &resp); err != nil {
			return err
		}
		out = resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out.Results, nil
}

// describe summarizes a search result for the disambiguation list.
func describe(r result) string {
	parts := make([]string, 0, 3)
	if r.ActivitePrincipale != "" {
		parts = append(parts, "APE "+r.ActivitePrincipale)
	}
	if r.Siege.LibelleCommune != "" {
		parts = append(parts, r.Siege.LibelleCommune)
	}
	desc := strings.Join(parts, ", ")
	if r.EtatAdministratif != "" && r.EtatAdministratif != "A" {
		if desc != "" {
			desc += " "
		}
		desc += "(fermée)"
	}
	return desc
}
