// Package wikidata implements the knowledge-graph source adapter. It
// searches organizations through the Wikidata action API, then builds a
// typed record in two steps: a label and description lookup, and a
// SPARQL claims lookup for identifiers, website, inception, and the
// parent organization. Affiliated organizations are harvested from
// subsidiary links in both directions.
package wikidata

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
	"github.com/entityscope/orbite/pkg/logging"
)

// Source is the Wikidata adapter.
type Source struct {
	client    *transport.Client
	cache     *cache.Cache
	retry     transport.RetryConfig
	apiURL    string
	sparqlURL string
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

// WithAPIURL overrides the action API endpoint.
func WithAPIURL(u string) Option {
	return func(s *Source) {
		s.apiURL = u
	}
}

// WithSPARQLURL overrides the SPARQL endpoint.
func WithSPARQLURL(u string) Option {
	return func(s *Source) {
		s.sparqlURL = u
	}
}

// New creates a Wikidata adapter.
func New(opts ...Option) *Source {
	s := &Source{
		client:    transport.New(),
		retry:     transport.DefaultRetryConfig(),
		apiURL:    constants.WikidataAPIURL,
		sparqlURL: constants.WikidataSPARQLURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = cache.NewForSource(entity.SourceWikidata)
	}
	return s
}

// ID returns the source identifier.
func (s *Source) ID() entity.SourceID {
	return entity.SourceWikidata
}

// Name returns the source display name.
func (s *Source) Name() string {
	return "Wikidata"
}

// Search returns candidate items for a free-text query, in French.
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

	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("search", query)
	params.Set("language", "fr")
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(constants.SearchPageSize))

	var out searchResponse
	err := transport.Retry(ctx, s.retry, func() error {
		var resp searchResponse
		if err := s.client.GetJSON(ctx, s.ID().String(), "search", s.apiURL+"?"+params.Encode(), &resp); err != nil {
			return err
		}
		out = resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	hits := make([]entity.SearchHit, 0, len(out.Search))
	for _, r := range out.Search {
		hits = append(hits, entity.SearchHit{
			Source:      entity.SourceWikidata,
			ID:          r.ID,
			Label:       r.Label,
			Description: r.Description,
		})
	}
	s.cache.Set(key, hits)
	return hits, nil
}

// Fetch builds the typed record for one item. The label lookup is
// authoritative and fails the fetch; claims and relations degrade to
// absent fields when their lookups fail for good.
func (s *Source) Fetch(ctx context.Context, qid string) (*entity.PartialRecord, error) {
	if !entity.ValidQID(qid) {
		return nil, &errors.FetchError{
			Source:  s.ID().String(),
			Op:      "fetch",
			Reason:  errors.ReasonClient,
			Message: "malformed QID " + qid,
		}
	}

	key := cache.Key("fetch", qid)
	if v, found := s.cache.Get(key); found {
		if rec, ok := v.(*entity.PartialRecord); ok {
			return rec, nil
		}
	}

	rec := &entity.PartialRecord{Source: entity.SourceWikidata, QID: qid}

	if err := s.fetchLabels(ctx, qid, rec); err != nil {
		return nil, err
	}
	if err := s.fetchClaims(ctx, qid, rec); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("qid", qid).Msg("wikidata claims lookup failed")
	}
	if err := s.fetchRelations(ctx, qid, rec); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("qid", qid).Msg("wikidata relations lookup failed")
	}

	s.cache.Set(key, rec)
	return rec, nil
}

// fetchLabels fills names and descriptions from the action API.
func (s *Source) fetchLabels(ctx context.Context, qid string, rec *entity.PartialRecord) error {
	params := url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("ids", qid)
	params.Set("props", "labels|descriptions")
	params.Set("languages", "fr|en")
	params.Set("format", "json")

	var out entitiesResponse
	err := transport.Retry(ctx, s.retry, func() error {
		var resp entitiesResponse
		if err := s.client.GetJSON(ctx, s.ID().String(), "fetch", s.apiURL+"?"+params.Encode(), &resp); err != nil {
			return err
		}
		out = resp
		return nil
	})
	if err != nil {
		return err
	}

	data, found := out.Entities[qid]
	if !found {
		return nil
	}

	rec.Name = data.Labels["fr"].Value
	if rec.Name == "" {
		rec.Name = data.Labels["en"].Value
	}
	if en := data.Labels["en"].Value; en != "" && en != rec.Name {
		rec.NameEN = en
	}
	rec.DescriptionFR = data.Descriptions["fr"].Value
	rec.DescriptionEN = data.Descriptions["en"].Value
	return nil
}

// fetchClaims fills identifiers, website, inception, headquarters, and
// the parent organization from the SPARQL endpoint.
func (s *Source) fetchClaims(ctx context.Context, qid string, rec *entity.PartialRecord) error {
	row, err := s.sparqlFirstRow(ctx, "claims", claimsQuery(qid))
	if err != nil || row == nil {
		return err
	}

	rec.SIREN = binding(row, "siren")
	rec.SIRET = binding(row, "siret")
	rec.ISNI = binding(row, "isni")
	rec.ROR = binding(row, "ror")
	rec.LEI = binding(row, "lei")
	rec.Website = binding(row, "website")
	rec.CreationDate = isoDate(binding(row, "inception"))
	rec.AddressCity = binding(row, "hqLabel")

	if parent := entityURIToQID(binding(row, "parent")); entity.ValidQID(parent) {
		rec.ParentOrgQID = parent
		rec.ParentOrgName = binding(row, "parentLabel")
	}
	return nil
}

// fetchRelations harvests affiliated organizations.
func (s *Source) fetchRelations(ctx context.Context, qid string, rec *entity.PartialRecord) error {
	rows, err := s.sparqlRows(ctx, "relations", relationsQuery(qid, constants.MaxHarvestedRelations))
	if err != nil {
		return err
	}

	for _, row := range rows {
		relQID := entityURIToQID(binding(row, "item"))
		if !entity.ValidQID(relQID) || relQID == qid {
			continue
		}
		rec.Relations = append(rec.Relations, entity.Relation{
			QID:  relQID,
			Name: binding(row, "itemLabel"),
		})
	}
	return nil
}

// sparqlRows runs a SPARQL query with the tighter per-attempt timeout
// the endpoint expects.
func (s *Source) sparqlRows(ctx context.Context, op, query string) ([]map[string]sparqlValue, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("format", "json")

	var out sparqlResponse
	err := transport.Retry(ctx, s.retry, func() error {
		sctx, cancel := context.WithTimeout(ctx, constants.SPARQLTimeout)
		defer cancel()

		var resp sparqlResponse
		if err := s.client.GetJSON(sctx, s.ID().String(), op, s.sparqlURL+"?"+params.Encode(), &resp); err != nil {
			return err
		}
		out = resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out.Results.Bindings, nil
}

func (s *Source) sparqlFirstRow(ctx context.Context, op, query string) (map[string]sparqlValue, error) {
	rows, err := s.sparqlRows(ctx, op, query)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}
