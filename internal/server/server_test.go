package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orbite "github.com/entityscope/orbite"
	"github.com/entityscope/orbite/internal/server/response"
	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/errors"
	"github.com/entityscope/orbite/pkg/sources"
)

// stubSource is a scripted source for handler tests.
type stubSource struct {
	id        entity.SourceID
	hits      []entity.SearchHit
	record    *entity.PartialRecord
	searchErr error
	fetchErr  error
}

func (s *stubSource) ID() entity.SourceID { return s.id }
func (s *stubSource) Name() string        { return string(s.id) }

func (s *stubSource) Search(_ context.Context, _ string) ([]entity.SearchHit, error) {
	return s.hits, s.searchErr
}

func (s *stubSource) Fetch(_ context.Context, _ string) (*entity.PartialRecord, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	rec := *s.record
	return &rec, nil
}

// newTestServer builds a server around a dossier with the given stubs
// and returns it with its test HTTP frontend.
func newTestServer(t *testing.T, stubs ...sources.Source) (*Server, *httptest.Server) {
	t.Helper()
	dossier, err := orbite.New(
		orbite.WithStateFile(filepath.Join(t.TempDir(), "orbite.json")),
		orbite.WithSources(stubs...),
	)
	require.NoError(t, err)

	logger := zerolog.Nop()
	srv := New(dossier, &logger, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	srv.Start(ctx)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func wikidataStub() *stubSource {
	return &stubSource{
		id:   entity.SourceWikidata,
		hits: []entity.SearchHit{{Source: entity.SourceWikidata, ID: "Q1431486", Label: "Orange"}},
		record: &entity.PartialRecord{
			Source:  entity.SourceWikidata,
			Name:    "Orange",
			QID:     "Q1431486",
			Website: "https://www.orange.fr",
		},
	}
}

// decodeData unwraps the {data, error} envelope into out.
func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error *response.Error `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Nil(t, envelope.Error)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Status   string `json:"status"`
		Revision uint64 `json:"revision"`
	}
	decodeData(t, resp, &data)
	assert.Equal(t, "ok", data.Status)
	assert.Equal(t, uint64(0), data.Revision)
}

func TestIndexPage(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestEntityPatchAndGet(t *testing.T) {
	_, ts := newTestServer(t)

	body := strings.NewReader(`{"name": "Orange", "siren": "380129866"}`)
	req, err := http.NewRequest(http.MethodPatch, ts.URL+"/v1/entity", body)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/v1/entity")
	require.NoError(t, err)
	var data struct {
		Entity   entity.Entity `json:"entity"`
		Revision uint64        `json:"revision"`
	}
	decodeData(t, resp, &data)
	assert.Equal(t, "Orange", data.Entity.Name)
	assert.Equal(t, "380129866", data.Entity.SIREN)
	assert.Equal(t, uint64(2), data.Revision, "one revision per field edit")
}

func TestEntityPatchUnknownField(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodPatch, ts.URL+"/v1/entity",
		strings.NewReader(`{"nonexistent": "x"}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchEndpoint(t *testing.T) {
	_, ts := newTestServer(t, wikidataStub())

	resp, err := http.Get(ts.URL + "/v1/search?q=orange")
	require.NoError(t, err)
	var data struct {
		Hits []entity.SearchHit `json:"hits"`
	}
	decodeData(t, resp, &data)
	require.Len(t, data.Hits, 1)
	assert.Equal(t, "Q1431486", data.Hits[0].ID)

	// q is required
	resp, err = http.Get(ts.URL + "/v1/search")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMergeEndpoint(t *testing.T) {
	_, ts := newTestServer(t, wikidataStub())

	resp, err := http.Post(ts.URL+"/v1/merge/wikidata", "application/json",
		strings.NewReader(`{"id": "Q1431486"}`))
	require.NoError(t, err)
	var data struct {
		Entity entity.Entity `json:"entity"`
		Score  int           `json:"score"`
	}
	decodeData(t, resp, &data)
	assert.Equal(t, "Orange", data.Entity.Name)
	assert.Equal(t, 35, data.Score)
}

func TestMergeUnknownSource(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/merge/nonexistent", "application/json",
		strings.NewReader(`{"id": "Q1"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMergeUpstreamFailure(t *testing.T) {
	broken := &stubSource{
		id:       entity.SourceINSEE,
		fetchErr: errors.NewFetchError("insee", "fetch", errors.ReasonTransient, 503, errors.New("down")),
	}
	_, ts := newTestServer(t, broken)

	resp, err := http.Post(ts.URL+"/v1/merge/insee", "application/json",
		strings.NewReader(`{"id": "380129866"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestRelationEndpoints(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/relations", "application/json",
		strings.NewReader(`{"name": "Orange Business", "qid": "Q3351380"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Relation entity.Relation `json:"relation"`
	}
	decodeData(t, resp, &created)
	require.NotEmpty(t, created.Relation.ID)
	assert.True(t, created.Relation.Include)

	req, err := http.NewRequest(http.MethodPatch,
		ts.URL+"/v1/relations/"+created.Relation.ID,
		strings.NewReader(`{"include": false}`))
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req, err = http.NewRequest(http.MethodDelete,
		ts.URL+"/v1/relations/"+created.Relation.ID, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/v1/relations")
	require.NoError(t, err)
	var listed struct {
		Relations entity.Relations `json:"relations"`
	}
	decodeData(t, resp, &listed)
	assert.Empty(t, listed.Relations)
}

func TestSocialEndpoints(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/v1/social/linkedin",
		strings.NewReader(`{"url": "https://www.linkedin.com/company/orange"}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/v1/social")
	require.NoError(t, err)
	var data struct {
		SocialLinks entity.SocialLinks `json:"social_links"`
	}
	decodeData(t, resp, &data)
	assert.Equal(t, 1, data.SocialLinks.Count())
}

func TestDiagramEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/diagram.svg")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "image/svg+xml")
}

func TestJSONLDEndpoint(t *testing.T) {
	srv, ts := newTestServer(t)
	require.NoError(t, srv.dossier.SetField(entity.FieldName, "Orange"))

	resp, err := http.Get(ts.URL + "/v1/jsonld")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/ld+json")

	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "https://schema.org", doc["@context"])
	for key, value := range doc {
		assert.NotNil(t, value, "key %s must not be null", key)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	srv, ts := newTestServer(t)
	require.NoError(t, srv.dossier.SetField(entity.FieldName, "Orange"))

	resp, err := http.Get(ts.URL + "/v1/export")
	require.NoError(t, err)
	exported, err := readAll(resp)
	require.NoError(t, err)

	resp, err = http.Post(ts.URL+"/v1/reset", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, srv.dossier.Entity().IsZero())

	resp, err = http.Post(ts.URL+"/v1/import", "application/json", bytes.NewReader(exported))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Orange", srv.dossier.Entity().Name)
}

func TestImportMalformed(t *testing.T) {
	srv, ts := newTestServer(t)
	require.NoError(t, srv.dossier.SetField(entity.FieldName, "Orange"))

	resp, err := http.Post(ts.URL+"/v1/import", "application/json",
		strings.NewReader(`{not json`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Orange", srv.dossier.Entity().Name, "failed import must not touch state")
}

func readAll(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	return buf.Bytes(), err
}
