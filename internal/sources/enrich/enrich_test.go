package enrich_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/entityscope/orbite/internal/sources/enrich"
	"github.com/entityscope/orbite/pkg/constants"
	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/errors"
)

const completionJSON = `{
	"description_fr": "Opérateur de télécommunications français.",
	"description_en": "French telecommunications operator.",
	"expertise_fr": "télécoms, fibre, mobile",
	"expertise_en": "telecoms, fiber, mobile",
	"parent_org_name": "Exemple Holding",
	"parent_org_qid": "Q42"
}`

func namedEntity() *entity.Entity {
	e := entity.New()
	e.Name = "Orange"
	e.QID = "Q1431486"
	e.SIREN = "380129866"
	return e
}

func TestEnrich(t *testing.T) {
	var (
		gotModel  string
		gotPrompt string
	)
	fake := func(ctx context.Context, model, prompt string) (string, error) {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		gotModel = model
		gotPrompt = prompt
		return completionJSON, nil
	}

	e := enrich.New(enrich.WithGenerateFunc(fake))
	rec, err := e.Enrich(context.Background(), namedEntity())
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultEnrichModel, gotModel)
	assert.Contains(t, gotPrompt, "Orange")
	assert.Contains(t, gotPrompt, "qid : Q1431486")
	assert.Contains(t, gotPrompt, "description_fr")

	assert.Equal(t, entity.SourceEnrich, rec.Source)
	assert.Equal(t, "Opérateur de télécommunications français.", rec.DescriptionFR)
	assert.Equal(t, "French telecommunications operator.", rec.DescriptionEN)
	assert.Equal(t, "télécoms, fibre, mobile", rec.ExpertiseFR)
	assert.Equal(t, "telecoms, fiber, mobile", rec.ExpertiseEN)
	assert.Equal(t, "Exemple Holding", rec.ParentOrgName)
	assert.Equal(t, "Q42", rec.ParentOrgQID)
	assert.Empty(t, rec.Name)
	assert.Empty(t, rec.QID)
}

func TestEnrichFencedCompletion(t *testing.T) {
	fake := func(ctx context.Context, model, prompt string) (string, error) {
		return "Voici la fiche :\n```json\n" + completionJSON + "\n```\nBonne journée.", nil
	}

	e := enrich.New(enrich.WithGenerateFunc(fake))
	rec, err := e.Enrich(context.Background(), namedEntity())
	require.NoError(t, err)
	assert.Equal(t, "Opérateur de télécommunications français.", rec.DescriptionFR)
	assert.Equal(t, "Q42", rec.ParentOrgQID)
}

func TestEnrichExpertiseAsArray(t *testing.T) {
	fake := func(ctx context.Context, model, prompt string) (string, error) {
		return `{"description_fr": "Opérateur.", "expertise_fr": ["télécoms", "fibre"], "expertise_en": []}`, nil
	}

	e := enrich.New(enrich.WithGenerateFunc(fake))
	rec, err := e.Enrich(context.Background(), namedEntity())
	require.NoError(t, err)
	assert.Equal(t, "télécoms, fibre", rec.ExpertiseFR)
	assert.Empty(t, rec.ExpertiseEN)
}

func TestEnrichMalformedParentQID(t *testing.T) {
	fake := func(ctx context.Context, model, prompt string) (string, error) {
		return `{"parent_org_name": "Exemple Holding", "parent_org_qid": "wikidata:42"}`, nil
	}

	e := enrich.New(enrich.WithGenerateFunc(fake))
	rec, err := e.Enrich(context.Background(), namedEntity())
	require.NoError(t, err)
	assert.Equal(t, "Exemple Holding", rec.ParentOrgName)
	assert.Empty(t, rec.ParentOrgQID)
}

func TestEnrichDiscardsNonJSONCompletion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"prose only", "Je ne peux pas répondre à cette demande."},
		{"truncated object", `{"description_fr": "Opérate`},
		{"empty completion", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := func(ctx context.Context, model, prompt string) (string, error) {
				return tt.raw, nil
			}

			e := enrich.New(enrich.WithGenerateFunc(fake))
			rec, err := e.Enrich(context.Background(), namedEntity())
			require.Error(t, err)
			assert.Nil(t, rec)

			var perr *errors.ParseError
			assert.ErrorAs(t, err, &perr)
			assert.False(t, errors.IsRetryable(err))
		})
	}
}

func TestEnrichBackendFailure(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
		check     func(error) bool
	}{
		{"rate limited", &genai.APIError{Code: 429, Message: "quota exceeded"}, true, errors.IsRateLimited},
		{"server error", &genai.APIError{Code: 503, Message: "overloaded"}, true, errors.IsSourceUnavailable},
		{"bad request", &genai.APIError{Code: 400, Message: "invalid argument"}, false, nil},
		{"plain transport error", errors.New("connection reset"), true, errors.IsSourceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := func(ctx context.Context, model, prompt string) (string, error) {
				return "", tt.err
			}

			e := enrich.New(enrich.WithGenerateFunc(fake))
			rec, err := e.Enrich(context.Background(), namedEntity())
			require.Error(t, err)
			assert.Nil(t, rec)
			assert.Equal(t, tt.retryable, errors.IsRetryable(err))
			if tt.check != nil {
				assert.True(t, tt.check(err))
			}
		})
	}
}

func TestEnrichCanceled(t *testing.T) {
	fake := func(ctx context.Context, model, prompt string) (string, error) {
		return "", context.Canceled
	}

	e := enrich.New(enrich.WithGenerateFunc(fake))
	_, err := e.Enrich(context.Background(), namedEntity())
	require.Error(t, err)
	assert.True(t, errors.IsCanceled(err))
	assert.False(t, errors.IsRetryable(err))
}

func TestEnrichUnnamedEntity(t *testing.T) {
	var calls atomic.Int32
	fake := func(ctx context.Context, model, prompt string) (string, error) {
		calls.Add(1)
		return completionJSON, nil
	}

	e := enrich.New(enrich.WithGenerateFunc(fake))
	_, err := e.Enrich(context.Background(), entity.New())
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, int32(0), calls.Load())

	_, err = e.Enrich(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestEnrichRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	e := enrich.New()
	_, err := e.Enrich(context.Background(), namedEntity())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrAPIKeyRequired)
	assert.False(t, errors.IsRetryable(err))
}

func TestIdentity(t *testing.T) {
	e := enrich.New(enrich.WithAPIKey("test-key"))
	assert.Equal(t, entity.SourceEnrich, e.ID())
	assert.Equal(t, "Gemini", e.Name())
}
