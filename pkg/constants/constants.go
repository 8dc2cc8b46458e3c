// Package constants provides shared constants used throughout the orbite codebase.
// This includes timeouts, limits, file permissions, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to registry APIs
	DefaultHTTPTimeout = 30 * time.Second

	// SPARQLTimeout is the timeout for knowledge-graph SPARQL queries, which the
	// public endpoint answers slower than the REST API
	SPARQLTimeout = 10 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// EnrichTimeout is the timeout for a single generative completion call
	EnrichTimeout = 60 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// RetryBackoff is the base backoff duration for retries
	RetryBackoff = 1 * time.Second

	// MaxRetryBackoff is the maximum backoff duration for retries
	MaxRetryBackoff = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files like API keys (rw-------)
	SecureFilePermissions = 0600
)

// Limit constants define various limits and capacities
const (
	// MaxRetries is the maximum number of attempts for a retryable request
	MaxRetries = 3

	// SearchPageSize is the number of hits requested per registry search
	SearchPageSize = 10

	// MaxHarvestedRelations is the cap on affiliates pulled from the knowledge graph
	MaxHarvestedRelations = 10

	// ChannelBufferSize is the default buffer size for channels
	ChannelBufferSize = 100
)

// Cache constants. Registry answers change rarely, so search results are held
// in process for a while to spare the public endpoints.
const (
	// WikidataCacheTTL is the time-to-live for knowledge-graph responses
	WikidataCacheTTL = 1 * time.Hour

	// RegistryCacheTTL is the time-to-live for company-registry responses
	RegistryCacheTTL = 30 * time.Minute

	// CacheCleanupInterval is how often expired cache entries are removed
	CacheCleanupInterval = 5 * time.Minute
)

// Default values
const (
	// DefaultStateFile is the working dossier file in the current directory
	DefaultStateFile = "orbite.json"

	// DefaultEnrichModel is the generative model used for enrichment
	DefaultEnrichModel = "gemini-2.0-flash"

	// DefaultServeAddr is the default listen address for serve mode
	DefaultServeAddr = "localhost:8787"

	// DefaultCountry is assumed for registry records without an explicit country
	DefaultCountry = "France"
)

// External endpoint constants
const (
	// WikidataAPIURL is the MediaWiki action API endpoint
	WikidataAPIURL = "https://www.wikidata.org/w/api.php"

	// WikidataSPARQLURL is the public SPARQL query endpoint
	WikidataSPARQLURL = "https://query.wikidata.org/sparql"

	// WikidataEntityURL is the base URL for canonical entity pages
	WikidataEntityURL = "https://www.wikidata.org/wiki/"

	// INSEESearchURL is the French company-registry search endpoint
	INSEESearchURL = "https://recherche-entreprises.api.gouv.fr/search"
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// UserAgent identifies orbite to the public registry endpoints
	UserAgent = "orbite/1.0 (+https://github.com/entityscope/orbite)"
)
