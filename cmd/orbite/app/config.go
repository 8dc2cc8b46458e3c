package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/entityscope/orbite/pkg/constants"
)

// Config holds the application configuration loaded from config files,
// environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose  bool
	Quiet    bool
	NoColor  bool
	Format   string
	LogLevel string

	// Config file
	ConfigFile string

	// Dossier configuration
	State           string
	ScoringProfile  string
	MergePolicy     string
	HTTPTimeout     time.Duration
	WikidataEnabled bool
	INSEEEnabled    bool

	// Enrichment configuration
	EnrichModel  string
	GeminiAPIKey string

	// Server configuration
	ServeAddr string

	// Logging configuration
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. Environment variables (ORBITE_ prefix, plus GEMINI_API_KEY)
//  3. .env files
//  4. Config file (~/.orbite.yaml)
//  5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix("orbite")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// The enrichment key keeps its upstream name, unprefixed.
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")

	setDefaults(v)

	// Try to read config file if it exists
	configFile := v.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
			v.AddConfigPath(".")
			v.SetConfigType("yaml")
			v.SetConfigName(".orbite")
		}
	}

	// Read config file (ignore error if not found)
	_ = v.ReadInConfig()

	config := &Config{
		// Global flags (may be overridden by cobra flags later)
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		State:           v.GetString("state"),
		ScoringProfile:  v.GetString("scoring.profile"),
		MergePolicy:     v.GetString("merge.policy"),
		HTTPTimeout:     v.GetDuration("http.timeout"),
		WikidataEnabled: v.GetBool("sources.wikidata.enabled"),
		INSEEEnabled:    v.GetBool("sources.insee.enabled"),

		EnrichModel:  v.GetString("enrich.model"),
		GeminiAPIKey: v.GetString("gemini_api_key"),

		ServeAddr: v.GetString("serve.addr"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// setDefaults registers the built-in defaults for every config key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("state", constants.DefaultStateFile)
	v.SetDefault("scoring.profile", "standard")
	v.SetDefault("http.timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("sources.wikidata.enabled", true)
	v.SetDefault("sources.insee.enabled", true)
	v.SetDefault("enrich.model", constants.DefaultEnrichModel)
	v.SetDefault("serve.addr", constants.DefaultServeAddr)
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags so flag values take
// precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, state string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if state != "" {
		c.State = state
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}
	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
