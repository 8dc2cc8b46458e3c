// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app
// dependencies.
package appcontext

import (
	"github.com/rs/zerolog"

	orbite "github.com/entityscope/orbite"
)

// Interface defines the application context that commands need. The
// App struct from cmd/orbite/app implements it, giving commands their
// dependencies without tying them to the concrete app type.
type Interface interface {
	// Dossier returns the working dossier, creating it lazily and
	// loading its state file if one exists. Thread-safe; only one
	// instance is created per process.
	Dossier() (*orbite.Dossier, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json,
	// yaml, or "" for terminal auto-detection).
	OutputFormat() string

	// Quiet reports whether progress chatter on stderr is suppressed.
	Quiet() bool

	// ServeAddr returns the configured HTTP listen address.
	ServeAddr() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
