package server

import (
	"time"

	"github.com/entityscope/orbite/pkg/constants"
)

// Config holds serve-mode configuration. The server is meant for one
// operator on localhost: one dossier, no auth, no sessions.
type Config struct {
	// Addr is the listen address, host:port.
	Addr string

	// PathPrefix is prepended to every API route.
	PathPrefix string

	// HTTP timeouts.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:         constants.DefaultServeAddr,
		PathPrefix:   "/v1",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
