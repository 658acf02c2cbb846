package dedup

import (
	"fmt"
	"strings"
	"time"
)

// Policy decides what happens when the oracle cannot judge an article.
type Policy string

const (
	// PolicyFailFast aborts the run on the first oracle failure.
	PolicyFailFast Policy = "fail-fast"
	// PolicyBestEffort treats the article as a new story and records a warning.
	PolicyBestEffort Policy = "best-effort"
)

// ParsePolicy accepts the config spelling of a policy; empty means fail-fast.
func ParsePolicy(value string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(PolicyFailFast), "failfast":
		return PolicyFailFast, nil
	case string(PolicyBestEffort), "besteffort":
		return PolicyBestEffort, nil
	default:
		return "", fmt.Errorf("unknown ranking policy %q", value)
	}
}

// Config holds engine settings.
type Config struct {
	Policy Policy
	// OracleTimeout bounds every single oracle call. Zero disables the per-call deadline.
	OracleTimeout time.Duration
}

// DefaultConfig returns fail-fast with a 30 second oracle deadline.
func DefaultConfig() Config {
	return Config{
		Policy:        PolicyFailFast,
		OracleTimeout: 30 * time.Second,
	}
}

// Validate checks if the configuration has valid values.
func (c Config) Validate() error {
	if c.Policy != PolicyFailFast && c.Policy != PolicyBestEffort {
		return fmt.Errorf("policy must be %q or %q (got %q)", PolicyFailFast, PolicyBestEffort, c.Policy)
	}
	if c.OracleTimeout < 0 {
		return fmt.Errorf("oracle_timeout cannot be negative (got %v)", c.OracleTimeout)
	}
	return nil
}
