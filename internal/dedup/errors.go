package dedup

import "fmt"

// OracleError reports which article the oracle failed on.
// It unwraps to domain.ErrOracleUnavailable or domain.ErrOracleTimeout.
type OracleError struct {
	Position int
	Link     string
	Err      error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("article %d (%s): %v", e.Position, e.Link, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

// Warning is an oracle failure absorbed under PolicyBestEffort.
type Warning struct {
	Position int
	Link     string
	Err      error
}
