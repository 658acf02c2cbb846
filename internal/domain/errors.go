package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOracleUnavailable means the similarity oracle could not produce a verdict.
	ErrOracleUnavailable = errors.New("similarity oracle unavailable")

	// ErrOracleTimeout means the oracle did not answer within the per-call deadline.
	ErrOracleTimeout = errors.New("similarity oracle timed out")

	// ErrAmbiguousResponse means the oracle answered with something that is not a verdict.
	// It is treated as ErrOracleUnavailable.
	ErrAmbiguousResponse = fmt.Errorf("%w: ambiguous response", ErrOracleUnavailable)

	// ErrPersistenceFailure marks errors writing a run's aggregates.
	ErrPersistenceFailure = errors.New("aggregate persistence failed")

	// ErrRunInProgress is returned when another ranking run owns the aggregate target.
	ErrRunInProgress = errors.New("ranking run already in progress")
)
