package scanner

import (
	"context"
	"fmt"
	"time"

	"NewsRanker/internal/domain"
)

// DefaultScanner is used for sources that do not name a strategy.
const DefaultScanner = "html"

// Request carries all parameters required to scan one source.
type Request struct {
	Source    domain.Source
	FetchedAt time.Time
}

// Scanner captures a single extraction strategy (plain HTML, RSS, etc.).
type Scanner interface {
	Name() string
	Scan(ctx context.Context, req Request) ([]domain.RawArticle, error)
}

// Registry keeps a mapping from scanner names to their implementations.
type Registry struct {
	scanners map[string]Scanner
}

// NewRegistry builds a registry holding the given scanners.
func NewRegistry(scanners ...Scanner) *Registry {
	r := &Registry{scanners: map[string]Scanner{}}
	for _, s := range scanners {
		r.Register(s)
	}
	return r
}

// Register adds or replaces a scanner implementation.
func (r *Registry) Register(scanner Scanner) {
	if r.scanners == nil {
		r.scanners = map[string]Scanner{}
	}
	r.scanners[scanner.Name()] = scanner
}

// Resolve returns a scanner by name or an error if it is absent.
// An empty name resolves to DefaultScanner.
func (r *Registry) Resolve(name string) (Scanner, error) {
	if name == "" {
		name = DefaultScanner
	}
	if scanner, ok := r.scanners[name]; ok {
		return scanner, nil
	}
	return nil, fmt.Errorf("scanner %s is not registered", name)
}
