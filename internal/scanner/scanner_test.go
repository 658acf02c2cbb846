package scanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsRanker/internal/domain"
)

type namedScanner string

func (n namedScanner) Name() string { return string(n) }

func (n namedScanner) Scan(context.Context, Request) ([]domain.RawArticle, error) {
	return nil, nil
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(namedScanner("html"))
	reg.Register(namedScanner("rss"))

	s, err := reg.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "html", s.Name())

	s, err = reg.Resolve("rss")
	require.NoError(t, err)
	assert.Equal(t, "rss", s.Name())

	_, err = reg.Resolve("arxiv")
	assert.Error(t, err)

	var empty Registry
	empty.Register(namedScanner("x"))
	_, err = empty.Resolve("x")
	assert.NoError(t, err)
}
