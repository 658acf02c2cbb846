package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(openAIAPIKeyEnv, "")
	t.Setenv(databaseDriverEnv, "")
	t.Setenv(oracleProviderEnv, "")
	t.Setenv(rankingPolicyEnv, "")
	t.Setenv(oracleModelEnv, "")

	cfg := Load()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, ProviderOpenAI, cfg.Oracle.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Oracle.Model)
	assert.Equal(t, "fail-fast", cfg.Ranking.Policy)
	assert.Equal(t, "UTC", cfg.Scheduler.Location().String())
	assert.Empty(t, cfg.Sources)
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "newsranker.yaml")
	raw := `
logging:
  level: debug
database:
  driver: sqlite3
  dsn: /tmp/news.db
scraper:
  requestInterval: 500ms
  workers: 2
oracle:
  provider: Anthropic
  model: claude-3-5-haiku-latest
  timeout: 15s
  cache:
    dir: /tmp/verdicts
ranking:
  policy: best-effort
scheduler:
  interval: 1h
  timezone: Europe/Berlin
sources:
  - name: CBC
    url: https://www.cbc.ca/
  - name: Feed
    url: https://example.org/rss
    scanner: rss
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	t.Setenv(configPathEnv, path)
	t.Setenv(oracleProviderEnv, "")
	t.Setenv(oracleModelEnv, "")
	t.Setenv(databaseDriverEnv, "")
	t.Setenv(anthropicKeyEnv, "sk-ant-test")
	t.Setenv(rankingPolicyEnv, "fail-fast")
	t.Setenv(databaseDSNEnv, "/tmp/override.db")

	cfg := Load()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "/tmp/override.db", cfg.Database.DSN)
	assert.Equal(t, 500*time.Millisecond, cfg.Scraper.RequestInterval)
	assert.Equal(t, 2, cfg.Scraper.Workers)
	assert.Equal(t, 10*time.Second, cfg.Scraper.Timeout)
	assert.Equal(t, ProviderAnthropic, cfg.Oracle.Provider)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.Oracle.Model)
	assert.Equal(t, "sk-ant-test", cfg.Oracle.APIKey)
	assert.Equal(t, 15*time.Second, cfg.Oracle.Timeout)
	assert.Equal(t, "/tmp/verdicts", cfg.Oracle.Cache.Dir)
	assert.Equal(t, "fail-fast", cfg.Ranking.Policy)
	assert.Equal(t, time.Hour, cfg.Scheduler.Interval)
	assert.Equal(t, "Europe/Berlin", cfg.Scheduler.Location().String())
	require.Len(t, cfg.Sources, 2)
	assert.Equal(t, "rss", cfg.Sources[1].Scanner)
}

func TestLoadBrokenFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unterminated"), 0o600))
	t.Setenv(configPathEnv, path)

	cfg := Load()
	assert.Equal(t, defaultConfig().Database, cfg.Database)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Oracle.Provider = "bard"
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Scraper.Workers = 0
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Scheduler.Interval = 0
	assert.Error(t, cfg.Validate())
}
