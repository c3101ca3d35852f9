package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samvad-hq/headline-harvester/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownSites = []string{"elespectador", "eltiempo", "publimetro"}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HEADLINES_BUCKET", "parcial3luis")

	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, "parcial3luis", cfg.Bucket)
	assert.Equal(t, "sa-east-1", cfg.Region)
	assert.Equal(t, "headlines/raw", cfg.RawPrefix)
	assert.Equal(t, "headlines/final", cfg.FinalPrefix)
	assert.Equal(t, "parcial3", cfg.CrawlerName)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	require.Len(t, cfg.Providers, 3)

	enabled := cfg.EnabledProviders()
	require.Len(t, enabled, 2)
	assert.Equal(t, "eltiempo", enabled[0].ID)
	assert.Equal(t, "elespectador", enabled[1].ID)

	assert.NoError(t, cfg.Validate(knownSites))
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harvester.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
bucket: from-file
raw_prefix: /snapshots/raw/
final_prefix: snapshots/final
http_timeout: 5s
providers:
  - id: ElTiempo
    source_url: https://www.eltiempo.com/
    headers:
      User-Agent: custom-agent
`), 0o600))
	t.Setenv("HEADLINES_BUCKET", "from-env")

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Bucket)
	assert.Equal(t, "snapshots/raw", cfg.RawPrefix)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	require.Len(t, cfg.Providers, 1)
	assert.Equal(t, "eltiempo", cfg.Providers[0].ID)
	assert.NoError(t, cfg.Validate(knownSites))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := config.Config{
		Bucket:      "b",
		Region:      "sa-east-1",
		RawPrefix:   "headlines/raw",
		FinalPrefix: "headlines/final",
	}

	t.Run("requires a bucket", func(t *testing.T) {
		t.Parallel()

		cfg := base
		cfg.Bucket = ""

		assert.ErrorContains(t, cfg.Validate(knownSites), "bucket is required")
	})

	t.Run("rejects identical prefixes", func(t *testing.T) {
		t.Parallel()

		cfg := base
		cfg.FinalPrefix = cfg.RawPrefix

		assert.ErrorContains(t, cfg.Validate(knownSites), "must differ")
	})

	t.Run("rejects providers without a profile", func(t *testing.T) {
		t.Parallel()

		cfg := base
		cfg.Providers = append(cfg.Providers, providerFor("semana"))

		assert.ErrorContains(t, cfg.Validate(knownSites), `no extraction profile for "semana"`)
	})
}
