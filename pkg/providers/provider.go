package providers

import (
	"strings"
)

const defaultUserAgent = "Mozilla/5.0 (compatible; headline-harvester/1.0)"

// Provider is a configured newspaper homepage to snapshot.
type Provider struct {
	ID        string            `mapstructure:"id" yaml:"id" json:"id"`
	SourceURL string            `mapstructure:"source_url" yaml:"source_url" json:"source_url"`
	Headers   map[string]string `mapstructure:"headers" yaml:"headers" json:"headers"`
	Enabled   *bool             `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
}

// EnabledValue returns the enabled flag, defaulting to true.
func (p Provider) EnabledValue() bool {
	if p.Enabled == nil {
		return true
	}
	return *p.Enabled
}

// Headers returns the request headers for cfg: defaults first, provider overrides after.
func Headers(cfg Provider) map[string]string {
	headers := map[string]string{
		"User-Agent":      defaultUserAgent,
		"Accept":          "text/html,application/xhtml+xml",
		"Accept-Language": "es-CO,es;q=0.9,en;q=0.8",
	}
	for k, v := range cfg.Headers {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		headers[k] = v
	}
	return headers
}
