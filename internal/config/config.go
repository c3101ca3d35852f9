package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samvad-hq/headline-harvester/pkg/providers"
	"github.com/spf13/viper"
)

const envPrefix = "HEADLINES"

// Config holds harvester settings.
type Config struct {
	Bucket             string               `mapstructure:"bucket"`
	Region             string               `mapstructure:"region"`
	AWSAccessKeyID     string               `mapstructure:"aws_access_key_id"`
	AWSSecretAccessKey string               `mapstructure:"aws_secret_access_key"`
	RawPrefix          string               `mapstructure:"raw_prefix"`
	FinalPrefix        string               `mapstructure:"final_prefix"`
	CrawlerName        string               `mapstructure:"crawler_name"`
	HTTPTimeout        time.Duration        `mapstructure:"http_timeout"`
	Workers            int                  `mapstructure:"workers"`
	StatePath          string               `mapstructure:"state_path"`
	QueueURL           string               `mapstructure:"queue_url"`
	PublishersFile     string               `mapstructure:"publishers_file"`
	LogLevel           string               `mapstructure:"log_level"`
	Providers          []providers.Provider `mapstructure:"providers"`
}

// Load reads configuration from an optional .env file, an optional config file and
// HEADLINES_* environment variables, in increasing order of precedence.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bucket", "")
	v.SetDefault("region", "sa-east-1")
	v.SetDefault("aws_access_key_id", "")
	v.SetDefault("aws_secret_access_key", "")
	v.SetDefault("raw_prefix", "headlines/raw")
	v.SetDefault("final_prefix", "headlines/final")
	v.SetDefault("crawler_name", "parcial3")
	v.SetDefault("http_timeout", 15*time.Second)
	v.SetDefault("workers", 4)
	v.SetDefault("state_path", "")
	v.SetDefault("queue_url", "")
	v.SetDefault("publishers_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("providers", []map[string]any{
		{"id": "eltiempo", "source_url": "https://www.eltiempo.com/"},
		{"id": "elespectador", "source_url": "https://www.elespectador.com/"},
		{"id": "publimetro", "source_url": "https://www.publimetro.co/", "enabled": false},
	})
}

func (c *Config) normalize() {
	c.Bucket = strings.TrimSpace(c.Bucket)
	c.Region = strings.TrimSpace(c.Region)
	c.RawPrefix = strings.Trim(strings.TrimSpace(c.RawPrefix), "/")
	c.FinalPrefix = strings.Trim(strings.TrimSpace(c.FinalPrefix), "/")
	c.CrawlerName = strings.TrimSpace(c.CrawlerName)
	if c.Workers <= 0 {
		c.Workers = 1
	}
	for i := range c.Providers {
		c.Providers[i].ID = strings.ToLower(strings.TrimSpace(c.Providers[i].ID))
		c.Providers[i].SourceURL = strings.TrimSpace(c.Providers[i].SourceURL)
	}
}

// Validate checks the settings every command needs. known lists the site ids
// the extraction registry supports.
func (c Config) Validate(known []string) error {
	var errs []error
	if c.Bucket == "" {
		errs = append(errs, errors.New("bucket is required"))
	}
	if c.Region == "" {
		errs = append(errs, errors.New("region is required"))
	}
	if c.RawPrefix == "" || c.FinalPrefix == "" {
		errs = append(errs, errors.New("raw_prefix and final_prefix are required"))
	} else if c.RawPrefix == c.FinalPrefix {
		errs = append(errs, errors.New("raw_prefix and final_prefix must differ"))
	}

	supported := make(map[string]struct{}, len(known))
	for _, id := range known {
		supported[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(c.Providers))
	for i, p := range c.Providers {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("providers[%d]: id is required", i))
			continue
		}
		if _, ok := supported[p.ID]; !ok {
			errs = append(errs, fmt.Errorf("providers[%d]: no extraction profile for %q", i, p.ID))
		}
		if _, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("providers[%d]: duplicate id %q", i, p.ID))
		}
		seen[p.ID] = struct{}{}
		if p.EnabledValue() && p.SourceURL == "" {
			errs = append(errs, fmt.Errorf("providers[%d]: source_url is required", i))
		}
	}
	return errors.Join(errs...)
}

// EnabledProviders returns the providers to snapshot.
func (c Config) EnabledProviders() []providers.Provider {
	out := make([]providers.Provider, 0, len(c.Providers))
	for _, p := range c.Providers {
		if p.EnabledValue() {
			out = append(out, p)
		}
	}
	return out
}
