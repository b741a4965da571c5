package application

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// SourceRemote selects the live remote-fetch record source.
	SourceRemote = "remote"
	// SourceFixture selects the self-contained in-memory fixture source.
	SourceFixture = "fixture"
)

// Upstreams holds explicit collaborator URLs. Empty entries are derived from
// the suffix scheme http://<service><suffix>:8080/<service>/api.
type Upstreams struct {
	Order    string `yaml:"order"`
	Customer string `yaml:"customer"`
	Catalog  string `yaml:"catalog"`
}

// Config defines service configuration.
type Config struct {
	HTTPAddr     string    `yaml:"http_addr"`
	URLSuffix    string    `yaml:"url_suffix"`
	Source       string    `yaml:"source"`
	FetchTimeout string    `yaml:"fetch_timeout"`
	Upstreams    Upstreams `yaml:"upstreams"`
	SeedFile     string    `yaml:"seed_file"`

	fetchTimeout time.Duration
}

// LoadConfig loads config from env, optionally overridden by a yaml file
// named in VIEWS_CONFIG.
func LoadConfig() (Config, error) {
	cfg := Config{
		HTTPAddr:     getenvDefault("HTTP_ADDR", ":8080"),
		URLSuffix:    os.Getenv("URL_SUFFIX"),
		Source:       getenvDefault("SOURCE_MODE", SourceRemote),
		FetchTimeout: getenvDefault("FETCH_TIMEOUT", "5s"),
		SeedFile:     os.Getenv("SEED_FILE"),
		Upstreams: Upstreams{
			Order:    os.Getenv("ORDER_SERVICE_URL"),
			Customer: os.Getenv("CUSTOMER_SERVICE_URL"),
			Catalog:  os.Getenv("CATALOG_SERVICE_URL"),
		},
	}

	if path := os.Getenv("VIEWS_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.Source != SourceRemote && cfg.Source != SourceFixture {
		return cfg, fmt.Errorf("config: unknown source %q", cfg.Source)
	}
	timeout, err := time.ParseDuration(cfg.FetchTimeout)
	if err != nil {
		return cfg, fmt.Errorf("config: fetch_timeout: %w", err)
	}
	if timeout <= 0 {
		return cfg, errors.New("config: fetch_timeout must be positive")
	}
	cfg.fetchTimeout = timeout

	if cfg.Upstreams.Order == "" {
		cfg.Upstreams.Order = suffixURL("order", cfg.URLSuffix)
	}
	if cfg.Upstreams.Customer == "" {
		cfg.Upstreams.Customer = suffixURL("customer", cfg.URLSuffix)
	}
	if cfg.Upstreams.Catalog == "" {
		cfg.Upstreams.Catalog = suffixURL("catalog", cfg.URLSuffix)
	}
	return cfg, nil
}

// Timeout returns the parsed per-upstream-call timeout.
func (c Config) Timeout() time.Duration { return c.fetchTimeout }

func suffixURL(service, suffix string) string {
	return fmt.Sprintf("http://%s%s:8080/%s/api", service, suffix, service)
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
