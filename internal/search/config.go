package search

import (
	"fmt"
	"strings"
	"time"
)

const (
	providerBrave   = "brave"
	providerSearxng = "searxng"
)

// Config selects and authenticates the search backend.
type Config struct {
	Provider string        `yaml:"provider"`
	APIKey   string        `yaml:"api_key"`
	APIURL   string        `yaml:"api_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Enabled reports whether enough configuration exists to issue searches.
func (c Config) Enabled() bool {
	switch strings.ToLower(c.Provider) {
	case providerSearxng:
		return strings.TrimSpace(c.APIURL) != ""
	default:
		return strings.TrimSpace(c.APIKey) != ""
	}
}

// NewProvider builds the configured provider. An unconfigured search tier yields ErrDisabled.
func NewProvider(cfg Config) (Provider, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}

	opts := []Option{WithTimeout(cfg.Timeout)}
	switch strings.ToLower(cfg.Provider) {
	case "", providerBrave:
		return NewBraveProvider(cfg.APIKey, cfg.APIURL, opts...)
	case providerSearxng:
		return NewSearxngProvider(cfg.APIURL, opts...)
	default:
		return nil, fmt.Errorf("unsupported search provider: %s", cfg.Provider)
	}
}
