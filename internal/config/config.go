package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const EnvProduction = "production"

type Config struct {
	Environment           string         `yaml:"environment"`
	AllowFixtureIngestion bool           `yaml:"allow_fixture_ingestion"`
	Database              DatabaseConfig `yaml:"database"`
	RabbitMQ              RabbitMQConfig `yaml:"rabbitmq"`
	API                   APIConfig      `yaml:"api"`
	Sources               []SourceConfig `yaml:"sources"`
	Sync                  SyncConfig     `yaml:"sync"`
	Sweep                 SweepConfig    `yaml:"sweep"`
	Quality               QualityConfig  `yaml:"quality"`
	Genre                 GenreConfig    `yaml:"genre"`
	Search                SearchConfig   `yaml:"search"`
	Rollup                RollupConfig   `yaml:"rollup"`
	Schedule              ScheduleConfig `yaml:"schedule"`
	Metrics               MetricsConfig  `yaml:"metrics"`
	LogLevel              string         `yaml:"log_level"`
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

// Enabled reports whether run summaries should be published.
func (r RabbitMQConfig) Enabled() bool {
	return r.URL != ""
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type APIConfig struct {
	Timeout         time.Duration `yaml:"timeout"`
	UserAgent       string        `yaml:"user_agent"`
	BreakerFailures uint          `yaml:"breaker_failures"`
	BreakerWindow   uint          `yaml:"breaker_window"`
	BreakerDelay    time.Duration `yaml:"breaker_delay"`
}

// SourceConfig is one configured agency endpoint.
type SourceConfig struct {
	Key     string `yaml:"key"`
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
}

type SyncConfig struct {
	CampaignPages        int `yaml:"campaign_pages"`
	PostPages            int `yaml:"post_pages"`
	PageSize             int `yaml:"page_size"`
	CampaignLookbackRows int `yaml:"campaign_lookback_rows"`
	PostLookbackRows     int `yaml:"post_lookback_rows"`
	UpsertChunkSize      int `yaml:"upsert_chunk_size"`
}

type SweepConfig struct {
	PendingLimit     int           `yaml:"pending_limit"`
	PendingMinAge    time.Duration `yaml:"pending_min_age"`
	PendingHorizon   time.Duration `yaml:"pending_horizon"`
	DiscoveryLimit   int           `yaml:"discovery_limit"`
	DiscoveryStale   time.Duration `yaml:"discovery_stale"`
	PostFetchLimit   int           `yaml:"post_fetch_limit"`
	FetchConcurrency int           `yaml:"fetch_concurrency"`
}

type QualityConfig struct {
	MetadataGrace time.Duration `yaml:"metadata_grace"`
}

type GenreConfig struct {
	SearchBudget  int `yaml:"search_budget"`
	ClassifyLimit int `yaml:"classify_limit"`
}

type SearchConfig struct {
	Provider string        `yaml:"provider"`
	APIKey   string        `yaml:"api_key"`
	APIURL   string        `yaml:"api_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

type RollupConfig struct {
	TopN int `yaml:"top_n"`
}

type ScheduleConfig struct {
	FullSyncInterval    time.Duration `yaml:"full_sync_interval"`
	FullSyncTimeout     time.Duration `yaml:"full_sync_timeout"`
	PendingInterval     time.Duration `yaml:"pending_interval"`
	PendingTimeout      time.Duration `yaml:"pending_timeout"`
	MigrateOnStart      bool          `yaml:"migrate_on_start"`
	SkipInitialFullSync bool          `yaml:"skip_initial_full_sync"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads the YAML file at path (optional), applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// FixtureMode reports whether synthetic test records may be ingested.
func (c *Config) FixtureMode() bool {
	return c.Environment == "test" && c.AllowFixtureIngestion
}

func (c *Config) applyEnv() error {
	var errs []error
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	minutes := func(key string, unit time.Duration, dst *time.Duration) {
		var n int
		num(key, &n)
		if n > 0 {
			*dst = time.Duration(n) * unit
		}
	}
	flag := func(key string, dst *bool) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	str("APP_ENV", &c.Environment)
	flag("ALLOW_FIXTURE_INGESTION", &c.AllowFixtureIngestion)
	str("DATABASE_URL", &c.Database.URL)
	str("RABBITMQ_URL", &c.RabbitMQ.URL)
	str("LOG_LEVEL", &c.LogLevel)
	str("METRICS_ADDR", &c.Metrics.Addr)

	num("SYNC_CAMPAIGN_PAGES", &c.Sync.CampaignPages)
	num("SYNC_POST_PAGES", &c.Sync.PostPages)
	num("SYNC_PAGE_SIZE", &c.Sync.PageSize)
	num("SYNC_CAMPAIGN_LOOKBACK_ROWS", &c.Sync.CampaignLookbackRows)
	num("SYNC_POST_LOOKBACK_ROWS", &c.Sync.PostLookbackRows)
	num("SYNC_UPSERT_CHUNK_SIZE", &c.Sync.UpsertChunkSize)

	num("PENDING_CAMPAIGN_LIMIT", &c.Sweep.PendingLimit)
	minutes("PENDING_MIN_AGE_MINUTES", time.Minute, &c.Sweep.PendingMinAge)
	minutes("PENDING_HORIZON_DAYS", 24*time.Hour, &c.Sweep.PendingHorizon)
	num("DISCOVERY_CAMPAIGN_LIMIT", &c.Sweep.DiscoveryLimit)
	minutes("DISCOVERY_STALE_MINUTES", time.Minute, &c.Sweep.DiscoveryStale)
	num("SWEEP_POST_FETCH_LIMIT", &c.Sweep.PostFetchLimit)
	num("SWEEP_FETCH_CONCURRENCY", &c.Sweep.FetchConcurrency)
	minutes("QUALITY_METADATA_GRACE_MINUTES", time.Minute, &c.Quality.MetadataGrace)

	num("GENRE_SEARCH_BUDGET", &c.Genre.SearchBudget)
	num("GENRE_CLASSIFY_LIMIT", &c.Genre.ClassifyLimit)
	str("SEARCH_PROVIDER", &c.Search.Provider)
	str("SEARCH_API_KEY", &c.Search.APIKey)
	str("SEARCH_API_URL", &c.Search.APIURL)
	num("ROLLUP_TOP_N", &c.Rollup.TopN)

	if v := strings.TrimSpace(os.Getenv("AGENCY_SOURCES")); v != "" {
		sources, err := ParseSources(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("AGENCY_SOURCES: %w", err))
		} else {
			c.Sources = sources
		}
	}

	return errors.Join(errs...)
}

// ParseSources reads a comma separated list of key=base_url entries. A key may carry a display
// name as key:Name.
func ParseSources(s string) ([]SourceConfig, error) {
	var out []SourceConfig
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, base, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(base) == "" {
			return nil, fmt.Errorf("malformed source entry %q", entry)
		}
		key, name, _ := strings.Cut(strings.TrimSpace(id), ":")
		if key == "" {
			return nil, fmt.Errorf("malformed source entry %q", entry)
		}
		out = append(out, SourceConfig{Key: key, Name: name, BaseURL: strings.TrimSpace(base)})
	}
	return out, nil
}

// validate rejects source lists the registry cannot store: empty or repeated keys.
func (c *Config) validate() error {
	var errs []error
	seen := make(map[string]struct{}, len(c.Sources))
	for i, src := range c.Sources {
		key := strings.TrimSpace(src.Key)
		if key == "" {
			errs = append(errs, fmt.Errorf("sources[%d]: key is required", i))
			continue
		}
		if _, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("sources[%d]: duplicate key %q", i, key))
			continue
		}
		seen[key] = struct{}{}
	}
	return errors.Join(errs...)
}

func (c *Config) setDefaults() {
	if c.Environment == "" {
		c.Environment = EnvProduction
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "creatorcore"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "sync.events"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "creatorcore_sync_events"
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = "creatorcore-sync/1.0"
	}
	if c.API.BreakerFailures == 0 {
		c.API.BreakerFailures = 3
	}
	if c.API.BreakerWindow == 0 {
		c.API.BreakerWindow = 5
	}
	if c.API.BreakerDelay == 0 {
		c.API.BreakerDelay = 30 * time.Second
	}
	for i := range c.Sources {
		if c.Sources[i].Name == "" {
			c.Sources[i].Name = c.Sources[i].Key
		}
	}
	if c.Sync.CampaignPages == 0 {
		c.Sync.CampaignPages = 5
	}
	if c.Sync.PostPages == 0 {
		c.Sync.PostPages = 10
	}
	if c.Sync.PageSize == 0 {
		c.Sync.PageSize = 100
	}
	if c.Sync.CampaignLookbackRows == 0 {
		c.Sync.CampaignLookbackRows = 200
	}
	if c.Sync.PostLookbackRows == 0 {
		c.Sync.PostLookbackRows = 500
	}
	if c.Sync.UpsertChunkSize == 0 {
		c.Sync.UpsertChunkSize = 250
	}
	if c.Sweep.PendingLimit == 0 {
		c.Sweep.PendingLimit = 50
	}
	if c.Sweep.PendingMinAge == 0 {
		c.Sweep.PendingMinAge = 10 * time.Minute
	}
	if c.Sweep.PendingHorizon == 0 {
		c.Sweep.PendingHorizon = 14 * 24 * time.Hour
	}
	if c.Sweep.DiscoveryLimit == 0 {
		c.Sweep.DiscoveryLimit = 25
	}
	if c.Sweep.DiscoveryStale == 0 {
		c.Sweep.DiscoveryStale = 6 * time.Hour
	}
	if c.Sweep.PostFetchLimit == 0 {
		c.Sweep.PostFetchLimit = 20
	}
	if c.Sweep.FetchConcurrency == 0 {
		c.Sweep.FetchConcurrency = 4
	}
	if c.Quality.MetadataGrace == 0 {
		c.Quality.MetadataGrace = 30 * time.Minute
	}
	if c.Genre.SearchBudget == 0 {
		c.Genre.SearchBudget = 25
	}
	if c.Genre.ClassifyLimit == 0 {
		c.Genre.ClassifyLimit = 200
	}
	if c.Search.Timeout == 0 {
		c.Search.Timeout = 10 * time.Second
	}
	if c.Rollup.TopN == 0 {
		c.Rollup.TopN = 5
	}
	if c.Schedule.FullSyncInterval == 0 {
		c.Schedule.FullSyncInterval = time.Hour
	}
	if c.Schedule.FullSyncTimeout == 0 {
		c.Schedule.FullSyncTimeout = 50 * time.Minute
	}
	if c.Schedule.PendingInterval == 0 {
		c.Schedule.PendingInterval = 10 * time.Minute
	}
	if c.Schedule.PendingTimeout == 0 {
		c.Schedule.PendingTimeout = 8 * time.Minute
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9102"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
