package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string

	Backend  BackendConfig
	Firebase FirebaseConfig
	YouTube  YouTubeConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Checkout CheckoutConfig

	RateLimitPerMinute int
	CartIdleTTL        time.Duration
}

// BackendConfig selects the data service. URL and APIKey are the two
// credential strings that gate initialisation: for Firestore they are the
// project id and the service account JSON, for Postgres the DSN and password.
type BackendConfig struct {
	Driver        string
	URL           string
	APIKey        string
	MigrationsDir string
}

// FirebaseConfig drives token verification. It is independent of the
// backend driver so a Postgres deployment can still use Firebase Auth.
type FirebaseConfig struct {
	ProjectID          string
	ServiceAccountJSON string
}

func (f FirebaseConfig) Enabled() bool {
	return f.ProjectID != "" && f.ServiceAccountJSON != ""
}

type YouTubeConfig struct {
	APIKey                string
	RatePerSecond         float64
	SelectedVideoInterval time.Duration
	StreamersInterval     time.Duration
	LiveDiscoveryInterval time.Duration
	PopularVideosInterval time.Duration
	PopularVideosMax      int64
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Brokers         []string
	RedemptionTopic string
}

type CheckoutConfig struct {
	AllowAnonymous bool
	MaxParallel    int
}

func Load() (*Config, error) {
	godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("BACKEND_DRIVER", BackendFirestore)
	v.SetDefault("MIGRATIONS_DIR", "./migrations")
	v.SetDefault("YOUTUBE_RATE_PER_SEC", 5.0)
	v.SetDefault("SELECTED_VIDEO_INTERVAL", "60s")
	v.SetDefault("STREAMERS_INTERVAL", "300s")
	v.SetDefault("LIVE_DISCOVERY_INTERVAL", "300s")
	v.SetDefault("POPULAR_VIDEOS_INTERVAL", "300s")
	v.SetDefault("POPULAR_VIDEOS_MAX", 6)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("STATS_CACHE_TTL", "10m")
	v.SetDefault("KAFKA_REDEMPTION_TOPIC", "redemption-orders")
	v.SetDefault("CHECKOUT_ALLOW_ANONYMOUS", false)
	v.SetDefault("CHECKOUT_MAX_PARALLEL", 8)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	v.SetDefault("CART_IDLE_TTL", "24h")

	cfg := &Config{
		ServerPort:  v.GetString("SERVER_PORT"),
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Backend: BackendConfig{
			Driver:        strings.ToLower(v.GetString("BACKEND_DRIVER")),
			URL:           v.GetString("BACKEND_URL"),
			APIKey:        v.GetString("BACKEND_API_KEY"),
			MigrationsDir: v.GetString("MIGRATIONS_DIR"),
		},
		Firebase: FirebaseConfig{
			ProjectID:          v.GetString("FIREBASE_PROJECT_ID"),
			ServiceAccountJSON: v.GetString("FIREBASE_SERVICE_ACCOUNT_JSON"),
		},
		YouTube: YouTubeConfig{
			APIKey:                v.GetString("YOUTUBE_API_KEY"),
			RatePerSecond:         v.GetFloat64("YOUTUBE_RATE_PER_SEC"),
			SelectedVideoInterval: v.GetDuration("SELECTED_VIDEO_INTERVAL"),
			StreamersInterval:     v.GetDuration("STREAMERS_INTERVAL"),
			LiveDiscoveryInterval: v.GetDuration("LIVE_DISCOVERY_INTERVAL"),
			PopularVideosInterval: v.GetDuration("POPULAR_VIDEOS_INTERVAL"),
			PopularVideosMax:      v.GetInt64("POPULAR_VIDEOS_MAX"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("STATS_CACHE_TTL"),
		},
		Kafka: KafkaConfig{
			Brokers:         splitList(v.GetString("KAFKA_BROKERS")),
			RedemptionTopic: v.GetString("KAFKA_REDEMPTION_TOPIC"),
		},
		Checkout: CheckoutConfig{
			AllowAnonymous: v.GetBool("CHECKOUT_ALLOW_ANONYMOUS"),
			MaxParallel:    v.GetInt("CHECKOUT_MAX_PARALLEL"),
		},
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		CartIdleTTL:        v.GetDuration("CART_IDLE_TTL"),
	}

	// Firestore deployments usually only set the Firebase project variable.
	if cfg.Backend.Driver == BackendFirestore && cfg.Backend.URL == "" {
		cfg.Backend.URL = cfg.Firebase.ProjectID
	}
	if cfg.Backend.Driver == BackendFirestore && cfg.Backend.APIKey == "" {
		cfg.Backend.APIKey = cfg.Firebase.ServiceAccountJSON
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// HasBackendCredentials reports whether both credential strings are present.
func (c *Config) HasBackendCredentials() bool {
	return c.Backend.URL != "" && c.Backend.APIKey != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) validate() error {
	switch c.Backend.Driver {
	case BackendMemory, BackendFirestore, BackendPostgres:
	default:
		return fmt.Errorf("unsupported BACKEND_DRIVER %q", c.Backend.Driver)
	}

	if c.YouTube.RatePerSecond <= 0 {
		return fmt.Errorf("YOUTUBE_RATE_PER_SEC must be positive")
	}

	intervals := map[string]time.Duration{
		"SELECTED_VIDEO_INTERVAL": c.YouTube.SelectedVideoInterval,
		"STREAMERS_INTERVAL":      c.YouTube.StreamersInterval,
		"LIVE_DISCOVERY_INTERVAL": c.YouTube.LiveDiscoveryInterval,
		"POPULAR_VIDEOS_INTERVAL": c.YouTube.PopularVideosInterval,
	}
	for key, d := range intervals {
		if d <= 0 {
			return fmt.Errorf("%s must be a positive duration", key)
		}
	}

	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
