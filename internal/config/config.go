package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"mimo_finance/internal/domain/fuzzy"
)

// Config aggregates the runtime settings of the finance service.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Logger      LoggerConfig
	DynamoDB    DynamoDBConfig
	Business    BusinessConfig
	Fuzzy       FuzzyConfig
	Cache       CacheConfig
	Redis       RedisConfig
	Offline     OfflineConfig
	Payout      PayoutConfig
}

type HTTPConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

func (h HTTPConfig) Address() string {
	return ":" + h.Port
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type DynamoDBConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	PaymentsTable   string
	ServicesTable   string
	UsersTable      string
}

// BusinessConfig holds the zone business weeks are computed in. An empty
// Timezone means the host's local zone.
type BusinessConfig struct {
	Timezone string
}

type FuzzyConfig struct {
	Threshold       float64
	InitialFallback bool
}

func (f FuzzyConfig) Options() fuzzy.Options {
	return fuzzy.Options{Threshold: f.Threshold, InitialFallback: f.InitialFallback}
}

type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type OfflineConfig struct {
	Path   string
	Bucket string
}

// PayoutConfig configures the Mercado Pago payout gateway. PaymentMethodID
// and PayerEmail are applied when a payout payload omits them.
type PayoutConfig struct {
	AccessToken     string
	Mock            bool
	PaymentMethodID string
	PayerEmail      string
}

// Load reads configuration from the environment (optionally .env), applying
// defaults so the service boots locally.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "mimo-finance"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Port:            getString("SERVER_PORT", "8080"),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
		DynamoDB: DynamoDBConfig{
			Region:          getString("AWS_REGION", "us-east-1"),
			AccessKeyID:     getString("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey: getString("AWS_SECRET_ACCESS_KEY", "local"),
			Endpoint:        os.Getenv("DYNAMODB_ENDPOINT"),
			PaymentsTable:   getString("PAYMENTS_TABLE", "payments"),
			ServicesTable:   getString("SERVICES_TABLE", "services"),
			UsersTable:      getString("USERS_TABLE", "users"),
		},
		Business: BusinessConfig{
			Timezone: os.Getenv("BUSINESS_TIMEZONE"),
		},
		Fuzzy: FuzzyConfig{
			Threshold:       getFloat("FUZZY_SIMILARITY_THRESHOLD", fuzzy.DefaultThreshold),
			InitialFallback: getBool("FUZZY_INITIAL_FALLBACK", fuzzy.DefaultInitialFallback),
		},
		Cache: CacheConfig{
			Enabled: getBool("CACHE_ENABLED", true),
			TTL:     getDuration("CACHE_TTL", 30*time.Second),
			Prefix:  getString("CACHE_PREFIX", "mimo"),
		},
		Redis: RedisConfig{
			Addr:     getString("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Offline: OfflineConfig{
			Path:   getString("OFFLINE_CACHE_PATH", "./data/offline.db"),
			Bucket: getString("OFFLINE_CACHE_BUCKET", "snapshots"),
		},
		Payout: PayoutConfig{
			AccessToken:     os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
			Mock:            getBool("PAYMENT_GATEWAY_MOCK", false) || getBool("MERCADOPAGO_MOCK", false),
			PaymentMethodID: getString("MERCADOPAGO_PAYMENT_METHOD_ID", "pix"),
			PayerEmail:      os.Getenv("MERCADOPAGO_PAYER_EMAIL"),
		},
	}
	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}

// getDuration accepts Go durations ("30s") or a bare number of seconds.
func getDuration(key string, fallback time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
