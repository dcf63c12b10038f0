package config

import (
	"strings"
	"time"

	infraconfig "stock-snapshot/internal/infrastructure/config"

	"github.com/spf13/viper"
)

// DemoAPIKey is the sentinel credential that switches the run to synthetic data.
const DemoAPIKey = "demo"

// DefaultSymbols is used when SYMBOLS is unset or holds no usable ticker.
var DefaultSymbols = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "NVDA"}

type Config struct {
	// Common
	Env      string
	LogLevel string
	// Provider
	APIKey         string
	APIKeyProvided bool
	APIBase        string
	RequestTimeout time.Duration
	HistoryOutput  string
	// Run
	Symbols         []string
	OutputFile      string
	DemoHistoryDays int
	// Redis mirror
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RedisSnapshotKey string
	// Postgres archive
	DatabaseURL string
	// Kafka mirror
	KafkaBrokers []string
	KafkaTopic   string
	// History export
	ExportFormat string
	ExportDir    string
}

// DemoMode reports whether the run uses the synthetic generator.
func (c Config) DemoMode() bool { return c.APIKey == DemoAPIKey }

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("ENV", "local")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ALPHA_VANTAGE_API_KEY", "")
	v.SetDefault("ALPHA_VANTAGE_BASE_URL", infraconfig.DefaultAPIBase)
	v.SetDefault("REQUEST_TIMEOUT_MS", int(infraconfig.DefaultRequestTimeout/time.Millisecond))
	v.SetDefault("HISTORY_OUTPUT_SIZE", infraconfig.DefaultHistoryOutput)
	v.SetDefault("SYMBOLS", strings.Join(DefaultSymbols, ","))
	v.SetDefault("OUTPUT_FILE", infraconfig.DefaultOutputFile)
	v.SetDefault("DEMO_HISTORY_DAYS", infraconfig.DefaultDemoHistoryDays)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_SNAPSHOT_KEY", infraconfig.DefaultRedisSnapshotKey)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", infraconfig.DefaultKafkaTopic)
	v.SetDefault("EXPORT_FORMAT", "")
	v.SetDefault("EXPORT_DIR", infraconfig.DefaultExportDir)
	v.AutomaticEnv()
	return v
}

// Load reads environment variables and applies defaults.
func Load() Config {
	v := newViper()

	rawKey := v.GetString("ALPHA_VANTAGE_API_KEY")
	timeoutMS := v.GetInt("REQUEST_TIMEOUT_MS")
	if timeoutMS <= 0 {
		timeoutMS = int(infraconfig.DefaultRequestTimeout / time.Millisecond)
	}
	days := v.GetInt("DEMO_HISTORY_DAYS")
	if days <= 0 {
		days = infraconfig.DefaultDemoHistoryDays
	}

	return Config{
		Env:              v.GetString("ENV"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		APIKey:           ResolveCredential(rawKey),
		APIKeyProvided:   strings.TrimSpace(rawKey) != "",
		APIBase:          strings.TrimRight(v.GetString("ALPHA_VANTAGE_BASE_URL"), "/"),
		RequestTimeout:   time.Duration(timeoutMS) * time.Millisecond,
		HistoryOutput:    strings.ToLower(strings.TrimSpace(v.GetString("HISTORY_OUTPUT_SIZE"))),
		Symbols:          ResolveSymbols(v.GetString("SYMBOLS")),
		OutputFile:       v.GetString("OUTPUT_FILE"),
		DemoHistoryDays:  days,
		RedisAddr:        v.GetString("REDIS_ADDR"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisDB:          v.GetInt("REDIS_DB"),
		RedisSnapshotKey: v.GetString("REDIS_SNAPSHOT_KEY"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		KafkaBrokers:     splitCSV(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:       v.GetString("KAFKA_TOPIC"),
		ExportFormat:     strings.ToLower(strings.TrimSpace(v.GetString("EXPORT_FORMAT"))),
		ExportDir:        v.GetString("EXPORT_DIR"),
	}
}

// ResolveCredential returns raw, or DemoAPIKey when raw is blank.
func ResolveCredential(raw string) string {
	if k := strings.TrimSpace(raw); k != "" {
		return k
	}
	return DemoAPIKey
}

// ResolveSymbols splits a comma-separated list, trimming and upper-casing each entry.
// Order and duplicates are preserved; blank entries are dropped. A list with no usable
// entry falls back to DefaultSymbols.
func ResolveSymbols(raw string) []string {
	out := make([]string, 0, len(DefaultSymbols))
	for _, s := range strings.Split(raw, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultSymbols...)
	}
	return out
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
