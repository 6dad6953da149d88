package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSourceURL is the published course sheet.
const DefaultSourceURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vT-nZvG7m9sUkOu0spxVTVGcM311qlgGSjnFgRDQr-l6nfs1cPFNrGBXO0ZDzMIQg/pub?gid=1171293634&single=true&output=csv"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	SourceURL    string
	HTTPAddr     string
	FetchTimeout time.Duration
	Debug        bool

	RefreshCron         string
	WatchSource         bool
	AllowSourceOverride bool
	CatalogCacheSize    int

	FeaturedLimit int
	SuggestLimit  int

	StorageDrivers   []string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	SQLitePath       string
	CSVExportPath    string

	MaxConcurrency int
	MaxRetries     int

	PreviewURL    string
	PreviewOutput string
	ChromeBin     string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		SourceURL:    getEnv("SOURCE_URL", DefaultSourceURL),
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 20*time.Second),
		Debug:        getEnvBool("DEBUG", false),

		RefreshCron:         getEnv("REFRESH_CRON", ""),
		WatchSource:         getEnvBool("WATCH_SOURCE", false),
		AllowSourceOverride: getEnvBool("ALLOW_SOURCE_OVERRIDE", false),
		CatalogCacheSize:    getEnvInt("CATALOG_CACHE_SIZE", 8),

		FeaturedLimit: getEnvInt("FEATURED_LIMIT", 8),
		SuggestLimit:  getEnvInt("SUGGEST_LIMIT", 10),

		StorageDrivers:   getEnvList("STORAGE_DRIVERS"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "atlas"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "atlas123"),
		PostgresDB:       getEnv("POSTGRES_DB", "golf_atlas"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		SQLitePath:       getEnv("SQLITE_PATH", "./data/courses.db"),
		CSVExportPath:    getEnv("CSV_EXPORT_PATH", "./output/courses.csv"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		PreviewURL:    getEnv("PREVIEW_URL", "http://localhost:8080/"),
		PreviewOutput: getEnv("PREVIEW_OUTPUT", "./output/preview.png"),
		ChromeBin:     getEnv("CHROME_BIN", ""),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// StorageEnabled reports whether the named sink is listed in STORAGE_DRIVERS.
func (c *Config) StorageEnabled(driver string) bool {
	for _, d := range c.StorageDrivers {
		if d == driver {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "y":
		return true
	case "0", "false", "no", "n":
		return false
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
