package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL string
	APIHost    string
	APIKey     string
	APITimeout time.Duration

	SearchQuery     string
	StartPage       int
	PageCount       int
	DatePosted      string
	Country         string
	EmploymentTypes string
	JobRequirements string
	Radius          int
	FetchDetails    bool

	PageInterval   time.Duration
	DetailInterval time.Duration

	ScrapeSpec   string
	OutputDir    string
	ExportFormat string

	FilterMinSalary     float64
	FilterLocation      string
	FilterRemoteOnly    bool
	FilterCompany       string
	FilterTitleKeywords []string

	NATSURL         string
	NATSConnTimeout time.Duration
	PublishEnabled  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	OTLPCollectorURL string
}

func LoadConfig() (*Config, error) {
	// Local development convenience; missing .env is not an error.
	_ = godotenv.Load()

	config := &Config{
		APIBaseURL: getEnvString("JSEARCH_API_BASE_URL", "https://jsearch.p.rapidapi.com"),
		APIHost:    getEnvString("JSEARCH_API_HOST", "jsearch.p.rapidapi.com"),
		APIKey:     getEnvString("JSEARCH_API_KEY", ""),
		APITimeout: getEnvDuration("JSEARCH_API_TIMEOUT", 15*time.Second),

		SearchQuery:     getEnvString("SEARCH_QUERY", "Software Engineer"),
		StartPage:       getEnvInt("SEARCH_START_PAGE", 1),
		PageCount:       getEnvInt("SEARCH_PAGE_COUNT", 3),
		DatePosted:      getEnvString("SEARCH_DATE_POSTED", "week"),
		Country:         getEnvString("SEARCH_COUNTRY", "us"),
		EmploymentTypes: getEnvString("SEARCH_EMPLOYMENT_TYPES", "FULLTIME"),
		JobRequirements: getEnvString("SEARCH_JOB_REQUIREMENTS", ""),
		Radius:          getEnvInt("SEARCH_RADIUS", 100),
		FetchDetails:    getEnvBool("SEARCH_FETCH_DETAILS", true),

		PageInterval:   getEnvDuration("PAGE_INTERVAL", time.Second),
		DetailInterval: getEnvDuration("DETAIL_INTERVAL", 500*time.Millisecond),

		ScrapeSpec:   getEnvString("SCRAPE_SPEC", "@every 6h"),
		OutputDir:    getEnvString("OUTPUT_DIR", "."),
		ExportFormat: getEnvString("EXPORT_FORMAT", "both"),

		FilterMinSalary:     getEnvFloat("FILTER_MIN_SALARY", 0),
		FilterLocation:      getEnvString("FILTER_LOCATION", ""),
		FilterRemoteOnly:    getEnvBool("FILTER_REMOTE_ONLY", false),
		FilterCompany:       getEnvString("FILTER_COMPANY", ""),
		FilterTitleKeywords: getEnvList("FILTER_TITLE_KEYWORDS"),

		NATSURL:         getEnvString("NATS_URL", "nats://localhost:4222"),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),
		PublishEnabled:  getEnvBool("PUBLISH_ENABLED", false),

		RedisAddr:     getEnvString("REDIS_ADDR", ""),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 24*time.Hour),

		OTLPCollectorURL: getEnvString("OTLP_COLLECTOR_URL", ""),
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
