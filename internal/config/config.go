package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BerylCAtieno/outreach-copy-agent/internal/logger"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	LogMode        string
	GeminiAPIKey   string
	GeminiModel    string
	LLMTimeout     time.Duration
	SiteTimeout    time.Duration
	DefaultCount   int
	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigins    []string
}

// LoadDotEnv reads .env into the process environment if it exists.
// A missing file is not an error; the environment alone is enough.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// Load reads configuration from the environment. Invalid values fall back
// to their defaults and are reported on log when it is non-nil.
func Load(log *logger.Logger) Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		LogMode:        getEnv("LOG_MODE", "dev"),
		GeminiAPIKey:   strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMTimeout:     getEnvAsDuration("LLM_TIMEOUT", 45*time.Second, log),
		SiteTimeout:    getEnvAsDuration("SITE_TIMEOUT", 10*time.Second, log),
		DefaultCount:   getEnvAsInt("DEFAULT_COUNT", 4, log),
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 5, log),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 10, log),
		CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}),
	}
}

// LLMEnabled reports whether a usable Gemini key is configured.
func (c Config) LLMEnabled() bool {
	return c.GeminiAPIKey != "" && c.GeminiAPIKey != "your_api_key_here"
}

func getEnv(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func getEnvAsInt(name string, def int, log *logger.Logger) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 {
		warnInvalid(log, name, v, def)
		return def
	}
	return i
}

func getEnvAsFloat(name string, def float64, log *logger.Logger) float64 {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		warnInvalid(log, name, v, def)
		return def
	}
	return f
}

// getEnvAsDuration accepts Go duration strings ("10s") or plain seconds ("10").
func getEnvAsDuration(name string, def time.Duration, log *logger.Logger) time.Duration {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		warnInvalid(log, name, v, def)
		return def
	}
	return d
}

func getEnvAsList(name string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func warnInvalid(log *logger.Logger, name, value string, def interface{}) {
	if log == nil {
		return
	}
	log.Warn("invalid environment value, using default", "name", name, "value", value, "default", def)
}
