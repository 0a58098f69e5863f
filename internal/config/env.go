package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr            string
	GinMode            string
	DBDSN              string
	RedisURL           string
	JWTSecret          string
	JWTTTL             time.Duration
	EmailEndpoint      string
	EmailTimeout       time.Duration
	InvoiceDueDays     int
	CORSAllowedOrigins []string
	LogLevel           string
	LogFormat          string
	AutoMigrate        bool
}

const defaultDSN = "root:@tcp(127.0.0.1:3306)/flightschool"

// LoadEnv reads .env (when present) and the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	env := Env{
		AppAddr:        getString("APP_ADDR", ":8080"),
		GinMode:        getString("GIN_MODE", ""),
		DBDSN:          getString("DB_DSN", defaultDSN),
		RedisURL:       getString("REDIS_URL", ""),
		JWTSecret:      getString("JWT_SECRET", ""),
		JWTTTL:         getDuration("JWT_TTL", 12*time.Hour),
		EmailEndpoint:  getString("EMAIL_ENDPOINT", ""),
		EmailTimeout:   getDuration("EMAIL_TIMEOUT", 10*time.Second),
		InvoiceDueDays: getInt("INVOICE_DUE_DAYS", 30),
		LogLevel:       getString("LOG_LEVEL", "info"),
		LogFormat:      getString("LOG_FORMAT", "text"),
		AutoMigrate:    getBool("AUTO_MIGRATE", false),
		CORSAllowedOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
	}

	if raw := getString("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		env.CORSAllowedOrigins = splitList(raw)
	}
	if env.InvoiceDueDays <= 0 {
		env.InvoiceDueDays = 30
	}
	return env
}

func getString(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getString(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getString(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getString(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
