package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("APP_ADDR", "")
	t.Setenv("INVOICE_DUE_DAYS", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	env := LoadEnv()
	assert.Equal(t, ":8080", env.AppAddr)
	assert.Equal(t, 30, env.InvoiceDueDays)
	assert.Equal(t, 12*time.Hour, env.JWTTTL)
	assert.Contains(t, env.CORSAllowedOrigins, "http://localhost:5173")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("INVOICE_DUE_DAYS", "14")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://ops.example.com, https://app.example.com ,")

	env := LoadEnv()
	assert.Equal(t, ":9090", env.AppAddr)
	assert.Equal(t, 14, env.InvoiceDueDays)
	assert.Equal(t, time.Hour, env.JWTTTL)
	assert.True(t, env.AutoMigrate)
	assert.Equal(t, []string{"https://ops.example.com", "https://app.example.com"}, env.CORSAllowedOrigins)
}

func TestLoadEnvRejectsNonPositiveDueDays(t *testing.T) {
	t.Setenv("INVOICE_DUE_DAYS", "-3")
	assert.Equal(t, 30, LoadEnv().InvoiceDueDays)
}
