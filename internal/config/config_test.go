package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:      "8480",
		JWTSecret: "0123456789abcdef0123456789abcdef",
		DBDriver:  "postgres",
		Env:       "development",
	}
}

func TestValidateAcceptsDevelopmentDefaults(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidateRequiresPort(t *testing.T) {
	cfg := validConfig()
	cfg.Port = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.DBDriver = "mysql"
	assert.Error(t, cfg.Validate())
}

func TestValidateProductionRejectsDefaultSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.JWTSecret = "your-secret-key-change-in-production"
	assert.Error(t, cfg.Validate())
}

func TestValidateProductionRejectsSqlite(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.DBDriver = "sqlite"
	cfg.DBPassword = "s0me-strong-password"
	assert.Error(t, cfg.Validate())
}

func TestValidateProductionRejectsWeakDBPassword(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.DBPassword = "password"
	assert.Error(t, cfg.Validate())
}

func TestIsProduction(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.IsProduction())
	cfg.Env = "prod"
	assert.True(t, cfg.IsProduction())
	cfg.Env = "production"
	assert.True(t, cfg.IsProduction())
}
