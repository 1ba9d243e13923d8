package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEnvVars = []string{
	"SERVER_PORT", "SERVER_HOST", "ALLOWED_ORIGIN", "ENVIRONMENT",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
	"MONGO_HOST", "MONGO_PORT", "MONGO_USER", "MONGO_PASSWORD", "MONGO_DB",
	"SECRET_KEY", "SESSION_TOKEN_TTL",
	"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT",
}

func clearTestEnvVars() {
	for _, key := range testEnvVars {
		os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	cfg := LoadConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Server.AllowedOrigin)
	assert.Equal(t, "development", cfg.Server.Environment)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, "stemchat", cfg.Database.Username)
	assert.Equal(t, "stemchat", cfg.Database.DatabaseName)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)

	assert.Equal(t, "localhost", cfg.MongoDB.Host)
	assert.Equal(t, "27017", cfg.MongoDB.Port)
	assert.Equal(t, "stemchat", cfg.MongoDB.Database)

	assert.Equal(t, 24, cfg.Session.TokenTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("DB_HOST", "db.internal")
	os.Setenv("DB_MAX_OPEN_CONNS", "50")
	os.Setenv("SECRET_KEY", "s3cret")
	os.Setenv("SESSION_TOKEN_TTL", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	// Unparseable ints fall back to the default.
	assert.Equal(t, 24, cfg.Session.TokenTTL)
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:         "db.internal",
			Port:         "3307",
			Username:     "app",
			Password:     "pw",
			DatabaseName: "chat",
		},
	}

	dsn := cfg.DSN()
	assert.Equal(t, "app:pw@tcp(db.internal:3307)/chat?charset=utf8mb4&parseTime=True&loc=Local", dsn)
}

func TestConfig_MongoURI(t *testing.T) {
	cfg := &Config{MongoDB: MongoConfig{Host: "mongo", Port: "27017"}}
	assert.Equal(t, "mongodb://mongo:27017", cfg.MongoURI())

	cfg.MongoDB.Username = "admin"
	cfg.MongoDB.Password = "pw"
	assert.Equal(t, "mongodb://admin:pw@mongo:27017", cfg.MongoURI())
}
