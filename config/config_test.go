package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
database:
  host: localhost
  user: app
  name: skyreserva
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 5, cfg.Payment.CodeTTLMinutes)
	assert.Equal(t, 5, cfg.Payment.MaxCodeAttempts)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 60, cfg.Worker.ExpirationSweepSeconds)
	assert.Equal(t, "development", cfg.App.Env)
	assert.True(t, cfg.ExposeVerificationCode())
	assert.Contains(t, cfg.Database.DSN(), "dbname=skyreserva")
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
app:
  env: production
database:
  host: localhost
`)
	t.Setenv("ADMIN_TOKEN", "secret")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := LoadConfig(path)
	require.Error(t, err, "kafka brokers without notifications topic")
	assert.Nil(t, cfg)

	path = writeConfig(t, `
app:
  env: production
database:
  host: localhost
kafka:
  notifications_topic: notifications
`)
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Admin.Token)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.Database.DSN())
	assert.False(t, cfg.ExposeVerificationCode())
}

func TestLoadConfig_ProductionRequiresAdminToken(t *testing.T) {
	path := writeConfig(t, `
app:
  env: production
database:
  host: localhost
`)
	t.Setenv("ADMIN_TOKEN", "")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
