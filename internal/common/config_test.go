package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archivo.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, 993, config.Mail.Port)
	assert.True(t, config.Mail.UseTLS)
	assert.Equal(t, "INBOX", config.Mail.Folder)
	assert.Equal(t, "./data", config.Storage.Badger.Path)
	assert.Equal(t, 30*time.Second, config.ExtractTimeoutDuration())
	assert.False(t, config.Scheduler.Enabled)
	assert.Equal(t, 1, config.Scheduler.LookbackDays)

	require.NoError(t, config.Validate())
}

func TestLoadFromFiles(t *testing.T) {
	path := writeConfig(t, `
environment = "production"

[server]
port = 9090

[mail]
host = "imap.example.com"
username = "facturas@example.com"
password = "secret"

[ingest]
extract_timeout = "45s"
`)

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.True(t, config.IsProduction())
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "imap.example.com", config.Mail.Host)
	assert.Equal(t, 45*time.Second, config.ExtractTimeoutDuration())
	// Untouched sections keep defaults
	assert.Equal(t, 993, config.Mail.Port)
	assert.Equal(t, "./data", config.Storage.Badger.Path)
}

func TestLoadFromFiles_LaterFileOverrides(t *testing.T) {
	first := writeConfig(t, "[server]\nport = 9090\n")
	second := writeConfig(t, "[server]\nport = 9091\n")

	config, err := LoadFromFiles(first, second)
	require.NoError(t, err)
	assert.Equal(t, 9091, config.Server.Port)
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadFromFiles_InvalidLogLevel(t *testing.T) {
	path := writeConfig(t, "[logging]\nlevel = \"loud\"\n")

	_, err := LoadFromFiles(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ARCHIVO_MAIL_HOST", "imap.env.example.com")
	t.Setenv("ARCHIVO_SERVER_PORT", "7070")
	t.Setenv("ARCHIVO_INGEST_EXTRACT_TIMEOUT", "1m")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "imap.env.example.com", config.Mail.Host)
	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, time.Minute, config.ExtractTimeoutDuration())
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, 6060, "0.0.0.0")
	assert.Equal(t, 6060, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)

	// Zero values leave config untouched
	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 6060, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
}
