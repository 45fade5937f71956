package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `core:
  mail:
    host: smtp.example.com
    from: no-reply@example.com
  auth:
    token_secret: test-secret
`

func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)

	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(orig)
	})

	return dir
}

func writeConfig(t *testing.T, dir string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "account.yaml"), []byte(content), 0o600))
}

func TestManagerDefaults(t *testing.T) {
	dir := chdirTemp(t)
	writeConfig(t, dir, minimalConfig)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Init())

	cfg := m.Config().Core
	assert.Equal(t, "morpionai.com", cfg.Domain)
	assert.Equal(t, uint(5001), cfg.Port)
	assert.Equal(t, "sqlite", cfg.DB.Type)
	assert.Equal(t, "account.db", cfg.DB.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 90*24*time.Hour, cfg.Auth.SessionLifetime)
	assert.Equal(t, 10*time.Minute, cfg.Auth.OTPTTL)
	assert.Equal(t, 10*time.Second, cfg.OAuth.Google.Timeout)
}

func TestManagerFileValuesOverrideDefaults(t *testing.T) {
	dir := chdirTemp(t)
	writeConfig(t, dir, minimalConfig+`  domain: play.example.com
  port: 9000
  log:
    level: debug
`)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Init())

	cfg := m.Config().Core
	assert.Equal(t, "play.example.com", cfg.Domain)
	assert.Equal(t, uint(9000), cfg.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestManagerEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	writeConfig(t, dir, minimalConfig+`  domain: play.example.com
`)

	t.Setenv("MORPIONAI_CORE_DOMAIN", "env.example.com")

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Init())

	assert.Equal(t, "env.example.com", m.Config().Core.Domain)
}

func TestManagerMissingTokenSecret(t *testing.T) {
	dir := chdirTemp(t)
	writeConfig(t, dir, `core:
  mail:
    host: smtp.example.com
    from: no-reply@example.com
`)

	m, err := NewManager()
	require.NoError(t, err)

	err = m.Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token_secret")
}

func TestManagerMissingMailHost(t *testing.T) {
	dir := chdirTemp(t)
	writeConfig(t, dir, `core:
  auth:
    token_secret: test-secret
`)

	m, err := NewManager()
	require.NoError(t, err)

	require.Error(t, m.Init())
}

func TestManagerIncompleteMySQLConfig(t *testing.T) {
	dir := chdirTemp(t)
	writeConfig(t, dir, minimalConfig+`  db:
    type: mysql
    host: db.example.com
`)

	m, err := NewManager()
	require.NoError(t, err)

	require.Error(t, m.Init())
}
