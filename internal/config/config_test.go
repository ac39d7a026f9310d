package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, key := range []string{
		"TODO_API_BASE_URL", "TODO_API_PATH", "TODO_AUTH_PATH", "TODO_AUTH_SIGNUP_PATH",
		"TODO_SESSION_PATH", "TODO_SECRETS_BACKEND", "TODO_SECRETS_DIR",
		"TODO_LOG_LEVEL", "TODO_LOG_FORMAT", "TODO_HTTP_TIMEOUT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	v, err := New(home)
	require.NoError(t, err)

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, Settings{
		BaseURL:        "http://127.0.0.1:8000",
		APIPath:        "/api/",
		AuthPath:       "/auth/",
		SignupPath:     "register/",
		SessionPath:    filepath.Join(home, ".todo", "session.toml"),
		SecretsBackend: "chain",
		SecretsDir:     filepath.Join(home, ".todo", "secrets"),
		LogLevel:       "warn",
		LogFormat:      "text",
		HTTPTimeout:    30 * time.Second,
	}, s)
}

func TestLoadEnvironmentOverridesConfigFile(t *testing.T) {
	home := isolate(t)

	require.NoError(t, os.MkdirAll(filepath.Join(home, ".todo"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".todo", "config.toml"), []byte(
		"[api]\nbase_url = \"https://tasks.example.com/\"\n\n[auth]\nsignup_path = \"signup/\"\n",
	), 0o600))
	t.Setenv("TODO_API_BASE_URL", "http://localhost:9000")
	t.Setenv("TODO_HTTP_TIMEOUT", "5s")

	v, err := New(home)
	require.NoError(t, err)

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", s.BaseURL)
	assert.Equal(t, "signup/", s.SignupPath)
	assert.Equal(t, 5*time.Second, s.HTTPTimeout)
}

func TestLoadReadsConfigFileAndTrimsBaseURL(t *testing.T) {
	home := isolate(t)

	require.NoError(t, os.MkdirAll(filepath.Join(home, ".todo"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".todo", "config.toml"), []byte(
		"[api]\nbase_url = \"https://tasks.example.com/\"\n\n[secrets]\ndir = \"~/vault\"\n",
	), 0o600))

	v, err := New(home)
	require.NoError(t, err)

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "https://tasks.example.com", s.BaseURL)
	assert.Equal(t, filepath.Join(home, "vault"), s.SecretsDir)
}

func TestNewLoadsDotEnvFromWorkingDirectory(t *testing.T) {
	home := isolate(t)

	require.NoError(t, os.WriteFile(".env", []byte("TODO_LOG_LEVEL=debug\nTODO_SECRETS_BACKEND=file\n"), 0o600))

	v, err := New(home)
	require.NoError(t, err)

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "file", s.SecretsBackend)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	home := isolate(t)

	t.Setenv("TODO_API_BASE_URL", "127.0.0.1:8000")
	v, err := New(home)
	require.NoError(t, err)
	_, err = Load(v)
	require.ErrorContains(t, err, "api.base_url")

	t.Setenv("TODO_API_BASE_URL", "http://127.0.0.1:8000")
	t.Setenv("TODO_HTTP_TIMEOUT", "0s")
	v, err = New(home)
	require.NoError(t, err)
	_, err = Load(v)
	require.ErrorContains(t, err, "http.timeout")
}

func TestLoadRejectsMalformedConfigFile(t *testing.T) {
	home := isolate(t)

	require.NoError(t, os.MkdirAll(filepath.Join(home, ".todo"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".todo", "config.toml"), []byte("api = ["), 0o600))

	_, err := New(home)
	require.ErrorContains(t, err, "read config file")
}
