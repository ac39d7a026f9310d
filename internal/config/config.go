package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "TODO"

	KeyBaseURL        = "api.base_url"
	KeyAPIPath        = "api.path"
	KeyAuthPath       = "auth.path"
	KeySignupPath     = "auth.signup_path"
	KeySessionPath    = "session.path"
	KeySecretsBackend = "secrets.backend"
	KeySecretsDir     = "secrets.dir"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyHTTPTimeout    = "http.timeout"

	configDir  = ".todo"
	configName = "config"
	configType = "toml"
)

// Settings is the resolved client configuration.
type Settings struct {
	BaseURL        string
	APIPath        string
	AuthPath       string
	SignupPath     string
	SessionPath    string
	SecretsBackend string
	SecretsDir     string
	LogLevel       string
	LogFormat      string
	HTTPTimeout    time.Duration
}

// New builds the configuration source. Values are looked up in TODO_*
// environment variables (a .env file in the working directory is loaded
// first), then ~/.todo/config.toml, then defaults. An empty home means the
// current user's home directory.
func New(home string) (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyBaseURL, "http://127.0.0.1:8000")
	v.SetDefault(KeyAPIPath, "/api/")
	v.SetDefault(KeyAuthPath, "/auth/")
	v.SetDefault(KeySignupPath, "register/")
	v.SetDefault(KeySessionPath, filepath.Join(home, configDir, "session.toml"))
	v.SetDefault(KeySecretsBackend, "chain")
	v.SetDefault(KeySecretsDir, filepath.Join(home, configDir, "secrets"))
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyHTTPTimeout, 30*time.Second)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(filepath.Join(home, configDir))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return v, nil
}

// Load resolves and validates Settings from v.
func Load(v *viper.Viper) (Settings, error) {
	if v == nil {
		return Settings{}, errors.New("config source is nil")
	}

	s := Settings{
		BaseURL:        strings.TrimRight(strings.TrimSpace(v.GetString(KeyBaseURL)), "/"),
		APIPath:        v.GetString(KeyAPIPath),
		AuthPath:       v.GetString(KeyAuthPath),
		SignupPath:     v.GetString(KeySignupPath),
		SessionPath:    v.GetString(KeySessionPath),
		SecretsBackend: v.GetString(KeySecretsBackend),
		SecretsDir:     v.GetString(KeySecretsDir),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
		HTTPTimeout:    v.GetDuration(KeyHTTPTimeout),
	}

	base, err := url.Parse(s.BaseURL)
	if err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", KeyBaseURL, err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return Settings{}, fmt.Errorf("%s must be an absolute http(s) URL, got %q", KeyBaseURL, s.BaseURL)
	}
	if s.HTTPTimeout <= 0 {
		return Settings{}, fmt.Errorf("%s must be positive, got %s", KeyHTTPTimeout, s.HTTPTimeout)
	}

	s.SecretsDir, err = expandHome(s.SecretsDir)
	if err != nil {
		return Settings{}, err
	}

	return s, nil
}

func expandHome(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, rest), nil
}
