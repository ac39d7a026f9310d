package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Session sessionSchema `toml:"session"`
	Display displaySchema `toml:"display"`
}

type sessionSchema struct {
	Username string `toml:"username,omitempty"`
	TokenRef string `toml:"token_ref,omitempty"`
}

type displaySchema struct {
	DarkMode bool `toml:"dark_mode"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}
