package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Profiles []profileSchema `toml:"profiles"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported profiles schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// profileSchema never carries the access token, only the key it is stored
// under.
type profileSchema struct {
	Name      string `toml:"name"`
	BaseURL   string `toml:"base_url"`
	TokenRef  string `toml:"token_ref"`
	PollDelay string `toml:"poll_delay,omitempty"`
	UpdatedAt string `toml:"updated_at,omitempty"`
}
