package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

type ProfileName string

const DefaultProfileName ProfileName = "default"

// Profile is a named API endpoint. The access token lives in the secret store
// under TokenRef, never in the profile file.
type Profile struct {
	Name      ProfileName
	BaseURL   string
	TokenRef  string
	PollDelay time.Duration
	UpdatedAt time.Time
}

func (p Profile) Validate() error {
	if strings.TrimSpace(string(p.Name)) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(p.BaseURL) == "" {
		return fmt.Errorf("base url is required")
	}
	parsed, err := url.Parse(p.BaseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base url must use http or https")
	}
	if parsed.Host == "" {
		return fmt.Errorf("base url host is required")
	}
	if p.PollDelay < 0 {
		return fmt.Errorf("poll delay must not be negative")
	}

	return nil
}

// TokenRefFor is the secret-store key holding the access token of a profile.
func TokenRefFor(name ProfileName) string {
	return fmt.Sprintf("utilityapi/%s/token", name)
}
