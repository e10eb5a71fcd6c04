package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// AccountOptions is the payload of account add and modify requests. The
// server validates it.
type AccountOptions struct {
	Utility         string   `json:"utility,omitempty"`
	AuthType        AuthType `json:"auth_type,omitempty"`
	RealName        string   `json:"real_name,omitempty"`
	ThirdPartyFile  string   `json:"3rdparty_file,omitempty"`
	UtilityUsername string   `json:"utility_username,omitempty"`
	UtilityPassword string   `json:"utility_password,omitempty"`
}

// ServiceOptions is the payload of service modify requests.
type ServiceOptions struct {
	ActiveUntil Deadline `json:"active_until,omitzero"`
	UpdateData  *bool    `json:"update_data,omitempty"`
}

const deadlineNow = "now"

// Deadline is either a timestamp or the server-side "now" sentinel. The zero
// value is absent.
type Deadline struct {
	at  time.Time
	now bool
}

func DeadlineAt(t time.Time) Deadline { return Deadline{at: t} }

func DeadlineNow() Deadline { return Deadline{now: true} }

func (d Deadline) IsZero() bool { return !d.now && d.at.IsZero() }

func (d Deadline) IsNow() bool { return d.now }

func (d Deadline) Time() time.Time { return d.at }

func (d Deadline) String() string {
	if d.now {
		return deadlineNow
	}
	if d.at.IsZero() {
		return ""
	}
	return d.at.Format(time.RFC3339)
}

func (d Deadline) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Deadline) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode deadline: %w", err)
	}
	if raw == nil || *raw == "" {
		*d = Deadline{}
		return nil
	}
	parsed, err := ParseDeadline(*raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDeadline accepts "now" or an RFC 3339 timestamp.
func ParseDeadline(raw string) (Deadline, error) {
	if raw == deadlineNow {
		return DeadlineNow(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return Deadline{}, fmt.Errorf("parse deadline %q: %w", raw, err)
	}
	return DeadlineAt(t), nil
}
