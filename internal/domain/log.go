package domain

import "encoding/json"

type LogType string

const (
	LogPending LogType = "pending"
	LogUpdated LogType = "updated"
	LogError   LogType = "error"
	// LogUnspecified marks a log entry whose type the server left out.
	LogUnspecified LogType = "unspecified"
)

type LogCode string

func (c *LogCode) UnmarshalJSON(data []byte) error {
	return decodeText(data, (*string)(c))
}

// Log is a status record for asynchronous server-side processing of an
// account or service.
type Log struct {
	Type      LogType   `json:"type"`
	Message   string    `json:"message,omitempty"`
	Timestamp Timestamp `json:"timestamp,omitzero"`
	Code      LogCode   `json:"code,omitempty"`
}

func (l *Log) UnmarshalJSON(data []byte) error {
	type rawLog Log
	var raw rawLog
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type == "" {
		raw.Type = LogUnspecified
	}
	*l = Log(raw)
	return nil
}

func (l Log) Pending() bool { return l.Type == LogPending }

func (l Log) Updated() bool { return l.Type == LogUpdated }
