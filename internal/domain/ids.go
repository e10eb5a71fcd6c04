package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UIDs are mostly numeric on the wire but are not guaranteed to stay that
// way, so they are kept as strings.
type (
	AccountUID string
	ServiceUID string
	UserUID    string
)

func (u *AccountUID) UnmarshalJSON(data []byte) error {
	return decodeText(data, (*string)(u))
}

func (u *ServiceUID) UnmarshalJSON(data []byte) error {
	return decodeText(data, (*string)(u))
}

func (u *UserUID) UnmarshalJSON(data []byte) error {
	return decodeText(data, (*string)(u))
}

// decodeText accepts a JSON string or number and stores its text form.
func decodeText(data []byte, dst *string) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		return json.Unmarshal(data, dst)
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("decode identifier %s: %w", data, err)
	}
	*dst = number.String()
	return nil
}
