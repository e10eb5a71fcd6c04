package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Service is a utility meter derived from an Account. Bills and intervals
// attach to it.
type Service struct {
	UID                   ServiceUID      `json:"uid"`
	UserUID               UserUID         `json:"user_uid,omitempty"`
	AccountUID            AccountUID      `json:"account_uid,omitempty"`
	AccountAuthType       AuthType        `json:"account_auth_type,omitempty"`
	AccountAuth           string          `json:"account_auth,omitempty"`
	Utility               string          `json:"utility,omitempty"`
	UtilityServiceID      string          `json:"utility_service_id,omitempty"`
	UtilityTariffName     string          `json:"utility_tariff_name,omitempty"`
	UtilityServiceAddress string          `json:"utility_service_address,omitempty"`
	UtilityBillingAccount string          `json:"utility_billing_account,omitempty"`
	UtilityBillingContact string          `json:"utility_billing_contact,omitempty"`
	UtilityBillingAddress string          `json:"utility_billing_address,omitempty"`
	UtilityMeterNumber    string          `json:"utility_meter_number,omitempty"`
	BillCount             int             `json:"bill_count"`
	IntervalCount         int             `json:"interval_count"`
	Created               Timestamp       `json:"created,omitzero"`
	ActiveUntil           Timestamp       `json:"active_until,omitzero"`
	Latest                Log             `json:"latest"`
	Modified              *Log            `json:"modified,omitempty"`
	BillCoverage          []TimeRange     `json:"bill_coverage,omitempty"`
	IntervalCoverage      []TimeRange     `json:"interval_coverage,omitempty"`
	ServiceClass          string          `json:"service_class,omitempty"`
	// BillSources is undocumented upstream and is passed through as received.
	BillSources json.RawMessage `json:"bill_sources,omitempty"`
}

// Active reports whether data collection is still enabled at now.
func (s Service) Active(now time.Time) bool {
	return s.ActiveUntil.After(now)
}

type ResetResult struct {
	Success    bool       `json:"success"`
	ServiceUID ServiceUID `json:"service_uid"`
}

// TimeRange is one coverage window, sent as a [from, to] pair.
type TimeRange struct {
	From Timestamp
	To   Timestamp
}

func (r TimeRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]Timestamp{r.From, r.To})
}

func (r *TimeRange) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var pair []Timestamp
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decode coverage range: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decode coverage range: expected 2 timestamps, got %d", len(pair))
	}
	r.From, r.To = pair[0], pair[1]
	return nil
}
