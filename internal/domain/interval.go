package domain

import "time"

// Interval is one sub-hourly usage record of a Service.
type Interval struct {
	ServiceUID            ServiceUID `json:"service_uid"`
	Utility               string     `json:"utility,omitempty"`
	UtilityServiceID      string     `json:"utility_service_id,omitempty"`
	UtilityTariffName     string     `json:"utility_tariff_name,omitempty"`
	UtilityServiceAddress string     `json:"utility_service_address,omitempty"`
	UtilityMeterNumber    string     `json:"utility_meter_number,omitempty"`
	KWh                   float64    `json:"interval_kWh"`
	KW                    float64    `json:"interval_kW"`
	Source                string     `json:"source,omitempty"`
	Start                 Timestamp  `json:"interval_start,omitzero"`
	End                   Timestamp  `json:"interval_end,omitzero"`
	Updated               Timestamp  `json:"updated,omitzero"`
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start.Time)
}
