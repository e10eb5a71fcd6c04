package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Bill is one collected billing period of a Service. It has no identifier of
// its own.
type Bill struct {
	ServiceUID            ServiceUID    `json:"service_uid"`
	Utility               string        `json:"utility,omitempty"`
	UtilityServiceID      string        `json:"utility_service_id,omitempty"`
	UtilityTariffName     string        `json:"utility_tariff_name,omitempty"`
	UtilityServiceAddress string        `json:"utility_service_address,omitempty"`
	UtilityMeterNumber    string        `json:"utility_meter_number,omitempty"`
	BillDays              int           `json:"bill_bill_days"`
	TotalKWh              float64       `json:"bill_total_kWh"`
	Total                 float64       `json:"bill_total"`
	Source                string        `json:"source,omitempty"`
	StartDate             Timestamp     `json:"bill_start_date,omitzero"`
	EndDate               Timestamp     `json:"bill_end_date,omitzero"`
	StatementDate         Timestamp     `json:"bill_statement_date,omitzero"`
	Updated               Timestamp     `json:"updated,omitzero"`
	Breakdown             BillBreakdown `json:"bill_breakdown,omitempty"`
}

// BillCharge is one line item of a bill, amount in USD.
type BillCharge struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// BillBreakdown is sent as a {name: amount} object; the order of the payload
// is kept.
type BillBreakdown []BillCharge

func (b BillBreakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, charge := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(charge.Name)
		if err != nil {
			return nil, err
		}
		amount, err := json.Marshal(charge.Amount)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(amount)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (b *BillBreakdown) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode bill breakdown: %w", err)
	}
	if tok == nil {
		*b = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode bill breakdown: expected object, got %v", tok)
	}

	charges := BillBreakdown{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode bill breakdown: %w", err)
		}
		name, _ := keyTok.(string)

		var amount *float64
		if err := dec.Decode(&amount); err != nil {
			return fmt.Errorf("decode bill breakdown charge %q: %w", name, err)
		}
		charge := BillCharge{Name: name}
		if amount != nil {
			charge.Amount = *amount
		}
		charges = append(charges, charge)
	}

	*b = charges
	return nil
}

// Charge returns the amount of the named line item.
func (b BillBreakdown) Charge(name string) (float64, bool) {
	for _, charge := range b {
		if charge.Name == name {
			return charge.Amount, true
		}
	}
	return 0, false
}
