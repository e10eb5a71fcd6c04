package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AddRequirements describes what an add request must contain.
type AddRequirements struct {
	Help    string              `json:"help,omitempty"`
	Docs    string              `json:"docs,omitempty"`
	Options []RequirementOption `json:"options"`
}

// ModifyRequirements describes what a modify request may contain. The server
// names the object after its kind, so exactly one of Account and Service is
// set.
type ModifyRequirements struct {
	Account *Account            `json:"account,omitempty"`
	Service *Service            `json:"service,omitempty"`
	Help    string              `json:"help,omitempty"`
	Docs    string              `json:"docs,omitempty"`
	Options []RequirementOption `json:"options"`
}

// Object returns the account or service the requirements are about.
func (r ModifyRequirements) Object() any {
	switch {
	case r.Account != nil:
		return r.Account
	case r.Service != nil:
		return r.Service
	default:
		return nil
	}
}

type Option struct {
	Name        string `json:"name"`
	Value       string `json:"value,omitempty"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// UtilityRequirement lists the per-utility options and the auth types the
// utility allows.
type UtilityRequirement struct {
	Utility string          `json:"utility"`
	Name    string          `json:"name,omitempty"`
	Allows  []AuthType      `json:"allows,omitempty"`
	Options []UtilityOption `json:"options,omitempty"`
}

type UtilityOption struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
	Help string `json:"help,omitempty"`
}

// RequirementOption holds either a plain Option or, when the payload carries
// a "utility" key, a UtilityRequirement.
type RequirementOption struct {
	Option  *Option
	Utility *UtilityRequirement
}

func (o RequirementOption) MarshalJSON() ([]byte, error) {
	if o.Utility != nil {
		return json.Marshal(o.Utility)
	}
	if o.Option != nil {
		return json.Marshal(o.Option)
	}
	return []byte("null"), nil
}

func (o *RequirementOption) UnmarshalJSON(data []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return fmt.Errorf("decode requirement option: %w", err)
	}

	if _, ok := keys["utility"]; !ok {
		var option Option
		if err := json.Unmarshal(data, &option); err != nil {
			return fmt.Errorf("decode requirement option: %w", err)
		}
		*o = RequirementOption{Option: &option}
		return nil
	}

	var raw struct {
		Utility string          `json:"utility"`
		Name    string          `json:"name"`
		Allows  []AuthType      `json:"allows"`
		Options json.RawMessage `json:"options"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode utility requirement: %w", err)
	}

	options, err := flattenUtilityOptions(raw.Options)
	if err != nil {
		return fmt.Errorf("decode utility requirement %q: %w", raw.Utility, err)
	}

	*o = RequirementOption{Utility: &UtilityRequirement{
		Utility: raw.Utility,
		Name:    raw.Name,
		Allows:  raw.Allows,
		Options: options,
	}}
	return nil
}

// flattenUtilityOptions accepts arbitrarily nested arrays of option objects.
func flattenUtilityOptions(data json.RawMessage) ([]UtilityOption, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	if data[0] != '[' {
		var option UtilityOption
		if err := json.Unmarshal(data, &option); err != nil {
			return nil, err
		}
		return []UtilityOption{option}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	options := make([]UtilityOption, 0, len(items))
	for _, item := range items {
		nested, err := flattenUtilityOptions(item)
		if err != nil {
			return nil, err
		}
		options = append(options, nested...)
	}
	return options, nil
}
