package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// UtilityBilling says how a utility is charged to tenants.
type UtilityBilling string

const (
	BillingIncluded        UtilityBilling = "included"
	BillingSplitPercentage UtilityBilling = "split_percentage"
	BillingMetered         UtilityBilling = "metered"
	BillingFixedMonthly    UtilityBilling = "fixed_monthly"
)

// Valid reports whether b is a known billing mode.
func (b UtilityBilling) Valid() bool {
	switch b {
	case BillingIncluded, BillingSplitPercentage, BillingMetered, BillingFixedMonthly:
		return true
	}
	return false
}

// UtilityRule configures billing of one utility (water, electricity, internet...).
type UtilityRule struct {
	Mode          UtilityBilling `json:"mode"`
	Percentage    *float64       `json:"percentage,omitempty"`
	MonthlyAmount *float64       `json:"monthly_amount,omitempty"`
}

// HousingRules is the listing configuration stored as jsonb.
type HousingRules struct {
	SharedSpaces    []string               `json:"shared_spaces,omitempty"`
	PrivateSpaces   []string               `json:"private_spaces,omitempty"`
	Utilities       map[string]UtilityRule `json:"utilities,omitempty"`
	HostPreferences []string               `json:"host_preferences,omitempty"`
}

// Validate checks the billing mode of every utility.
func (h HousingRules) Validate() error {
	for name, rule := range h.Utilities {
		if !rule.Mode.Valid() {
			return fmt.Errorf("utility %q: unknown billing mode %q", name, rule.Mode)
		}
	}
	return nil
}

// Scan implements sql.Scanner. NULL leaves the zero value; unknown billing
// modes are rejected.
func (h *HousingRules) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*h = HousingRules{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into HousingRules", src)
	}
	var rules HousingRules
	if err := json.Unmarshal(data, &rules); err != nil {
		return fmt.Errorf("decode housing rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return err
	}
	*h = rules
	return nil
}

// Value implements driver.Valuer.
func (h HousingRules) Value() (driver.Value, error) {
	data, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
