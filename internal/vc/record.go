// Package vc defines the VC record domain model: the structured firm
// metadata extracted from a website, its deterministic identity, and
// its user-facing summary rendering.
package vc

import (
	"encoding/json"
	"fmt"
)

// NoInfo is the placeholder the extraction model returns for a field it
// could not populate. It always arrives wrapped in a one-element list.
const NoInfo = "no info"

// StringList is a list of strings that also accepts a bare JSON string,
// decoded as a single-element list. The extraction model emits scalars
// both for single values and for the NoInfo placeholder.
type StringList []string

// UnmarshalJSON decodes either a JSON array of strings or a single string.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("decode string list: %w", err)
	}
	*l = StringList{one}
	return nil
}

// IsNoInfo reports whether the list is exactly the NoInfo placeholder.
func (l StringList) IsNoInfo() bool {
	return len(l) == 1 && l[0] == NoInfo
}

// Record is the structured metadata extracted for a single VC firm.
// VCName doubles as the dedup key in the index; the three list fields
// are never bare scalars after decoding.
type Record struct {
	VCName           string     `json:"vc_name"`
	Contacts         StringList `json:"contacts"`
	Industries       StringList `json:"industries"`
	InvestmentRounds StringList `json:"investment_rounds"`
}

// Properties returns the record as index properties keyed by wire name.
func (r Record) Properties() map[string]any {
	return map[string]any{
		"vc_name":           r.VCName,
		"contacts":          []string(r.Contacts),
		"industries":        []string(r.Industries),
		"investment_rounds": []string(r.InvestmentRounds),
	}
}

// Canonical is the canonical serialization of the record, used both to
// derive its identifier and as the nearest-neighbor query text. Field
// order is fixed by the struct definition: vc_name, contacts,
// industries, investment_rounds. Changing the order changes identifiers.
func (r Record) Canonical() string {
	// The record holds only strings and string slices; Marshal cannot fail.
	b, _ := json.Marshal(r)
	return string(b)
}
