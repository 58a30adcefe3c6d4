package vc

import (
	"encoding/json"
	"testing"
)

func TestStringListDecodesArray(t *testing.T) {
	t.Parallel()

	var l StringList
	if err := json.Unmarshal([]byte(`["fintech","healthtech"]`), &l); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(l) != 2 || l[0] != "fintech" || l[1] != "healthtech" {
		t.Fatalf("expected two elements in order, got %v", l)
	}
}

func TestStringListCoercesScalar(t *testing.T) {
	t.Parallel()

	var l StringList
	if err := json.Unmarshal([]byte(`"hello@acme.vc"`), &l); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(l) != 1 || l[0] != "hello@acme.vc" {
		t.Fatalf("expected single-element list, got %v", l)
	}
}

func TestStringListRejectsNonString(t *testing.T) {
	t.Parallel()

	var l StringList
	if err := json.Unmarshal([]byte(`42`), &l); err == nil {
		t.Fatal("expected error for non-string scalar")
	}
}

func TestRecordDecodeCoercesEachFieldIndependently(t *testing.T) {
	t.Parallel()

	raw := `{
		"vc_name": "Acme Ventures",
		"contacts": "no info",
		"industries": ["fintech", "healthtech"],
		"investment_rounds": "Series A"
	}`
	var r Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if r.VCName != "Acme Ventures" {
		t.Fatalf("unexpected vc_name %q", r.VCName)
	}
	if !r.Contacts.IsNoInfo() {
		t.Fatalf("expected contacts to be the no-info sentinel, got %v", r.Contacts)
	}
	if len(r.Industries) != 2 {
		t.Fatalf("expected industries kept as-is, got %v", r.Industries)
	}
	if len(r.InvestmentRounds) != 1 || r.InvestmentRounds[0] != "Series A" {
		t.Fatalf("expected scalar round wrapped, got %v", r.InvestmentRounds)
	}
}

func TestIsNoInfo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		list StringList
		want bool
	}{
		{"sentinel", StringList{NoInfo}, true},
		{"empty", nil, false},
		{"sentinel plus data", StringList{NoInfo, "x"}, false},
		{"data", StringList{"fintech"}, false},
	}
	for _, tc := range cases {
		if got := tc.list.IsNoInfo(); got != tc.want {
			t.Fatalf("%s: IsNoInfo() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanonicalFieldOrder(t *testing.T) {
	t.Parallel()

	r := Record{
		VCName:           "Acme Ventures",
		Contacts:         StringList{"hello@acme.vc"},
		Industries:       StringList{"fintech"},
		InvestmentRounds: StringList{"Seed"},
	}
	want := `{"vc_name":"Acme Ventures","contacts":["hello@acme.vc"],"industries":["fintech"],"investment_rounds":["Seed"]}`
	if got := r.Canonical(); got != want {
		t.Fatalf("Canonical() = %s, want %s", got, want)
	}
}
