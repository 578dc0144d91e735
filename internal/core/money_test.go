package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"simple dot", "12.34", 1234, false},
		{"simple comma", "12,34", 1234, false},
		{"integer", "100", 10000, false},
		{"one decimal", "5.5", 550, false},
		{"third decimal rounds down", "12.344", 1234, false},
		{"third decimal rounds up", "12.345", 1235, false},
		{"leading whitespace", "  9.99", 999, false},
		{"zero", "0", 0, true},
		{"zero decimal", "0.00", 0, true},
		{"negative rejected", "-5.00", 0, true},
		{"explicit plus rejected", "+5.00", 0, true},
		{"empty", "", 0, true},
		{"letters", "abc", 0, true},
		{"two separators", "1.2.3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToCents(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDecimalToCents(%q) = %d, expected error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimalToCents(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoneyDecimalString(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{1234, "12.34"},
		{100, "1.00"},
		{5, "0.05"},
		{0, "0.00"},
		{-5, "-0.05"},
		{-123456, "-1234.56"},
	}

	for _, tt := range tests {
		if got := (Money{Cents: tt.cents}).DecimalString(); got != tt.want {
			t.Errorf("Money{%d}.DecimalString() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	tests := []int64{0, 1, 99, 100, 1234, -1234, 1000000001}

	for _, cents := range tests {
		data, err := json.Marshal(Money{Cents: cents})
		if err != nil {
			t.Fatalf("marshal %d: %v", cents, err)
		}
		var back Money
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back.Cents != cents {
			t.Errorf("round trip %d -> %s -> %d", cents, data, back.Cents)
		}
	}
}

func TestMoneyMarshalIsPlainNumber(t *testing.T) {
	data, err := json.Marshal(Money{Cents: 1234})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "12.34" {
		t.Errorf("marshal = %s, want 12.34", data)
	}
}

func TestMoneyUnmarshalQuotedString(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`"12,34"`), &m); err != nil {
		t.Fatalf("unmarshal quoted: %v", err)
	}
	if m.Cents != 1234 {
		t.Errorf("unmarshal quoted = %d, want 1234", m.Cents)
	}

	if err := json.Unmarshal([]byte(`null`), &m); err == nil {
		t.Error("unmarshal null should fail")
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 100}).Validate(); err != nil {
		t.Errorf("positive amount should validate: %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Error("zero amount should not validate")
	}
	if err := (Money{Cents: -100}).Validate(); err == nil {
		t.Error("negative amount should not validate")
	}
}
