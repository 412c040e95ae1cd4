package core

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestParseMoneyAllowsZero(t *testing.T) {
	m, err := ParseMoney("0")
	if err != nil || !m.IsZero() {
		t.Fatalf("expected zero amount, got %v (err=%v)", m, err)
	}
	if _, err := ParseMoney("-3"); err == nil {
		t.Fatalf("expected error for negative amount")
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(NewMoney(12, 5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"12.05"` {
		t.Fatalf("unexpected encoding %s", b)
	}

	for _, in := range []string{`"12.05"`, `12.05`, `"12.049"`} {
		var m Money
		if err := json.Unmarshal([]byte(in), &m); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if m.Cents != 1205 {
			t.Fatalf("unmarshal %s: got %d cents", in, m.Cents)
		}
	}

	var m Money
	if err := json.Unmarshal([]byte(`"-1"`), &m); err == nil {
		t.Fatalf("expected error for negative amount")
	}
}

func TestMoneyJSONRejectsOverflow(t *testing.T) {
	for _, in := range []string{`"184467440737095516.17"`, `92233720368547758.08`, `"1e40"`} {
		var m Money
		err := json.Unmarshal([]byte(in), &m)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("unmarshal %s: expected ErrInvalidAmount, got %v (cents=%d)", in, err, m.Cents)
		}
	}

	var m Money
	if err := json.Unmarshal([]byte(`"92233720368547758.07"`), &m); err != nil {
		t.Fatalf("largest amount should parse: %v", err)
	}
	if m.Cents != math.MaxInt64 {
		t.Fatalf("got %d cents", m.Cents)
	}
}

func TestMoneyFromDecimalBounds(t *testing.T) {
	if _, err := MoneyFromDecimal(decimal.RequireFromString("1e30")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	got, err := MoneyFromDecimal(decimal.RequireFromString("12.345"))
	if err != nil || got.Cents != 1235 {
		t.Fatalf("got %d err=%v", got.Cents, err)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoney(10, 0)
	b := NewMoney(25, 50)
	if got := a.Sub(b).Floor(); !got.IsZero() {
		t.Fatalf("floor of negative should be zero, got %v", got)
	}
	if got := Sum(a, b, NewMoney(0, 50)); got.Cents != 3600 {
		t.Fatalf("sum = %d", got.Cents)
	}
	if got := a.Ratio(Zero); got != 0 {
		t.Fatalf("ratio by zero = %v", got)
	}
	if got := b.String(); got != "25.50" {
		t.Fatalf("string = %q", got)
	}
}
