package codec

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecimal_Codec(t *testing.T) {
	c := Decimal()
	d, err := c.Decode("1234.50")
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if !d.Equal(decimal.RequireFromString("1234.5")) {
		t.Fatalf("unexpected value: %s", d)
	}
	s, _ := c.Encode(d)
	if s != "1234.5" {
		t.Fatalf("unexpected wire form: %s", s)
	}
}

func TestDecimal_Rejects(t *testing.T) {
	c := Decimal()
	if _, err := c.Decode("  "); !errors.Is(err, ErrNotNumeric) {
		t.Fatalf("expected ErrNotNumeric, got %v", err)
	}
	if _, err := c.Decode("12,5"); err == nil {
		t.Fatalf("expected error")
	}
}
