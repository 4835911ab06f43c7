package codec

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Decimal returns a Codec between the textual form of a JSON number and
// decimal.Decimal. Money amounts travel through it without binary rounding.
func Decimal() Codec[string, decimal.Decimal] { return decimalCodec{} }

type decimalCodec struct{}

func (decimalCodec) Decode(a string) (decimal.Decimal, error) {
	s := strings.TrimSpace(a)
	if s == "" {
		return decimal.Decimal{}, ErrNotNumeric
	}
	return decimal.NewFromString(s)
}

func (decimalCodec) Encode(b decimal.Decimal) (string, error) { return b.String(), nil }
