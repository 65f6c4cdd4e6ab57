package quote

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// normalizedDecimals is the common scale raw amounts are brought to before
// the exchange-rate comparison. It matches native-asset precision.
const normalizedDecimals = 18

// FormatUnits renders a raw base-unit integer as a human-readable decimal
// string scaled by the token's decimals. The conversion is exact: it goes
// through decimal arithmetic, never floats.
func FormatUnits(raw *big.Int, decimals int32) (string, error) {
	if raw == nil {
		return "", fmt.Errorf("nil amount")
	}
	if raw.Sign() < 0 {
		return "", fmt.Errorf("negative amount %s", raw)
	}
	return decimal.NewFromBigInt(raw, -decimals).String(), nil
}

// ParseUnits converts a human-readable decimal string back to a raw
// base-unit integer. It fails when the value has more fractional digits
// than the token's decimals, since fractional base units do not exist.
func ParseUnits(value string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("malformed amount %q: %w", value, err)
	}
	shifted := d.Shift(decimals)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("amount %q has more than %d fractional digits", value, decimals)
	}
	return shifted.BigInt(), nil
}

// normalizeTo18 rescales a raw amount to the common 18-decimal scale:
// multiply when the token has fewer decimals, integer-divide (floor) when
// it has more.
func normalizeTo18(raw *big.Int, decimals int32) *big.Int {
	switch {
	case decimals < normalizedDecimals:
		exp := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(normalizedDecimals-decimals)), nil)
		return new(big.Int).Mul(raw, exp)
	case decimals > normalizedDecimals:
		exp := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals-normalizedDecimals)), nil)
		return new(big.Int).Div(raw, exp)
	default:
		return new(big.Int).Set(raw)
	}
}

// slippagePercent converts basis points to the percentage string the
// upstream interface expects. This is the single bps-to-percent boundary
// in the system.
func slippagePercent(bps int64) string {
	return decimal.New(bps, -2).String()
}
