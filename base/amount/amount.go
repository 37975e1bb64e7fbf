// Package amount converts user-typed decimal strings into integer base units.
// Every token amount entered anywhere in the studio goes through ToBaseUnits so
// all flows share one exact, float-free conversion.
package amount

import (
	"math"
	"math/big"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// MaxDecimals is the largest decimal precision an ASA may declare.
const MaxDecimals = 19

var (
	ErrEmptyAmount             = errors.New("amount is empty")
	ErrInvalidFormat           = errors.New("amount format is invalid")
	ErrTooManyFractionalDigits = errors.New("amount has more fractional digits than the asset allows")
	ErrDecimalsOutOfRange      = errors.New("decimals out of range")
	ErrAmountOverflow          = errors.New("amount exceeds the maximum representable value")
)

// amountPattern accepts digits, optionally followed by a point and more digits.
// No sign, no exponent, no separators.
var amountPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// ToBaseUnits converts value into value * 10^decimals as an exact integer.
// The fractional part may not be longer than decimals; it is right-padded with
// zeros, concatenated onto the whole part, and parsed as a big.Int.
func ToBaseUnits(value string, decimals uint32) (*big.Int, error) {
	if decimals > MaxDecimals {
		return nil, ErrDecimalsOutOfRange
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, ErrEmptyAmount
	}
	if !amountPattern.MatchString(value) {
		return nil, ErrInvalidFormat
	}

	whole := value
	frac := ""
	if i := strings.IndexByte(value, '.'); i >= 0 {
		whole, frac = value[:i], value[i+1:]
	}
	if uint32(len(frac)) > decimals {
		return nil, ErrTooManyFractionalDigits
	}

	digits := whole + frac + strings.Repeat("0", int(decimals)-len(frac))
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}

	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, ErrInvalidFormat
	}
	return n, nil
}

var maxUint64 = new(big.Int).SetUint64(math.MaxUint64)

// ToBaseUnitsUint64 is ToBaseUnits narrowed to what the chain accepts.
func ToBaseUnitsUint64(value string, decimals uint32) (uint64, error) {
	n, err := ToBaseUnits(value, decimals)
	if err != nil {
		return 0, err
	}
	if n.Cmp(maxUint64) > 0 {
		return 0, ErrAmountOverflow
	}
	return n.Uint64(), nil
}

// FromBaseUnits renders v base units as a decimal string for display.
func FromBaseUnits(v uint64, decimals uint32) string {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(v), -int32(decimals))
	return d.String()
}
