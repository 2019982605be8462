package stratops

import (
	"math/big"
	"strings"
)

// FormatUnits renders amount as a decimal with the given number of decimals. Whole
// values keep a single fractional zero ("1.0").
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0.0"
	}

	neg := amount.Sign() < 0
	digits := new(big.Int).Abs(amount).String()

	d := int(decimals)
	if len(digits) <= d {
		digits = strings.Repeat("0", d-len(digits)+1) + digits
	}

	whole, frac := digits[:len(digits)-d], strings.TrimRight(digits[len(digits)-d:], "0")
	if frac == "" {
		frac = "0"
	}

	out := whole + "." + frac
	if neg {
		out = "-" + out
	}

	return out
}

// FormatBips renders basis points as a percentage, e.g. 250 as "2.5%".
func FormatBips(bips *big.Int) string {
	s := FormatUnits(bips, 2) //nolint:mnd
	s = strings.TrimSuffix(s, ".0")

	return s + "%"
}
