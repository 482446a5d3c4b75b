package ccunits

import "math"

// Decimal exponents that have an SI prefix
var prefixSymbols = map[int]string{
	1:   "da",
	2:   "h",
	3:   "k",
	6:   "M",
	9:   "G",
	12:  "T",
	15:  "P",
	18:  "E",
	21:  "Z",
	24:  "Y",
	-1:  "d",
	-2:  "c",
	-3:  "m",
	-6:  "μ",
	-9:  "n",
	-12: "p",
	-15: "f",
	-18: "a",
	-21: "z",
	-24: "y",
}

var prefixScales = map[int]float64{
	0:   1.0,
	1:   10.0,
	2:   100.0,
	3:   1e3,
	6:   1e6,
	9:   1e9,
	12:  1e12,
	15:  1e15,
	18:  1e18,
	21:  1e21,
	24:  1e24,
	-1:  0.1,
	-2:  0.01,
	-3:  0.001,
	-6:  1e-6,
	-9:  1e-9,
	-12: 1e-12,
	-15: 1e-15,
	-18: 1e-18,
	-21: 1e-21,
	-24: 1e-24,
}

// Prefix returns the SI prefix for 10^n or an empty string if there is none
func Prefix(n int) string {
	return prefixSymbols[n]
}

// PrefixScale returns 10^n. Tabulated values are exact literals.
func PrefixScale(n int) float64 {
	if s, ok := prefixScales[n]; ok {
		return s
	}
	return math.Pow(10, float64(n))
}

// NewPrefix returns the decimal exponent for an SI prefix symbol
func NewPrefix(prefix string) (int, bool) {
	if prefix == "" {
		return 0, true
	}
	for n, s := range prefixSymbols {
		if s == prefix {
			return n, true
		}
	}
	if prefix == "u" {
		return -6, true
	}
	return 0, false
}

// prefixPower returns n if factor is 10^n within the inference tolerance and
// 10^n has a prefix symbol, zero otherwise
func prefixPower(factor float64) int {
	var d float64
	switch factor {
	case 1.0:
		d = 0
	case 10.0:
		d = 1
	case 1e2:
		d = 2
	case 1e3:
		d = 3
	case 0.1:
		d = -1
	case 1e-2:
		d = -2
	case 1e-3:
		d = -3
	default:
		if factor <= 0 {
			return 0
		}
		d = math.Log10(factor)
	}
	n := int(math.Round(d))
	if math.Abs(float64(n)-d) >= tolerance {
		return 0
	}
	if _, ok := prefixSymbols[n]; !ok {
		return 0
	}
	return n
}
