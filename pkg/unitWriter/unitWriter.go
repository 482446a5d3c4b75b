// Package unitwriter contains the output backends for unit text: plain
// text, HTML and Office math XML. Every backend provides the primitives the
// unit renderer works with and can re-render compound unit text that was
// produced for plain text output.
package unitwriter

import (
	"math"
	"strconv"
	"strings"
)

// primitives is what the reformatter needs from a backend
type primitives interface {
	FormatUnits(name string) string
	AddBrackets(s string) string
	FormatReal(d float64, decimals int) string
	FormatPower(base, exponent string) string
	FormatOperator(op rune) string
}

// formatReal rounds d to decimals places and drops trailing zeros
func formatReal(d float64, decimals int) string {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return strconv.FormatFloat(d, 'g', -1, 64)
	}
	a := math.Abs(d)
	if a != 0 && (a >= 1e15 || a < math.Pow(10, -float64(decimals))) {
		return strconv.FormatFloat(d, 'g', decimals, 64)
	}
	s := strconv.FormatFloat(d, 'f', decimals, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// splitSubscript splits "ton_US" into "ton" and "US"
func splitSubscript(name string) (string, string) {
	if i := strings.IndexByte(name, '_'); i > 0 && i < len(name)-1 {
		return name[:i], name[i+1:]
	}
	return name, ""
}
