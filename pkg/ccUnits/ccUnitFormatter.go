package ccunits

import (
	"fmt"
	"strings"

	unitwriter "github.com/ClusterCockpit/cc-unit-engine/pkg/unitWriter"
)

// Formatter is the set of primitives the renderer needs from an output
// backend
type Formatter interface {
	// FormatUnits formats a single unit symbol like "kg" or "ton_US"
	FormatUnits(name string) string
	// AddBrackets encloses an already formatted sub expression
	AddBrackets(s string) string
	// FormatReal formats d rounded to decimals places
	FormatReal(d float64, decimals int) string
	// FormatPower raises an already formatted base to an already formatted
	// exponent
	FormatPower(base, exponent string) string
}

// OperatorFormatter is implemented by backends that need markup around the
// '·' and '/' joining operators
type OperatorFormatter interface {
	FormatOperator(op rune) string
}

// TextReformatter is implemented by backends that can re-render compound
// unit text like "kN·m/s^2" that was built for plain text output
type TextReformatter interface {
	FormatUnitsText(text string) string
}

type OutputKind int

const (
	Text OutputKind = iota
	Html
	Xml
)

func (k OutputKind) String() string {
	switch k {
	case Text:
		return "text"
	case Html:
		return "html"
	case Xml:
		return "xml"
	default:
		return "unknown"
	}
}

func ParseOutputKind(kind string) (OutputKind, error) {
	switch strings.ToLower(kind) {
	case "", "text", "txt":
		return Text, nil
	case "html":
		return Html, nil
	case "xml":
		return Xml, nil
	default:
		return Text, fmt.Errorf("unknown output kind '%s'", kind)
	}
}

// FormatterFor returns the stock backend for kind
func FormatterFor(kind OutputKind) Formatter {
	switch kind {
	case Html:
		return unitwriter.NewHtmlWriter()
	case Xml:
		return unitwriter.NewXmlWriter()
	default:
		return unitwriter.NewTextWriter()
	}
}

func formatOperator(f Formatter, op rune) string {
	if o, ok := f.(OperatorFormatter); ok {
		return o.FormatOperator(op)
	}
	return string(op)
}
