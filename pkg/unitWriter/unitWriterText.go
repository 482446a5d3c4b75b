package unitwriter

// TextWriter renders plain text like "kN·m^2" or "s^(-1)"
type TextWriter struct{}

func NewTextWriter() *TextWriter {
	return &TextWriter{}
}

func (w *TextWriter) FormatUnits(name string) string {
	return name
}

func (w *TextWriter) AddBrackets(s string) string {
	return "(" + s + ")"
}

func (w *TextWriter) FormatReal(d float64, decimals int) string {
	return formatReal(d, decimals)
}

func (w *TextWriter) FormatPower(base, exponent string) string {
	return base + "^" + exponent
}

func (w *TextWriter) FormatOperator(op rune) string {
	return string(op)
}

// FormatUnitsText returns text unchanged, it is plain text already
func (w *TextWriter) FormatUnitsText(text string) string {
	return text
}
