package unitwriter

import "html"

// HtmlWriter renders unit symbols in italics with regional suffixes as
// subscripts and exponents as superscripts
type HtmlWriter struct{}

func NewHtmlWriter() *HtmlWriter {
	return &HtmlWriter{}
}

func (w *HtmlWriter) FormatUnits(name string) string {
	base, sub := splitSubscript(name)
	s := "<i>" + html.EscapeString(base) + "</i>"
	if sub != "" {
		s += "<sub>" + html.EscapeString(sub) + "</sub>"
	}
	return s
}

func (w *HtmlWriter) AddBrackets(s string) string {
	return "(" + s + ")"
}

func (w *HtmlWriter) FormatReal(d float64, decimals int) string {
	s := formatReal(d, decimals)
	if len(s) > 0 && s[0] == '-' {
		return "&minus;" + s[1:]
	}
	return s
}

func (w *HtmlWriter) FormatPower(base, exponent string) string {
	return base + "<sup>" + exponent + "</sup>"
}

func (w *HtmlWriter) FormatOperator(op rune) string {
	return string(op)
}

// FormatUnitsText re-renders plain text unit expressions as HTML
func (w *HtmlWriter) FormatUnitsText(text string) string {
	return reformat(w, text)
}
