package unitwriter

import "html"

// XmlWriter renders Office math markup (OMML)
type XmlWriter struct{}

func NewXmlWriter() *XmlWriter {
	return &XmlWriter{}
}

func run(s string) string {
	return "<m:r><m:t>" + html.EscapeString(s) + "</m:t></m:r>"
}

func (w *XmlWriter) FormatUnits(name string) string {
	base, sub := splitSubscript(name)
	if sub == "" {
		return run(base)
	}
	return "<m:sSub><m:e>" + run(base) + "</m:e><m:sub>" + run(sub) + "</m:sub></m:sSub>"
}

func (w *XmlWriter) AddBrackets(s string) string {
	return "<m:d><m:e>" + s + "</m:e></m:d>"
}

func (w *XmlWriter) FormatReal(d float64, decimals int) string {
	return run(formatReal(d, decimals))
}

func (w *XmlWriter) FormatPower(base, exponent string) string {
	return "<m:sSup><m:e>" + base + "</m:e><m:sup>" + exponent + "</m:sup></m:sSup>"
}

func (w *XmlWriter) FormatOperator(op rune) string {
	return run(string(op))
}

// FormatUnitsText re-renders plain text unit expressions as OMML
func (w *XmlWriter) FormatUnitsText(text string) string {
	return reformat(w, text)
}
