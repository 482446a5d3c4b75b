package unitwriter

import "testing"

func TestFormatReal(t *testing.T) {
	testCases := []struct {
		in       float64
		decimals int
		want     string
	}{
		{2, 3, "2"},
		{0.5, 3, "0.5"},
		{1.0 / 3.0, 3, "0.333"},
		{-1, 1, "-1"},
		{-2.5, 3, "-2.5"},
		{0, 6, "0"},
		{1609.344, 6, "1609.344"},
		{1.6605390666050505e-27, 6, "1.66054e-27"},
	}
	for _, c := range testCases {
		if got := formatReal(c.in, c.decimals); got != c.want {
			t.Errorf("func formatReal(%g, %d) == %q, want %q", c.in, c.decimals, got, c.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	testCases := []struct {
		in   string
		want []token
	}{
		{"kN·m^2", []token{{tokIdent, "kN"}, {tokOperator, "·"}, {tokIdent, "m"}, {tokCaret, "^"}, {tokNumber, "2"}}},
		{"s^(-1)", []token{{tokIdent, "s"}, {tokCaret, "^"}, {tokLParen, "("}, {tokNumber, "-1"}, {tokRParen, ")"}}},
		{"(2.5·ft)", []token{{tokLParen, "("}, {tokNumber, "2.5"}, {tokOperator, "·"}, {tokIdent, "ft"}, {tokRParen, ")"}}},
		{"Δ°C/m", []token{{tokIdent, "Δ°C"}, {tokOperator, "/"}, {tokIdent, "m"}}},
		{"ton_US", []token{{tokIdent, "ton_US"}}},
	}
	for _, c := range testCases {
		got := tokenize(c.in)
		if len(got) != len(c.want) {
			t.Errorf("func tokenize(%q) == %v, want %v", c.in, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("func tokenize(%q)[%d] == %v, want %v", c.in, i, got[i], c.want[i])
			}
		}
	}
}

func TestTextWriter(t *testing.T) {
	w := NewTextWriter()
	for _, s := range []string{"kN·m^2", "s^(-1)", "(2·ft)/s", "ton_US"} {
		if got := w.FormatUnitsText(s); got != s {
			t.Errorf("TextWriter.FormatUnitsText(%q) == %q", s, got)
		}
	}
	if got := w.FormatPower(w.FormatUnits("m"), w.AddBrackets(w.FormatReal(-2, 3))); got != "m^(-2)" {
		t.Errorf("TextWriter power == %q, want %q", got, "m^(-2)")
	}
}

func TestHtmlWriter(t *testing.T) {
	w := NewHtmlWriter()
	testCases := []struct {
		in   string
		want string
	}{
		{"kN", "<i>kN</i>"},
		{"ton_US", "<i>ton</i><sub>US</sub>"},
		{"kN/m^4", "<i>kN</i>/<i>m</i><sup>4</sup>"},
		{"kN·m", "<i>kN</i>·<i>m</i>"},
		{"s^(-1)", "<i>s</i><sup>&minus;1</sup>"},
		{"(2·ft)·kN", "(2·<i>ft</i>)·<i>kN</i>"},
		{"m^0.5", "<i>m</i><sup>0.5</sup>"},
		{"Δ°C/m", "<i>Δ°C</i>/<i>m</i>"},
		{"N*m", "<i>N</i>·<i>m</i>"},
	}
	for _, c := range testCases {
		if got := w.FormatUnitsText(c.in); got != c.want {
			t.Errorf("HtmlWriter.FormatUnitsText(%q) == %q, want %q", c.in, got, c.want)
		}
	}
}

func TestXmlWriter(t *testing.T) {
	w := NewXmlWriter()
	testCases := []struct {
		in   string
		want string
	}{
		{"m", "<m:r><m:t>m</m:t></m:r>"},
		{"kN·m", "<m:r><m:t>kN</m:t></m:r><m:r><m:t>·</m:t></m:r><m:r><m:t>m</m:t></m:r>"},
		{"m^2", "<m:sSup><m:e><m:r><m:t>m</m:t></m:r></m:e><m:sup><m:r><m:t>2</m:t></m:r></m:sup></m:sSup>"},
		{"gal_UK", "<m:sSub><m:e><m:r><m:t>gal</m:t></m:r></m:e><m:sub><m:r><m:t>UK</m:t></m:r></m:sub></m:sSub>"},
		{"(3·ft)", "<m:d><m:e><m:r><m:t>3</m:t></m:r><m:r><m:t>·</m:t></m:r><m:r><m:t>ft</m:t></m:r></m:e></m:d>"},
	}
	for _, c := range testCases {
		if got := w.FormatUnitsText(c.in); got != c.want {
			t.Errorf("XmlWriter.FormatUnitsText(%q) == %q, want %q", c.in, got, c.want)
		}
	}
}

func TestUnbalancedBrackets(t *testing.T) {
	w := NewHtmlWriter()
	if got := w.FormatUnitsText("m)"); got != "<i>m</i><i>)</i>" {
		t.Errorf("HtmlWriter.FormatUnitsText(%q) == %q", "m)", got)
	}
	if got := w.FormatUnitsText("(m"); got != "(<i>m</i>)" {
		t.Errorf("HtmlWriter.FormatUnitsText(%q) == %q", "(m", got)
	}
}
