package ccunits

import (
	"strings"
	"testing"
)

func TestNameRules(t *testing.T) {
	testCases := []struct {
		dim      Dimension
		factor   float64
		wantName string
		wantCoef float64
	}{
		{Mass, 1, "g", 1},
		{Mass, 1000, "kg", 1},
		{Mass, 5000, "kg", 5},
		{Mass, 1e6, "t", 1},
		{Mass, 2.5e6, "t", 2.5},
		{Mass, 1e9, "kt", 1},
		{Mass, 3e12, "t", 3e6},
		{Mass, 1e12, "Mt", 1},
		{Mass, 1e8, "t", 100},
		{Mass, 0.001, "mg", 1},
		{Mass, 1e-6, "μg", 1},
		{Mass, 100, "hg", 1},
		{Mass, 453.59237, "lb", 1},
		{Mass, 907.18474, "lb", 2},
		{Mass, 226.796185, "lb", 0.5},
		{Mass, 907184.74, "ton_US", 1},
		{Mass, 1016046.9088, "ton_UK", 1},
		{Mass, 453592.37, "kip", 1},
		{Mass, 6350.29318, "st", 1},
		{Mass, 45359.237, "cwt_US", 1},
		{Mass, 50802.34544, "cwt_UK", 1},
		{Mass, 28.349523125, "oz", 1},
		{Mass, 1.7718451953125, "dr", 1},
		{Mass, 0.06479891, "gr", 1},
		{Mass, 14593.90294, "slug", 1},
		{Mass, 29187.80588, "slug", 2},
		{Length, 1, "m", 1},
		{Length, 1000, "km", 1},
		{Length, 0.001, "mm", 1},
		{Length, 2.54e-5, "th", 1},
		{Length, 0.0254, "in", 1},
		{Length, 0.3048, "ft", 1},
		{Length, 0.6096, "ft", 2},
		{Length, 0.9144, "yd", 1},
		{Length, 20.1168, "ch", 1},
		{Length, 201.168, "fur", 1},
		{Length, 1609.344, "mi", 1},
		{Length, 1e4, "m", 1e4},
		{Time, 60, "min", 1},
		{Time, 3600, "h", 1},
		{Time, 0.001, "ms", 1},
		{Time, 7200, "s", 7200},
		{Temperature, 1, "°C", 1},
		{Temperature, 5.0 / 9.0, "°F", 1},
		{Current, 1e-3, "mA", 1},
		{Substance, 1e3, "kmol", 1},
		{Luminosity, 1, "cd", 1},
		// just off a named factor, outside the 1e-12 tolerance
		{Mass, 453.59237 * (1 + 1e-9), "g", 453.59237 * (1 + 1e-9)},
		{Mass, 907184.74 * (1 + 1e-9), "kg", 907.18474 * (1 + 1e-9)},
		{Mass, 14593.90294 * (1 + 1e-9), "kg", 14.59390294 * (1 + 1e-9)},
		{Length, 0.3048 * (1 + 1e-9), "m", 0.3048 * (1 + 1e-9)},
		{Length, 1609.344 * (1 + 1e-9), "m", 1609.344 * (1 + 1e-9)},
		{Length, 1000 * (1 + 1e-9), "m", 1000 * (1 + 1e-9)},
	}
	for _, c := range testCases {
		name, coef := inferName(c.dim, c.factor)
		if name != c.wantName || !almostEqual(coef, c.wantCoef) {
			t.Errorf("func inferName(%v, %g) == %q, %g, want %q, %g",
				c.dim, c.factor, name, coef, c.wantName, c.wantCoef)
		}
	}
}

func TestExactRule(t *testing.T) {
	rule := exactRule(60, "min")
	if _, _, ok := rule(60.000001); ok {
		t.Error("exact rule must not match approximately")
	}
	if name, coef, ok := rule(60); !ok || name != "min" || coef != 1 {
		t.Errorf("exact rule(60) == %q, %g, %v", name, coef, ok)
	}
}

func TestThresholdRule(t *testing.T) {
	rule := thresholdRule(1e3, "kg")
	if _, _, ok := rule(999); ok {
		t.Error("threshold rule matched below its limit")
	}
	if name, coef, ok := rule(2000); !ok || name != "kg" || coef != 2 {
		t.Errorf("threshold rule(2000) == %q, %g, %v", name, coef, ok)
	}
}

func TestTextComputed(t *testing.T) {
	g := MustGet("g")
	m := MustGet("m")
	s := MustGet("s")
	kN := MustGet("kN")
	testCases := []struct {
		name string
		u    *Unit
		want string
	}{
		{"lb", g.MulScalar(453.59237), "lb"},
		{"ton_US", g.MulScalar(907184.74), "ton_US"},
		{"ft", m.MulScalar(0.3048), "ft"},
		{"2 ft", m.MulScalar(0.6096), "(2·ft)"},
		{"1/s", s.Pow(-1), "s^(-1)"},
		{"m/s", m.Div(s), "m/s"},
		{"m/h", m.Div(MustGet("h")), "m/h"},
		{"m^2", m.Mul(m), "m^2"},
		{"sqrt(m)", m.Pow(0.5), "m^0.5"},
		{"kN/m", kN.Div(m), "t/s^2"},
		{"N·m", MustGet("N").Mul(m), "kg·m^2/s^2"},
		{"J/K", MustGet("J").Div(MustGet("K")), "kg·m^2/s^2/Δ°C"},
		{"A·h", MustGet("A").Mul(MustGet("h")).MulScalar(1), "h·A"},
		{"mi/h", MustGet("mi").Div(MustGet("h")), "mi/h"},
		{"lx", MustGet("cd").Div(m.Pow(2)), "m^(-2)·cd"},
	}
	for _, c := range testCases {
		if got := c.u.Text(); got != c.want {
			t.Errorf("%s Text() == %q, want %q", c.name, got, c.want)
		}
	}
}

func TestTextNamed(t *testing.T) {
	for _, name := range []string{"kN", "m", "°C", "gal_US", "kmh", "L"} {
		u := MustGet(name)
		if u.Text() != name {
			t.Errorf("%q Text() == %q", name, u.Text())
		}
		if u.String() != name {
			t.Errorf("%q String() == %q", name, u.String())
		}
	}
}

func TestTemperatureDelta(t *testing.T) {
	c := MustGet("°C")
	if c.Text() != "°C" {
		t.Errorf("°C Text() == %q", c.Text())
	}
	computed := NewUnit("", 0, 0, 0, 0, 1)
	if computed.Text() != "°C" {
		t.Errorf("plain temperature Text() == %q, want %q", computed.Text(), "°C")
	}
	perMetre := c.Div(MustGet("m"))
	if got := perMetre.Text(); got != "m^(-1)·Δ°C" {
		t.Errorf("°C/m Text() == %q, want %q", got, "m^(-1)·Δ°C")
	}
	if got := MustGet("°F").Div(MustGet("s")).Text(); !strings.Contains(got, "Δ°F") {
		t.Errorf("°F/s Text() == %q, want delta form", got)
	}
}

func TestHtml(t *testing.T) {
	testCases := []struct {
		name string
		u    *Unit
		want string
	}{
		{"named", MustGet("kN"), "<i>kN</i>"},
		{"regional", MustGet("gal_UK"), "<i>gal</i><sub>UK</sub>"},
		{"force family", MustGet("kN").Mul(MustGet("m")).Div(MustGet("m")).Mul(MustGet("m")), "<i>t</i>·<i>m</i><sup>2</sup>/<i>s</i><sup>2</sup>"},
		{"negative first", MustGet("s").Pow(-1), "<i>s</i><sup>&minus;1</sup>"},
		{"delta", MustGet("°C").Div(MustGet("m")), "<i>m</i><sup>&minus;1</sup>·<i>Δ°C</i>"},
	}
	for _, c := range testCases {
		if got := c.u.Html(); got != c.want {
			t.Errorf("%s Html() == %q, want %q", c.name, got, c.want)
		}
	}
	if got := GetForceUnit(MustGet("kN").Mul(MustGet("m"))).Html(); got != "<i>kN</i>·<i>m</i>" {
		t.Errorf("kN·m Html() == %q", got)
	}
}

func TestXml(t *testing.T) {
	u := MustGet("m").Div(MustGet("s"))
	want := "<m:r><m:t>m</m:t></m:r><m:r><m:t>/</m:t></m:r><m:r><m:t>s</m:t></m:r>"
	if got := u.Xml(); got != want {
		t.Errorf("m/s Xml() == %q, want %q", got, want)
	}
	if got := MustGet("m").Xml(); got != "<m:r><m:t>m</m:t></m:r>" {
		t.Errorf("m Xml() == %q", got)
	}
}

// upperFormatter only has the four primitives
type upperFormatter struct{}

func (upperFormatter) FormatUnits(name string) string { return strings.ToUpper(name) }

func (upperFormatter) AddBrackets(s string) string { return "[" + s + "]" }

func (upperFormatter) FormatReal(d float64, _ int) string {
	return FormatterFor(Text).FormatReal(d, 3)
}

func (upperFormatter) FormatPower(base, exp string) string { return base + "**" + exp }

func TestRenderCustomFormatter(t *testing.T) {
	f := upperFormatter{}
	m := MustGet("m")
	if got := MustGet("kN").Render(f, Text); got != "KN" {
		t.Errorf("kN Render() == %q, want %q", got, "KN")
	}
	if got := m.Pow(2).Div(MustGet("s")).Render(f, Text); got != "M**2/S" {
		t.Errorf("m^2/s Render() == %q, want %q", got, "M**2/S")
	}
	if got := m.MulScalar(0.6096).Render(f, Text); got != "[2·FT]" {
		t.Errorf("2ft Render() == %q, want %q", got, "[2·FT]")
	}
	if got := MustGet("s").Pow(-2).Render(f, Html); got != "S**-2" {
		t.Errorf("s^-2 Render(html) == %q, want %q", got, "S**-2")
	}
}

func TestOutputKind(t *testing.T) {
	for _, k := range []OutputKind{Text, Html, Xml} {
		got, err := ParseOutputKind(k.String())
		if err != nil || got != k {
			t.Errorf("func ParseOutputKind(%q) == %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseOutputKind("latex"); err == nil {
		t.Error("ParseOutputKind(latex) must fail")
	}
}
