package ccunits

import (
	"math"
	"strings"
)

// Reference magnitudes of the non-metric unit systems recognized by the
// renderer. Mass in grams, length in metres.
const (
	slugGrams  = 14593.90294
	poundGrams = 453.59237
	thouMetres = 2.54e-5

	// pound fractions finer than a grain are left to the SI prefixes
	maxPoundDivisor = 7000
)

// nameRule recognizes a slot factor as a named unit. It returns the unit
// symbol and the coefficient that is left over.
type nameRule func(factor float64) (name string, coef float64, ok bool)

// Rules are tried in order, the first match wins
var nameRules = [NumDimensions][]nameRule{
	Mass: {
		slugRule,
		poundFractionRule,
		poundMultipleRule,
		tonneRule,
		thresholdRule(1e3, "kg"),
	},
	Length: {
		thouRule,
	},
	Time: {
		exactRule(60, "min"),
		exactRule(3600, "h"),
	},
	Temperature: {
		exactRule(5.0/9.0, "°F"),
	},
}

// isWhole reports whether a is an integer within tolerance. Beyond 1/tolerance
// every float64 would qualify.
func isWhole(a float64) bool {
	return math.Abs(a) < 1/tolerance && math.Abs(a-math.Round(a)) < tolerance
}

func exactRule(factor float64, name string) nameRule {
	return func(f float64) (string, float64, bool) {
		if f != factor {
			return "", 0, false
		}
		return name, 1, true
	}
}

func thresholdRule(limit float64, name string) nameRule {
	return func(f float64) (string, float64, bool) {
		if f < limit {
			return "", 0, false
		}
		return name, f / limit, true
	}
}

// tonneRule names masses from a tonne up, with kt, Mt and Gt for exact
// thousands
func tonneRule(f float64) (string, float64, bool) {
	a := f / 1e6
	if a < 1 {
		return "", 0, false
	}
	if n := prefixPower(a); n > 0 && n%3 == 0 {
		return Prefix(n) + "t", a / PrefixScale(n), true
	}
	return "t", a, true
}

func slugRule(f float64) (string, float64, bool) {
	a := f / slugGrams
	if a < 0.5 || !isWhole(a) {
		return "", 0, false
	}
	return "slug", math.Round(a), true
}

func poundFractionRule(f float64) (string, float64, bool) {
	a := f / poundGrams
	if a >= 1 {
		return "", 0, false
	}
	n := 1 / a
	if n > maxPoundDivisor || !isWhole(n) {
		return "", 0, false
	}
	switch n = math.Round(n); n {
	case 7000:
		return "gr", 1, true
	case 256:
		return "dr", 1, true
	case 16:
		return "oz", 1, true
	default:
		return "lb", 1 / n, true
	}
}

func poundMultipleRule(f float64) (string, float64, bool) {
	a := f / poundGrams
	if a < 1 || !isWhole(a) {
		return "", 0, false
	}
	switch a = math.Round(a); a {
	case 14:
		return "st", 1, true
	case 28:
		return "qr", 1, true
	case 100:
		return "cwt_US", 1, true
	case 112:
		return "cwt_UK", 1, true
	case 1000:
		return "kip", 1, true
	case 2000:
		return "ton_US", 1, true
	case 2240:
		return "ton_UK", 1, true
	default:
		return "lb", a, true
	}
}

func thouRule(f float64) (string, float64, bool) {
	a := f / thouMetres
	if a < 0.5 || !isWhole(a) {
		return "", 0, false
	}
	switch a = math.Round(a); a {
	case 1:
		return "th", 1, true
	case 1000:
		return "in", 1, true
	case 36000:
		return "yd", 1, true
	case 792000:
		return "ch", 1, true
	case 7920000:
		return "fur", 1, true
	case 63360000:
		return "mi", 1, true
	default:
		return "ft", a / 12000, true
	}
}

// inferName finds the symbol for one slot of dimension d scaled by factor.
// Named units come first, then SI prefixes of the base symbol. The returned
// coefficient is 1 if the symbol alone describes the factor.
func inferName(d Dimension, factor float64) (string, float64) {
	if math.Abs(factor-1) <= tolerance {
		return d.Symbol(), 1
	}
	for _, rule := range nameRules[d] {
		if name, coef, ok := rule(factor); ok {
			return name, coef
		}
	}
	n := prefixPower(factor)
	return Prefix(n) + d.Symbol(), factor / PrefixScale(n)
}

func deltaTemperature(name string) string {
	if strings.HasPrefix(name, "°") {
		return "Δ" + name
	}
	return name
}

// render builds the compound text from the dimension vector
func (u *Unit) render(f Formatter, kind OutputKind) string {
	var sb strings.Builder
	first := true
	for i, p := range u.powers {
		if p == 0 {
			continue
		}
		d := Dimension(i)
		name, coef := inferName(d, u.factors[i])
		if d == Temperature && u.hasOtherSlots(i) {
			name = deltaTemperature(name)
		}
		text := f.FormatUnits(name)
		if math.Abs(coef-1) > tolerance {
			text = f.AddBrackets(f.FormatReal(coef, 6) + formatOperator(f, '·') + text)
		}
		if first {
			first = false
		} else {
			p = float32(math.Abs(float64(p)))
			if u.powers[i] > 0 {
				sb.WriteString(formatOperator(f, '·'))
			} else {
				sb.WriteString(formatOperator(f, '/'))
			}
		}
		if p != 1 {
			exp := f.FormatReal(float64(p), 3)
			if p < 0 && kind == Text {
				exp = f.AddBrackets(exp)
			}
			text = f.FormatPower(text, exp)
		}
		sb.WriteString(text)
	}
	return sb.String()
}

func (u *Unit) hasOtherSlots(slot int) bool {
	for i, p := range u.powers {
		if i != slot && p != 0 {
			return true
		}
	}
	return false
}

// Render formats u through f. Named units go through the reformatting entry
// point of f, if it has one.
func (u *Unit) Render(f Formatter, kind OutputKind) string {
	if u == nil {
		return ""
	}
	if u.name != "" {
		if r, ok := f.(TextReformatter); ok {
			return r.FormatUnitsText(u.name)
		}
		return f.FormatUnits(u.name)
	}
	return u.render(f, kind)
}

// Format renders u with the stock backend for kind
func (u *Unit) Format(kind OutputKind) string {
	if kind == Text {
		return u.Text()
	}
	return u.Render(FormatterFor(kind), kind)
}

// Text is the plain text form, computed once
func (u *Unit) Text() string {
	if u == nil {
		return ""
	}
	return u.text.get(func() string {
		return u.Render(FormatterFor(Text), Text)
	})
}

func (u *Unit) Html() string {
	return u.Format(Html)
}

func (u *Unit) Xml() string {
	return u.Format(Xml)
}

func (u *Unit) String() string {
	return u.Text()
}
