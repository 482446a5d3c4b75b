package unitexpr

import (
	"errors"
	"testing"

	ccunits "github.com/ClusterCockpit/cc-unit-engine/pkg/ccUnits"
)

func q(value float64, unit string) Quantity {
	return Quantity{Value: value, Unit: ccunits.MustGet(unit)}
}

func TestAddSub(t *testing.T) {
	sum, err := Add(q(2, "ft"), q(1, "m"))
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(sum.Value, 2+1/0.3048) || sum.Unit.Text() != "ft" {
		t.Errorf("2 ft + 1 m == %s", sum)
	}
	diff, err := Sub(q(1, "km"), q(500, "m"))
	if err != nil || !almostEqual(diff.Value, 0.5) || diff.Unit.Text() != "km" {
		t.Errorf("1 km - 500 m == %s, %v", diff, err)
	}
	if _, err := Add(q(1, "m"), q(1, "s")); !errors.Is(err, ErrInconsistentUnits) {
		t.Errorf("1 m + 1 s error == %v", err)
	}
	if _, err := Sub(Scalar(1), q(1, "s")); !errors.Is(err, ErrInconsistentUnits) {
		t.Errorf("1 - 1 s error == %v", err)
	}
}

func TestMulDiv(t *testing.T) {
	area := Mul(q(2, "ft"), q(3, "m"))
	if !almostEqual(area.Value, 6/0.3048) || area.Unit.Text() != "ft^2" {
		t.Errorf("2 ft · 3 m == %s", area)
	}
	ratio := Div(q(2, "ft"), q(1, "m"))
	if !ratio.IsUnitless() || !almostEqual(ratio.Value, 0.6096) {
		t.Errorf("2 ft / 1 m == %s", ratio)
	}
	speed := Div(q(1609.344, "m"), q(1, "h"))
	if speed.Unit.Text() != "m/h" || speed.Value != 1609.344 {
		t.Errorf("1609.344 m / 1 h == %s", speed)
	}
}

func TestPow(t *testing.T) {
	sq, err := Pow(q(3, "m"), Scalar(2))
	if err != nil || sq.Value != 9 || sq.Unit.Text() != "m^2" {
		t.Errorf("(3 m)^2 == %s, %v", sq, err)
	}
	if _, err := Pow(q(3, "m"), q(2, "m")); !errors.Is(err, ErrInvalidOperand) {
		t.Errorf("(3 m)^(2 m) error == %v", err)
	}
}

func TestConvertCivilize(t *testing.T) {
	c, err := Convert(q(1, "mi"), ccunits.MustGet("km"))
	if err != nil || !almostEqual(c.Value, 1.609344) {
		t.Errorf("1 mi in km == %s, %v", c, err)
	}
	if _, err := Convert(q(1, "mi"), ccunits.MustGet("s")); !errors.Is(err, ErrInconsistentUnits) {
		t.Errorf("convert mi to s error == %v", err)
	}

	catalog := ccunits.Default()
	moment := Mul(q(3, "N"), q(2, "m"))
	civil := Civilize(catalog, moment)
	if civil.Unit.Text() != "kN·m" || !almostEqual(civil.Value, 0.006) {
		t.Errorf("civilized 6 N·m == %s, want 0.006 kN·m", civil)
	}
	length := q(3, "m")
	if got := Civilize(catalog, length); got != length {
		t.Errorf("civilized 3 m == %s", got)
	}
}

func TestCompare(t *testing.T) {
	if c, err := Compare(q(1, "m"), q(3, "ft")); err != nil || c != 1 {
		t.Errorf("Compare(1 m, 3 ft) == %d, %v", c, err)
	}
	if c, err := Compare(q(1, "ft"), q(12, "in")); err != nil || c != 0 {
		t.Errorf("Compare(1 ft, 12 in) == %d, %v", c, err)
	}
	if _, err := Compare(q(1, "m"), q(1, "kg")); !errors.Is(err, ErrInconsistentUnits) {
		t.Errorf("Compare(1 m, 1 kg) error == %v", err)
	}
}

func TestQuantityFormat(t *testing.T) {
	testCases := []struct {
		q    Quantity
		kind ccunits.OutputKind
		want string
	}{
		{q(2.5, "kN"), ccunits.Text, "2.5 kN"},
		{Scalar(1.0 / 3.0), ccunits.Text, "0.333333"},
		{q(4, "gal_UK"), ccunits.Html, "4&#8202;<i>gal</i><sub>UK</sub>"},
		{q(-1, "m"), ccunits.Html, "&minus;1&#8202;<i>m</i>"},
		{q(1, "m"), ccunits.Xml, "<m:r><m:t>1</m:t></m:r><m:r><m:t>m</m:t></m:r>"},
	}
	for _, c := range testCases {
		if got := c.q.Format(c.kind); got != c.want {
			t.Errorf("Quantity.Format(%v) == %q, want %q", c.kind, got, c.want)
		}
	}
	if got := q(1609.344, "m").String(); got != "1609.344 m" {
		t.Errorf("Quantity.String() == %q", got)
	}
	if got := q(1.0/3.0, "m").FormatPrecision(ccunits.Text, 2); got != "0.33 m" {
		t.Errorf("Quantity.FormatPrecision(2) == %q", got)
	}
}
