package unitexpr

import (
	"errors"
	"fmt"
	"math"

	ccunits "github.com/ClusterCockpit/cc-unit-engine/pkg/ccUnits"
)

var (
	ErrInconsistentUnits = errors.New("inconsistent units")
	ErrInvalidOperand    = errors.New("invalid operand")
)

// DefaultPrecision is the number of decimals used by String and Format
const DefaultPrecision = 6

// Quantity is a number expressed in a unit. A nil Unit means unitless.
type Quantity struct {
	Value float64
	Unit  *ccunits.Unit
}

// NewQuantity returns value expressed in the catalog unit name
func NewQuantity(c *ccunits.Catalog, value float64, name string) (Quantity, error) {
	u, err := c.Get(name)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: value, Unit: u}, nil
}

// Scalar returns the unitless quantity d
func Scalar(d float64) Quantity {
	return Quantity{Value: d}
}

func (q Quantity) IsUnitless() bool {
	return q.Unit.IsEmpty()
}

func (q Quantity) String() string {
	return q.FormatPrecision(ccunits.Text, DefaultPrecision)
}

func (q Quantity) Format(kind ccunits.OutputKind) string {
	return q.FormatPrecision(kind, DefaultPrecision)
}

// FormatPrecision renders the value rounded to decimals places followed by
// the unit in the given output kind
func (q Quantity) FormatPrecision(kind ccunits.OutputKind, decimals int) string {
	value := ccunits.FormatterFor(kind).FormatReal(q.Value, decimals)
	if q.IsUnitless() {
		return value
	}
	switch kind {
	case ccunits.Xml:
		return value + q.Unit.Format(kind)
	case ccunits.Html:
		return value + "&#8202;" + q.Unit.Format(kind)
	default:
		return value + " " + q.Unit.Format(kind)
	}
}

func inconsistent(op string, a, b *ccunits.Unit) error {
	return fmt.Errorf("%w: '%s' %s '%s'", ErrInconsistentUnits, a.Text(), op, b.Text())
}

// Add returns a + b in the unit of a
func Add(a, b Quantity) (Quantity, error) {
	if !ccunits.IsConsistent(a.Unit, b.Unit) {
		return Quantity{}, inconsistent("+", a.Unit, b.Unit)
	}
	return Quantity{Value: a.Value + b.Value*b.Unit.ConvertTo(a.Unit), Unit: a.Unit}, nil
}

// Sub returns a - b in the unit of a
func Sub(a, b Quantity) (Quantity, error) {
	if !ccunits.IsConsistent(a.Unit, b.Unit) {
		return Quantity{}, inconsistent("-", a.Unit, b.Unit)
	}
	return Quantity{Value: a.Value - b.Value*b.Unit.ConvertTo(a.Unit), Unit: a.Unit}, nil
}

// Mul returns a · b. Scaling by a unitless number keeps the unit as it is,
// name included.
func Mul(a, b Quantity) Quantity {
	switch {
	case b.IsUnitless():
		return Quantity{Value: a.Value * b.Value, Unit: a.Unit}
	case a.IsUnitless():
		return Quantity{Value: a.Value * b.Value, Unit: b.Unit}
	}
	return Quantity{
		Value: a.Value * b.Value * ccunits.GetProductOrDivideFactor(a.Unit, b.Unit, false),
		Unit:  a.Unit.Mul(b.Unit),
	}
}

// Div returns a / b. Division by zero follows floating point rules.
func Div(a, b Quantity) Quantity {
	if b.IsUnitless() {
		return Quantity{Value: a.Value / b.Value, Unit: a.Unit}
	}
	return Quantity{
		Value: a.Value / b.Value * ccunits.GetProductOrDivideFactor(a.Unit, b.Unit, true),
		Unit:  a.Unit.Div(b.Unit),
	}
}

// Pow raises a to a unitless exponent
func Pow(a, b Quantity) (Quantity, error) {
	if !b.IsUnitless() {
		return Quantity{}, fmt.Errorf("%w: exponent '%s' has a unit", ErrInvalidOperand, b)
	}
	return Quantity{Value: math.Pow(a.Value, b.Value), Unit: a.Unit.Pow(b.Value)}, nil
}

func Neg(a Quantity) Quantity {
	return Quantity{Value: -a.Value, Unit: a.Unit}
}

// Compare returns -1, 0 or 1 after converting b into the unit of a
func Compare(a, b Quantity) (int, error) {
	if !ccunits.IsConsistent(a.Unit, b.Unit) {
		return 0, inconsistent("<>", a.Unit, b.Unit)
	}
	bv := b.Value * b.Unit.ConvertTo(a.Unit)
	switch {
	case a.Value < bv:
		return -1, nil
	case a.Value > bv:
		return 1, nil
	default:
		return 0, nil
	}
}

// Convert expresses q in target
func Convert(q Quantity, target *ccunits.Unit) (Quantity, error) {
	if !ccunits.IsConsistent(q.Unit, target) {
		return Quantity{}, fmt.Errorf("%w: cannot convert '%s' to '%s'", ErrInconsistentUnits, q.Unit.Text(), target.Text())
	}
	return Quantity{Value: q.Value * q.Unit.ConvertTo(target), Unit: target}, nil
}

// Civilize re-expresses forces, line loads, pressures and moments that are
// still in base units in the force family unit of c. Anything else is
// returned unchanged.
func Civilize(c *ccunits.Catalog, q Quantity) Quantity {
	if !q.Unit.IsForce() {
		return q
	}
	target := c.ForceUnit(q.Unit)
	if target == nil {
		return q
	}
	converted, err := Convert(q, target)
	if err != nil {
		return q
	}
	return converted
}
