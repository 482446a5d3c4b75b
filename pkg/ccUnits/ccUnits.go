package ccunits

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/slices"
)

// Absolute tolerance used whenever a computed ratio is compared against a
// whole number or a power of ten
const tolerance = 1e-12

// Unit is a compound measurement unit: one (exponent, factor) pair per base
// dimension, in the order of the Dimension constants. Factors are relative to
// the SI reference of the slot, for mass relative to the gram.
//
// A Unit never changes after it has been built. A nil *Unit is the unitless
// value and is accepted by every function of this package.
type Unit struct {
	powers  []float32
	factors []float64
	name    string
	text    memo[string]
	hash    memo[uint64]
}

func newUnit(n int) *Unit {
	u := &Unit{
		powers:  make([]float32, n),
		factors: make([]float64, n),
	}
	for i := range u.factors {
		u.factors[i] = Dimension(i).defaultFactor()
	}
	return u
}

// NewUnit creates a unit from exponents given in dimension order (mass,
// length, time, current, temperature, substance, luminosity). Missing and
// trailing zero exponents are dropped.
func NewUnit(name string, exponents ...float32) *Unit {
	n := len(exponents)
	if n > int(NumDimensions) {
		n = int(NumDimensions)
	}
	for n > 0 && exponents[n-1] == 0 {
		n--
	}
	u := newUnit(n)
	copy(u.powers, exponents[:n])
	u.name = name
	return u
}

// copy duplicates the vector and name but none of the caches
func (u *Unit) copy() *Unit {
	return &Unit{
		powers:  slices.Clone(u.powers),
		factors: slices.Clone(u.factors),
		name:    u.name,
	}
}

// Clone returns a structural copy including name and hash
func (u *Unit) Clone() *Unit {
	if u == nil {
		return nil
	}
	c := u.copy()
	c.hash.seed(u.Hash())
	return c
}

// rescale multiplies the factor of the first active slot by factor^(1/p).
// Only to be called on values nobody else has seen yet.
func (u *Unit) rescale(factor float64) {
	for i, p := range u.powers {
		if p != 0 {
			u.factors[i] *= math.Pow(factor, 1.0/float64(p))
			return
		}
	}
}

// Scale derives a named unit that is factor times u
func (u *Unit) Scale(name string, factor float64) *Unit {
	if u == nil {
		return nil
	}
	c := u.copy()
	c.name = name
	c.rescale(factor)
	return c
}

// Shift derives the unit 10^n times u and prepends the matching SI prefix
// to the name. Without a prefix for n only the factor changes. Unnamed
// units stay unnamed and are rendered from their dimension vector.
func (u *Unit) Shift(n int) *Unit {
	if u == nil {
		return nil
	}
	c := u.copy()
	if len(u.name) > 0 {
		c.name = Prefix(n) + u.name
	}
	c.rescale(PrefixScale(n))
	return c
}

// WithName returns a copy of u displayed as name
func (u *Unit) WithName(name string) *Unit {
	if u == nil {
		return nil
	}
	c := u.copy()
	c.name = name
	return c
}

// Pow raises u to the power x. Factors are kept.
func (u *Unit) Pow(x float64) *Unit {
	if u == nil {
		return nil
	}
	xf := float32(x)
	c := newUnit(len(u.powers))
	for i := range u.powers {
		c.factors[i] = u.factors[i]
		if p := u.powers[i] * xf; p != 0 {
			c.powers[i] = p
		}
	}
	return c.trim()
}

// trim drops trailing zero exponents, returning nil for an empty vector
func (u *Unit) trim() *Unit {
	n := len(u.powers)
	for n > 0 && u.powers[n-1] == 0 {
		n--
	}
	if n == 0 {
		return nil
	}
	u.powers = u.powers[:n]
	u.factors = u.factors[:n]
	return u
}

// Mul returns the product unit u·o
func (u *Unit) Mul(o *Unit) *Unit {
	return multiplyOrDivide(u, o, 1)
}

// Div returns the quotient unit u/o
func (u *Unit) Div(o *Unit) *Unit {
	return multiplyOrDivide(u, o, -1)
}

// multiplyOrDivide combines the exponents as p1 + k·p2. Each retained slot
// takes its factor from u1 if u1 is active there, from u2 otherwise.
func multiplyOrDivide(u1, u2 *Unit, k float32) *Unit {
	n1 := u1.Len()
	n2 := u2.Len()
	n := max(n1, n2)
	size := n
	for size > 0 {
		i := size - 1
		if u1.exponent(i)+k*u2.exponent(i) != 0 {
			break
		}
		size = i
	}
	if size == 0 {
		return nil
	}
	u := newUnit(size)
	for i := 0; i < size; i++ {
		p1 := u1.exponent(i)
		p2 := k * u2.exponent(i)
		switch {
		case p1 != 0:
			u.factors[i] = u1.factors[i]
		case i < n2:
			u.factors[i] = u2.factors[i]
		case i < n1:
			u.factors[i] = u1.factors[i]
		}
		if p := p1 + p2; p != 0 {
			u.powers[i] = p
		}
	}
	return u
}

// MulScalar returns u rescaled by d. The scale lands on the first active
// dimension; the name of u is not carried over.
func (u *Unit) MulScalar(d float64) *Unit {
	if u == nil {
		return nil
	}
	c := u.copy()
	c.name = ""
	c.rescale(d)
	return c
}

// DivScalar returns u rescaled by 1/d
func (u *Unit) DivScalar(d float64) *Unit {
	return u.MulScalar(1.0 / d)
}

// ScalarDiv returns d/u, that is u^-1 rescaled by d
func ScalarDiv(d float64, u *Unit) *Unit {
	return u.Pow(-1).MulScalar(d)
}

// GetProductOrDivideFactor returns the number a product (or quotient) of
// values in u1 and u2 has to be multiplied with, so that it is expressed in
// u1.Mul(u2) (or u1.Div(u2)). Only dimensions active in both units
// contribute.
func GetProductOrDivideFactor(u1, u2 *Unit, divide bool) float64 {
	n := max(u1.Len(), u2.Len())
	k := 1.0
	if divide {
		k = -1.0
	}
	factor := 1.0
	for i := 0; i < n; i++ {
		p1 := float64(u1.exponent(i))
		p2 := k * float64(u2.exponent(i))
		if p1 != 0 && p2 != 0 {
			factor *= math.Pow(u2.factors[i]/u1.factors[i], p2)
		}
	}
	return factor
}

// Len is the number of dimension slots in use
func (u *Unit) Len() int {
	if u == nil {
		return 0
	}
	return len(u.powers)
}

// IsEmpty reports whether u is unitless
func (u *Unit) IsEmpty() bool {
	return u.Len() == 0
}

func (u *Unit) exponent(i int) float32 {
	if u == nil || i >= len(u.powers) {
		return 0
	}
	return u.powers[i]
}

func (u *Unit) factor(i int) float64 {
	if u == nil || i >= len(u.factors) {
		return Dimension(i).defaultFactor()
	}
	return u.factors[i]
}

// Exponent returns the exponent of dimension d
func (u *Unit) Exponent(d Dimension) float32 {
	return u.exponent(int(d))
}

// Factor returns the scale of dimension d relative to its reference unit
func (u *Unit) Factor(d Dimension) float64 {
	return u.factor(int(d))
}

// Exponents returns a copy of the exponent vector
func (u *Unit) Exponents() []float32 {
	if u == nil {
		return nil
	}
	return slices.Clone(u.powers)
}

// Name returns the explicit display name, empty for computed units
func (u *Unit) Name() string {
	if u == nil {
		return ""
	}
	return u.name
}

// IsTemperature reports whether u is a plain temperature unit
func (u *Unit) IsTemperature() bool {
	if u.Len() != 5 {
		return false
	}
	for i, p := range u.powers {
		if i == int(Temperature) {
			if p != 1 {
				return false
			}
		} else if p != 0 {
			return false
		}
	}
	return true
}

// Equal compares exponents and factors. Names are ignored.
func (u *Unit) Equal(o *Unit) bool {
	n := u.Len()
	if o.Len() != n {
		return false
	}
	for i := 0; i < n; i++ {
		if u.powers[i] != o.powers[i] || u.factors[i] != o.factors[i] {
			return false
		}
	}
	return true
}

// Hash is consistent with Equal
func (u *Unit) Hash() uint64 {
	if u == nil {
		return xxhash.Sum64(nil)
	}
	return u.hash.get(u.computeHash)
}

func (u *Unit) computeHash() uint64 {
	d := xxhash.New()
	var buf [12]byte
	for i, p := range u.powers {
		if p == 0 {
			p = 0 // no negative zero
		}
		binary.LittleEndian.PutUint32(buf[:4], math.Float32bits(p))
		binary.LittleEndian.PutUint64(buf[4:], math.Float64bits(u.factors[i]))
		d.Write(buf[:])
	}
	return d.Sum64()
}
