package ccunits

import (
	"math"
	"strings"
)

// IsConsistent reports whether values in u1 and u2 may be added or compared:
// both unitless or the same exponent in every dimension. Factors may differ.
func IsConsistent(u1, u2 *Unit) bool {
	n := u1.Len()
	if u2.Len() != n {
		return false
	}
	for i := 0; i < n; i++ {
		if u1.powers[i] != u2.powers[i] {
			return false
		}
	}
	return true
}

// IsMultiple reports whether u2 differs from u1 only by a uniform power in the
// dimensions where they disagree. A dimension active in only one of the two
// units never qualifies.
func IsMultiple(u1, u2 *Unit) bool {
	n := u1.Len()
	if u2.Len() != n {
		return false
	}
	var d float32
	found := false
	for i := 0; i < n; i++ {
		p1 := u1.powers[i]
		p2 := u2.powers[i]
		if p1 == p2 {
			continue
		}
		if p1 == 0 || p2 == 0 {
			return false
		}
		if !found {
			d = p2 - p1
			found = true
		} else if p2-p1 != d {
			return false
		}
	}
	return true
}

// ConvertTo returns the number a value in u has to be multiplied with to be
// expressed in o. The units are expected to be consistent; this is not
// checked.
func (u *Unit) ConvertTo(o *Unit) float64 {
	d := 1.0
	for i := 0; i < u.Len(); i++ {
		if p := u.powers[i]; p != 0 {
			d *= math.Pow(u.factors[i]/o.factor(i), float64(p))
		}
	}
	return d
}

// forceIndex maps the length exponent of u to the slot in the force family.
// Only units of mass¹·time⁻² with a length slot of any power qualify.
func forceIndex(u *Unit) (int, bool) {
	if u.Len() != int(Time)+1 || u.powers[Mass] != 1 || u.powers[Time] != -2 {
		return 0, false
	}
	l := u.exponent(int(Length))
	if float64(l) != math.Trunc(float64(l)) {
		return 0, false
	}
	i := int(l) + 3
	if i < 0 || i >= numForceUnits {
		return 0, false
	}
	return i, true
}

// IsForce reports whether u is a force, line load, pressure or moment that is
// still displayed in base units and could use a force family name instead
func (u *Unit) IsForce() bool {
	if _, ok := forceIndex(u); !ok {
		return false
	}
	return strings.Contains(u.Text(), "s")
}
