package ccunits

const numForceUnits = 9

// Decimal steps every electrical and most derived SI units come with
var engineeringSteps = []int{3, 6, 9, 12, -3, -6, -9, -12}

// addShifted registers u under its own name and the prefixed variants for
// the steps
func (c *Catalog) addShifted(u *Unit, steps ...int) {
	c.add(u.name, u)
	for _, n := range steps {
		s := u.Shift(n)
		c.add(s.name, s)
	}
}

// addScaled registers name as factor times u and returns it
func (c *Catalog) addScaled(u *Unit, name string, factor float64) *Unit {
	s := u.Scale(name, factor)
	c.add(name, s)
	return s
}

func (c *Catalog) build() {
	g := NewUnit("kg", 1).Scale("g", 0.001)
	m := NewUnit("m", 0, 1)
	s := NewUnit("s", 0, 0, 1)
	A := NewUnit("A", 0, 0, 0, 1)
	N := NewUnit("N", 1, 1, -2)
	Pa := NewUnit("Pa", 1, -1, -2)
	J := NewUnit("J", 1, 2, -2)
	W := NewUnit("W", 1, 2, -3)
	Hz := NewUnit("Hz", 0, 0, -1)
	m2 := m.Pow(2)
	L := m.Shift(-1).Pow(3).WithName("L")

	// mass
	c.addShifted(g, 2, 3, -1, -2, -3, -6, -9, -12)
	c.addScaled(g, "t", 1e6)
	c.addScaled(g, "kt", 1e9)
	c.addScaled(g, "Mt", 1e12)
	c.addScaled(g, "Gt", 1e15)
	c.addScaled(g, "Da", 1.6605390666050505e-27)
	c.addScaled(g, "u", 1.6605390666050505e-27)
	c.addScaled(g, "gr", 0.06479891)
	c.addScaled(g, "dr", 1.7718451953125)
	c.addScaled(g, "oz", 28.349523125)
	c.addScaled(g, "lb", 453.59237)
	c.addScaled(g, "kip", 453592.37)
	c.addScaled(g, "st", 6350.29318)
	c.addScaled(g, "qr", 12700.58636)
	c.addScaled(g, "slug", 14593.90294)
	c.addRegional("cwt", g.Scale("cwt_US", 45359.237), g.Scale("cwt_UK", 50802.34544))
	c.addRegional("ton", g.Scale("ton_US", 907184.74), g.Scale("ton_UK", 1016046.9088))

	// length
	c.addShifted(m, 3, -1, -2, -3, -6, -9, -12)
	c.addScaled(m, "AU", 149597870700.0)
	c.addScaled(m, "ly", 9460730472580800.0)
	c.addScaled(m, "th", 2.54e-5)
	c.addScaled(m, "in", 0.0254)
	c.addScaled(m, "ft", 0.3048)
	c.addScaled(m, "yd", 0.9144)
	c.addScaled(m, "ch", 20.1168)
	c.addScaled(m, "fur", 201.168)
	mi := c.addScaled(m, "mi", 1609.344)
	c.addScaled(m, "ftm", 1.852)
	c.addScaled(m, "cable", 185.2)
	c.addScaled(m, "nmi", 1852)
	c.addScaled(m, "li", 0.201168)
	c.addScaled(m, "rod", 5.0292)
	c.addScaled(m, "pole", 5.0292)
	c.addScaled(m, "perch", 5.0292)
	c.addScaled(m, "lea", 4828.032)

	// area and volume
	a := c.addScaled(m2, "a", 100)
	c.addScaled(a, "daa", 10)
	c.addScaled(a, "ha", 100)
	c.addScaled(m2, "rood", 1011.7141056)
	c.addScaled(m2, "ac", 4046.8564224)
	c.add("L", L)
	c.addScaled(L, "dL", 0.1)
	c.addScaled(L, "cL", 0.01)
	c.addScaled(L, "mL", 0.001)
	c.addScaled(L, "hL", 100)
	c.addRegional("fl_oz", L.Scale("fl_oz_US", 0.0295735295625), L.Scale("fl_oz_UK", 0.0284130625))
	c.addRegional("gi", L.Scale("gi_US", 0.11829411825), L.Scale("gi_UK", 0.1420653125))
	c.addRegional("pt", L.Scale("pt_US", 0.473176473), L.Scale("pt_UK", 0.56826125))
	c.addRegional("qt", L.Scale("qt_US", 0.946352946), L.Scale("qt_UK", 1.1365225))
	c.addRegional("gal", L.Scale("gal_US", 3.785411784), L.Scale("gal_UK", 4.54609))
	c.addRegional("bbl", L.Scale("bbl_US", 119.240471196), L.Scale("bbl_UK", 163.65924))
	c.addRegional("bu", L.Scale("bu_US", 35.2390704), L.Scale("bu_UK", 36.36872))

	// time and frequency
	c.addShifted(s, -3, -6, -9, -12)
	c.addScaled(s, "min", 60)
	h := c.addScaled(s, "h", 3600)
	c.addScaled(h, "d", 24)
	c.add("kmh", m.Shift(3).Div(h).WithName("kmh"))
	c.add("mph", mi.Div(h).WithName("mph"))
	c.addShifted(Hz, engineeringSteps...)
	c.addScaled(Hz, "rpm", 1.0/60.0)

	// current
	c.addShifted(A, engineeringSteps...)
	c.add("Ah", A.Mul(h).WithName("Ah"))
	c.add("mAh", A.Shift(-3).Mul(h).WithName("mAh"))

	// temperature, substance, luminosity
	c.add("°C", NewUnit("°C", 0, 0, 0, 0, 1))
	c.add("Δ°C", NewUnit("Δ°C", 0, 0, 0, 0, 1))
	c.add("K", NewUnit("K", 0, 0, 0, 0, 1))
	c.add("°F", NewUnit("°F", 0, 0, 0, 0, 1).Scale("°F", 5.0/9.0))
	c.add("Δ°F", NewUnit("Δ°F", 0, 0, 0, 0, 1).Scale("Δ°F", 5.0/9.0))
	c.add("°R", NewUnit("°R", 0, 0, 0, 0, 1).Scale("°R", 5.0/9.0))
	c.add("mol", NewUnit("mol", 0, 0, 0, 0, 0, 1))
	c.add("cd", NewUnit("cd", 0, 0, 0, 0, 0, 0, 1))

	// force
	c.addShifted(N, 1, 2, 3, 6, 9, 12)
	c.addShifted(NewUnit("Nm", 1, 2, -2), 3)
	c.addScaled(N, "kgf", 9.80665)
	c.addScaled(N, "tf", 9806.65)
	c.addScaled(N, "dyn", 1e-5)
	c.addScaled(N, "ozf", 0.278013851)
	c.addScaled(N, "lbf", 4.4482216153)
	c.addScaled(N, "kipf", 4448.2216153)
	c.addScaled(N, "pdl", 0.138254954376)
	c.addRegional("tonf", N.Scale("tonf_US", 8896.443230521), N.Scale("tonf_UK", 9964.01641818352))

	// pressure
	c.addShifted(Pa, 1, 2, 3, 6, 9, 12, -1, -2, -3, -6, -9, -12)
	c.addScaled(Pa, "bar", 1e5)
	c.addScaled(Pa, "mbar", 100)
	c.addScaled(Pa, "μbar", 0.1)
	c.addScaled(Pa, "atm", 101325)
	c.addScaled(Pa, "mmHg", 133.322387415)
	c.addScaled(Pa, "at", 98066.5)
	c.addScaled(Pa, "Torr", 133.32236842)
	c.addScaled(Pa, "osi", 430.922330894662)
	c.addScaled(Pa, "osf", 2.99251618676848)
	c.addScaled(Pa, "psi", 6894.75729322959)
	c.addScaled(Pa, "ksi", 6894757.29322959)
	c.addScaled(Pa, "tsi", 15444256.3366971)
	c.addScaled(Pa, "psf", 47.880258980761)
	c.addScaled(Pa, "ksf", 47880.258980761)
	c.addScaled(Pa, "tsf", 107251.780115952)
	c.addScaled(Pa, "inHg", 3386.389)

	// energy
	c.addShifted(J, engineeringSteps...)
	c.addScaled(J, "Wh", 3600)
	c.addScaled(J, "kWh", 3.6e6)
	c.addScaled(J, "MWh", 3.6e9)
	c.addScaled(J, "GWh", 3.6e12)
	c.addScaled(J, "TWh", 3.6e15)
	c.addScaled(J, "erg", 1e-7)
	c.addScaled(J, "eV", 1.6021773300241367e-19)
	c.addScaled(J, "keV", 1.6021773300241367e-16)
	c.addScaled(J, "MeV", 1.6021773300241367e-13)
	c.addScaled(J, "GeV", 1.6021773300241367e-10)
	c.addScaled(J, "TeV", 1.6021773300241367e-7)
	c.addScaled(J, "PeV", 1.6021773300241367e-4)
	c.addScaled(J, "EeV", 1.6021773300241367e-1)
	c.addScaled(J, "BTU", 1055.05585262)
	c.addScaled(J, "quad", 1055.05585262e+15)
	c.addScaled(J, "cal", 4.1868)
	c.addScaled(J, "kcal", 4186.8)
	c.addRegional("therm", J.Scale("therm_US", 1054.804e+5), J.Scale("therm_UK", 1055.05585262e+5))

	// power
	c.addShifted(W, engineeringSteps...)
	c.addScaled(W, "hp", 745.69987158227022)
	c.addScaled(W, "hp_M", 735.49875)
	c.addScaled(W, "ks", 735.49875)
	c.addScaled(W, "hp_E", 746)
	c.addScaled(W, "hp_S", 9812.5)

	// electromagnetism
	c.addShifted(NewUnit("C", 0, 0, 1, 1), engineeringSteps...)
	c.addShifted(NewUnit("V", 1, 2, -3, -1), engineeringSteps...)
	c.addShifted(NewUnit("F", -1, -2, 4, 2), engineeringSteps...)
	c.addShifted(NewUnit("Ω", 1, 2, -3, -2), engineeringSteps...)
	c.addShifted(NewUnit("S", -1, -2, 3, 2), engineeringSteps...)
	c.addShifted(NewUnit("Wb", 1, 2, -2, -1), engineeringSteps...)
	c.addShifted(NewUnit("T", 1, 0, -2, -1), engineeringSteps...)
	c.addShifted(NewUnit("H", 1, 2, -2, -2), engineeringSteps...)

	// radiation
	Bq := NewUnit("Bq", 0, 0, -1)
	c.addShifted(Bq, engineeringSteps...)
	c.addScaled(Bq, "Ci", 3.7e10)
	c.addScaled(Bq, "Rd", 1e6)
	c.addShifted(NewUnit("Gy", 0, 2, -2), engineeringSteps...)
	c.addShifted(NewUnit("Sv", 0, 2, -2), engineeringSteps...)

	// photometry and catalytic activity
	c.add("lm", NewUnit("lm", 0, 0, 0, 0, 0, 0, 1))
	c.add("lx", NewUnit("lx", 0, -2, 0, 0, 0, 0, 1))
	c.add("kat", NewUnit("kat", 0, 0, -1, 0, 0, 1))

	c.buildForceFamily(N.Shift(3), m)
}

// buildForceFamily fills the line load, pressure and moment units derived
// from kN, indexed by length exponent + 3
func (c *Catalog) buildForceFamily(kN, m *Unit) {
	names := [numForceUnits]string{
		"kN/m^4", "kN/m^3", "kPa", "kN/m", "kN", "kN·m", "kN·m^2", "kN·m^3", "kN·m^4",
	}
	for i, name := range names {
		k := i - 4
		if k == 0 {
			c.force[i] = kN
			continue
		}
		c.force[i] = kN.Mul(m.Pow(float64(k))).WithName(name)
	}
}
