package ccunits

// Dimension is the index of a base dimension slot inside a Unit
type Dimension int

const (
	Mass Dimension = iota
	Length
	Time
	Current
	Temperature
	Substance
	Luminosity
	NumDimensions
)

func (d Dimension) String() string {
	switch d {
	case Mass:
		return "Mass"
	case Length:
		return "Length"
	case Time:
		return "Time"
	case Current:
		return "Current"
	case Temperature:
		return "Temperature"
	case Substance:
		return "Substance"
	case Luminosity:
		return "Luminosity"
	default:
		return "Unknown"
	}
}

// Symbol returns the symbol of the reference unit of the dimension.
// Mass factors are relative to the gram.
func (d Dimension) Symbol() string {
	switch d {
	case Mass:
		return "g"
	case Length:
		return "m"
	case Time:
		return "s"
	case Current:
		return "A"
	case Temperature:
		return "°C"
	case Substance:
		return "mol"
	case Luminosity:
		return "cd"
	default:
		return "?"
	}
}

// defaultFactor is the factor of a slot that was never rescaled.
// The mass slot defaults to the kilogram.
func (d Dimension) defaultFactor() float64 {
	if d == Mass {
		return 1000.0
	}
	return 1.0
}
