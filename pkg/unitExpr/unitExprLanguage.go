package unitexpr

import (
	"context"
	"fmt"
	"math"

	"github.com/PaesslerAG/gval"
)

// quantityOperators extends the arithmetic of gval.Full to quantities. Plain
// numbers are still handled by the number operators of gval.Full; the
// functions below only see operations with at least one quantity.
var quantityOperators = gval.NewLanguage(
	gval.InfixOperator("+", func(a, b interface{}) (interface{}, error) {
		x, y, err := operands(a, b)
		if err != nil {
			return nil, err
		}
		return Add(x, y)
	}),
	gval.InfixOperator("-", func(a, b interface{}) (interface{}, error) {
		x, y, err := operands(a, b)
		if err != nil {
			return nil, err
		}
		return Sub(x, y)
	}),
	gval.InfixOperator("*", func(a, b interface{}) (interface{}, error) {
		x, y, err := operands(a, b)
		if err != nil {
			return nil, err
		}
		return Mul(x, y), nil
	}),
	gval.InfixOperator("/", func(a, b interface{}) (interface{}, error) {
		x, y, err := operands(a, b)
		if err != nil {
			return nil, err
		}
		return Div(x, y), nil
	}),
	gval.InfixOperator("**", func(a, b interface{}) (interface{}, error) {
		x, y, err := operands(a, b)
		if err != nil {
			return nil, err
		}
		return Pow(x, y)
	}),
	gval.InfixOperator("<", comparison(func(c int) bool { return c < 0 })),
	gval.InfixOperator("<=", comparison(func(c int) bool { return c <= 0 })),
	gval.InfixOperator(">", comparison(func(c int) bool { return c > 0 })),
	gval.InfixOperator(">=", comparison(func(c int) bool { return c >= 0 })),
	gval.InfixOperator("==", comparison(func(c int) bool { return c == 0 })),
	gval.InfixOperator("!=", comparison(func(c int) bool { return c != 0 })),
	gval.PrefixOperator("-", func(c context.Context, v interface{}) (interface{}, error) {
		if d, ok := v.(float64); ok {
			return -d, nil
		}
		q, err := toQuantity(v)
		if err != nil {
			return nil, err
		}
		return Neg(q), nil
	}),
)

func comparison(accept func(int) bool) func(a, b interface{}) (interface{}, error) {
	return func(a, b interface{}) (interface{}, error) {
		x, y, err := operands(a, b)
		if err != nil {
			return nil, err
		}
		c, err := Compare(x, y)
		if err != nil {
			return nil, err
		}
		return accept(c), nil
	}
}

func operands(a, b interface{}) (Quantity, Quantity, error) {
	x, err := toQuantity(a)
	if err != nil {
		return Quantity{}, Quantity{}, err
	}
	y, err := toQuantity(b)
	if err != nil {
		return Quantity{}, Quantity{}, err
	}
	return x, y, nil
}

// toQuantity converts evaluation results: numbers become unitless
// quantities, booleans 1 or 0
func toQuantity(v interface{}) (Quantity, error) {
	switch x := v.(type) {
	case Quantity:
		return x, nil
	case float64:
		return Scalar(x), nil
	case float32:
		return Scalar(float64(x)), nil
	case int:
		return Scalar(float64(x)), nil
	case int64:
		return Scalar(float64(x)), nil
	case bool:
		if x {
			return Scalar(1), nil
		}
		return Scalar(0), nil
	default:
		return Quantity{}, fmt.Errorf("%w: %v (%T) is not a quantity", ErrInvalidOperand, v, v)
	}
}

func powFunc(args ...interface{}) (interface{}, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("pow() expects exactly two arguments")
	}
	x, y, err := operands(args[0], args[1])
	if err != nil {
		return nil, err
	}
	return Pow(x, y)
}

func sqrtFunc(args ...interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("sqrt() expects exactly one argument")
	}
	q, err := toQuantity(args[0])
	if err != nil {
		return nil, err
	}
	return Pow(q, Scalar(0.5))
}

func absFunc(args ...interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("abs() expects exactly one argument")
	}
	q, err := toQuantity(args[0])
	if err != nil {
		return nil, err
	}
	return Quantity{Value: math.Abs(q.Value), Unit: q.Unit}, nil
}

// valueFunc drops the unit
func valueFunc(args ...interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("value() expects exactly one argument")
	}
	q, err := toQuantity(args[0])
	if err != nil {
		return nil, err
	}
	return q.Value, nil
}
