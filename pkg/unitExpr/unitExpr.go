// Package unitexpr evaluates arithmetic expressions over quantities with
// physical units. Identifiers are looked up as variables first and as catalog
// units second, so "2*ft + 1*m" or "(5*kN)/(2*m)" evaluate to quantities.
// Unit names that are not plain identifiers are written as unit("°C").
package unitexpr

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PaesslerAG/gval"
	lru "github.com/hashicorp/golang-lru"

	ccunits "github.com/ClusterCockpit/cc-unit-engine/pkg/ccUnits"
)

// DefaultCacheSize is the number of compiled expressions an evaluator keeps
const DefaultCacheSize = 1024

// EvalObserver is notified after every evaluation
type EvalObserver interface {
	ObserveEval(duration time.Duration, err error)
}

type Evaluator struct {
	catalog  *ccunits.Catalog
	language gval.Language
	civilize bool
	observer EvalObserver

	// Compiled expressions keyed by their text, least recently used evicted
	evaluables *lru.Cache

	variables struct {
		mapping map[string]Quantity
		mutex   sync.RWMutex
	}
}

// NewEvaluator returns an evaluator resolving units in c. Force shaped
// results are civilized unless switched off with SetCivilize.
func NewEvaluator(c *ccunits.Catalog) *Evaluator {
	evaluables, _ := lru.New(DefaultCacheSize)
	e := &Evaluator{
		catalog:    c,
		civilize:   true,
		evaluables: evaluables,
	}
	e.variables.mapping = make(map[string]Quantity)
	e.language = gval.NewLanguage(
		gval.Full(),
		quantityOperators,
		gval.Function("unit", e.unitFunc),
		gval.Function("convert", e.convertFunc),
		gval.Function("civilize", e.civilizeFunc),
		gval.Function("pow", powFunc),
		gval.Function("sqrt", sqrtFunc),
		gval.Function("abs", absFunc),
		gval.Function("value", valueFunc),
		gval.VariableSelector(e.selector),
	)
	return e
}

func (e *Evaluator) Catalog() *ccunits.Catalog {
	return e.catalog
}

func (e *Evaluator) SetObserver(o EvalObserver) {
	e.observer = o
}

func (e *Evaluator) SetCivilize(civilize bool) {
	e.civilize = civilize
}

// SetCacheSize limits the number of cached compiled expressions
func (e *Evaluator) SetCacheSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("invalid cache size %d", size)
	}
	e.evaluables.Resize(size)
	return nil
}

// SetVariable binds name to q. Variables shadow catalog units.
func (e *Evaluator) SetVariable(name string, q Quantity) {
	e.variables.mutex.Lock()
	e.variables.mapping[name] = q
	e.variables.mutex.Unlock()
}

func (e *Evaluator) Variable(name string) (Quantity, bool) {
	e.variables.mutex.RLock()
	defer e.variables.mutex.RUnlock()
	q, ok := e.variables.mapping[name]
	return q, ok
}

func (e *Evaluator) DeleteVariable(name string) {
	e.variables.mutex.Lock()
	delete(e.variables.mapping, name)
	e.variables.mutex.Unlock()
}

// Eval evaluates expr to a quantity. Boolean results become 1 and 0.
func (e *Evaluator) Eval(ctx context.Context, expr string) (Quantity, error) {
	start := time.Now()
	q, err := e.eval(ctx, expr)
	if e.observer != nil {
		e.observer.ObserveEval(time.Since(start), err)
	}
	return q, err
}

func (e *Evaluator) eval(ctx context.Context, expr string) (Quantity, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Quantity{}, fmt.Errorf("%w: empty expression", ErrInvalidOperand)
	}
	evaluable, cached, err := e.compile(expr)
	if err != nil {
		return Quantity{}, err
	}

	e.variables.mutex.RLock()
	value, err := evaluable(ctx, e.variables.mapping)
	e.variables.mutex.RUnlock()
	if err != nil {
		return Quantity{}, fmt.Errorf("failed to evaluate '%s': %w", expr, err)
	}
	q, err := toQuantity(value)
	if err != nil {
		return Quantity{}, fmt.Errorf("failed to evaluate '%s': %w", expr, err)
	}
	if !cached {
		e.evaluables.Add(expr, evaluable)
	}
	if e.civilize {
		q = Civilize(e.catalog, q)
	}
	return q, nil
}

// compile returns the cached evaluable for expr or compiles a new one. New
// evaluables are cached by eval once they evaluated successfully.
func (e *Evaluator) compile(expr string) (gval.Evaluable, bool, error) {
	if cached, ok := e.evaluables.Get(expr); ok {
		return cached.(gval.Evaluable), true, nil
	}

	evaluable, err := e.language.NewEvaluable(expr)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse '%s': %w", expr, err)
	}
	return evaluable, false, nil
}

// selector resolves identifiers, variables first
func (e *Evaluator) selector(path gval.Evaluables) gval.Evaluable {
	return func(c context.Context, v interface{}) (interface{}, error) {
		keys, err := path.EvalStrings(c, v)
		if err != nil {
			return nil, err
		}
		name := strings.Join(keys, ".")
		if vars, ok := v.(map[string]Quantity); ok {
			if q, ok := vars[name]; ok {
				return q, nil
			}
		}
		u, err := e.catalog.Get(name)
		if err != nil {
			return nil, err
		}
		return Quantity{Value: 1, Unit: u}, nil
	}
}

// unitArg accepts a unit name or a quantity whose unit is taken
func (e *Evaluator) unitArg(arg interface{}) (*ccunits.Unit, error) {
	switch a := arg.(type) {
	case string:
		return e.catalog.Get(a)
	case Quantity:
		return a.Unit, nil
	default:
		return nil, fmt.Errorf("%w: expected a unit, got %T", ErrInvalidOperand, arg)
	}
}

func (e *Evaluator) unitFunc(args ...interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("unit() expects exactly one argument")
	}
	u, err := e.unitArg(args[0])
	if err != nil {
		return nil, err
	}
	return Quantity{Value: 1, Unit: u}, nil
}

func (e *Evaluator) convertFunc(args ...interface{}) (interface{}, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("convert() expects exactly two arguments")
	}
	q, err := toQuantity(args[0])
	if err != nil {
		return nil, err
	}
	target, err := e.unitArg(args[1])
	if err != nil {
		return nil, err
	}
	return Convert(q, target)
}

func (e *Evaluator) civilizeFunc(args ...interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("civilize() expects exactly one argument")
	}
	q, err := toQuantity(args[0])
	if err != nil {
		return nil, err
	}
	return Civilize(e.catalog, q), nil
}
