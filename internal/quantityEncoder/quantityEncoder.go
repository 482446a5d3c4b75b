// Package quantityencoder writes evaluated quantities as InfluxDB line
// protocol, one line per quantity with the value as field and the unit as
// tag
package quantityencoder

import (
	"fmt"
	"strings"
	"time"

	influx "github.com/influxdata/line-protocol/v2/lineprotocol"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	unitexpr "github.com/ClusterCockpit/cc-unit-engine/pkg/unitExpr"
)

type QuantityEncoder struct {
	measurement string
	tags        map[string]string
	encoder     influx.Encoder
}

// ParsePrecision maps "s", "ms", "us" and "ns" to a line protocol precision
func ParsePrecision(precision string) (influx.Precision, error) {
	switch strings.ToLower(precision) {
	case "s":
		return influx.Second, nil
	case "ms":
		return influx.Millisecond, nil
	case "us":
		return influx.Microsecond, nil
	case "ns", "":
		return influx.Nanosecond, nil
	default:
		return influx.Nanosecond, fmt.Errorf("unknown precision '%s'", precision)
	}
}

// New returns an encoder writing lines of measurement. tags are added to
// every line.
func New(measurement string, tags map[string]string, precision influx.Precision) *QuantityEncoder {
	e := &QuantityEncoder{
		measurement: measurement,
		tags:        make(map[string]string, len(tags)),
	}
	for k, v := range tags {
		e.tags[k] = v
	}
	e.encoder.SetPrecision(precision)
	return e
}

// Add encodes q computed from expr. Empty tags are skipped, so unitless
// quantities carry no unit tag.
func (e *QuantityEncoder) Add(expr string, q unitexpr.Quantity, t time.Time) error {
	value, ok := influx.NewValue(q.Value)
	if !ok {
		return fmt.Errorf("cannot encode value %v of '%s'", q.Value, expr)
	}
	e.encoder.StartLine(e.measurement)

	tags := make(map[string]string, len(e.tags)+2)
	for k, v := range e.tags {
		tags[k] = v
	}
	tags["expr"] = expr
	tags["unit"] = q.Unit.Text()

	// tags must be in lexical order
	keys := maps.Keys(tags)
	slices.Sort(keys)
	for _, k := range keys {
		if len(tags[k]) > 0 {
			e.encoder.AddTag(k, tags[k])
		}
	}

	e.encoder.AddField("value", value)
	e.encoder.EndLine(t)
	return e.encoder.Err()
}

// Bytes returns the lines encoded so far
func (e *QuantityEncoder) Bytes() []byte {
	return e.encoder.Bytes()
}

func (e *QuantityEncoder) Reset() {
	e.encoder.Reset()
}
