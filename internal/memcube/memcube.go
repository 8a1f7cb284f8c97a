// Package memcube is a small in-memory data cube implementing the
// pkg/datacube collaborator interfaces, for tests and demos.
//
// It follows crossfilter semantics: a dimension's own filter is excluded
// from that dimension's group aggregation but applied to every other
// group, so a filtered chart keeps showing the full span of its own axis
// while the rest of the charts narrow down.
package memcube

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/wandb/simplejsonext"

	"github.com/chartlink/chartlink/pkg/datacube"
)

// Record is one raw row of the cube.
type Record map[string]any

// Cube holds the records and the dimensions carved out of them.
type Cube struct {
	mu      sync.Mutex
	records []Record
	dims    []*Dimension
}

// New creates an empty cube.
func New() *Cube {
	return &Cube{}
}

// Add appends records to the cube.
func (c *Cube) Add(records ...Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, records...)
}

// Size returns the number of records in the cube.
func (c *Cube) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// LoadJSONLines parses one JSON object per line into records. Values may
// be NaN or +-Infinity, which standard JSON parsing rejects but metric
// data routinely contains.
func LoadJSONLines(r io.Reader) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		obj, err := simplejsonext.UnmarshalObjectString(line)
		if err != nil {
			return nil, fmt.Errorf("memcube: bad record %q: %w", line, err)
		}
		records = append(records, Record(obj))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Dimension carves a filterable axis out of the cube.
func (c *Cube) Dimension(key func(Record) any) *Dimension {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := &Dimension{cube: c, key: key}
	c.dims = append(c.dims, d)
	return d
}

// Dimension is one groupable axis of the cube. It implements
// datacube.Dimension.
type Dimension struct {
	mu sync.Mutex

	cube *Cube
	key  func(Record) any

	predicate datacube.Predicate
}

var _ datacube.Dimension = &Dimension{}

// Filter replaces the dimension's predicate; nil clears it.
func (d *Dimension) Filter(p datacube.Predicate) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.predicate = p
}

// matches applies the dimension's predicate to a record. An unfiltered
// dimension matches everything.
func (d *Dimension) matches(rec Record) bool {
	d.mu.Lock()
	p := d.predicate
	key := d.key
	d.mu.Unlock()

	if p == nil {
		return true
	}
	return p(key(rec))
}

// GroupSum builds a sum aggregation over this dimension's keys. The
// aggregation reflects filters on every other dimension but not on this
// one.
func (d *Dimension) GroupSum(value func(Record) float64) *Group {
	return &Group{dim: d, value: value}
}

// Group implements datacube.Group over a dimension.
type Group struct {
	dim   *Dimension
	value func(Record) float64
}

var _ datacube.Group = &Group{}

// All aggregates the rows passing every other dimension's filter,
// binned by this dimension's key, in sorted key order.
func (g *Group) All() []datacube.Row {
	cube := g.dim.cube

	cube.mu.Lock()
	records := cube.records
	dims := cube.dims
	cube.mu.Unlock()

	sums := make(map[any]float64)
	for _, rec := range records {
		if !passesAll(dims, rec, g.dim) {
			continue
		}
		sums[g.dim.key(rec)] += g.value(rec)
	}

	rows := make([]datacube.Row, 0, len(sums))
	for key, sum := range sums {
		rows = append(rows, datacube.Row{Key: key, Value: sum})
	}
	sortRows(rows)
	return rows
}

// SumAll builds a scalar aggregation over records passing every
// dimension's filter.
func (c *Cube) SumAll(value func(Record) float64) *ValueGroup {
	return &ValueGroup{cube: c, value: value}
}

// ValueGroup implements datacube.ValueGroup over the whole cube.
type ValueGroup struct {
	cube  *Cube
	value func(Record) float64
}

var _ datacube.ValueGroup = &ValueGroup{}

func (g *ValueGroup) Value() float64 {
	g.cube.mu.Lock()
	records := g.cube.records
	dims := g.cube.dims
	g.cube.mu.Unlock()

	var sum float64
	for _, rec := range records {
		if !passesAll(dims, rec, nil) {
			continue
		}
		sum += g.value(rec)
	}
	return sum
}

// passesAll applies every dimension's filter except the excluded one.
func passesAll(dims []*Dimension, rec Record, except *Dimension) bool {
	for _, d := range dims {
		if d == except {
			continue
		}
		if !d.matches(rec) {
			return false
		}
	}
	return true
}

// sortRows orders rows numerically when both keys are numbers and
// lexically otherwise, so bins come out in a stable axis order.
func sortRows(rows []datacube.Row) {
	sort.Slice(rows, func(i, j int) bool {
		a, aOK := asFloat(rows[i].Key)
		b, bOK := asFloat(rows[j].Key)
		if aOK && bOK {
			return a < b
		}
		return fmt.Sprint(rows[i].Key) < fmt.Sprint(rows[j].Key)
	})
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}
