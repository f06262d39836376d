// Package telemetry exports constraint solver statistics as Prometheus
// metrics.
//
// A Collector tracks any number of named sources (usually one per layout)
// and reads their counters on every scrape, so nothing needs to be pushed
// from the layout code itself. Allocation latency is the exception: callers
// report it with ObserveAllocation.
package telemetry

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/grindlemire/go-constraint/internal/solver"
)

const (
	namespace = "guide"
	subsystem = "solver"
)

// Source reports solver statistics. *solver.Solver implements it.
type Source interface {
	Stats() solver.Stats
}

// Collector is a prometheus.Collector over tracked solver sources.
// It is safe for concurrent use.
type Collector struct {
	mu      sync.Mutex
	sources map[string]Source

	constraints *prometheus.Desc
	variables   *prometheus.Desc
	edits       *prometheus.Desc
	rows        *prometheus.Desc
	pivots      *prometheus.Desc
	added       *prometheus.Desc
	removed     *prometheus.Desc
	resolves    *prometheus.Desc

	allocations *prometheus.HistogramVec
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector with no sources.
func NewCollector() *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, name), help, []string{"layout"}, nil)
	}
	return &Collector{
		sources:     make(map[string]Source),
		constraints: desc("constraints", "Number of constraints registered with the solver."),
		variables:   desc("variables", "Number of variables referenced by the solver."),
		edits:       desc("edit_variables", "Number of edit variables."),
		rows:        desc("rows", "Number of rows in the simplex tableau."),
		pivots:      desc("pivots_total", "Simplex pivots performed."),
		added:       desc("constraints_added_total", "Constraints added."),
		removed:     desc("constraints_removed_total", "Constraints removed."),
		resolves:    desc("resolves_total", "Resolution passes that copied the solution into variables."),
		allocations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "layout",
				Name:      "allocate_duration_seconds",
				Help:      "Time spent allocating a layout.",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"layout"},
		),
	}
}

// Track adds or replaces the source reported under name.
func (c *Collector) Track(name string, s Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[name] = s
}

// Untrack stops reporting name.
func (c *Collector) Untrack(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sources, name)
	c.allocations.DeleteLabelValues(name)
}

// ObserveAllocation records how long an allocation of the named layout took.
func (c *Collector) ObserveAllocation(name string, d time.Duration) {
	c.allocations.WithLabelValues(name).Observe(d.Seconds())
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		c.constraints, c.variables, c.edits, c.rows,
		c.pivots, c.added, c.removed, c.resolves,
	} {
		ch <- d
	}
	c.allocations.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	names := make([]string, 0, len(c.sources))
	for name := range c.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	stats := make([]solver.Stats, len(names))
	for i, name := range names {
		stats[i] = c.sources[name].Stats()
	}
	c.mu.Unlock()

	for i, name := range names {
		st := stats[i]
		gauge := func(d *prometheus.Desc, v int) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v), name)
		}
		counter := func(d *prometheus.Desc, v uint64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), name)
		}
		gauge(c.constraints, st.Constraints)
		gauge(c.variables, st.Variables)
		gauge(c.edits, st.EditVariables)
		gauge(c.rows, st.Rows)
		counter(c.pivots, st.Pivots)
		counter(c.added, st.Added)
		counter(c.removed, st.Removed)
		counter(c.resolves, st.Resolves)
	}
	c.allocations.Collect(ch)
}

// Gather registers the collector with a private registry and returns the
// current metric families.
func (c *Collector) Gather() ([]*dto.MetricFamily, error) {
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(c); err != nil {
		return nil, err
	}
	return reg.Gather()
}
