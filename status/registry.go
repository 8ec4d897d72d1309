package status

import "sync/atomic"

// Counter keys written by the simulation
const (
	Ticks         = "engine.ticks"
	RouteContacts = "route.contacts"
	RouteHits     = "route.hits"
	RouteMisses   = "route.misses"
	RouteSelf     = "route.self"
	Overflows     = "fluid.overflows"
	Resets        = "fluid.resets"
	Particles     = "physics.particles"
)

// PourSpeed is the gauge key holding a vessel's emission speed
func PourSpeed(vessel string) string {
	return "pour." + vessel
}

// Registry holds the simulation's counters and gauges
// Systems cache pointers during init, update loops write directly to atomics
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Gauges *MetricMap[Gauge]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Gauges: NewMetricMap[Gauge](),
	}
}

// Snapshot copies all counters into a plain map
func (r *Registry) Snapshot() map[string]int64 {
	out := make(map[string]int64, r.Ints.Len())
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = ptr.Load()
	})
	return out
}

// GaugeSnapshot copies all gauges into a plain map
func (r *Registry) GaugeSnapshot() map[string]float64 {
	out := make(map[string]float64, r.Gauges.Len())
	r.Gauges.Range(func(key string, g *Gauge) {
		out[key] = g.Load()
	})
	return out
}
