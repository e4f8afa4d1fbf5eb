package status

import "sync/atomic"

// Registry groups counters and gauges for one process
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[AtomicFloat]
}

func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[AtomicFloat](),
	}
}

// Snapshot reads every metric into one flat map; counters and gauges share the key space
func (r *Registry) Snapshot() map[string]float64 {
	out := make(map[string]float64, r.Counters.Len()+r.Gauges.Len())
	for k, c := range r.Counters.All() {
		out[k] = float64(c.Load())
	}
	for k, g := range r.Gauges.All() {
		out[k] = g.Get()
	}
	return out
}
