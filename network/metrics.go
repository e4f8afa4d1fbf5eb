package network

import (
	"sync/atomic"

	"github.com/lixenwraith/walkbox/status"
)

// serverMetrics caches registry pointers so session loops update them lock-free
type serverMetrics struct {
	registry *status.Registry

	sessionsTotal  *atomic.Int64
	sessionsActive *atomic.Int64
	queries        *atomic.Int64
	unreachable    *atomic.Int64
	rateLimited    *atomic.Int64
	badMessages    *atomic.Int64
	dropped        *atomic.Int64
	lastQueryMs    *status.AtomicFloat
}

func newServerMetrics() *serverMetrics {
	r := status.NewRegistry()
	return &serverMetrics{
		registry:       r,
		sessionsTotal:  r.Counters.Get("sessions_total"),
		sessionsActive: r.Counters.Get("sessions_active"),
		queries:        r.Counters.Get("queries"),
		unreachable:    r.Counters.Get("queries_unreachable"),
		rateLimited:    r.Counters.Get("queries_rate_limited"),
		badMessages:    r.Counters.Get("bad_messages"),
		dropped:        r.Counters.Get("messages_dropped"),
		lastQueryMs:    r.Gauges.Get("last_query_ms"),
	}
}
