package observability

import (
	"sync"

	"github.com/aretw0/outlet/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by placement events.
type Metrics struct {
	Operations     *prometheus.CounterVec
	Splits         prometheus.Counter
	HiddenInCenter prometheus.Gauge

	mu     sync.Mutex
	hidden map[string]bool
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outlet_operations_total",
				Help: "Effective outlet operations by type and destination location",
			},
			[]string{"op", "location"},
		),
		Splits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outlet_pane_splits_total",
			Help: "Center panes created to host an outlet",
		}),
		HiddenInCenter: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "outlet_hidden_in_center",
			Help: "Centered outlets currently parked in a dock",
		}),
		hidden: make(map[string]bool),
	}
	for _, c := range []prometheus.Collector{m.Operations, m.Splits, m.HiddenInCenter} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks recording every event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPlace:   m.observe,
		OnShow:    m.observe,
		OnHide:    m.observe,
		OnFocus:   m.observe,
		OnLink:    m.observe,
		OnDestroy: m.observe,
	}
}

func (m *Metrics) observe(e *domain.Event) {
	m.Operations.WithLabelValues(string(e.Type), string(e.To)).Inc()
	if e.Split {
		m.Splits.Inc()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	switch e.Type {
	case domain.EventHide:
		if e.HiddenInCenter {
			m.hidden[e.OutletID] = true
		}
	case domain.EventFocus, domain.EventLink:
		return
	default:
		delete(m.hidden, e.OutletID)
	}
	m.HiddenInCenter.Set(float64(len(m.hidden)))
}
