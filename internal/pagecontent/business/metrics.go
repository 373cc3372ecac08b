package business

import "github.com/prometheus/client_golang/prometheus"

const (
	resultApplied = "applied"
	resultNoop    = "noop"
	resultError   = "error"
)

type Metrics struct {
	Commands         *prometheus.CounterVec
	SchemaViolations prometheus.Counter
	Sessions         prometheus.GaugeFunc
}

func newMetrics(sessions *sessionStore) *Metrics {
	return &Metrics{
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pagecontent",
			Name:      "editor_commands_total",
			Help:      "Editor commands by name and result",
		}, []string{"command", "result"}),
		SchemaViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pagecontent",
			Name:      "schema_violations_total",
			Help:      "Documents rejected by schema validation",
		}),
		Sessions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "pagecontent",
			Name:      "editor_sessions",
			Help:      "Open editor sessions",
		}, func() float64 { return float64(sessions.len()) }),
	}
}

// Register регистрирует метрики в реестре Prometheus.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Commands, m.SchemaViolations, m.Sessions} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
