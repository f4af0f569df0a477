package pipeline

import "github.com/prometheus/client_golang/prometheus"

// Classification outcomes recorded per classified article.
const (
	outcomeRelevant    = "relevant"
	outcomeNotRelevant = "not_relevant"
	outcomeMalformed   = "malformed"
	outcomeFailed      = "failed"
)

// Run results.
const (
	resultOK          = "ok"
	resultFetchFailed = "fetch_failed"
	resultCanceled    = "canceled"
)

// Metrics holds the pipeline's Prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	runs            *prometheus.CounterVec
	fetched         prometheus.Counter
	classifications *prometheus.CounterVec
	duration        prometheus.Histogram
}

// NewMetrics creates the pipeline collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disasterfeed",
			Name:      "pipeline_runs_total",
			Help:      "Pipeline runs by result.",
		}, []string{"result"}),
		fetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disasterfeed",
			Name:      "articles_fetched_total",
			Help:      "Raw articles returned by the article source.",
		}),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disasterfeed",
			Name:      "classifications_total",
			Help:      "Article classifications by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "disasterfeed",
			Name:      "pipeline_duration_seconds",
			Help:      "Wall-clock duration of pipeline runs.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
	reg.MustRegister(m.runs, m.fetched, m.classifications, m.duration)
	return m
}

func (m *Metrics) observeRun(result string, seconds float64) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(result).Inc()
	m.duration.Observe(seconds)
}

func (m *Metrics) addFetched(n int) {
	if m == nil {
		return
	}
	m.fetched.Add(float64(n))
}

func (m *Metrics) countOutcome(outcome string) {
	if m == nil {
		return
	}
	m.classifications.WithLabelValues(outcome).Inc()
}
