package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "subname_gateway"

// Service owns the gateway's prometheus registry. Every server instance gets its own
// registry so tests can run several servers in one process.
type Service struct {
	Registry *prometheus.Registry

	lookups        *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
	info           *prometheus.GaugeVec
}

func New() (*Service, error) {
	reg := prometheus.NewRegistry()

	s := &Service{
		Registry: reg,
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lookups_total",
				Help:      "Total number of lookups by outcome",
			},
			[]string{"outcome"},
		),
		lookupDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "lookup_duration_seconds",
				Help:      "Lookup processing latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		info: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "info",
				Help:      "Static gateway information",
			},
			[]string{"service", "chain_id", "contract"},
		),
	}

	for _, c := range []prometheus.Collector{
		s.lookups,
		s.lookupDuration,
		s.info,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// SetInfo publishes the static gateway labels.
func (s *Service) SetInfo(service string, chainID string, contract string) {
	s.info.WithLabelValues(service, chainID, contract).Set(1)
}

// ObserveLookup records one finished lookup. outcome is "ok" or the error kind.
func (s *Service) ObserveLookup(outcome string, took time.Duration) {
	s.lookups.WithLabelValues(outcome).Inc()
	s.lookupDuration.WithLabelValues(outcome).Observe(took.Seconds())
}
