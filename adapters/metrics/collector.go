package metrics

import (
	"context"
	"time"

	"myscraper/domain"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "myscraper"

// Cycle results.
const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// Collector keeps the scraper's own metrics. It is a SnapshotPublisher so the
// catalog gauges follow the last published snapshot.
type Collector struct {
	cycles        *prometheus.CounterVec
	cycleDuration prometheus.Histogram
	lastSuccess   prometheus.Gauge
	instances     *prometheus.GaugeVec
	credits       *prometheus.GaugeVec
}

// NewCollector creates the metrics and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Scrape cycles by result.",
		}, []string{"result"}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Duration of scrape cycles.",
			Buckets:   prometheus.DefBuckets,
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last published snapshot.",
		}),
		instances: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "instances",
			Help:      "Instances in the last published snapshot by software.",
		}, []string{"software"}),
		credits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "credits",
			Help:      "Credited hosting parties in the last published snapshot by kind.",
		}, []string{"kind"}),
	}
	c.cycles.WithLabelValues(resultSuccess)
	c.cycles.WithLabelValues(resultFailure)
	reg.MustRegister(c.cycles, c.cycleDuration, c.lastSuccess, c.instances, c.credits)
	return c
}

// ObserveCycle records the outcome of one cycle that ended at end.
func (c *Collector) ObserveCycle(err error, duration time.Duration, end time.Time) {
	c.cycleDuration.Observe(duration.Seconds())
	if err != nil {
		c.cycles.WithLabelValues(resultFailure).Inc()
		return
	}
	c.cycles.WithLabelValues(resultSuccess).Inc()
	c.lastSuccess.Set(float64(end.UnixNano()) / 1e9)
}

// Publish updates the catalog gauges from snapshot.
func (c *Collector) Publish(ctx context.Context, snapshot domain.Snapshot) error {
	bySoftware := map[domain.Software]int{
		domain.SoftwareJitsi:   0,
		domain.SoftwareEdumeet: 0,
	}
	for _, inst := range snapshot.Instances {
		bySoftware[inst.Software]++
	}
	for software, n := range bySoftware {
		c.instances.WithLabelValues(string(software)).Set(float64(n))
	}
	for _, kind := range domain.HostKinds {
		c.credits.WithLabelValues(string(kind)).Set(float64(len(snapshot.Credits[kind])))
	}
	return nil
}
