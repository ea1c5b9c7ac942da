package courier

import "github.com/prometheus/client_golang/prometheus"

// Collector exposes a bus's counters as Prometheus metrics. It reads the
// live counters at scrape time; no sampling goroutine is involved.
type Collector struct {
	bus *Bus

	sent      *prometheus.Desc
	matched   *prometheus.Desc
	delivered *prometheus.Desc
	enqueued  *prometheus.Desc
	dropped   *prometheus.Desc
	panics    *prometheus.Desc
	active    *prometheus.Desc
}

// NewCollector creates and registers a collector for b. If registry is
// nil, the default Prometheus registerer is used.
func NewCollector(b *Bus, registry prometheus.Registerer) (*Collector, error) {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	c := &Collector{
		bus: b,
		sent: prometheus.NewDesc(
			"courier_sends_total",
			"Number of Send calls observed by the bus.",
			nil, nil,
		),
		matched: prometheus.NewDesc(
			"courier_deliveries_matched_total",
			"Deliveries that passed token and liveness checks at send time.",
			nil, nil,
		),
		delivered: prometheus.NewDesc(
			"courier_deliveries_completed_total",
			"Callbacks that ran to completion.",
			nil, nil,
		),
		enqueued: prometheus.NewDesc(
			"courier_deliveries_enqueued_total",
			"Deliveries queued for another execution context.",
			nil, nil,
		),
		dropped: prometheus.NewDesc(
			"courier_deliveries_dropped_total",
			"Deliveries lost to full queues, removed subscriptions, or dead receivers.",
			nil, nil,
		),
		panics: prometheus.NewDesc(
			"courier_callback_panics_total",
			"Callbacks that panicked during delivery.",
			nil, nil,
		),
		active: prometheus.NewDesc(
			"courier_subscriptions_active",
			"Current number of subscriptions.",
			nil, nil,
		),
	}

	if err := registry.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sent
	ch <- c.matched
	ch <- c.delivered
	ch <- c.enqueued
	ch <- c.dropped
	ch <- c.panics
	ch <- c.active
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.bus.Stats()
	ch <- prometheus.MustNewConstMetric(c.sent, prometheus.CounterValue, float64(s.Sent))
	ch <- prometheus.MustNewConstMetric(c.matched, prometheus.CounterValue, float64(s.Matched))
	ch <- prometheus.MustNewConstMetric(c.delivered, prometheus.CounterValue, float64(s.Delivered))
	ch <- prometheus.MustNewConstMetric(c.enqueued, prometheus.CounterValue, float64(s.Enqueued))
	ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(s.Dropped))
	ch <- prometheus.MustNewConstMetric(c.panics, prometheus.CounterValue, float64(s.Panics))
	ch <- prometheus.MustNewConstMetric(c.active, prometheus.GaugeValue, float64(s.Active))
}
