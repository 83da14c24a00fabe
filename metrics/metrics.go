// Package metrics exposes logger activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/lixenwraith/applog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsSource is satisfied by *applog.Logger
type StatsSource interface {
	Stats() applog.Stats
}

// Collector is a prometheus.Collector reading a logger's counters at scrape time.
type Collector struct {
	source StatsSource

	entries  *prometheus.Desc
	flushes  *prometheus.Desc
	errors   *prometheus.Desc
	buffered *prometheus.Desc
	evicted  *prometheus.Desc
	lastSync *prometheus.Desc
}

// NewCollector creates a collector for source. Every metric carries the log
// file path as its "path" label.
func NewCollector(source StatsSource, namespace string) *Collector {
	labels := []string{"path"}
	return &Collector{
		source: source,
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "entries_written_total"),
			"Entries passed to Write.", labels, nil),
		flushes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "flushes_total"),
			"Durable flushes of the log file.", labels, nil),
		errors: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "write_errors_total"),
			"Write calls that failed.", labels, nil),
		buffered: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "buffered_entries"),
			"Entries in the ring buffer since the last flush.", labels, nil),
		evicted: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "evicted_entries_total"),
			"Entries evicted from a full ring buffer.", labels, nil),
		lastSync: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "last_sync_timestamp_seconds"),
			"Unix time of the last durable flush.", labels, nil),
	}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.flushes
	ch <- c.errors
	ch <- c.buffered
	ch <- c.evicted
	ch <- c.lastSync
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()

	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.CounterValue, float64(s.Entries), s.Path)
	ch <- prometheus.MustNewConstMetric(c.flushes, prometheus.CounterValue, float64(s.Flushes), s.Path)
	ch <- prometheus.MustNewConstMetric(c.errors, prometheus.CounterValue, float64(s.WriteErrors), s.Path)
	ch <- prometheus.MustNewConstMetric(c.buffered, prometheus.GaugeValue, float64(s.Buffered), s.Path)
	ch <- prometheus.MustNewConstMetric(c.evicted, prometheus.CounterValue, float64(s.Evicted), s.Path)

	var lastSync float64
	if !s.LastSyncedAt.IsZero() {
		lastSync = float64(s.LastSyncedAt.UnixNano()) / 1e9
	}
	ch <- prometheus.MustNewConstMetric(c.lastSync, prometheus.GaugeValue, lastSync, s.Path)
}

// NewHandler returns an HTTP handler serving the collector from its own registry.
func NewHandler(c *Collector) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(c); err != nil {
		return nil, err
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}
