// File: metrics/metrics.go
// Package metrics exports component counters to Prometheus.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Collector turns any set of named api.StatsProvider instances into gauge
// metrics. Sampling happens only at scrape time; hot paths stay
// uninstrumented.

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/hioload-conc/api"
)

// Compile-time interface compliance.
var _ prometheus.Collector = (*Collector)(nil)

// Collector gathers Stats() maps from registered components.
type Collector struct {
	namespace string

	mu        sync.RWMutex
	providers map[string]api.StatsProvider
}

// NewCollector creates a collector with the given metric namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		namespace: namespace,
		providers: make(map[string]api.StatsProvider),
	}
}

// Track registers a component's stats under the given component label.
// Re-registering a name replaces the previous provider.
func (c *Collector) Track(name string, p api.StatsProvider) {
	c.mu.Lock()
	c.providers[name] = p
	c.mu.Unlock()
}

// Forget removes a tracked component.
func (c *Collector) Forget(name string) {
	c.mu.Lock()
	delete(c.providers, name)
	c.mu.Unlock()
}

// Describe implements prometheus.Collector. The metric set depends on the
// tracked components, so descriptions are derived from a collect pass.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(c, ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for name, p := range c.providers {
		for stat, value := range p.Stats() {
			desc := prometheus.NewDesc(
				prometheus.BuildFQName(c.namespace, "", stat),
				"Component counter "+stat+".",
				[]string{"component"}, nil,
			)
			ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, float64(value), name)
		}
	}
}
