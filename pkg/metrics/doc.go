// Package metrics exposes Prometheus counters and histograms for webhook
// outcomes and email deliveries on a dedicated registry.
package metrics
