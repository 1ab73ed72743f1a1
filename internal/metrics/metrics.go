package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the per-entity sync counters on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	recordsCreated *prometheus.CounterVec
	recordsUpdated *prometheus.CounterVec
	recordsSkipped *prometheus.CounterVec
	recordErrors   *prometheus.CounterVec
	conflicts      *prometheus.CounterVec
}

// New creates the sync metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		recordsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_records_created_total",
			Help: "Records created on the target side, by entity type",
		}, []string{"entity"}),
		recordsUpdated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_records_updated_total",
			Help: "Records updated on the target side, by entity type",
		}, []string{"entity"}),
		recordsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_records_skipped_total",
			Help: "Source records skipped before mutation, by entity type",
		}, []string{"entity"}),
		recordErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_record_errors_total",
			Help: "Per-record failures that did not abort the run, by entity type",
		}, []string{"entity"}),
		conflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_conflicts_total",
			Help: "Uniqueness conflicts recorded to the side channel, by entity type",
		}, []string{"entity"}),
	}
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordCreated(entity string) {
	m.recordsCreated.WithLabelValues(entity).Inc()
}

func (m *Metrics) RecordUpdated(entity string) {
	m.recordsUpdated.WithLabelValues(entity).Inc()
}

func (m *Metrics) RecordSkipped(entity string) {
	m.recordsSkipped.WithLabelValues(entity).Inc()
}

func (m *Metrics) RecordError(entity string) {
	m.recordErrors.WithLabelValues(entity).Inc()
}

func (m *Metrics) RecordConflict(entity string) {
	m.conflicts.WithLabelValues(entity).Inc()
}
