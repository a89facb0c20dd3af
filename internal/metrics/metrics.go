// Package metrics defines and registers all custom Prometheus metrics for the
// TalentHub API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed on /metrics alongside the HTTP middleware metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "talenthub"

// ── Record store metrics ──────────────────────────────────────────────────────

// StoreOperationsTotal counts record store calls issued by repositories.
// Labels:
//   - table: "users", "jobs" or "projects"
//   - operation: "create", "get_all", "get_by_id", "get_paginated", "update", "delete"
//   - result: "ok", "not_found", "invalid" or "error"
var StoreOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_operations_total",
		Help:      "Total number of record store operations, by table, operation and result.",
	},
	[]string{"table", "operation", "result"},
)

// StoreOperationDuration measures the latency of a single record store call.
var StoreOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Duration of record store operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"table", "operation"},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// ResourcesCreatedTotal counts successfully created records.
// Label:
//   - table: "users", "jobs" or "projects"
var ResourcesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resources_created_total",
		Help:      "Total number of records created, by table.",
	},
	[]string{"table"},
)

// SeedRecordsTotal counts rows handled by the seed loader.
// Labels:
//   - table: target table
//   - result: "inserted", "skipped" or "error"
var SeedRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seed_records_total",
		Help:      "Total number of seed rows processed, by table and result.",
	},
	[]string{"table", "result"},
)
