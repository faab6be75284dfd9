package utils

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v4/cpu"
)

var (
	// Database metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Todo metrics
	TodoOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todo_operations_total",
			Help: "Total number of todo operations",
		},
		[]string{"operation"}, // create, update, toggle, delete, clear_completed
	)

	TodoCompletionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "todo_completions_total",
			Help: "Total number of todos marked complete",
		},
	)

	// Rate limiter metrics
	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"action"},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by type and reason",
		},
		[]string{"type", "reason"},
	)

	// System metrics
	CPUUsageGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "system_cpu_usage_percent",
			Help: "Current CPU usage percentage of the host",
		},
	)
)

// TrackDBOperation returns a running timer for a database operation; callers
// stop it with ObserveDuration.
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

func TrackTodoOperation(operation string) {
	TodoOperationsTotal.WithLabelValues(operation).Inc()
}

func TrackTodoCompletion() {
	TodoCompletionsTotal.Inc()
}

func TrackRateLimitRejection(action string) {
	RateLimitRejections.WithLabelValues(action).Inc()
}

func TrackError(errorType, reason string) {
	ErrorsTotal.WithLabelValues(errorType, reason).Inc()
}

// GetCPUUsage returns the current CPU usage as a percentage.
func GetCPUUsage() float64 {
	percentage, err := cpu.Percent(time.Second, false)
	if err != nil {
		log.Printf("Error getting CPU usage: %v", err)
		return 0
	}
	if len(percentage) > 0 {
		return percentage[0]
	}
	return 0
}

// StartSystemMetrics samples host CPU usage into the gauge on the given
// interval until the process exits.
func StartSystemMetrics(interval time.Duration) {
	go func() {
		for {
			CPUUsageGauge.Set(GetCPUUsage())
			time.Sleep(interval)
		}
	}()
}
