// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of requests issued to the backend",
		},
		[]string{"method", "operation", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "api_request_duration_seconds",
			Help: "Duration of backend requests in seconds",
		},
		[]string{"method", "operation"},
	)

	NotificationRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_refreshes_total",
			Help: "Total number of notification feed refreshes",
		},
		[]string{"result"},
	)

	NotificationsUnread = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notifications_unread",
			Help: "Current unread notification count",
		},
	)
)
