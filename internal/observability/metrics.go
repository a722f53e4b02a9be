package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flexfit",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests served, labeled by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "flexfit",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Time spent serving HTTP requests.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"method", "route"})

	signupsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "flexfit",
		Subsystem: "users",
		Name:      "signups_total",
		Help:      "Number of accounts created through signup.",
	})

	loginFailuresCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "flexfit",
		Subsystem: "users",
		Name:      "login_failures_total",
		Help:      "Number of rejected login attempts.",
	})

	bookmarkToggles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flexfit",
		Subsystem: "bookmarks",
		Name:      "toggles_total",
		Help:      "Bookmark toggles, labeled by resulting status.",
	}, []string{"status"})

	workoutsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "flexfit",
		Subsystem: "workouts",
		Name:      "logged_total",
		Help:      "Number of workouts logged.",
	})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, signupsCounter, loginFailuresCounter, bookmarkToggles, workoutsCounter)
}

// Middleware records request count and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordSignup counts a created account.
func RecordSignup() {
	signupsCounter.Inc()
}

// RecordLoginFailure counts a rejected login.
func RecordLoginFailure() {
	loginFailuresCounter.Inc()
}

// RecordToggle counts a bookmark toggle with its outcome.
func RecordToggle(status string) {
	bookmarkToggles.WithLabelValues(status).Inc()
}

// RecordWorkout counts a logged workout.
func RecordWorkout() {
	workoutsCounter.Inc()
}
