package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nfl_fantasy"

var (
	// Registry 应用自有的 Prometheus 注册表
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms ~ 2.5s
		},
		[]string{"method", "route"},
	)

	seasonsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "seasons",
			Name:      "created_total",
			Help:      "Total number of seasons created.",
		},
	)

	seasonsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "seasons",
			Name:      "rejected_total",
			Help:      "Total number of season creations rejected by validation.",
		},
		[]string{"reason"},
	)

	loginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "login_attempts_total",
			Help:      "Total number of login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	leagueJoins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "leagues",
			Name:      "join_attempts_total",
			Help:      "Total number of league join attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		seasonsCreated,
		seasonsRejected,
		loginAttempts,
		leagueJoins,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler 暴露已注册指标的 HTTP 处理器
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ── HTTP ──

// RequestStarted 请求进入时调用，返回的函数在请求结束时记录状态码与耗时
func RequestStarted() func(method, route, status string, seconds float64) {
	httpInFlight.Inc()
	return func(method, route, status string, seconds float64) {
		httpInFlight.Dec()
		httpRequests.WithLabelValues(method, route, status).Inc()
		httpDuration.WithLabelValues(method, route).Observe(seconds)
	}
}

// ── 业务指标 ──

// SeasonCreated 记录一次成功创建的赛季
func SeasonCreated() {
	seasonsCreated.Inc()
}

// SeasonRejected 记录一次被校验拒绝的赛季创建，reason 为校验失败类别
func SeasonRejected(reason string) {
	seasonsRejected.WithLabelValues(reason).Inc()
}

// LoginAttempt 记录登录结果：success | invalid | locked
func LoginAttempt(outcome string) {
	loginAttempts.WithLabelValues(outcome).Inc()
}

// LeagueJoin 记录加入联赛结果
func LeagueJoin(outcome string) {
	leagueJoins.WithLabelValues(outcome).Inc()
}
