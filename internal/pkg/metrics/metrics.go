package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SelectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "regionmap_selections_total",
		Help: "Selection commands by layer and outcome",
	}, []string{"layer", "outcome"})
	SearchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "regionmap_search_total",
		Help: "Search requests by outcome (region, subregion, no_match, empty)",
	}, []string{"outcome"})
	WeatherFetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "regionmap_weather_fetch_total",
		Help: "Weather fetches by result (ok, unavailable, error, cache_hit)",
	}, []string{"result"})
	WeatherFetchDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "regionmap_weather_fetch_duration_ms",
		Help:    "Weather API call duration in milliseconds",
		Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000},
	})
	WeatherStaleDropsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "regionmap_weather_stale_drops_total",
		Help: "Weather results dropped because the selection changed",
	})
	SessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "regionmap_sessions_active",
		Help: "Open map sessions",
	})
	SessionsReapedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "regionmap_sessions_reaped_total",
		Help: "Sessions closed by the idle reaper",
	})
	StatsReloadTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "regionmap_stats_reload_total",
		Help: "Statistics table reloads by result",
	}, []string{"result"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "regionmap_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"method", "status"})
)

func init() {
	prometheus.MustRegister(SelectionsTotal)
	prometheus.MustRegister(SearchTotal)
	prometheus.MustRegister(WeatherFetchTotal)
	prometheus.MustRegister(WeatherFetchDurationMs)
	prometheus.MustRegister(WeatherStaleDropsTotal)
	prometheus.MustRegister(SessionsActive)
	prometheus.MustRegister(SessionsReapedTotal)
	prometheus.MustRegister(StatsReloadTotal)
	prometheus.MustRegister(RequestDurationMs)
}

// Handler отдаёт зарегистрированные метрики для /metrics
func Handler() http.Handler { return promhttp.Handler() }
