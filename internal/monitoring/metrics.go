package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/caravanmasterx/risk-engine/internal/risk"
)

var (
	sizingDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_engine_sizing_decisions_total",
			Help: "Total number of position sizing decisions",
		},
		[]string{"symbol", "regime"},
	)

	positionSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "risk_engine_position_size_usd",
			Help: "Last computed position size in quote currency",
		},
		[]string{"symbol"},
	)

	riskLevel = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "risk_engine_risk_level",
			Help: "Last computed risk level (0=low 1=medium 2=high 3=extreme)",
		},
		[]string{"symbol"},
	)

	volatilityGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "risk_engine_volatility",
			Help: "Last computed per-period return volatility",
		},
		[]string{"symbol"},
	)

	leverageHist = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "risk_engine_leverage",
			Help:    "Distribution of computed effective leverage",
			Buckets: []float64{0.05, 0.1, 0.2, 0.3, 0.5, 0.75, 1.0},
		},
		[]string{"symbol"},
	)
)

func init() {
	prometheus.MustRegister(sizingDecisions)
	prometheus.MustRegister(positionSize)
	prometheus.MustRegister(riskLevel)
	prometheus.MustRegister(volatilityGauge)
	prometheus.MustRegister(leverageHist)
}

// MetricsHandler serves the Prometheus metrics endpoint.
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint.
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordSizing records one sizing decision.
func RecordSizing(symbol, regime string, result risk.SizeResult) {
	sizingDecisions.WithLabelValues(symbol, regime).Inc()
	positionSize.WithLabelValues(symbol).Set(result.PositionSizeUSD)
	leverageHist.WithLabelValues(symbol).Observe(result.Leverage)
}

// RecordRiskMetrics records the latest risk snapshot.
func RecordRiskMetrics(symbol string, metrics risk.Metrics) {
	riskLevel.WithLabelValues(symbol).Set(float64(metrics.Level))
	volatilityGauge.WithLabelValues(symbol).Set(metrics.Volatility)
}
