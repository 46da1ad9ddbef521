package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "climate_forecast"

// Metrics holds the Prometheus counters, histograms, and gauges for forecast runs.
type Metrics struct {
	RunsTotal     prometheus.Counter
	RunErrors     *prometheus.CounterVec // labels: kind={schema,insufficient_data,config,dimension,other}
	RunDuration   prometheus.Histogram
	RecordsLoaded prometheus.Gauge
	ImputedCells  *prometheus.CounterVec // labels: column

	// Model diagnostics from the held-out split of the latest run.
	ModelTestMAE  prometheus.Gauge
	ModelTestRMSE prometheus.Gauge
	ModelTestR2   prometheus.Gauge

	Advisories    *prometheus.CounterVec // labels: tier
	SinkErrors    *prometheus.CounterVec // labels: sink
	ForecastReady prometheus.Gauge
}

// NewMetrics creates and registers all forecast metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)

	prometheus.MustRegister(
		m.RunsTotal,
		m.RunErrors,
		m.RunDuration,
		m.RecordsLoaded,
		m.ImputedCells,
		m.ModelTestMAE,
		m.ModelTestRMSE,
		m.ModelTestR2,
		m.Advisories,
		m.SinkErrors,
		m.ForecastReady,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}

func newMetrics(withHelp bool) *Metrics {
	help := func(s string) string {
		if withHelp {
			return s
		}
		return ""
	}

	return &Metrics{
		RunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      help("Total forecast runs started."),
		}),
		RunErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_errors_total",
			Help:      help("Forecast runs aborted, by error kind."),
		}, []string{"kind"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      help("Duration of a complete load-fit-predict-classify run."),
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_loaded",
			Help:      help("Records in the cleaned dataset of the latest run."),
		}),
		ImputedCells: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imputed_cells_total",
			Help:      help("Missing cells filled during cleaning, by column."),
		}, []string{"column"}),
		ModelTestMAE: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_test_mae",
			Help:      help("Mean absolute error on the held-out split."),
		}),
		ModelTestRMSE: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_test_rmse",
			Help:      help("Root mean squared error on the held-out split."),
		}),
		ModelTestR2: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_test_r2",
			Help:      help("Coefficient of determination on the held-out split."),
		}),
		Advisories: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advisories_total",
			Help:      help("Forecast years classified, by advisory tier."),
		}, []string{"tier"}),
		SinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_errors_total",
			Help:      help("Failed forecast publications, by sink."),
		}, []string{"sink"}),
		ForecastReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "forecast_ready",
			Help:      help("1 once a forecast has been published, 0 before."),
		}),
	}
}
