package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/couchcryptid/climate-forecast/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Extractor supplies the historical dataset as a raw table.
type Extractor interface {
	ReadTable(ctx context.Context) (domain.Table, error)
}

// Loader receives a completed forecast run.
type Loader interface {
	LoadRun(ctx context.Context, run domain.ForecastRun) error
}

// Options fixes the train/test partition of a run.
type Options struct {
	// SplitRatio is the fraction of records held out for evaluation.
	SplitRatio float64
	Seed       uint64
}

// DefaultOptions returns an 80/20 split seeded with 42.
func DefaultOptions() Options {
	return Options{SplitRatio: domain.DefaultSplitRatio, Seed: domain.DefaultSeed}
}

// Pipeline composes load, clean, frame, fit, predict and classify into one
// forecast run. A Pipeline holds no per-run state and is safe for
// concurrent use.
type Pipeline struct {
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	newID   func() string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the clock used for run timestamps and durations.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// WithIDGenerator sets the run ID source.
func WithIDGenerator(f func() string) Option {
	return func(p *Pipeline) { p.newID = f }
}

// New creates a Pipeline with the given observability.
func New(logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Pipeline {
	p := &Pipeline{
		logger:  logger,
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// LoadAndClean reads the source once and imputes every missing cell.
func LoadAndClean(ctx context.Context, src Extractor) ([]domain.ClimateRecord, domain.Imputation, error) {
	table, err := src.ReadTable(ctx)
	if err != nil {
		return nil, domain.Imputation{}, err
	}
	raw, err := domain.ParseTable(table)
	if err != nil {
		return nil, domain.Imputation{}, err
	}
	return domain.Clean(raw)
}

// Run forecasts temperature and advisories for each projection in input.
// Either the complete result is returned or the first stage error, unchanged.
func (p *Pipeline) Run(ctx context.Context, src Extractor, input domain.ForecastInput, opts Options) (domain.ForecastResult, error) {
	run, err := p.Forecast(ctx, src, input, opts)
	if err != nil {
		return nil, err
	}
	return run.Result, nil
}

// Forecast is Run with the evaluation and diagnostic summary attached.
func (p *Pipeline) Forecast(ctx context.Context, src Extractor, input domain.ForecastInput, opts Options) (domain.ForecastRun, error) {
	start := p.clock.Now()
	runID := p.newID()
	logger := p.logger.With("run_id", runID)
	p.metrics.RunsTotal.Inc()

	run, stage, err := p.forecast(ctx, logger, src, input, opts)
	p.metrics.RunDuration.Observe(p.clock.Since(start).Seconds())
	if err != nil {
		p.metrics.RunErrors.WithLabelValues(domain.ErrorKind(err)).Inc()
		logger.Error("forecast run failed", "stage", stage, "error", err)
		return domain.ForecastRun{}, err
	}

	run.ID = runID
	run.GeneratedAt = start.UTC()
	p.record(run)
	logger.Info("forecast run complete",
		"entries", len(run.Result),
		"records", run.Summary.Records,
		"test_mae", run.Evaluation.MAE,
		"duration", p.clock.Since(start),
	)
	return run, nil
}

// forecast runs the stages in order and reports the stage that failed.
func (p *Pipeline) forecast(ctx context.Context, logger *slog.Logger, src Extractor, input domain.ForecastInput, opts Options) (domain.ForecastRun, string, error) {
	records, imputation, err := LoadAndClean(ctx, src)
	if err != nil {
		return domain.ForecastRun{}, "load", err
	}
	logger.Debug("dataset cleaned", "stage", "load", "records", len(records), "imputed", imputation.FilledCells())

	split, err := domain.Frame(records, opts.SplitRatio, opts.Seed)
	if err != nil {
		return domain.ForecastRun{}, "frame", err
	}
	logger.Debug("dataset framed", "stage", "frame", "train_rows", len(split.Train), "test_rows", len(split.Test))

	model, err := domain.Fit(split.Train)
	if err != nil {
		return domain.ForecastRun{}, "fit", err
	}

	evaluation, err := model.Evaluate(split.Test)
	if err != nil {
		return domain.ForecastRun{}, "evaluate", err
	}

	if err := domain.ValidateForecastInput(input); err != nil {
		return domain.ForecastRun{}, "predict", err
	}
	predictions, err := model.Predict(input)
	if err != nil {
		return domain.ForecastRun{}, "predict", err
	}

	result, err := domain.BuildResult(input, predictions)
	if err != nil {
		return domain.ForecastRun{}, "classify", err
	}

	renewable, fossil := domain.EnergyMix(input)
	p.metrics.RecordsLoaded.Set(float64(len(records)))
	for col, n := range imputation.Filled {
		if n > 0 {
			p.metrics.ImputedCells.WithLabelValues(col).Add(float64(n))
		}
	}

	return domain.ForecastRun{
		Result:     result,
		Evaluation: evaluation,
		Summary: domain.Summary{
			Records:              len(records),
			TrainRows:            len(split.Train),
			TestRows:             len(split.Test),
			Intercept:            model.Intercept(),
			Coefficients:         model.Coefficients(domain.FeatureNames()),
			Imputed:              imputation.Filled,
			MeanRenewablePercent: renewable,
			MeanFossilPercent:    fossil,
		},
	}, "", nil
}

func (p *Pipeline) record(run domain.ForecastRun) {
	p.metrics.ModelTestMAE.Set(run.Evaluation.MAE)
	p.metrics.ModelTestRMSE.Set(run.Evaluation.RMSE)
	p.metrics.ModelTestR2.Set(run.Evaluation.R2)
	for _, e := range run.Result {
		p.metrics.Advisories.WithLabelValues(string(e.Tier)).Inc()
	}
}

// Publish hands run to every loader. Loader failures are logged and
// counted but never alter the run; the number of failed loaders is returned.
func (p *Pipeline) Publish(ctx context.Context, run domain.ForecastRun, loaders ...Loader) int {
	failed := 0
	for _, l := range loaders {
		name := loaderName(l)
		if err := l.LoadRun(ctx, run); err != nil {
			failed++
			p.metrics.SinkErrors.WithLabelValues(name).Inc()
			p.logger.Warn("publish forecast failed", "run_id", run.ID, "sink", name, "error", err)
			continue
		}
		p.logger.Debug("forecast published", "run_id", run.ID, "sink", name)
	}
	if failed < len(loaders) {
		p.metrics.ForecastReady.Set(1)
	}
	return failed
}

func loaderName(l Loader) string {
	if n, ok := l.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", l)
}

// ForecastEvery runs a forecast immediately and then on each interval tick
// until ctx is cancelled, publishing each successful run. A failed run is
// logged and retried on the next tick.
func (p *Pipeline) ForecastEvery(ctx context.Context, interval time.Duration, src Extractor, input domain.ForecastInput, opts Options, loaders ...Loader) error {
	p.forecastAndPublish(ctx, src, input, opts, loaders)
	if interval <= 0 {
		return nil
	}

	ticker := p.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("forecast scheduler stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			p.forecastAndPublish(ctx, src, input, opts, loaders)
		}
	}
}

func (p *Pipeline) forecastAndPublish(ctx context.Context, src Extractor, input domain.ForecastInput, opts Options, loaders []Loader) {
	run, err := p.Forecast(ctx, src, input, opts)
	if err != nil {
		return
	}
	p.Publish(ctx, run, loaders...)
}
