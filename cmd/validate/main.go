// Command validate checks a climate dataset end to end before it is used for
// forecasting: schema, completeness, imputation idempotence, split
// determinism, model quality on the held-out split, and advisory coverage.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -data data/climate_change_dataset.csv \
//	  -ratio 0.2 -seed 42 -max-mae 2.5
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"reflect"

	"github.com/couchcryptid/climate-forecast/internal/adapter/dataset"
	"github.com/couchcryptid/climate-forecast/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// settings holds the command-line parameters of a validation run.
type settings struct {
	dataPath string
	ratio    float64
	seed     uint64
	maxMAE   float64
}

func main() {
	s := settings{}
	flag.StringVar(&s.dataPath, "data", "", "dataset path (.csv or .xlsx)")
	flag.Float64Var(&s.ratio, "ratio", domain.DefaultSplitRatio, "test split fraction")
	flag.Uint64Var(&s.seed, "seed", domain.DefaultSeed, "split seed")
	flag.Float64Var(&s.maxMAE, "max-mae", 0, "fail if held-out MAE exceeds this (0 disables)")
	flag.Parse()

	if s.dataPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(context.Background(), os.Stdout, s); code != 0 {
		os.Exit(code)
	}
}

func run(ctx context.Context, w io.Writer, s settings) int {
	fmt.Fprintln(w, "=== Climate Dataset Validation ===")
	fmt.Fprintln(w)

	tbl, err := dataset.NewFile(s.dataPath).ReadTable(ctx)
	if err != nil {
		fmt.Fprintf(w, "FATAL: load dataset: %v\n", err)
		return 1
	}

	// ── Run validation phases ──
	schema, raw := validateSchema(tbl)
	phases := []*phase{schema}
	if schema.passed() {
		completeness, records := validateCompleteness(w, raw)
		phases = append(phases, completeness)
		if completeness.passed() {
			phases = append(phases,
				validateIdempotence(records),
				validateSplit(records, s.ratio, s.seed),
				validateModel(w, records, s.ratio, s.seed, s.maxMAE),
			)
		}
	}
	phases = append(phases, validateAdvisories())

	// ── Report results ──
	fmt.Fprintln(w)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Rows: %d in table, %d parsed\n", len(tbl.Rows), len(raw))

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// ── Phases ──

func validateSchema(tbl domain.Table) (*phase, []domain.RawRecord) {
	p := &phase{name: "Schema (required columns, numeric cells)"}
	raw, err := domain.ParseTable(tbl)
	if err != nil {
		p.errorf("%v", err)
		return p, nil
	}
	if len(raw) == 0 {
		p.errorf("dataset has no data rows")
	}
	return p, raw
}

func validateCompleteness(w io.Writer, raw []domain.RawRecord) (*phase, []domain.ClimateRecord) {
	p := &phase{name: "Completeness (every column has values)"}
	records, im, err := domain.Clean(raw)
	if err != nil {
		p.errorf("%v", err)
		return p, nil
	}
	for _, col := range append([]string{domain.ColumnCountry}, domain.NumericColumns[:]...) {
		if n := im.Filled[col]; n > 0 {
			fmt.Fprintf(w, "Imputed: %d cells in %q\n", n, col)
		}
	}
	return p, records
}

func validateIdempotence(records []domain.ClimateRecord) *phase {
	p := &phase{name: "Imputation idempotence"}
	raw := make([]domain.RawRecord, len(records))
	for i, r := range records {
		raw[i] = r.Raw()
	}
	again, im, err := domain.Clean(raw)
	if err != nil {
		p.errorf("re-clean: %v", err)
		return p
	}
	if n := im.FilledCells(); n != 0 {
		p.errorf("re-clean filled %d cells", n)
	}
	for i := range records {
		if records[i] != again[i] {
			p.errorf("row %d changed on re-clean: %+v -> %+v", i+1, records[i], again[i])
		}
	}
	return p
}

func validateSplit(records []domain.ClimateRecord, ratio float64, seed uint64) *phase {
	p := &phase{name: "Split (deterministic, disjoint, complete)"}
	first, err := domain.Frame(records, ratio, seed)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	second, err := domain.Frame(records, ratio, seed)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	if !reflect.DeepEqual(first, second) {
		p.errorf("repeated split with seed %d differs", seed)
	}
	if n := len(first.Train) + len(first.Test); n != len(records) {
		p.errorf("split covers %d of %d records", n, len(records))
	}
	if len(first.Train) == 0 || len(first.Test) == 0 {
		p.errorf("empty side: train=%d test=%d", len(first.Train), len(first.Test))
	}
	return p
}

func validateModel(w io.Writer, records []domain.ClimateRecord, ratio float64, seed uint64, maxMAE float64) *phase {
	p := &phase{name: "Model (fit, held-out evaluation)"}
	split, err := domain.Frame(records, ratio, seed)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	model, err := domain.Fit(split.Train)
	if err != nil {
		p.errorf("fit: %v", err)
		return p
	}
	eval, err := model.Evaluate(split.Test)
	if err != nil {
		p.errorf("evaluate: %v", err)
		return p
	}
	fmt.Fprintf(w, "Model: %d train, %d test, MAE=%.4f RMSE=%.4f R2=%.4f\n",
		len(split.Train), len(split.Test), eval.MAE, eval.RMSE, eval.R2)

	for _, v := range []float64{eval.MAE, eval.MSE, eval.RMSE, eval.R2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			p.errorf("non-finite metric in %+v", eval)
			break
		}
	}
	if maxMAE > 0 && eval.MAE > maxMAE {
		p.errorf("held-out MAE %.4f exceeds %.4f", eval.MAE, maxMAE)
	}

	predictions, err := model.Predict(domain.DefaultForecastInput())
	if err != nil {
		p.errorf("predict default scenario: %v", err)
	}
	for i, t := range predictions {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			p.errorf("default scenario projection %d predicts %v", i, t)
		}
	}
	return p
}

// validateAdvisories pins the tier boundaries.
func validateAdvisories() *phase {
	p := &phase{name: "Advisory tiers (boundaries, sizes)"}
	cases := []struct {
		temp float64
		tier domain.Tier
		n    int
	}{
		{3.0001, domain.TierUrgent, 5},
		{3, domain.TierCritical, 5},
		{2, domain.TierCritical, 5},
		{1.9999, domain.TierImportant, 4},
		{1, domain.TierImportant, 4},
		{0.999, domain.TierPositive, 3},
		{-5, domain.TierPositive, 3},
	}
	for _, c := range cases {
		if got := domain.ClassifyTier(c.temp); got != c.tier {
			p.errorf("classify(%v) = %s, want %s", c.temp, got, c.tier)
		}
		if got := len(domain.Classify(c.temp)); got != c.n {
			p.errorf("classify(%v) returned %d advisories, want %d", c.temp, got, c.n)
		}
	}
	return p
}
