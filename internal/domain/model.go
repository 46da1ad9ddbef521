package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// machineEpsilon scales the SVD rank cutoff, matching LAPACK-style lstsq defaults.
const machineEpsilon = 0x1p-52

// FittedModel holds the coefficients of an ordinary least-squares fit.
// It is immutable once returned by Fit.
type FittedModel struct {
	weights   []float64
	intercept float64
}

// Fit regresses the samples' targets on their features with an intercept.
// The centered system is solved through a thin SVD, giving the minimum-norm
// solution when the training matrix is rank deficient. The result depends
// only on the samples and their order.
func Fit(train []Sample) (*FittedModel, error) {
	n := len(train)
	if n == 0 {
		return nil, fmt.Errorf("%w: no training samples", ErrInsufficientData)
	}
	p := len(train[0].Features)
	if p == 0 {
		return nil, fmt.Errorf("%w: training samples have no features", ErrDimension)
	}
	for i := range train {
		if len(train[i].Features) != p {
			return nil, fmt.Errorf("%w: training sample %d has %d features, want %d", ErrDimension, i, len(train[i].Features), p)
		}
	}

	col := make([]float64, n)
	xMean := make([]float64, p)
	for j := range p {
		for i := range train {
			col[i] = train[i].Features[j]
		}
		xMean[j] = stat.Mean(col, nil)
	}
	for i := range train {
		col[i] = train[i].Target
	}
	yMean := stat.Mean(col, nil)

	x := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i := range train {
		for j := range p {
			x.Set(i, j, train[i].Features[j]-xMean[j])
		}
		y.SetVec(i, train[i].Target-yMean)
	}

	var svd mat.SVD
	if !svd.Factorize(x, mat.SVDThin) {
		return nil, fmt.Errorf("%w: training matrix could not be factorized", ErrInsufficientData)
	}

	weights := make([]float64, p)
	// Rank 0 means every feature is constant over the training rows.
	if rank := svd.Rank(machineEpsilon * float64(max(n, p))); rank > 0 {
		var w mat.VecDense
		svd.SolveVecTo(&w, y, rank)
		for j := range weights {
			weights[j] = w.AtVec(j)
		}
	}

	intercept := yMean
	for j, w := range weights {
		intercept -= w * xMean[j]
	}

	return &FittedModel{weights: weights, intercept: intercept}, nil
}

// FeatureCount returns the number of features the model was trained on.
func (m *FittedModel) FeatureCount() int { return len(m.weights) }

// Intercept returns the fitted intercept.
func (m *FittedModel) Intercept() float64 { return m.intercept }

// Weights returns a copy of the per-feature coefficients in feature order.
func (m *FittedModel) Weights() []float64 {
	out := make([]float64, len(m.weights))
	copy(out, m.weights)
	return out
}

// Coefficients returns the weights keyed by name. Names beyond the model's
// feature count are ignored; missing names are skipped.
func (m *FittedModel) Coefficients(names []string) map[string]float64 {
	out := make(map[string]float64, len(m.weights))
	for j, w := range m.weights {
		if j < len(names) {
			out[names[j]] = w
		}
	}
	return out
}

// Predict returns intercept + Σ weight_i*feature_i for each vector, in order.
func (m *FittedModel) Predict(vectors []FeatureVector) ([]float64, error) {
	out := make([]float64, len(vectors))
	for i, v := range vectors {
		if len(v) != len(m.weights) {
			return nil, fmt.Errorf("%w: vector %d has %d features, model expects %d", ErrDimension, i, len(v), len(m.weights))
		}
		pred := m.intercept
		for j, w := range m.weights {
			pred += w * v[j]
		}
		out[i] = pred
	}
	return out, nil
}

// Evaluation scores a model against held-out samples.
type Evaluation struct {
	Samples int     `json:"samples"`
	MAE     float64 `json:"mae"`
	MSE     float64 `json:"mse"`
	RMSE    float64 `json:"rmse"`
	// R2 is zero when the held-out targets have no variance (e.g. one sample).
	R2 float64 `json:"r2"`
}

// Evaluate scores the model on test samples. It is a read-only diagnostic.
func (m *FittedModel) Evaluate(test []Sample) (Evaluation, error) {
	if len(test) == 0 {
		return Evaluation{}, fmt.Errorf("%w: no test samples", ErrInsufficientData)
	}
	vectors := make([]FeatureVector, len(test))
	targets := make([]float64, len(test))
	for i := range test {
		vectors[i] = test[i].Features
		targets[i] = test[i].Target
	}
	preds, err := m.Predict(vectors)
	if err != nil {
		return Evaluation{}, err
	}

	var absSum, sqSum float64
	for i := range preds {
		d := preds[i] - targets[i]
		absSum += math.Abs(d)
		sqSum += d * d
	}
	n := float64(len(test))
	ev := Evaluation{
		Samples: len(test),
		MAE:     absSum / n,
		MSE:     sqSum / n,
	}
	ev.RMSE = math.Sqrt(ev.MSE)
	if len(test) > 1 && stat.Variance(targets, nil) > 0 {
		ev.R2 = stat.RSquaredFrom(preds, targets, nil)
	}
	return ev, nil
}
