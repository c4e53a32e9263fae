package analysis

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/Reyd900/FeelSync/internal/models"
)

// MinTrainingExamples is the smallest labeled set worth fitting models on.
// Below it the rule-based fallbacks stay in place.
const MinTrainingExamples = 10

// ErrInsufficientTrainingData is returned when too few labeled examples exist.
var ErrInsufficientTrainingData = errors.New("insufficient training data")

// TrainingExample is one labeled session: its extracted feature vector plus
// clinician-assigned indicator targets.
type TrainingExample struct {
	Features   FeatureVector
	Anxiety    float64
	Depression float64
	Attention  float64
	Cluster    models.Cluster
}

// TrainModelSet fits a scaler and linear model per regression indicator and a
// nearest-centroid cluster model from labeled examples. Indicators whose
// targets carry no variance are skipped and keep their rule-based fallback,
// as is the cluster model when any cluster label has no examples.
func TrainModelSet(examples []TrainingExample) (*ModelSet, error) {
	if len(examples) < MinTrainingExamples {
		return nil, ErrInsufficientTrainingData
	}

	scaler := fitScaler(examples)
	scaled := make([][]float64, len(examples))
	for i, ex := range examples {
		scaled[i] = scaler.Transform(ex.Features)
	}

	set := &ModelSet{}

	targets := []struct {
		pick func(*TrainingExample) float64
		dst  **IndicatorModel
	}{
		{func(e *TrainingExample) float64 { return e.Anxiety }, &set.Anxiety},
		{func(e *TrainingExample) float64 { return e.Depression }, &set.Depression},
		{func(e *TrainingExample) float64 { return e.Attention }, &set.Attention},
	}

	for _, t := range targets {
		y := make([]float64, len(examples))
		for i := range examples {
			y[i] = t.pick(&examples[i])
		}
		if stat.PopVariance(y, nil) == 0 {
			continue
		}
		model, err := fitLeastSquares(scaled, y)
		if err != nil {
			return nil, err
		}
		*t.dst = &IndicatorModel{Model: *model, Scaler: scaler}
	}

	if cluster := fitClusterCentroids(scaled, examples); cluster != nil {
		cluster.Scaler = scaler
		set.Cluster = cluster
	}

	return set, nil
}

func fitScaler(examples []TrainingExample) StandardScaler {
	scaler := StandardScaler{
		Means:  make([]float64, NumFeatures),
		Scales: make([]float64, NumFeatures),
	}
	column := make([]float64, len(examples))
	for j := 0; j < NumFeatures; j++ {
		for i := range examples {
			column[i] = examples[i].Features[j]
		}
		scaler.Means[j] = stat.Mean(column, nil)
		scaler.Scales[j] = stat.PopStdDev(column, nil)
	}
	return scaler
}

// fitLeastSquares solves ridge-stabilized normal equations for weights plus
// intercept. The tiny ridge term keeps the system positive definite when a
// scaled feature column is constant.
func fitLeastSquares(scaled [][]float64, y []float64) (*LinearModel, error) {
	const ridge = 1e-6

	n := len(scaled)
	p := NumFeatures + 1 // intercept column last

	design := mat.NewDense(n, p, nil)
	for i, row := range scaled {
		for j, v := range row {
			design.Set(i, j, v)
		}
		design.Set(i, NumFeatures, 1)
	}

	var ata mat.Dense
	ata.Mul(design.T(), design)
	for j := 0; j < p; j++ {
		ata.Set(j, j, ata.At(j, j)+ridge)
	}

	var atb mat.VecDense
	atb.MulVec(design.T(), mat.NewVecDense(n, y))

	sym := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			sym.SetSym(i, j, ata.At(i, j))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, errors.New("least squares fit failed: normal equations not positive definite")
	}

	var w mat.VecDense
	if err := chol.SolveVecTo(&w, &atb); err != nil {
		return nil, err
	}

	weights := make([]float64, NumFeatures)
	for j := 0; j < NumFeatures; j++ {
		weights[j] = w.AtVec(j)
	}
	return &LinearModel{Weights: weights, Intercept: w.AtVec(NumFeatures)}, nil
}

func fitClusterCentroids(scaled [][]float64, examples []TrainingExample) *ClusterModel {
	centroids := make([][]float64, len(clusterNames))
	counts := make([]int, len(clusterNames))
	for i := range centroids {
		centroids[i] = make([]float64, NumFeatures)
	}

	index := map[models.Cluster]int{
		models.ClusterFastAccurate:   0,
		models.ClusterSlowConsistent: 1,
		models.ClusterErratic:        2,
	}

	for i, ex := range examples {
		k, ok := index[ex.Cluster]
		if !ok {
			continue
		}
		for j, v := range scaled[i] {
			centroids[k][j] += v
		}
		counts[k]++
	}

	for k := range centroids {
		if counts[k] == 0 {
			return nil
		}
		for j := range centroids[k] {
			centroids[k][j] /= float64(counts[k])
		}
	}

	return &ClusterModel{Centroids: centroids}
}
