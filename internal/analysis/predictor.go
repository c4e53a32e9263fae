package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/Reyd900/FeelSync/internal/models"
)

// StandardScaler centers and scales feature vectors the way the fitted model
// expects. A zero scale is treated as 1 so constant features pass through.
type StandardScaler struct {
	Means  []float64 `json:"means"`
	Scales []float64 `json:"scales"`
}

// Transform returns the scaled copy of a feature vector.
func (s *StandardScaler) Transform(f FeatureVector) []float64 {
	scaled := make([]float64, NumFeatures)
	for i := range scaled {
		scale := s.Scales[i]
		if scale == 0 {
			scale = 1
		}
		scaled[i] = (f[i] - s.Means[i]) / scale
	}
	return scaled
}

// LinearModel predicts a score as a weighted sum over scaled features.
type LinearModel struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

// Predict implements the predict(feature_vector) -> float contract.
func (m *LinearModel) Predict(scaled []float64) float64 {
	sum := m.Intercept
	for i, w := range m.Weights {
		sum += w * scaled[i]
	}
	return sum
}

// IndicatorModel is one fitted model plus the scaler it was trained with.
type IndicatorModel struct {
	Model  LinearModel    `json:"model"`
	Scaler StandardScaler `json:"scaler"`
}

// Score scales the feature vector and predicts, clamped to [0,100].
func (im *IndicatorModel) Score(f FeatureVector) float64 {
	return clamp(im.Model.Predict(im.Scaler.Transform(f)), 0, 100)
}

// ClusterModel assigns the behavioral cluster by nearest centroid in scaled
// feature space. Centroid order is fixed: fast_accurate, slow_consistent,
// erratic.
type ClusterModel struct {
	Centroids [][]float64    `json:"centroids"`
	Scaler    StandardScaler `json:"scaler"`
}

var clusterNames = [...]models.Cluster{
	models.ClusterFastAccurate,
	models.ClusterSlowConsistent,
	models.ClusterErratic,
}

// Predict returns the cluster whose centroid is closest to the scaled vector.
func (cm *ClusterModel) Predict(f FeatureVector) models.Cluster {
	scaled := cm.Scaler.Transform(f)
	best := 0
	bestDist := math.Inf(1)
	for i, centroid := range cm.Centroids {
		var dist float64
		for j, c := range centroid {
			d := scaled[j] - c
			dist += d * d
		}
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	if best >= len(clusterNames) {
		return models.ClusterErratic
	}
	return clusterNames[best]
}

// ModelSet holds the fitted models available to the scorer. A nil entry means
// no model was trained for that indicator and the rule-based fallback applies.
// A ModelSet is immutable after construction; retraining swaps in a whole new
// set rather than mutating this one.
type ModelSet struct {
	Anxiety    *IndicatorModel
	Depression *IndicatorModel
	Attention  *IndicatorModel
	Cluster    *ClusterModel
}

// indicatorFile is the stored form of one indicator entry: a regression model
// or cluster centroids, with the fitted scaler.
type indicatorFile struct {
	Model     *LinearModel   `json:"model,omitempty"`
	Centroids [][]float64    `json:"centroids,omitempty"`
	Scaler    StandardScaler `json:"scaler"`
}

// validate rejects files whose arrays do not match the feature vector layout,
// before a truncated or hand-edited file can panic the scorer.
func (f *indicatorFile) validate() error {
	if len(f.Scaler.Means) != NumFeatures || len(f.Scaler.Scales) != NumFeatures {
		return fmt.Errorf("scaler has %d/%d parameters, want %d",
			len(f.Scaler.Means), len(f.Scaler.Scales), NumFeatures)
	}
	if f.Model != nil && len(f.Model.Weights) != NumFeatures {
		return fmt.Errorf("model has %d weights, want %d", len(f.Model.Weights), NumFeatures)
	}
	for i, centroid := range f.Centroids {
		if len(centroid) != NumFeatures {
			return fmt.Errorf("centroid %d has %d coordinates, want %d", i, len(centroid), NumFeatures)
		}
	}
	return nil
}

var regressionIndicators = []string{"anxiety", "depression", "attention"}

// LoadModelSet reads fitted models from dir, one JSON document per indicator.
// A missing file is not an error; that indicator simply keeps its rule-based
// fallback. A missing directory yields an empty set.
func LoadModelSet(dir string) (*ModelSet, error) {
	set := &ModelSet{}

	for _, name := range regressionIndicators {
		file, err := readIndicatorFile(filepath.Join(dir, name+".json"))
		if err != nil {
			return nil, err
		}
		if file == nil || file.Model == nil {
			continue
		}
		if err := file.validate(); err != nil {
			return nil, fmt.Errorf("invalid %s model file: %w", name, err)
		}
		model := &IndicatorModel{Model: *file.Model, Scaler: file.Scaler}
		switch name {
		case "anxiety":
			set.Anxiety = model
		case "depression":
			set.Depression = model
		case "attention":
			set.Attention = model
		}
	}

	file, err := readIndicatorFile(filepath.Join(dir, "cluster.json"))
	if err != nil {
		return nil, err
	}
	if file != nil && len(file.Centroids) > 0 {
		if err := file.validate(); err != nil {
			return nil, fmt.Errorf("invalid cluster model file: %w", err)
		}
		set.Cluster = &ClusterModel{Centroids: file.Centroids, Scaler: file.Scaler}
	}

	return set, nil
}

func readIndicatorFile(path string) (*indicatorFile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}

	var file indicatorFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model file %s: %w", path, err)
	}
	return &file, nil
}

// Save writes every fitted model in the set to dir, one JSON document per
// indicator, creating the directory if needed.
func (s *ModelSet) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create model directory: %w", err)
	}

	write := func(name string, file indicatorFile) error {
		data, err := json.MarshalIndent(file, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal %s model: %w", name, err)
		}
		path := filepath.Join(dir, name+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s model: %w", name, err)
		}
		return nil
	}

	for name, model := range map[string]*IndicatorModel{
		"anxiety":    s.Anxiety,
		"depression": s.Depression,
		"attention":  s.Attention,
	} {
		if model == nil {
			continue
		}
		if err := write(name, indicatorFile{Model: &model.Model, Scaler: model.Scaler}); err != nil {
			return err
		}
	}

	if s.Cluster != nil {
		if err := write("cluster", indicatorFile{Centroids: s.Cluster.Centroids, Scaler: s.Cluster.Scaler}); err != nil {
			return err
		}
	}

	return nil
}
