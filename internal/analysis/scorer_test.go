package analysis

import (
	"testing"

	"github.com/Reyd900/FeelSync/internal/models"
)

func TestRuleBasedAnxiety(t *testing.T) {
	var f FeatureVector
	f[featReactionTimeStd] = 900
	f[featHesitationCount] = 3
	f[featAccuracy] = 0.5
	f[featEmotionalBias] = 0.5
	f[featStressMarkers] = 1.0

	// 30 + 15 + 20 + 15 + 30 = 110, capped.
	approx(t, "anxiety", ruleBasedAnxiety(f), 100)

	var calm FeatureVector
	calm[featAccuracy] = 0.95
	approx(t, "calm anxiety", ruleBasedAnxiety(calm), 0)
}

func TestRuleBasedAnxiety_HesitationCapped(t *testing.T) {
	var f FeatureVector
	f[featAccuracy] = 0.9
	f[featHesitationCount] = 20
	approx(t, "anxiety", ruleBasedAnxiety(f), 25)
}

func TestRuleBasedDepression(t *testing.T) {
	var f FeatureVector
	f[featReactionTimeAvg] = 1500
	f[featAttentionLapses] = 0.5
	f[featEmotionalBias] = 0.4
	f[featConsistency] = 0.3
	f[featDecisionTimeAvg] = 2500

	// 25 + 20 + 30 + 20 + 15 = 110, capped.
	approx(t, "depression", ruleBasedDepression(f), 100)

	var engaged FeatureVector
	engaged[featReactionTimeAvg] = 600
	engaged[featConsistency] = 0.8
	approx(t, "engaged depression", ruleBasedDepression(engaged), 0)
}

func TestRuleBasedAttention_ClampsToZero(t *testing.T) {
	var f FeatureVector
	f[featImpulsivity] = 1
	f[featAttentionLapses] = 1
	f[featReactionTimeStd] = 700
	f[featErrorRate] = 1
	f[featConsistency] = 0

	approx(t, "attention", ruleBasedAttention(f), 0)
}

func TestRuleBasedAttention_Perfect(t *testing.T) {
	var f FeatureVector
	f[featConsistency] = 1
	approx(t, "attention", ruleBasedAttention(f), 100)
}

func TestRuleBasedCluster(t *testing.T) {
	cases := []struct {
		name                     string
		rtAvg, acc, err, consist float64
		want                     models.Cluster
	}{
		{"fast accurate", 799, 0.81, 0.19, 0.5, models.ClusterFastAccurate},
		{"threshold speed falls out", 800, 0.81, 0.19, 0.5, models.ClusterErratic},
		{"slow consistent", 1300, 0.75, 0.25, 0.8, models.ClusterSlowConsistent},
		{"slow inconsistent", 1300, 0.75, 0.25, 0.6, models.ClusterErratic},
		{"midrange", 1000, 0.9, 0.1, 0.9, models.ClusterErratic},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f FeatureVector
			f[featReactionTimeAvg] = tc.rtAvg
			f[featAccuracy] = tc.acc
			f[featErrorRate] = tc.err
			f[featConsistency] = tc.consist
			if got := ruleBasedCluster(f); got != tc.want {
				t.Errorf("cluster = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestScoreIndicators_FallsBackWithoutModels(t *testing.T) {
	var f FeatureVector
	f[featReactionTimeStd] = 900
	f[featStressMarkers] = 1
	metrics := &models.DetailedMetrics{
		ImpulsivityScore:         33.333,
		EmotionalRegulationScore: 66.666,
		ConfidenceScore:          0.5,
	}

	scores := ScoreIndicators(nil, f, metrics)

	approx(t, "anxiety", scores.AnxietyScore, ruleBasedAnxiety(f))
	approx(t, "impulsivity", scores.ImpulsivityScore, 33.33)
	approx(t, "regulation", scores.EmotionalRegulationScore, 66.67)
	approx(t, "confidence", scores.ConfidenceScore, 0.5)
	if scores.PredictedCluster == "" {
		t.Error("cluster must always be assigned")
	}
}

func TestScoreIndicators_UsesTrainedModels(t *testing.T) {
	identity := identityScaler()
	set := &ModelSet{
		Anxiety:    &IndicatorModel{Model: constantModel(42), Scaler: identity},
		Depression: &IndicatorModel{Model: constantModel(150), Scaler: identity},
		Attention:  &IndicatorModel{Model: constantModel(-7), Scaler: identity},
	}

	var f FeatureVector
	scores := ScoreIndicators(set, f, &models.DetailedMetrics{})

	approx(t, "anxiety", scores.AnxietyScore, 42)
	approx(t, "depression clamp high", scores.DepressionScore, 100)
	approx(t, "attention clamp low", scores.AttentionScore, 0)
	// No cluster model: rule fallback still fires.
	if scores.PredictedCluster != ruleBasedCluster(f) {
		t.Errorf("cluster = %q, want rule fallback %q", scores.PredictedCluster, ruleBasedCluster(f))
	}
}

// identityScaler passes features through unchanged: zero means, and zero
// scales are treated as 1 by Transform.
func identityScaler() StandardScaler {
	return StandardScaler{
		Means:  make([]float64, NumFeatures),
		Scales: make([]float64, NumFeatures),
	}
}

func constantModel(intercept float64) LinearModel {
	return LinearModel{Intercept: intercept}
}
