package analysis

import (
	"math"

	"github.com/Reyd900/FeelSync/internal/models"
)

// ScoreIndicators maps a feature vector and its detailed metrics to the
// bounded indicator scores. Anxiety, depression, attention and the cluster
// each use their fitted model when the set carries one and fall back to the
// rule-based formula otherwise; callers cannot tell which strategy produced a
// given score. Impulsivity, emotional regulation and confidence always come
// straight from the extractor's metrics.
func ScoreIndicators(set *ModelSet, features FeatureVector, metrics *models.DetailedMetrics) models.IndicatorScores {
	if set == nil {
		set = &ModelSet{}
	}

	scores := models.IndicatorScores{
		ImpulsivityScore:         round2(metrics.ImpulsivityScore),
		EmotionalRegulationScore: round2(metrics.EmotionalRegulationScore),
		ConfidenceScore:          metrics.ConfidenceScore,
	}

	if set.Anxiety != nil {
		scores.AnxietyScore = round2(set.Anxiety.Score(features))
	} else {
		scores.AnxietyScore = round2(ruleBasedAnxiety(features))
	}

	if set.Depression != nil {
		scores.DepressionScore = round2(set.Depression.Score(features))
	} else {
		scores.DepressionScore = round2(ruleBasedDepression(features))
	}

	if set.Attention != nil {
		scores.AttentionScore = round2(set.Attention.Score(features))
	} else {
		scores.AttentionScore = round2(ruleBasedAttention(features))
	}

	if set.Cluster != nil {
		scores.PredictedCluster = set.Cluster.Predict(features)
	} else {
		scores.PredictedCluster = ruleBasedCluster(features)
	}

	return scores
}

// ruleBasedAnxiety scores anxiety from variance, hesitation, accuracy,
// emotional bias and stress markers.
func ruleBasedAnxiety(f FeatureVector) float64 {
	score := 0.0

	// High reaction time variance suggests anxiety.
	if f[featReactionTimeStd] > 500 {
		score += 30
	}

	score += math.Min(f[featHesitationCount]*5, 25)

	// Low accuracy from overthinking.
	if f[featAccuracy] < 0.7 {
		score += 20
	}

	// Lean toward negative choices.
	if f[featEmotionalBias] > 0.2 {
		score += 15
	}

	score += f[featStressMarkers] * 30

	return math.Min(score, 100)
}

// ruleBasedDepression scores depression from slowed responses, attention
// lapses, negative bias, inconsistency and slow decisions.
func ruleBasedDepression(f FeatureVector) float64 {
	score := 0.0

	if f[featReactionTimeAvg] > 1000 {
		score += 25
	}

	score += f[featAttentionLapses] * 40

	if f[featEmotionalBias] > 0.3 {
		score += 30
	}

	// Low consistency reads as lack of engagement.
	if f[featConsistency] < 0.5 {
		score += 20
	}

	if f[featDecisionTimeAvg] > 2000 {
		score += 15
	}

	return math.Min(score, 100)
}

// ruleBasedAttention starts from a perfect score and subtracts for
// impulsivity, lapses, variance, errors and inconsistency.
func ruleBasedAttention(f FeatureVector) float64 {
	score := 100.0

	score -= f[featImpulsivity] * 40
	score -= f[featAttentionLapses] * 50

	if f[featReactionTimeStd] > 600 {
		score -= 30
	}

	score -= f[featErrorRate] * 40
	score -= (1 - f[featConsistency]) * 20

	return clamp(score, 0, 100)
}

// ruleBasedCluster assigns the behavioral cluster from speed, accuracy and
// consistency thresholds. Ambiguous profiles fall through to erratic.
func ruleBasedCluster(f FeatureVector) models.Cluster {
	switch {
	case f[featReactionTimeAvg] < 800 && f[featAccuracy] > 0.8 && f[featErrorRate] < 0.2:
		return models.ClusterFastAccurate
	case f[featReactionTimeAvg] > 1200 && f[featConsistency] > 0.7 && f[featErrorRate] < 0.3:
		return models.ClusterSlowConsistent
	default:
		return models.ClusterErratic
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
