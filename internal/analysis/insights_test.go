package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Reyd900/FeelSync/internal/models"
)

func TestGenerateInsights_HighAnxietyOrdering(t *testing.T) {
	scores := &models.IndicatorScores{
		AnxietyScore:     85,
		DepressionScore:  10,
		AttentionScore:   90,
		PredictedCluster: models.ClusterErratic,
	}
	metrics := &models.DetailedMetrics{
		HesitationFrequency:      0.5,
		Accuracy:                 0.6,
		ReactionConsistency:      0.5,
		EmotionalRegulationScore: 80,
	}

	insights := GenerateInsights(scores, metrics)

	assert.Equal(t, "High anxiety patterns detected in gameplay behavior", insights[0])
	assert.Equal(t, "Frequent hesitation suggests decision-making anxiety", insights[1])
	assert.Contains(t, insights, "Variable performance patterns observed")
	assert.Contains(t, insights, "May benefit from strategies to improve consistency")
	assert.NotContains(t, insights, "Overall positive mental health indicators")
}

func TestGenerateInsights_PositiveProfile(t *testing.T) {
	scores := &models.IndicatorScores{
		AnxietyScore:     10,
		DepressionScore:  5,
		AttentionScore:   85,
		PredictedCluster: models.ClusterFastAccurate,
	}
	metrics := &models.DetailedMetrics{
		Accuracy:                      0.92,
		ReactionConsistency:           0.85,
		EmotionalRegulationScore:      90,
		SustainedAttentionConsistency: 0.9,
	}

	insights := GenerateInsights(scores, metrics)

	assert.Equal(t, "Shows quick decision-making with high accuracy", insights[0])
	// Positive framing stays at the tail.
	assert.Equal(t, "Strong sustained attention capabilities", insights[len(insights)-1])
	assert.Equal(t, "Overall positive mental health indicators", insights[len(insights)-2])
}

func TestGenerateInsights_NeutralSessionIsQuiet(t *testing.T) {
	scores := &models.IndicatorScores{
		AnxietyScore:     35,
		DepressionScore:  35,
		AttentionScore:   70,
		PredictedCluster: models.ClusterSlowConsistent,
	}
	metrics := &models.DetailedMetrics{
		Accuracy:                 0.7,
		ReactionConsistency:      0.5,
		EmotionalRegulationScore: 70,
	}

	insights := GenerateInsights(scores, metrics)

	// Only the cluster descriptions fire for a midrange profile.
	assert.Equal(t, []string{
		"Thoughtful, deliberate approach to decision-making",
		"Prioritizes accuracy over speed",
	}, insights)
}

func TestAssessRisk_Levels(t *testing.T) {
	neutral := &models.DetailedMetrics{
		EmotionalRegulationScore: 100,
	}

	cases := []struct {
		name        string
		scores      models.IndicatorScores
		wantFactors int
		wantLevel   models.RiskLevel
	}{
		{
			name:        "two elevated indicators reach high",
			scores:      models.IndicatorScores{AnxietyScore: 85, DepressionScore: 85, AttentionScore: 100},
			wantFactors: 6,
			wantLevel:   models.RiskHigh,
		},
		{
			name:        "one severe indicator is medium",
			scores:      models.IndicatorScores{AnxietyScore: 85, AttentionScore: 100},
			wantFactors: 3,
			wantLevel:   models.RiskMedium,
		},
		{
			name:        "one moderate indicator stays low",
			scores:      models.IndicatorScores{AnxietyScore: 65, AttentionScore: 100},
			wantFactors: 2,
			wantLevel:   models.RiskLow,
		},
		{
			name:        "calm profile",
			scores:      models.IndicatorScores{AnxietyScore: 10, DepressionScore: 10, AttentionScore: 90},
			wantFactors: 0,
			wantLevel:   models.RiskLow,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			risk := AssessRisk(&tc.scores, neutral)
			assert.Equal(t, tc.wantFactors, risk.RiskFactors)
			assert.Equal(t, tc.wantLevel, risk.Level)
			assert.Equal(t, tc.wantLevel != models.RiskLow, risk.RequiresAttention)
		})
	}
}

func TestAssessRisk_MetricFactors(t *testing.T) {
	scores := &models.IndicatorScores{AttentionScore: 100}
	metrics := &models.DetailedMetrics{
		ImpulsivityScore:         85, // +2
		EmotionalRegulationScore: 20, // +2
		StressIndicators:         90, // +2
		EmotionalBiasScore:       -0.7,
	}

	risk := AssessRisk(scores, metrics)
	assert.Equal(t, 7, risk.RiskFactors)
	assert.Equal(t, models.RiskHigh, risk.Level)
}

func TestPrimaryConcerns_RankedAndCapped(t *testing.T) {
	scores := &models.IndicatorScores{
		AnxietyScore:    90,
		DepressionScore: 50,
		AttentionScore:  80, // deficit 20, below the bar
	}
	metrics := &models.DetailedMetrics{
		ImpulsivityScore:         65,
		EmotionalRegulationScore: 90, // dysregulation 10, below the bar
	}

	risk := AssessRisk(scores, metrics)
	assert.Equal(t, []models.Concern{models.ConcernAnxiety, models.ConcernImpulsivity}, risk.PrimaryConcerns)
}

func TestPrimaryConcerns_CapsAtThree(t *testing.T) {
	scores := &models.IndicatorScores{
		AnxietyScore:    95,
		DepressionScore: 90,
		AttentionScore:  10, // deficit 90
	}
	metrics := &models.DetailedMetrics{
		ImpulsivityScore:         85,
		EmotionalRegulationScore: 5, // dysregulation 95
	}

	risk := AssessRisk(scores, metrics)
	assert.Len(t, risk.PrimaryConcerns, 3)
	assert.Equal(t, models.ConcernAnxiety, risk.PrimaryConcerns[0])
}

func TestGenerateRecommendations(t *testing.T) {
	t.Run("high risk leads with urgent entry", func(t *testing.T) {
		risk := &models.RiskAssessment{
			Level:           models.RiskHigh,
			PrimaryConcerns: []models.Concern{models.ConcernAnxiety},
		}

		recs := GenerateRecommendations(risk)

		assert.Equal(t, "urgent", recs[0].Type)
		assert.Equal(t, "professional_help", recs[0].Category)
		// Anxiety contributes two entries after the urgency entry.
		assert.Equal(t, "self_care", recs[1].Category)
		assert.Equal(t, "lifestyle", recs[2].Category)
	})

	t.Run("medium risk leads with advisory entry", func(t *testing.T) {
		risk := &models.RiskAssessment{Level: models.RiskMedium}
		recs := GenerateRecommendations(risk)
		assert.Equal(t, "advisory", recs[0].Type)
	})

	t.Run("wellness entries always close the list", func(t *testing.T) {
		for _, level := range []models.RiskLevel{models.RiskLow, models.RiskMedium, models.RiskHigh} {
			recs := GenerateRecommendations(&models.RiskAssessment{Level: level})
			n := len(recs)
			assert.Equal(t, "Maintain regular sleep, exercise, and healthy eating habits", recs[n-2].Text)
			assert.Equal(t, "Continue periodic self-assessment through FeelSync games", recs[n-1].Text)
		}
	})

	t.Run("low risk with no concerns is wellness only", func(t *testing.T) {
		recs := GenerateRecommendations(&models.RiskAssessment{Level: models.RiskLow})
		assert.Len(t, recs, 2)
	})
}

func TestCompareWithNorms(t *testing.T) {
	metrics := &models.DetailedMetrics{
		ReactionTimeMean:    1500, // above 1200
		Accuracy:            0.5,  // below 0.6
		HesitationFrequency: 0.2,  // inside band
		EmotionalBiasScore:  -0.5, // below -0.2
	}

	cmp := CompareWithNorms(metrics, "adolescent")

	assert.Equal(t, models.NormAboveAverage, cmp.ReactionTimeMean)
	assert.Equal(t, models.NormBelowAverage, cmp.Accuracy)
	assert.Equal(t, models.NormAverage, cmp.HesitationFrequency)
	assert.Equal(t, models.NormBelowAverage, cmp.EmotionalBiasScore)
}
