package analysis

import (
	"sort"

	"github.com/Reyd900/FeelSync/internal/models"
)

// GenerateInsights produces the ordered list of human-readable findings for a
// session. Emission order is fixed because downstream display takes a prefix
// of this list.
func GenerateInsights(scores *models.IndicatorScores, metrics *models.DetailedMetrics) []string {
	insights := []string{}

	// Anxiety.
	if scores.AnxietyScore > 70 {
		insights = append(insights, "High anxiety patterns detected in gameplay behavior")
		if metrics.HesitationFrequency > 0.3 {
			insights = append(insights, "Frequent hesitation suggests decision-making anxiety")
		}
	} else if scores.AnxietyScore > 40 {
		insights = append(insights, "Moderate anxiety indicators present")
	}

	// Depression.
	if scores.DepressionScore > 70 {
		insights = append(insights, "Behavioral patterns consistent with depressive tendencies")
		if metrics.ReactionTimeMean > 1200 {
			insights = append(insights, "Slower reaction times may indicate reduced engagement")
		}
	} else if scores.DepressionScore > 40 {
		insights = append(insights, "Some indicators of low mood or motivation")
	}

	// Attention, inverted: low scores are the concern.
	if scores.AttentionScore < 30 {
		insights = append(insights, "Significant attention difficulties observed")
		if metrics.AttentionLapseFrequency > 0.2 {
			insights = append(insights, "Frequent attention lapses detected during gameplay")
		}
	} else if scores.AttentionScore < 60 {
		insights = append(insights, "Moderate attention challenges present")
	}

	// Cluster strengths.
	switch scores.PredictedCluster {
	case models.ClusterFastAccurate:
		insights = append(insights,
			"Shows quick decision-making with high accuracy",
			"Demonstrates good cognitive processing speed")
	case models.ClusterSlowConsistent:
		insights = append(insights,
			"Thoughtful, deliberate approach to decision-making",
			"Prioritizes accuracy over speed")
	case models.ClusterErratic:
		insights = append(insights,
			"Variable performance patterns observed",
			"May benefit from strategies to improve consistency")
	}

	if metrics.ImpulsivityScore > 70 {
		insights = append(insights,
			"High impulsivity indicators in gameplay",
			"Tendency toward quick decisions without full consideration")
	}

	if metrics.EmotionalBiasScore < -0.4 {
		insights = append(insights,
			"Strong bias toward negative emotional choices",
			"May indicate current negative mood state")
	} else if metrics.EmotionalBiasScore > 0.4 {
		insights = append(insights,
			"Positive emotional choice bias observed",
			"Generally optimistic response patterns")
	}

	if metrics.EmotionalRegulationScore < 40 {
		insights = append(insights,
			"Challenges with emotional regulation detected",
			"Emotional responses show high variability")
	}

	if metrics.Accuracy > 0.8 {
		insights = append(insights, "Excellent accuracy demonstrates good focus")
	} else if metrics.Accuracy < 0.5 {
		insights = append(insights, "Low accuracy may indicate attention or processing difficulties")
	}

	if metrics.ReactionConsistency > 0.7 {
		insights = append(insights, "Consistent reaction times indicate stable attention")
	} else if metrics.ReactionConsistency < 0.3 {
		insights = append(insights, "Highly variable reaction times suggest attention fluctuations")
	}

	if metrics.StressIndicators > 60 {
		insights = append(insights,
			"Multiple stress indicators present in behavior",
			"Consider stress management techniques")
	}

	// Positive framing comes last.
	if scores.AnxietyScore < 30 && scores.DepressionScore < 30 {
		insights = append(insights, "Overall positive mental health indicators")
	}

	if metrics.SustainedAttentionConsistency > 0.8 {
		insights = append(insights, "Strong sustained attention capabilities")
	}

	return insights
}

// AssessRisk accumulates risk factors across indicators and classifies the
// overall level. Attention is inverted: low attention adds risk.
func AssessRisk(scores *models.IndicatorScores, metrics *models.DetailedMetrics) models.RiskAssessment {
	riskFactors := 0

	switch {
	case scores.AnxietyScore > 80:
		riskFactors += 3
	case scores.AnxietyScore > 60:
		riskFactors += 2
	case scores.AnxietyScore > 40:
		riskFactors++
	}

	switch {
	case scores.DepressionScore > 80:
		riskFactors += 3
	case scores.DepressionScore > 60:
		riskFactors += 2
	case scores.DepressionScore > 40:
		riskFactors++
	}

	switch {
	case scores.AttentionScore < 20:
		riskFactors += 3
	case scores.AttentionScore < 40:
		riskFactors += 2
	case scores.AttentionScore < 60:
		riskFactors++
	}

	if metrics.ImpulsivityScore > 80 {
		riskFactors += 2
	}
	if metrics.EmotionalRegulationScore < 30 {
		riskFactors += 2
	}
	if metrics.StressIndicators > 80 {
		riskFactors += 2
	}
	if metrics.EmotionalBiasScore < -0.6 {
		riskFactors++
	}

	var level models.RiskLevel
	switch {
	case riskFactors >= 6:
		level = models.RiskHigh
	case riskFactors >= 3:
		level = models.RiskMedium
	default:
		level = models.RiskLow
	}

	return models.RiskAssessment{
		Level:             level,
		RiskFactors:       riskFactors,
		RequiresAttention: level != models.RiskLow,
		PrimaryConcerns:   primaryConcerns(scores, metrics),
	}
}

// primaryConcerns ranks concern dimensions by severity, keeps those above 60
// and caps the list at three. Attention and regulation are inverted so larger
// always means worse.
func primaryConcerns(scores *models.IndicatorScores, metrics *models.DetailedMetrics) []models.Concern {
	type ranked struct {
		concern models.Concern
		value   float64
	}
	candidates := []ranked{
		{models.ConcernAnxiety, scores.AnxietyScore},
		{models.ConcernDepression, scores.DepressionScore},
		{models.ConcernAttentionDeficit, 100 - scores.AttentionScore},
		{models.ConcernImpulsivity, metrics.ImpulsivityScore},
		{models.ConcernEmotionalDysregulation, 100 - metrics.EmotionalRegulationScore},
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].value > candidates[j].value
	})

	concerns := []models.Concern{}
	for _, c := range candidates {
		if c.value > 60 {
			concerns = append(concerns, c.concern)
		}
		if len(concerns) == 3 {
			break
		}
	}
	return concerns
}

// GenerateRecommendations builds the prioritized recommendation list: an
// urgency entry for elevated risk, concern-specific entries in rank order,
// then two always-present wellness entries.
func GenerateRecommendations(risk *models.RiskAssessment) []models.Recommendation {
	recommendations := []models.Recommendation{}

	switch risk.Level {
	case models.RiskHigh:
		recommendations = append(recommendations, models.Recommendation{
			Category: "professional_help",
			Priority: "high",
			Text:     "Consider speaking with a mental health professional for comprehensive assessment",
			Type:     "urgent",
		})
	case models.RiskMedium:
		recommendations = append(recommendations, models.Recommendation{
			Category: "monitoring",
			Priority: "medium",
			Text:     "Continue monitoring symptoms and consider professional consultation if patterns persist",
			Type:     "advisory",
		})
	}

	for _, concern := range risk.PrimaryConcerns {
		switch concern {
		case models.ConcernAnxiety:
			recommendations = append(recommendations,
				models.Recommendation{
					Category: "self_care",
					Priority: "medium",
					Text:     "Practice relaxation techniques like deep breathing or mindfulness",
					Type:     "self_help",
				},
				models.Recommendation{
					Category: "lifestyle",
					Priority: "medium",
					Text:     "Consider regular exercise and consistent sleep schedule",
					Type:     "lifestyle",
				})
		case models.ConcernDepression:
			recommendations = append(recommendations,
				models.Recommendation{
					Category: "social",
					Priority: "medium",
					Text:     "Maintain social connections and engage in enjoyable activities",
					Type:     "lifestyle",
				},
				models.Recommendation{
					Category: "professional_help",
					Priority: "medium",
					Text:     "Consider counseling or therapy for mood support",
					Type:     "advisory",
				})
		case models.ConcernAttentionDeficit:
			recommendations = append(recommendations,
				models.Recommendation{
					Category: "cognitive",
					Priority: "medium",
					Text:     "Break tasks into smaller chunks and minimize distractions",
					Type:     "self_help",
				},
				models.Recommendation{
					Category: "evaluation",
					Priority: "medium",
					Text:     "Consider evaluation for attention-related disorders if difficulties persist",
					Type:     "advisory",
				})
		case models.ConcernImpulsivity:
			recommendations = append(recommendations, models.Recommendation{
				Category: "behavioral",
				Priority: "medium",
				Text:     "Practice pause-and-think strategies before making decisions",
				Type:     "self_help",
			})
		case models.ConcernEmotionalDysregulation:
			recommendations = append(recommendations, models.Recommendation{
				Category: "emotional",
				Priority: "medium",
				Text:     "Learn emotion regulation techniques like cognitive reframing",
				Type:     "self_help",
			})
		}
	}

	recommendations = append(recommendations,
		models.Recommendation{
			Category: "wellness",
			Priority: "low",
			Text:     "Maintain regular sleep, exercise, and healthy eating habits",
			Type:     "lifestyle",
		},
		models.Recommendation{
			Category: "monitoring",
			Priority: "low",
			Text:     "Continue periodic self-assessment through FeelSync games",
			Type:     "platform",
		})

	return recommendations
}

// normRange is the normal band for one metric within an age group.
type normRange struct {
	min, max float64
}

var adolescentNorms = map[string]normRange{
	"reaction_time_mean":   {600, 1200},
	"accuracy":             {0.6, 0.9},
	"hesitation_frequency": {0.1, 0.4},
	"emotional_bias_score": {-0.2, 0.3},
}

// CompareWithNorms classifies selected metrics against normative ranges for
// the given age group. Unknown age groups use the adolescent norms.
func CompareWithNorms(metrics *models.DetailedMetrics, ageGroup string) models.NormativeComparison {
	norms := adolescentNorms // only adolescent norms are published so far

	band := func(key string, value float64) models.NormBand {
		r := norms[key]
		switch {
		case value < r.min:
			return models.NormBelowAverage
		case value > r.max:
			return models.NormAboveAverage
		default:
			return models.NormAverage
		}
	}

	return models.NormativeComparison{
		ReactionTimeMean:    band("reaction_time_mean", metrics.ReactionTimeMean),
		Accuracy:            band("accuracy", metrics.Accuracy),
		HesitationFrequency: band("hesitation_frequency", metrics.HesitationFrequency),
		EmotionalBiasScore:  band("emotional_bias_score", metrics.EmotionalBiasScore),
	}
}
