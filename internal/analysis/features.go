package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Reyd900/FeelSync/internal/models"
)

// Feature vector layout. The order is fixed: trained models and the rule-based
// fallbacks both address features by these indices.
const (
	featReactionTimeAvg = iota
	featReactionTimeStd
	featAccuracy
	featHesitationCount
	featErrorRate
	featDecisionTimeAvg
	featEmotionalBias
	featConsistency
	featImpulsivity
	featAttentionLapses
	featStressMarkers

	NumFeatures
)

// FeatureNames gives the canonical name of each feature vector slot.
var FeatureNames = [NumFeatures]string{
	"reaction_time_avg",
	"reaction_time_std",
	"accuracy",
	"hesitation_count",
	"error_rate",
	"decision_time_avg",
	"emotional_choice_bias",
	"consistency_score",
	"impulsivity_indicators",
	"attention_lapses",
	"stress_markers",
}

// FeatureVector is the fixed-size numeric input consumed by indicator models.
type FeatureVector [NumFeatures]float64

// neutralMetrics holds the documented defaults every metric falls back to when
// the telemetry needed to compute it is absent. Fields not listed default to
// their zero value.
var neutralMetrics = models.DetailedMetrics{
	PositiveChoiceRatio:           1.0 / 3,
	NegativeChoiceRatio:           1.0 / 3,
	NeutralChoiceRatio:            1.0 / 3,
	SustainedAttentionConsistency: 1,
}

// Extract converts raw session telemetry into the fixed feature vector and the
// detailed metric set. Missing optional fields never cause an error; they only
// lower the confidence score. Malformed telemetry (negative counts or
// durations) is rejected with a *models.ValidationError.
func Extract(data *models.BehavioralData) (FeatureVector, models.DetailedMetrics, error) {
	var features FeatureVector

	if err := data.Validate(); err != nil {
		return features, models.DetailedMetrics{}, err
	}

	metrics := neutralMetrics

	// Reaction time statistics.
	rt := data.ReactionTimes
	if len(rt) > 0 {
		metrics.ReactionTimeMean = stat.Mean(rt, nil)
		metrics.ReactionTimeStd = stat.PopStdDev(rt, nil)
		metrics.ReactionTimeMedian = percentile(rt, 50)
		metrics.ReactionTimeRange = maxOf(rt) - minOf(rt)
		metrics.ReactionTimeP25 = percentile(rt, 25)
		metrics.ReactionTimeP75 = percentile(rt, 75)
		metrics.ReactionConsistency = math.Max(0, 1-metrics.ReactionTimeStd/metrics.ReactionTimeMean)
	}

	// Error patterns.
	metrics.ErrorRate = float64(data.Mistakes) / math.Max(float64(data.TotalClicks), 1)
	metrics.Accuracy = 1 - metrics.ErrorRate

	// Hesitation.
	metrics.HesitationFrequency = float64(len(data.HesitationTimes)) / math.Max(float64(data.TotalClicks), 1)
	if len(data.HesitationTimes) > 0 {
		metrics.AvgHesitationDuration = stat.Mean(data.HesitationTimes, nil)
		var severe []float64
		for _, h := range data.HesitationTimes {
			if h > 1000 {
				severe = append(severe, h)
			}
		}
		if len(severe) > 0 {
			metrics.HesitationSeverity = stat.Mean(severe, nil)
		}
	}

	// Emotional choice ratios.
	tally := data.EmotionalChoices
	if total := tally.Total(); total > 0 {
		metrics.PositiveChoiceRatio = float64(tally.Positive) / float64(total)
		metrics.NegativeChoiceRatio = float64(tally.Negative) / float64(total)
		metrics.NeutralChoiceRatio = float64(tally.Neutral) / float64(total)
		metrics.EmotionalBiasScore = metrics.PositiveChoiceRatio - metrics.NegativeChoiceRatio
	}

	// Impulsivity: very fast reactions, and fast reactions co-occurring with
	// mistakes early in the session.
	if len(rt) > 0 {
		fast := 0
		for _, v := range rt {
			if v < 300 {
				fast++
			}
		}
		metrics.ImpulsivityFrequency = float64(fast) / float64(len(rt))

		fastErrors := 0
		for i := 0; i < data.Mistakes && i < len(rt); i++ {
			if rt[i] < 500 {
				fastErrors++
			}
		}
		metrics.ImpulsivityScore = math.Min(100,
			metrics.ImpulsivityFrequency*50+float64(fastErrors)/math.Max(float64(data.Mistakes), 1)*50)
	}

	// Attention: lapses are unusually slow reactions; sustained attention is
	// the consistency of chunk means over time.
	if len(rt) > 5 {
		threshold := metrics.ReactionTimeMean + 2*metrics.ReactionTimeStd
		lapses := 0
		for _, v := range rt {
			if v > threshold {
				lapses++
			}
		}
		metrics.AttentionLapseFrequency = float64(lapses) / float64(len(rt))

		var chunkMeans []float64
		for i := 0; i+5 <= len(rt); i += 5 {
			chunkMeans = append(chunkMeans, stat.Mean(rt[i:i+5], nil))
		}
		if len(chunkMeans) > 1 {
			cv := stat.PopStdDev(chunkMeans, nil) / stat.Mean(chunkMeans, nil)
			metrics.SustainedAttentionConsistency = math.Max(0, 1-cv)
		}
	}

	// Emotional regulation: direct from state-change telemetry when the client
	// tracked it, otherwise inferred from choice spread and reaction volatility.
	if data.EmotionalStateChanges != nil {
		metrics.EmotionalVolatility = float64(len(data.EmotionalStateChanges)) / math.Max(float64(data.TotalClicks), 1)
		metrics.EmotionalRegulationScore = math.Max(0, 100-metrics.EmotionalVolatility*100)
	} else {
		tallies := []float64{float64(tally.Positive), float64(tally.Negative), float64(tally.Neutral)}
		choiceVariance := stat.PopVariance(tallies, nil)
		rtVolatility := metrics.ReactionTimeStd / math.Max(metrics.ReactionTimeMean, 1)
		metrics.EmotionalRegulationScore = math.Max(0, 100-math.Min(choiceVariance*10+rtVolatility*30, 100))
	}

	// Stress indicators: 25 points per marker.
	stress := 0.0
	if metrics.ReactionTimeStd > 800 {
		stress += 25
	}
	if metrics.ErrorRate > 0.3 {
		stress += 25
	}
	if metrics.HesitationFrequency > 0.4 {
		stress += 25
	}
	if metrics.EmotionalBiasScore < -0.3 {
		stress += 25
	}
	metrics.StressIndicators = math.Min(stress, 100)

	// Confidence grows with sample size and internal consistency.
	dataQuality := math.Min(float64(len(rt))/20, 1)
	metrics.ConfidenceScore = clamp((dataQuality+metrics.ReactionConsistency)/2, 0, 1)

	features = buildFeatureVector(data, &metrics)
	return features, metrics, nil
}

// buildFeatureVector projects the payload and derived metrics onto the fixed
// model input layout. Bias here is negative-minus-positive: trained models and
// the rule fallbacks both treat larger values as a stronger negative lean.
func buildFeatureVector(data *models.BehavioralData, m *models.DetailedMetrics) FeatureVector {
	var f FeatureVector

	rt := data.ReactionTimes
	f[featReactionTimeAvg] = m.ReactionTimeMean
	f[featReactionTimeStd] = m.ReactionTimeStd
	f[featAccuracy] = m.Accuracy
	f[featHesitationCount] = float64(len(data.HesitationTimes))
	f[featErrorRate] = m.ErrorRate

	if len(data.DecisionTimes) > 0 {
		f[featDecisionTimeAvg] = stat.Mean(data.DecisionTimes, nil)
	}

	if data.EmotionalChoices.Total() > 0 {
		f[featEmotionalBias] = m.NegativeChoiceRatio - m.PositiveChoiceRatio
	}

	if len(rt) > 1 {
		f[featConsistency] = 1 / (1 + m.ReactionTimeStd/m.ReactionTimeMean)
	}

	if len(rt) > 0 {
		fast := 0
		slow := 0
		for _, v := range rt {
			if v < 500 {
				fast++
			}
			if v > 2000 {
				slow++
			}
		}
		f[featImpulsivity] = float64(fast) / float64(len(rt))
		f[featAttentionLapses] = float64(slow) / float64(len(rt))
		f[featStressMarkers] = math.Min(f[featErrorRate]*f[featReactionTimeStd]/1000, 1)
	}

	return f
}

// percentile computes the p-th percentile with linear interpolation between
// closest ranks, the convention the stored metric contract documents.
func percentile(xs []float64, p float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	frac := rank - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, v := range xs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, v := range xs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
