package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Reyd900/FeelSync/internal/models"
)

// AggregateTrends computes per-indicator trends and the overall trajectory
// over a session history. Fewer than 2 sessions yields an explicit
// insufficient_data report; the slope fit additionally needs 3 sessions per
// indicator. The input is re-sorted by analysis timestamp defensively.
func AggregateTrends(history []models.SessionAnalysisResult) models.TrendReport {
	if len(history) < 2 {
		return models.TrendReport{
			Status:            "insufficient_data",
			Anxiety:           models.IndicatorTrend{Direction: models.TrendInsufficientData},
			Depression:        models.IndicatorTrend{Direction: models.TrendInsufficientData},
			Attention:         models.IndicatorTrend{Direction: models.TrendInsufficientData},
			OverallTrajectory: models.TrajectoryInsufficientData,
			SessionCount:      len(history),
			Improvements:      []string{},
		}
	}

	ordered := append([]models.SessionAnalysisResult(nil), history...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].AnalysisTimestamp.Before(ordered[j].AnalysisTimestamp)
	})

	anxiety := make([]float64, len(ordered))
	depression := make([]float64, len(ordered))
	attention := make([]float64, len(ordered))
	for i, r := range ordered {
		anxiety[i] = r.Scores.AnxietyScore
		depression[i] = r.Scores.DepressionScore
		attention[i] = r.Scores.AttentionScore
	}

	days := ordered[len(ordered)-1].AnalysisTimestamp.Sub(ordered[0].AnalysisTimestamp).Hours() / 24

	return models.TrendReport{
		Status:            "ok",
		Anxiety:           indicatorTrend(anxiety),
		Depression:        indicatorTrend(depression),
		Attention:         indicatorTrend(attention),
		OverallTrajectory: overallTrajectory(anxiety, depression, attention),
		SessionCount:      len(ordered),
		TimespanDays:      round2(days),
		SessionFrequency:  round2(float64(len(ordered)) / math.Max(days, 1)),
		Improvements:      improvementIndicators(ordered),
	}
}

// indicatorTrend fits an ordinary-least-squares line of score against session
// index. Slope beyond ±2 points per session decides the direction; the Pearson
// correlation feeds only the significance label.
func indicatorTrend(scores []float64) models.IndicatorTrend {
	if len(scores) < 3 {
		return models.IndicatorTrend{Direction: models.TrendInsufficientData}
	}

	idx := make([]float64, len(scores))
	for i := range idx {
		idx[i] = float64(i)
	}

	_, slope := stat.LinearRegression(idx, scores, nil, false)
	correlation := stat.Correlation(idx, scores, nil)
	if math.IsNaN(correlation) {
		// Zero variance in the scores: a flat series has no correlation.
		correlation = 0
	}

	direction := models.TrendStable
	if slope > 2 {
		direction = models.TrendIncreasing
	} else if slope < -2 {
		direction = models.TrendDecreasing
	}

	var recentChange float64
	if len(scores) >= 6 {
		recentChange = stat.Mean(scores[len(scores)-3:], nil) - stat.Mean(scores[len(scores)-6:len(scores)-3], nil)
	} else {
		recentChange = scores[len(scores)-1] - scores[0]
	}

	significance := "not_significant"
	if math.Abs(correlation) > 0.5 {
		significance = "significant"
	}

	return models.IndicatorTrend{
		Direction:    direction,
		Slope:        round2(slope),
		Correlation:  round2(correlation),
		RecentChange: math.Round(recentChange*10) / 10,
		Significance: significance,
	}
}

// overallTrajectory splits each score series at its midpoint and compares the
// halves. Improvement means anxiety and depression fell while attention rose;
// the attention inversion is deliberate.
func overallTrajectory(anxiety, depression, attention []float64) models.Trajectory {
	split := len(anxiety) / 2
	if split < 1 {
		split = 1
	}

	improvement := ((stat.Mean(anxiety[:split], nil) - stat.Mean(anxiety[split:], nil)) +
		(stat.Mean(depression[:split], nil) - stat.Mean(depression[split:], nil)) +
		(stat.Mean(attention[split:], nil) - stat.Mean(attention[:split], nil))) / 3

	switch {
	case improvement > 10:
		return models.TrajectoryImproving
	case improvement < -10:
		return models.TrajectoryDeclining
	default:
		return models.TrajectoryStable
	}
}

// improvementIndicators flags positive shifts between the first and second
// halves of the history.
func improvementIndicators(history []models.SessionAnalysisResult) []string {
	improvements := []string{}
	if len(history) < 2 {
		return improvements
	}

	half := len(history) / 2
	first, second := history[:half], history[half:]

	meanOf := func(part []models.SessionAnalysisResult, pick func(*models.SessionAnalysisResult) float64) float64 {
		sum := 0.0
		for i := range part {
			sum += pick(&part[i])
		}
		return sum / float64(len(part))
	}

	firstAccuracy := meanOf(first, func(r *models.SessionAnalysisResult) float64 { return r.Metrics.Accuracy })
	secondAccuracy := meanOf(second, func(r *models.SessionAnalysisResult) float64 { return r.Metrics.Accuracy })
	if secondAccuracy > firstAccuracy+0.1 {
		improvements = append(improvements, "Significant improvement in accuracy")
	}

	firstStd := meanOf(first, func(r *models.SessionAnalysisResult) float64 { return r.Metrics.ReactionTimeStd })
	secondStd := meanOf(second, func(r *models.SessionAnalysisResult) float64 { return r.Metrics.ReactionTimeStd })
	if secondStd < firstStd*0.8 {
		improvements = append(improvements, "More consistent reaction times")
	}

	firstAnxiety := meanOf(first, func(r *models.SessionAnalysisResult) float64 { return r.Scores.AnxietyScore })
	secondAnxiety := meanOf(second, func(r *models.SessionAnalysisResult) float64 { return r.Scores.AnxietyScore })
	if secondAnxiety < firstAnxiety-15 {
		improvements = append(improvements, "Reduced anxiety indicators")
	}

	return improvements
}
