package analysis

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Reyd900/FeelSync/internal/models"
)

// Analyzer is the single-session pipeline: feature extraction, indicator
// scoring, insight generation and risk assessment. It is safe for concurrent
// use; the only shared state is the model set pointer, which is read
// atomically and only ever replaced wholesale.
type Analyzer struct {
	log    *zap.Logger
	models atomic.Pointer[ModelSet]
}

// New builds an Analyzer around an immutable model set. A nil set means every
// indicator uses its rule-based fallback.
func New(log *zap.Logger, set *ModelSet) *Analyzer {
	a := &Analyzer{log: log}
	if set == nil {
		set = &ModelSet{}
	}
	a.models.Store(set)
	return a
}

// SwapModels atomically replaces the model set. In-flight analyses keep the
// set they started with.
func (a *Analyzer) SwapModels(set *ModelSet) {
	if set == nil {
		set = &ModelSet{}
	}
	a.models.Store(set)
	a.log.Info("Model set swapped",
		zap.Bool("anxiety", set.Anxiety != nil),
		zap.Bool("depression", set.Depression != nil),
		zap.Bool("attention", set.Attention != nil),
		zap.Bool("cluster", set.Cluster != nil),
	)
}

// Models returns the model set currently in use.
func (a *Analyzer) Models() *ModelSet {
	return a.models.Load()
}

// AnalyzeSession runs the full single-session pipeline on raw telemetry.
// Malformed telemetry returns a *models.ValidationError; sparse telemetry is
// analyzed with neutral defaults and a lower confidence score.
func (a *Analyzer) AnalyzeSession(data *models.BehavioralData) (*models.SessionAnalysisResult, error) {
	features, metrics, err := Extract(data)
	if err != nil {
		return nil, err
	}

	scores := ScoreIndicators(a.models.Load(), features, &metrics)
	insights := GenerateInsights(&scores, &metrics)
	risk := AssessRisk(&scores, &metrics)

	result := &models.SessionAnalysisResult{
		Scores:            scores,
		Metrics:           metrics,
		Insights:          insights,
		Risk:              risk,
		Recommendations:   GenerateRecommendations(&risk),
		AnalysisTimestamp: time.Now().UTC(),
	}

	a.log.Debug("Session analyzed",
		zap.Float64("anxiety", scores.AnxietyScore),
		zap.Float64("depression", scores.DepressionScore),
		zap.Float64("attention", scores.AttentionScore),
		zap.String("cluster", string(scores.PredictedCluster)),
		zap.String("risk", string(risk.Level)),
	)

	return result, nil
}
