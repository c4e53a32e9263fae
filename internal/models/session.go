package models

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// GameSession is one played game round, persisted with its raw telemetry so a
// session can be re-analyzed after model retraining.
type GameSession struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	UserID      string `gorm:"index"`
	GameType    string
	Status      string // active, paused or completed
	Score       int
	DurationMS  float64
	RawData     json.RawMessage `gorm:"type:jsonb"`
	StartedAt   time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// AnalysisRecord is the persisted form of a SessionAnalysisResult. Scalar
// scores are columns so history queries and trend aggregation stay cheap;
// the full result is kept alongside as JSON for report consumers.
type AnalysisRecord struct {
	ID                       int    `gorm:"primaryKey"`
	SessionID                string `gorm:"type:uuid;index"`
	UserID                   string `gorm:"index"`
	AnxietyScore             float64
	DepressionScore          float64
	AttentionScore           float64
	ImpulsivityScore         float64
	EmotionalRegulationScore float64
	PredictedCluster         string
	ConfidenceScore          float64
	RiskLevel                string
	RiskFactors              int
	RequiresAttention        bool
	PrimaryConcerns          pq.StringArray  `gorm:"type:text[]"`
	Insights                 pq.StringArray  `gorm:"type:text[]"`
	FullResult               json.RawMessage `gorm:"type:jsonb"`
	CreatedAt                time.Time       `gorm:"index"`
}

// Result rebuilds the scalar part of the stored analysis. The full result,
// including metrics and recommendations, lives in FullResult.
func (r *AnalysisRecord) Result() SessionAnalysisResult {
	concerns := make([]Concern, 0, len(r.PrimaryConcerns))
	for _, c := range r.PrimaryConcerns {
		concerns = append(concerns, Concern(c))
	}
	return SessionAnalysisResult{
		Scores: IndicatorScores{
			AnxietyScore:             r.AnxietyScore,
			DepressionScore:          r.DepressionScore,
			AttentionScore:           r.AttentionScore,
			ImpulsivityScore:         r.ImpulsivityScore,
			EmotionalRegulationScore: r.EmotionalRegulationScore,
			PredictedCluster:         Cluster(r.PredictedCluster),
			ConfidenceScore:          r.ConfidenceScore,
		},
		Insights: append([]string(nil), r.Insights...),
		Risk: RiskAssessment{
			Level:             RiskLevel(r.RiskLevel),
			RiskFactors:       r.RiskFactors,
			RequiresAttention: r.RequiresAttention,
			PrimaryConcerns:   concerns,
		},
		AnalysisTimestamp: r.CreatedAt,
	}
}
