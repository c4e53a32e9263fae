package models

import "time"

// DetailedMetrics holds every derived scalar the feature extractor produces.
// Ratios and frequencies are in [0,1], scores in [0,100], unless noted.
// Metrics derived from missing telemetry take documented neutral defaults, so
// the struct is always fully populated.
type DetailedMetrics struct {
	ReactionTimeMean    float64 `json:"reaction_time_mean"`
	ReactionTimeStd     float64 `json:"reaction_time_std"`
	ReactionTimeMedian  float64 `json:"reaction_time_median"`
	ReactionTimeRange   float64 `json:"reaction_time_range"`
	ReactionTimeP25     float64 `json:"reaction_time_p25"`
	ReactionTimeP75     float64 `json:"reaction_time_p75"`
	ReactionConsistency float64 `json:"reaction_consistency"`

	ErrorRate float64 `json:"error_rate"`
	Accuracy  float64 `json:"accuracy"`

	HesitationFrequency   float64 `json:"hesitation_frequency"`
	AvgHesitationDuration float64 `json:"avg_hesitation_duration"`
	HesitationSeverity    float64 `json:"hesitation_severity"`

	PositiveChoiceRatio float64 `json:"positive_choice_ratio"`
	NegativeChoiceRatio float64 `json:"negative_choice_ratio"`
	NeutralChoiceRatio  float64 `json:"neutral_choice_ratio"`
	// EmotionalBiasScore is in [-1,1]; negative values indicate negative bias.
	EmotionalBiasScore float64 `json:"emotional_bias_score"`

	ImpulsivityFrequency float64 `json:"impulsivity_frequency"`
	ImpulsivityScore     float64 `json:"impulsivity_score"`

	AttentionLapseFrequency       float64 `json:"attention_lapse_frequency"`
	SustainedAttentionConsistency float64 `json:"sustained_attention_consistency"`

	EmotionalVolatility      float64 `json:"emotional_volatility"`
	EmotionalRegulationScore float64 `json:"emotional_regulation_score"`

	StressIndicators float64 `json:"stress_indicators"`
	ConfidenceScore  float64 `json:"confidence_score"`
}

// Cluster is a qualitative gameplay-style label.
type Cluster string

const (
	ClusterFastAccurate   Cluster = "fast_accurate"
	ClusterSlowConsistent Cluster = "slow_consistent"
	ClusterErratic        Cluster = "erratic"
)

// IndicatorScores holds the bounded behavioral indicator estimates for one
// session. Each score is clamped to [0,100]. Immutable once produced.
type IndicatorScores struct {
	AnxietyScore             float64 `json:"anxiety_score"`
	DepressionScore          float64 `json:"depression_score"`
	AttentionScore           float64 `json:"attention_score"`
	ImpulsivityScore         float64 `json:"impulsivity_score"`
	EmotionalRegulationScore float64 `json:"emotional_regulation_score"`
	PredictedCluster         Cluster `json:"predicted_cluster"`
	ConfidenceScore          float64 `json:"confidence_score"`
}

// RiskLevel is a coarse classification of overall risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Concern names one area of elevated risk.
type Concern string

const (
	ConcernAnxiety                Concern = "anxiety"
	ConcernDepression             Concern = "depression"
	ConcernAttentionDeficit       Concern = "attention_deficit"
	ConcernImpulsivity            Concern = "impulsivity"
	ConcernEmotionalDysregulation Concern = "emotional_dysregulation"
)

// RiskAssessment is derived purely from indicator scores and detailed metrics.
type RiskAssessment struct {
	Level             RiskLevel `json:"level"`
	RiskFactors       int       `json:"risk_factors"`
	RequiresAttention bool      `json:"requires_attention"`
	PrimaryConcerns   []Concern `json:"primary_concerns"`
}

// Recommendation is one actionable suggestion tied to the assessment.
type Recommendation struct {
	Category string `json:"category"`
	Priority string `json:"priority"` // high, medium or low
	Text     string `json:"text"`
	Type     string `json:"type"`
}

// SessionAnalysisResult is the unit returned to callers for a single analyzed
// session and the unit stored in analysis history.
type SessionAnalysisResult struct {
	Scores            IndicatorScores  `json:"scores"`
	Metrics           DetailedMetrics  `json:"detailed_metrics"`
	Insights          []string         `json:"insights"`
	Risk              RiskAssessment   `json:"risk_assessment"`
	Recommendations   []Recommendation `json:"recommendations"`
	AnalysisTimestamp time.Time        `json:"analysis_timestamp"`
}

// TrendDirection classifies the slope of an indicator over a session history.
type TrendDirection string

const (
	TrendIncreasing       TrendDirection = "increasing"
	TrendDecreasing       TrendDirection = "decreasing"
	TrendStable           TrendDirection = "stable"
	TrendInsufficientData TrendDirection = "insufficient_data"
)

// IndicatorTrend describes how one indicator moved across sessions.
type IndicatorTrend struct {
	Direction    TrendDirection `json:"direction"`
	Slope        float64        `json:"slope"`
	Correlation  float64        `json:"correlation"`
	RecentChange float64        `json:"recent_change"`
	Significance string         `json:"statistical_significance"`
}

// Trajectory labels the overall direction of a user's history.
type Trajectory string

const (
	TrajectoryImproving        Trajectory = "improving"
	TrajectoryDeclining        Trajectory = "declining"
	TrajectoryStable           Trajectory = "stable"
	TrajectoryInsufficientData Trajectory = "insufficient_data"
)

// TrendReport aggregates trends across an ordered session history.
type TrendReport struct {
	Status            string         `json:"status"` // ok or insufficient_data
	Anxiety           IndicatorTrend `json:"anxiety"`
	Depression        IndicatorTrend `json:"depression"`
	Attention         IndicatorTrend `json:"attention"`
	OverallTrajectory Trajectory     `json:"overall_trajectory"`
	SessionCount      int            `json:"session_count"`
	TimespanDays      float64        `json:"timespan_days"`
	SessionFrequency  float64        `json:"session_frequency"`
	Improvements      []string       `json:"improvement_indicators"`
}

// NormBand classifies a metric against an age-group normal range.
type NormBand string

const (
	NormBelowAverage NormBand = "below_average"
	NormAverage      NormBand = "average"
	NormAboveAverage NormBand = "above_average"
)

// NormativeComparison reports how selected metrics compare with normative
// ranges for the user's age group.
type NormativeComparison struct {
	ReactionTimeMean    NormBand `json:"reaction_time_mean"`
	Accuracy            NormBand `json:"accuracy"`
	HesitationFrequency NormBand `json:"hesitation_frequency"`
	EmotionalBiasScore  NormBand `json:"emotional_bias_score"`
}
