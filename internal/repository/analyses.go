package repository

import (
	"encoding/json"

	"github.com/lib/pq"

	"github.com/Reyd900/FeelSync/internal/database"
	"github.com/Reyd900/FeelSync/internal/models"
)

// SaveAnalysis persists a session analysis. Scalar scores become columns for
// cheap history queries; the complete result is stored alongside as JSON.
func SaveAnalysis(sessionID, userID string, result *models.SessionAnalysisResult) (*models.AnalysisRecord, error) {
	full, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	concerns := make(pq.StringArray, 0, len(result.Risk.PrimaryConcerns))
	for _, c := range result.Risk.PrimaryConcerns {
		concerns = append(concerns, string(c))
	}

	record := &models.AnalysisRecord{
		SessionID:                sessionID,
		UserID:                   userID,
		AnxietyScore:             result.Scores.AnxietyScore,
		DepressionScore:          result.Scores.DepressionScore,
		AttentionScore:           result.Scores.AttentionScore,
		ImpulsivityScore:         result.Scores.ImpulsivityScore,
		EmotionalRegulationScore: result.Scores.EmotionalRegulationScore,
		PredictedCluster:         string(result.Scores.PredictedCluster),
		ConfidenceScore:          result.Scores.ConfidenceScore,
		RiskLevel:                string(result.Risk.Level),
		RiskFactors:              result.Risk.RiskFactors,
		RequiresAttention:        result.Risk.RequiresAttention,
		PrimaryConcerns:          concerns,
		Insights:                 pq.StringArray(result.Insights),
		FullResult:               full,
		CreatedAt:                result.AnalysisTimestamp,
	}
	if err := database.DB.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// GetAnalysisHistory returns a user's analysis results ordered oldest-first,
// the order the trend aggregator expects. Records whose stored JSON cannot be
// parsed fall back to their scalar columns.
func GetAnalysisHistory(userID string) ([]models.SessionAnalysisResult, error) {
	var records []models.AnalysisRecord
	err := database.DB.Where("user_id = ?", userID).Order("created_at ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}

	results := make([]models.SessionAnalysisResult, 0, len(records))
	for i := range records {
		var result models.SessionAnalysisResult
		if len(records[i].FullResult) > 0 && json.Unmarshal(records[i].FullResult, &result) == nil {
			results = append(results, result)
			continue
		}
		results = append(results, records[i].Result())
	}
	return results, nil
}

// GetLatestAnalysis returns a user's most recent analysis record.
func GetLatestAnalysis(userID string) (*models.AnalysisRecord, error) {
	record := &models.AnalysisRecord{}
	err := database.DB.Where("user_id = ?", userID).Order("created_at DESC").First(record).Error
	if err != nil {
		return nil, err
	}
	return record, nil
}
