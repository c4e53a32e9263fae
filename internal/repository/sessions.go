package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Reyd900/FeelSync/internal/database"
	"github.com/Reyd900/FeelSync/internal/models"
)

// CreateSession opens a new game session for a user.
func CreateSession(userID, gameType string) (*models.GameSession, error) {
	session := &models.GameSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		GameType:  gameType,
		Status:    "active",
		StartedAt: time.Now().UTC(),
	}
	if err := database.DB.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession loads a session by id.
func GetSession(id string) (*models.GameSession, error) {
	session := &models.GameSession{}
	if err := database.DB.First(session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateSessionStatus moves a session between active and paused.
func UpdateSessionStatus(id, status string) error {
	return database.DB.Model(&models.GameSession{}).Where("id = ?", id).Update("status", status).Error
}

// CompleteSession marks a session finished and stores its raw telemetry so it
// can be re-analyzed after model retraining.
func CompleteSession(id string, score int, durationMS float64, rawData json.RawMessage) error {
	now := time.Now().UTC()
	return database.DB.Model(&models.GameSession{}).Where("id = ?", id).Updates(map[string]any{
		"status":       "completed",
		"score":        score,
		"duration_ms":  durationMS,
		"raw_data":     rawData,
		"completed_at": now,
	}).Error
}

// GetUserSessions returns a user's sessions, most recent first.
func GetUserSessions(userID string, limit int) ([]models.GameSession, error) {
	var sessions []models.GameSession
	q := database.DB.Where("user_id = ?", userID).Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&sessions).Error
	return sessions, err
}
