package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Reyd900/FeelSync/internal/analysis"
	"github.com/Reyd900/FeelSync/internal/models"
	"github.com/Reyd900/FeelSync/internal/repository"
)

type GamesHandler struct {
	log      *zap.Logger
	catalog  *models.GameCatalog
	analyzer *analysis.Analyzer
}

func NewGamesHandler(log *zap.Logger, catalog *models.GameCatalog, analyzer *analysis.Analyzer) *GamesHandler {
	return &GamesHandler{log: log, catalog: catalog, analyzer: analyzer}
}

// ListGames returns the game catalog.
func (h *GamesHandler) ListGames(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Games)
}

type startSessionRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	GameType string `json:"game_type" binding:"required"`
}

// StartSession opens a new game session for a user.
func (h *GamesHandler) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if h.catalog.Lookup(req.GameType) == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown game type"})
		return
	}

	session, err := repository.CreateSession(req.UserID, req.GameType)
	if err != nil {
		h.log.Error("Failed to create game session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	h.log.Info("Game session started",
		zap.String("session_id", session.ID),
		zap.String("game_type", session.GameType),
	)
	c.JSON(http.StatusCreated, gin.H{
		"session_id": session.ID,
		"game_type":  session.GameType,
		"status":     session.Status,
	})
}

// ListSessions returns a user's game sessions, most recent first. The
// dashboard uses it to show play history alongside analysis results.
func (h *GamesHandler) ListSessions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	sessions, err := repository.GetUserSessions(c.Param("userID"), limit)
	if err != nil {
		h.log.Error("Failed to load user sessions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sessions"})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// PauseSession pauses an active session.
func (h *GamesHandler) PauseSession(c *gin.Context) {
	h.setStatus(c, "active", "paused")
}

// ResumeSession resumes a paused session.
func (h *GamesHandler) ResumeSession(c *gin.Context) {
	h.setStatus(c, "paused", "active")
}

func (h *GamesHandler) setStatus(c *gin.Context, from, to string) {
	session, err := repository.GetSession(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if session.Status != from {
		c.JSON(http.StatusConflict, gin.H{"error": "Session is " + session.Status})
		return
	}
	if err := repository.UpdateSessionStatus(session.ID, to); err != nil {
		h.log.Error("Failed to update session status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": session.ID, "status": to})
}

type completeSessionRequest struct {
	Score          int                   `json:"score"`
	DurationMS     float64               `json:"duration_ms"`
	BehavioralData models.BehavioralData `json:"behavioral_data"`
}

// CompleteSession finishes a session: stores the raw telemetry, runs the
// analysis pipeline and persists the result.
func (h *GamesHandler) CompleteSession(c *gin.Context) {
	session, err := repository.GetSession(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if session.Status == "completed" {
		c.JSON(http.StatusConflict, gin.H{"error": "Session already completed"})
		return
	}

	var req completeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind session completion", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	result, err := h.analyzer.AnalyzeSession(&req.BehavioralData)
	if err != nil {
		// Malformed telemetry; the client may retry with sanitized input.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	rawData, err := json.Marshal(req.BehavioralData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}
	if err := repository.CompleteSession(session.ID, req.Score, req.DurationMS, rawData); err != nil {
		h.log.Error("Failed to complete session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete session"})
		return
	}

	if _, err := repository.SaveAnalysis(session.ID, session.UserID, result); err != nil {
		h.log.Error("Failed to save analysis", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save analysis"})
		return
	}

	h.log.Info("Game session completed",
		zap.String("session_id", session.ID),
		zap.String("game_type", session.GameType),
		zap.String("risk_level", string(result.Risk.Level)),
	)
	c.JSON(http.StatusOK, result)
}
