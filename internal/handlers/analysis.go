package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Reyd900/FeelSync/internal/analysis"
	"github.com/Reyd900/FeelSync/internal/config"
	"github.com/Reyd900/FeelSync/internal/models"
	"github.com/Reyd900/FeelSync/internal/repository"
)

type AnalysisHandler struct {
	log      *zap.Logger
	analyzer *analysis.Analyzer
}

func NewAnalysisHandler(log *zap.Logger, analyzer *analysis.Analyzer) *AnalysisHandler {
	return &AnalysisHandler{log: log, analyzer: analyzer}
}

// Analyze runs the single-session pipeline on a raw telemetry payload without
// persisting anything. Used by the report layer and for re-analysis.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var data models.BehavioralData
	if err := c.ShouldBindJSON(&data); err != nil {
		h.log.Error("Failed to bind behavioral data", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	result, err := h.analyzer.AnalyzeSession(&data)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error()})
			return
		}
		h.log.Error("Analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":               result,
		"normative_comparison": analysis.CompareWithNorms(&result.Metrics, config.Conf.Models.AgeGroup),
	})
}

// History returns a user's stored analyses, oldest first.
func (h *AnalysisHandler) History(c *gin.Context) {
	history, err := repository.GetAnalysisHistory(c.Param("userID"))
	if err != nil {
		h.log.Error("Failed to load analysis history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	c.JSON(http.StatusOK, history)
}

// Trends aggregates a user's analysis history into a trend report.
func (h *AnalysisHandler) Trends(c *gin.Context) {
	history, err := repository.GetAnalysisHistory(c.Param("userID"))
	if err != nil {
		h.log.Error("Failed to load analysis history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	c.JSON(http.StatusOK, analysis.AggregateTrends(history))
}

// Latest returns the most recent analysis for a user.
func (h *AnalysisHandler) Latest(c *gin.Context) {
	record, err := repository.GetLatestAnalysis(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No analyses found"})
		return
	}
	c.JSON(http.StatusOK, record.Result())
}
