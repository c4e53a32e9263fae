package router

import (
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Reyd900/FeelSync/internal/analysis"
	"github.com/Reyd900/FeelSync/internal/models"
)

func TestSetup_RegistersAPIRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	catalog := &models.GameCatalog{Games: []models.Game{{ID: "catch_thought"}}}
	r := Setup(zap.NewNop(), catalog, analysis.New(zap.NewNop(), nil))

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	want := []string{
		"GET /health",
		"GET /api/games",
		"GET /api/games/sessions/:userID",
		"POST /api/games/session",
		"POST /api/games/session/:id/pause",
		"POST /api/games/session/:id/resume",
		"POST /api/games/session/:id/complete",
		"POST /api/analysis",
		"GET /api/analysis/history/:userID",
		"GET /api/analysis/trends/:userID",
		"GET /api/analysis/latest/:userID",
	}
	for _, key := range want {
		if !registered[key] {
			t.Errorf("route %s not registered", key)
		}
	}
}
