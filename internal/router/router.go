package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/Reyd900/FeelSync/internal/analysis"
	"github.com/Reyd900/FeelSync/internal/handlers"
	"github.com/Reyd900/FeelSync/internal/models"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(http.StatusTooManyRequests, "Too many requests. Try again later.")
}

func Setup(log *zap.Logger, catalog *models.GameCatalog, analyzer *analysis.Analyzer) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	// Analysis is the expensive endpoint; keep it rate limited per client.
	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 30,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	gamesHandler := handlers.NewGamesHandler(log, catalog, analyzer)
	analysisHandler := handlers.NewAnalysisHandler(log, analyzer)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/games", gamesHandler.ListGames)
		api.GET("/games/sessions/:userID", gamesHandler.ListSessions)
		api.POST("/games/session", gamesHandler.StartSession)
		api.POST("/games/session/:id/pause", gamesHandler.PauseSession)
		api.POST("/games/session/:id/resume", gamesHandler.ResumeSession)
		api.POST("/games/session/:id/complete", limiter, gamesHandler.CompleteSession)

		api.POST("/analysis", limiter, analysisHandler.Analyze)
		api.GET("/analysis/history/:userID", analysisHandler.History)
		api.GET("/analysis/trends/:userID", analysisHandler.Trends)
		api.GET("/analysis/latest/:userID", analysisHandler.Latest)
	}

	return router
}
