package main

import (
	"github.com/Reyd900/FeelSync/internal/analysis"
	"github.com/Reyd900/FeelSync/internal/config"
	"github.com/Reyd900/FeelSync/internal/database"
	logger "github.com/Reyd900/FeelSync/internal/logging"
	"github.com/Reyd900/FeelSync/internal/models"
	"github.com/Reyd900/FeelSync/internal/router"
	"github.com/Reyd900/FeelSync/internal/services"

	"go.uber.org/zap"
)

func main() {
	// Load configuration before anything else; the logger needs it.
	if err := config.Init("."); err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.Init(config.Conf.Logging)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	config.Watch(log)

	// Initialize Database
	database.Init(log)

	// Load the game catalog at startup
	catalog, err := models.LoadGameCatalog(config.Conf.Games.CatalogPath)
	if err != nil {
		log.Fatal("Failed to load game catalog", zap.Error(err))
	}

	// Load trained indicator models if any exist; indicators without one use
	// their rule-based fallback.
	modelSet, err := analysis.LoadModelSet(config.Conf.Models.Directory)
	if err != nil {
		log.Fatal("Failed to load model set", zap.Error(err))
	}
	analyzer := analysis.New(log, modelSet)

	if config.Conf.Models.Watch {
		watcher := services.NewModelWatcher(log, analyzer, config.Conf.Models.Directory)
		if err := watcher.Start(); err != nil {
			log.Error("Failed to start model watcher, hot reload disabled", zap.Error(err))
		}
	}

	// Setup router, passing the logger to it
	r := router.Setup(log, catalog, analyzer)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
