package services

import (
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Reyd900/FeelSync/internal/analysis"
)

// ModelWatcher hot-reloads the trained model set when the files in the model
// directory change, typically after an offline retraining run. Each reload
// builds a fresh immutable ModelSet and swaps it into the analyzer atomically;
// in-flight analyses are never affected.
type ModelWatcher struct {
	log      *zap.Logger
	analyzer *analysis.Analyzer
	dir      string
}

func NewModelWatcher(log *zap.Logger, analyzer *analysis.Analyzer, dir string) *ModelWatcher {
	return &ModelWatcher{
		log:      log,
		analyzer: analyzer,
		dir:      dir,
	}
}

// Start watches the model directory in a goroutine.
func (w *ModelWatcher) Start() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return err
	}

	w.log.Info("Watching model directory for changes", zap.String("dir", w.dir))

	go func() {
		defer watcher.Close()

		// Retraining writes several files in quick succession; debounce so
		// the set is reloaded once per batch.
		var reload *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Remove) {
					continue
				}
				if reload != nil {
					reload.Stop()
				}
				reload = time.AfterFunc(500*time.Millisecond, w.reloadModels)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				w.log.Error("Model watcher error", zap.Error(err))
			}
		}
	}()

	return nil
}

func (w *ModelWatcher) reloadModels() {
	set, err := analysis.LoadModelSet(w.dir)
	if err != nil {
		w.log.Error("Failed to reload model set, keeping current models", zap.Error(err))
		return
	}
	w.analyzer.SwapModels(set)
}
