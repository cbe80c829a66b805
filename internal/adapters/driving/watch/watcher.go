// Package watch ingests documents dropped into a watched directory.
// Files that appear or finish writing are uploaded through the
// ingestion service; everything else about their lifecycle is handled
// by the pipeline.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/legalease-labs/legalease/internal/core/ports/driving"
	"github.com/legalease-labs/legalease/internal/logger"
)

// DefaultSettleDelay is how long a file must stay quiet after its last
// write before it is ingested. Copies into the watched directory arrive
// as a burst of write events; ingesting early would read a partial file.
const DefaultSettleDelay = 2 * time.Second

// Watcher uploads files dropped into a directory.
type Watcher struct {
	ingestion driving.IngestionService
	dir       string
	ownerID   string
	settle    time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a watcher over dir that ingests on behalf of ownerID.
func New(ingestion driving.IngestionService, dir, ownerID string) *Watcher {
	return &Watcher{
		ingestion: ingestion,
		dir:       dir,
		ownerID:   ownerID,
		settle:    DefaultSettleDelay,
		timers:    make(map[string]*time.Timer),
	}
}

// SetSettleDelay overrides the quiet period before ingestion.
func (w *Watcher) SetSettleDelay(d time.Duration) {
	w.settle = d
}

// Run watches the directory until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("creating watch directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Info("Watching %s for new documents", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

// handleEvent schedules ingestion after the settle delay. Repeated
// writes to the same file reset the timer, so a file is only ingested
// once it stops changing.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}
	if !w.shouldIngest(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[event.Name]; ok {
		timer.Reset(w.settle)
		return
	}
	path := event.Name
	w.timers[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.ingest(ctx, path)
	})
}

// shouldIngest filters out directories, hidden files and files no
// extractor can handle.
func (w *Watcher) shouldIngest(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return true
}

// ingest uploads a settled file. Upload failures are logged, not fatal:
// one bad file must not stop the watcher.
func (w *Watcher) ingest(ctx context.Context, path string) {
	doc, err := w.ingestion.Upload(ctx, path, w.ownerID)
	if err != nil {
		logger.Error("Cannot ingest %s: %v", path, err)
		return
	}
	logger.Info("Ingested %s as document %s", filepath.Base(path), doc.ID)
}
