package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalease-labs/legalease/internal/core/domain"
)

// recordingIngestion records Upload calls.
type recordingIngestion struct {
	mu      sync.Mutex
	uploads []string
	owners  []string
}

func (r *recordingIngestion) Upload(_ context.Context, srcPath, ownerID string) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uploads = append(r.uploads, filepath.Base(srcPath))
	r.owners = append(r.owners, ownerID)
	return &domain.Document{ID: "doc-1", Status: domain.StatusProcessing}, nil
}

func (r *recordingIngestion) Reingest(context.Context, string) error { return nil }
func (r *recordingIngestion) Status(context.Context, string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}
func (r *recordingIngestion) List(context.Context, string) ([]domain.Document, error) {
	return nil, nil
}

func (r *recordingIngestion) uploaded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.uploads...)
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition never held")
}

func startWatcher(t *testing.T, ingestion *recordingIngestion, dir string) {
	t.Helper()
	w := New(ingestion, dir, "user-1")
	w.SetSettleDelay(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = w.Run(ctx) }()

	// Give the watcher time to register before creating files.
	time.Sleep(100 * time.Millisecond)
}

func TestWatcher_IngestsNewFile(t *testing.T) {
	dir := t.TempDir()
	ingestion := &recordingIngestion{}
	startWatcher(t, ingestion, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "lease.txt"), []byte("Clause 1."), 0o644))

	waitFor(t, func() bool { return len(ingestion.uploaded()) == 1 })
	assert.Equal(t, []string{"lease.txt"}, ingestion.uploaded())
	assert.Equal(t, "user-1", ingestion.owners[0])
}

func TestWatcher_CoalescesWriteBursts(t *testing.T) {
	dir := t.TempDir()
	ingestion := &recordingIngestion{}
	startWatcher(t, ingestion, dir)

	path := filepath.Join(dir, "contract.txt")
	f, err := os.Create(path)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = f.WriteString("Clause.\n")
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}
	require.NoError(t, f.Close())

	waitFor(t, func() bool { return len(ingestion.uploaded()) >= 1 })
	// The settle delay collapses the burst into one upload.
	time.Sleep(200 * time.Millisecond)
	assert.Len(t, ingestion.uploaded(), 1)
}

func TestWatcher_SkipsHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	ingestion := &recordingIngestion{}
	startWatcher(t, ingestion, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "visible.txt"), []byte("Clause 1."), 0o644))

	waitFor(t, func() bool { return len(ingestion.uploaded()) == 1 })
	assert.Equal(t, []string{"visible.txt"}, ingestion.uploaded())
}

func TestWatcher_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	ingestion := &recordingIngestion{}
	startWatcher(t, ingestion, dir)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.txt"), []byte("Clause 1."), 0o644))

	waitFor(t, func() bool { return len(ingestion.uploaded()) == 1 })
	assert.Equal(t, []string{"doc.txt"}, ingestion.uploaded())
}
