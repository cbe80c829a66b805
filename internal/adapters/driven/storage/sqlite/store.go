package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/legalease-labs/legalease/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/legalease-labs/legalease/internal/core/domain"
	"github.com/legalease-labs/legalease/internal/core/ports/driven"
)

// Store is a SQLite-backed metadata store. It provides access to the
// document registry and chat history interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.legalease/data/metadata.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".legalease", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// WAL mode for better concurrency between the pipeline worker and
	// status queries.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentRegistry returns a DocumentRegistry interface backed by this store.
func (s *Store) DocumentRegistry() driven.DocumentRegistry {
	return &documentRegistry{store: s}
}

// ChatStore returns a ChatStore interface backed by this store.
func (s *Store) ChatStore() driven.ChatStore {
	return &chatStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Registry ====================

// documentRegistry implements driven.DocumentRegistry.
type documentRegistry struct {
	store *Store
}

var _ driven.DocumentRegistry = (*documentRegistry)(nil)

// Create stores a new document record.
func (r *documentRegistry) Create(ctx context.Context, doc *domain.Document) error {
	if doc.ID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, filename, owner_id, status, chunks_count, error, file_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Filename, doc.OwnerID, string(doc.Status),
		doc.ChunksCount, doc.Error, doc.FilePath, doc.CreatedAt, doc.UpdatedAt)

	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}
	return nil
}

// Get retrieves a document by ID.
func (r *documentRegistry) Get(ctx context.Context, id string) (*domain.Document, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, filename, owner_id, status, chunks_count, error, file_path, created_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	return scanDocument(row)
}

// SetStatus transitions a document's lifecycle status and updates the
// chunk count and error message alongside it.
func (r *documentRegistry) SetStatus(ctx context.Context, id string, status domain.Status, fields driven.StatusFields) error {
	result, err := r.store.db.ExecContext(ctx, `
		UPDATE documents
		SET status = ?, chunks_count = ?, error = ?, updated_at = ?
		WHERE id = ?
	`, string(status), fields.ChunksCount, fields.Error, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating document status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking status update: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetFilePath records where the uploaded file was stored.
func (r *documentRegistry) SetFilePath(ctx context.Context, id, path string) error {
	result, err := r.store.db.ExecContext(ctx, `
		UPDATE documents SET file_path = ?, updated_at = ? WHERE id = ?
	`, path, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating document file path: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking file path update: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOwner returns all documents for a user, newest first.
func (r *documentRegistry) ListByOwner(ctx context.Context, ownerID string) ([]domain.Document, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, filename, owner_id, status, chunks_count, error, file_path, created_at, updated_at
		FROM documents WHERE owner_id = ?
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// ==================== Chat Store ====================

// chatStore implements driven.ChatStore.
type chatStore struct {
	store *Store
}

var _ driven.ChatStore = (*chatStore)(nil)

// Append stores a chat record.
func (s *chatStore) Append(ctx context.Context, record *domain.ChatRecord) error {
	if record.ID == "" {
		return domain.ErrInvalidInput
	}

	contextsJSON, err := json.Marshal(record.Contexts)
	if err != nil {
		return fmt.Errorf("marshalling contexts: %w", err)
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO chats (id, user_id, document_id, question, answer, contexts, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.UserID, record.DocumentID, record.Question,
		record.Answer, string(contextsJSON), record.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving chat record: %w", err)
	}
	return nil
}

// ListByDocument returns chat records for a document, oldest first.
func (s *chatStore) ListByDocument(ctx context.Context, documentID string) ([]domain.ChatRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, user_id, document_id, question, answer, contexts, created_at
		FROM chats WHERE document_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chat records: %w", err)
	}
	defer rows.Close()

	var records []domain.ChatRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var record domain.ChatRecord
		var contextsJSON string
		if err := rows.Scan(&record.ID, &record.UserID, &record.DocumentID,
			&record.Question, &record.Answer, &contextsJSON, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning chat record: %w", err)
		}

		if err := json.Unmarshal([]byte(contextsJSON), &record.Contexts); err != nil {
			return nil, fmt.Errorf("unmarshaling contexts: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat records: %w", err)
	}

	return records, nil
}

// ==================== Helper Functions ====================

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var rawStatus string

	if err := row.Scan(&doc.ID, &doc.Filename, &doc.OwnerID, &rawStatus,
		&doc.ChunksCount, &doc.Error, &doc.FilePath, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Status = domain.NormaliseStatus(rawStatus)
	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var rawStatus string

	if err := rows.Scan(&doc.ID, &doc.Filename, &doc.OwnerID, &rawStatus,
		&doc.ChunksCount, &doc.Error, &doc.FilePath, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Status = domain.NormaliseStatus(rawStatus)
	return &doc, nil
}
