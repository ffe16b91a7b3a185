// Package registry remembers which contract documents have already been
// processed, so the watcher's rescans and the batch CLI's reruns do not
// re-extract (and re-bill the AI pass for) the same file.
package registry

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// Registry is a small SQLite table keyed on the document's absolute path.
type Registry struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (creating if needed) the registry database at path. Use
// ":memory:" for tests.
func Open(path string, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open registry %s: %w", path, err)
	}
	// The registry is written from the watcher and the batch path; a single
	// connection sidesteps SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	const ddl = `
CREATE TABLE IF NOT EXISTS processed_files (
	path         TEXT PRIMARY KEY,
	processed_at TIMESTAMP NOT NULL
);`
	if _, err := db.Exec(ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap registry: %w", err)
	}
	return &Registry{db: db, log: logger}, nil
}

func (r *Registry) Close() error { return r.db.Close() }

// IsProcessed reports whether path was already marked.
func (r *Registry) IsProcessed(ctx context.Context, path string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM processed_files WHERE path = ?`, path).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("registry lookup: %w", err)
	}
	return true, nil
}

// MarkProcessed records path. Marking twice is fine.
func (r *Registry) MarkProcessed(ctx context.Context, path string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO processed_files (path, processed_at) VALUES (?, ?)
		 ON CONFLICT(path) DO UPDATE SET processed_at = excluded.processed_at`,
		path, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("registry mark: %w", err)
	}
	r.log.Debug("registry.marked", "path", path)
	return nil
}

// Clear forgets every processed file. Backs the batch CLI's reprocess flag.
func (r *Registry) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM processed_files`)
	if err != nil {
		return 0, fmt.Errorf("registry clear: %w", err)
	}
	n, _ := res.RowsAffected()
	r.log.Info("registry.cleared", "entries", n)
	return n, nil
}
