package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps every ledger in one append-only table, one row per
// ledger line, cells as a text array. Insertion order is the sheet order.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// PostgresConfig mirrors the pool knobs we expose through env.
type PostgresConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	DialTimeout     time.Duration
}

// OpenPostgres connects and runs the schema bootstrap.
func OpenPostgres(ctx context.Context, cfg PostgresConfig, logger *slog.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("connecting to database")
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pc.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pc.ConnConfig.RuntimeParams["application_name"] = "contracts-ledger"

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	s := &PostgresStore{pool: pool, log: logger}
	if err := s.bootstrap(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("successfully connected to database")
	return s, nil
}

func (s *PostgresStore) bootstrap(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS ledger_rows (
	id        BIGSERIAL PRIMARY KEY,
	ledger_id TEXT NOT NULL,
	cells     TEXT[] NOT NULL,
	added_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS ledger_rows_ledger_idx ON ledger_rows (ledger_id, id);`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("bootstrap ledger schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() {
	s.log.Info("closing database connections")
	s.pool.Close()
}

// Ping verifies connectivity, used by startup health checks.
func (s *PostgresStore) Ping(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.pool.Ping(ctx)
}

// EnsureHeaders inserts the header row for an empty ledger.
func (s *PostgresStore) EnsureHeaders(ctx context.Context, ledgerID string, headers []string) error {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM ledger_rows WHERE ledger_id = $1`, ledgerID).Scan(&n)
	if err != nil {
		return fmt.Errorf("count ledger %s: %w", ledgerID, err)
	}
	if n > 0 {
		return nil
	}
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO ledger_rows (ledger_id, cells) VALUES ($1, $2)`, ledgerID, headers); err != nil {
		return fmt.Errorf("insert headers %s: %w", ledgerID, err)
	}
	s.log.Info("ledger.pg.created", "ledger", ledgerID, "columns", len(headers))
	return nil
}

func (s *PostgresStore) AppendRow(ctx context.Context, ledgerID string, row []string) error {
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO ledger_rows (ledger_id, cells) VALUES ($1, $2)`, ledgerID, row); err != nil {
		return fmt.Errorf("append %s: %w", ledgerID, err)
	}
	return nil
}

func (s *PostgresStore) ReadAll(ctx context.Context, ledgerID string) ([][]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT cells FROM ledger_rows WHERE ledger_id = $1 ORDER BY id`, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ledgerID, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var cells []string
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("scan %s: %w", ledgerID, err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", ledgerID, err)
	}
	return out, nil
}

var _ Store = (*PostgresStore)(nil)
