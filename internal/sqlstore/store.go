// Package sqlstore implements the durable recipe store backends. A Store
// serves every call from an embedded memory store and writes the resulting
// snapshot to SQLite or PostgreSQL before a mutation returns. When the write
// fails the memory store is rolled back, so callers never observe a change
// that was not persisted.
package sqlstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/recipecost/internal/memory"
	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// DBFile is the SQLite database file name inside the data directory.
const DBFile = "recipecost.db"

// Compile-time interface check.
var _ types.Store = (*Store)(nil)

// Store is a memory store persisted to a SQL database.
type Store struct {
	mu      sync.RWMutex
	mem     *memory.Store
	db      *sql.DB
	dialect dialect
	log     *zap.Logger
}

// Open connects to the backend named by cfg, creates or migrates the
// schema, and loads all rows.
func Open(cfg types.Config, log *zap.Logger, opts ...memory.Option) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	var (
		db  *sql.DB
		d   dialect
		err error
	)
	switch cfg.Backend {
	case types.BackendSQLite:
		db, err = openSQLite(cfg.DataDir)
		d = dialectSQLite
	case types.BackendPostgres:
		db, err = openPostgres(cfg.DSN, log)
		d = dialectPostgres
	default:
		return nil, fmt.Errorf("sqlstore cannot open backend %q: %w", cfg.Backend, types.ErrBackendUnknown)
	}
	if err != nil {
		return nil, err
	}

	snap, err := loadSnapshot(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("loading %s store: %w", cfg.Backend, err)
	}
	mem := memory.New(append([]memory.Option{memory.WithLogger(log)}, opts...)...)
	if err := mem.ImportState(snap); err != nil {
		db.Close()
		log.Error("stored rows failed validation", zap.String("backend", cfg.Backend), zap.Error(err))
		return nil, fmt.Errorf("loading %s store: %w: %v", cfg.Backend, ErrCorrupt, err)
	}

	log.Info("store opened",
		zap.String("backend", cfg.Backend),
		zap.Int("ingredients", len(snap.Ingredients)),
		zap.Int("recipes", len(snap.Recipes)))
	return &Store{mem: mem, db: db, dialect: d, log: log}, nil
}

func openSQLite(dataDir string) (*sql.DB, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dataDir, DBFile))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	// One connection avoids SQLITE_BUSY between pooled writers.
	db.SetMaxOpenConns(1)

	for _, stmt := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}
	return db, nil
}

func openPostgres(dsn string, log *zap.Logger) (*sql.DB, error) {
	if err := runMigrations(dsn, log); err != nil {
		return nil, err
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return db, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// mutate runs op against the memory store and persists the result. On a
// persistence failure the memory store is restored to its state before op.
func mutate[T any](s *Store, op func() (T, error)) (T, error) {
	var zero T

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return zero, ErrClosed
	}
	before, err := s.mem.ExportState()
	if err != nil {
		return zero, err
	}
	out, err := op()
	if err != nil {
		return zero, err
	}
	after, err := s.mem.ExportState()
	if err == nil {
		err = writeSnapshot(s.db, s.dialect, after)
	}
	if err != nil {
		if rerr := s.mem.ImportState(before); rerr != nil {
			s.log.Error("failed to restore store after persistence failure", zap.Error(rerr))
		}
		s.log.Error("failed to persist store", zap.Error(err))
		return zero, fmt.Errorf("persisting store: %w", err)
	}
	return out, nil
}

// read runs op under the read lock so readers never observe a mutation that
// is about to be rolled back.
func read[T any](s *Store, op func() (T, error)) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return op()
}
