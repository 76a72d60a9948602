// Package store is the public factory for recipe stores. It picks the
// backend named in a Config while keeping the implementations internal.
package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/recipecost/internal/memory"
	"github.com/mesh-intelligence/recipecost/internal/sqlstore"
	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// Open validates cfg and returns a ready store for its backend. The caller
// must Close it.
//
// Example:
//
//	st, err := store.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".recipecost-db",
//	}, logger)
//	defer st.Close()
func Open(cfg types.Config, log *zap.Logger) (types.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	switch cfg.Backend {
	case types.BackendMemory:
		return memory.New(memory.WithLogger(log)), nil
	case types.BackendSQLite, types.BackendPostgres:
		st, err := sqlstore.Open(cfg, log)
		if err != nil {
			return nil, fmt.Errorf("opening %s store: %w", cfg.Backend, err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrBackendUnknown, cfg.Backend)
	}
}
