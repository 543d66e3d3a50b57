package repomanager

import (
	"context"

	"github.com/dmitrijs2005/geomap/internal/server/repositories/memory"
)

// MemoryRepositoryManager vends the in-memory repositories. Every operation
// is atomic on its own; WithTx gives no rollback across operations.
type MemoryRepositoryManager struct {
	store *memory.Store
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: memory.NewStore()}
}

func (m *MemoryRepositoryManager) Repositories() Repositories {
	return Repositories{
		Users:      m.store.Users,
		Categories: m.store.Categories,
		Locations:  m.store.Locations,
		Polygons:   m.store.Polygons,
		Events:     m.store.Events,
	}
}

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return fn(ctx, m.Repositories())
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }
func (m *MemoryRepositoryManager) Ping(context.Context) error          { return nil }
func (m *MemoryRepositoryManager) Close() error                        { return nil }
