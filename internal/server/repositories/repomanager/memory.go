package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/notebook/internal/dbx"
	"github.com/dmitrijs2005/notebook/internal/server/repositories/memory"
	"github.com/dmitrijs2005/notebook/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notebook/internal/server/repositories/users"
)

// MemoryRepositoryManager serves every call from one shared memory.Store;
// the DBTX argument is ignored.
type MemoryRepositoryManager struct {
	store *memory.Store
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: memory.NewStore()}
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.store.Users() }
func (m *MemoryRepositoryManager) Notes(dbx.DBTX) notes.Repository { return m.store.Notes() }

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }
