// Package repomanager hands out repositories bound to a connection or
// transaction, so services can run several repositories in one unit of work.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/notebook/internal/dbx"
	"github.com/dmitrijs2005/notebook/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notebook/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
}
