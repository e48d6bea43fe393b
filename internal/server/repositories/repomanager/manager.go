package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/seedshop/internal/dbx"
	"github.com/dmitrijs2005/seedshop/internal/server/repositories/seeds"
	"github.com/dmitrijs2005/seedshop/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Seeds(db dbx.DBTX) seeds.Repository
}
