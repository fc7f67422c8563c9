package pgsql

import (
	portsrepo "github.com/cajadiaria/caja_diaria_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		MovementRepo:  newPgxMovementRepository(dbPool),
		CatalogRepo:   newPgxCatalogRepository(dbPool),
		SecondaryRepo: newPgxSecondaryRepository(dbPool),
		ArqueoRepo:    newPgxArqueoRepository(dbPool),
		ClosingRepo:   newPgxClosingRepository(dbPool),
		IdentityRepo:  newPgxIdentityRepository(dbPool),
		UserRepo:      newPgxUserRepository(dbPool),
	}
}
