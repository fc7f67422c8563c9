package services

import (
	portsrepo "github.com/cajadiaria/caja_diaria_app/internal/core/ports/repositories"
	portssvc "github.com/cajadiaria/caja_diaria_app/internal/core/ports/services"
	"github.com/cajadiaria/caja_diaria_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Identity is wired first since every other service consults it for the
	// effective owner and permissions.
	container.Identity = NewIdentityService(repos.IdentityRepo, repos.UserRepo)

	container.Catalog = NewCatalogService(repos.CatalogRepo, container.Identity)
	container.Movement = NewMovementService(repos.MovementRepo, repos.CatalogRepo, repos.ClosingRepo, container.Identity, cfg.BusinessLocation)
	container.Secondary = NewSecondaryService(repos.SecondaryRepo, repos.CatalogRepo, container.Identity, cfg.BusinessLocation)
	container.Arqueo = NewArqueoService(repos.ArqueoRepo, repos.CatalogRepo, container.Identity, container.Secondary)
	container.Closing = NewClosingService(repos.ClosingRepo, container.Identity, cfg.BusinessLocation)

	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)
	container.User = NewUserService(repos.UserRepo, container.GoogleOAuthHandler)
	container.Token = NewTokenService(cfg, container.User)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.IdentitySvc        = (*identityService)(nil)
	_ portssvc.CatalogSvcFacade   = (*catalogService)(nil)
	_ portssvc.MovementSvcFacade  = (*movementService)(nil)
	_ portssvc.SecondarySvcFacade = (*secondaryService)(nil)
	_ portssvc.ArqueoSvcFacade    = (*arqueoService)(nil)
	_ portssvc.ClosingSvcFacade   = (*closingService)(nil)
)
