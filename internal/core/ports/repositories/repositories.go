package repositories

// RepositoryProvider bundles every repository the service layer needs.
type RepositoryProvider struct {
	MovementRepo  MovementRepositoryWithTx
	CatalogRepo   CatalogRepository
	SecondaryRepo SecondaryRepository
	ArqueoRepo    ArqueoRepository
	ClosingRepo   ClosingRepository
	IdentityRepo  IdentityRepository
	UserRepo      UserRepository
}
