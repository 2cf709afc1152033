package mocks

import "github.com/platefeed/backend/internal/service"

var (
	_ service.IAuthService     = (*MockAuthService)(nil)
	_ service.IRecipeService   = (*MockRecipeService)(nil)
	_ service.IRelationService = (*MockRelationService)(nil)
)
