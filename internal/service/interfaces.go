package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, username, firstName, lastName, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, claims *types.TokenClaims) error
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, int64, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	Create(ctx context.Context, authorID uuid.UUID, input RecipeInput) (*RecipeView, error)
	Update(ctx context.Context, viewerID, recipeID uuid.UUID, input RecipeInput) (*RecipeView, error)
	Delete(ctx context.Context, viewerID, recipeID uuid.UUID) error
	Get(ctx context.Context, viewerID *uuid.UUID, recipeID uuid.UUID) (*RecipeView, error)
	List(ctx context.Context, viewerID *uuid.UUID, filter RecipeFilter) ([]RecipeView, int64, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]models.Recipe, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
}

// IRelationService defines the interface for the follow/favorite/cart toggles
type IRelationService interface {
	FavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	UnfavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	AddToCart(ctx context.Context, userID, recipeID uuid.UUID) error
	RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error
	FollowAuthor(ctx context.Context, userID, authorID uuid.UUID) error
	UnfollowAuthor(ctx context.Context, userID, authorID uuid.UUID) error
	IsFollowing(ctx context.Context, userID *uuid.UUID, authorID uuid.UUID) (bool, error)
	Subscriptions(ctx context.Context, userID uuid.UUID, recipesLimit, limit, offset int) ([]SubscriptionView, int64, error)
}

var (
	_ IAuthService     = (*AuthService)(nil)
	_ IRecipeService   = (*RecipeService)(nil)
	_ IRelationService = (*RelationService)(nil)
)
