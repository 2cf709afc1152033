package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/platefeed/backend/internal/service"
)

// MockRelationService is a mock implementation of the IRelationService interface
type MockRelationService struct {
	mock.Mock
}

func (m *MockRelationService) FavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockRelationService) UnfavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockRelationService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockRelationService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockRelationService) FollowAuthor(ctx context.Context, userID, authorID uuid.UUID) error {
	args := m.Called(ctx, userID, authorID)
	return args.Error(0)
}

func (m *MockRelationService) UnfollowAuthor(ctx context.Context, userID, authorID uuid.UUID) error {
	args := m.Called(ctx, userID, authorID)
	return args.Error(0)
}

func (m *MockRelationService) IsFollowing(ctx context.Context, userID *uuid.UUID, authorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRelationService) Subscriptions(ctx context.Context, userID uuid.UUID, recipesLimit, limit, offset int) ([]service.SubscriptionView, int64, error) {
	args := m.Called(ctx, userID, recipesLimit, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]service.SubscriptionView), args.Get(1).(int64), args.Error(2)
}
