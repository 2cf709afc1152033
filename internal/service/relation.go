package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
)

// RelationService handles the three user relation toggles: follow,
// favorite, and shopping cart. All share the same add/remove state machine;
// the storage-layer unique index is the authority for duplicates, so
// concurrent duplicate adds collapse to ErrAlreadyExists.
type RelationService struct {
	db *gorm.DB
}

func NewRelationService(db *gorm.DB) *RelationService {
	return &RelationService{db: db}
}

func (s *RelationService) recipeExists(ctx context.Context, recipeID uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RelationService) FavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.recipeExists(ctx, recipeID); err != nil {
		return err
	}
	fav := models.Favorite{UserID: userID, RecipeID: recipeID}
	return translateDBError(s.db.WithContext(ctx).Create(&fav).Error)
}

func (s *RelationService) UnfavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RelationService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.recipeExists(ctx, recipeID); err != nil {
		return err
	}
	entry := models.ShoppingCartEntry{UserID: userID, RecipeID: recipeID}
	return translateDBError(s.db.WithContext(ctx).Create(&entry).Error)
}

func (s *RelationService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.ShoppingCartEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RelationService) FollowAuthor(ctx context.Context, userID, authorID uuid.UUID) error {
	if userID == authorID {
		return ErrSelfFollow
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", authorID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	follow := models.Follow{UserID: userID, AuthorID: authorID}
	return translateDBError(s.db.WithContext(ctx).Create(&follow).Error)
}

func (s *RelationService) UnfollowAuthor(ctx context.Context, userID, authorID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsFollowing reports whether user currently follows author. Derived flag
// for the read path; an anonymous viewer never follows anyone.
func (s *RelationService) IsFollowing(ctx context.Context, userID *uuid.UUID, authorID uuid.UUID) (bool, error) {
	if userID == nil {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", *userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// SubscriptionView is one entry of the subscriptions listing: a followed
// author, a capped preview of their recipes, and the uncapped count.
type SubscriptionView struct {
	Author       models.User
	Recipes      []models.Recipe
	RecipesCount int64
}

// Subscriptions lists the authors the user follows, most recently followed
// first. recipesLimit caps each preview; zero means no cap.
func (s *RelationService) Subscriptions(ctx context.Context, userID uuid.UUID, recipesLimit, limit, offset int) ([]SubscriptionView, int64, error) {
	base := s.db.WithContext(ctx).Model(&models.Follow{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var follows []models.Follow
	if err := query.Find(&follows).Error; err != nil {
		return nil, 0, err
	}

	views := make([]SubscriptionView, 0, len(follows))
	for _, follow := range follows {
		var author models.User
		if err := s.db.WithContext(ctx).First(&author, "id = ?", follow.AuthorID).Error; err != nil {
			return nil, 0, err
		}

		var recipes []models.Recipe
		recipeQuery := s.db.WithContext(ctx).
			Where("author_id = ?", author.ID).
			Order("created_at DESC, id DESC")
		if recipesLimit > 0 {
			recipeQuery = recipeQuery.Limit(recipesLimit)
		}
		if err := recipeQuery.Find(&recipes).Error; err != nil {
			return nil, 0, err
		}

		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
			Where("author_id = ?", author.ID).
			Count(&count).Error; err != nil {
			return nil, 0, err
		}

		views = append(views, SubscriptionView{
			Author:       author,
			Recipes:      recipes,
			RecipesCount: count,
		})
	}
	return views, total, nil
}
