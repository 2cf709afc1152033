package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
)

// IngredientAmount is one entry of a proposed recipe composition.
type IngredientAmount struct {
	IngredientID uuid.UUID
	Amount       int
}

// RecipeInput carries the writable recipe fields plus the full composition.
// Create and update both take the complete ingredient and tag lists; an
// update replaces the stored composition, it never merges.
type RecipeInput struct {
	Name        string
	ImageURL    string
	Text        string
	CookingTime int
	Ingredients []IngredientAmount
	TagIDs      []uuid.UUID
}

// RecipeView is a recipe with everything the read path needs: loaded
// composition, author, and the per-viewer derived flags.
type RecipeView struct {
	Recipe      models.Recipe
	Tags        []models.Tag
	IsFavorited bool
	IsInCart    bool
}

// RecipeFilter narrows List. All fields combine with AND; tag slugs are OR
// among themselves.
type RecipeFilter struct {
	AuthorID  *uuid.UUID
	TagSlugs  []string
	Favorited bool
	InCart    bool
	Limit     int
	Offset    int
}

// RecipeService handles recipe CRUD and the composition rules around it.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// validateComposition enforces the create/update contract: at least one
// ingredient, no duplicates, positive amounts, and all referenced catalog
// rows must exist. Pure validation, no writes.
func (s *RecipeService) validateComposition(tx *gorm.DB, ingredients []IngredientAmount, tagIDs []uuid.UUID) error {
	if len(ingredients) == 0 {
		return ErrEmptyIngredients
	}

	seen := make(map[uuid.UUID]bool, len(ingredients))
	ingredientIDs := make([]uuid.UUID, 0, len(ingredients))
	for _, ia := range ingredients {
		if seen[ia.IngredientID] {
			return ErrDuplicateIngredient
		}
		seen[ia.IngredientID] = true
		if ia.Amount <= 0 {
			return ErrNonPositiveAmount
		}
		ingredientIDs = append(ingredientIDs, ia.IngredientID)
	}

	var count int64
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ingredientIDs).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ingredientIDs)) {
		return fmt.Errorf("%w: unknown ingredient", ErrNotFound)
	}

	if len(tagIDs) > 0 {
		if err := tx.Model(&models.Tag{}).Where("id IN ?", tagIDs).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(tagIDs)) {
			return fmt.Errorf("%w: unknown tag", ErrNotFound)
		}
	}

	return nil
}

func validateFields(input RecipeInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: recipe name is required", ErrValidation)
	}
	if input.CookingTime <= 0 {
		return fmt.Errorf("%w: cooking time must be a positive number of minutes", ErrValidation)
	}
	return nil
}

// Create persists the recipe together with its composition. The whole write
// runs in one transaction: either the recipe row and every join row land, or
// none do.
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, input RecipeInput) (*RecipeView, error) {
	if err := validateFields(input); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        input.Name,
		ImageURL:    input.ImageURL,
		Text:        input.Text,
		CookingTime: input.CookingTime,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.validateComposition(tx, input.Ingredients, input.TagIDs); err != nil {
			return err
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return createComposition(tx, recipe.ID, input.Ingredients, input.TagIDs)
	})
	if err != nil {
		return nil, translateDBError(err)
	}

	return s.Get(ctx, &authorID, recipe.ID)
}

// Update replaces the recipe fields and its full composition. Only the
// owning author may update; the prior ingredient and tag links are cleared
// and rewritten within the same transaction, so readers never observe a
// half-replaced composition. Concurrent author updates are last-write-wins.
func (s *RecipeService) Update(ctx context.Context, viewerID, recipeID uuid.UUID, input RecipeInput) (*RecipeView, error) {
	if err := validateFields(input); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			return err
		}
		if recipe.AuthorID != viewerID {
			return ErrPermissionDenied
		}
		if err := s.validateComposition(tx, input.Ingredients, input.TagIDs); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":         input.Name,
			"text":         input.Text,
			"cooking_time": input.CookingTime,
		}
		if input.ImageURL != "" {
			updates["image_url"] = input.ImageURL
		}
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		return createComposition(tx, recipeID, input.Ingredients, input.TagIDs)
	})
	if err != nil {
		return nil, translateDBError(err)
	}

	return s.Get(ctx, &viewerID, recipeID)
}

func createComposition(tx *gorm.DB, recipeID uuid.UUID, ingredients []IngredientAmount, tagIDs []uuid.UUID) error {
	for _, ia := range ingredients {
		link := models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ia.IngredientID,
			Amount:       ia.Amount,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	for _, tagID := range tagIDs {
		link := models.RecipeTag{RecipeID: recipeID, TagID: tagID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the recipe and cascades to its join rows plus any
// favorites and cart entries referencing it.
func (s *RecipeService) Delete(ctx context.Context, viewerID, recipeID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			return err
		}
		if recipe.AuthorID != viewerID {
			return ErrPermissionDenied
		}
		for _, m := range []interface{}{
			&models.RecipeIngredient{},
			&models.RecipeTag{},
			&models.Favorite{},
			&models.ShoppingCartEntry{},
		} {
			if err := tx.Where("recipe_id = ?", recipeID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&recipe).Error
	})
	return translateDBError(err)
}

// Get loads one recipe with its composition and the derived flags for the
// given viewer. A nil viewer is anonymous: both flags are false.
func (s *RecipeService) Get(ctx context.Context, viewerID *uuid.UUID, recipeID uuid.UUID) (*RecipeView, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Ingredients.Ingredient").
		Preload("Tags.Tag").
		First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		return nil, translateDBError(err)
	}

	views, err := s.buildViews(ctx, viewerID, []models.Recipe{recipe})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List returns the filtered recipe page plus the unpaginated total, newest
// first. Filtering on viewer relations with an anonymous viewer yields an
// empty page, not an error.
func (s *RecipeService) List(ctx context.Context, viewerID *uuid.UUID, filter RecipeFilter) ([]RecipeView, int64, error) {
	if (filter.Favorited || filter.InCart) && viewerID == nil {
		return []RecipeView{}, 0, nil
	}

	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		sub := s.db.Model(&models.RecipeTag{}).
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", sub)
	}
	if filter.Favorited {
		sub := s.db.Model(&models.Favorite{}).
			Select("recipe_id").
			Where("user_id = ?", *viewerID)
		query = query.Where("recipes.id IN (?)", sub)
	}
	if filter.InCart {
		sub := s.db.Model(&models.ShoppingCartEntry{}).
			Select("recipe_id").
			Where("user_id = ?", *viewerID)
		query = query.Where("recipes.id IN (?)", sub)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.
		Preload("Author").
		Preload("Ingredients.Ingredient").
		Preload("Tags.Tag").
		Order("recipes.created_at DESC, recipes.id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	views, err := s.buildViews(ctx, viewerID, recipes)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// ListByAuthor returns the author's recipes newest first, capped at limit
// when limit > 0. Used for the subscription previews.
func (s *RecipeService) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// CountByAuthor returns how many recipes an author has published.
func (s *RecipeService) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

// buildViews resolves the per-viewer flags with one membership query per
// relation instead of one per recipe.
func (s *RecipeService) buildViews(ctx context.Context, viewerID *uuid.UUID, recipes []models.Recipe) ([]RecipeView, error) {
	favorited := map[uuid.UUID]bool{}
	inCart := map[uuid.UUID]bool{}

	if viewerID != nil && len(recipes) > 0 {
		ids := make([]uuid.UUID, len(recipes))
		for i, r := range recipes {
			ids[i] = r.ID
		}

		var favs []models.Favorite
		if err := s.db.WithContext(ctx).
			Where("user_id = ? AND recipe_id IN ?", *viewerID, ids).
			Find(&favs).Error; err != nil {
			return nil, err
		}
		for _, f := range favs {
			favorited[f.RecipeID] = true
		}

		var entries []models.ShoppingCartEntry
		if err := s.db.WithContext(ctx).
			Where("user_id = ? AND recipe_id IN ?", *viewerID, ids).
			Find(&entries).Error; err != nil {
			return nil, err
		}
		for _, e := range entries {
			inCart[e.RecipeID] = true
		}
	}

	views := make([]RecipeView, len(recipes))
	for i, r := range recipes {
		tags := make([]models.Tag, len(r.Tags))
		for j, rt := range r.Tags {
			tags[j] = rt.Tag
		}
		views[i] = RecipeView{
			Recipe:      r,
			Tags:        tags,
			IsFavorited: favorited[r.ID],
			IsInCart:    inCart[r.ID],
		}
	}
	return views, nil
}
