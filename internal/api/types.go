package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/service"
)

// defaultPageSize matches the original API contract: six items per page
// unless the client asks otherwise.
const defaultPageSize = 6

type userResponse struct {
	Email        string    `json:"email"`
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

func newUserResponse(user models.User, isSubscribed bool) userResponse {
	return userResponse{
		Email:        user.Email,
		ID:           user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

type recipeIngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

type recipeResponse struct {
	ID                uuid.UUID                  `json:"id"`
	Tags              []models.Tag               `json:"tags"`
	Author            userResponse               `json:"author"`
	Ingredients       []recipeIngredientResponse `json:"ingredients"`
	IsFavorited       bool                       `json:"is_favorited"`
	IsInShoppingCart  bool                       `json:"is_in_shopping_cart"`
	Name              string                     `json:"name"`
	Image             string                     `json:"image"`
	Text              string                     `json:"text"`
	CookingTime       int                        `json:"cooking_time"`
	CreatedAt         time.Time                  `json:"created_at"`
}

func newRecipeResponse(view service.RecipeView, authorSubscribed bool) recipeResponse {
	ingredients := make([]recipeIngredientResponse, len(view.Recipe.Ingredients))
	for i, ri := range view.Recipe.Ingredients {
		ingredients[i] = recipeIngredientResponse{
			ID:              ri.IngredientID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		}
	}
	tags := view.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	return recipeResponse{
		ID:               view.Recipe.ID,
		Tags:             tags,
		Author:           newUserResponse(view.Recipe.Author, authorSubscribed),
		Ingredients:      ingredients,
		IsFavorited:      view.IsFavorited,
		IsInShoppingCart: view.IsInCart,
		Name:             view.Recipe.Name,
		Image:            view.Recipe.ImageURL,
		Text:             view.Recipe.Text,
		CookingTime:      view.Recipe.CookingTime,
		CreatedAt:        view.Recipe.CreatedAt,
	}
}

// shortRecipeResponse is the trimmed shape used for relation toggles and
// subscription previews.
type shortRecipeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

func newShortRecipeResponse(recipe models.Recipe) shortRecipeResponse {
	return shortRecipeResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}

type subscriptionResponse struct {
	userResponse
	Recipes      []shortRecipeResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

func newSubscriptionResponse(view service.SubscriptionView) subscriptionResponse {
	recipes := make([]shortRecipeResponse, len(view.Recipes))
	for i, r := range view.Recipes {
		recipes[i] = newShortRecipeResponse(r)
	}
	return subscriptionResponse{
		userResponse: newUserResponse(view.Author, true),
		Recipes:      recipes,
		RecipesCount: view.RecipesCount,
	}
}

// page is the list envelope: total count plus the current slice.
type page struct {
	Count   int64       `json:"count"`
	Results interface{} `json:"results"`
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit = defaultPageSize
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			offset = v
		}
	}
	return limit, offset
}

// respondError translates the service error taxonomy into HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyExists), errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
