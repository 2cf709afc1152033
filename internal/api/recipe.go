package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platefeed/backend/internal/middleware"
	"github.com/platefeed/backend/internal/service"
)

type RecipeHandler struct {
	recipes   service.IRecipeService
	relations service.IRelationService
	shopping  *service.ShoppingListService
	images    *service.ImageService
	auth      middleware.TokenValidator
}

func NewRecipeHandler(
	recipes service.IRecipeService,
	relations service.IRelationService,
	shopping *service.ShoppingListService,
	images *service.ImageService,
	auth middleware.TokenValidator,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:   recipes,
		relations: relations,
		shopping:  shopping,
		images:    images,
		auth:      auth,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuth(h.auth), h.ListRecipes)
		recipes.GET("/download_shopping_cart", middleware.AuthMiddleware(h.auth), h.DownloadShoppingCart)
		recipes.GET("/:id", middleware.OptionalAuth(h.auth), h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.auth), h.CreateRecipe)
		recipes.PATCH("/:id", middleware.AuthMiddleware(h.auth), h.UpdateRecipe)
		recipes.PUT("/:id", middleware.AuthMiddleware(h.auth), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.auth), h.DeleteRecipe)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.auth), h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", middleware.AuthMiddleware(h.auth), h.UnfavoriteRecipe)
		recipes.POST("/:id/shopping_cart", middleware.AuthMiddleware(h.auth), h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", middleware.AuthMiddleware(h.auth), h.RemoveFromCart)
	}
}

type recipeIngredientRequest struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount int       `json:"amount"`
}

type recipeRequest struct {
	Name        string                    `json:"name" binding:"required"`
	Image       string                    `json:"image"`
	Text        string                    `json:"text"`
	CookingTime int                       `json:"cooking_time"`
	Ingredients []recipeIngredientRequest `json:"ingredients"`
	Tags        []uuid.UUID               `json:"tags"`
}

func (h *RecipeHandler) buildInput(c *gin.Context, req recipeRequest) (service.RecipeInput, error) {
	imageURL, err := h.images.Resolve(c.Request.Context(), req.Image)
	if err != nil {
		return service.RecipeInput{}, err
	}
	ingredients := make([]service.IngredientAmount, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		ingredients[i] = service.IngredientAmount{IngredientID: ing.ID, Amount: ing.Amount}
	}
	return service.RecipeInput{
		Name:        req.Name,
		ImageURL:    imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Ingredients: ingredients,
		TagIDs:      req.Tags,
	}, nil
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	viewer := middleware.Viewer(c)

	filter := service.RecipeFilter{}
	filter.Limit, filter.Offset = pageParams(c)

	if author := c.Query("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		filter.AuthorID = &authorID
	}
	for _, raw := range c.QueryArray("tags") {
		for _, slug := range strings.Split(raw, ",") {
			if slug = strings.TrimSpace(slug); slug != "" {
				filter.TagSlugs = append(filter.TagSlugs, slug)
			}
		}
	}
	filter.Favorited = boolParam(c, "is_favorited")
	filter.InCart = boolParam(c, "is_in_shopping_cart")

	views, total, err := h.recipes.List(c.Request.Context(), viewer, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]recipeResponse, len(views))
	for i, view := range views {
		subscribed, err := h.relations.IsFollowing(c.Request.Context(), viewer, view.Recipe.AuthorID)
		if err != nil {
			respondError(c, err)
			return
		}
		results[i] = newRecipeResponse(view, subscribed)
	}
	c.JSON(http.StatusOK, page{Count: total, Results: results})
}

func boolParam(c *gin.Context, name string) bool {
	v := c.Query(name)
	return v == "1" || strings.EqualFold(v, "true")
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	viewer := middleware.Viewer(c)

	view, err := h.recipes.Get(c.Request.Context(), viewer, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	subscribed, err := h.relations.IsFollowing(c.Request.Context(), viewer, view.Recipe.AuthorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRecipeResponse(*view, subscribed))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	viewer := middleware.Viewer(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	input, err := h.buildInput(c, req)
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := h.recipes.Create(c.Request.Context(), *viewer, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRecipeResponse(*view, false))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	viewer := middleware.Viewer(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	input, err := h.buildInput(c, req)
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := h.recipes.Update(c.Request.Context(), *viewer, recipeID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRecipeResponse(*view, false))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	viewer := middleware.Viewer(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), *viewer, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) toggleRelation(c *gin.Context, add func(userID, recipeID uuid.UUID) error) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	viewer := middleware.Viewer(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if err := add(*viewer, recipeID); err != nil {
		respondError(c, err)
		return
	}

	if c.Request.Method == http.MethodDelete {
		c.Status(http.StatusNoContent)
		return
	}
	view, err := h.recipes.Get(c.Request.Context(), viewer, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newShortRecipeResponse(view.Recipe))
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	h.toggleRelation(c, func(userID, recipeID uuid.UUID) error {
		return h.relations.FavoriteRecipe(c.Request.Context(), userID, recipeID)
	})
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	h.toggleRelation(c, func(userID, recipeID uuid.UUID) error {
		return h.relations.UnfavoriteRecipe(c.Request.Context(), userID, recipeID)
	})
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.toggleRelation(c, func(userID, recipeID uuid.UUID) error {
		return h.relations.AddToCart(c.Request.Context(), userID, recipeID)
	})
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.toggleRelation(c, func(userID, recipeID uuid.UUID) error {
		return h.relations.RemoveFromCart(c.Request.Context(), userID, recipeID)
	})
}

// DownloadShoppingCart serves the aggregated shopping list as a plain-text
// attachment.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	viewer := middleware.Viewer(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	items, err := h.shopping.Build(c.Request.Context(), *viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	text := h.shopping.Render(items)

	c.Header("Content-Disposition", `attachment; filename="`+service.ShoppingListFilename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}
