package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platefeed/backend/internal/middleware"
	"github.com/platefeed/backend/internal/service"
)

type UserHandler struct {
	auth      service.IAuthService
	recipes   service.IRecipeService
	relations service.IRelationService
}

func NewUserHandler(auth service.IAuthService, recipes service.IRecipeService, relations service.IRelationService) *UserHandler {
	return &UserHandler{auth: auth, recipes: recipes, relations: relations}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", middleware.OptionalAuth(h.auth), h.ListUsers)
		users.GET("/subscriptions", middleware.AuthMiddleware(h.auth), h.Subscriptions)
		users.GET("/:id", middleware.OptionalAuth(h.auth), h.GetUser)
		users.POST("/:id/subscribe", middleware.AuthMiddleware(h.auth), h.Subscribe)
		users.DELETE("/:id/subscribe", middleware.AuthMiddleware(h.auth), h.Unsubscribe)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, offset := pageParams(c)
	users, total, err := h.auth.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	viewer := middleware.Viewer(c)
	results := make([]userResponse, len(users))
	for i, user := range users {
		subscribed, err := h.relations.IsFollowing(c.Request.Context(), viewer, user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		results[i] = newUserResponse(user, subscribed)
	}
	c.JSON(http.StatusOK, page{Count: total, Results: results})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	user, err := h.auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	subscribed, err := h.relations.IsFollowing(c.Request.Context(), middleware.Viewer(c), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(*user, subscribed))
}

// Subscribe follows an author and returns the subscription entry with the
// author's recipe preview, capped by ?recipes_limit=.
func (h *UserHandler) Subscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	viewer := middleware.Viewer(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.relations.FollowAuthor(c.Request.Context(), *viewer, authorID); err != nil {
		respondError(c, err)
		return
	}

	author, err := h.auth.GetUser(c.Request.Context(), authorID)
	if err != nil {
		respondError(c, err)
		return
	}
	recipes, err := h.recipes.ListByAuthor(c.Request.Context(), authorID, recipesLimitParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	count, err := h.recipes.CountByAuthor(c.Request.Context(), authorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newSubscriptionResponse(service.SubscriptionView{
		Author:       *author,
		Recipes:      recipes,
		RecipesCount: count,
	}))
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	viewer := middleware.Viewer(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.relations.UnfollowAuthor(c.Request.Context(), *viewer, authorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	viewer := middleware.Viewer(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	limit, offset := pageParams(c)
	views, total, err := h.relations.Subscriptions(c.Request.Context(), *viewer, recipesLimitParam(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]subscriptionResponse, len(views))
	for i, view := range views {
		results[i] = newSubscriptionResponse(view)
	}
	c.JSON(http.StatusOK, page{Count: total, Results: results})
}

func recipesLimitParam(c *gin.Context) int {
	if raw := c.Query("recipes_limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return 0
}
