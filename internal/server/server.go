package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/platefeed/backend/config"
	"github.com/platefeed/backend/internal/api"
	"github.com/platefeed/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// NewServer wires the services and handlers onto a gin engine.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	authService := service.NewAuthService(db, redisClient, cfg.JWTSecret)
	catalogService := service.NewCatalogService(db)
	recipeService := service.NewRecipeService(db)
	relationService := service.NewRelationService(db)
	shoppingService := service.NewShoppingListService(db)
	imageService, err := service.NewImageService(context.Background(), cfg.MediaBucket, cfg.MediaBaseURL, cfg.MediaDir)
	if err != nil {
		return nil, err
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api")
	api.NewAuthHandler(authService).RegisterRoutes(v1)
	api.NewUserHandler(authService, recipeService, relationService).RegisterRoutes(v1)
	api.NewCatalogHandler(catalogService).RegisterRoutes(v1)
	api.NewRecipeHandler(recipeService, relationService, shoppingService, imageService, authService).RegisterRoutes(v1)

	if cfg.MediaBucket == "" {
		router.Static("/media", cfg.MediaDir)
	}

	return &Server{
		router: router,
		db:     db,
	}, nil
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the server
func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	log.Printf("Listening on :%s", port)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
