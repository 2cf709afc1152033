package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
)

var tagColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var allowedUnits = map[string]bool{
	models.UnitPiece:    true,
	models.UnitGram:     true,
	models.UnitKilogram: true,
}

// CatalogService handles the ingredient and tag reference data.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListIngredients returns ingredients whose name starts with the given
// prefix, ordered by name. An empty prefix returns the whole catalog.
func (s *CatalogService) ListIngredients(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	query := s.db.WithContext(ctx).Order("name ASC")
	if namePrefix != "" {
		query = query.Where("LOWER(name) LIKE ?", strings.ToLower(namePrefix)+"%")
	}
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *CatalogService) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, translateDBError(err)
	}
	return &ingredient, nil
}

func (s *CatalogService) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("slug ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *CatalogService) GetTag(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, translateDBError(err)
	}
	return &tag, nil
}

// CreateIngredient adds reference data. Used by the seed command; regular
// users never write to the catalog.
func (s *CatalogService) CreateIngredient(ctx context.Context, name, measurementUnit string) (*models.Ingredient, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: ingredient name is required", ErrValidation)
	}
	if !allowedUnits[measurementUnit] {
		return nil, fmt.Errorf("%w: unknown measurement unit %q", ErrValidation, measurementUnit)
	}
	ingredient := models.Ingredient{Name: name, MeasurementUnit: measurementUnit}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, translateDBError(err)
	}
	return &ingredient, nil
}

func (s *CatalogService) CreateTag(ctx context.Context, name, color, slug string) (*models.Tag, error) {
	if name == "" || slug == "" {
		return nil, fmt.Errorf("%w: tag name and slug are required", ErrValidation)
	}
	if color != "" && !tagColorPattern.MatchString(color) {
		return nil, fmt.Errorf("%w: tag color must be a #RRGGBB hex code", ErrValidation)
	}
	tag := models.Tag{Name: name, Color: color, Slug: slug}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, translateDBError(err)
	}
	return &tag, nil
}
