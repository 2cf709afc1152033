package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
)

// ShoppingListHeader is the first line of the rendered artifact.
const ShoppingListHeader = "Список покупок:"

// ShoppingListFilename is the attachment name served on download.
const ShoppingListFilename = "ingredients.txt"

// ShoppingListItem is one summed line of a user's shopping list.
type ShoppingListItem struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

// ShoppingListService reduces a user's cart to the deduplicated, summed
// ingredient list.
type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// Build aggregates the composition of every recipe in the user's cart.
// Grouping is by (name, measurement_unit) rather than ingredient id, so
// duplicate catalog rows with identical identity still sum into one line.
// Results are sorted by name (unit as tiebreak) so identical cart contents
// always render identically.
func (s *ShoppingListService) Build(ctx context.Context, userID uuid.UUID) ([]ShoppingListItem, error) {
	var rows []struct {
		Name            string
		MeasurementUnit string
		Total           int
	}
	err := s.db.WithContext(ctx).
		Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_cart_entries ON shopping_cart_entries.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_cart_entries.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC, ingredients.measurement_unit ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]ShoppingListItem, len(rows))
	for i, row := range rows {
		items[i] = ShoppingListItem{
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          row.Total,
		}
	}
	return items, nil
}

// Render produces the plain-text artifact: the header line followed by one
// line per ingredient. An empty cart renders just the header.
func (s *ShoppingListService) Render(items []ShoppingListItem) string {
	var b strings.Builder
	b.WriteString(ShoppingListHeader)
	b.WriteString("\n")
	for _, item := range items {
		fmt.Fprintf(&b, "%s %s - %d\n", item.Name, item.MeasurementUnit, item.Amount)
	}
	return b.String()
}
