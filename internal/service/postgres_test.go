package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/backend/internal/service"
	"github.com/platefeed/backend/internal/testdb"
	"github.com/platefeed/backend/internal/testhelpers"
)

// TestConcurrentFavoriteOnPostgres checks that the unique index, not the
// service-level read, is what arbitrates duplicate toggles under real
// concurrency.
func TestConcurrentFavoriteOnPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	tdb := testdb.SetupTestDB(t)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, tdb.DB, "racer")
	flour := testhelpers.CreateTestIngredient(t, tdb.DB, "flour", "gram")
	recipes := service.NewRecipeService(tdb.DB)
	relations := service.NewRelationService(tdb.DB)

	view, err := recipes.Create(ctx, user.ID, service.RecipeInput{
		Name:        "Bread",
		Text:        "Bake.",
		CookingTime: 60,
		Ingredients: []service.IngredientAmount{{IngredientID: flour.ID, Amount: 500}},
	})
	require.NoError(t, err)

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = relations.FavoriteRecipe(ctx, user.ID, view.Recipe.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, service.ErrAlreadyExists), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)
}

func TestShoppingListAggregationOnPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	tdb := testdb.SetupTestDB(t)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, tdb.DB, "shopper")
	flour := testhelpers.CreateTestIngredient(t, tdb.DB, "flour", "gram")
	egg := testhelpers.CreateTestIngredient(t, tdb.DB, "egg", "piece")
	recipes := service.NewRecipeService(tdb.DB)
	relations := service.NewRelationService(tdb.DB)
	shopping := service.NewShoppingListService(tdb.DB)

	for _, input := range []service.RecipeInput{
		{
			Name: "Dough", Text: "x", CookingTime: 10,
			Ingredients: []service.IngredientAmount{
				{IngredientID: flour.ID, Amount: 200},
				{IngredientID: egg.ID, Amount: 1},
			},
		},
		{
			Name: "Batter", Text: "x", CookingTime: 10,
			Ingredients: []service.IngredientAmount{
				{IngredientID: flour.ID, Amount: 100},
			},
		},
	} {
		view, err := recipes.Create(ctx, user.ID, input)
		require.NoError(t, err)
		require.NoError(t, relations.AddToCart(ctx, user.ID, view.Recipe.ID))
	}

	items, err := shopping.Build(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, []service.ShoppingListItem{
		{Name: "egg", MeasurementUnit: "piece", Amount: 1},
		{Name: "flour", MeasurementUnit: "gram", Amount: 300},
	}, items)
}
