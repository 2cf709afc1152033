package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/testhelpers"
)

func createRecipeWith(t *testing.T, svc *RecipeService, authorID uuid.UUID, name string, ingredients []IngredientAmount) uuid.UUID {
	t.Helper()
	view, err := svc.Create(context.Background(), authorID, RecipeInput{
		Name:        name,
		Text:        "t",
		CookingTime: 10,
		Ingredients: ingredients,
	})
	require.NoError(t, err)
	return view.Recipe.ID
}

func TestShoppingListSumsAcrossCart(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	recipes := NewRecipeService(db)
	relations := NewRelationService(db)
	shopping := NewShoppingListService(db)
	ctx := context.Background()

	author := testhelpers.CreateTestUser(t, db, "author")
	shopper := testhelpers.CreateTestUser(t, db, "shopper")
	flour := testhelpers.CreateTestIngredient(t, db, "flour", models.UnitGram)
	egg := testhelpers.CreateTestIngredient(t, db, "egg", models.UnitPiece)
	milk := testhelpers.CreateTestIngredient(t, db, "milk", models.UnitGram)

	r1 := createRecipeWith(t, recipes, author.ID, "pancakes", []IngredientAmount{
		{IngredientID: flour.ID, Amount: 200},
		{IngredientID: egg.ID, Amount: 2},
	})
	r2 := createRecipeWith(t, recipes, author.ID, "porridge", []IngredientAmount{
		{IngredientID: flour.ID, Amount: 100},
		{IngredientID: milk.ID, Amount: 50},
	})
	// Not in the cart; must not contribute.
	createRecipeWith(t, recipes, author.ID, "omelette", []IngredientAmount{
		{IngredientID: egg.ID, Amount: 10},
	})

	require.NoError(t, relations.AddToCart(ctx, shopper.ID, r1))
	require.NoError(t, relations.AddToCart(ctx, shopper.ID, r2))

	items, err := shopping.Build(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Equal(t, []ShoppingListItem{
		{Name: "egg", MeasurementUnit: models.UnitPiece, Amount: 2},
		{Name: "flour", MeasurementUnit: models.UnitGram, Amount: 300},
		{Name: "milk", MeasurementUnit: models.UnitGram, Amount: 50},
	}, items)

	// Removing a cart entry removes exactly that recipe's contribution.
	require.NoError(t, relations.RemoveFromCart(ctx, shopper.ID, r2))
	items, err = shopping.Build(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Equal(t, []ShoppingListItem{
		{Name: "egg", MeasurementUnit: models.UnitPiece, Amount: 2},
		{Name: "flour", MeasurementUnit: models.UnitGram, Amount: 200},
	}, items)
}

func TestShoppingListGroupsByIdentityNotID(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	recipes := NewRecipeService(db)
	relations := NewRelationService(db)
	shopping := NewShoppingListService(db)
	ctx := context.Background()

	author := testhelpers.CreateTestUser(t, db, "author")
	// Two catalog rows with the same (name, unit) identity.
	saltA := testhelpers.CreateTestIngredient(t, db, "salt", models.UnitGram)
	saltB := testhelpers.CreateTestIngredient(t, db, "salt", models.UnitGram)

	r1 := createRecipeWith(t, recipes, author.ID, "soup", []IngredientAmount{
		{IngredientID: saltA.ID, Amount: 5},
	})
	r2 := createRecipeWith(t, recipes, author.ID, "stew", []IngredientAmount{
		{IngredientID: saltB.ID, Amount: 3},
	})
	require.NoError(t, relations.AddToCart(ctx, author.ID, r1))
	require.NoError(t, relations.AddToCart(ctx, author.ID, r2))

	items, err := shopping.Build(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, []ShoppingListItem{
		{Name: "salt", MeasurementUnit: models.UnitGram, Amount: 8},
	}, items)
}

func TestShoppingListDeterministic(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	recipes := NewRecipeService(db)
	relations := NewRelationService(db)
	shopping := NewShoppingListService(db)
	ctx := context.Background()

	author := testhelpers.CreateTestUser(t, db, "author")
	first := testhelpers.CreateTestUser(t, db, "first")
	second := testhelpers.CreateTestUser(t, db, "second")
	flour := testhelpers.CreateTestIngredient(t, db, "flour", models.UnitGram)
	egg := testhelpers.CreateTestIngredient(t, db, "egg", models.UnitPiece)

	r1 := createRecipeWith(t, recipes, author.ID, "pancakes", []IngredientAmount{
		{IngredientID: flour.ID, Amount: 200},
		{IngredientID: egg.ID, Amount: 2},
	})
	r2 := createRecipeWith(t, recipes, author.ID, "bread", []IngredientAmount{
		{IngredientID: flour.ID, Amount: 500},
	})

	// Same cart contents, opposite insertion order.
	require.NoError(t, relations.AddToCart(ctx, first.ID, r1))
	require.NoError(t, relations.AddToCart(ctx, first.ID, r2))
	require.NoError(t, relations.AddToCart(ctx, second.ID, r2))
	require.NoError(t, relations.AddToCart(ctx, second.ID, r1))

	itemsFirst, err := shopping.Build(ctx, first.ID)
	require.NoError(t, err)
	itemsSecond, err := shopping.Build(ctx, second.ID)
	require.NoError(t, err)

	assert.Equal(t, shopping.Render(itemsFirst), shopping.Render(itemsSecond))
}

func TestShoppingListRender(t *testing.T) {
	shopping := NewShoppingListService(nil)

	text := shopping.Render([]ShoppingListItem{
		{Name: "egg", MeasurementUnit: models.UnitPiece, Amount: 2},
		{Name: "flour", MeasurementUnit: models.UnitGram, Amount: 300},
	})
	assert.Equal(t, "Список покупок:\negg piece - 2\nflour gram - 300\n", text)
}

func TestShoppingListEmptyCart(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	shopping := NewShoppingListService(db)

	shopper := testhelpers.CreateTestUser(t, db, "shopper")

	items, err := shopping.Build(context.Background(), shopper.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, "Список покупок:\n", shopping.Render(items))
}
