package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/backend/internal/testhelpers"
)

func TestAuthAndMe(t *testing.T) {
	router, _ := newTestRouter(t)
	_, token := registerAndLogin(t, router, "alice")

	w := doJSON(t, router, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "alice", body["username"])
	assert.NotContains(t, body, "password")

	w = doJSON(t, router, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAndLogin(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":      "alice@example.com",
		"username":   "alice2",
		"first_name": "Test",
		"last_name":  "User",
		"password":   "pass1234",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	router, _ := newTestRouter(t)
	_, token := registerAndLogin(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}

func TestSubscribeFlow(t *testing.T) {
	router, db := newTestRouter(t)
	flour := testhelpers.CreateTestIngredient(t, db, "flour", "gram")
	authorID, authorToken := registerAndLogin(t, router, "author")
	_, readerToken := registerAndLogin(t, router, "reader")

	for _, name := range []string{"One", "Two", "Three"} {
		w := doJSON(t, router, http.MethodPost, "/api/recipes", authorToken, map[string]interface{}{
			"name":         name,
			"text":         "x",
			"cooking_time": 5,
			"ingredients": []map[string]interface{}{
				{"id": flour.ID, "amount": 100},
			},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := doJSON(t, router, http.MethodPost, "/api/users/"+authorID+"/subscribe?recipes_limit=2", readerToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "author", body["username"])
	assert.True(t, body["is_subscribed"].(bool))
	assert.Len(t, body["recipes"], 2)
	assert.EqualValues(t, 3, body["recipes_count"])

	// Repeat subscribe and self subscribe are both rejected.
	w = doJSON(t, router, http.MethodPost, "/api/users/"+authorID+"/subscribe", readerToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(t, router, http.MethodPost, "/api/users/"+authorID+"/subscribe", authorToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/users/subscriptions?recipes_limit=1", readerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	subs := decodeBody(t, w)
	assert.EqualValues(t, 1, subs["count"])
	results := subs["results"].([]interface{})
	require.Len(t, results, 1)
	assert.Len(t, results[0].(map[string]interface{})["recipes"], 1)

	// The author card shows is_subscribed for the reader only.
	w = doJSON(t, router, http.MethodGet, "/api/users/"+authorID, readerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeBody(t, w)["is_subscribed"].(bool))
	w = doJSON(t, router, http.MethodGet, "/api/users/"+authorID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decodeBody(t, w)["is_subscribed"].(bool))

	w = doJSON(t, router, http.MethodDelete, "/api/users/"+authorID+"/subscribe", readerToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, router, http.MethodDelete, "/api/users/"+authorID+"/subscribe", readerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListUsersPagination(t *testing.T) {
	router, _ := newTestRouter(t)
	for _, name := range []string{"alice", "bob", "carol"} {
		registerAndLogin(t, router, name)
	}

	w := doJSON(t, router, http.MethodGet, "/api/users?limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 3, body["count"])
	assert.Len(t, body["results"], 2)
}

func TestCatalogEndpoints(t *testing.T) {
	router, db := newTestRouter(t)
	testhelpers.CreateTestIngredient(t, db, "sugar", "gram")
	testhelpers.CreateTestIngredient(t, db, "salt", "gram")
	tag := testhelpers.CreateTestTag(t, db, "Dinner", "dinner")

	w := doJSON(t, router, http.MethodGet, "/api/ingredients?name=su", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ingredients []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ingredients))
	require.Len(t, ingredients, 1)
	assert.Equal(t, "sugar", ingredients[0]["name"])

	w = doJSON(t, router, http.MethodGet, "/api/tags/"+tag.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dinner", decodeBody(t, w)["slug"])
}
