package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/service"
	"github.com/platefeed/backend/internal/testhelpers"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLite(t)
	auth := service.NewAuthService(db, nil, "test-secret")
	catalog := service.NewCatalogService(db)
	recipes := service.NewRecipeService(db)
	relations := service.NewRelationService(db)
	shopping := service.NewShoppingListService(db)
	images, err := service.NewImageService(context.Background(), "", "/media", t.TempDir())
	require.NoError(t, err)

	router := gin.New()
	v1 := router.Group("/api")
	NewAuthHandler(auth).RegisterRoutes(v1)
	NewUserHandler(auth, recipes, relations).RegisterRoutes(v1)
	NewCatalogHandler(catalog).RegisterRoutes(v1)
	NewRecipeHandler(recipes, relations, shopping, images, auth).RegisterRoutes(v1)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registerAndLogin creates an account over the API and returns its id and a
// bearer token.
func registerAndLogin(t *testing.T, router *gin.Engine, username string) (string, string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":      username + "@example.com",
		"username":   username,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "pass1234",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	userID := decodeBody(t, w)["id"].(string)

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    username + "@example.com",
		"password": "pass1234",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decodeBody(t, w)["auth_token"].(string)

	return userID, token
}
