package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"fintrack-server/src/api"
	"fintrack-server/src/config"
	"fintrack-server/src/db"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a real database. Set TEST_DATABASE_URL to enable
// them, e.g. postgres://localhost:5432/fintrack_test.
func setupTest(t *testing.T) (*chi.Mux, *pgxpool.Pool) {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	t.Setenv("JWT_SECRET", "test-secret")

	pool, err := db.Connect(url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.RunMigrations(url))

	_, err = pool.Exec(context.Background(), "TRUNCATE users CASCADE")
	require.NoError(t, err)

	db.InitCache()

	cfg := config.Config{UploadDir: t.TempDir()}
	return api.NewRouter(pool, cfg), pool
}

func doJSON(t *testing.T, router *chi.Mux, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
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

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func registerUser(t *testing.T, router *chi.Mux, email string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Test User",
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func categoriesByName(t *testing.T, router *chi.Mux, token string) map[string]string {
	t.Helper()

	w := doJSON(t, router, http.MethodGet, "/api/categories", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	byName := map[string]string{}
	for _, raw := range body["data"].([]any) {
		c := raw.(map[string]any)
		byName[c["name"].(string)] = c["id"].(string)
	}
	return byName
}

func createTransaction(t *testing.T, router *chi.Mux, token string, payload map[string]any) map[string]any {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/transactions", token, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody(t, w)["data"].(map[string]any)
}

func TestRegisterSeedsDefaultCategories(t *testing.T) {
	router, _ := setupTest(t)
	token := registerUser(t, router, "alice@example.com")

	w := doJSON(t, router, http.MethodGet, "/api/categories", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(14), body["count"])

	w = doJSON(t, router, http.MethodGet, "/api/categories?type=expense", token, nil)
	body = decodeBody(t, w)
	assert.Equal(t, float64(9), body["count"])

	w = doJSON(t, router, http.MethodGet, "/api/categories?type=income", token, nil)
	body = decodeBody(t, w)
	assert.Equal(t, float64(5), body["count"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _ := setupTest(t)
	registerUser(t, router, "alice@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Someone Else",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", decodeBody(t, w)["error"])
}

func TestUnauthenticatedRequestRejected(t *testing.T) {
	router, _ := setupTest(t)

	w := doJSON(t, router, http.MethodGet, "/api/transactions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTransactionStatsFlow(t *testing.T) {
	router, _ := setupTest(t)
	token := registerUser(t, router, "alice@example.com")
	categories := categoriesByName(t, router, token)

	created := createTransaction(t, router, token, map[string]any{
		"title":    "Coffee",
		"amount":   50,
		"type":     "expense",
		"category": categories["Food & Dining"],
	})
	assert.Equal(t, "Coffee", created["title"])
	category := created["category"].(map[string]any)
	assert.Equal(t, "Food & Dining", category["name"])

	w := doJSON(t, router, http.MethodGet, "/api/transactions/stats/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)

	assert.Equal(t, "0", data["totalIncome"])
	assert.Equal(t, "50", data["totalExpense"])
	assert.Equal(t, "-50", data["balance"])

	breakdown := data["categoryBreakdown"].([]any)
	require.Len(t, breakdown, 1)
	entry := breakdown[0].(map[string]any)
	assert.Equal(t, "expense", entry["type"])
	assert.Equal(t, "Food & Dining", entry["category"])
	assert.Equal(t, "50", entry["total"])

	trend := data["monthlyTrend"].([]any)
	require.Len(t, trend, 1)
}

func TestSearchFilter(t *testing.T) {
	router, _ := setupTest(t)
	token := registerUser(t, router, "alice@example.com")
	categories := categoriesByName(t, router, token)

	createTransaction(t, router, token, map[string]any{
		"title":    "Grocery Shopping",
		"amount":   80,
		"type":     "expense",
		"category": categories["Food & Dining"],
	})
	createTransaction(t, router, token, map[string]any{
		"title":    "Gas",
		"amount":   40,
		"type":     "expense",
		"category": categories["Transportation"],
	})

	w := doJSON(t, router, http.MethodGet, "/api/transactions?search=gro", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])

	items := body["data"].([]any)
	assert.Equal(t, "Grocery Shopping", items[0].(map[string]any)["title"])
}

func TestPaginationPartition(t *testing.T) {
	router, _ := setupTest(t)
	token := registerUser(t, router, "alice@example.com")
	categories := categoriesByName(t, router, token)

	for i := 0; i < 5; i++ {
		createTransaction(t, router, token, map[string]any{
			"title":    fmt.Sprintf("Item %d", i),
			"amount":   10 + i,
			"type":     "expense",
			"category": categories["Shopping"],
			"date":     fmt.Sprintf("2024-03-%02d", i+1),
		})
	}

	seen := map[string]bool{}
	for page := 1; page <= 3; page++ {
		w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/transactions?limit=2&page=%d", page), token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(5), body["total"])
		assert.Equal(t, float64(3), body["pages"])

		for _, raw := range body["data"].([]any) {
			id := raw.(map[string]any)["id"].(string)
			assert.False(t, seen[id], "transaction repeated across pages")
			seen[id] = true
		}
	}
	assert.Len(t, seen, 5)
}

func TestOwnershipBoundary(t *testing.T) {
	router, _ := setupTest(t)
	aliceToken := registerUser(t, router, "alice@example.com")
	bobToken := registerUser(t, router, "bob@example.com")
	categories := categoriesByName(t, router, aliceToken)

	created := createTransaction(t, router, aliceToken, map[string]any{
		"title":    "Private",
		"amount":   100,
		"type":     "expense",
		"category": categories["Shopping"],
	})
	id := created["id"].(string)

	w := doJSON(t, router, http.MethodGet, "/api/transactions/"+id, bobToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, decodeBody(t, w)["data"])

	w = doJSON(t, router, http.MethodDelete, "/api/transactions/"+id, bobToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A missing id is NotFound, not Unauthorized
	w = doJSON(t, router, http.MethodGet, "/api/transactions/"+uuid.New().String(), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Owner still sees it
	w = doJSON(t, router, http.MethodGet, "/api/transactions/"+id, aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDefaultCategoryImmutable(t *testing.T) {
	router, _ := setupTest(t)
	token := registerUser(t, router, "alice@example.com")
	categories := categoriesByName(t, router, token)
	id := categories["Food & Dining"]

	w := doJSON(t, router, http.MethodPut, "/api/categories/"+id, token, map[string]any{
		"name": "Renamed",
		"type": "expense",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot update default categories", decodeBody(t, w)["error"])

	w = doJSON(t, router, http.MethodDelete, "/api/categories/"+id, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot delete default categories", decodeBody(t, w)["error"])
}

func TestCustomCategoryLifecycle(t *testing.T) {
	router, _ := setupTest(t)
	aliceToken := registerUser(t, router, "alice@example.com")
	bobToken := registerUser(t, router, "bob@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/categories", aliceToken, map[string]any{
		"name":  "Pets",
		"type":  "expense",
		"icon":  "🐶",
		"color": "#AA00FF",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody(t, w)["data"].(map[string]any)
	id := created["id"].(string)
	assert.Equal(t, false, created["isDefault"])

	// Another user cannot touch it
	w = doJSON(t, router, http.MethodPut, "/api/categories/"+id, bobToken, map[string]any{
		"name": "Stolen",
		"type": "expense",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/categories/"+id, aliceToken, map[string]any{
		"name": "Pet Care",
		"type": "expense",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pet Care", decodeBody(t, w)["data"].(map[string]any)["name"])

	w = doJSON(t, router, http.MethodDelete, "/api/categories/"+id, aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTransactionValidation(t *testing.T) {
	router, _ := setupTest(t)
	token := registerUser(t, router, "alice@example.com")
	categories := categoriesByName(t, router, token)

	// Missing title
	w := doJSON(t, router, http.MethodPost, "/api/transactions", token, map[string]any{
		"amount":   10,
		"type":     "expense",
		"category": categories["Shopping"],
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Bad type
	w = doJSON(t, router, http.MethodPost, "/api/transactions", token, map[string]any{
		"title":    "X",
		"amount":   10,
		"type":     "transfer",
		"category": categories["Shopping"],
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown category
	w = doJSON(t, router, http.MethodPost, "/api/transactions", token, map[string]any{
		"title":    "X",
		"amount":   10,
		"type":     "expense",
		"category": uuid.New().String(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCSVReport(t *testing.T) {
	router, _ := setupTest(t)
	token := registerUser(t, router, "alice@example.com")
	categories := categoriesByName(t, router, token)

	createTransaction(t, router, token, map[string]any{
		"title":    "Coffee",
		"amount":   50,
		"type":     "expense",
		"category": categories["Food & Dining"],
	})

	w := doJSON(t, router, http.MethodGet, "/api/reports/csv", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Coffee")
	assert.Contains(t, w.Body.String(), "Food & Dining")
}

func TestPDFReport(t *testing.T) {
	router, _ := setupTest(t)
	token := registerUser(t, router, "alice@example.com")

	w := doJSON(t, router, http.MethodGet, "/api/reports/pdf", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestProfileUpdate(t *testing.T) {
	router, _ := setupTest(t)
	token := registerUser(t, router, "alice@example.com")

	w := doJSON(t, router, http.MethodPut, "/api/users/profile", token, map[string]any{
		"currency":             "USD",
		"monthlyBudget":        2000,
		"budgetAlertThreshold": 90,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "USD", data["currency"])
	assert.Equal(t, float64(90), data["budgetAlertThreshold"])

	w = doJSON(t, router, http.MethodPut, "/api/users/profile", token, map[string]any{
		"budgetAlertThreshold": 150,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
