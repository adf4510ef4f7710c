package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/fekuna/omnipos-workshop-service/internal/database"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SetupTestDB opens a migrated sqlite database under t.TempDir().
func SetupTestDB(t testing.TB) *database.Gateway {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, &database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "workshop.db"),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return database.NewGateway(db)
}

func SeedUser(t testing.TB, gw *database.Gateway, login, password, role, fullName string) int64 {
	t.Helper()
	return insert(t, gw,
		`INSERT INTO users (login, password, role, full_name, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		login, password, role, fullName, time.Now().UTC())
}

func SeedSection(t testing.TB, gw *database.Gateway, name string) int64 {
	t.Helper()
	return insert(t, gw,
		`INSERT INTO material_sections (name, description, created_at) VALUES (?, '', ?) RETURNING id`,
		name, time.Now().UTC())
}

func SeedMaterial(t testing.TB, gw *database.Gateway, name string, quantity float64, sectionID *int64) int64 {
	t.Helper()
	now := time.Now().UTC()
	return insert(t, gw,
		`INSERT INTO materials (name, quantity, section_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		name, decimal.NewFromFloat(quantity), sectionID, now, now)
}

// Count runs a SELECT count(*) style query.
func Count(t testing.TB, gw *database.Gateway, query string, args ...interface{}) int {
	t.Helper()
	var n int
	if err := gw.DB.Get(&n, gw.DB.Rebind(query), args...); err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	return n
}

func insert(t testing.TB, gw *database.Gateway, query string, args ...interface{}) int64 {
	t.Helper()
	var id int64
	if err := gw.DB.Get(&id, gw.DB.Rebind(query), args...); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}
	return id
}

func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// DoRequest executes an HTTP request against the test router.
func DoRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}
