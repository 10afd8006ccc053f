// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/biryani-lagbe/cliparse"
	"github.com/danielhkuo/biryani-lagbe/db"
	"github.com/danielhkuo/biryani-lagbe/filestore"
	"github.com/danielhkuo/biryani-lagbe/models"
	"github.com/danielhkuo/biryani-lagbe/reports"
	"github.com/danielhkuo/biryani-lagbe/sqlstore"
)

// GetTestConfig returns a configuration whose directories live under
// t.TempDir.
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()

	dir := t.TempDir()
	return cliparse.Config{
		Port:           3000,
		StoreType:      cliparse.StoreFile,
		DataFile:       filepath.Join(dir, "mosques.json"),
		UploadDir:      filepath.Join(dir, "uploads"),
		StaticDir:      filepath.Join(dir, "public"),
		Timezone:       "UTC",
		Location:       time.UTC,
		StoreTimeout:   2 * time.Second,
		MaxUploadBytes: 1 << 20,
		ClientIDSalt:   "test-client-salt",
	}
}

// NewTestStore opens an empty file store at cfg.DataFile.
func NewTestStore(t *testing.T, cfg cliparse.Config) reports.Store {
	t.Helper()

	store, err := filestore.Open(cfg.DataFile, reports.NewClock(cfg.Location))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// SetupTestDB creates a fresh SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, "file:"+filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

// NewTestSQLStore wraps SetupTestDB in a report store.
func NewTestSQLStore(t *testing.T, cfg cliparse.Config) reports.Store {
	t.Helper()

	store := sqlstore.New(SetupTestDB(t), reports.NewClock(cfg.Location))
	t.Cleanup(func() { store.Close() })
	return store
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// CreateTestReport stores a report for today and fails the test on error.
func CreateTestReport(t *testing.T, store reports.Store, name string, lat, lng float64, foodType string) models.Report {
	t.Helper()

	r, err := store.Create(context.Background(), reports.Draft{
		Name:     name,
		Lat:      Float(lat),
		Lng:      Float(lng),
		FoodType: foodType,
	})
	if err != nil {
		t.Fatalf("Failed to create test report: %v", err)
	}
	return r
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
