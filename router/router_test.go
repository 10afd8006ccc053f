// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielhkuo/biryani-lagbe/cliparse"
	"github.com/danielhkuo/biryani-lagbe/models"
	"github.com/danielhkuo/biryani-lagbe/testutil"
)

func newTestRouter(t *testing.T) (*http.ServeMux, cliparse.Config) {
	t.Helper()

	cfg := testutil.GetTestConfig(t)
	mux := NewRouter(testutil.NewTestStore(t, cfg), cfg)
	return mux, cfg
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux, _ := newTestRouter(t)

	// Handlers answer with their own status codes; the mux alone would
	// give 404 or 405 with a text body.
	testCases := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/api/mosques", http.StatusOK},
		{"GET", "/api/mosques/", http.StatusOK},
		{"GET", "/api/mosques/nearby?lat=23.7&lng=90.4", http.StatusOK},
		{"GET", "/api/mosques/nearby/?lat=23.7&lng=90.4", http.StatusOK},
		{"GET", "/api/mosques/missing", http.StatusNotFound},
		{"GET", "/api/mosques/missing/", http.StatusNotFound},
		{"POST", "/api/mosques", http.StatusBadRequest},
		{"POST", "/api/mosques/", http.StatusBadRequest},
		{"POST", "/api/mosques/missing/verify?clientId=c1", http.StatusNotFound},
		{"POST", "/api/mosques/missing/verify/?clientId=c1", http.StatusNotFound},
		{"POST", "/api/mosques/missing/disagree?clientId=c1", http.StatusNotFound},
		{"GET", "/api/mosques/missing/voted?clientId=c1", http.StatusNotFound},
		{"POST", "/api/clients", http.StatusCreated},
		{"GET", "/api/unknown", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Errorf("Expected status %d, got %d. Body: %s", tc.status, w.Code, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected JSON response, got Content-Type '%s'", ct)
			}
		})
	}
}

func TestStaticFiles(t *testing.T) {
	mux, cfg := newTestRouter(t)

	writeFile(t, filepath.Join(cfg.StaticDir, "index.html"), "<h1>map</h1>")
	writeFile(t, filepath.Join(cfg.StaticDir, "app.js"), "console.log('map')")
	writeFile(t, filepath.Join(cfg.StaticDir, ".env"), "SECRET=1")
	writeFile(t, filepath.Join(cfg.UploadDir, "proof.png"), "png-bytes")

	testCases := []struct {
		path   string
		status int
		body   string
	}{
		{"/", http.StatusOK, "<h1>map</h1>"},
		{"/app.js", http.StatusOK, "console.log('map')"},
		{"/some/client/route", http.StatusOK, "<h1>map</h1>"},
		{"/.env", http.StatusNotFound, ""},
		{"/uploads/proof.png", http.StatusOK, "png-bytes"},
		{"/uploads/missing.png", http.StatusNotFound, ""},
		{"/uploads/", http.StatusNotFound, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, w.Code)
			}
			if tc.body != "" && w.Body.String() != tc.body {
				t.Errorf("Expected body '%s', got '%s'", tc.body, w.Body.String())
			}
		})
	}
}

func TestStaticFiles_NoIndex(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 without index.html, got %d", w.Code)
	}
}

// TestReportWorkflow drives the public API end to end through the mux.
func TestReportWorkflow(t *testing.T) {
	mux, _ := newTestRouter(t)

	// Step 1: submit a report
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/mosques", models.CreateReportRequest{
		Name:       "Gulshan Jame Masjid",
		Lat:        testutil.Float(23.7925),
		Lng:        testutil.Float(90.4078),
		FoodType:   "biryani",
		PrayerSlot: "juma",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var created models.Report
	testutil.AssertJSON(t, w, &created)

	// Step 2: it shows up in the day's list
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/mosques?quickFood=biryani", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var list []models.Report
	testutil.AssertJSON(t, w, &list)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("Step 2 - expected the new report in the list, got %d reports", len(list))
	}

	// Step 3: a client gets an id and agrees
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("POST", "/api/clients", nil))
	var client models.ClientResponse
	testutil.AssertJSON(t, w, &client)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/mosques/"+created.ID+"/verify", nil,
		map[string]string{"X-Client-Id": client.ClientID}))
	testutil.AssertStatus(t, w, http.StatusOK)

	// Step 4: the same client is now marked as voted
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/mosques/"+created.ID+"/voted?clientId="+client.ClientID, nil))
	var voted models.VotedResponse
	testutil.AssertJSON(t, w, &voted)
	if !voted.Voted {
		t.Error("Step 4 - expected voted=true")
	}

	// Step 5: fetch by id shows the vote
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/mosques/"+created.ID, nil))
	var got models.Report
	testutil.AssertJSON(t, w, &got)
	if got.AgreeCount != 1 || got.TrustScore != 100 || got.TrustLevel != models.TrustHigh {
		t.Errorf("Step 5 - expected 1 agree and high trust, got %d/%d/%s", got.AgreeCount, got.TrustScore, got.TrustLevel)
	}
}
