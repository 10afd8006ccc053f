// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/biryani-lagbe/cliparse"
	"github.com/danielhkuo/biryani-lagbe/models"
	"github.com/danielhkuo/biryani-lagbe/reports"
	"github.com/danielhkuo/biryani-lagbe/testutil"
)

type storeFactory func(t *testing.T, cfg cliparse.Config) reports.Store

var storeFactories = map[string]storeFactory{
	"file":   testutil.NewTestStore,
	"sqlite": testutil.NewTestSQLStore,
}

// TestConcurrentVotes_DistinctClients checks that no vote is lost when many
// clients vote on one report at the same time.
func TestConcurrentVotes_DistinctClients(t *testing.T) {
	for name, open := range storeFactories {
		t.Run(name, func(t *testing.T) {
			cfg := testutil.GetTestConfig(t)
			store := open(t, cfg)
			handler := NewReportHandler(store, cfg)

			created := testutil.CreateTestReport(t, store, "Gulshan Jame Masjid", 23.7925, 90.4078, models.FoodBiryani)

			numClients := 20
			var successCount atomic.Int32
			var wg sync.WaitGroup

			for i := 0; i < numClients; i++ {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()

					w := httptest.NewRecorder()
					req := voteRequest("verify", created.ID, fmt.Sprintf("client-%02d", idx))
					if idx%4 == 0 {
						handler.Disagree(w, req)
					} else {
						handler.Verify(w, req)
					}
					if w.Code == http.StatusOK {
						successCount.Add(1)
					}
				}(i)
			}
			wg.Wait()

			if int(successCount.Load()) != numClients {
				t.Errorf("Expected %d successful votes, got %d", numClients, successCount.Load())
			}

			got, err := store.Get(context.Background(), created.ID)
			if err != nil {
				t.Fatal(err)
			}
			if got.AgreeCount != 15 || got.DisagreeCount != 5 {
				t.Errorf("Expected 15/5, got %d/%d", got.AgreeCount, got.DisagreeCount)
			}
			if got.TrustScore != 75 {
				t.Errorf("Expected trust 75, got %d", got.TrustScore)
			}
		})
	}
}

// TestConcurrentVotes_SameClient checks that racing votes from one client
// are accepted exactly once.
func TestConcurrentVotes_SameClient(t *testing.T) {
	for name, open := range storeFactories {
		t.Run(name, func(t *testing.T) {
			cfg := testutil.GetTestConfig(t)
			store := open(t, cfg)
			handler := NewReportHandler(store, cfg)

			created := testutil.CreateTestReport(t, store, "Star Mosque", 23.7156, 90.4013, models.FoodJilapi)

			numRequests := 10
			var okCount, conflictCount atomic.Int32
			var wg sync.WaitGroup

			for i := 0; i < numRequests; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()

					w := httptest.NewRecorder()
					handler.Verify(w, voteRequest("verify", created.ID, "same-client"))
					switch w.Code {
					case http.StatusOK:
						okCount.Add(1)
					case http.StatusConflict:
						conflictCount.Add(1)
					}
				}()
			}
			wg.Wait()

			if okCount.Load() != 1 {
				t.Errorf("Expected exactly 1 accepted vote, got %d", okCount.Load())
			}
			if conflictCount.Load() != int32(numRequests-1) {
				t.Errorf("Expected %d conflicts, got %d", numRequests-1, conflictCount.Load())
			}

			got, _ := store.Get(context.Background(), created.ID)
			if got.AgreeCount != 1 {
				t.Errorf("Expected agree count 1, got %d", got.AgreeCount)
			}
		})
	}
}

// TestConcurrentCreateAndList checks that readers never see a partial
// collection while reports are being added.
func TestConcurrentCreateAndList(t *testing.T) {
	cfg := testutil.GetTestConfig(t)
	store := testutil.NewTestStore(t, cfg)
	handler := NewReportHandler(store, cfg)

	numReports := 10
	var wg sync.WaitGroup
	var listErrors, createErrors atomic.Int32

	for i := 0; i < numReports; i++ {
		wg.Add(2)
		go func(idx int) {
			defer wg.Done()
			_, err := store.Create(context.Background(), reports.Draft{
				Name:     fmt.Sprintf("Mosque %d", idx),
				Lat:      testutil.Float(23.7 + float64(idx)/100),
				Lng:      testutil.Float(90.4),
				FoodType: models.FoodMuri,
			})
			if err != nil {
				createErrors.Add(1)
			}
		}(i)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			handler.List(w, httptest.NewRequest("GET", "/api/mosques", nil))
			if w.Code != http.StatusOK {
				listErrors.Add(1)
			}
		}()
	}
	wg.Wait()

	if createErrors.Load() != 0 {
		t.Errorf("Expected all creates to succeed, %d failed", createErrors.Load())
	}
	if listErrors.Load() != 0 {
		t.Errorf("Expected all list calls to succeed, %d failed", listErrors.Load())
	}

	all, err := store.List(context.Background(), reports.Filter{EventDate: today()})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != numReports {
		t.Errorf("Expected %d reports, got %d", numReports, len(all))
	}
}
