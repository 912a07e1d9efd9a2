package congress

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetRecentBills(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bill/119" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Errorf("Expected api_key parameter, got %q", r.URL.Query().Get("api_key"))
		}
		if r.URL.Query().Get("format") != "json" {
			t.Errorf("Expected format=json, got %q", r.URL.Query().Get("format"))
		}
		if r.Header.Get("User-Agent") != "tracker-test" {
			t.Errorf("Expected custom user agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`{"bills": [{"congress": 119, "type": "HR", "number": "42", "title": "Test Act"}]}`))
	}))
	defer server.Close()

	client := NewClientWithBase("test-key", "tracker-test", server.URL)
	bills, err := client.GetRecentBills(context.Background(), 119, 20)
	if err != nil {
		t.Fatal(err)
	}

	if len(bills) != 1 {
		t.Fatalf("Expected 1 bill, got %d", len(bills))
	}
	if bills[0].Number != "42" || bills[0].Title != "Test Act" {
		t.Errorf("Unexpected bill data %+v", bills[0])
	}
}

func TestRetryOn503(t *testing.T) {
	oldDelay := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = oldDelay }()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"bill": {"congress": 119, "type": "HR", "number": "1", "title": "Recovered"}}`))
	}))
	defer server.Close()

	client := NewClientWithBase("k", "ua", server.URL)
	bill, err := client.GetBillDetails(context.Background(), 119, "hr", 1)
	if err != nil {
		t.Fatal(err)
	}

	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
	if bill.Title != "Recovered" {
		t.Errorf("Expected recovered response, got %+v", bill)
	}
}

func TestRetriesExhausted(t *testing.T) {
	oldDelay := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = oldDelay }()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClientWithBase("k", "ua", server.URL)
	_, err := client.GetBillDetails(context.Background(), 119, "hr", 1)
	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	if attempts != maxRetries+1 {
		t.Errorf("Expected %d attempts, got %d", maxRetries+1, attempts)
	}
}

func TestNonRetryableStatus(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClientWithBase("bad-key", "ua", server.URL)
	_, err := client.GetRecentBills(context.Background(), 119, 20)
	if err == nil {
		t.Fatal("Expected error for 403")
	}
	if attempts != 1 {
		t.Errorf("Expected no retries for 403, got %d attempts", attempts)
	}
}

func TestGetBillSubjectsFailureReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClientWithBase("k", "ua", server.URL)
	subjects := client.GetBillSubjects(context.Background(), 119, "hr", 1)
	if subjects.PolicyArea.Name != "" || len(subjects.LegislativeSubjects) != 0 {
		t.Errorf("Expected empty subjects on failure, got %+v", subjects)
	}
}

func TestSearchBillsLocalFallback(t *testing.T) {
	oldDelay := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = oldDelay }()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Text search endpoint is down; the per-congress listing works.
		if r.URL.Path == "/bill" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"bills": [
			{"congress": 119, "type": "HR", "number": "1", "title": "Flood Insurance Modernization Act"},
			{"congress": 119, "type": "HR", "number": "2", "title": "Highway Funding Act"},
			{"congress": 119, "type": "S", "number": "3", "title": "Coastal Flood Protection Act"}
		]}`))
	}))
	defer server.Close()

	client := NewClientWithBase("k", "ua", server.URL)
	results, err := client.SearchBills(context.Background(), "flood", 119, 10)
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 local matches, got %d", len(results))
	}
	if results[0].Number != "1" || results[1].Number != "3" {
		t.Errorf("Expected bills 1 and 3, got %+v", results)
	}
}

func TestContainsAll(t *testing.T) {
	if !containsAll("flood insurance reform", []string{"flood", "reform"}) {
		t.Error("Expected all keywords to match")
	}
	if containsAll("flood insurance reform", []string{"flood", "levee"}) {
		t.Error("Expected missing keyword to fail the match")
	}
}
