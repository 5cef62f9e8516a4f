package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func TestClientFetchDuration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/postings/7/duration" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]int{"time": 45})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	minutes, err := client.FetchDuration(context.Background(), 7)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if minutes != 45 {
		t.Fatalf("expected 45 minutes, got %d", minutes)
	}
}

func TestClientFetchDurationRejectsMissingValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.FetchDuration(context.Background(), 7); err == nil {
		t.Fatal("expected error for missing duration")
	}
}

func TestClientSharedAcrossGoroutines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int{"time": 45})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if client.HTTPClient == nil {
		t.Fatal("expected NewClient to initialize the HTTP client")
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.FetchDuration(context.Background(), 7)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent fetch: %v", err)
		}
	}
}

func TestClientPersistSessionAlreadyCompleted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "candidate 1 already completed the assessment for posting 2",
			"code":  "already_completed",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.PersistSession(context.Background(), 1, 2, nil, true)
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
}

func TestClientPersistSessionAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "validation failed", "code": "validation"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.PersistSession(context.Background(), 1, 2, nil, false)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Code != "validation" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestClientCheckCompleted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("candidate_id"); got != "3" {
			t.Fatalf("unexpected candidate_id %q", got)
		}
		json.NewEncoder(w).Encode(map[string]bool{"isCompleted": true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	completed, err := client.CheckCompleted(context.Background(), 3, 4)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !completed {
		t.Fatal("expected completed=true")
	}
}

func TestClientPersistSessionRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CandidateID uint     `json:"candidateId"`
			PostID      uint     `json:"postId"`
			Responses   []Answer `json:"responses"`
			Completed   bool     `json:"completed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.CandidateID != 1 || req.PostID != 2 || len(req.Responses) != 1 || !req.Completed {
			t.Fatalf("unexpected request: %+v", req)
		}
		json.NewEncoder(w).Encode(PersistResult{SessionID: 9, Score: 1, TotalQuestions: 1, Completed: true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.PersistSession(context.Background(), 1, 2, []Answer{
		{QuestionID: 11, Question: "What does SELECT do?", SelectedAnswer: "A"},
	}, true)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.SessionID != 9 || result.Score != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}
