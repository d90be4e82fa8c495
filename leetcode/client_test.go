package leetcode

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// graphqlHandler answers the profile query with the given matchedUser payload
// (JSON-encoded, or "null" for no match).
func graphqlHandler(t *testing.T, matchedUser string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Variables map[string]string `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad graphql request body: %v", err)
		}
		if body.Variables["username"] == "" {
			t.Fatal("username variable missing from graphql request")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"matchedUser":` + matchedUser + `}}`))
	}
}

func testClient(srv *httptest.Server) *Client {
	c := NewClient()
	c.GraphQLURL = srv.URL + "/graphql"
	c.StatsBaseURL = srv.URL
	return c
}

func TestFetchUserEmptyUsernameMakesNoRequest(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	_, _, err := testClient(srv).FetchUser(context.Background(), "  ")
	if err == nil {
		t.Fatal("expected an error for an empty username")
	}
	if calls != 0 {
		t.Fatalf("expected no upstream call, got %d", calls)
	}
}

func TestFetchUserSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", graphqlHandler(t, `{"username":"alice","submitStats":{"acSubmissionNum":[{"difficulty":"All","count":17}]}}`))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	profile, raw, err := testClient(srv).FetchUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("expected fetch to succeed, got %v", err)
	}
	if profile.MatchedUser == nil || profile.MatchedUser.Username != "alice" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if len(raw) == 0 || !json.Valid(raw) {
		t.Fatalf("expected raw payload to be valid json, got %s", raw)
	}
}

func TestFetchUserNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", graphqlHandler(t, `null`))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, _, err := testClient(srv).FetchUser(context.Background(), "nobody")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFetchUserUpstreamError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, _, err := testClient(srv).FetchUser(context.Background(), "alice")
	if err == nil {
		t.Fatal("expected an error for a failing upstream")
	}
	if errors.Is(err, ErrUserNotFound) {
		t.Fatal("a transport failure must not be reported as not-found")
	}
}

func TestFetchLanguageStats(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/languageStats", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("username") != "alice" {
			t.Fatalf("unexpected username query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"matchedUser":{"languageProblemCount":[{"languageName":"Go","problemsSolved":12}]}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	raw, err := testClient(srv).FetchLanguageStats(context.Background(), "alice")
	if err != nil {
		t.Fatalf("expected fetch to succeed, got %v", err)
	}
	if !json.Valid(raw) {
		t.Fatalf("expected valid json, got %s", raw)
	}
}

func TestFetchSkillStatsNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := testClient(srv).FetchSkillStats(context.Background(), "alice"); err == nil {
		t.Fatal("expected an error for a non-success status")
	}
}
