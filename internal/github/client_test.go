package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newFakeGithub(t *testing.T, repoStatus int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if accept := r.Header.Get("Accept"); accept == "" {
			t.Fatalf("missing accept header on %s", r.URL.Path)
		}
		switch r.URL.Path {
		case "/repos/example/latency-router":
			if repoStatus != http.StatusOK {
				w.WriteHeader(repoStatus)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"name": "latency-router",
				"full_name": "example/latency-router",
				"description": "Latency-aware routing",
				"stargazers_count": 42,
				"forks_count": 7,
				"subscribers_count": 12,
				"open_issues_count": 3,
				"language": "Go",
				"topics": ["load-balancing", "networking"],
				"license": {"spdx_id": "MIT"},
				"html_url": "https://github.com/example/latency-router",
				"created_at": "2024-01-15T08:00:00Z",
				"updated_at": "2025-06-01T12:00:00Z"
			}`))
		case "/repos/example/latency-router/languages":
			w.Write([]byte(`{"Go": 91000, "Shell": 1200, "Makefile": 300}`))
		case "/repos/example/latency-router/readme":
			w.Write([]byte("# latency-router\n\nRoutes by tail latency."))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestGetRepoAggregatesPayload(t *testing.T) {
	server := newFakeGithub(t, http.StatusOK)
	defer server.Close()

	client := NewClient(server.URL, "")
	info, err := client.GetRepo(context.Background(), "example", "latency-router")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.FullName != "example/latency-router" || info.Stars != 42 || info.Watchers != 12 {
		t.Fatalf("unexpected repo fields: %#v", info)
	}
	if info.PrimaryLanguage != "Go" || info.License != "MIT" {
		t.Fatalf("unexpected language/license: %#v", info)
	}
	if len(info.Languages) != 3 || info.Languages[0] != "Go" || info.Languages[1] != "Shell" {
		t.Fatalf("expected languages ordered by bytes, got %v", info.Languages)
	}
	if len(info.Topics) != 2 {
		t.Fatalf("expected topics, got %v", info.Topics)
	}
	if info.Readme == "" {
		t.Fatal("expected readme content")
	}
}

func TestGetRepoSendsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret-token" {
			t.Fatalf("unexpected authorization header %q", auth)
		}
		if r.URL.Path == "/repos/o/r" {
			w.Write([]byte(`{"full_name": "o/r"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token")
	if _, err := client.GetRepo(context.Background(), "o", "r"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetRepoUpstreamErrorCarriesStatus(t *testing.T) {
	cases := []struct {
		name   string
		status int
	}{
		{"not found", http.StatusNotFound},
		{"rate limited", http.StatusForbidden},
		{"server error", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := newFakeGithub(t, tc.status)
			defer server.Close()

			client := NewClient(server.URL, "")
			_, err := client.GetRepo(context.Background(), "example", "latency-router")
			var upstream *UpstreamError
			if !errors.As(err, &upstream) || upstream.StatusCode != tc.status {
				t.Fatalf("expected upstream error with status %d, got %#v", tc.status, err)
			}
		})
	}
}

func TestGetRepoMissingReadmeIsNotFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/o/r":
			w.Write([]byte(`{"full_name": "o/r"}`))
		case "/repos/o/r/languages":
			w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	info, err := client.GetRepo(context.Background(), "o", "r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Readme != "" {
		t.Fatalf("expected empty readme, got %q", info.Readme)
	}
}
