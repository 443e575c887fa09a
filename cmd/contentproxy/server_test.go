package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/milk9111/bossgen/content"
	"github.com/milk9111/bossgen/content/gemini"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGenerate(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		upstream content.CompleterFunc
		status   int
		want     string
	}{
		{
			name: "forwards_prompt",
			body: `{"contents":[{"parts":[{"text":"make a boss"}]}]}`,
			upstream: func(_ context.Context, p string) (string, error) {
				return "echo: " + p, nil
			},
			status: http.StatusOK,
			want:   "echo: make a boss",
		},
		{
			name:   "malformed_body",
			body:   `{"contents":`,
			status: http.StatusBadRequest,
		},
		{
			name:   "empty_prompt",
			body:   `{"contents":[{"parts":[{"text":"  "}]}]}`,
			status: http.StatusBadRequest,
		},
		{
			name: "upstream_failure",
			body: `{"contents":[{"parts":[{"text":"x"}]}]}`,
			upstream: func(context.Context, string) (string, error) {
				return "", fmt.Errorf("%w: HTTP 500", content.ErrNetworkFailure)
			},
			status: http.StatusBadGateway,
		},
		{
			name: "upstream_timeout",
			body: `{"contents":[{"parts":[{"text":"x"}]}]}`,
			upstream: func(ctx context.Context, _ string) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			},
			status: http.StatusGatewayTimeout,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			upstream := tc.upstream
			if upstream == nil {
				upstream = func(context.Context, string) (string, error) {
					t.Errorf("upstream must not be called")
					return "", nil
				}
			}
			r := newRouter(upstream, 50*time.Millisecond)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/generate", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
			var resp gemini.Response
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if tc.status != http.StatusOK {
				if resp.Error == nil || resp.Error.Code != tc.status {
					t.Fatalf("expected error body with code %d, got %+v", tc.status, resp.Error)
				}
				return
			}
			if got, _ := resp.Text(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	r := newRouter(content.CompleterFunc(func(context.Context, string) (string, error) { return "", nil }), 0)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// The game client pointed at the proxy sends no key and reads the reply.
func TestClientThroughProxy(t *testing.T) {
	srv := httptest.NewServer(newRouter(content.CompleterFunc(func(_ context.Context, p string) (string, error) {
		return strings.ToUpper(p), nil
	}), time.Second))
	defer srv.Close()

	client := &gemini.Client{Endpoint: srv.URL + "/v1/generate", HTTP: srv.Client()}
	got, err := client.Complete(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "ABC" {
		t.Fatalf("expected ABC, got %q", got)
	}

	srvErr := httptest.NewServer(newRouter(content.CompleterFunc(func(context.Context, string) (string, error) {
		return "", errors.New("boom")
	}), time.Second))
	defer srvErr.Close()
	client.Endpoint = srvErr.URL + "/v1/generate"
	if _, err := client.Complete(context.Background(), "abc"); !errors.Is(err, content.ErrNetworkFailure) {
		t.Fatalf("expected network failure, got %v", err)
	}
}
