package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/errs"
)

// newServer 返回固定响应的测试服务，并记录请求次数与最后一次请求体
func newServer(t *testing.T, path string, status int, body string) (*httptest.Server, *int32, *map[string]any) {
	t.Helper()
	var calls int32
	last := map[string]any{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Method != http.MethodPost || r.URL.Path != path {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &last)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls, &last
}

func TestClient_ExtractKeywords(t *testing.T) {
	srv, calls, last := newServer(t, keywordsPath, http.StatusOK, `{"keywords":["a","b"]}`)
	c := NewClient(srv.URL+"/", 0)

	got, err := c.ExtractKeywords(context.Background(), &KeywordsRequest{BrandName: "Stripe", Domain: "https://stripe.com"})
	if err != nil {
		t.Fatalf("ExtractKeywords() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}
	if *calls != 1 {
		t.Errorf("calls = %d, want 1", *calls)
	}
	want := map[string]any{"brand_name": "Stripe", "domain": "https://stripe.com"}
	if diff := cmp.Diff(want, *last); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_ExtractKeywords_Empty(t *testing.T) {
	srv, _, _ := newServer(t, keywordsPath, http.StatusOK, `{"keywords":[]}`)
	got, err := NewClient(srv.URL, 0).ExtractKeywords(context.Background(), &KeywordsRequest{})
	if err != nil {
		t.Fatalf("ExtractKeywords() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("keywords = %v, want empty", got)
	}
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		body   string
		call   func(c *Client) error
	}{
		{
			name: "keywords 500", path: keywordsPath, status: http.StatusInternalServerError, body: `{"detail":"boom"}`,
			call: func(c *Client) error {
				_, err := c.ExtractKeywords(context.Background(), &KeywordsRequest{})
				return err
			},
		},
		{
			name: "keywords missing field", path: keywordsPath, status: http.StatusOK, body: `{}`,
			call: func(c *Client) error {
				_, err := c.ExtractKeywords(context.Background(), &KeywordsRequest{})
				return err
			},
		},
		{
			name: "keywords garbage", path: keywordsPath, status: http.StatusOK, body: `<html>`,
			call: func(c *Client) error {
				_, err := c.ExtractKeywords(context.Background(), &KeywordsRequest{})
				return err
			},
		},
		{
			name: "prompts missing field", path: promptsPath, status: http.StatusOK, body: `{"keywords":["x"]}`,
			call: func(c *Client) error {
				_, err := c.GeneratePrompts(context.Background(), &PromptsRequest{})
				return err
			},
		},
		{
			name: "simulate empty body", path: simulatePath, status: http.StatusOK, body: `{}`,
			call: func(c *Client) error {
				_, err := c.Simulate(context.Background(), &SimulateRequest{})
				return err
			},
		},
		{
			name: "simulate string percentage", path: simulatePath, status: http.StatusOK, body: `{"visibility_percentage":"45"}`,
			call: func(c *Client) error {
				_, err := c.Simulate(context.Background(), &SimulateRequest{})
				return err
			},
		},
		{
			name: "simulate out of range", path: simulatePath, status: http.StatusOK, body: `{"visibility_percentage":140}`,
			call: func(c *Client) error {
				_, err := c.Simulate(context.Background(), &SimulateRequest{})
				return err
			},
		},
		{
			name: "simulate negative mentions", path: simulatePath, status: http.StatusOK, body: `{"visibility_percentage":10,"mentions":-1}`,
			call: func(c *Client) error {
				_, err := c.Simulate(context.Background(), &SimulateRequest{})
				return err
			},
		},
		{
			name: "simulate 404", path: "/elsewhere", status: http.StatusOK, body: `{}`,
			call: func(c *Client) error {
				_, err := c.Simulate(context.Background(), &SimulateRequest{})
				return err
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _ := newServer(t, tt.path, tt.status, tt.body)
			err := tt.call(NewClient(srv.URL, 0))
			if !errs.IsRemote(err) {
				t.Errorf("error = %v, want remote error", err)
			}
		})
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, 0).ExtractKeywords(context.Background(), &KeywordsRequest{})
	if !errs.IsRemote(err) {
		t.Errorf("error = %v, want remote error", err)
	}
}

func TestClient_GeneratePrompts(t *testing.T) {
	srv, _, last := newServer(t, promptsPath, http.StatusOK, `{"prompts":["p1","p2"]}`)
	got, err := NewClient(srv.URL, 0).GeneratePrompts(context.Background(), &PromptsRequest{Keywords: []string{"CRM"}, BrandName: "Acme"})
	if err != nil {
		t.Fatalf("GeneratePrompts() error = %v", err)
	}
	if diff := cmp.Diff([]string{"p1", "p2"}, got); diff != "" {
		t.Errorf("prompts mismatch (-want +got):\n%s", diff)
	}
	want := map[string]any{"keywords": []any{"CRM"}, "brand_name": "Acme"}
	if diff := cmp.Diff(want, *last); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_Simulate(t *testing.T) {
	body := `{"visibility_percentage":45.6,"total_prompts":10,"mentions":4,"average_position":null,"recommendations":["Add FAQ"]}`
	srv, _, last := newServer(t, simulatePath, http.StatusOK, body)

	req := &SimulateRequest{BrandName: "Acme", Prompts: []string{"p"}, Platforms: []string{"chatgpt"}}
	got, err := NewClient(srv.URL, 0).Simulate(context.Background(), req)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	if got.VisibilityPercentage != 45.6 || got.TotalPrompts != 10 || got.Mentions != 4 {
		t.Errorf("result = %+v", got)
	}
	if got.AveragePosition != nil {
		t.Errorf("AveragePosition = %v, want nil", *got.AveragePosition)
	}
	if diff := cmp.Diff([]string{"Add FAQ"}, got.Recommendations); diff != "" {
		t.Errorf("recommendations mismatch (-want +got):\n%s", diff)
	}
	want := map[string]any{"brand_name": "Acme", "prompts": []any{"p"}, "platforms": []any{"chatgpt"}}
	if diff := cmp.Diff(want, *last); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_Simulate_AveragePosition(t *testing.T) {
	srv, _, _ := newServer(t, simulatePath, http.StatusOK, `{"visibility_percentage":0,"total_prompts":3,"mentions":0,"average_position":2.5}`)
	got, err := NewClient(srv.URL, 0).Simulate(context.Background(), &SimulateRequest{})
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	if got.VisibilityPercentage != 0 {
		t.Errorf("VisibilityPercentage = %v, want 0", got.VisibilityPercentage)
	}
	if got.AveragePosition == nil || *got.AveragePosition != 2.5 {
		t.Errorf("AveragePosition = %v, want 2.5", got.AveragePosition)
	}
}
