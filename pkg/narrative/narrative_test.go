package narrative

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDisabledGenerator(t *testing.T) {
	var gen Generator = Disabled{}
	if gen.Available() {
		t.Error("disabled generator reports available")
	}
	if got := gen.Generate(context.Background(), "prompt", "system"); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestOllamaGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
		case "/api/generate":
			w.Write([]byte(`{"response":"looks suspicious"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "llama2", 2*time.Second)
	if !c.Available() {
		t.Fatal("expected service to be available")
	}
	if got := c.Generate(context.Background(), "prompt", "system"); got != "looks suspicious" {
		t.Errorf("unexpected response: %q", got)
	}
}

func TestOllamaServerErrorYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "llama2", 2*time.Second)
	if got := c.Generate(context.Background(), "prompt", ""); got != "" {
		t.Errorf("expected empty text on server error, got %q", got)
	}
}

func TestOllamaUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewOllamaClient(srv.URL, "llama2", time.Second)
	if c.Available() {
		t.Error("closed server reported available")
	}
	if got := c.Generate(context.Background(), "prompt", ""); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}
