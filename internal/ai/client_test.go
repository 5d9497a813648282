package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/ai"

	"github.com/stretchr/testify/assert"
)

func TestClient_Complete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model    string       `json:"model"`
			Messages []ai.Message `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.NotEmpty(t, req.Messages)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello back"}}]}`))
	}))
	defer srv.Close()

	c := ai.NewClient(srv.URL, "test-key", "gpt-4o-mini", 5*time.Second)
	got, err := c.Complete(context.Background(), []ai.Message{{Role: "user", Content: "hello"}})
	assert.NoError(t, err)
	assert.Equal(t, "hello back", got)
}

func TestClient_Complete_NotConfigured(t *testing.T) {
	c := ai.NewClient("", "", "gpt-4o-mini", 0)
	_, err := c.Complete(context.Background(), []ai.Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
}

func TestClient_Complete_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	c := ai.NewClient(srv.URL, "test-key", "gpt-4o-mini", 5*time.Second)
	_, err := c.Complete(context.Background(), []ai.Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
}

func TestClient_Complete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := ai.NewClient(srv.URL, "test-key", "gpt-4o-mini", 5*time.Second)
	_, err := c.Complete(context.Background(), []ai.Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
}

func TestClient_Complete_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := ai.NewClient(srv.URL, "test-key", "gpt-4o-mini", 5*time.Second)
	_, err := c.Complete(context.Background(), []ai.Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
}
