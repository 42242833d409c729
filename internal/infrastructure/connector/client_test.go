package connector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

func TestClientGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "televisor", r.URL.Query().Get("q"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.Equal(t, "es-PE,es;q=0.9", r.Header.Get("Accept-Language"))
		w.Write([]byte("hola"))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{RequestsPerSecond: 100})
	body, err := client.Get(context.Background(), server.URL, url.Values{"q": []string{"televisor"}})

	require.NoError(t, err)
	assert.Equal(t, "hola", string(body))
}

func TestClientGetNon2xxIsSourceFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{RequestsPerSecond: 100})
	_, err := client.Get(context.Background(), server.URL, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceFailure)
}

func TestClientPostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "abc", r.Header.Get("X-Custom"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{RequestsPerSecond: 100})
	body, err := client.PostJSON(context.Background(), server.URL,
		map[string]string{"X-Custom": "abc"},
		map[string]string{"query": "tv"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestClientHonorsCanceledContext(t *testing.T) {
	client := NewClient(ClientConfig{RequestsPerSecond: 100})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "http://127.0.0.1:1", nil)
	assert.Error(t, err)
}
