package upstream

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendStringRequest_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "fields *; limit 500; offset 0;", string(body))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`[{"id":1}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", nil)
	data, err := c.SendStringRequest(context.Background(), "/games", PageQuery(500, 0), MethodPost)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(data))
}

func TestSendStringRequest_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`unauthorized`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", nil)
	_, err := c.SendStringRequest(context.Background(), "/games", "fields *;", MethodPost)
	require.Error(t, err)
}

func TestSendStringRequest_AuthOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer override", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "default", nil)
	_, err := c.SendStringRequest(context.Background(), "/games", "fields *;", MethodPost, "override")
	require.NoError(t, err)
}

func TestCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/count", r.URL.Path)
		w.Write([]byte(`{"count": 42}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", nil)
	count, err := c.Count(context.Background(), "/games")
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestRegisterWebhook_ActiveOnSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/webhooks", r.URL.Path)
		w.Write([]byte(`[{"url":"https://host/games/create","active":true}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", nil)
	active, err := c.RegisterWebhook(context.Background(), "/games", "create", "secret", "https://host/games/create")
	require.NoError(t, err)
	assert.True(t, active)
}

func TestRegisterWebhook_InactiveWhenNotPresent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"url":"https://host/games/update","active":true}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", nil)
	active, err := c.RegisterWebhook(context.Background(), "/games", "create", "secret", "https://host/games/create")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestPageQuery(t *testing.T) {
	assert.Equal(t, "fields *; limit 500; offset 1000;", PageQuery(500, 1000))
}
