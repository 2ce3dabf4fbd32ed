package wechat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient("app-id", "app-secret")
	client.baseURL = server.URL
	return client, server
}

func TestResolve(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "app-id", r.URL.Query().Get("appid"))
		assert.Equal(t, "app-secret", r.URL.Query().Get("secret"))
		assert.Equal(t, "code123", r.URL.Query().Get("js_code"))
		assert.Equal(t, "authorization_code", r.URL.Query().Get("grant_type"))

		w.Write([]byte(`{"openid":"wx-open-1","session_key":"sk"}`))
	})
	defer server.Close()

	openID, err := client.Resolve(context.Background(), "code123")
	require.NoError(t, err)
	assert.Equal(t, "wx-open-1", openID)
}

func TestResolveAPIError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errcode":40029,"errmsg":"invalid code"}`))
	})
	defer server.Close()

	_, err := client.Resolve(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "40029")
}

func TestResolveEmptyOpenID(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	_, err := client.Resolve(context.Background(), "code")
	require.Error(t, err)
}
