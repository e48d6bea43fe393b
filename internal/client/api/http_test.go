package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/seedshop/internal/logging"
)

func newTestClient(t *testing.T, handler http.Handler, token string) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 3*time.Second,
		func(context.Context) string { return token },
		logging.NewText(io.Discard))
	return c, srv
}

func TestLoginReturnsToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "u@example.com", creds["email"])
		assert.Equal(t, "pw", creds["password"])

		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok123", "token_type": "bearer"})
	}), "")

	tok, err := c.Login(context.Background(), "u@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok123", tok)
}

func TestDetailPropagatedVerbatim(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Seed is out of stock"})
	}), "tok")

	_, err := c.Purchase(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, "Seed is out of stock", err.Error())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestUnauthorizedIsMatchable(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid authentication credentials"})
	}), "stale")

	_, err := c.ListSeeds(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestBearerHeaderInjected(t *testing.T) {
	var got string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]any{})
	}), "tok123")

	_, err := c.ListSeeds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", got)
}

func TestNoBearerWhenAnonymous(t *testing.T) {
	var got string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"access_token": "t"})
	}), "")

	_, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestServerUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second, func(context.Context) string { return "" }, logging.NewText(io.Discard))
	_, err := c.ListSeeds(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestSearchSeedsQuery(t *testing.T) {
	min := decimal.RequireFromString("10.50")
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/seeds/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "sun", q.Get("name"))
		assert.Equal(t, "Flower", q.Get("category"))
		assert.Equal(t, "10.5", q.Get("min_price"))
		assert.Empty(t, q.Get("max_price"))
		json.NewEncoder(w).Encode([]any{})
	}), "tok")

	_, err := c.SearchSeeds(context.Background(), SeedQuery{Name: "sun", Category: "Flower", MinPrice: &min})
	require.NoError(t, err)
}

func TestPurchaseDecodesSeed(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/seeds/7/purchase", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"id": 7, "name": "Chia Seed", "category": "Superfood",
			"price": 30.00, "quantity": 54,
		})
	}), "tok")

	seed, err := c.Purchase(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, seed.ID)
	assert.Equal(t, 54, seed.Quantity)
	assert.True(t, seed.Price.Equal(decimal.RequireFromString("30")))
}

func TestDeleteSeedNoContent(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}), "tok")

	require.NoError(t, c.DeleteSeed(context.Background(), 3))
}
