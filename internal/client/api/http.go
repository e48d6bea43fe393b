package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/seedshop/internal/client/models"
	"github.com/dmitrijs2005/seedshop/internal/logging"
)

// TokenSource supplies the current bearer credential, or "" when anonymous.
// The session store is the usual implementation.
type TokenSource func(ctx context.Context) string

// HTTPClient implements Client over the shop's REST/JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, token TokenSource, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   token,
		log:     log,
	}
}

// detailBody is the error envelope the server uses for every failure.
type detailBody struct {
	Detail string `json:"detail"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// do executes one JSON request. A transport-level failure maps to
// ErrUnavailable; a non-2xx status maps to *APIError carrying the server's
// detail message.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		payload = bytes.NewReader(b)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail detailBody
		if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil || detail.Detail == "" {
			detail.Detail = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Detail: detail.Detail}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, credentials{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, credentials{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) ListSeeds(ctx context.Context) ([]models.Seed, error) {
	var seeds []models.Seed
	if err := c.do(ctx, http.MethodGet, "/api/seeds", nil, nil, &seeds); err != nil {
		return nil, err
	}
	return seeds, nil
}

func (c *HTTPClient) SearchSeeds(ctx context.Context, q SeedQuery) ([]models.Seed, error) {
	query := url.Values{}
	if q.Name != "" {
		query.Set("name", q.Name)
	}
	if q.Category != "" {
		query.Set("category", q.Category)
	}
	if q.MinPrice != nil {
		query.Set("min_price", q.MinPrice.String())
	}
	if q.MaxPrice != nil {
		query.Set("max_price", q.MaxPrice.String())
	}

	var seeds []models.Seed
	if err := c.do(ctx, http.MethodGet, "/api/seeds/search", query, nil, &seeds); err != nil {
		return nil, err
	}
	return seeds, nil
}

func (c *HTTPClient) CreateSeed(ctx context.Context, in SeedInput) (models.Seed, error) {
	var seed models.Seed
	if err := c.do(ctx, http.MethodPost, "/api/seeds", nil, in, &seed); err != nil {
		return models.Seed{}, err
	}
	return seed, nil
}

func (c *HTTPClient) UpdateSeed(ctx context.Context, id int, in SeedInput) (models.Seed, error) {
	var seed models.Seed
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/seeds/%d", id), nil, in, &seed); err != nil {
		return models.Seed{}, err
	}
	return seed, nil
}

func (c *HTTPClient) DeleteSeed(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/seeds/%d", id), nil, nil, nil)
}

func (c *HTTPClient) Purchase(ctx context.Context, id int) (models.Seed, error) {
	var seed models.Seed
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/seeds/%d/purchase", id), nil, nil, &seed); err != nil {
		return models.Seed{}, err
	}
	return seed, nil
}

type restockRequest struct {
	Quantity int `json:"quantity"`
}

func (c *HTTPClient) Restock(ctx context.Context, id int, amount int) (models.Seed, error) {
	var seed models.Seed
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/seeds/%d/restock", id), nil, restockRequest{Quantity: amount}, &seed); err != nil {
		return models.Seed{}, err
	}
	return seed, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
