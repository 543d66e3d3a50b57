// Package api is an HTTP client for the geomap API. It unwraps the
// {success, data} envelope and turns failure envelopes into *Error.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/geomap/internal/client/models"
	"github.com/dmitrijs2005/geomap/internal/common"
	"github.com/goccy/go-json"
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken sets the bearer token sent with every later request. An empty
// token sends none.
func (c *Client) SetToken(token string) { c.token = token }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		}
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &Error{Status: resp.StatusCode, Message: msg, Details: env.Errors}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*models.Session, error) {
	var s models.Session
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.Session, error) {
	var s models.Session
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Locations(ctx context.Context) ([]models.Location, error) {
	var out []models.Location
	err := c.do(ctx, http.MethodGet, "/api/locations", nil, &out)
	return out, err
}

func (c *Client) SearchLocations(ctx context.Context, term string) ([]models.Location, error) {
	var out []models.Location
	err := c.do(ctx, http.MethodGet, "/api/locations/search?name="+url.QueryEscape(term), nil, &out)
	return out, err
}

func (c *Client) CreateLocation(ctx context.Context, l models.NewLocation) (*models.Location, error) {
	var out models.Location
	if err := c.do(ctx, http.MethodPost, "/api/locations", l, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteLocation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/locations/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Polygons(ctx context.Context) ([]models.Polygon, error) {
	var out []models.Polygon
	err := c.do(ctx, http.MethodGet, "/api/polygons", nil, &out)
	return out, err
}

func (c *Client) Events(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	err := c.do(ctx, http.MethodGet, "/api/events", nil, &out)
	return out, err
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out)
	return out, err
}

func (c *Client) SeedCategories(ctx context.Context) (*models.SeedResult, error) {
	var out models.SeedResult
	if err := c.do(ctx, http.MethodPost, "/api/categories/initialize", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
