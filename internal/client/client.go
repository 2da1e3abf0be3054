package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pageforge/pageforge-backend/internal/projects/domain"
)

// DefaultTimeout bounds every request issued by the client.
const DefaultTimeout = 10 * time.Second

// Client is a thin typed wrapper around the backend HTTP surface. It
// holds no state beyond the base URL, performs no retries, and
// translates every non-success response into an error carrying the
// server's message.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the backend at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// SaveProjectInput mirrors the POST /projects request body. A zero ID
// creates a new project.
type SaveProjectInput struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	HTMLVersion   string `json:"htmlVersion"`
	EditorVersion string `json:"editorVersion"`
}

type exportResponse struct {
	Success bool   `json:"success"`
	Path    string `json:"path"`
}

// ListProjects fetches all projects, most recently updated first.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/projects", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var projects []domain.Project
	if err := c.do(req, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches a single project by id.
func (c *Client) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/projects/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var p domain.Project
	if err := c.do(req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProject creates or updates a project and returns the canonical
// record, including the store-assigned id on create.
func (c *Client) SaveProject(ctx context.Context, in SaveProjectInput) (*domain.Project, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/projects", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var p domain.Project
	if err := c.do(req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProject removes a project by id.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/projects?id="+url.QueryEscape(id), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, nil)
}

// ExportHTML writes an HTML artifact on the server and returns its
// public path.
func (c *Client) ExportHTML(ctx context.Context, html, filename string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"html":     html,
		"filename": filename,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/export", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out exportResponse
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	return out.Path, nil
}

// do executes the request and decodes a success body into out (when
// out is non-nil). Non-2xx responses become errors carrying the
// server-provided message.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, errorMessage(resp))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorMessage(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && json.Unmarshal(data, &body) == nil && body.Error != "" {
		return body.Error
	}
	return fmt.Sprintf("unexpected status %d", resp.StatusCode)
}
