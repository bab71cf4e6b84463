// Package client is a typed HTTP client for the blog API. It tolerates
// the response shapes older deployments of the API emit and retries
// read requests on transient failures.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"
)

// Config holds client configuration.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration
}

// Client talks to one blog API deployment. Token is attached to every
// request once set.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	maxAttempts int
	backoff     time.Duration
	logger      *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     cfg.BaseURL,
		maxAttempts: attempts,
		backoff:     cfg.Backoff,
		logger:      logger.With("component", "api_client"),
	}
}

// SetToken attaches a previously obtained session token.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current session token, empty when not logged in.
func (c *Client) Token() string {
	return c.token
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return "", fmt.Errorf("encode login request: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var resp loginResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login response carried no token")
	}

	c.token = resp.Token
	return resp.Token, nil
}

// ListArticles fetches article summaries, newest first. limit <= 0 means
// no limit. Reads are retried on transient failures.
func (c *Client) ListArticles(ctx context.Context, limit int) ([]Article, error) {
	path := "/api/articles"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	data, err := c.doWithRetry(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeArticleList(data)
}

// GetArticle fetches one article by id. Reads are retried on transient
// failures.
func (c *Client) GetArticle(ctx context.Context, id string) (*Article, error) {
	data, err := c.doWithRetry(ctx, "/api/articles/"+id)
	if err != nil {
		return nil, err
	}
	return decodeSingleArticle(data)
}

// ArticleDraft carries the fields of a create or update request. Nil
// fields are omitted, so updates send only what changed.
type ArticleDraft struct {
	Title       *string `json:"title,omitempty"`
	Content     *string `json:"content,omitempty"`
	Excerpt     *string `json:"excerpt,omitempty"`
	CoverImage  *string `json:"coverImage,omitempty"`
	IsPublished *bool   `json:"isPublished,omitempty"`
}

func (c *Client) CreateArticle(ctx context.Context, draft ArticleDraft) (*Article, error) {
	return c.sendDraft(ctx, http.MethodPost, "/api/articles", draft)
}

func (c *Client) UpdateArticle(ctx context.Context, id string, draft ArticleDraft) (*Article, error) {
	return c.sendDraft(ctx, http.MethodPut, "/api/articles/"+id, draft)
}

func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/articles/"+id, "", nil)
	return err
}

// Upload describes a stored image as reported by the server.
type Upload struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

// UploadImage sends image bytes as a multipart form and returns the
// stored file record.
func (c *Client) UploadImage(ctx context.Context, filename string, data []byte) (*Upload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("build multipart form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build multipart form: %w", err)
	}

	respBody, err := c.do(ctx, http.MethodPost, "/api/upload-image", mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	var upload Upload
	if err := json.Unmarshal(respBody, &upload); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &upload, nil
}

func (c *Client) sendDraft(ctx context.Context, method, path string, draft ArticleDraft) (*Article, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("encode article draft: %w", err)
	}

	data, err := c.do(ctx, method, path, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return decodeSingleArticle(data)
}

// doWithRetry issues a GET and retries transport errors and 5xx
// responses. Mutations never go through here: a retried write could
// apply twice.
func (c *Client) doWithRetry(ctx context.Context, path string) ([]byte, error) {
	var data []byte
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		data, err = c.do(ctx, http.MethodGet, path, "", nil)
		if err == nil {
			return data, nil
		}
		if !isRetryable(err) || attempt == c.maxAttempts {
			break
		}

		c.logger.Warn("request failed, retrying",
			"path", path,
			"attempt", attempt,
			"backoff", c.backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.backoff):
		}
	}

	return nil, err
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

func isRetryable(err error) bool {
	if statusErr, ok := err.(*StatusError); ok {
		return statusErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}

	return data, nil
}
