// Package client - HTTP-клиент API биржи заказов.
// Каждый запрос несет учетные данные пользователя, а ответы 401 и 403 обрабатываются
// в одном месте через UnauthorizedHandler.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/senyabanana/job-bids/internal/models"
)

// TokenCookie - имя cookie с токеном сессии.
const TokenCookie = "token"

// Credentials отдает токен текущей сессии.
type Credentials interface {
	Token() string
}

// UnauthorizedHandler реагирует на потерю авторизации.
type UnauthorizedHandler interface {
	OnUnauthorized()
}

// UnauthorizedFunc - адаптер функции к UnauthorizedHandler.
type UnauthorizedFunc func()

// OnUnauthorized вызывает f.
func (f UnauthorizedFunc) OnUnauthorized() { f() }

// APIError - ответ сервера со статусом вне 2xx.
type APIError struct {
	StatusCode int
	Reason     string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// IsUnauthorized сообщает, что ошибка вызвана ответом 401 или 403.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// Reason возвращает текст ошибки, пригодный для показа пользователю.
func Reason(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Reason != "" {
		return apiErr.Reason
	}
	return err.Error()
}

// Client - клиент API.
type Client struct {
	baseURL        *url.URL
	httpClient     *http.Client
	credentials    Credentials
	onUnauthorized UnauthorizedHandler
	logger         *log.Logger
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCredentials прикрепляет токен сессии к каждому запросу.
func WithCredentials(creds Credentials) Option {
	return func(c *Client) { c.credentials = creds }
}

// WithUnauthorizedHandler задает реакцию на ответы 401 и 403.
func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *Client) { c.onUnauthorized = h }
}

// WithLogger задает логгер.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New создает клиента для API по адресу baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("api base url is empty")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
		logger:     log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do выполняет запрос и декодирует ответ в out, если out не nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.credentials != nil {
		if token := c.credentials.Token(); token != "" {
			req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: raw, Reason: parseReason(raw)}
		if IsUnauthorized(apiErr) {
			c.logger.Printf("caught for unauthorized work: %s %s: %v", method, path, apiErr)
			if c.onUnauthorized != nil {
				c.onUnauthorized.OnUnauthorized()
			}
		}
		return resp, apiErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp, nil
}

func parseReason(raw []byte) string {
	var errorResponse models.ErrorResponse
	if err := json.Unmarshal(raw, &errorResponse); err == nil && errorResponse.Message != "" {
		return errorResponse.Message
	}
	return strings.TrimSpace(string(raw))
}
