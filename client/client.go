package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// Scope chọn phiên đăng nhập nào cung cấp bearer token cho một request
type Scope string

const (
	ScopeCustomer Scope = "auth"
	ScopeAdmin    Scope = "adminAuth"
)

// ScopeForPath: mọi đường dẫn /admin/ dùng phiên quản trị, còn lại dùng phiên khách hàng
func ScopeForPath(path string) Scope {
	if strings.HasPrefix(path, "/admin/") {
		return ScopeAdmin
	}
	return ScopeCustomer
}

func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/auth/") || strings.HasPrefix(path, "/admin/auth/")
}

// TokenSource là ngữ cảnh phiên được truyền vào client khi khởi tạo
type TokenSource interface {
	Token(ctx context.Context, scope Scope) (string, error)
}

var ErrNoToken = errors.New("no token for scope")

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// WithTokens trả về bản sao client gắn với một phiên cụ thể
func (c *Client) WithTokens(src TokenSource) *Client {
	cp := *c
	cp.tokens = src
	return &cp
}

type requestOptions struct {
	query         url.Values
	body          any
	allowNotFound bool
}

type Option func(*requestOptions)

func WithQuery(q url.Values) Option {
	return func(o *requestOptions) { o.query = q }
}

func WithBody(body any) Option {
	return func(o *requestOptions) { o.body = body }
}

// AllowNotFound coi 404 là kết quả rỗng hợp lệ và không ghi log lỗi
func AllowNotFound() Option {
	return func(o *requestOptions) { o.allowNotFound = true }
}

// Do gửi request và giải mã JSON vào out. found=false khi 404 được cho phép.
func (c *Client) Do(ctx context.Context, method, path string, out any, opts ...Option) (found bool, err error) {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	target := c.baseURL + path
	if len(o.query) > 0 {
		target += "?" + o.query.Encode()
	}

	var body io.Reader
	if o.body != nil {
		raw, err := json.Marshal(o.body)
		if err != nil {
			return false, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return false, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if !isAuthPath(path) && c.tokens != nil {
		token, err := c.tokens.Token(ctx, ScopeForPath(path))
		if err != nil && !errors.Is(err, ErrNoToken) {
			return false, fmt.Errorf("resolve token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("read response %s %s: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusNotFound && o.allowNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(method, path, resp.StatusCode, raw)
		log.Warnf("API %s %s trả về %d: %s", method, path, resp.StatusCode, apiErr.Message)
		return false, apiErr
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return true, fmt.Errorf("decode response %s %s: %w", method, path, err)
		}
	}
	return true, nil
}

func get[T any](ctx context.Context, c *Client, path string, opts ...Option) (T, error) {
	var out T
	_, err := c.Do(ctx, http.MethodGet, path, &out, opts...)
	return out, err
}

func send[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T
	_, err := c.Do(ctx, method, path, &out, WithBody(body))
	return out, err
}
