package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// APIError là phản hồi lỗi (non-2xx) từ API
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: request failed with status code %d", e.Method, e.Path, e.Status)
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	var envelope struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &envelope); err == nil {
		msg = envelope.Message
		if msg == "" && len(envelope.Error) > 0 {
			var s string
			if json.Unmarshal(envelope.Error, &s) == nil {
				msg = s
			}
		}
	}
	return &APIError{Method: method, Path: path, Status: status, Message: strings.TrimSpace(msg)}
}

// IsStatus kiểm tra err có phải APIError với mã trạng thái cho trước
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// ServerMessage: thông báo từ máy chủ, nếu không có thì dùng fallback
func ServerMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Describe: thông báo máy chủ → nội dung lỗi → fallback
func Describe(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
