package session

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"sixthsoul_bff/client"
)

const CookieName = "sid"

var ErrInvalidToken = errors.New("invalid session token")

type claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Signer ký cookie phiên; cookie chỉ mang id, token API nằm ở Redis
type Signer struct {
	secret []byte
	ttl    time.Duration
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret), ttl: 7 * 24 * time.Hour}
}

func (s *Signer) TTL() time.Duration { return s.ttl }

func (s *Signer) Sign(sessionID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	t, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return t, nil
}

func (s *Signer) Parse(raw string) (string, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.SessionID == "" {
		return "", ErrInvalidToken
	}
	return c.SessionID, nil
}

// SafeNext chỉ chấp nhận đường dẫn nội bộ để tránh chuyển hướng ra ngoài
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}

// LoginPath là trang đăng nhập của scope, kèm next để quay lại sau khi đăng nhập
func LoginPath(scope client.Scope, next string) string {
	base := "/login"
	if scope == client.ScopeAdmin {
		base = "/admin/login"
	}
	if next == "" {
		return base
	}
	return base + "?next=" + url.QueryEscape(next)
}

func HomePath(scope client.Scope) string {
	if scope == client.ScopeAdmin {
		return "/admin"
	}
	return "/"
}
