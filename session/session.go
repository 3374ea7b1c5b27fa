package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"sixthsoul_bff/client"
	"sixthsoul_bff/model"
)

var ErrNotFound = errors.New("session not found")

// Blob là phiên đăng nhập của một scope, tương ứng khoá auth / adminAuth ở trình duyệt
type Blob struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	User         model.User `json:"user"`
}

// Session giữ hai phiên khách hàng và quản trị, được truyền vào client khi gọi API
type Session struct {
	ID        string    `json:"id"`
	Auth      *Blob     `json:"auth,omitempty"`
	AdminAuth *Blob     `json:"adminAuth,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Session) Blob(scope client.Scope) *Blob {
	if s == nil {
		return nil
	}
	if scope == client.ScopeAdmin {
		return s.AdminAuth
	}
	return s.Auth
}

func (s *Session) Set(scope client.Scope, b *Blob) {
	if scope == client.ScopeAdmin {
		s.AdminAuth = b
		return
	}
	s.Auth = b
}

// Token cài đặt client.TokenSource
func (s *Session) Token(_ context.Context, scope client.Scope) (string, error) {
	b := s.Blob(scope)
	if b == nil || b.AccessToken == "" {
		return "", client.ErrNoToken
	}
	return b.AccessToken, nil
}

func (s *Session) Empty() bool {
	return s.Auth == nil && s.AdminAuth == nil
}

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, ttl: 7 * 24 * time.Hour}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (s *Store) New() *Session {
	return &Session{ID: uuid.NewString(), CreatedAt: time.Now()}
}

func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session failed: %w", err)
	}
	return &sess, nil
}

func (s *Store) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
