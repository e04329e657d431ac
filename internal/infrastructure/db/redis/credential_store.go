package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/wenturc/prompt-market/internal/core/domain"
)

// Storage keys are fixed by the marketplace contract; the SPA and the
// gateway must agree on them.
const (
	keyToken    = "user_token"
	keyUsername = "user_name"
	keyRole     = "user_role"
)

// CredentialStore is the Redis-backed persisted credential record. Written
// synchronously on every login/logout, read once at init and re-read per
// outgoing request by the interceptor chain.
type CredentialStore struct {
	client *redis.Client
}

func NewCredentialStore(client *redis.Client) *CredentialStore {
	return &CredentialStore{client: client}
}

// Load returns the persisted record, or (nil, nil) when no token is stored.
func (s *CredentialStore) Load(ctx context.Context) (*domain.CredentialRecord, error) {
	vals, err := s.client.MGet(ctx, keyToken, keyUsername, keyRole).Result()
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	rec := domain.CredentialRecord{
		Token:    asString(vals[0]),
		Username: asString(vals[1]),
		Role:     asString(vals[2]),
	}
	if rec.Token == "" {
		return nil, nil
	}
	if rec.Role == "" {
		rec.Role = domain.RoleUser
	}
	return &rec, nil
}

func (s *CredentialStore) Save(ctx context.Context, rec domain.CredentialRecord) error {
	role := rec.Role
	if role == "" {
		role = domain.RoleUser
	}
	if err := s.client.MSet(ctx,
		keyToken, rec.Token,
		keyUsername, rec.Username,
		keyRole, role,
	).Err(); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func (s *CredentialStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, keyToken, keyUsername, keyRole).Err(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// Token re-reads only the persisted token. Best effort by contract: any
// error reads as "no token".
func (s *CredentialStore) Token(ctx context.Context) string {
	v, err := s.client.Get(ctx, keyToken).Result()
	if err != nil {
		return ""
	}
	return v
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
