package token

import (
	"context"
	"time"

	"ratemymovie/internal/pkg/cache"
)

// RevocationStore guarda no cache os tokens encerrados por logout até a sua expiração natural.
type RevocationStore struct {
	cache cache.Client
	now   func() time.Time
}

// NewRevocationStore cria o store sobre o cliente de cache.
func NewRevocationStore(c cache.Client) *RevocationStore {
	return &RevocationStore{cache: c, now: time.Now}
}

// Revoke marca o token (jti) como revogado. Tokens já expirados são ignorados.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, key(tokenID), "1", ttl)
}

// IsRevoked indica se o token foi encerrado por logout.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.cache.Exists(ctx, key(tokenID))
}

func key(tokenID string) string {
	return "revoked-token:" + tokenID
}
