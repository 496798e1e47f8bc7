package mem

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// RevokedTokenStore remembers logged-out JWT ids until the token would have expired anyway.
type RevokedTokenStore interface {
	Revoke(tokenID string, until time.Time)
	IsRevoked(tokenID string) bool
}

type RevokedTokens struct {
	items *cache.Cache
}

func NewRevokedTokens() *RevokedTokens {
	return &RevokedTokens{items: cache.New(cache.NoExpiration, 10*time.Minute)}
}

func (r *RevokedTokens) Revoke(tokenID string, until time.Time) {
	ttl := time.Until(until)
	if ttl <= 0 {
		return
	}
	r.items.Set(tokenID, struct{}{}, ttl)
}

func (r *RevokedTokens) IsRevoked(tokenID string) bool {
	_, ok := r.items.Get(tokenID)
	return ok
}
