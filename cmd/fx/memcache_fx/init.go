package memcache_fx

import (
	"go.uber.org/fx"

	mem "wtsplinks/pkg/memcache"
)

var Module = fx.Provide(provideResetTokens, provideRevokedTokens)

func provideResetTokens() mem.ResetTokenStore {
	return mem.NewResetTokens()
}

func provideRevokedTokens() mem.RevokedTokenStore {
	return mem.NewRevokedTokens()
}
