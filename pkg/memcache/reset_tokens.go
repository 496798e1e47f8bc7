package mem

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MaxResetAttempts is how many wrong guesses a pending code survives.
const MaxResetAttempts = 5

type ResetTokenStore interface {
	Set(email string, token string, ttl time.Duration)

	// Verify reports whether token is the live code for email. Wrong guesses count against
	// the code, which is dropped once MaxResetAttempts is reached.
	Verify(email string, token string) bool

	// Invalidate drops the pending code for email once it has been used.
	Invalidate(email string)
}

type resetEntry struct {
	code     string
	failures int
}

// ResetTokens keeps one pending reset code per email; issuing a new code replaces the old one.
type ResetTokens struct {
	mu    sync.Mutex
	items *cache.Cache
}

func NewResetTokens() *ResetTokens {
	return &ResetTokens{
		items: cache.New(15*time.Minute, 10*time.Minute),
	}
}

func (s *ResetTokens) Set(email string, token string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items.Set(email, &resetEntry{code: token}, ttl)
}

func (s *ResetTokens) Verify(email string, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items.Get(email)
	if !ok {
		return false
	}
	entry := v.(*resetEntry)
	if entry.code == token {
		return true
	}

	entry.failures++
	if entry.failures >= MaxResetAttempts {
		s.items.Delete(email)
	}
	return false
}

func (s *ResetTokens) Invalidate(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items.Delete(email)
}
