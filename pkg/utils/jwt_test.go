package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	id := uuid.New()

	token, expiresAt, err := m.CreateToken(id, "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTManager_UniqueTokenIDs(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	id := uuid.New()

	a, _, err := m.CreateToken(id, "user")
	require.NoError(t, err)
	b, _, err := m.CreateToken(id, "user")
	require.NoError(t, err)

	ca, _ := m.ValidateToken(a)
	cb, _ := m.ValidateToken(b)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTManager("one", time.Hour).CreateToken(uuid.New(), "user")
	require.NoError(t, err)

	_, err = NewJWTManager("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := m.CreateToken(uuid.New(), "user")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_RejectsGarbage(t *testing.T) {
	_, err := NewJWTManager("secret", time.Hour).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
