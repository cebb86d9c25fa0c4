package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateToken("user-123", "alice@example.com", "http://img/avatar.png")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "http://img/avatar.png", claims.ProfileImg)
}

func TestValidateExpiredToken(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", time.Hour)

	// ttl=0 means exp == iat; by the time validation runs the token is
	// already past its expiry (strict compare, no leeway).
	token, err := m.GenerateTokenWithTTL("user-123", "alice@example.com", "", 0)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateWrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewManager("right-secret", time.Hour)
	verifier := NewManager("wrong-secret", time.Hour)

	token, err := issuer.GenerateToken("user-123", "alice@example.com", "")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateTamperedSignature(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateToken("user-123", "alice@example.com", "")
	require.NoError(t, err)

	// Flip the first byte of the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = m.ValidateToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateMalformedToken(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b", strings.Repeat("x", 64)} {
		_, err := m.ValidateToken(tok)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", tok)
	}
}

func TestTamperedClaimsRejected(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateToken("user-123", "alice@example.com", "")
	require.NoError(t, err)

	// Swap the payload segment for one from a token signed over
	// different claims; the original signature must not cover it.
	other, err := m.GenerateToken("user-456", "bob@example.com", "")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	require.Len(t, parts, 3)
	require.Len(t, otherParts, 3)

	spliced := parts[0] + "." + otherParts[1] + "." + parts[2]
	_, err = m.ValidateToken(spliced)
	assert.Error(t, err)
}
