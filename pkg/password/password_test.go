package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	digest, err := Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", digest)

	assert.True(t, Verify("secret123", digest))
	assert.False(t, Verify("secret124", digest))
	assert.False(t, Verify("", digest))
}

func TestHashIsSaltedPerCall(t *testing.T) {
	t.Parallel()

	d1, err := Hash("same-password")
	require.NoError(t, err)
	d2, err := Hash("same-password")
	require.NoError(t, err)

	// Fresh salt per call: same input must not produce the same digest.
	assert.NotEqual(t, d1, d2)
	assert.True(t, Verify("same-password", d1))
	assert.True(t, Verify("same-password", d2))
}

func TestVerifyRejectsGarbageDigest(t *testing.T) {
	t.Parallel()

	assert.False(t, Verify("anything", "not-a-bcrypt-digest"))
}
