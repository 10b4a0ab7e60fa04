package random_test

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-sdk/internal/random"
)

func TestString_UniqueAndURLSafe(t *testing.T) {
	a, err := random.String(32)
	require.NoError(t, err)
	b, err := random.String(32)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)

	decoded, err := base64.RawURLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, decoded, 32)
}

func TestPKCE_ChallengeMatchesVerifier(t *testing.T) {
	verifier, challenge, err := random.PKCE()
	require.NoError(t, err)
	require.NotEmpty(t, verifier)

	hash := sha256.Sum256([]byte(verifier))
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(hash[:]), challenge)
}

func TestFlowID_Unique(t *testing.T) {
	assert.NotEqual(t, random.FlowID(), random.FlowID())
}
