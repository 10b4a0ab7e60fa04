package oauth_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-sdk/oauth"
)

func TestBackendError_WrapsVerbatim(t *testing.T) {
	cause := errors.New("idp said no")
	err := oauth.BackendError(cause)

	assert.Equal(t, oauth.CodeBackendError, err.Code)
	assert.True(t, oauth.IsBackendError(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "idp said no")

	// wrapping survives another fmt layer
	outer := fmt.Errorf("sign-in: %w", err)
	assert.True(t, oauth.IsBackendError(outer))
	assert.ErrorIs(t, outer, cause)
}

func TestBackendError_NilCauseIsUnknown(t *testing.T) {
	err := oauth.BackendError(nil)
	require.NotNil(t, err)
	assert.Equal(t, oauth.CodeUnknown, err.Code)
}

func TestUnknown_AlwaysConstructible(t *testing.T) {
	err := oauth.Unknown("")
	require.NotNil(t, err)
	assert.Equal(t, oauth.CodeUnknown, err.Code)
	assert.NotEmpty(t, err.Error())
}

func TestInvalidArgumentf(t *testing.T) {
	err := oauth.InvalidArgumentf("field %s must not be empty", "id")
	assert.True(t, oauth.IsInvalidArgument(err))
	assert.False(t, oauth.IsBackendError(err))
	assert.Contains(t, err.Error(), "field id must not be empty")
}
