package oauth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-sdk/oauth"
)

func TestFuture_ResolvesExactlyOnce(t *testing.T) {
	fut := oauth.NewFuture()

	cred, err := oauth.NewCredentialWithAccessToken("p", "at")
	require.NoError(t, err)

	assert.True(t, fut.Resolve(cred))
	assert.False(t, fut.Resolve(cred))
	assert.False(t, fut.Reject(errors.New("too late")))

	got, err := fut.Await(context.Background())
	require.NoError(t, err)
	assert.Same(t, cred, got)

	// awaiting again returns the same outcome
	got, err = fut.Await(context.Background())
	require.NoError(t, err)
	assert.Same(t, cred, got)
}

func TestFuture_RejectWinsOverLaterResolve(t *testing.T) {
	fut := oauth.NewFuture()
	cause := errors.New("denied")

	assert.True(t, fut.Reject(cause))

	cred, _ := oauth.NewCredentialWithAccessToken("p", "at")
	assert.False(t, fut.Resolve(cred))

	got, err := fut.Await(context.Background())
	assert.Nil(t, got)
	assert.ErrorIs(t, err, cause)
}

func TestFuture_NilRejectionBecomesUnknown(t *testing.T) {
	fut := oauth.NewFuture()
	assert.True(t, fut.Reject(nil))

	_, err := fut.Await(context.Background())
	require.Error(t, err)
	var oerr *oauth.Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, oauth.CodeUnknown, oerr.Code)
}

func TestFuture_ConcurrentCompletion_OneWinner(t *testing.T) {
	fut := oauth.NewFuture()
	cred, _ := oauth.NewCredentialWithAccessToken("p", "at")

	const n = 32
	wins := make(chan bool, 2*n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			wins <- fut.Resolve(cred)
		}()
		go func() {
			defer wg.Done()
			wins <- fut.Reject(errors.New("lost race"))
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for won := range wins {
		if won {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestFuture_AwaitHonorsContext(t *testing.T) {
	fut := oauth.NewFuture()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := fut.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	select {
	case <-fut.Done():
		t.Fatal("ctx expiry must not complete the future itself")
	default:
	}
}
