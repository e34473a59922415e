package collab

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func call(timeout time.Duration) Call {
	return Call{Name: "test", Timeout: timeout, Log: zerolog.Nop()}
}

func fallback(err error) string { return "fallback" }

func TestAttemptLive(t *testing.T) {
	v, out := Attempt(context.Background(), call(time.Second),
		func(context.Context) (string, error) { return "live", nil }, fallback)
	assert.Equal(t, "live", v)
	assert.True(t, out.Live)
	assert.NoError(t, out.Err)
}

func TestAttemptFallbacks(t *testing.T) {
	cases := map[string]func(context.Context) (string, error){
		"error": func(context.Context) (string, error) { return "", errors.New("rate limited") },
		"panic": func(context.Context) (string, error) { panic("boom") },
		"timeout": func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
		"unconfigured": nil,
	}
	for name, primary := range cases {
		t.Run(name, func(t *testing.T) {
			v, out := Attempt(context.Background(), call(20*time.Millisecond), primary, fallback)
			assert.Equal(t, "fallback", v)
			assert.False(t, out.Live)
			require.Error(t, out.Err)
			assert.ErrorIs(t, out.Err, model.ErrCollaboratorUnavailable)
		})
	}
}

func TestAttemptTimeoutBoundsSlowCollaborator(t *testing.T) {
	start := time.Now()
	release := make(chan struct{})
	defer close(release)
	_, out := Attempt(context.Background(), call(30*time.Millisecond),
		func(ctx context.Context) (string, error) {
			select {
			case <-release:
				return "late", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}, fallback)
	assert.False(t, out.Live)
	assert.Less(t, time.Since(start), time.Second)
}
