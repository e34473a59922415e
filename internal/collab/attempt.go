// Package collab bounds calls to external collaborators (weather, news, LLM)
// and falls back to a local value when they fail or time out.
package collab

import (
	"context"
	"fmt"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a call when Call.Timeout is not set.
const DefaultTimeout = 5 * time.Second

// Call describes one collaborator invocation.
type Call struct {
	Name    string
	Timeout time.Duration
	Log     zerolog.Logger
}

// Outcome reports how the returned value was produced.
type Outcome struct {
	// Live is true when the value came from the collaborator.
	Live    bool
	Err     error
	Elapsed time.Duration
}

type result[T any] struct {
	val T
	err error
}

// Attempt runs primary under c.Timeout. On error, panic or timeout it logs the
// degrade and returns fallback(err). A nil primary means the collaborator is
// not configured.
func Attempt[T any](ctx context.Context, c Call, primary func(context.Context) (T, error), fallback func(error) T) (T, Outcome) {
	start := time.Now()
	if primary == nil {
		err := errors.Wrapf(model.ErrCollaboratorUnavailable, "%s not configured", c.Name)
		return fallback(err), Outcome{Err: err}
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Buffered so the goroutine can always finish after we stop waiting.
	ch := make(chan result[T], 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				ch <- result[T]{err: errors.Wrap(model.ErrCollaboratorUnavailable, fmt.Sprintf("%s panicked: %v", c.Name, rec))}
			}
		}()
		v, err := primary(callCtx)
		ch <- result[T]{val: v, err: err}
	}()

	var err error
	select {
	case r := <-ch:
		if r.err == nil {
			return r.val, Outcome{Live: true, Elapsed: time.Since(start)}
		}
		err = r.err
		if !errors.Is(err, model.ErrCollaboratorUnavailable) {
			err = errors.Wrapf(model.ErrCollaboratorUnavailable, "%s: %v", c.Name, err)
		}
	case <-callCtx.Done():
		err = errors.Wrapf(model.ErrCollaboratorUnavailable, "%s: %v", c.Name, callCtx.Err())
	}

	c.Log.Warn().
		Str("collaborator", c.Name).
		Dur("elapsed", time.Since(start)).
		Err(err).
		Msg("collaborator degraded, using fallback")
	return fallback(err), Outcome{Err: err, Elapsed: time.Since(start)}
}
