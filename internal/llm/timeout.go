package llm

import (
	"context"
	"errors"
	"time"
)

// TimeoutProvider bounds every Generate call with a deadline. Expiry is
// reported as *ErrTimeout; a cancelled parent context is passed through.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps a Provider with a per-call deadline. A non-positive
// duration disables the wrapper.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: d}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	resp, err := t.inner.Generate(callCtx, req)
	if err == nil {
		return resp, nil
	}

	if ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return nil, &ErrTimeout{After: t.timeout, Err: err}
	}
	return nil, err
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
