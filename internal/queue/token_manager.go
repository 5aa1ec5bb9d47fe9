package queue

import (
	"context"
	"errors"
)

// TokenManager hands out a fixed number of generation slots. A caller holds
// a token for the lifetime of one outbound generation call.
type TokenManager interface {
	AcquireToken(ctx context.Context) error

	ReleaseToken(ctx context.Context) error

	InitializeTokens(ctx context.Context, count int) error
}

var ErrNoTokenAvailable = errors.New("no generation slot available")
