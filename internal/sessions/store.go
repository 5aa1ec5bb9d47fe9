// Package sessions maps opaque login tokens to user ids.
package sessions

import (
	"context"
	"errors"
	"time"
)

type Store interface {
	Create(ctx context.Context, userID string) (string, error)

	Lookup(ctx context.Context, token string) (string, error)

	Delete(ctx context.Context, token string) error
}

var ErrSessionNotFound = errors.New("session not found")

const DefaultTTL = 7 * 24 * time.Hour
