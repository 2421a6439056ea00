package port

import (
	"context"
	"errors"
)

var ErrUnknownAlias = errors.New("unknown alias")

// UserDirectory resolves a user-chosen call alias to the stable internal
// identity used by the durable collaborators (call-log store, push notifier).
type UserDirectory interface {
	ResolveInternalID(ctx context.Context, alias string) (string, error)
}
