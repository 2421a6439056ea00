package push

import (
	"context"

	"github.com/Hiba-Rafique/Calling-System/internal/core/domain"
)

// Noop satisfies the notifier port when no push relay is configured.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (Noop) SendIncomingCall(ctx context.Context, userID string, note domain.PushNote) error {
	return nil
}

func (Noop) SendRoomInvite(ctx context.Context, userID string, note domain.PushNote) error {
	return nil
}
