package port

import (
	"context"

	"github.com/Hiba-Rafique/Calling-System/internal/core/domain"
)

// PushNotifier wakes a device that has no live connection. Both calls are
// best-effort; a failed push never surfaces as a protocol error.
type PushNotifier interface {
	SendIncomingCall(ctx context.Context, userID string, note domain.PushNote) error
	SendRoomInvite(ctx context.Context, userID string, note domain.PushNote) error
}
