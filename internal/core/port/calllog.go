package port

import (
	"context"

	"github.com/Hiba-Rafique/Calling-System/internal/core/domain"
)

// CallLogStore persists call records. Record ids are reserved by the caller
// before Open so a record can be finalized even when persistence lags behind.
type CallLogStore interface {
	Open(ctx context.Context, recordID, callerID, calleeID string) error
	Finalize(ctx context.Context, recordID string, status domain.CallStatus) error
}
