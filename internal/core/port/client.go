package port

import "github.com/Hiba-Rafique/Calling-System/internal/core/domain"

// Client is one live bidirectional connection. Handles are compared by
// identity when deciding whether a registration has been superseded.
type Client interface {
	ID() string
	Send(ev domain.Event) error
	Close() error
}
