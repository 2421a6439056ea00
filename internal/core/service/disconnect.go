package service

import (
	"github.com/rs/zerolog/log"

	"github.com/Hiba-Rafique/Calling-System/internal/core/domain"
)

// reconcileDisconnect unwinds a vanished user's call state: room membership,
// pending offers in either direction, and the 1:1 busy pair. Every cleanup
// runs; each is independently a no-op when its precondition is absent.
// Must be called with c.mu held, after presence removal.
func (c *Coordinator) reconcileDisconnect(user string) {
	if roomID, ok := c.userRoom[user]; ok {
		delete(c.userRoom, user)
		if room := c.rooms[roomID]; room != nil {
			room.Remove(user)
			if room.Size() == 0 {
				delete(c.rooms, roomID)
			} else {
				for _, m := range room.Participants() {
					c.emit(m, domain.NewRoomParticipantLeft(roomID, user))
				}
			}
		}
	}

	// offer waiting on this user as callee
	c.cancelOfferLocked(user, domain.StatusMissed)

	// offers this user placed as caller
	for callee, off := range c.offers {
		if off.caller == user {
			c.cancelOfferLocked(callee, domain.StatusMissed)
		}
	}

	if peer, ok := c.peers[user]; ok {
		c.clearPeer(user)
		c.finalizeLog(user, peer, domain.StatusMissed)
	}

	log.Debug().Str("user", user).Msg("Disconnect reconciled")
}
