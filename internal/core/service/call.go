package service

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/Hiba-Rafique/Calling-System/internal/core/domain"
)

// InitiateCall starts a 1:1 call. The pair is marked busy and a 2-member room
// is created before anything is delivered; if the callee has no live
// connection the offer is queued with a deadline instead of failing.
func (c *Coordinator) InitiateCall(caller, callee string, payload json.RawMessage) {
	if caller == callee {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy(caller) {
		c.emit(caller, domain.NewCallFailed(callee, domain.ReasonBusy))
		return
	}
	if c.busy(callee) {
		c.emit(caller, domain.NewCallFailed(callee, domain.ReasonBusy))
		rec := c.logs.Open(caller, callee)
		c.logs.Finalize(rec, domain.StatusMissed)
		return
	}
	if _, queued := c.offers[callee]; queued {
		// the reservation marks the callee busy, so this is a pure guard
		c.emit(caller, domain.NewCallFailed(callee, domain.ReasonBusy))
		return
	}

	room := domain.NewRoom(domain.NewRoomID(caller, callee), domain.IsVideoSignal(payload), caller, callee)
	c.rooms[room.ID] = room
	c.userRoom[caller] = room.ID
	c.userRoom[callee] = room.ID
	c.peers[caller] = callee
	c.peers[callee] = caller
	c.openLog(caller, callee)

	if _, online := c.clients[callee]; online {
		c.emit(callee, domain.NewIncomingCall(caller, room.ID, payload))
		log.Info().Str("caller", caller).Str("callee", callee).Str("room_id", room.ID).Msg("Call ringing")
		return
	}
	c.enqueueOffer(caller, callee, payload, room)
}

// Answer forwards the callee's answer to the caller. No state transition
// happens here; the caller moves to connected upon receipt.
func (c *Coordinator) Answer(from, to, roomID string, signal json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.clients[to]; !ok {
		return
	}
	c.emit(to, domain.NewCallAccepted(from, roomID, signal))
}

// Reject ends a ringing call from the callee side.
func (c *Coordinator) Reject(from, to, reason string) {
	if reason == "" {
		reason = domain.ReasonRejected
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.finishPair(from, to, domain.StatusMissed, domain.NewCallRejected(from, reason))
}

// Cancel ends a ringing call from the caller side. A legacy callEnded event is
// emitted alongside for older recipients.
func (c *Coordinator) Cancel(from, to string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finishPair(from, to, domain.StatusMissed, domain.NewCallCanceled(from))
	c.emit(to, domain.NewCallEnded(from))
}

// Fail ends a ringing call that could not be established.
func (c *Coordinator) Fail(from, to, reason string) {
	if reason == "" {
		reason = domain.ReasonFailed
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.finishPair(from, to, domain.StatusMissed, domain.NewCallFailed(from, reason))
}

// EndCall hangs up an established call. Inside a room the whole room ends;
// otherwise the pair's busy state is cleared directly.
func (c *Coordinator) EndCall(from, to string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if roomID, ok := c.userRoom[from]; ok {
		members := c.endRoomLocked(roomID, from)
		// any member may hang up; close every record open between members,
		// not just the one involving the hanging-up party
		for i, a := range members {
			for _, b := range members[i+1:] {
				c.finalizeLog(a, b, domain.StatusCompleted)
			}
		}
		return
	}
	c.clearPeer(from)
	c.clearPeer(to)
	c.finalizeLog(from, to, domain.StatusCompleted)
	c.emit(to, domain.NewCallEnded(from))
}

// RelayICECandidate forwards a network candidate, tagged with the sender.
// A no-op when the recipient has no live connection.
func (c *Coordinator) RelayICECandidate(from, to string, candidate json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emit(to, domain.NewICECandidate(from, candidate))
}

// finishPair is the shared terminal path for reject, cancel and fail: it drops
// a still-queued offer for either direction, tears down the room the pair
// shares, clears busy state for both, finalizes the call log, and notifies the
// other party (and any other room members) with the terminal event.
// Must be called with c.mu held.
func (c *Coordinator) finishPair(initiator, other string, status domain.CallStatus, ev domain.Event) {
	if off, ok := c.offers[other]; ok && off.caller == initiator {
		c.cancelOfferLocked(other, status)
	}
	if off, ok := c.offers[initiator]; ok && off.caller == other {
		c.cancelOfferLocked(initiator, status)
	}

	delivered := false
	if roomID, ok := c.userRoom[initiator]; ok {
		if room := c.rooms[roomID]; room != nil && room.Has(other) {
			for _, m := range room.Participants() {
				delete(c.userRoom, m)
				c.clearPeer(m)
				if m != initiator {
					c.emit(m, ev)
				}
			}
			delete(c.rooms, roomID)
			delivered = true
		}
	}

	c.clearPeer(initiator)
	c.clearPeer(other)
	c.finalizeLog(initiator, other, status)
	if !delivered {
		c.emit(other, ev)
	}
}
