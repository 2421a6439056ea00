package service

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Hiba-Rafique/Calling-System/internal/core/domain"
)

// pendingOffer is a call offer queued for an unreachable callee. The deadline
// timer is an independently cancelable resource; the fire path re-checks entry
// identity under the coordinator lock, so a cancel that raced the firing is a
// no-op.
type pendingOffer struct {
	caller    string
	callee    string
	payload   json.RawMessage
	roomID    string
	createdAt time.Time
	timer     *time.Timer
}

func (o *pendingOffer) event() domain.Event {
	return domain.NewIncomingCall(o.caller, o.roomID, o.payload)
}

// enqueueOffer stores the offer, arms its deadline and requests a best-effort
// push so the callee's device can wake up and reconnect.
// Must be called with c.mu held.
func (c *Coordinator) enqueueOffer(caller, callee string, payload json.RawMessage, room *domain.Room) {
	off := &pendingOffer{
		caller:    caller,
		callee:    callee,
		payload:   payload,
		roomID:    room.ID,
		createdAt: time.Now(),
	}
	off.timer = time.AfterFunc(c.offerTimeout, func() { c.expireOffer(callee, off) })
	c.offers[callee] = off

	log.Info().Str("caller", caller).Str("callee", callee).Str("room_id", room.ID).
		Dur("deadline", c.offerTimeout).Msg("Callee offline, offer queued")
	c.pushIncomingCall(caller, callee, room.ID, room.IsVideo)
}

// expireOffer fires when an offer's deadline elapses without the callee
// reconnecting. An entry that was delivered or canceled in the meantime is
// left alone.
func (c *Coordinator) expireOffer(callee string, off *pendingOffer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.offers[callee]
	if !ok || cur != off {
		return
	}
	delete(c.offers, callee)

	c.finalizeLog(off.caller, callee, domain.StatusMissed)
	c.dropReservationLocked(off.roomID, off.caller, callee)
	c.emit(off.caller, domain.NewCallFailed(callee, domain.ReasonOffline))
	log.Info().Str("caller", off.caller).Str("callee", callee).Msg("Offer deadline elapsed")
}

// cancelOfferLocked removes a pending offer, cancels its timer and unwinds the
// reservation it holds. Canceling an absent entry is a no-op.
// Must be called with c.mu held.
func (c *Coordinator) cancelOfferLocked(callee string, status domain.CallStatus) {
	off, ok := c.offers[callee]
	if !ok {
		return
	}
	off.timer.Stop()
	delete(c.offers, callee)

	c.finalizeLog(off.caller, callee, status)
	c.dropReservationLocked(off.roomID, off.caller, callee)
}

// dropReservationLocked removes the room reserved for a queued offer and
// clears busy state for both parties.
func (c *Coordinator) dropReservationLocked(roomID, caller, callee string) {
	if room := c.rooms[roomID]; room != nil {
		for _, m := range room.Participants() {
			delete(c.userRoom, m)
			c.clearPeer(m)
		}
		delete(c.rooms, roomID)
	}
	c.clearPeer(caller)
	c.clearPeer(callee)
}
