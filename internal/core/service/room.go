package service

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/Hiba-Rafique/Calling-System/internal/core/domain"
)

// InviteToRoom asks a free, online user to join an existing room. Conflicts
// are reported back to the inviter; an offline invitee additionally gets a
// best-effort push carrying the room id and video flag.
func (c *Coordinator) InviteToRoom(roomID, inviter, invitee string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.rooms[roomID]
	if room == nil || !room.Has(inviter) {
		c.emit(inviter, domain.NewRoomInviteFailed(roomID, invitee, domain.ReasonInvalidRoom))
		return
	}
	if room.Size() >= domain.MaxRoomSize {
		c.emit(inviter, domain.NewRoomInviteFailed(roomID, invitee, domain.ReasonRoomFull))
		return
	}
	if c.busy(invitee) {
		c.emit(inviter, domain.NewRoomInviteFailed(roomID, invitee, domain.ReasonBusy))
		return
	}
	if _, online := c.clients[invitee]; !online {
		c.emit(inviter, domain.NewRoomInviteFailed(roomID, invitee, domain.ReasonOffline))
		c.pushRoomInvite(inviter, invitee, roomID, room.IsVideo)
		return
	}

	// a repeated invite replaces the pending one, last write wins
	c.invites[inviteKey{roomID, invitee}] = inviter
	c.emit(invitee, domain.NewRoomInvite(roomID, inviter, room.Participants(), room.IsVideo))
	log.Info().Str("room_id", roomID).Str("inviter", inviter).Str("invitee", invitee).Msg("Room invite sent")
}

// CancelRoomInvite withdraws a pending invite. A no-op when no matching invite
// exists.
func (c *Coordinator) CancelRoomInvite(roomID, inviter, invitee string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := inviteKey{roomID, invitee}
	if cur, ok := c.invites[key]; !ok || cur != inviter {
		return
	}
	delete(c.invites, key)
	c.emit(invitee, domain.NewRoomInviteCanceled(roomID, inviter))
}

// DeclineRoomInvite turns down a pending invite. A no-op when no matching
// invite exists.
func (c *Coordinator) DeclineRoomInvite(roomID, invitee string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := inviteKey{roomID, invitee}
	inviter, ok := c.invites[key]
	if !ok {
		return
	}
	delete(c.invites, key)
	c.emit(inviter, domain.NewRoomInviteDeclined(roomID, invitee))
}

// AcceptRoomInvite joins the invitee to the room: existing members see the
// join, the invitee gets the full membership, and the inviter is told the
// invite landed. An invitee who entered a call since the invite was sent is
// refused, so a user can never hold membership in two rooms.
func (c *Coordinator) AcceptRoomInvite(roomID, invitee string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := inviteKey{roomID, invitee}
	inviter, ok := c.invites[key]
	if !ok {
		return
	}
	delete(c.invites, key)

	room := c.rooms[roomID]
	if room == nil {
		c.emit(invitee, domain.NewRoomJoinFailed(roomID, domain.ReasonInvalidRoom))
		return
	}
	if c.busy(invitee) {
		// the invitee entered another call between invite and accept
		if !room.Has(invitee) {
			c.emit(invitee, domain.NewRoomJoinFailed(roomID, domain.ReasonBusy))
		}
		return
	}
	if room.Size() >= domain.MaxRoomSize {
		c.emit(invitee, domain.NewRoomJoinFailed(roomID, domain.ReasonRoomFull))
		return
	}

	for _, m := range room.Participants() {
		c.emit(m, domain.NewRoomParticipantJoined(roomID, invitee))
	}
	room.Add(invitee)
	c.userRoom[invitee] = roomID

	c.emit(invitee, domain.NewRoomJoined(roomID, room.Participants(), room.IsVideo))
	c.emit(inviter, domain.NewRoomInviteAccepted(roomID, invitee))
	log.Info().Str("room_id", roomID).Str("invitee", invitee).Int("size", room.Size()).Msg("Room invite accepted")
}

// RelayRoomSignal forwards an in-room negotiation payload. Silently dropped
// unless both ends are current members of the named room.
func (c *Coordinator) RelayRoomSignal(roomID, from, to string, signal json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.rooms[roomID]
	if room == nil || !room.Has(from) || !room.Has(to) {
		return
	}
	c.emit(to, domain.NewRoomSignal(roomID, from, signal))
}

// RelayRoomICECandidate forwards an in-room network candidate under the same
// membership rules as RelayRoomSignal.
func (c *Coordinator) RelayRoomICECandidate(roomID, from, to string, candidate json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.rooms[roomID]
	if room == nil || !room.Has(from) || !room.Has(to) {
		return
	}
	c.emit(to, domain.NewRoomICECandidate(roomID, from, candidate))
}

// endRoomLocked tears a room down for every member: busy state and membership
// are cleared, offers reserved against the room are dropped, stale invites are
// removed, and everyone but the initiator is notified. Returns the former
// member set for follow-up log finalization.
// Must be called with c.mu held.
func (c *Coordinator) endRoomLocked(roomID, endedBy string) []string {
	room := c.rooms[roomID]
	if room == nil {
		return nil
	}
	members := room.Participants()
	delete(c.rooms, roomID)

	for _, m := range members {
		delete(c.userRoom, m)
		c.clearPeer(m)
		if off, ok := c.offers[m]; ok && off.roomID == roomID {
			off.timer.Stop()
			delete(c.offers, m)
		}
		if m != endedBy {
			c.emit(m, domain.NewCallEnded(endedBy))
		}
	}
	for key := range c.invites {
		if key.roomID == roomID {
			delete(c.invites, key)
		}
	}
	log.Info().Str("room_id", roomID).Str("ended_by", endedBy).Int("members", len(members)).Msg("Room ended")
	return members
}
