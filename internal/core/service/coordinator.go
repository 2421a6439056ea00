package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Hiba-Rafique/Calling-System/internal/core/domain"
	"github.com/Hiba-Rafique/Calling-System/internal/core/port"
)

const collaboratorTimeout = 10 * time.Second

// Coordinator is the in-memory signaling engine. It owns every mutable map
// (presence, 1:1 pairs, rooms, pending offers, pending invites, call-log
// correlations) and serializes all mutation behind one mutex, so each inbound
// event is handled to completion before the next touches shared state.
// Collaborator calls (call-log store, directory, push) never run under the
// lock.
type Coordinator struct {
	mu sync.Mutex

	clients  map[string]port.Client   // user -> live connection
	peers    map[string]string        // symmetric 1:1 pairs: peers[a]=b <=> peers[b]=a
	rooms    map[string]*domain.Room  // room id -> room
	userRoom map[string]string        // user -> room id
	offers   map[string]*pendingOffer // callee -> queued offer
	invites  map[inviteKey]string     // (room, invitee) -> inviter
	records  map[domain.Pair]string   // open call -> reserved record id

	logs *CallLogBridge
	dir  port.UserDirectory
	push port.PushNotifier

	offerTimeout time.Duration
}

type inviteKey struct {
	roomID  string
	invitee string
}

func NewCoordinator(logs *CallLogBridge, dir port.UserDirectory, push port.PushNotifier, offerTimeout time.Duration) *Coordinator {
	return &Coordinator{
		clients:      make(map[string]port.Client),
		peers:        make(map[string]string),
		rooms:        make(map[string]*domain.Room),
		userRoom:     make(map[string]string),
		offers:       make(map[string]*pendingOffer),
		invites:      make(map[inviteKey]string),
		records:      make(map[domain.Pair]string),
		logs:         logs,
		dir:          dir,
		push:         push,
		offerTimeout: offerTimeout,
	}
}

// Shutdown closes every live connection.
func (c *Coordinator) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for user, client := range c.clients {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Str("user", user).Msg("Error closing client connection")
		}
		delete(c.clients, user)
	}
}

// busy reports whether a user is engaged in, or being rung for, a call.
func (c *Coordinator) busy(user string) bool {
	if _, ok := c.peers[user]; ok {
		return true
	}
	if _, ok := c.userRoom[user]; ok {
		return true
	}
	return false
}

// clearPeer removes the 1:1 pairing for both parties together.
func (c *Coordinator) clearPeer(user string) {
	if p, ok := c.peers[user]; ok {
		delete(c.peers, user)
		delete(c.peers, p)
	}
}

// emit delivers an event to a user's live connection; absent users are
// silently skipped, delivery is best-effort.
func (c *Coordinator) emit(user string, ev domain.Event) {
	client, ok := c.clients[user]
	if !ok {
		return
	}
	if err := client.Send(ev); err != nil {
		log.Error().Err(err).Str("user", user).Str("event", ev.Name()).Msg("Error sending event")
	}
}

// openLog reserves a call-log record for the pair and hands persistence to the
// bridge worker.
func (c *Coordinator) openLog(caller, callee string) {
	c.records[domain.NewPair(caller, callee)] = c.logs.Open(caller, callee)
}

// finalizeLog closes the record correlated with the pair, if one is open.
func (c *Coordinator) finalizeLog(a, b string, status domain.CallStatus) {
	pair := domain.NewPair(a, b)
	rec, ok := c.records[pair]
	if !ok {
		return
	}
	delete(c.records, pair)
	c.logs.Finalize(rec, status)
}

func (c *Coordinator) pushIncomingCall(caller, callee, roomID string, isVideo bool) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), collaboratorTimeout)
		defer cancel()

		id, err := c.dir.ResolveInternalID(ctx, callee)
		if err != nil {
			log.Warn().Err(err).Str("callee", callee).Msg("Cannot resolve callee for push")
			return
		}
		note := domain.PushNote{From: caller, RoomID: roomID, IsVideo: isVideo}
		if err := c.push.SendIncomingCall(ctx, id, note); err != nil {
			log.Warn().Err(err).Str("callee", callee).Msg("Incoming call push failed")
		}
	}()
}

func (c *Coordinator) pushRoomInvite(inviter, invitee, roomID string, isVideo bool) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), collaboratorTimeout)
		defer cancel()

		id, err := c.dir.ResolveInternalID(ctx, invitee)
		if err != nil {
			log.Warn().Err(err).Str("invitee", invitee).Msg("Cannot resolve invitee for push")
			return
		}
		note := domain.PushNote{From: inviter, RoomID: roomID, IsVideo: isVideo}
		if err := c.push.SendRoomInvite(ctx, id, note); err != nil {
			log.Warn().Err(err).Str("invitee", invitee).Msg("Room invite push failed")
		}
	}()
}
