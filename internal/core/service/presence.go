package service

import (
	"github.com/rs/zerolog/log"

	"github.com/Hiba-Rafique/Calling-System/internal/core/port"
)

// Register installs the live connection for a user. A new registration for the
// same identity supersedes any prior handle (last write wins); the old handle
// is closed so its read loop unwinds without tearing down the new session.
// A call offer queued while the user was unreachable is delivered immediately.
func (c *Coordinator) Register(user string, client port.Client) {
	if user == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.clients[user]; ok && old != client {
		log.Info().Str("user", user).Msg("Registration superseded")
		old.Close()
	}
	c.clients[user] = client
	log.Info().Str("user", user).Str("conn_id", client.ID()).Msg("User registered")

	if off, ok := c.offers[user]; ok {
		off.timer.Stop()
		delete(c.offers, user)
		// the call is now actively ringing online; busy and room state stand
		c.emit(user, off.event())
		log.Info().Str("user", user).Str("caller", off.caller).Msg("Queued offer delivered")
	}
}

// Resolve returns the live connection for a user, if any.
func (c *Coordinator) Resolve(user string) (port.Client, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	client, ok := c.clients[user]
	return client, ok
}

// Unregister removes the user's handle only if it still matches the given
// connection, then unwinds the user's call state. A handle already replaced by
// a newer registration is left alone.
func (c *Coordinator) Unregister(user string, client port.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.clients[user]
	if !ok || cur != client {
		return
	}
	delete(c.clients, user)
	log.Info().Str("user", user).Msg("User unregistered")

	c.reconcileDisconnect(user)
}
