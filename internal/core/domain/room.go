package domain

import (
	"sort"
	"time"
)

// MaxRoomSize caps how many participants can share one call session.
const MaxRoomSize = 7

// Room is a set of 2–7 participants sharing one call session. A 1:1 call owns
// a 2-member room from the moment it starts ringing so it can later be grown
// through invites.
type Room struct {
	ID        string
	IsVideo   bool
	CreatedAt time.Time

	members map[string]struct{}
}

func NewRoom(id string, isVideo bool, members ...string) *Room {
	r := &Room{
		ID:        id,
		IsVideo:   isVideo,
		CreatedAt: time.Now(),
		members:   make(map[string]struct{}, len(members)),
	}
	for _, m := range members {
		r.members[m] = struct{}{}
	}
	return r
}

func (r *Room) Has(user string) bool {
	_, ok := r.members[user]
	return ok
}

func (r *Room) Add(user string) {
	r.members[user] = struct{}{}
}

func (r *Room) Remove(user string) {
	delete(r.members, user)
}

func (r *Room) Size() int {
	return len(r.members)
}

// Participants returns the member set in a stable order.
func (r *Room) Participants() []string {
	out := make([]string, 0, len(r.members))
	for m := range r.members {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
