package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Hiba-Rafique/Calling-System/internal/core/domain"
)

type fakeClient struct {
	id string

	mu     sync.Mutex
	events []domain.Event
	closed bool
}

func newFakeClient(id string) *fakeClient {
	return &fakeClient{id: id}
}

func (f *fakeClient) ID() string { return f.id }

func (f *fakeClient) Send(ev domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeClient) Events() []domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Event, len(f.events))
	copy(out, f.events)
	return out
}

func (f *fakeClient) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// find returns the first received event with the given wire tag.
func (f *fakeClient) find(name string) (domain.Event, bool) {
	for _, ev := range f.Events() {
		if ev.Name() == name {
			return ev, true
		}
	}
	return nil, false
}

type fakeStore struct {
	mu      sync.Mutex
	records map[string]*storedRecord
}

type storedRecord struct {
	caller, callee string
	status         domain.CallStatus
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*storedRecord)}
}

func (s *fakeStore) Open(ctx context.Context, recordID, callerID, calleeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[recordID] = &storedRecord{caller: callerID, callee: calleeID, status: domain.StatusOngoing}
	return nil
}

func (s *fakeStore) Finalize(ctx context.Context, recordID string, status domain.CallStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[recordID]
	if !ok {
		return fmt.Errorf("unknown record %s", recordID)
	}
	rec.status = status
	return nil
}

func (s *fakeStore) byPair(caller, callee string) (storedRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.caller == caller && rec.callee == callee {
			return *rec, true
		}
	}
	return storedRecord{}, false
}

type identityDir struct{}

func (identityDir) ResolveInternalID(ctx context.Context, alias string) (string, error) {
	return alias, nil
}

type pushCall struct {
	userID string
	note   domain.PushNote
}

type fakePush struct {
	mu       sync.Mutex
	incoming []pushCall
	invites  []pushCall
}

func (p *fakePush) SendIncomingCall(ctx context.Context, userID string, note domain.PushNote) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.incoming = append(p.incoming, pushCall{userID, note})
	return nil
}

func (p *fakePush) SendRoomInvite(ctx context.Context, userID string, note domain.PushNote) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invites = append(p.invites, pushCall{userID, note})
	return nil
}

func (p *fakePush) incomingCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.incoming)
}

func (p *fakePush) inviteCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.invites)
}

type testEnv struct {
	c       *Coordinator
	store   *fakeStore
	push    *fakePush
	bridge  *CallLogBridge
	clients map[string]*fakeClient

	stopOnce sync.Once
}

func newTestEnv(t *testing.T, offerTimeout time.Duration) *testEnv {
	t.Helper()
	store := newFakeStore()
	p := &fakePush{}
	bridge := NewCallLogBridge(store, identityDir{})
	go bridge.Run()

	e := &testEnv{
		c:       NewCoordinator(bridge, identityDir{}, p, offerTimeout),
		store:   store,
		push:    p,
		bridge:  bridge,
		clients: make(map[string]*fakeClient),
	}
	t.Cleanup(e.drainLogs)
	return e
}

func (e *testEnv) mustClient(t *testing.T, name string) *fakeClient {
	t.Helper()
	client, ok := e.clients[name]
	if !ok {
		t.Fatalf("no registered client for %q", name)
	}
	return client
}

// drainLogs stops the bridge worker after applying everything queued, so the
// store can be asserted against deterministically.
func (e *testEnv) drainLogs() {
	e.stopOnce.Do(e.bridge.Stop)
}

func (e *testEnv) register(name string) *fakeClient {
	client := newFakeClient("conn-" + name)
	e.c.Register(name, client)
	e.clients[name] = client
	return client
}

func busyNow(c *Coordinator, user string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy(user)
}

func roomOf(c *Coordinator, user string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.userRoom[user]
	return id, ok
}

func seedRoom(c *Coordinator, id string, isVideo bool, members ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms[id] = domain.NewRoom(id, isVideo, members...)
	for _, m := range members {
		c.userRoom[m] = id
	}
}

// checkInvariants asserts busy symmetry, room size bounds and map agreement.
func checkInvariants(t *testing.T, c *Coordinator) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()

	for a, b := range c.peers {
		if back, ok := c.peers[b]; !ok || back != a {
			t.Fatalf("peer map asymmetric: peers[%q]=%q but peers[%q]=%q", a, b, b, back)
		}
	}
	for id, room := range c.rooms {
		if room.Size() < 1 || room.Size() > domain.MaxRoomSize {
			t.Fatalf("room %q has %d members", id, room.Size())
		}
		for _, m := range room.Participants() {
			if c.userRoom[m] != id {
				t.Fatalf("member %q of room %q has userRoom %q", m, id, c.userRoom[m])
			}
		}
	}
	for callee, off := range c.offers {
		if off.callee != callee {
			t.Fatalf("offer keyed by %q but records callee %q", callee, off.callee)
		}
	}
}

func waitFor(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

var audioOffer = []byte(`{"type":"offer","sdp":""}`)
