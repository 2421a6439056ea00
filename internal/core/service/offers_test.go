package service

import (
	"testing"
	"time"

	"github.com/Hiba-Rafique/Calling-System/internal/core/domain"
)

func TestOfflineOfferTimesOut(t *testing.T) {
	e := newTestEnv(t, 20*time.Millisecond)
	alice := e.register("alice")

	e.c.InitiateCall("alice", "bob", audioOffer)

	if _, ok := alice.find("callFailed"); ok {
		t.Fatal("caller must not see an immediate failure for an offline callee")
	}
	if !busyNow(e.c, "alice") || !busyNow(e.c, "bob") {
		t.Fatal("offer reservation should mark both parties busy")
	}

	waitFor(t, 2*time.Second, "offer deadline", func() bool {
		_, ok := alice.find("callFailed")
		return ok
	})
	ev, _ := alice.find("callFailed")
	if f := ev.(domain.CallFailed); f.From != "bob" || f.Reason != domain.ReasonOffline {
		t.Fatalf("callFailed = %+v", f)
	}
	if busyNow(e.c, "alice") || busyNow(e.c, "bob") {
		t.Fatal("busy state not cleared after offer expiry")
	}
	checkInvariants(t, e.c)

	e.drainLogs()
	rec, ok := e.store.byPair("alice", "bob")
	if !ok {
		t.Fatal("no call record persisted for the queued offer")
	}
	if rec.status != domain.StatusMissed {
		t.Fatalf("record status = %q, want missed", rec.status)
	}

	waitFor(t, 2*time.Second, "wake-up push", func() bool {
		return e.push.incomingCount() == 1
	})
}

func TestOfferDeliveredOnReconnect(t *testing.T) {
	e := newTestEnv(t, time.Minute)
	e.register("alice")

	e.c.InitiateCall("alice", "bob", audioOffer)

	bob := e.register("bob")
	ev, ok := bob.find("incomingCall")
	if !ok {
		t.Fatal("queued offer was not delivered on reconnect")
	}
	incoming := ev.(domain.IncomingCall)
	if incoming.From != "alice" || incoming.RoomID == "" {
		t.Fatalf("incomingCall = %+v", incoming)
	}
	// the call is now ringing online: busy and room state stand
	if !busyNow(e.c, "alice") || !busyNow(e.c, "bob") {
		t.Fatal("delivery must not clear the reservation")
	}
	checkInvariants(t, e.c)

	// the deadline timer is gone; nothing should fire later
	e.c.mu.Lock()
	if len(e.c.offers) != 0 {
		e.c.mu.Unlock()
		t.Fatal("pending offer entry not removed after delivery")
	}
	e.c.mu.Unlock()
}

func TestSecondCallerWhileOfferPending(t *testing.T) {
	e := newTestEnv(t, time.Minute)
	e.register("alice")
	carol := e.register("carol")

	e.c.InitiateCall("alice", "bob", audioOffer)
	e.c.InitiateCall("carol", "bob", audioOffer)

	ev, ok := carol.find("callFailed")
	if !ok {
		t.Fatal("carol did not receive callFailed")
	}
	if f := ev.(domain.CallFailed); f.From != "bob" || f.Reason != domain.ReasonBusy {
		t.Fatalf("callFailed = %+v", f)
	}

	e.c.mu.Lock()
	if len(e.c.offers) != 1 {
		e.c.mu.Unlock()
		t.Fatalf("want exactly one pending offer per callee, got %d", len(e.c.offers))
	}
	if e.c.offers["bob"].caller != "alice" {
		e.c.mu.Unlock()
		t.Fatal("the original offer must not be replaced")
	}
	e.c.mu.Unlock()
}

func TestCancelWhileOfferPending(t *testing.T) {
	e := newTestEnv(t, 50*time.Millisecond)
	alice := e.register("alice")

	e.c.InitiateCall("alice", "bob", audioOffer)
	e.c.Cancel("alice", "bob")

	if busyNow(e.c, "alice") || busyNow(e.c, "bob") {
		t.Fatal("cancel must unwind the offer reservation")
	}
	checkInvariants(t, e.c)

	// the stopped timer must not fire later and report offline
	time.Sleep(150 * time.Millisecond)
	if ev, ok := alice.find("callFailed"); ok {
		t.Fatalf("canceled offer still expired: %v", ev)
	}

	e.drainLogs()
	rec, ok := e.store.byPair("alice", "bob")
	if !ok {
		t.Fatal("no call record persisted")
	}
	if rec.status != domain.StatusMissed {
		t.Fatalf("record status = %q, want missed", rec.status)
	}
}

func TestCancelAbsentOfferIsNoop(t *testing.T) {
	e := newTestEnv(t, time.Minute)

	e.c.mu.Lock()
	e.c.cancelOfferLocked("nobody", domain.StatusMissed)
	offers := len(e.c.offers)
	e.c.mu.Unlock()

	if offers != 0 {
		t.Fatal("unexpected offer entry")
	}
	checkInvariants(t, e.c)
}
