package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Hiba-Rafique/Calling-System/internal/core/domain"
	"github.com/Hiba-Rafique/Calling-System/internal/core/port"
)

// CallLogBridge adapts the external call-log store to the coordinator. Record
// ids are reserved synchronously, before any busy/room state is touched, so a
// call rejected right after initiation still finds its record; persistence
// itself runs on a single background worker that applies operations in order.
type CallLogBridge struct {
	store port.CallLogStore
	dir   port.UserDirectory
	ops   chan logOp
	quit  chan struct{}
	done  chan struct{}
}

type logOp struct {
	open     bool
	recordID string
	caller   string
	callee   string
	status   domain.CallStatus
}

func NewCallLogBridge(store port.CallLogStore, dir port.UserDirectory) *CallLogBridge {
	return &CallLogBridge{
		store: store,
		dir:   dir,
		ops:   make(chan logOp, 256),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Open reserves and returns a record id; the open is persisted asynchronously.
func (b *CallLogBridge) Open(caller, callee string) string {
	id := domain.NewRecordID()
	b.submit(logOp{open: true, recordID: id, caller: caller, callee: callee})
	return id
}

// Finalize closes a record asynchronously.
func (b *CallLogBridge) Finalize(recordID string, status domain.CallStatus) {
	b.submit(logOp{recordID: recordID, status: status})
}

func (b *CallLogBridge) submit(op logOp) {
	select {
	case b.ops <- op:
	default:
		log.Warn().Str("record_id", op.recordID).Msg("Call log queue full, dropping operation")
	}
}

// Run applies queued operations until Stop is called; remaining operations are
// drained before returning.
func (b *CallLogBridge) Run() {
	defer close(b.done)
	for {
		select {
		case <-b.quit:
			for {
				select {
				case op := <-b.ops:
					b.apply(op)
				default:
					return
				}
			}
		case op := <-b.ops:
			b.apply(op)
		}
	}
}

func (b *CallLogBridge) Stop() {
	close(b.quit)
	<-b.done
}

func (b *CallLogBridge) apply(op logOp) {
	ctx, cancel := context.WithTimeout(context.Background(), collaboratorTimeout)
	defer cancel()

	if !op.open {
		if err := b.store.Finalize(ctx, op.recordID, op.status); err != nil {
			log.Error().Err(err).Str("record_id", op.recordID).Msg("Failed to finalize call log")
		}
		return
	}

	callerID, err := b.dir.ResolveInternalID(ctx, op.caller)
	if err != nil {
		log.Warn().Err(err).Str("caller", op.caller).Msg("Cannot resolve caller for call log")
		return
	}
	calleeID, err := b.dir.ResolveInternalID(ctx, op.callee)
	if err != nil {
		log.Warn().Err(err).Str("callee", op.callee).Msg("Cannot resolve callee for call log")
		return
	}
	if err := b.store.Open(ctx, op.recordID, callerID, calleeID); err != nil {
		log.Error().Err(err).Str("record_id", op.recordID).Msg("Failed to open call log")
	}
}
