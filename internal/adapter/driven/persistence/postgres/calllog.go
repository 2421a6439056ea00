// Package postgres backs the call log and user directory with the relational
// store owned by the account service.
//
// Expected schema:
//
//	CREATE TABLE call_logs (
//	    id         UUID PRIMARY KEY,
//	    caller_id  TEXT NOT NULL,
//	    callee_id  TEXT NOT NULL,
//	    status     TEXT NOT NULL,
//	    started_at TIMESTAMPTZ NOT NULL,
//	    ended_at   TIMESTAMPTZ
//	);
//
//	CREATE TABLE users (
//	    id    TEXT PRIMARY KEY,
//	    alias TEXT UNIQUE NOT NULL
//	);
package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Hiba-Rafique/Calling-System/internal/core/domain"
)

type CallLog struct {
	db *sqlx.DB
}

func NewCallLog(db *sqlx.DB) *CallLog {
	return &CallLog{db: db}
}

func (s *CallLog) Open(ctx context.Context, recordID, callerID, calleeID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO call_logs (id, caller_id, callee_id, status, started_at)
		 VALUES ($1, $2, $3, $4, now())`,
		recordID, callerID, calleeID, domain.StatusOngoing)
	return err
}

func (s *CallLog) Finalize(ctx context.Context, recordID string, status domain.CallStatus) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE call_logs SET status = $2, ended_at = now() WHERE id = $1`,
		recordID, status)
	return err
}
