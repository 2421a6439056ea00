package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Hiba-Rafique/Calling-System/internal/core/domain"
)

// CallLog keeps call records in memory, for single-instance deployments
// without a database.
type CallLog struct {
	mu      sync.Mutex
	records map[string]*Record
}

type Record struct {
	CallerID  string
	CalleeID  string
	Status    domain.CallStatus
	StartedAt time.Time
	EndedAt   time.Time
}

func NewCallLog() *CallLog {
	return &CallLog{
		records: make(map[string]*Record),
	}
}

func (s *CallLog) Open(ctx context.Context, recordID, callerID, calleeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[recordID] = &Record{
		CallerID:  callerID,
		CalleeID:  calleeID,
		Status:    domain.StatusOngoing,
		StartedAt: time.Now(),
	}
	return nil
}

func (s *CallLog) Finalize(ctx context.Context, recordID string, status domain.CallStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[recordID]
	if !ok {
		return fmt.Errorf("unknown call record %s", recordID)
	}
	rec.Status = status
	rec.EndedAt = time.Now()
	return nil
}

// Record returns a copy of a stored record.
func (s *CallLog) Record(recordID string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[recordID]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Records returns copies of all stored records.
func (s *CallLog) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, *rec)
	}
	return out
}
