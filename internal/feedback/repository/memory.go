package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/feedbackwall/feedback-service/internal/feedback"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory repository used for unit tests and for running
// the service without MongoDB.
type MemoryRepo struct {
	mu    sync.RWMutex
	store []memoryEntry
	now   func() time.Time
}

type memoryEntry struct {
	seq uint64
	rec feedback.Record
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{now: func() time.Time { return time.Now().UTC() }}
}

func (m *MemoryRepo) Create(ctx context.Context, rec *feedback.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = primitive.NewObjectID().Hex()
	rec.CreatedAt = m.now()
	rec.UpdatedAt = rec.CreatedAt
	m.store = append(m.store, memoryEntry{seq: uint64(len(m.store)), rec: *rec})
	return nil
}

func (m *MemoryRepo) List(ctx context.Context) ([]*feedback.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	entries := make([]memoryEntry, len(m.store))
	copy(entries, m.store)
	m.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.rec.CreatedAt.Equal(b.rec.CreatedAt) {
			return a.rec.CreatedAt.After(b.rec.CreatedAt)
		}
		return a.seq > b.seq
	})
	out := make([]*feedback.Record, 0, len(entries))
	for i := range entries {
		r := entries[i].rec
		out = append(out, &r)
	}
	return out, nil
}

// Ping always succeeds.
func (m *MemoryRepo) Ping(ctx context.Context) error { return nil }

// Len returns the number of stored records.
func (m *MemoryRepo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}
