package repository

import (
	"context"

	"github.com/feedbackwall/feedback-service/internal/feedback"
)

// Repository persists feedback records. Create assigns ID and timestamps on
// the passed record. List returns every record, newest first.
type Repository interface {
	Create(ctx context.Context, rec *feedback.Record) error
	List(ctx context.Context) ([]*feedback.Record, error)
}

// Pinger is implemented by repositories that can report backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}
