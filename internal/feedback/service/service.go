package service

import (
	"context"

	"github.com/feedbackwall/feedback-service/internal/feedback"
	"github.com/feedbackwall/feedback-service/internal/feedback/repository"
	"github.com/feedbackwall/feedback-service/pkg/metrics"
)

// Service defines the feedback operations used by the handler layer.
type Service interface {
	Submit(ctx context.Context, name, text string) (*feedback.Record, error)
	List(ctx context.Context) ([]*feedback.Record, error)
	Ping(ctx context.Context) error
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo())
}

// New returns a Service over the given repository.
func New(repo repository.Repository) Service {
	return &feedbackService{repo: repo}
}

type feedbackService struct {
	repo repository.Repository
}

// Submit validates and stores a new record. Validation failures are
// *feedback.ValidationError; store failures are *feedback.StorageError.
func (s *feedbackService) Submit(ctx context.Context, name, text string) (*feedback.Record, error) {
	sub := feedback.Submission{Name: name, Feedback: text}
	if err := feedback.Validate(sub); err != nil {
		metrics.Submissions.WithLabelValues("invalid").Inc()
		return nil, err
	}
	rec := &feedback.Record{Name: sub.Name, Feedback: sub.Feedback}
	if err := s.repo.Create(ctx, rec); err != nil {
		metrics.Submissions.WithLabelValues("storage_error").Inc()
		return nil, &feedback.StorageError{Op: "create", Err: err}
	}
	metrics.Submissions.WithLabelValues("created").Inc()
	return rec, nil
}

// List returns every record, newest first.
func (s *feedbackService) List(ctx context.Context) ([]*feedback.Record, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		metrics.Listings.WithLabelValues("storage_error").Inc()
		return nil, &feedback.StorageError{Op: "list", Err: err}
	}
	if list == nil {
		list = []*feedback.Record{}
	}
	metrics.Listings.WithLabelValues("ok").Inc()
	return list, nil
}

// Ping reports whether the backing store is reachable.
func (s *feedbackService) Ping(ctx context.Context) error {
	if p, ok := s.repo.(repository.Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return &feedback.StorageError{Op: "ping", Err: err}
		}
	}
	return nil
}
