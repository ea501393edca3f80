package prompt

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/feedbackwall/feedback-service/internal/feedback"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	calls int32
	fail  error
	last  feedback.Submission
}

func (f *fakeSubmitter) Submit(ctx context.Context, name, text string) (*feedback.Record, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.fail != nil {
		return nil, f.fail
	}
	f.last = feedback.Submission{Name: name, Feedback: text}
	return &feedback.Record{ID: "1", Name: name, Feedback: text}, nil
}

func TestSessionWalksQuestions(t *testing.T) {
	s := NewSession(nil)
	q, ok := s.Next()
	require.True(t, ok)
	require.Equal(t, "name", q.Field)
	s.Answer("  Ada\n")

	q, ok = s.Next()
	require.True(t, ok)
	require.Equal(t, "feedback", q.Field)
	s.Answer("Great tool!\n")

	_, ok = s.Next()
	require.False(t, ok)
	require.True(t, s.Complete())

	sub := &fakeSubmitter{}
	rec, err := s.Finish(context.Background(), sub)
	require.NoError(t, err)
	require.Equal(t, "Ada", rec.Name)
	require.Equal(t, feedback.Submission{Name: "Ada", Feedback: "Great tool!"}, sub.last)
}

func TestSessionFinishBeforeComplete(t *testing.T) {
	s := NewSession(nil)
	s.Answer("Ada")
	sub := &fakeSubmitter{}
	_, err := s.Finish(context.Background(), sub)
	require.ErrorIs(t, err, ErrIncomplete)
	require.Zero(t, sub.calls)
}

func TestSessionSubmitsOnce(t *testing.T) {
	s := NewSession(nil)
	s.Answer("Ada")
	s.Answer("hi")
	sub := &fakeSubmitter{}

	var wg sync.WaitGroup
	var dup int32
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Finish(context.Background(), sub); errors.Is(err, ErrAlreadySubmitted) {
				atomic.AddInt32(&dup, 1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), sub.calls)
	require.Equal(t, int32(4), dup)
}

func TestSessionRetryAfterFailure(t *testing.T) {
	s := NewSession(nil)
	s.Answer("Ada")
	s.Answer("hi")
	sub := &fakeSubmitter{fail: errors.New("offline")}

	_, err := s.Finish(context.Background(), sub)
	require.Error(t, err)

	sub.fail = nil
	_, err = s.Finish(context.Background(), sub)
	require.NoError(t, err)
	require.Equal(t, int32(2), sub.calls)
}
