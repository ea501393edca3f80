// Package prompt drives the guided, question-by-question feedback flow.
package prompt

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/feedbackwall/feedback-service/internal/feedback"
)

var (
	// ErrIncomplete is returned by Finish before every question is answered.
	ErrIncomplete = errors.New("not all questions have been answered")
	// ErrAlreadySubmitted is returned by Finish after a successful submit.
	ErrAlreadySubmitted = errors.New("feedback already submitted for this session")
)

// Submitter sends one completed submission. *client.Client satisfies it.
type Submitter interface {
	Submit(ctx context.Context, name, text string) (*feedback.Record, error)
}

// Question is one step of the guided flow.
type Question struct {
	Field  string
	Prompt string
}

// DefaultQuestions asks for the name first, then the feedback text.
var DefaultQuestions = []Question{
	{Field: "name", Prompt: "What's your name?"},
	{Field: "feedback", Prompt: "What would you like to tell us?"},
}

// Session collects answers and submits them at most once.
type Session struct {
	questions []Question
	answers   []string

	mu        sync.Mutex
	submitted *feedback.Record
}

func NewSession(questions []Question) *Session {
	if len(questions) == 0 {
		questions = DefaultQuestions
	}
	return &Session{questions: questions}
}

// Next returns the next unanswered question.
func (s *Session) Next() (Question, bool) {
	if s.Complete() {
		return Question{}, false
	}
	return s.questions[len(s.answers)], true
}

// Answer records the reply to the current question. Surrounding whitespace
// (the trailing newline from a terminal) is dropped.
func (s *Session) Answer(v string) {
	if s.Complete() {
		return
	}
	s.answers = append(s.answers, strings.TrimSpace(v))
}

// Complete reports whether every question has an answer.
func (s *Session) Complete() bool { return len(s.answers) >= len(s.questions) }

func (s *Session) value(field string) string {
	for i, q := range s.questions {
		if q.Field == field && i < len(s.answers) {
			return s.answers[i]
		}
	}
	return ""
}

// Finish submits the answers. It succeeds once per session; later calls
// return ErrAlreadySubmitted without contacting the service. A failed submit
// may be retried.
func (s *Session) Finish(ctx context.Context, sub Submitter) (*feedback.Record, error) {
	if !s.Complete() {
		return nil, ErrIncomplete
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted != nil {
		return s.submitted, ErrAlreadySubmitted
	}
	rec, err := sub.Submit(ctx, s.value("name"), s.value("feedback"))
	if err != nil {
		return nil, err
	}
	s.submitted = rec
	return rec, nil
}
