// Package topicgate judges whether a free-text quiz topic suits a level
// before any questions are generated.
package topicgate

import (
	"context"
	"strings"

	"github.com/abhisek/levelup/internal/apperr"
)

// Input names the subject, the target level and the learner's topic.
type Input struct {
	Subject string
	Level   string
	Topic   string
}

// Verdict is the judge's decision.
type Verdict struct {
	Appropriate    bool
	Reason         string
	SuggestedTopic string
}

// Gate decides topic appropriateness.
type Gate interface {
	Check(ctx context.Context, in Input) (*Verdict, error)
}

// Recorder receives one notification per verdict.
type Recorder interface {
	TopicVerdict(appropriate bool)
}

// Enforce runs the gate and turns a rejection into an apperr topic
// rejected error carrying the reason and suggestion. Gate failures are
// generation failures.
func Enforce(ctx context.Context, g Gate, rec Recorder, in Input) error {
	in.Topic = strings.TrimSpace(in.Topic)
	if in.Topic == "" {
		return apperr.InvalidInput("topic is required")
	}

	v, err := g.Check(ctx, in)
	if err != nil {
		return apperr.Generation("check topic", err)
	}
	if rec != nil {
		rec.TopicVerdict(v.Appropriate)
	}
	if !v.Appropriate {
		return apperr.TopicRejected(v.Reason, v.SuggestedTopic)
	}
	return nil
}

// Static is a Gate that returns a fixed verdict.
type Static Verdict

func (s Static) Check(context.Context, Input) (*Verdict, error) {
	v := Verdict(s)
	return &v, nil
}
