// Package apperr defines the error kinds surfaced to callers of the
// service layer.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindUnauthorized
	KindAlreadyCompleted
	KindGenerationFailure
	KindTopicRejected
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindAlreadyCompleted:
		return "already_completed"
	case KindGenerationFailure:
		return "generation_failure"
	case KindTopicRejected:
		return "topic_rejected"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "internal"
	}
}

// Error is a classified service error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the package sentinels by kind, so errors.Is(err, ErrNotFound)
// holds for any not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Msg != "" || t.Err != nil {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrUnauthorized      = &Error{Kind: KindUnauthorized}
	ErrAlreadyCompleted  = &Error{Kind: KindAlreadyCompleted}
	ErrGenerationFailure = &Error{Kind: KindGenerationFailure}
	ErrTopicRejected     = &Error{Kind: KindTopicRejected}
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
)

// Rejection carries the judge's explanation for a refused topic.
type Rejection struct {
	Reason         string
	SuggestedTopic string
}

func (r *Rejection) Error() string {
	if r.SuggestedTopic != "" {
		return fmt.Sprintf("%s (try %q)", r.Reason, r.SuggestedTopic)
	}
	return r.Reason
}

// NotFound returns a KindNotFound error.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Unauthorized returns a KindUnauthorized error.
func Unauthorized(format string, args ...any) error {
	return &Error{Kind: KindUnauthorized, Msg: fmt.Sprintf(format, args...)}
}

// AlreadyCompleted returns a KindAlreadyCompleted error.
func AlreadyCompleted(format string, args ...any) error {
	return &Error{Kind: KindAlreadyCompleted, Msg: fmt.Sprintf(format, args...)}
}

// InvalidInput returns a KindInvalidInput error.
func InvalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

// Generation wraps an LLM or validation failure. The cause stays reachable
// through errors.As.
func Generation(msg string, err error) error {
	return &Error{Kind: KindGenerationFailure, Msg: msg, Err: err}
}

// TopicRejected returns a KindTopicRejected error carrying a *Rejection.
func TopicRejected(reason, suggestedTopic string) error {
	return &Error{
		Kind: KindTopicRejected,
		Msg:  "topic rejected",
		Err:  &Rejection{Reason: reason, SuggestedTopic: suggestedTopic},
	}
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// RejectionOf extracts the topic rejection details, if any.
func RejectionOf(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
