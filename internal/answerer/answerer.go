// Package answerer defines the contract to the chat answering service.
package answerer

import (
	"context"
	"errors"
)

// ErrServiceUnavailable signals that the answering call failed; the
// chat session recovers locally with a fallback message.
var ErrServiceUnavailable = errors.New("answering service unavailable")

type Answerer interface {
	// Answer runs one question/answer round trip for a lecture and
	// returns the full response text. No streaming: the caller does its
	// own presentation-layer reveal.
	Answer(ctx context.Context, lectureID, question string) (string, error)
}
