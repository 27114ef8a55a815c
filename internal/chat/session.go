// Package chat manages one conversation per lecture: message history,
// the single in-flight send, and the character-by-character reveal of
// assistant responses. Timestamp tokens inside assistant messages link
// back to transcript playback positions.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Priyanshu9798/lecture-zen-38/internal/answerer"
	"github.com/google/uuid"
)

const (
	// Greeting seeds every new session as its first assistant message.
	Greeting = "Hi! I'm your AI study assistant. Ask me anything about this lecture."
	// fallbackMessage replaces the response when the answering service
	// fails; the failure never surfaces to the caller.
	fallbackMessage = "Sorry, something went wrong."

	// DefaultRevealInterval paces the simulated streaming of responses.
	DefaultRevealInterval = 15 * time.Millisecond
)

// Session holds the conversation for a single lecture. All exported
// methods are safe for concurrent use; the reveal loop only holds the
// lock per increment, so reads (and playback seeks elsewhere) proceed
// while a response is still revealing.
type Session struct {
	lectureID      string
	svc            answerer.Answerer
	revealInterval time.Duration
	newID          func() string
	now            func() time.Time

	mu           sync.Mutex
	messages     []Message
	inFlight     bool
	revealBuffer string
}

func NewSession(lectureID string, svc answerer.Answerer, revealInterval time.Duration) *Session {
	s := &Session{
		lectureID:      lectureID,
		svc:            svc,
		revealInterval: revealInterval,
		newID:          uuid.NewString,
		now:            time.Now,
	}
	s.messages = []Message{{ID: s.newID(), Role: RoleAssistant, Content: Greeting}}
	return s
}

// Messages returns a copy of the conversation history.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// RevealBuffer returns the partially revealed response, or "" when no
// reveal is active.
func (s *Session) RevealBuffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revealBuffer
}

func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Send runs one round trip: append the user message, ask the answering
// service, reveal the response prefix by prefix (onReveal observes each
// step; it may be nil), then commit it to history. Blank input and
// sends while another is in flight are no-ops returning nil; a service
// failure commits the fallback message instead. Send blocks until the
// assistant message is committed.
func (s *Session) Send(ctx context.Context, text string, onReveal func(prefix string)) *Message {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil
	}
	s.inFlight = true
	s.messages = append(s.messages, Message{
		ID:      s.newID(),
		Role:    RoleUser,
		Content: trimmed,
		SentAt:  s.now(),
	})
	s.mu.Unlock()

	response, err := s.svc.Answer(ctx, s.lectureID, trimmed)
	if err != nil {
		slog.Warn("chat answering failed, using fallback", "lecture_id", s.lectureID, "error", err)
		return s.commit(fallbackMessage)
	}

	s.reveal(response, onReveal)
	return s.commit(response)
}

// reveal grows the buffer one character at a time in strict prefix
// order, pausing revealInterval between steps.
func (s *Session) reveal(response string, onReveal func(prefix string)) {
	runes := []rune(response)
	for i := 1; i <= len(runes); i++ {
		if s.revealInterval > 0 {
			time.Sleep(s.revealInterval)
		}
		prefix := string(runes[:i])
		s.mu.Lock()
		s.revealBuffer = prefix
		s.mu.Unlock()
		if onReveal != nil {
			onReveal(prefix)
		}
	}
}

// commit appends the final assistant message, clears the reveal buffer,
// and releases the in-flight guard in one step.
func (s *Session) commit(content string) *Message {
	msg := Message{
		ID:      s.newID(),
		Role:    RoleAssistant,
		Content: content,
		SentAt:  s.now(),
	}
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.revealBuffer = ""
	s.inFlight = false
	s.mu.Unlock()
	return &msg
}
