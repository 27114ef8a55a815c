package study

import (
	"context"

	"github.com/Priyanshu9798/lecture-zen-38/internal/chat"
	"github.com/Priyanshu9798/lecture-zen-38/internal/transcript"
)

type ChatSnapshot struct {
	Messages     []chat.Message
	RevealBuffer string
	InFlight     bool
}

func (m *Manager) ChatState(ctx context.Context, lectureID string) (ChatSnapshot, error) {
	ls, err := m.open(ctx, lectureID)
	if err != nil {
		return ChatSnapshot{}, err
	}
	return ChatSnapshot{
		Messages:     ls.chat.Messages(),
		RevealBuffer: ls.chat.RevealBuffer(),
		InFlight:     ls.chat.InFlight(),
	}, nil
}

// ChatSend forwards one user message to the lecture's chat session and
// blocks until the assistant reply is committed. A nil message means
// the send was a no-op (blank input or another send in flight). The
// session is not locked here: a reveal in progress must not delay
// playback seeks or review operations.
func (m *Manager) ChatSend(ctx context.Context, lectureID, text string, onReveal func(prefix string)) (*chat.Message, error) {
	ls, err := m.open(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	return ls.chat.Send(ctx, text, onReveal), nil
}

type PlaybackState struct {
	Position         int
	Duration         int
	ActiveSegmentIDs []string
}

func (m *Manager) Playback(ctx context.Context, lectureID string) (PlaybackState, error) {
	ls, err := m.open(ctx, lectureID)
	if err != nil {
		return PlaybackState{}, err
	}
	return ls.playbackState(), nil
}

// Seek moves the shared playback position; the setter clamps. Chat
// timestamp activations, transcript row clicks, and scrubbing all land
// here.
func (m *Manager) Seek(ctx context.Context, lectureID string, seconds int) (PlaybackState, error) {
	ls, err := m.open(ctx, lectureID)
	if err != nil {
		return PlaybackState{}, err
	}
	ls.playback.Set(seconds)
	return ls.playbackState(), nil
}

func (ls *lectureSession) playbackState() PlaybackState {
	pos := ls.playback.Get()
	state := PlaybackState{Position: pos, Duration: ls.playback.Duration()}
	for _, seg := range transcript.ActiveSegments(ls.detail.Transcript, pos) {
		state.ActiveSegmentIDs = append(state.ActiveSegmentIDs, seg.ID)
	}
	return state
}
