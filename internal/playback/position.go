// Package playback holds the shared playback position for a lecture.
// Transcript highlighting, the audio transport, and chat timestamp
// activations all read and write the same value through this narrow
// get/set surface; the last writer wins.
package playback

import "sync"

type Position struct {
	mu       sync.Mutex
	seconds  int
	duration int
}

func NewPosition(durationSeconds int) *Position {
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	return &Position{duration: durationSeconds}
}

func (p *Position) Get() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seconds
}

// Set moves the position, clamping it into [0, duration].
func (p *Position) Set(seconds int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if seconds < 0 {
		seconds = 0
	}
	if seconds > p.duration {
		seconds = p.duration
	}
	p.seconds = seconds
}

func (p *Position) Duration() int { return p.duration }
