// Package study coordinates the per-lecture study sessions: the quiz
// and flashcard state machines, the chat conversation, and the shared
// playback position, backed by the lecture catalog.
package study

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Priyanshu9798/lecture-zen-38/internal/answerer"
	"github.com/Priyanshu9798/lecture-zen-38/internal/chat"
	"github.com/Priyanshu9798/lecture-zen-38/internal/config"
	"github.com/Priyanshu9798/lecture-zen-38/internal/playback"
	"github.com/Priyanshu9798/lecture-zen-38/internal/repository"
	"github.com/Priyanshu9798/lecture-zen-38/internal/review"
)

type Manager struct {
	cfg       *config.Config
	repo      repository.Repository
	svc       answerer.Answerer
	scheduler review.Scheduler

	mu       sync.Mutex
	sessions map[string]*lectureSession
}

// lectureSession bundles the ephemeral state for one open lecture. The
// mutex guards only the quiz and flashcard machines; chat and playback
// synchronize themselves so a seek never waits on a running reveal.
type lectureSession struct {
	detail *repository.LectureDetail

	mu    sync.Mutex
	quiz  *review.QuizSession
	cards *review.FlashcardSession

	chat     *chat.Session
	playback *playback.Position
}

func NewManager(cfg *config.Config, repo repository.Repository, svc answerer.Answerer, scheduler review.Scheduler) *Manager {
	return &Manager{
		cfg:       cfg,
		repo:      repo,
		svc:       svc,
		scheduler: scheduler,
		sessions:  make(map[string]*lectureSession),
	}
}

// open returns the session for a lecture, fetching its detail bundle on
// first use. repository.ErrNotFound passes through to the caller.
func (m *Manager) open(ctx context.Context, lectureID string) (*lectureSession, error) {
	m.mu.Lock()
	if ls, ok := m.sessions[lectureID]; ok {
		m.mu.Unlock()
		return ls, nil
	}
	m.mu.Unlock()

	detail, err := m.repo.GetLectureDetail(ctx, lectureID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another caller may have opened the lecture while we were fetching.
	if ls, ok := m.sessions[lectureID]; ok {
		return ls, nil
	}
	ls := &lectureSession{
		detail:   detail,
		quiz:     review.NewQuizSession(detail.Quiz),
		cards:    review.NewFlashcardSession(detail.Flashcards, m.scheduler),
		chat:     chat.NewSession(lectureID, m.svc, time.Duration(m.cfg.ChatRevealIntervalMS)*time.Millisecond),
		playback: playback.NewPosition(detail.Lecture.DurationSeconds),
	}
	m.sessions[lectureID] = ls
	slog.Info("opened lecture session", "lecture_id", lectureID,
		"questions", len(detail.Quiz), "flashcards", len(detail.Flashcards), "segments", len(detail.Transcript))
	return ls, nil
}

// Detail returns the lecture bundle, opening the session if needed.
func (m *Manager) Detail(ctx context.Context, lectureID string) (*repository.LectureDetail, error) {
	ls, err := m.open(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	return ls.detail, nil
}

// Close drops the ephemeral session state for a lecture, if any.
func (m *Manager) Close(lectureID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, lectureID)
}
