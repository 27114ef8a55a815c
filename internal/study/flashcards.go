package study

import (
	"context"
	"log/slog"

	"github.com/Priyanshu9798/lecture-zen-38/internal/repository"
	"github.com/Priyanshu9798/lecture-zen-38/internal/review"
)

type CardSnapshot struct {
	Index int
	Count int
	State review.CardState
	Card  *repository.Flashcard
}

func (m *Manager) FlashcardState(ctx context.Context, lectureID string) (CardSnapshot, error) {
	ls, err := m.open(ctx, lectureID)
	if err != nil {
		return CardSnapshot{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return snapshotCards(ls.cards), nil
}

func (m *Manager) CardReveal(ctx context.Context, lectureID string) (CardSnapshot, error) {
	ls, err := m.open(ctx, lectureID)
	if err != nil {
		return CardSnapshot{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.cards.Reveal()
	return snapshotCards(ls.cards), nil
}

// CardRate applies a difficulty rating and persists the rescheduled
// card. Persistence failures are logged; the in-memory session keeps
// its new state either way.
func (m *Manager) CardRate(ctx context.Context, lectureID string, rating int) (CardSnapshot, error) {
	ls, err := m.open(ctx, lectureID)
	if err != nil {
		return CardSnapshot{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	card, err := ls.cards.Rate(rating)
	if err != nil {
		return CardSnapshot{}, err
	}
	if card.ID != "" {
		if err := m.repo.UpdateFlashcardReview(ctx, repository.UpdateFlashcardReviewInput{
			LectureID:   lectureID,
			FlashcardID: card.ID,
			Difficulty:  card.Difficulty,
			NextReview:  card.NextReview,
		}); err != nil {
			slog.Error("failed to persist flashcard review", "lecture_id", lectureID, "flashcard_id", card.ID, "error", err)
		} else {
			slog.Info("flashcard rated", "lecture_id", lectureID, "flashcard_id", card.ID, "difficulty", card.Difficulty, "next_review", card.NextReview.Format("2006-01-02"))
		}
	}
	return snapshotCards(ls.cards), nil
}

func (m *Manager) CardAdvance(ctx context.Context, lectureID string) (CardSnapshot, error) {
	ls, err := m.open(ctx, lectureID)
	if err != nil {
		return CardSnapshot{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if err := ls.cards.Advance(); err != nil {
		return CardSnapshot{}, err
	}
	return snapshotCards(ls.cards), nil
}

func snapshotCards(s *review.FlashcardSession) CardSnapshot {
	snap := CardSnapshot{
		Index: s.Index(),
		Count: s.Count(),
		State: s.State(),
	}
	if card, ok := s.Current(); ok {
		snap.Card = &card
	}
	return snap
}
