package review

import (
	"time"

	"github.com/Priyanshu9798/lecture-zen-38/internal/repository"
)

type CardState string

const (
	CardStateQuestion CardState = "question"
	CardStateAnswer   CardState = "answer"
	CardStateRated    CardState = "rated"
)

// FlashcardSession walks a deck cyclically: reveal, rate, advance, card
// by card, wrapping back to the first card after the last one.
type FlashcardSession struct {
	cards     []repository.Flashcard
	scheduler Scheduler
	current   int
	state     CardState
	now       func() time.Time
}

func NewFlashcardSession(cards []repository.Flashcard, scheduler Scheduler) *FlashcardSession {
	return &FlashcardSession{
		cards:     cards,
		scheduler: scheduler,
		state:     CardStateQuestion,
		now:       time.Now,
	}
}

// Current returns the card under review, or false for an empty deck.
func (s *FlashcardSession) Current() (repository.Flashcard, bool) {
	if len(s.cards) == 0 {
		return repository.Flashcard{}, false
	}
	return s.cards[s.current], true
}

func (s *FlashcardSession) Index() int { return s.current }

func (s *FlashcardSession) Count() int { return len(s.cards) }

func (s *FlashcardSession) State() CardState { return s.state }

// Reveal flips the current card to its answer side. Calling it past the
// question state is a no-op.
func (s *FlashcardSession) Reveal() {
	if len(s.cards) == 0 {
		return
	}
	if s.state == CardStateQuestion {
		s.state = CardStateAnswer
	}
}

// Rate records a difficulty rating for the revealed card and schedules
// its next review through the session's scheduler. The updated card is
// returned for persistence. Rating is only accepted while the answer is
// showing and the card has not been rated yet.
func (s *FlashcardSession) Rate(rating int) (repository.Flashcard, error) {
	if len(s.cards) == 0 {
		return repository.Flashcard{}, nil
	}
	if rating < 1 || rating > 5 {
		return repository.Flashcard{}, ErrRatingOutOfRange
	}
	if s.state != CardStateAnswer {
		return repository.Flashcard{}, ErrInvalidTransition
	}
	card := s.cards[s.current]
	card.Difficulty = rating
	card.NextReview = s.scheduler.NextReview(card, rating, s.now())
	s.cards[s.current] = card
	s.state = CardStateRated
	return card, nil
}

// Advance moves to the next card in cyclic order, resetting it to the
// question side. The deck restarts after the last card instead of
// terminating.
func (s *FlashcardSession) Advance() error {
	if len(s.cards) == 0 {
		return nil
	}
	if s.state != CardStateRated {
		return ErrInvalidTransition
	}
	s.current = (s.current + 1) % len(s.cards)
	s.state = CardStateQuestion
	return nil
}
