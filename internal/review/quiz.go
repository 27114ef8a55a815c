package review

import (
	"math"

	"github.com/Priyanshu9798/lecture-zen-38/internal/repository"
)

type QuizState string

const (
	QuizStateAnswering QuizState = "answering"
	QuizStateSubmitted QuizState = "submitted"
	QuizStateFinished  QuizState = "finished"
)

type Tier string

const (
	TierExcellent   Tier = "excellent"
	TierGood        Tier = "good"
	TierFair        Tier = "fair"
	TierNeedsReview Tier = "needs_review"
)

type QuizResult struct {
	Score      int
	Total      int
	Percentage int
	Tier       Tier
}

// QuizSession sequences through a question set one question at a time:
// select an option, submit it, move on, and finish after the last
// question with a score over the whole attempt.
type QuizSession struct {
	questions []repository.QuizQuestion
	current   int
	selected  *int
	answers   []int
	state     QuizState
}

func NewQuizSession(questions []repository.QuizQuestion) *QuizSession {
	s := &QuizSession{questions: questions, state: QuizStateAnswering}
	if len(questions) == 0 {
		s.state = QuizStateFinished
	}
	return s
}

// Current returns the question being answered, or false once finished
// or for an empty question set.
func (s *QuizSession) Current() (repository.QuizQuestion, bool) {
	if s.state == QuizStateFinished || s.current >= len(s.questions) {
		return repository.QuizQuestion{}, false
	}
	return s.questions[s.current], true
}

func (s *QuizSession) Index() int { return s.current }

func (s *QuizSession) Count() int { return len(s.questions) }

func (s *QuizSession) State() QuizState { return s.state }

// Selected returns the pending, not yet submitted choice.
func (s *QuizSession) Selected() (int, bool) {
	if s.selected == nil {
		return 0, false
	}
	return *s.selected, true
}

// Answers returns a copy of the submitted answer indices in question
// order.
func (s *QuizSession) Answers() []int {
	out := make([]int, len(s.answers))
	copy(out, s.answers)
	return out
}

// Select stores the pending choice for the current question. It may be
// called repeatedly to change the choice before submission.
func (s *QuizSession) Select(optionIndex int) error {
	if s.state != QuizStateAnswering {
		return ErrInvalidTransition
	}
	q := s.questions[s.current]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return ErrOptionOutOfRange
	}
	choice := optionIndex
	s.selected = &choice
	return nil
}

// Submit locks in the pending choice and reports whether it matched the
// question's correct index.
func (s *QuizSession) Submit() (bool, error) {
	if s.state != QuizStateAnswering {
		return false, ErrInvalidTransition
	}
	if s.selected == nil {
		return false, ErrNoSelection
	}
	choice := *s.selected
	s.answers = append(s.answers, choice)
	s.state = QuizStateSubmitted
	return choice == s.questions[s.current].CorrectIndex, nil
}

// Next advances to the following question, or finishes the session when
// the submitted question was the last one.
func (s *QuizSession) Next() error {
	if s.state != QuizStateSubmitted {
		return ErrInvalidTransition
	}
	if s.current+1 >= len(s.questions) {
		s.state = QuizStateFinished
		return nil
	}
	s.current++
	s.selected = nil
	s.state = QuizStateAnswering
	return nil
}

// Restart clears the whole attempt from any state.
func (s *QuizSession) Restart() {
	s.current = 0
	s.selected = nil
	s.answers = nil
	s.state = QuizStateAnswering
	if len(s.questions) == 0 {
		s.state = QuizStateFinished
	}
}

// Result scores the answers submitted so far. An empty question set
// scores zero percent rather than dividing by zero.
func (s *QuizSession) Result() QuizResult {
	score := 0
	for i, a := range s.answers {
		if i < len(s.questions) && a == s.questions[i].CorrectIndex {
			score++
		}
	}
	total := len(s.questions)
	pct := 0
	if total > 0 {
		pct = int(math.Round(100 * float64(score) / float64(total)))
	}
	return QuizResult{Score: score, Total: total, Percentage: pct, Tier: tierFor(pct)}
}

func tierFor(pct int) Tier {
	switch {
	case pct >= 90:
		return TierExcellent
	case pct >= 70:
		return TierGood
	case pct >= 50:
		return TierFair
	default:
		return TierNeedsReview
	}
}
