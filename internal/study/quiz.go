package study

import (
	"context"
	"log/slog"
	"time"

	"github.com/Priyanshu9798/lecture-zen-38/internal/repository"
	"github.com/Priyanshu9798/lecture-zen-38/internal/review"
)

type QuizSnapshot struct {
	Index    int
	Count    int
	State    review.QuizState
	Selected *int
	Question *repository.QuizQuestion
	Result   *review.QuizResult
}

// QuizFeedback is what the learner sees right after submitting.
type QuizFeedback struct {
	Correct      bool
	CorrectIndex int
	Explanation  string
}

func (m *Manager) QuizState(ctx context.Context, lectureID string) (QuizSnapshot, error) {
	ls, err := m.open(ctx, lectureID)
	if err != nil {
		return QuizSnapshot{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return snapshotQuiz(ls.quiz), nil
}

func (m *Manager) QuizSelect(ctx context.Context, lectureID string, optionIndex int) (QuizSnapshot, error) {
	ls, err := m.open(ctx, lectureID)
	if err != nil {
		return QuizSnapshot{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if err := ls.quiz.Select(optionIndex); err != nil {
		return QuizSnapshot{}, err
	}
	return snapshotQuiz(ls.quiz), nil
}

func (m *Manager) QuizSubmit(ctx context.Context, lectureID string) (QuizFeedback, error) {
	ls, err := m.open(ctx, lectureID)
	if err != nil {
		return QuizFeedback{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	q, ok := ls.quiz.Current()
	if !ok {
		return QuizFeedback{}, review.ErrInvalidTransition
	}
	correct, err := ls.quiz.Submit()
	if err != nil {
		return QuizFeedback{}, err
	}
	return QuizFeedback{Correct: correct, CorrectIndex: q.CorrectIndex, Explanation: q.Explanation}, nil
}

// QuizNext advances to the next question, or finishes the attempt and
// records it in the catalog. A failed write is logged, not surfaced;
// the session still finishes.
func (m *Manager) QuizNext(ctx context.Context, lectureID string) (QuizSnapshot, error) {
	ls, err := m.open(ctx, lectureID)
	if err != nil {
		return QuizSnapshot{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if err := ls.quiz.Next(); err != nil {
		return QuizSnapshot{}, err
	}
	if ls.quiz.State() == review.QuizStateFinished {
		res := ls.quiz.Result()
		if err := m.repo.SaveQuizAttempt(ctx, repository.SaveQuizAttemptInput{
			LectureID: lectureID,
			Score:     res.Score,
			Total:     res.Total,
			TakenAt:   time.Now(),
		}); err != nil {
			slog.Error("failed to save quiz attempt", "lecture_id", lectureID, "error", err)
		} else {
			slog.Info("quiz attempt recorded", "lecture_id", lectureID, "score", res.Score, "total", res.Total, "percentage", res.Percentage)
		}
	}
	return snapshotQuiz(ls.quiz), nil
}

func (m *Manager) QuizRestart(ctx context.Context, lectureID string) (QuizSnapshot, error) {
	ls, err := m.open(ctx, lectureID)
	if err != nil {
		return QuizSnapshot{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.quiz.Restart()
	return snapshotQuiz(ls.quiz), nil
}

func snapshotQuiz(s *review.QuizSession) QuizSnapshot {
	snap := QuizSnapshot{
		Index: s.Index(),
		Count: s.Count(),
		State: s.State(),
	}
	if sel, ok := s.Selected(); ok {
		snap.Selected = &sel
	}
	if q, ok := s.Current(); ok {
		snap.Question = &q
	}
	if s.State() == review.QuizStateFinished {
		res := s.Result()
		snap.Result = &res
	}
	return snap
}
