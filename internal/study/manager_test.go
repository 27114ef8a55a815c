package study

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Priyanshu9798/lecture-zen-38/internal/config"
	"github.com/Priyanshu9798/lecture-zen-38/internal/repository"
	"github.com/Priyanshu9798/lecture-zen-38/internal/review"
)

type mockRepository struct {
	detail       *repository.LectureDetail
	attemptCalls []repository.SaveQuizAttemptInput
	reviewCalls  []repository.UpdateFlashcardReviewInput
	detailCalls  int
}

func (m *mockRepository) ListLectures(_ context.Context) ([]repository.Lecture, error) {
	return nil, nil
}

func (m *mockRepository) SearchLectures(_ context.Context, _ string) ([]repository.Lecture, error) {
	return nil, nil
}

func (m *mockRepository) GetLectureDetail(_ context.Context, lectureID string) (*repository.LectureDetail, error) {
	m.detailCalls++
	if m.detail == nil || m.detail.Lecture.ID != lectureID {
		return nil, repository.ErrNotFound
	}
	return m.detail, nil
}

func (m *mockRepository) CreateLecture(_ context.Context, input repository.CreateLectureInput) (*repository.Lecture, error) {
	return &repository.Lecture{ID: "new", Title: input.Title}, nil
}

func (m *mockRepository) SaveQuizAttempt(_ context.Context, input repository.SaveQuizAttemptInput) error {
	m.attemptCalls = append(m.attemptCalls, input)
	return nil
}

func (m *mockRepository) UpdateFlashcardReview(_ context.Context, input repository.UpdateFlashcardReviewInput) error {
	m.reviewCalls = append(m.reviewCalls, input)
	return nil
}

type mockAnswerer struct {
	response string
	err      error
}

func (m *mockAnswerer) Answer(_ context.Context, _, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

type fixedScheduler struct {
	next time.Time
}

func (f fixedScheduler) NextReview(_ repository.Flashcard, _ int, _ time.Time) time.Time {
	return f.next
}

func testDetail() *repository.LectureDetail {
	return &repository.LectureDetail{
		Lecture: repository.Lecture{
			ID:              "lecture-1",
			Title:           "Introduction to Machine Learning",
			DurationSeconds: 3600,
		},
		Transcript: []repository.TranscriptSegment{
			{ID: "s1", TimestampSeconds: 0, Text: "Welcome"},
			{ID: "s2", TimestampSeconds: 30, Text: "Machine learning is"},
			{ID: "s3", TimestampSeconds: 120, Text: "Supervised learning"},
		},
		Quiz: []repository.QuizQuestion{
			{ID: "q1", Prompt: "p1", Options: []string{"a", "b"}, CorrectIndex: 1, Explanation: "e1"},
			{ID: "q2", Prompt: "p2", Options: []string{"a", "b"}, CorrectIndex: 0, Explanation: "e2"},
		},
		Flashcards: []repository.Flashcard{
			{ID: "f1", LectureID: "lecture-1", Question: "q", Answer: "a", Difficulty: 3},
			{ID: "f2", LectureID: "lecture-1", Question: "q", Answer: "a", Difficulty: 2},
		},
	}
}

func newTestManager(repo *mockRepository, svc *mockAnswerer, next time.Time) *Manager {
	cfg := &config.Config{
		Env:                  "test",
		HTTPListenAddr:       ":0",
		DatabaseURL:          "postgres://test",
		OpenAIAPIKey:         "sk-test",
		OpenAIModel:          "gpt-4.1-mini",
		ChatRevealIntervalMS: 0,
		AllowedOrigins:       []string{"*"},
	}
	return NewManager(cfg, repo, svc, fixedScheduler{next: next})
}

func TestDetail_UnknownLecture(t *testing.T) {
	m := newTestManager(&mockRepository{}, &mockAnswerer{}, time.Time{})
	if _, err := m.Detail(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestDetail_FetchedOncePerLecture(t *testing.T) {
	repo := &mockRepository{detail: testDetail()}
	m := newTestManager(repo, &mockAnswerer{}, time.Time{})
	ctx := context.Background()

	if _, err := m.Detail(ctx, "lecture-1"); err != nil {
		t.Fatalf("first detail fetch failed: %v", err)
	}
	if _, err := m.QuizState(ctx, "lecture-1"); err != nil {
		t.Fatalf("quiz state failed: %v", err)
	}
	if repo.detailCalls != 1 {
		t.Fatalf("expected one repository fetch, got %d", repo.detailCalls)
	}
}

func TestQuizFlow_FinishPersistsAttempt(t *testing.T) {
	repo := &mockRepository{detail: testDetail()}
	m := newTestManager(repo, &mockAnswerer{}, time.Time{})
	ctx := context.Background()

	// First question: correct answer.
	if _, err := m.QuizSelect(ctx, "lecture-1", 1); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	fb, err := m.QuizSubmit(ctx, "lecture-1")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !fb.Correct || fb.Explanation != "e1" {
		t.Fatalf("unexpected feedback: %+v", fb)
	}
	if _, err := m.QuizNext(ctx, "lecture-1"); err != nil {
		t.Fatalf("next failed: %v", err)
	}

	// Second question: wrong answer, finishing the attempt.
	if _, err := m.QuizSelect(ctx, "lecture-1", 1); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if _, err := m.QuizSubmit(ctx, "lecture-1"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	snap, err := m.QuizNext(ctx, "lecture-1")
	if err != nil {
		t.Fatalf("final next failed: %v", err)
	}
	if snap.State != review.QuizStateFinished {
		t.Fatalf("expected finished state, got %s", snap.State)
	}
	if snap.Result == nil || snap.Result.Score != 1 || snap.Result.Total != 2 {
		t.Fatalf("unexpected result: %+v", snap.Result)
	}

	if len(repo.attemptCalls) != 1 {
		t.Fatalf("expected one persisted attempt, got %d", len(repo.attemptCalls))
	}
	got := repo.attemptCalls[0]
	if got.LectureID != "lecture-1" || got.Score != 1 || got.Total != 2 {
		t.Fatalf("unexpected attempt payload: %+v", got)
	}
}

func TestQuizSubmitWithoutSelection_RejectedAndNotPersisted(t *testing.T) {
	repo := &mockRepository{detail: testDetail()}
	m := newTestManager(repo, &mockAnswerer{}, time.Time{})

	if _, err := m.QuizSubmit(context.Background(), "lecture-1"); !errors.Is(err, review.ErrNoSelection) {
		t.Fatalf("expected no-selection error, got %v", err)
	}
	if len(repo.attemptCalls) != 0 {
		t.Fatal("expected no persisted attempts")
	}
}

func TestCardRate_PersistsScheduledReview(t *testing.T) {
	due := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	repo := &mockRepository{detail: testDetail()}
	m := newTestManager(repo, &mockAnswerer{}, due)
	ctx := context.Background()

	if _, err := m.CardReveal(ctx, "lecture-1"); err != nil {
		t.Fatalf("reveal failed: %v", err)
	}
	snap, err := m.CardRate(ctx, "lecture-1", 4)
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if snap.State != review.CardStateRated {
		t.Fatalf("expected rated state, got %s", snap.State)
	}

	if len(repo.reviewCalls) != 1 {
		t.Fatalf("expected one persisted review, got %d", len(repo.reviewCalls))
	}
	got := repo.reviewCalls[0]
	if got.FlashcardID != "f1" || got.Difficulty != 4 || !got.NextReview.Equal(due) {
		t.Fatalf("unexpected review payload: %+v", got)
	}
}

func TestCardRateBeforeReveal_Rejected(t *testing.T) {
	repo := &mockRepository{detail: testDetail()}
	m := newTestManager(repo, &mockAnswerer{}, time.Time{})

	if _, err := m.CardRate(context.Background(), "lecture-1", 3); !errors.Is(err, review.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if len(repo.reviewCalls) != 0 {
		t.Fatal("expected no persisted reviews")
	}
}

func TestChatSend_CommitsAssistantReply(t *testing.T) {
	repo := &mockRepository{detail: testDetail()}
	m := newTestManager(repo, &mockAnswerer{response: "Covered at [02:00]."}, time.Time{})

	msg, err := m.ChatSend(context.Background(), "lecture-1", "when is this covered?", nil)
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if msg == nil || msg.Content != "Covered at [02:00]." {
		t.Fatalf("unexpected committed message: %+v", msg)
	}

	snap, err := m.ChatState(context.Background(), "lecture-1")
	if err != nil {
		t.Fatalf("chat state failed: %v", err)
	}
	if len(snap.Messages) != 3 {
		t.Fatalf("expected greeting + user + assistant, got %d", len(snap.Messages))
	}
	if snap.InFlight || snap.RevealBuffer != "" {
		t.Fatalf("expected idle chat state, got %+v", snap)
	}
}

func TestSeek_ClampsAndReportsActiveSegments(t *testing.T) {
	repo := &mockRepository{detail: testDetail()}
	m := newTestManager(repo, &mockAnswerer{}, time.Time{})
	ctx := context.Background()

	state, err := m.Seek(ctx, "lecture-1", 35)
	if err != nil {
		t.Fatalf("seek failed: %v", err)
	}
	if state.Position != 35 {
		t.Fatalf("expected position 35, got %d", state.Position)
	}
	if len(state.ActiveSegmentIDs) != 1 || state.ActiveSegmentIDs[0] != "s2" {
		t.Fatalf("expected segment s2 active, got %v", state.ActiveSegmentIDs)
	}

	state, err = m.Seek(ctx, "lecture-1", 999999)
	if err != nil {
		t.Fatalf("seek failed: %v", err)
	}
	if state.Position != 3600 {
		t.Fatalf("expected clamp to duration, got %d", state.Position)
	}
}

func TestSeek_DuringChatRevealDoesNotBlock(t *testing.T) {
	repo := &mockRepository{detail: testDetail()}
	m := newTestManager(repo, &mockAnswerer{response: "a reply long enough to reveal"}, time.Time{})
	ctx := context.Background()

	step := 0
	_, err := m.ChatSend(ctx, "lecture-1", "question", func(string) {
		step++
		state, err := m.Seek(ctx, "lecture-1", step)
		if err != nil {
			t.Fatalf("seek during reveal failed: %v", err)
		}
		if state.Position != step {
			t.Fatalf("seek during reveal did not apply immediately: got %d want %d", state.Position, step)
		}
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if step == 0 {
		t.Fatal("expected reveal steps to run")
	}
}
