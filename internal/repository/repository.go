package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lecture id cannot be resolved.
var ErrNotFound = errors.New("lecture not found")

type CreateLectureInput struct {
	Title           string
	Date            time.Time
	DurationSeconds int
	SourceKind      SourceKind
}

type SaveQuizAttemptInput struct {
	LectureID string
	Score     int
	Total     int
	TakenAt   time.Time
}

type UpdateFlashcardReviewInput struct {
	LectureID   string
	FlashcardID string
	Difficulty  int
	NextReview  time.Time
}

type LectureRepository interface {
	ListLectures(ctx context.Context) ([]Lecture, error)
	SearchLectures(ctx context.Context, query string) ([]Lecture, error)
	GetLectureDetail(ctx context.Context, lectureID string) (*LectureDetail, error)
	CreateLecture(ctx context.Context, input CreateLectureInput) (*Lecture, error)
}

type ReviewRepository interface {
	// SaveQuizAttempt records a finished attempt and refreshes the
	// lecture's stored quiz score.
	SaveQuizAttempt(ctx context.Context, input SaveQuizAttemptInput) error
	// UpdateFlashcardReview persists a rated card and rolls the lecture's
	// next review date up to the earliest card due date.
	UpdateFlashcardReview(ctx context.Context, input UpdateFlashcardReviewInput) error
}

type Repository interface {
	LectureRepository
	ReviewRepository
}
