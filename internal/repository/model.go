package repository

import "time"

type SourceKind string

const (
	SourceKindAudio    SourceKind = "audio"
	SourceKindDocument SourceKind = "document"
)

type Lecture struct {
	ID              string
	Title           string
	Date            time.Time
	DurationSeconds int
	QuizScore       *int
	NextReviewDate  *time.Time
	HasTranscript   bool
	HasSummary      bool
	SourceKind      SourceKind
	CreatedAt       time.Time
}

type TranscriptSegment struct {
	ID               string
	LectureID        string
	TimestampSeconds int
	Text             string
}

type SummarySection struct {
	Heading string
	Points  []string
}

type QuizQuestion struct {
	ID           string
	Prompt       string
	Options      []string
	CorrectIndex int
	Explanation  string
}

type Flashcard struct {
	ID         string
	LectureID  string
	Question   string
	Answer     string
	NextReview time.Time
	Difficulty int
}

type QuizAttempt struct {
	ID        string
	LectureID string
	Score     int
	Total     int
	TakenAt   time.Time
}

type LectureDetail struct {
	Lecture    Lecture
	Transcript []TranscriptSegment
	Summary    []SummarySection
	Notes      string
	Quiz       []QuizQuestion
	Flashcards []Flashcard
}
