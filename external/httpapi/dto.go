package httpapi

import (
	"time"

	"github.com/Priyanshu9798/lecture-zen-38/internal/chat"
	"github.com/Priyanshu9798/lecture-zen-38/internal/repository"
	"github.com/Priyanshu9798/lecture-zen-38/internal/study"
)

const dateLayout = "2006-01-02"

type lectureDTO struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Date           string  `json:"date"`
	Duration       int     `json:"duration"`
	QuizScore      *int    `json:"quizScore,omitempty"`
	NextReviewDate *string `json:"nextReviewDate,omitempty"`
	HasTranscript  bool    `json:"hasTranscript"`
	HasSummary     bool    `json:"hasSummary"`
	FileType       string  `json:"fileType"`
}

func toLectureDTO(l repository.Lecture) lectureDTO {
	dto := lectureDTO{
		ID:            l.ID,
		Title:         l.Title,
		Date:          l.Date.Format(dateLayout),
		Duration:      l.DurationSeconds,
		QuizScore:     l.QuizScore,
		HasTranscript: l.HasTranscript,
		HasSummary:    l.HasSummary,
		FileType:      string(l.SourceKind),
	}
	if l.NextReviewDate != nil {
		s := l.NextReviewDate.Format(dateLayout)
		dto.NextReviewDate = &s
	}
	return dto
}

func toLectureDTOs(list []repository.Lecture) []lectureDTO {
	out := make([]lectureDTO, 0, len(list))
	for _, l := range list {
		out = append(out, toLectureDTO(l))
	}
	return out
}

type segmentDTO struct {
	ID        string `json:"id"`
	Timestamp int    `json:"timestamp"`
	Text      string `json:"text"`
}

type summarySectionDTO struct {
	Heading string   `json:"heading"`
	Points  []string `json:"points"`
}

type quizQuestionDTO struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

type flashcardDTO struct {
	ID         string `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	NextReview string `json:"nextReview"`
	Difficulty int    `json:"difficulty"`
}

func toFlashcardDTO(f repository.Flashcard) flashcardDTO {
	return flashcardDTO{
		ID:         f.ID,
		Question:   f.Question,
		Answer:     f.Answer,
		NextReview: f.NextReview.Format(dateLayout),
		Difficulty: f.Difficulty,
	}
}

type lectureDetailDTO struct {
	Lecture    lectureDTO          `json:"lecture"`
	Transcript []segmentDTO        `json:"transcript"`
	Summary    []summarySectionDTO `json:"summary"`
	Notes      string              `json:"notes"`
	Quiz       []quizQuestionDTO   `json:"quiz"`
	Flashcards []flashcardDTO      `json:"flashcards"`
}

func toLectureDetailDTO(d *repository.LectureDetail) lectureDetailDTO {
	dto := lectureDetailDTO{
		Lecture:    toLectureDTO(d.Lecture),
		Transcript: make([]segmentDTO, 0, len(d.Transcript)),
		Summary:    make([]summarySectionDTO, 0, len(d.Summary)),
		Notes:      d.Notes,
		Quiz:       make([]quizQuestionDTO, 0, len(d.Quiz)),
		Flashcards: make([]flashcardDTO, 0, len(d.Flashcards)),
	}
	for _, seg := range d.Transcript {
		dto.Transcript = append(dto.Transcript, segmentDTO{ID: seg.ID, Timestamp: seg.TimestampSeconds, Text: seg.Text})
	}
	for _, sec := range d.Summary {
		dto.Summary = append(dto.Summary, summarySectionDTO{Heading: sec.Heading, Points: sec.Points})
	}
	for _, q := range d.Quiz {
		dto.Quiz = append(dto.Quiz, quizQuestionDTO{
			ID: q.ID, Question: q.Prompt, Options: q.Options,
			CorrectIndex: q.CorrectIndex, Explanation: q.Explanation,
		})
	}
	for _, f := range d.Flashcards {
		dto.Flashcards = append(dto.Flashcards, toFlashcardDTO(f))
	}
	return dto
}

type quizStateDTO struct {
	Index    int              `json:"index"`
	Count    int              `json:"count"`
	State    string           `json:"state"`
	Selected *int             `json:"selected,omitempty"`
	Question *quizQuestionDTO `json:"question,omitempty"`
	Result   *quizResultDTO   `json:"result,omitempty"`
}

type quizResultDTO struct {
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Tier       string `json:"tier"`
}

func toQuizStateDTO(s study.QuizSnapshot) quizStateDTO {
	dto := quizStateDTO{
		Index:    s.Index,
		Count:    s.Count,
		State:    string(s.State),
		Selected: s.Selected,
	}
	if s.Question != nil {
		q := *s.Question
		dto.Question = &quizQuestionDTO{
			ID: q.ID, Question: q.Prompt, Options: q.Options,
			CorrectIndex: q.CorrectIndex, Explanation: q.Explanation,
		}
	}
	if s.Result != nil {
		dto.Result = &quizResultDTO{
			Score:      s.Result.Score,
			Total:      s.Result.Total,
			Percentage: s.Result.Percentage,
			Tier:       string(s.Result.Tier),
		}
	}
	return dto
}

type cardStateDTO struct {
	Index int           `json:"index"`
	Count int           `json:"count"`
	State string        `json:"state"`
	Card  *flashcardDTO `json:"card,omitempty"`
}

func toCardStateDTO(s study.CardSnapshot) cardStateDTO {
	dto := cardStateDTO{Index: s.Index, Count: s.Count, State: string(s.State)}
	if s.Card != nil {
		card := toFlashcardDTO(*s.Card)
		dto.Card = &card
	}
	return dto
}

type spanDTO struct {
	Text    string `json:"text"`
	Token   bool   `json:"token"`
	Seconds int    `json:"seconds,omitempty"`
}

type chatMessageDTO struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp *string   `json:"timestamp,omitempty"`
	Spans     []spanDTO `json:"spans,omitempty"`
}

func toChatMessageDTO(m chat.Message) chatMessageDTO {
	dto := chatMessageDTO{ID: m.ID, Role: string(m.Role), Content: m.Content}
	if !m.SentAt.IsZero() {
		s := m.SentAt.Format(time.RFC3339)
		dto.Timestamp = &s
	}
	// Only assistant messages carry clickable timestamp tokens.
	if m.Role == chat.RoleAssistant {
		for _, span := range chat.ParseTimestamps(m.Content) {
			dto.Spans = append(dto.Spans, spanDTO{Text: span.Text, Token: span.Token, Seconds: span.Seconds})
		}
	}
	return dto
}

type chatStateDTO struct {
	Messages     []chatMessageDTO `json:"messages"`
	RevealBuffer string           `json:"revealBuffer"`
	InFlight     bool             `json:"inFlight"`
}

func toChatStateDTO(s study.ChatSnapshot) chatStateDTO {
	dto := chatStateDTO{
		Messages:     make([]chatMessageDTO, 0, len(s.Messages)),
		RevealBuffer: s.RevealBuffer,
		InFlight:     s.InFlight,
	}
	for _, m := range s.Messages {
		dto.Messages = append(dto.Messages, toChatMessageDTO(m))
	}
	return dto
}

type playbackStateDTO struct {
	Position         int      `json:"position"`
	Duration         int      `json:"duration"`
	ActiveSegmentIDs []string `json:"activeSegmentIds"`
}

func toPlaybackStateDTO(s study.PlaybackState) playbackStateDTO {
	ids := s.ActiveSegmentIDs
	if ids == nil {
		ids = []string{}
	}
	return playbackStateDTO{Position: s.Position, Duration: s.Duration, ActiveSegmentIDs: ids}
}
