package repository

import (
	"context"
	"errors"
	"math"

	"github.com/Priyanshu9798/lecture-zen-38/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.Repository {
	return &PostgresRepository{pool: pool}
}

const lectureColumns = `id, title, lecture_date, duration_seconds, quiz_score, next_review_date, has_transcript, has_summary, source_kind, created_at`

func scanLecture(row pgx.Row) (*repository.Lecture, error) {
	var l repository.Lecture
	err := row.Scan(&l.ID, &l.Title, &l.Date, &l.DurationSeconds, &l.QuizScore,
		&l.NextReviewDate, &l.HasTranscript, &l.HasSummary, &l.SourceKind, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PostgresRepository) ListLectures(ctx context.Context) ([]repository.Lecture, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+lectureColumns+` FROM lectures ORDER BY lecture_date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLectures(rows)
}

func (r *PostgresRepository) SearchLectures(ctx context.Context, query string) ([]repository.Lecture, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+lectureColumns+` FROM lectures
		 WHERE title ILIKE '%' || $1 || '%'
		 ORDER BY lecture_date DESC, created_at DESC`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLectures(rows)
}

func collectLectures(rows pgx.Rows) ([]repository.Lecture, error) {
	var list []repository.Lecture
	for rows.Next() {
		l, err := scanLecture(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *l)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) GetLectureDetail(ctx context.Context, lectureID string) (*repository.LectureDetail, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+lectureColumns+`, notes FROM lectures WHERE id = $1`, lectureID)
	var l repository.Lecture
	var notes string
	err := row.Scan(&l.ID, &l.Title, &l.Date, &l.DurationSeconds, &l.QuizScore,
		&l.NextReviewDate, &l.HasTranscript, &l.HasSummary, &l.SourceKind, &l.CreatedAt, &notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	detail := &repository.LectureDetail{Lecture: l, Notes: notes}
	if detail.Transcript, err = r.listSegments(ctx, lectureID); err != nil {
		return nil, err
	}
	if detail.Summary, err = r.listSummarySections(ctx, lectureID); err != nil {
		return nil, err
	}
	if detail.Quiz, err = r.listQuizQuestions(ctx, lectureID); err != nil {
		return nil, err
	}
	if detail.Flashcards, err = r.listFlashcards(ctx, lectureID); err != nil {
		return nil, err
	}
	return detail, nil
}

func (r *PostgresRepository) listSegments(ctx context.Context, lectureID string) ([]repository.TranscriptSegment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, lecture_id, timestamp_seconds, content
		 FROM transcript_segments WHERE lecture_id = $1 ORDER BY timestamp_seconds ASC`, lectureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []repository.TranscriptSegment
	for rows.Next() {
		var seg repository.TranscriptSegment
		if err := rows.Scan(&seg.ID, &seg.LectureID, &seg.TimestampSeconds, &seg.Text); err != nil {
			return nil, err
		}
		list = append(list, seg)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) listSummarySections(ctx context.Context, lectureID string) ([]repository.SummarySection, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT heading, points FROM summary_sections
		 WHERE lecture_id = $1 ORDER BY section_index ASC`, lectureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []repository.SummarySection
	for rows.Next() {
		var s repository.SummarySection
		if err := rows.Scan(&s.Heading, &s.Points); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) listQuizQuestions(ctx context.Context, lectureID string) ([]repository.QuizQuestion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, prompt, options, correct_index, explanation
		 FROM quiz_questions WHERE lecture_id = $1 ORDER BY question_index ASC`, lectureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []repository.QuizQuestion
	for rows.Next() {
		var q repository.QuizQuestion
		if err := rows.Scan(&q.ID, &q.Prompt, &q.Options, &q.CorrectIndex, &q.Explanation); err != nil {
			return nil, err
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) listFlashcards(ctx context.Context, lectureID string) ([]repository.Flashcard, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, lecture_id, question, answer, next_review, difficulty
		 FROM flashcards WHERE lecture_id = $1 ORDER BY created_at ASC, id ASC`, lectureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []repository.Flashcard
	for rows.Next() {
		var f repository.Flashcard
		if err := rows.Scan(&f.ID, &f.LectureID, &f.Question, &f.Answer, &f.NextReview, &f.Difficulty); err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) CreateLecture(ctx context.Context, input repository.CreateLectureInput) (*repository.Lecture, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO lectures (title, lecture_date, duration_seconds, source_kind)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+lectureColumns,
		input.Title, input.Date, input.DurationSeconds, input.SourceKind)
	return scanLecture(row)
}

func (r *PostgresRepository) SaveQuizAttempt(ctx context.Context, input repository.SaveQuizAttemptInput) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx,
		`INSERT INTO quiz_attempts (lecture_id, score, total, taken_at) VALUES ($1, $2, $3, $4)`,
		input.LectureID, input.Score, input.Total, input.TakenAt); err != nil {
		return err
	}
	if input.Total > 0 {
		pct := int(math.Round(100 * float64(input.Score) / float64(input.Total)))
		if _, err := tx.Exec(ctx,
			`UPDATE lectures SET quiz_score = $2 WHERE id = $1`,
			input.LectureID, pct); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepository) UpdateFlashcardReview(ctx context.Context, input repository.UpdateFlashcardReviewInput) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx,
		`UPDATE flashcards SET difficulty = $2, next_review = $3 WHERE id = $1`,
		input.FlashcardID, input.Difficulty, input.NextReview); err != nil {
		return err
	}
	// The lecture's review date tracks the earliest due card in its deck.
	if _, err := tx.Exec(ctx,
		`UPDATE lectures SET next_review_date =
			(SELECT MIN(next_review) FROM flashcards WHERE lecture_id = $1)
		 WHERE id = $1`,
		input.LectureID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
