package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrationStatements = []string{
	`DO $$ BEGIN CREATE TYPE source_kind AS ENUM ('audio', 'document'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`CREATE TABLE IF NOT EXISTS lectures (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		lecture_date DATE NOT NULL,
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		quiz_score INTEGER,
		next_review_date DATE,
		has_transcript BOOLEAN NOT NULL DEFAULT FALSE,
		has_summary BOOLEAN NOT NULL DEFAULT FALSE,
		source_kind source_kind NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS transcript_segments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		lecture_id UUID NOT NULL REFERENCES lectures(id) ON DELETE CASCADE,
		timestamp_seconds INTEGER NOT NULL,
		content TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transcript_segments_lecture ON transcript_segments (lecture_id, timestamp_seconds)`,
	`CREATE TABLE IF NOT EXISTS summary_sections (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		lecture_id UUID NOT NULL REFERENCES lectures(id) ON DELETE CASCADE,
		section_index INTEGER NOT NULL,
		heading TEXT NOT NULL,
		points TEXT[] NOT NULL DEFAULT '{}',
		UNIQUE (lecture_id, section_index)
	)`,
	`CREATE TABLE IF NOT EXISTS quiz_questions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		lecture_id UUID NOT NULL REFERENCES lectures(id) ON DELETE CASCADE,
		question_index INTEGER NOT NULL,
		prompt TEXT NOT NULL,
		options TEXT[] NOT NULL,
		correct_index INTEGER NOT NULL,
		explanation TEXT NOT NULL DEFAULT '',
		UNIQUE (lecture_id, question_index)
	)`,
	`CREATE TABLE IF NOT EXISTS flashcards (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		lecture_id UUID NOT NULL REFERENCES lectures(id) ON DELETE CASCADE,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		next_review DATE NOT NULL,
		difficulty INTEGER NOT NULL DEFAULT 3,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_flashcards_lecture ON flashcards (lecture_id, next_review)`,
	`CREATE TABLE IF NOT EXISTS quiz_attempts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		lecture_id UUID NOT NULL REFERENCES lectures(id) ON DELETE CASCADE,
		score INTEGER NOT NULL,
		total INTEGER NOT NULL,
		taken_at TIMESTAMPTZ NOT NULL
	)`,
}

func RunMigration(ctx context.Context, pool *pgxpool.Pool) error {
	for _, s := range migrationStatements {
		stmt := strings.TrimSpace(s)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
