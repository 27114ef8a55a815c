package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/Priyanshu9798/lecture-zen-38/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type seedLecture struct {
	title           string
	date            string
	durationSeconds int
	quizScore       *int
	nextReviewDate  *string
	sourceKind      repository.SourceKind
	transcript      []seedSegment
	summary         []seedSection
	quiz            []seedQuestion
	flashcards      []seedCard
}

type seedSegment struct {
	timestamp int
	text      string
}

type seedSection struct {
	heading string
	points  []string
}

type seedQuestion struct {
	prompt       string
	options      []string
	correctIndex int
	explanation  string
}

type seedCard struct {
	question   string
	answer     string
	nextReview string
	difficulty int
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

var demoLectures = []seedLecture{
	{
		title:           "Introduction to Machine Learning",
		date:            "2026-02-20",
		durationSeconds: 3600,
		quizScore:       intPtr(85),
		nextReviewDate:  strPtr("2026-02-27"),
		sourceKind:      repository.SourceKindAudio,
		transcript: []seedSegment{
			{0, "Welcome to today's lecture on machine learning. We'll be covering the fundamentals of supervised and unsupervised learning."},
			{30, "Machine learning is a subset of artificial intelligence that enables systems to learn and improve from experience without being explicitly programmed."},
			{65, "There are three main types: supervised learning, unsupervised learning, and reinforcement learning."},
			{120, "In supervised learning, we train models using labeled data. The algorithm learns to map inputs to known outputs."},
			{180, "Common supervised learning algorithms include linear regression, decision trees, and support vector machines."},
			{240, "Unsupervised learning works with unlabeled data. The algorithm tries to find hidden patterns or structures."},
			{300, "Clustering and dimensionality reduction are key unsupervised learning techniques."},
			{360, "Let's now discuss the bias-variance tradeoff, which is fundamental to understanding model performance."},
		},
		summary: []seedSection{
			{"Overview of Machine Learning", []string{
				"Machine learning is a subset of AI focused on learning from data",
				"Three main paradigms: supervised, unsupervised, and reinforcement learning",
				"Applications span healthcare, finance, NLP, and computer vision",
			}},
			{"Supervised Learning", []string{
				"Uses labeled training data to learn input-output mappings",
				"Common algorithms: linear regression, decision trees, SVMs, neural networks",
				"Evaluated using metrics like accuracy, precision, recall, and F1 score",
			}},
			{"Unsupervised Learning", []string{
				"Works with unlabeled data to discover hidden patterns",
				"Key techniques: K-means clustering, hierarchical clustering, PCA",
				"Used for customer segmentation, anomaly detection, and feature extraction",
			}},
			{"Bias-Variance Tradeoff", []string{
				"High bias leads to underfitting — model too simple",
				"High variance leads to overfitting — model too complex",
				"Goal is to find the sweet spot that minimizes total error",
			}},
		},
		quiz: []seedQuestion{
			{"Which type of learning uses labeled data?",
				[]string{"Unsupervised Learning", "Supervised Learning", "Reinforcement Learning", "Transfer Learning"}, 1,
				"Supervised learning uses labeled training data where both inputs and desired outputs are provided to the algorithm."},
			{"What is overfitting a result of?",
				[]string{"High bias", "High variance", "Low variance", "Low complexity"}, 1,
				"Overfitting occurs when a model has high variance — it fits the training data too closely and fails to generalize."},
			{"Which technique is used in unsupervised learning?",
				[]string{"Linear Regression", "Decision Trees", "K-means Clustering", "Logistic Regression"}, 2,
				"K-means clustering is an unsupervised learning technique that groups data points into K clusters based on similarity."},
			{"What does PCA stand for?",
				[]string{"Primary Component Adjustment", "Principal Component Analysis", "Partial Cluster Analysis", "Predictive Classification Algorithm"}, 1,
				"PCA (Principal Component Analysis) is a dimensionality reduction technique used in unsupervised learning."},
			{"Which metric is NOT commonly used for classification?",
				[]string{"Accuracy", "Mean Squared Error", "Precision", "Recall"}, 1,
				"Mean Squared Error is primarily used for regression tasks, not classification. Classification uses accuracy, precision, recall, and F1."},
		},
		flashcards: []seedCard{
			{"What is supervised learning?", "A type of machine learning where the model is trained on labeled data with known inputs and outputs.", "2026-02-27", 3},
			{"Name three supervised learning algorithms.", "Linear regression, decision trees, and support vector machines (SVMs).", "2026-02-28", 2},
			{"What is the bias-variance tradeoff?", "The balance between model simplicity (bias) and complexity (variance). High bias = underfitting, high variance = overfitting.", "2026-03-01", 4},
			{"What is K-means clustering?", "An unsupervised learning algorithm that partitions data into K clusters by minimizing within-cluster variance.", "2026-02-26", 3},
			{"What is PCA used for?", "Principal Component Analysis reduces dimensionality by projecting data onto the directions of maximum variance.", "2026-03-02", 4},
		},
	},
	{
		title:           "Neural Networks & Deep Learning",
		date:            "2026-02-18",
		durationSeconds: 2700,
		quizScore:       intPtr(72),
		nextReviewDate:  strPtr("2026-02-25"),
		sourceKind:      repository.SourceKindAudio,
	},
	{
		title:           "Natural Language Processing Fundamentals",
		date:            "2026-02-15",
		durationSeconds: 4200,
		sourceKind:      repository.SourceKindDocument,
	},
}

// SeedDemoData inserts the demo lectures when the catalog is empty.
func SeedDemoData(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM lectures`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		slog.Info("demo seed skipped, catalog is not empty", "lectures", count)
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, l := range demoLectures {
		date, err := time.Parse("2006-01-02", l.date)
		if err != nil {
			return err
		}
		var nextReview *time.Time
		if l.nextReviewDate != nil {
			d, err := time.Parse("2006-01-02", *l.nextReviewDate)
			if err != nil {
				return err
			}
			nextReview = &d
		}

		var lectureID string
		err = tx.QueryRow(ctx,
			`INSERT INTO lectures (title, lecture_date, duration_seconds, quiz_score, next_review_date, has_transcript, has_summary, source_kind)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING id`,
			l.title, date, l.durationSeconds, l.quizScore, nextReview,
			len(l.transcript) > 0, len(l.summary) > 0, l.sourceKind,
		).Scan(&lectureID)
		if err != nil {
			return err
		}

		for _, seg := range l.transcript {
			if _, err := tx.Exec(ctx,
				`INSERT INTO transcript_segments (lecture_id, timestamp_seconds, content) VALUES ($1, $2, $3)`,
				lectureID, seg.timestamp, seg.text); err != nil {
				return err
			}
		}
		for i, sec := range l.summary {
			if _, err := tx.Exec(ctx,
				`INSERT INTO summary_sections (lecture_id, section_index, heading, points) VALUES ($1, $2, $3, $4)`,
				lectureID, i, sec.heading, sec.points); err != nil {
				return err
			}
		}
		for i, q := range l.quiz {
			if _, err := tx.Exec(ctx,
				`INSERT INTO quiz_questions (lecture_id, question_index, prompt, options, correct_index, explanation) VALUES ($1, $2, $3, $4, $5, $6)`,
				lectureID, i, q.prompt, q.options, q.correctIndex, q.explanation); err != nil {
				return err
			}
		}
		for _, card := range l.flashcards {
			due, err := time.Parse("2006-01-02", card.nextReview)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO flashcards (lecture_id, question, answer, next_review, difficulty) VALUES ($1, $2, $3, $4, $5)`,
				lectureID, card.question, card.answer, due, card.difficulty); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	slog.Info("demo seed inserted", "lectures", len(demoLectures))
	return nil
}
