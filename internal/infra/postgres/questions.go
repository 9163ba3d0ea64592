package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

const schema = `
	CREATE TABLE IF NOT EXISTS questions (
		id       SERIAL PRIMARY KEY,
		question TEXT   NOT NULL,
		answers  TEXT[] NOT NULL DEFAULT '{}',
		correct  TEXT   NOT NULL
	)
`

// QuestionStore keeps the question bank in the questions table.
// It implements repository.QuestionSource.
type QuestionStore struct {
	db *pgxpool.Pool
	tx *Transactor
}

// NewQuestionStore creates a new QuestionStore.
func NewQuestionStore(db *pgxpool.Pool) *QuestionStore {
	return &QuestionStore{
		db: db,
		tx: NewTransactor(db),
	}
}

// EnsureSchema creates the questions table when it does not exist.
func (s *QuestionStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create questions table: %w", err)
	}
	return nil
}

// Fetch returns all questions ordered by id.
func (s *QuestionStore) Fetch(ctx context.Context) ([]entities.Question, error) {
	rows, err := s.db.Query(ctx, `SELECT question, answers, correct FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}

	questions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.Question, error) {
		var q entities.Question
		err := row.Scan(&q.Question, &q.Answers, &q.Correct)
		if q.Answers == nil {
			q.Answers = []string{}
		}
		return q, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan questions: %w", err)
	}

	return questions, nil
}

// ReplaceAll swaps the whole bank within one transaction.
func (s *QuestionStore) ReplaceAll(ctx context.Context, questions []entities.Question) error {
	return s.tx.WithinTx(ctx, "replace questions", func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE questions RESTART IDENTITY`); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}

		batch := &pgx.Batch{}
		for _, q := range questions {
			batch.Queue(
				`INSERT INTO questions (question, answers, correct) VALUES ($1, $2, $3)`,
				q.Question, q.Answers, q.Correct,
			)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
		return nil
	})
}
