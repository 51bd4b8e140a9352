package question

import (
	"context"
	"database/sql"
	"fmt"
)

// Store loads the questions of a test together with their answer keys.
type Store interface {
	ListByTest(ctx context.Context, testID int64) ([]Record, error)
}

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ListByTest returns the questions of testID ordered by seq. A test with no
// questions is reported as ErrTestNotFound.
func (s *PostgresStore) ListByTest(ctx context.Context, testID int64) ([]Record, error) {
	if testID <= 0 {
		return nil, ErrInvalidInput
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT q.id, q.test_id, q.seq, q.mechanic, q.body, k.answer_key
		FROM test_questions q
		LEFT JOIN answer_keys k ON k.question_id = q.id
		WHERE q.test_id = $1
		ORDER BY q.seq ASC, q.id ASC
	`, testID)
	if err != nil {
		return nil, fmt.Errorf("query test questions: %w", err)
	}
	defer rows.Close()

	items := make([]Record, 0)
	for rows.Next() {
		var (
			rec       Record
			body, key []byte
		)
		if err := rows.Scan(&rec.ID, &rec.TestID, &rec.Seq, &rec.Mechanic, &body, &key); err != nil {
			return nil, fmt.Errorf("scan test question: %w", err)
		}
		rec.Body = body
		rec.AnswerKey = key
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate test questions: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrTestNotFound
	}
	return items, nil
}
