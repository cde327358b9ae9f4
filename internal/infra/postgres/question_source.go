package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-bot/internal/domain"
)

// QuestionSource reads the question bank from the questions table, seeded by
// the load subcommand. Used instead of the file source when Postgres is
// configured.
type QuestionSource struct {
	pool *pgxpool.Pool
}

func NewQuestionSource(pool *pgxpool.Pool) *QuestionSource {
	return &QuestionSource{pool: pool}
}

// LoadPairs returns all pairs in seeding order.
func (s *QuestionSource) LoadPairs(ctx context.Context) ([]domain.Pair, error) {
	rows, err := s.pool.Query(ctx, `SELECT question, answer FROM questions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var pairs []domain.Pair
	for rows.Next() {
		var p domain.Pair
		if err := rows.Scan(&p.Question, &p.Answer); err != nil {
			return nil, fmt.Errorf("scan question row: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate question rows: %w", err)
	}
	return pairs, nil
}
