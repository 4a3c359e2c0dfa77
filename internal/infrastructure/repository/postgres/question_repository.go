package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/opentutor/knowledge-service/internal/core/domain"
)

type QuestionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) Create(ctx context.Context, q *domain.GeneratedQuestions) error {
	typesJSON, err := json.Marshal(q.Types)
	if err != nil {
		return fmt.Errorf("marshal question types: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO generated_questions (id, document_id, question_types, content, assigned_to, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, q.ID, q.DocumentID, typesJSON, q.Content, q.AssignedTo, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert generated questions: %w", err)
	}
	return nil
}

func (r *QuestionRepository) ListByDocument(ctx context.Context, documentID string) ([]domain.GeneratedQuestions, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, document_id, question_types, content, assigned_to, created_at
FROM generated_questions
WHERE document_id = $1
ORDER BY created_at DESC
`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list generated questions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.GeneratedQuestions, 0)
	for rows.Next() {
		var q domain.GeneratedQuestions
		var typesRaw []byte
		if err := rows.Scan(&q.ID, &q.DocumentID, &typesRaw, &q.Content, &q.AssignedTo, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan generated questions: %w", err)
		}
		if err := json.Unmarshal(typesRaw, &q.Types); err != nil {
			return nil, fmt.Errorf("unmarshal question types: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate generated questions: %w", err)
	}
	return out, nil
}
