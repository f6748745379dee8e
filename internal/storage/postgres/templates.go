package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/storage"
)

// TemplateRepository persists generated quest templates as jsonb documents.
type TemplateRepository struct {
	db *pgxpool.Pool
}

// NewTemplateRepository creates a TemplateRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewTemplateRepository(db *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// RegisterQuest inserts a quest template.
//
// Postcondition: Returns storage.ErrDuplicateQuest if the id already exists;
// the original row is kept.
func (r *TemplateRepository) RegisterQuest(ctx context.Context, q *engine.Quest) error {
	doc, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encoding quest %s: %w", q.ID, err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO quest_templates (id, doc) VALUES ($1, $2)`,
		q.ID, doc,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", storage.ErrDuplicateQuest, q.ID)
		}
		return fmt.Errorf("inserting quest template: %w", err)
	}
	return nil
}

// Quest retrieves a quest template by id.
//
// Postcondition: Returns the quest or storage.ErrQuestNotFound.
func (r *TemplateRepository) Quest(ctx context.Context, id string) (*engine.Quest, error) {
	var doc []byte
	err := r.db.QueryRow(ctx,
		`SELECT doc FROM quest_templates WHERE id = $1`,
		id,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", storage.ErrQuestNotFound, id)
		}
		return nil, fmt.Errorf("querying quest template: %w", err)
	}

	var q engine.Quest
	if err := json.Unmarshal(doc, &q); err != nil {
		return nil, fmt.Errorf("decoding quest %s: %w", id, err)
	}
	return &q, nil
}

// QuestIDs returns every registered quest id in lexical order.
func (r *TemplateRepository) QuestIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM quest_templates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying quest ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning quest id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quest ids: %w", err)
	}
	return ids, nil
}

// RemoveQuest deletes a quest template. Removing an absent id is a no-op.
func (r *TemplateRepository) RemoveQuest(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM quest_templates WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting quest template: %w", err)
	}
	return nil
}
