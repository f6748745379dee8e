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

// ProfileRepository persists player save records as jsonb documents.
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a ProfileRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Profile retrieves a save record by id.
//
// Postcondition: Returns the profile or storage.ErrProfileNotFound.
func (r *ProfileRepository) Profile(ctx context.Context, id string) (*engine.Profile, error) {
	var doc []byte
	err := r.db.QueryRow(ctx,
		`SELECT doc FROM profiles WHERE id = $1`,
		id,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", storage.ErrProfileNotFound, id)
		}
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	var p engine.Profile
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("decoding profile %s: %w", id, err)
	}
	p.ID = id
	return &p, nil
}

// ProfileIDs returns every stored profile id in lexical order.
func (r *ProfileRepository) ProfileIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying profile ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning profile id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profile ids: %w", err)
	}
	return ids, nil
}

// SaveProfile writes a save record, replacing any previous one.
func (r *ProfileRepository) SaveProfile(ctx context.Context, p *engine.Profile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile %s: %w", p.ID, err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO profiles (id, doc) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc`,
		p.ID, doc,
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}
