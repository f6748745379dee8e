package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/storage"
)

// LocaleRepository persists per-locale quest text and mail templates.
type LocaleRepository struct {
	db *pgxpool.Pool
}

// NewLocaleRepository creates a LocaleRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewLocaleRepository(db *pgxpool.Pool) *LocaleRepository {
	return &LocaleRepository{db: db}
}

// Locales returns every known locale name in lexical order.
func (r *LocaleRepository) Locales(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM locales ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying locales: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning locale: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating locales: %w", err)
	}
	return names, nil
}

// AddLocale registers a locale name. Adding an existing name is a no-op.
func (r *LocaleRepository) AddLocale(ctx context.Context, name string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO locales (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
		name,
	)
	if err != nil {
		return fmt.Errorf("inserting locale: %w", err)
	}
	return nil
}

// RegisterQuestLocale writes one quest's text payload for a locale.
//
// Postcondition: Returns storage.ErrDuplicateLocale if the quest already has
// a payload for that locale; the original row is kept.
func (r *LocaleRepository) RegisterQuestLocale(ctx context.Context, locale, questID string, payload engine.QuestLocale) error {
	doc, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding locale payload for quest %s: %w", questID, err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO quest_locales (locale, quest_id, doc) VALUES ($1, $2, $3)`,
		locale, questID, doc,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: quest %s in %s", storage.ErrDuplicateLocale, questID, locale)
		}
		return fmt.Errorf("inserting quest locale: %w", err)
	}
	return nil
}

// RegisterMail writes one mail template for a locale.
//
// Postcondition: Returns storage.ErrDuplicateLocale if the key already
// exists; the original row is kept.
func (r *LocaleRepository) RegisterMail(ctx context.Context, locale, key, value string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO mail_locales (locale, key, value) VALUES ($1, $2, $3)`,
		locale, key, value,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: mail %s in %s", storage.ErrDuplicateLocale, key, locale)
		}
		return fmt.Errorf("inserting mail template: %w", err)
	}
	return nil
}
