// Package storage defines the repository interfaces for the host's quest
// template, locale and player profile tables, plus in-memory implementations
// used by tests and the offline compiler. Components receive these via
// constructor injection; nothing reads the tables through ambient state.
package storage

import (
	"context"
	"errors"

	"github.com/questforge/questforge/internal/engine"
)

var (
	// ErrQuestNotFound is returned when a quest template lookup misses.
	ErrQuestNotFound = errors.New("quest template not found")
	// ErrDuplicateQuest is returned when registering an already-registered
	// quest id. The original entry is kept.
	ErrDuplicateQuest = errors.New("quest already registered")
	// ErrDuplicateLocale is returned when registering quest locales or mail
	// keys that already exist. The original entry is kept.
	ErrDuplicateLocale = errors.New("locale entry already registered")
	// ErrProfileNotFound is returned when a profile lookup misses.
	ErrProfileNotFound = errors.New("profile not found")
)

// TemplateStore is the host's quest template table.
type TemplateStore interface {
	// RegisterQuest writes a quest template. Returns ErrDuplicateQuest if
	// the id is already present.
	RegisterQuest(ctx context.Context, q *engine.Quest) error
	// Quest returns the template for id, or ErrQuestNotFound.
	Quest(ctx context.Context, id string) (*engine.Quest, error)
	// QuestIDs returns every registered quest id.
	QuestIDs(ctx context.Context) ([]string, error)
	// RemoveQuest deletes a template. Removing an absent id is a no-op.
	RemoveQuest(ctx context.Context, id string) error
}

// LocaleStore is the host's per-locale text table.
type LocaleStore interface {
	// Locales returns every known locale name.
	Locales(ctx context.Context) ([]string, error)
	// RegisterQuestLocale writes one quest's text payload for a locale.
	// Returns ErrDuplicateLocale if the quest already has one.
	RegisterQuestLocale(ctx context.Context, locale, questID string, payload engine.QuestLocale) error
	// RegisterMail writes one mail template for a locale. Returns
	// ErrDuplicateLocale if the key already exists.
	RegisterMail(ctx context.Context, locale, key, value string) error
}

// ProfileStore is the host's player save table.
type ProfileStore interface {
	// Profile returns the save record for id, or ErrProfileNotFound.
	Profile(ctx context.Context, id string) (*engine.Profile, error)
	// ProfileIDs returns every stored profile id.
	ProfileIDs(ctx context.Context) ([]string, error)
	// SaveProfile writes a save record, replacing any previous one.
	SaveProfile(ctx context.Context, p *engine.Profile) error
}
