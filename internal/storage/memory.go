package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/questforge/questforge/internal/engine"
)

// MemoryTemplateStore is a map-backed TemplateStore.
type MemoryTemplateStore struct {
	quests map[string]*engine.Quest
}

// NewMemoryTemplateStore creates an empty template store.
func NewMemoryTemplateStore() *MemoryTemplateStore {
	return &MemoryTemplateStore{quests: make(map[string]*engine.Quest)}
}

func (s *MemoryTemplateStore) RegisterQuest(_ context.Context, q *engine.Quest) error {
	if _, ok := s.quests[q.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateQuest, q.ID)
	}
	s.quests[q.ID] = q
	return nil
}

func (s *MemoryTemplateStore) Quest(_ context.Context, id string) (*engine.Quest, error) {
	q, ok := s.quests[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQuestNotFound, id)
	}
	return q, nil
}

func (s *MemoryTemplateStore) QuestIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(s.quests))
	for id := range s.quests {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryTemplateStore) RemoveQuest(_ context.Context, id string) error {
	delete(s.quests, id)
	return nil
}

// localeTable is one locale's quest and mail tables.
type localeTable struct {
	quests map[string]engine.QuestLocale
	mail   map[string]string
}

// MemoryLocaleStore is a map-backed LocaleStore over a fixed locale set.
type MemoryLocaleStore struct {
	locales []string
	tables  map[string]*localeTable
}

// NewMemoryLocaleStore creates a locale store knowing the given locales.
func NewMemoryLocaleStore(locales []string) *MemoryLocaleStore {
	tables := make(map[string]*localeTable, len(locales))
	for _, l := range locales {
		tables[l] = &localeTable{
			quests: make(map[string]engine.QuestLocale),
			mail:   make(map[string]string),
		}
	}
	return &MemoryLocaleStore{locales: append([]string(nil), locales...), tables: tables}
}

func (s *MemoryLocaleStore) Locales(_ context.Context) ([]string, error) {
	return append([]string(nil), s.locales...), nil
}

func (s *MemoryLocaleStore) RegisterQuestLocale(_ context.Context, locale, questID string, payload engine.QuestLocale) error {
	table, err := s.table(locale)
	if err != nil {
		return err
	}
	if _, ok := table.quests[questID]; ok {
		return fmt.Errorf("%w: quest %s in %s", ErrDuplicateLocale, questID, locale)
	}
	table.quests[questID] = payload
	return nil
}

func (s *MemoryLocaleStore) RegisterMail(_ context.Context, locale, key, value string) error {
	table, err := s.table(locale)
	if err != nil {
		return err
	}
	if _, ok := table.mail[key]; ok {
		return fmt.Errorf("%w: mail %s in %s", ErrDuplicateLocale, key, locale)
	}
	table.mail[key] = value
	return nil
}

// QuestLocale returns the registered payload for a quest, for assertions.
func (s *MemoryLocaleStore) QuestLocale(locale, questID string) (engine.QuestLocale, bool) {
	table, ok := s.tables[locale]
	if !ok {
		return engine.QuestLocale{}, false
	}
	payload, ok := table.quests[questID]
	return payload, ok
}

// Mail returns the registered mail value for a key, for assertions.
func (s *MemoryLocaleStore) Mail(locale, key string) (string, bool) {
	table, ok := s.tables[locale]
	if !ok {
		return "", false
	}
	v, ok := table.mail[key]
	return v, ok
}

// Dump returns copies of a locale's full quest and mail tables, for export.
func (s *MemoryLocaleStore) Dump(locale string) (map[string]engine.QuestLocale, map[string]string, bool) {
	table, ok := s.tables[locale]
	if !ok {
		return nil, nil, false
	}
	quests := make(map[string]engine.QuestLocale, len(table.quests))
	for id, payload := range table.quests {
		quests[id] = payload
	}
	mail := make(map[string]string, len(table.mail))
	for k, v := range table.mail {
		mail[k] = v
	}
	return quests, mail, true
}

func (s *MemoryLocaleStore) table(locale string) (*localeTable, error) {
	table, ok := s.tables[locale]
	if !ok {
		return nil, fmt.Errorf("unknown locale %q", locale)
	}
	return table, nil
}

// MemoryProfileStore is a map-backed ProfileStore.
type MemoryProfileStore struct {
	profiles map[string]*engine.Profile
}

// NewMemoryProfileStore creates an empty profile store.
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[string]*engine.Profile)}
}

func (s *MemoryProfileStore) Profile(_ context.Context, id string) (*engine.Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	return p, nil
}

func (s *MemoryProfileStore) ProfileIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryProfileStore) SaveProfile(_ context.Context, p *engine.Profile) error {
	s.profiles[p.ID] = p
	return nil
}
