package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/storage"
)

// StartupHandler applies the configured session-start behaviors around the
// load pass: removing built-in quest templates before it and wiping stale
// custom-quest progress from player saves after it.
type StartupHandler struct {
	templates      storage.TemplateStore
	profiles       storage.ProfileStore
	disableBuiltin bool
	wipeState      bool
	logger         *zap.Logger
}

// NewStartupHandler creates a handler with the given at-start toggles.
//
// Precondition: templates, profiles and logger must be non-nil.
func NewStartupHandler(templates storage.TemplateStore, profiles storage.ProfileStore, disableBuiltin, wipeState bool, logger *zap.Logger) *StartupHandler {
	return &StartupHandler{
		templates:      templates,
		profiles:       profiles,
		disableBuiltin: disableBuiltin,
		wipeState:      wipeState,
		logger:         logger,
	}
}

// BeforeLoad runs ahead of the load pass. With the disable-builtin toggle
// set it removes every template already present, so only quests registered
// by the coming pass remain.
func (h *StartupHandler) BeforeLoad(ctx context.Context) error {
	if !h.disableBuiltin {
		return nil
	}

	ids, err := h.templates.QuestIDs(ctx)
	if err != nil {
		return fmt.Errorf("listing quest templates: %w", err)
	}
	for _, id := range ids {
		if err := h.templates.RemoveQuest(ctx, id); err != nil {
			return fmt.Errorf("removing quest template %s: %w", id, err)
		}
	}
	if len(ids) > 0 {
		h.logger.Info("disabled built-in quests", zap.Int("count", len(ids)))
	}
	return nil
}

// AfterLoad runs once the load pass registered its quests. With the wipe
// toggle set it erases every profile's state for the given quest ids:
// quest entries, condition counters, dropped items and generated mail.
func (h *StartupHandler) AfterLoad(ctx context.Context, questIDs []string) error {
	if !h.wipeState || len(questIDs) == 0 {
		return nil
	}

	profileIDs, err := h.profiles.ProfileIDs(ctx)
	if err != nil {
		return fmt.Errorf("listing profiles: %w", err)
	}

	for _, pid := range profileIDs {
		p, err := h.profiles.Profile(ctx, pid)
		if err != nil {
			return fmt.Errorf("loading profile %s: %w", pid, err)
		}

		wiped := 0
		for _, qid := range questIDs {
			if wipeQuestState(p, qid) {
				wiped++
			}
		}
		if wiped == 0 {
			continue
		}

		if err := h.profiles.SaveProfile(ctx, p); err != nil {
			return fmt.Errorf("saving profile %s: %w", pid, err)
		}
		h.logger.Info("wiped custom quest state",
			zap.String("profile_id", pid), zap.Int("quests", wiped))
	}
	return nil
}

// wipeQuestState removes every trace of one quest from a profile. Reports
// whether anything was removed.
func wipeQuestState(p *engine.Profile, questID string) bool {
	changed := false

	kept := p.Quests[:0]
	for _, entry := range p.Quests {
		if entry.QID == questID {
			changed = true
			continue
		}
		kept = append(kept, entry)
	}
	p.Quests = kept

	for id, counter := range p.TaskConditionCounters {
		if counter.SourceID == questID {
			delete(p.TaskConditionCounters, id)
			changed = true
		}
	}

	items := p.DroppedItems[:0]
	for _, item := range p.DroppedItems {
		if item.QuestID == questID {
			changed = true
			continue
		}
		items = append(items, item)
	}
	p.DroppedItems = items

	mailTemplates := map[string]bool{
		questID + "_description":          true,
		questID + "_success_message_text": true,
	}
	for key, dialogue := range p.Dialogues {
		msgs := dialogue.Messages[:0]
		for _, m := range dialogue.Messages {
			if mailTemplates[m.TemplateID] {
				changed = true
				continue
			}
			msgs = append(msgs, m)
		}
		dialogue.Messages = msgs
		p.Dialogues[key] = dialogue
	}

	return changed
}
