// Package reconcile rewrites player save records at session start so that
// progress made on repeated-quest chain links collapses back onto the
// canonical quest id, and applies the configured at-start cleanups.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/quest"
	"github.com/questforge/questforge/internal/storage"
)

// Stats counts the mutations one reconciliation pass applied.
type Stats struct {
	MigratedCounters int
	ChangedStatuses  int
	RemovedCounters  int
	RemovedQuests    int
}

// Reconciler collapses repeated-quest state in player profiles. It must run
// before any quest-status evaluation for the session.
type Reconciler struct {
	templates storage.TemplateStore
	logger    *zap.Logger
}

// NewReconciler creates a reconciler reading condition mappings from the
// given template store.
//
// Precondition: templates and logger must be non-nil.
func NewReconciler(templates storage.TemplateStore, logger *zap.Logger) *Reconciler {
	return &Reconciler{templates: templates, logger: logger}
}

// Run reconciles one profile in place. Running it again immediately is a
// no-op: after a pass no repeated-variant ids remain in the profile.
func (r *Reconciler) Run(ctx context.Context, p *engine.Profile) (Stats, error) {
	var stats Stats

	if p.TaskConditionCounters == nil {
		p.TaskConditionCounters = make(map[string]engine.TaskConditionCounter)
	}

	// Completed chain members reset the canonical progress baseline before
	// any in-flight member is collapsed onto it.
	for _, entry := range p.Quests {
		canonicalID, ok := quest.CanonicalID(entry.QID)
		if !ok || entry.Status != engine.StatusSuccess {
			continue
		}
		for id, counter := range p.TaskConditionCounters {
			if counter.SourceID == canonicalID {
				counter.Value = 0
				p.TaskConditionCounters[id] = counter
			}
		}
	}

	// In-flight members migrate their counters and status onto the
	// canonical id.
	for _, entry := range p.Quests {
		canonicalID, ok := quest.CanonicalID(entry.QID)
		if !ok || !inFlight(entry.Status) {
			continue
		}

		mapping, err := r.conditionIDMapping(ctx, canonicalID, entry.QID)
		if err != nil {
			return stats, err
		}

		for canonicalCondID, variantCondID := range mapping {
			variantCounter, ok := p.TaskConditionCounters[variantCondID]
			if !ok {
				continue
			}
			counter, ok := p.TaskConditionCounters[canonicalCondID]
			if !ok {
				counter = engine.TaskConditionCounter{
					ID:       canonicalCondID,
					SourceID: canonicalID,
					Type:     variantCounter.Type,
				}
			}
			counter.Value = variantCounter.Value
			p.TaskConditionCounters[canonicalCondID] = counter
			stats.MigratedCounters++
		}

		migrated := entry
		migrated.QID = canonicalID
		if i := p.QuestIndex(canonicalID); i >= 0 {
			p.Quests[i] = migrated
		} else {
			p.Quests = append(p.Quests, migrated)
		}
		stats.ChangedStatuses++
	}

	// Purge everything still tagged with a repeated-variant id.
	for id, counter := range p.TaskConditionCounters {
		if quest.IsRepeatedID(counter.SourceID) {
			delete(p.TaskConditionCounters, id)
			stats.RemovedCounters++
		}
	}

	kept := p.Quests[:0]
	for _, entry := range p.Quests {
		if quest.IsRepeatedID(entry.QID) {
			stats.RemovedQuests++
			continue
		}
		kept = append(kept, entry)
	}
	p.Quests = kept

	if stats != (Stats{}) {
		r.logger.Debug("reconciled repeated quest state",
			zap.String("profile_id", p.ID),
			zap.Int("migrated_counters", stats.MigratedCounters),
			zap.Int("changed_statuses", stats.ChangedStatuses),
			zap.Int("removed_counters", stats.RemovedCounters),
			zap.Int("removed_quests", stats.RemovedQuests))
	}

	return stats, nil
}

func inFlight(s engine.QuestStatus) bool {
	return s == engine.StatusStarted || s == engine.StatusAvailableForStart
}

// conditionIDMapping maps the canonical quest's condition ids onto the
// variant's, positionally per condition list. A missing template on either
// side yields an empty mapping: nothing migrates for that pair.
func (r *Reconciler) conditionIDMapping(ctx context.Context, canonicalID, variantID string) (map[string]string, error) {
	canonical, err := r.lookup(ctx, canonicalID)
	if err != nil {
		return nil, err
	}
	variant, err := r.lookup(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if canonical == nil || variant == nil {
		return map[string]string{}, nil
	}

	mapping := make(map[string]string)
	zip := func(src, dst []engine.Condition) {
		for i, c := range src {
			if i < len(dst) {
				mapping[c.Props.ID] = dst[i].Props.ID
			}
		}
	}
	zip(canonical.Conditions.AvailableForStart, variant.Conditions.AvailableForStart)
	zip(canonical.Conditions.AvailableForFinish, variant.Conditions.AvailableForFinish)
	zip(canonical.Conditions.Fail, variant.Conditions.Fail)
	return mapping, nil
}

func (r *Reconciler) lookup(ctx context.Context, id string) (*engine.Quest, error) {
	q, err := r.templates.Quest(ctx, id)
	if errors.Is(err, storage.ErrQuestNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading template %s: %w", id, err)
	}
	return q, nil
}
