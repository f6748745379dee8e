package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/quest"
	"github.com/questforge/questforge/internal/storage"
)

func questWithFinishConditions(id string, conditionIDs ...string) *engine.Quest {
	conds := make([]engine.Condition, 0, len(conditionIDs))
	for i, cid := range conditionIDs {
		conds = append(conds, engine.Condition{
			Parent: engine.ConditionCounterCreator,
			Props:  engine.ConditionProps{ID: cid, Index: i},
		})
	}
	return &engine.Quest{
		ID:        id,
		QuestName: id,
		Conditions: engine.Conditions{
			AvailableForStart:  []engine.Condition{},
			AvailableForFinish: conds,
			Fail:               []engine.Condition{},
		},
	}
}

func registeredTemplates(t *testing.T) *storage.MemoryTemplateStore {
	t.Helper()
	ctx := context.Background()
	templates := storage.NewMemoryTemplateStore()
	require.NoError(t, templates.RegisterQuest(ctx, questWithFinishConditions("base", "c1", "c2")))
	require.NoError(t, templates.RegisterQuest(ctx,
		questWithFinishConditions(quest.RepeatedID("base", 0), "v1", "v2")))
	require.NoError(t, templates.RegisterQuest(ctx,
		questWithFinishConditions(quest.RepeatedID("base", 1), "w1", "w2")))
	return templates
}

func TestRunMigratesStartedVariant(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(registeredTemplates(t), zap.NewNop())

	p := &engine.Profile{
		ID: "p1",
		Quests: []engine.QuestEntry{
			{QID: "base", Status: engine.StatusSuccess, StartTime: 10},
			{QID: quest.RepeatedID("base", 0), Status: engine.StatusStarted, StartTime: 20},
		},
		TaskConditionCounters: map[string]engine.TaskConditionCounter{
			"v1": {ID: "v1", SourceID: quest.RepeatedID("base", 0), Type: "Elimination", Value: 3},
		},
	}

	stats, err := r.Run(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MigratedCounters)
	assert.Equal(t, 1, stats.ChangedStatuses)
	assert.Equal(t, 1, stats.RemovedCounters)
	assert.Equal(t, 1, stats.RemovedQuests)

	// The canonical entry now carries the variant's progress.
	require.Len(t, p.Quests, 1)
	assert.Equal(t, "base", p.Quests[0].QID)
	assert.Equal(t, engine.StatusStarted, p.Quests[0].Status)
	assert.Equal(t, int64(20), p.Quests[0].StartTime)

	// The variant counter migrated onto the canonical condition id.
	counter, ok := p.TaskConditionCounters["c1"]
	require.True(t, ok)
	assert.Equal(t, 3, counter.Value)
	assert.Equal(t, "base", counter.SourceID)
	assert.Equal(t, "Elimination", counter.Type)

	_, ok = p.TaskConditionCounters["v1"]
	assert.False(t, ok)
}

func TestRunZeroesCountersForCompletedMembers(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(registeredTemplates(t), zap.NewNop())

	p := &engine.Profile{
		ID: "p1",
		Quests: []engine.QuestEntry{
			{QID: "base", Status: engine.StatusStarted},
			{QID: quest.RepeatedID("base", 0), Status: engine.StatusSuccess},
		},
		TaskConditionCounters: map[string]engine.TaskConditionCounter{
			"c1": {ID: "c1", SourceID: "base", Value: 7},
		},
	}

	_, err := r.Run(ctx, p)
	require.NoError(t, err)

	assert.Equal(t, 0, p.TaskConditionCounters["c1"].Value)
	require.Len(t, p.Quests, 1)
	assert.Equal(t, "base", p.Quests[0].QID)
}

func TestRunUpdatesExistingCanonicalCounter(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(registeredTemplates(t), zap.NewNop())

	p := &engine.Profile{
		ID: "p1",
		Quests: []engine.QuestEntry{
			{QID: quest.RepeatedID("base", 1), Status: engine.StatusAvailableForStart},
		},
		TaskConditionCounters: map[string]engine.TaskConditionCounter{
			"c2": {ID: "c2", SourceID: "base", Type: "Elimination", Value: 1},
			"w2": {ID: "w2", SourceID: quest.RepeatedID("base", 1), Type: "Elimination", Value: 5},
		},
	}

	_, err := r.Run(ctx, p)
	require.NoError(t, err)

	assert.Equal(t, 5, p.TaskConditionCounters["c2"].Value)
	require.Len(t, p.Quests, 1)
	assert.Equal(t, "base", p.Quests[0].QID)
	assert.Equal(t, engine.StatusAvailableForStart, p.Quests[0].Status)
}

func TestRunMissingTemplatesStillPurges(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(storage.NewMemoryTemplateStore(), zap.NewNop())

	p := &engine.Profile{
		ID: "p1",
		Quests: []engine.QuestEntry{
			{QID: quest.RepeatedID("gone", 0), Status: engine.StatusStarted},
		},
		TaskConditionCounters: map[string]engine.TaskConditionCounter{
			"x": {ID: "x", SourceID: quest.RepeatedID("gone", 0), Value: 2},
		},
	}

	stats, err := r.Run(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.MigratedCounters)
	assert.Equal(t, 1, stats.RemovedCounters)
	assert.Equal(t, 1, stats.RemovedQuests)

	// The status still collapses onto the canonical id.
	require.Len(t, p.Quests, 1)
	assert.Equal(t, "gone", p.Quests[0].QID)
	assert.Empty(t, p.TaskConditionCounters)
}

func TestRunIdempotent(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(registeredTemplates(t), zap.NewNop())

	p := &engine.Profile{
		ID: "p1",
		Quests: []engine.QuestEntry{
			{QID: quest.RepeatedID("base", 0), Status: engine.StatusStarted},
		},
		TaskConditionCounters: map[string]engine.TaskConditionCounter{
			"v2": {ID: "v2", SourceID: quest.RepeatedID("base", 0), Value: 4},
		},
	}

	_, err := r.Run(ctx, p)
	require.NoError(t, err)

	again, err := r.Run(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, again)
}

func TestRunLeavesPlainProfilesAlone(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(registeredTemplates(t), zap.NewNop())

	p := &engine.Profile{
		ID: "p1",
		Quests: []engine.QuestEntry{
			{QID: "base", Status: engine.StatusStarted},
			{QID: "other", Status: engine.StatusSuccess},
		},
		TaskConditionCounters: map[string]engine.TaskConditionCounter{
			"c1": {ID: "c1", SourceID: "base", Value: 2},
		},
	}

	stats, err := r.Run(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
	assert.Len(t, p.Quests, 2)
	assert.Equal(t, 2, p.TaskConditionCounters["c1"].Value)
}
