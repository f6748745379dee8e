package generator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/quest"
	"github.com/questforge/questforge/internal/story"
)

// Generated pairs one compiled quest with its locale projection.
type Generated struct {
	Quest   *engine.Quest
	Locales engine.GeneratedLocales
}

// Generator runs the full per-quest pipeline over a load batch: validation,
// repeatable expansion, then condition/reward/locale generation.
type Generator struct {
	items       *story.Index
	locales     []string
	repeatLimit int
	namePrefix  string
	logger      *zap.Logger
}

// New creates a batch generator.
//
// Precondition: items and logger must be non-nil; repeatLimit is the number
// of clones generated per repeatable quest.
func New(items *story.Index, locales []string, repeatLimit int, namePrefix string, logger *zap.Logger) *Generator {
	return &Generator{
		items:       items,
		locales:     locales,
		repeatLimit: repeatLimit,
		namePrefix:  namePrefix,
		logger:      logger,
	}
}

// Generate compiles every non-disabled quest in order. A quest failing
// validation aborts the whole batch (fail-fast, no partial apply); disabled
// quests are skipped with a warning.
func (g *Generator) Generate(quests []*quest.CustomQuest) ([]Generated, error) {
	var out []Generated

	for _, q := range quests {
		if q.Disabled {
			g.logger.Warn("quest is disabled", zap.String("quest_id", q.ID))
			continue
		}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("validating quest: %w", err)
		}

		for _, variant := range ExpandRepeatable(q, g.repeatLimit, g.namePrefix) {
			t := NewTransformer(variant, g.items, g.locales, g.logger)
			generated := t.GenerateQuest()
			out = append(out, Generated{
				Quest:   generated,
				Locales: t.GenerateLocales(generated),
			})
		}
	}

	return out, nil
}
