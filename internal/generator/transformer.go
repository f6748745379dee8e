// Package generator is the compilation core: it expands authored custom
// quests into the engine's condition/reward graph plus per-locale text
// tables, and expands repeatable quests into unlock chains.
package generator

import (
	"go.uber.org/zap"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/gamedata"
	"github.com/questforge/questforge/internal/quest"
	"github.com/questforge/questforge/internal/story"
)

// Quest record defaults.
const (
	defaultImageID        = "5a27cafa86f77424e20615d6"
	defaultQuestType      = "Completion"
	defaultLocation       = "any"
	defaultSuccessMessage = "Quest successfully completed"
)

// Transformer builds one quest's engine record and locale projection.
type Transformer struct {
	quest      *quest.CustomQuest
	locales    []string
	conditions *ConditionsGenerator
	rewards    *RewardsGenerator
}

// NewTransformer creates a transformer for one quest.
//
// Precondition: q, items and logger must be non-nil; locales lists every
// locale the host knows.
func NewTransformer(q *quest.CustomQuest, items *story.Index, locales []string, logger *zap.Logger) *Transformer {
	return &Transformer{
		quest:      q,
		locales:    locales,
		conditions: NewConditionsGenerator(q, items, logger),
		rewards:    NewRewardsGenerator(q, items),
	}
}

// GenerateQuest builds the full engine quest record.
func (t *Transformer) GenerateQuest() *engine.Quest {
	q := t.quest

	image := q.Image
	if image == "" {
		image = defaultImageID
	}
	questType := q.Type
	if questType == "" {
		questType = defaultQuestType
	}
	location := q.DescriptiveLocation
	if location == "" {
		location = defaultLocation
	}

	successMessage := defaultSuccessMessage
	if q.SuccessMessage.Defined() {
		successMessage = q.ID + "_success_message_text"
	}

	return &engine.Quest{
		QuestName:                  q.ID,
		ID:                         q.ID,
		Image:                      "/files/quest/icon/" + image + ".jpg",
		Type:                       questType,
		TraderID:                   gamedata.TraderID(q.TraderID),
		Location:                   gamedata.DescriptiveLocationID(location),
		Conditions:                 t.conditions.Generate(),
		Rewards:                    t.rewards.Generate(),
		CanShowNotificationsInGame: true,
		Description:                q.ID + "_description",
		FailMessageText:            q.ID + "_failMessageText",
		Name:                       q.ID + "_name",
		Note:                       q.ID + "_note",
		StartedMessageText:         q.ID + "_startedMessageText",
		SuccessMessageText:         successMessage,
		TemplateID:                 q.ID,
	}
}

// GenerateLocales projects the quest's free-text fields into every known
// locale. Raw strings are used verbatim everywhere; locale maps fall back to
// English, then to the empty string.
func (t *Transformer) GenerateLocales(generated *engine.Quest) engine.GeneratedLocales {
	q := t.quest
	result := make(engine.GeneratedLocales, len(t.locales))

	for _, locale := range t.locales {
		payload := engine.QuestLocale{
			Name:        q.Name.Resolve(locale),
			Description: generated.TemplateID + "_description",
			Conditions:  map[string]string{},
			Location:    generated.Location,
		}
		if q.SuccessMessage.Defined() {
			payload.SuccessMessageText = generated.TemplateID + "_success_message_text"
		}

		for _, m := range q.Missions {
			id, ok := MissionConditionID(q.ID, m)
			if !ok {
				continue
			}
			payload.Conditions[id] = m.Message().Resolve(locale)

			if survive, ok := quest.SurvivalText(m); ok {
				payload.Conditions[id+"_exit_location"] = survive.Resolve(locale)
			}
		}

		mail := map[string]string{
			payload.Description: q.Description.Resolve(locale),
		}
		if q.SuccessMessage.Defined() {
			mail[payload.SuccessMessageText] = q.SuccessMessage.Resolve(locale)
		}

		result[locale] = engine.LocalePayload{Quest: payload, Mail: mail}
	}

	return result
}
