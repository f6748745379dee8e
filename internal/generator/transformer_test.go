package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/questforge/questforge/internal/quest"
	"github.com/questforge/questforge/internal/story"
)

func transform(q *quest.CustomQuest, locales ...string) *Transformer {
	if len(locales) == 0 {
		locales = []string{"en"}
	}
	return NewTransformer(q, story.NewIndex(), locales, zap.NewNop())
}

func TestGenerateQuestDefaults(t *testing.T) {
	q := &quest.CustomQuest{ID: "q1", TraderID: "prapor"}
	out := transform(q).GenerateQuest()

	assert.Equal(t, "q1", out.ID)
	assert.Equal(t, "q1", out.QuestName)
	assert.Equal(t, "q1", out.TemplateID)
	assert.Equal(t, "/files/quest/icon/5a27cafa86f77424e20615d6.jpg", out.Image)
	assert.Equal(t, "Completion", out.Type)
	assert.Equal(t, "any", out.Location)
	assert.Equal(t, "54cb50c76803fa8b248b4571", out.TraderID)
	assert.True(t, out.CanShowNotificationsInGame)
	assert.Equal(t, "q1_description", out.Description)
	assert.Equal(t, "Quest successfully completed", out.SuccessMessageText)
}

func TestGenerateQuestAuthoredFields(t *testing.T) {
	q := &quest.CustomQuest{
		ID:                  "q1",
		TraderID:            "mechanic",
		Type:                "PickUp",
		Image:               "custom-image",
		DescriptiveLocation: "customs",
		SuccessMessage:      quest.PlainText("Done!"),
	}
	out := transform(q).GenerateQuest()

	assert.Equal(t, "/files/quest/icon/custom-image.jpg", out.Image)
	assert.Equal(t, "PickUp", out.Type)
	assert.Equal(t, "56f40101d2720b2a4d8b45d6", out.Location)
	assert.Equal(t, "q1_success_message_text", out.SuccessMessageText)
}

func TestGenerateLocales(t *testing.T) {
	q := &quest.CustomQuest{
		ID:          "q1",
		TraderID:    "prapor",
		Name:        quest.LocalizedText(map[string]string{"en": "Hunt", "fr": "Chasse"}),
		Description: quest.PlainText("Go hunt"),
		Missions:    quest.Missions{quest.KillMission{Count: 2, Msg: quest.PlainText("Kill 2")}},
	}
	tr := transform(q, "en", "fr")
	generated := tr.GenerateQuest()
	locales := tr.GenerateLocales(generated)

	require.Contains(t, locales, "en")
	require.Contains(t, locales, "fr")

	en := locales["en"]
	assert.Equal(t, "Hunt", en.Quest.Name)
	assert.Equal(t, "q1_description", en.Quest.Description)
	assert.Equal(t, "Go hunt", en.Mail["q1_description"])

	fr := locales["fr"]
	assert.Equal(t, "Chasse", fr.Quest.Name)

	condID, ok := MissionConditionID("q1", q.Missions[0])
	require.True(t, ok)
	assert.Equal(t, "Kill 2", en.Quest.Conditions[condID])
}

func TestGenerateLocalesFallBackToEnglish(t *testing.T) {
	q := &quest.CustomQuest{
		ID:       "q1",
		TraderID: "prapor",
		Name:     quest.LocalizedText(map[string]string{"en": "Hunt"}),
	}
	tr := transform(q, "de")
	locales := tr.GenerateLocales(tr.GenerateQuest())
	assert.Equal(t, "Hunt", locales["de"].Quest.Name)
}

func TestGenerateLocalesSurvivalMessage(t *testing.T) {
	q := &quest.CustomQuest{
		ID:       "q1",
		TraderID: "prapor",
		Missions: quest.Missions{quest.PlaceBeaconMission{
			ZoneID:      "quest_zone_delivery",
			NeedSurvive: quest.PlainText("Extract alive"),
			Msg:         quest.PlainText("Plant the beacon"),
		}},
	}
	tr := transform(q)
	locales := tr.GenerateLocales(tr.GenerateQuest())

	condID, ok := MissionConditionID("q1", q.Missions[0])
	require.True(t, ok)

	en := locales["en"]
	assert.Equal(t, "Plant the beacon", en.Quest.Conditions[condID])
	assert.Equal(t, "Extract alive", en.Quest.Conditions[condID+"_exit_location"])
}

func TestGenerateLocalesSuccessMail(t *testing.T) {
	q := &quest.CustomQuest{
		ID:             "q1",
		TraderID:       "prapor",
		SuccessMessage: quest.PlainText("Well done"),
	}
	tr := transform(q)
	locales := tr.GenerateLocales(tr.GenerateQuest())

	en := locales["en"]
	assert.Equal(t, "q1_success_message_text", en.Quest.SuccessMessageText)
	assert.Equal(t, "Well done", en.Mail["q1_success_message_text"])
}

func TestGenerateQuestDeterministic(t *testing.T) {
	q := &quest.CustomQuest{
		ID:       "q1",
		TraderID: "prapor",
		Missions: quest.Missions{
			quest.KillMission{Count: 3, Locations: []string{"factory"}},
			quest.GiveItemMission{AcceptedItems: []string{"a", "b"}, Count: 1},
		},
		Rewards: &quest.Rewards{XP: 100, Items: map[string]int{"x": 1, "y": 2}},
	}
	first := transform(q).GenerateQuest()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, transform(q).GenerateQuest())
	}
}
