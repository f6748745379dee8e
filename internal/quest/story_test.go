package quest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStorySingleQuest(t *testing.T) {
	st, err := ParseStory([]byte(`{
		"id": "quest-1",
		"trader_id": "prapor",
		"name": "First Blood"
	}`))
	require.NoError(t, err)

	require.Len(t, st.Quests, 1)
	assert.Equal(t, "quest-1", st.Quests[0].ID)
	assert.Equal(t, "prapor", st.Quests[0].TraderID)
	assert.Empty(t, st.Builds)
	assert.Empty(t, st.Groups)
}

func TestParseStoryMixedArray(t *testing.T) {
	st, err := ParseStory([]byte(`[
		{"id": "quest-1", "trader_id": "prapor"},
		{"type": "@build", "id": "my-gun", "item": "base-item", "attachments": {"mod_stock": {"item": "stock-item"}}},
		{"type": "@group", "id": "pistols", "items": ["p1", "p2"]},
		{"id": "quest-2", "trader_id": "mechanic"}
	]`))
	require.NoError(t, err)

	require.Len(t, st.Quests, 2)
	assert.Equal(t, "quest-1", st.Quests[0].ID)
	assert.Equal(t, "quest-2", st.Quests[1].ID)

	require.Len(t, st.Builds, 1)
	assert.Equal(t, "my-gun", st.Builds[0].ID)
	assert.Equal(t, "base-item", st.Builds[0].Item)
	assert.Equal(t, "stock-item", st.Builds[0].Attachments["mod_stock"].Item)

	require.Len(t, st.Groups, 1)
	assert.Equal(t, []string{"p1", "p2"}, st.Groups[0].Items)
}

func TestParseStoryQuestWithTypeTag(t *testing.T) {
	// A "type" value that is not a reserved tag is a quest field, not a
	// story discriminator.
	st, err := ParseStory([]byte(`{"id": "quest-1", "trader_id": "prapor", "type": "PickUp"}`))
	require.NoError(t, err)
	require.Len(t, st.Quests, 1)
	assert.Equal(t, "PickUp", st.Quests[0].Type)
}

func TestParseStoryInvalidJSON(t *testing.T) {
	_, err := ParseStory([]byte(`{not json`))
	assert.Error(t, err)
}

func TestValidateQuest(t *testing.T) {
	q := &CustomQuest{ID: "q", TraderID: "prapor"}
	assert.NoError(t, q.Validate())
}

func TestValidateQuestEmptyID(t *testing.T) {
	q := &CustomQuest{TraderID: "prapor"}
	assert.Error(t, q.Validate())
}

func TestValidateQuestMissingTrader(t *testing.T) {
	q := &CustomQuest{ID: "q"}
	assert.Error(t, q.Validate())
}

func TestValidateQuestRagfairTrader(t *testing.T) {
	q := &CustomQuest{ID: "q", TraderID: ReservedTraderID}
	assert.Error(t, q.Validate())
}
