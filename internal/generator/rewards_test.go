package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/quest"
	"github.com/questforge/questforge/internal/story"
)

func rewardsFor(q *quest.CustomQuest) engine.Rewards {
	return NewRewardsGenerator(q, story.NewIndex()).Generate()
}

func TestRewardsEmpty(t *testing.T) {
	rw := rewardsFor(&quest.CustomQuest{ID: "q1", TraderID: "prapor"})
	assert.Empty(t, rw.Started)
	assert.Empty(t, rw.Success)
	assert.NotNil(t, rw.Fail)
	assert.Empty(t, rw.Fail)
}

func TestExperienceReward(t *testing.T) {
	rw := rewardsFor(&quest.CustomQuest{
		ID:       "q1",
		TraderID: "prapor",
		Rewards:  &quest.Rewards{XP: 5000},
	})
	require.Len(t, rw.Success, 1)
	xp := rw.Success[0]
	assert.Equal(t, "success_q1_xp_reward", xp.ID)
	assert.Equal(t, engine.RewardExperience, xp.Type)
	assert.Equal(t, "5000", xp.Value)
}

func TestZeroXPSkipped(t *testing.T) {
	rw := rewardsFor(&quest.CustomQuest{
		ID:       "q1",
		TraderID: "prapor",
		Rewards:  &quest.Rewards{XP: 0},
	})
	assert.Empty(t, rw.Success)
}

func TestItemReward(t *testing.T) {
	rw := rewardsFor(&quest.CustomQuest{
		ID:       "q1",
		TraderID: "prapor",
		Rewards:  &quest.Rewards{Items: map[string]int{"item-a": 3}},
	})
	require.Len(t, rw.Success, 1)

	item := rw.Success[0]
	assert.Equal(t, engine.RewardItem, item.Type)
	assert.Equal(t, "3", item.Value)
	assert.Equal(t, "success_TARGET_q1_item_reward_item-a", item.Target)
	require.Len(t, item.Items, 1)
	assert.Equal(t, item.Target, item.Items[0].ID)
	assert.Equal(t, "item-a", item.Items[0].Tpl)
	require.NotNil(t, item.Items[0].Upd)
	assert.Equal(t, 3, item.Items[0].Upd.StackObjectsCount)
}

func TestItemRewardsSortedByID(t *testing.T) {
	rw := rewardsFor(&quest.CustomQuest{
		ID:       "q1",
		TraderID: "prapor",
		Rewards:  &quest.Rewards{Items: map[string]int{"zeta": 1, "alpha": 1, "mid": 1}},
	})
	require.Len(t, rw.Success, 3)
	assert.Contains(t, rw.Success[0].ID, "alpha")
	assert.Contains(t, rw.Success[1].ID, "mid")
	assert.Contains(t, rw.Success[2].ID, "zeta")
}

func TestItemRewardBuildExpansion(t *testing.T) {
	idx := story.NewIndex()
	idx.Add(&quest.Story{Builds: []*quest.ItemBuild{{
		ID: "my-gun",
		BuildNode: quest.BuildNode{
			Item: "base-weapon",
			Attachments: map[string]quest.BuildNode{
				"mod_stock": {Item: "stock-item"},
			},
		},
	}}})

	q := &quest.CustomQuest{
		ID:       "q1",
		TraderID: "prapor",
		Rewards:  &quest.Rewards{Items: map[string]int{"my-gun": 1}},
	}
	rw := NewRewardsGenerator(q, idx).Generate()
	require.Len(t, rw.Success, 1)

	item := rw.Success[0]
	require.Len(t, item.Items, 2)
	assert.Equal(t, "base-weapon", item.Items[0].Tpl)
	assert.Equal(t, item.Target, item.Items[0].ID)
	require.NotNil(t, item.Items[0].Upd)
	assert.Equal(t, 1, item.Items[0].Upd.StackObjectsCount)

	assert.Equal(t, "stock-item", item.Items[1].Tpl)
	assert.Equal(t, item.Items[0].ID, item.Items[1].ParentID)
	assert.Equal(t, "mod_stock", item.Items[1].SlotID)
	assert.Nil(t, item.Items[1].Upd)
}

func TestReputationReward(t *testing.T) {
	rw := rewardsFor(&quest.CustomQuest{
		ID:       "q1",
		TraderID: "prapor",
		Rewards:  &quest.Rewards{TraderReputations: map[string]float64{"prapor": 0.05, "fence": 0}},
	})
	require.Len(t, rw.Success, 1)

	rep := rw.Success[0]
	assert.Equal(t, engine.RewardTraderStanding, rep.Type)
	assert.Equal(t, "0.05", rep.Value)
	assert.Equal(t, "54cb50c76803fa8b248b4571", rep.Target)
}

func TestNegativeReputationKept(t *testing.T) {
	rw := rewardsFor(&quest.CustomQuest{
		ID:       "q1",
		TraderID: "prapor",
		Rewards:  &quest.Rewards{TraderReputations: map[string]float64{"fence": -0.1}},
	})
	require.Len(t, rw.Success, 1)
	assert.Equal(t, "-0.1", rw.Success[0].Value)
}

func TestStartRewardsPrefixed(t *testing.T) {
	rw := rewardsFor(&quest.CustomQuest{
		ID:           "q1",
		TraderID:     "prapor",
		StartRewards: &quest.Rewards{XP: 100},
	})
	require.Len(t, rw.Started, 1)
	assert.Equal(t, "at_start_q1_xp_reward", rw.Started[0].ID)
	assert.Empty(t, rw.Success)
}

func TestRewardIndexesContiguous(t *testing.T) {
	rw := rewardsFor(&quest.CustomQuest{
		ID:       "q1",
		TraderID: "prapor",
		Rewards: &quest.Rewards{
			XP:                1000,
			Items:             map[string]int{"a": 1, "b": 2},
			TraderReputations: map[string]float64{"prapor": 0.01},
		},
	})
	require.Len(t, rw.Success, 4)
	for i, r := range rw.Success {
		assert.Equal(t, i, r.Index)
	}
}
