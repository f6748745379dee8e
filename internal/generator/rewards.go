package generator

import (
	"sort"
	"strconv"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/gamedata"
	"github.com/questforge/questforge/internal/quest"
	"github.com/questforge/questforge/internal/story"
)

// Reward id prefixes keep Started and Success rewards for the same item
// from colliding.
const (
	startRewardPrefix   = "at_start_"
	successRewardPrefix = "success_"
)

// RewardsGenerator converts a quest's simplified reward maps into engine
// reward lists.
type RewardsGenerator struct {
	quest *quest.CustomQuest
	items *story.Index
}

// NewRewardsGenerator creates a generator for one quest.
//
// Precondition: q and items must be non-nil.
func NewRewardsGenerator(q *quest.CustomQuest, items *story.Index) *RewardsGenerator {
	return &RewardsGenerator{quest: q, items: items}
}

// Generate produces the full reward set. Fail rewards are not generated;
// the list stays empty.
func (g *RewardsGenerator) Generate() engine.Rewards {
	return engine.Rewards{
		Started: g.generate(g.quest.StartRewards, startRewardPrefix),
		Success: g.generate(g.quest.Rewards, successRewardPrefix),
		Fail:    []engine.Reward{},
	}
}

// setRewardIndexes re-indexes a reward list so element i carries index i.
func setRewardIndexes(rewards []engine.Reward) []engine.Reward {
	out := make([]engine.Reward, 0, len(rewards))
	for i, r := range rewards {
		r.Index = i
		out = append(out, r)
	}
	return out
}

func (g *RewardsGenerator) generate(rewards *quest.Rewards, idPrefix string) []engine.Reward {
	out := []engine.Reward{}
	if rewards == nil {
		return out
	}

	if rewards.XP > 0 {
		out = append(out, engine.Reward{
			ID:    idPrefix + g.quest.ID + "_xp_reward",
			Type:  engine.RewardExperience,
			Value: strconv.Itoa(rewards.XP),
		})
	}

	for _, itemID := range sortedKeys(rewards.Items) {
		if count := rewards.Items[itemID]; count > 0 {
			out = append(out, g.itemReward(itemID, count, idPrefix))
		}
	}

	for _, traderID := range sortedKeys(rewards.TraderReputations) {
		if delta := rewards.TraderReputations[traderID]; delta != 0 {
			out = append(out, g.reputationReward(traderID, delta, idPrefix))
		}
	}

	return setRewardIndexes(out)
}

// itemReward builds an Item reward. Ids naming a known item build expand
// into the build's full instance tree, with the stack count applied to the
// root instance.
func (g *RewardsGenerator) itemReward(itemID string, count int, idPrefix string) engine.Reward {
	rewardID := idPrefix + g.quest.ID + "_item_reward_" + itemID
	targetID := idPrefix + "TARGET_" + g.quest.ID + "_item_reward_" + itemID

	if build, ok := g.items.Build(itemID); ok {
		items := story.ExpandBuild(build.BuildNode, targetID)
		items[0].Upd = &engine.ItemUpd{StackObjectsCount: count}
		return engine.Reward{
			ID:     rewardID,
			Type:   engine.RewardItem,
			Value:  strconv.Itoa(count),
			Target: targetID,
			Items:  items,
		}
	}

	return engine.Reward{
		ID:     rewardID,
		Type:   engine.RewardItem,
		Value:  strconv.Itoa(count),
		Target: targetID,
		Items: []engine.Item{{
			ID:  targetID,
			Tpl: itemID,
			Upd: &engine.ItemUpd{StackObjectsCount: count},
		}},
	}
}

func (g *RewardsGenerator) reputationReward(traderAlias string, delta float64, idPrefix string) engine.Reward {
	traderID := gamedata.TraderID(traderAlias)
	return engine.Reward{
		ID:     idPrefix + g.quest.ID + "_reputation_reward_" + traderID,
		Type:   engine.RewardTraderStanding,
		Value:  strconv.FormatFloat(delta, 'f', -1, 64),
		Target: traderID,
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
