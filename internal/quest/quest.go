// Package quest defines the authoring-time model: custom quests, their
// missions, and the auxiliary story items (@build / @group) that quest files
// may mix in alongside quests.
package quest

import (
	"errors"
	"fmt"
)

// ReservedTraderID cannot own quests; the host's flea market is not a trader.
const ReservedTraderID = "ragfair"

// Rewards is a simplified reward map attached to a quest.
type Rewards struct {
	XP                int                `json:"xp"`
	Items             map[string]int     `json:"items"`
	TraderReputations map[string]float64 `json:"traders_reputations"`
}

// CustomQuest is one authored quest definition, parsed once per load pass
// and immutable thereafter.
type CustomQuest struct {
	ID                  string   `json:"id"`
	TraderID            string   `json:"trader_id"`
	Disabled            bool     `json:"disabled"`
	DescriptiveLocation string   `json:"descriptive_location"`
	Type                string   `json:"type"`
	Image               string   `json:"image"`
	Name                Text     `json:"name"`
	Description         Text     `json:"description"`
	SuccessMessage      Text     `json:"success_message"`
	LevelNeeded         int      `json:"level_needed"`
	LockedByQuests      []string `json:"locked_by_quests"`
	UnlockOnQuestStart  []string `json:"unlock_on_quest_start"`
	Missions            Missions `json:"missions"`
	Rewards             *Rewards `json:"rewards"`
	StartRewards        *Rewards `json:"start_rewards"`
	Repeatable          bool     `json:"repeatable"`
}

// Validate checks the fatal authoring invariants. A failing quest aborts the
// whole load pass.
//
// Postcondition: returns nil only if the quest has a usable id and trader id.
func (q *CustomQuest) Validate() error {
	if q.ID == "" {
		return errors.New("invalid quest: empty id")
	}
	if q.TraderID == "" {
		return fmt.Errorf("invalid quest %q: no trader_id found", q.ID)
	}
	if q.TraderID == ReservedTraderID {
		return fmt.Errorf("invalid quest %q: %s cannot be used for quests", q.ID, ReservedTraderID)
	}
	return nil
}
