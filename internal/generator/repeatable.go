package generator

import (
	"github.com/questforge/questforge/internal/quest"
)

// ExpandRepeatable expands a repeatable quest into its unlock chain: the
// original followed by limit clones. Clone k carries id RepeatedID(id, k)
// and is locked on the previous chain link's success, replacing any authored
// lock list, so the chain unlocks strictly in order. Non-repeatable quests
// (and a limit of zero) expand to just the original.
//
// Postcondition: returns limit+1 quests for a repeatable input, with
// pairwise distinct ids and chain order preserved.
func ExpandRepeatable(q *quest.CustomQuest, limit int, namePrefix string) []*quest.CustomQuest {
	if !q.Repeatable || limit <= 0 {
		return []*quest.CustomQuest{q}
	}

	chain := make([]*quest.CustomQuest, 0, limit+1)
	chain = append(chain, q)

	previousID := q.ID
	for k := 0; k < limit; k++ {
		clone := *q
		clone.ID = quest.RepeatedID(q.ID, k)
		clone.LockedByQuests = []string{previousID}
		clone.Repeatable = false
		if namePrefix != "" {
			clone.Name = q.Name.WithPrefix(namePrefix)
		}
		chain = append(chain, &clone)
		previousID = clone.ID
	}

	return chain
}
