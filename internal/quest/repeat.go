package quest

import (
	"fmt"
	"strings"
)

// repeatedPrefix tags the transient clone quests generated for a repeatable
// quest. A repeated quest is one generated clone; the repeatable quest is
// the original plus its clones.
const repeatedPrefix = "@repeated"

// RepeatedID derives the id of the index-th clone of a repeatable quest.
// The id embeds the canonical id so it can be recovered later.
func RepeatedID(questID string, index int) string {
	return fmt.Sprintf("%s/%s/%d", repeatedPrefix, questID, index)
}

// IsRepeatedID reports whether questID names a generated clone.
func IsRepeatedID(questID string) bool {
	return strings.HasPrefix(questID, repeatedPrefix+"/")
}

// CanonicalID extracts the original quest id from a repeated id. Returns
// false for ids that are not well-formed repeated ids.
func CanonicalID(questID string) (string, bool) {
	if !IsRepeatedID(questID) {
		return "", false
	}
	parts := strings.Split(questID, "/")
	if len(parts) < 3 {
		return "", false
	}
	return strings.Join(parts[1:len(parts)-1], "/"), true
}
