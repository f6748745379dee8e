package quest

import (
	"encoding/json"
	"fmt"
)

// Story item type tags.
const (
	TagBuild = "@build"
	TagGroup = "@group"
)

// BuildNode is one node of an item-build tree: an item template plus its
// attachments indexed by slot id.
type BuildNode struct {
	Item        string               `json:"item"`
	Attachments map[string]BuildNode `json:"attachments,omitempty"`
}

// ItemBuild is a named item-build tree referenced from reward item maps.
type ItemBuild struct {
	ID string `json:"id"`
	BuildNode
}

// ItemGroup is a named flat list of item template ids referenced from
// accepted-item lists.
type ItemGroup struct {
	ID    string   `json:"id"`
	Items []string `json:"items"`
}

// Story is the parsed content of one quest file: quests plus the auxiliary
// item entities, in file order.
type Story struct {
	Quests []*CustomQuest
	Builds []*ItemBuild
	Groups []*ItemGroup
}

// ParseStory decodes a quest file. The file holds either a single story item
// or an array of them; items are discriminated by a "type" tag of "@build"
// or "@group", anything else is a quest.
//
// Postcondition: returns a non-nil Story or a decoding error.
func ParseStory(data []byte) (*Story, error) {
	raws, err := splitItems(data)
	if err != nil {
		return nil, err
	}

	story := &Story{}
	for i, raw := range raws {
		var tag struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &tag); err != nil {
			return nil, fmt.Errorf("decoding story item %d: %w", i, err)
		}

		switch tag.Type {
		case TagBuild:
			var b ItemBuild
			if err := json.Unmarshal(raw, &b); err != nil {
				return nil, fmt.Errorf("decoding item build %d: %w", i, err)
			}
			story.Builds = append(story.Builds, &b)
		case TagGroup:
			var g ItemGroup
			if err := json.Unmarshal(raw, &g); err != nil {
				return nil, fmt.Errorf("decoding item group %d: %w", i, err)
			}
			story.Groups = append(story.Groups, &g)
		default:
			var q CustomQuest
			if err := json.Unmarshal(raw, &q); err != nil {
				return nil, fmt.Errorf("decoding quest %d: %w", i, err)
			}
			story.Quests = append(story.Quests, &q)
		}
	}
	return story, nil
}

// splitItems normalises single-object and array files to a list of raw items.
func splitItems(data []byte) ([]json.RawMessage, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err == nil {
		return raws, nil
	}
	var single json.RawMessage
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("parsing story file: %w", err)
	}
	return []json.RawMessage{single}, nil
}
