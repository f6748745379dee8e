// Package story indexes the auxiliary story items of a load batch (item
// builds and accepted-item groups) and expands references to them.
package story

import (
	"sort"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/quest"
)

// Index holds the builds and groups of one load batch, keyed by id. It is
// rebuilt on every load; later registrations win.
type Index struct {
	builds map[string]*quest.ItemBuild
	groups map[string]*quest.ItemGroup
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{
		builds: make(map[string]*quest.ItemBuild),
		groups: make(map[string]*quest.ItemGroup),
	}
}

// Add indexes every build and group of a parsed story.
func (x *Index) Add(s *quest.Story) {
	for _, b := range s.Builds {
		x.builds[b.ID] = b
	}
	for _, g := range s.Groups {
		x.groups[g.ID] = g
	}
}

// Build returns the item build for id, or (nil, false).
func (x *Index) Build(id string) (*quest.ItemBuild, bool) {
	b, ok := x.builds[id]
	return b, ok
}

// ExpandItemIDs replaces every id naming a known group with that group's
// member item ids (one level, non-recursive). Unknown ids pass through
// unchanged and are treated as literal item template ids.
func (x *Index) ExpandItemIDs(ids []string) []string {
	var out []string
	for _, id := range ids {
		if g, ok := x.groups[id]; ok {
			out = append(out, g.Items...)
		} else {
			out = append(out, id)
		}
	}
	return out
}

// ExpandBuild walks a build tree depth-first and returns the flat item
// instance list. Instance ids are synthesized as rootID_slotID_slotID...;
// every child carries a back-reference to its parent instance and its slot.
// Attachment slots are walked in sorted order so the result is deterministic.
func ExpandBuild(node quest.BuildNode, instanceID string) []engine.Item {
	return expandNode(node, instanceID, "", "")
}

func expandNode(node quest.BuildNode, instanceID, parentID, slotID string) []engine.Item {
	items := []engine.Item{{
		ID:       instanceID,
		Tpl:      node.Item,
		ParentID: parentID,
		SlotID:   slotID,
	}}

	slots := make([]string, 0, len(node.Attachments))
	for slot := range node.Attachments {
		slots = append(slots, slot)
	}
	sort.Strings(slots)

	for _, slot := range slots {
		child := node.Attachments[slot]
		items = append(items, expandNode(child, instanceID+"_"+slot, instanceID, slot)...)
	}
	return items
}
