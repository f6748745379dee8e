package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questforge/questforge/internal/quest"
)

func testStory() *quest.Story {
	return &quest.Story{
		Builds: []*quest.ItemBuild{{
			ID: "my-gun",
			BuildNode: quest.BuildNode{
				Item: "base-weapon",
				Attachments: map[string]quest.BuildNode{
					"mod_stock": {Item: "stock-item"},
					"mod_barrel": {
						Item: "barrel-item",
						Attachments: map[string]quest.BuildNode{
							"mod_muzzle": {Item: "muzzle-item"},
						},
					},
				},
			},
		}},
		Groups: []*quest.ItemGroup{{
			ID:    "pistols",
			Items: []string{"p1", "p2"},
		}},
	}
}

func TestIndexBuildLookup(t *testing.T) {
	x := NewIndex()
	x.Add(testStory())

	b, ok := x.Build("my-gun")
	require.True(t, ok)
	assert.Equal(t, "base-weapon", b.Item)

	_, ok = x.Build("missing")
	assert.False(t, ok)
}

func TestIndexLaterRegistrationWins(t *testing.T) {
	x := NewIndex()
	x.Add(testStory())
	x.Add(&quest.Story{Groups: []*quest.ItemGroup{{ID: "pistols", Items: []string{"p3"}}}})

	assert.Equal(t, []string{"p3"}, x.ExpandItemIDs([]string{"pistols"}))
}

func TestExpandItemIDs(t *testing.T) {
	x := NewIndex()
	x.Add(testStory())

	out := x.ExpandItemIDs([]string{"pistols", "literal-item"})
	assert.Equal(t, []string{"p1", "p2", "literal-item"}, out)
}

func TestExpandBuildFlattensTree(t *testing.T) {
	x := NewIndex()
	x.Add(testStory())
	b, ok := x.Build("my-gun")
	require.True(t, ok)

	items := ExpandBuild(b.BuildNode, "root")
	require.Len(t, items, 4)

	assert.Equal(t, "root", items[0].ID)
	assert.Equal(t, "base-weapon", items[0].Tpl)
	assert.Empty(t, items[0].ParentID)

	// Slots walk in sorted order: mod_barrel before mod_stock.
	assert.Equal(t, "root_mod_barrel", items[1].ID)
	assert.Equal(t, "root", items[1].ParentID)
	assert.Equal(t, "mod_barrel", items[1].SlotID)

	assert.Equal(t, "root_mod_barrel_mod_muzzle", items[2].ID)
	assert.Equal(t, "root_mod_barrel", items[2].ParentID)
	assert.Equal(t, "mod_muzzle", items[2].SlotID)

	assert.Equal(t, "root_mod_stock", items[3].ID)
}

func TestExpandBuildDeterministic(t *testing.T) {
	b := testStory().Builds[0]
	first := ExpandBuild(b.BuildNode, "root")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ExpandBuild(b.BuildNode, "root"))
	}
}
