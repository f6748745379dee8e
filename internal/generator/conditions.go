package generator

import (
	"go.uber.org/zap"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/gamedata"
	"github.com/questforge/questforge/internal/ident"
	"github.com/questforge/questforge/internal/quest"
	"github.com/questforge/questforge/internal/story"
)

// Generation defaults.
const (
	defaultKillTarget = "Savage"
	defaultPlantTime  = 30
)

// MissionConditionID derives the content-addressed id of the condition a
// mission expands into. The id is a pure function of the quest id and the
// mission fields that change its meaning, so recompiling unchanged sources
// reproduces it exactly. Returns false for unknown mission types.
func MissionConditionID(questID string, m quest.Mission) (string, bool) {
	var (
		id  string
		err error
	)

	switch v := m.(type) {
	case quest.KillMission:
		id, err = ident.Derive(questID, v.Type(), v.Count, v.Target, v.Locations)
	case quest.GiveItemMission:
		id, err = ident.Derive(questID, v.Type(), v.AcceptedItems, v.Count, v.FoundInRaidOnly)
	case quest.FindItemMission:
		id, err = ident.Derive(questID, v.Type(), v.AcceptedItems, v.Count)
	case quest.PlaceItemMission:
		id, err = ident.Derive(questID, v.Type(), v.ZoneID, v.PlantTime, v.NeedSurvive)
	case quest.PlaceBeaconMission:
		id, err = ident.Derive(questID, v.Type(), v.ZoneID, v.PlantTime, v.NeedSurvive)
	case quest.PlaceSignalJammerMission:
		id, err = ident.Derive(questID, v.Type(), v.ZoneID, v.PlantTime, v.NeedSurvive)
	case quest.VisitPlaceMission:
		id, err = ident.Derive(questID, v.Type(), v.PlaceID, v.NeedSurvive)
	default:
		return "", false
	}
	if err != nil {
		return "", false
	}
	return id, true
}

// ConditionsGenerator converts one quest's lock requirements and missions
// into the engine's condition lists.
type ConditionsGenerator struct {
	quest  *quest.CustomQuest
	items  *story.Index
	logger *zap.Logger
}

// NewConditionsGenerator creates a generator for one quest.
//
// Precondition: q, items and logger must be non-nil.
func NewConditionsGenerator(q *quest.CustomQuest, items *story.Index, logger *zap.Logger) *ConditionsGenerator {
	return &ConditionsGenerator{quest: q, items: items, logger: logger}
}

// Generate produces the full condition set. Fail conditions are not
// generated; the list stays empty.
func (g *ConditionsGenerator) Generate() engine.Conditions {
	return engine.Conditions{
		AvailableForStart:  g.availableForStart(),
		AvailableForFinish: g.availableForFinish(),
		Fail:               []engine.Condition{},
	}
}

// setIndexes re-indexes a condition list so element i carries index i.
func setIndexes(conditions []engine.Condition) []engine.Condition {
	out := make([]engine.Condition, 0, len(conditions))
	for i, c := range conditions {
		c.Props.Index = i
		out = append(out, c)
	}
	return out
}

func (g *ConditionsGenerator) availableForStart() []engine.Condition {
	var conditions []engine.Condition

	if level := g.quest.LevelNeeded; level > 1 {
		value := engine.NumberValue(level)
		conditions = append(conditions, engine.Condition{
			Parent: engine.ConditionLevel,
			Props: engine.ConditionProps{
				ID:                   g.quest.ID + "_level_condition",
				Value:                &value,
				CompareMethod:        ">=",
				VisibilityConditions: []engine.VisibilityCondition{},
			},
		})
	}

	for _, lockID := range g.quest.LockedByQuests {
		if c, ok := questStatusCondition(lockID, engine.StatusSuccess); ok {
			conditions = append(conditions, c)
		}
	}
	for _, startID := range g.quest.UnlockOnQuestStart {
		if c, ok := questStatusCondition(startID, engine.StatusStarted, engine.StatusSuccess); ok {
			conditions = append(conditions, c)
		}
	}

	return setIndexes(conditions)
}

// questStatusCondition builds a Quest condition requiring the target quest
// to be in one of the given statuses. Empty quest ids yield nothing.
func questStatusCondition(questID string, statuses ...engine.QuestStatus) (engine.Condition, bool) {
	if questID == "" {
		return engine.Condition{}, false
	}
	target := engine.SingleTarget(questID)
	return engine.Condition{
		Parent: engine.ConditionQuest,
		Props: engine.ConditionProps{
			Target:               &target,
			Status:               statuses,
			VisibilityConditions: []engine.VisibilityCondition{},
		},
	}, true
}

func (g *ConditionsGenerator) availableForFinish() []engine.Condition {
	var conditions []engine.Condition

	for _, m := range g.quest.Missions {
		switch v := m.(type) {
		case quest.KillMission:
			conditions = append(conditions, g.killCondition(v)...)
		case quest.GiveItemMission:
			conditions = append(conditions, g.giveItemCondition(v)...)
		case quest.FindItemMission:
			conditions = append(conditions, g.findItemCondition(v)...)
		case quest.PlaceItemMission:
			conditions = append(conditions, g.placementCondition(m, v.ZoneID, v.PlantTime, v.AcceptedItems, v.NeedSurvive)...)
		case quest.PlaceBeaconMission:
			conditions = append(conditions, g.placementCondition(m, v.ZoneID, v.PlantTime, nil, v.NeedSurvive)...)
		case quest.PlaceSignalJammerMission:
			conditions = append(conditions, g.placementCondition(m, v.ZoneID, v.PlantTime, nil, v.NeedSurvive)...)
		case quest.VisitPlaceMission:
			conditions = append(conditions, g.visitPlaceCondition(v)...)
		default:
			g.logger.Warn("ignored mission with unknown type",
				zap.String("quest_id", g.quest.ID),
				zap.String("mission_type", m.Type()))
		}
	}

	return setIndexes(conditions)
}

func (g *ConditionsGenerator) killCondition(m quest.KillMission) []engine.Condition {
	if m.Count <= 0 {
		g.logger.Warn("kill mission with non-positive count skipped",
			zap.String("quest_id", g.quest.ID), zap.Int("count", m.Count))
		return nil
	}

	id, ok := MissionConditionID(g.quest.ID, m)
	if !ok {
		return nil
	}

	target := m.Target
	if target == "" {
		target = defaultKillTarget
	}

	subs := []engine.CounterCondition{{
		Parent: engine.ConditionKills,
		Props: engine.CounterProps{
			ID:            id + "_kill",
			Target:        engine.SingleTarget(target),
			CompareMethod: ">=",
			// Each kill event counts once; the threshold lives on the
			// counter creator.
			Value:   "1",
			Weapons: g.items.ExpandItemIDs(m.Weapons),
		},
	}}

	if !gamedata.Unrestricted(m.Locations) {
		subs = append(subs, engine.CounterCondition{
			Parent: engine.ConditionLocation,
			Props: engine.CounterProps{
				ID:     id + "_location",
				Target: engine.ListTarget(gamedata.ExpandLocations(m.Locations)...),
			},
		})
	}

	value := engine.StringValue(m.Count)
	return []engine.Condition{{
		Parent: engine.ConditionCounterCreator,
		Props: engine.ConditionProps{
			ID:                   id,
			Counter:              &engine.Counter{ID: id + "_counter", Conditions: subs},
			OneSessionOnly:       m.OneSessionOnly,
			Type:                 "Elimination",
			Value:                &value,
			VisibilityConditions: []engine.VisibilityCondition{},
		},
	}}
}

func (g *ConditionsGenerator) giveItemCondition(m quest.GiveItemMission) []engine.Condition {
	if len(m.AcceptedItems) == 0 || m.Count <= 0 {
		g.logger.Warn("give-item mission without items or count skipped",
			zap.String("quest_id", g.quest.ID))
		return nil
	}

	id, ok := MissionConditionID(g.quest.ID, m)
	if !ok {
		return nil
	}

	target := engine.ListTarget(g.items.ExpandItemIDs(m.AcceptedItems)...)
	value := engine.StringValue(m.Count)
	return []engine.Condition{{
		Parent: engine.ConditionHandoverItem,
		Props: engine.ConditionProps{
			ID:                   id,
			MaxDurability:        100,
			OnlyFoundInRaid:      m.FoundInRaidOnly,
			Target:               &target,
			Value:                &value,
			VisibilityConditions: []engine.VisibilityCondition{},
		},
	}}
}

func (g *ConditionsGenerator) findItemCondition(m quest.FindItemMission) []engine.Condition {
	if len(m.AcceptedItems) == 0 || m.Count <= 0 {
		g.logger.Warn("find-item mission without items or count skipped",
			zap.String("quest_id", g.quest.ID))
		return nil
	}

	id, ok := MissionConditionID(g.quest.ID, m)
	if !ok {
		return nil
	}

	target := engine.ListTarget(g.items.ExpandItemIDs(m.AcceptedItems)...)
	value := engine.StringValue(m.Count)
	return []engine.Condition{{
		Parent: engine.ConditionFindItem,
		Props: engine.ConditionProps{
			ID:                   id,
			MaxDurability:        100,
			OnlyFoundInRaid:      true,
			Target:               &target,
			Value:                &value,
			VisibilityConditions: []engine.VisibilityCondition{},
		},
	}}
}

// placementCondition handles PlaceItem, PlaceBeacon and PlaceSignalJammer.
// acceptedItems is only meaningful for PlaceItem; the other two plant a
// fixed item.
func (g *ConditionsGenerator) placementCondition(m quest.Mission, zoneID string, plantTime int, acceptedItems []string, needSurvive quest.Text) []engine.Condition {
	mapName, ok := gamedata.ZoneMap(zoneID)
	if !ok {
		g.logger.Error("no valid zone_id provided for placement mission",
			zap.String("quest_id", g.quest.ID),
			zap.String("mission_type", m.Type()),
			zap.String("zone_id", zoneID))
		return nil
	}

	id, ok := MissionConditionID(g.quest.ID, m)
	if !ok {
		return nil
	}

	parent := engine.ConditionPlaceBeacon
	var items []string

	switch m.Type() {
	case quest.TypePlaceBeacon:
		items = []string{gamedata.BeaconItemID}
	case quest.TypePlaceSignalJammer:
		items = []string{gamedata.SignalJammerItemID}
	case quest.TypePlaceItem:
		parent = engine.ConditionLeaveItemAtLocation
		items = g.items.ExpandItemIDs(acceptedItems)
		if len(items) == 0 {
			g.logger.Error("no accepted_items provided for place-item mission",
				zap.String("quest_id", g.quest.ID))
			return nil
		}
	}

	if plantTime <= 0 {
		plantTime = defaultPlantTime
	}

	target := engine.ListTarget(items...)
	value := engine.StringValue(1)
	placement := engine.Condition{
		Parent: parent,
		Props: engine.ConditionProps{
			ID:                   id,
			MaxDurability:        100,
			PlantTime:            plantTime,
			ZoneID:               zoneID,
			Target:               &target,
			Value:                &value,
			VisibilityConditions: []engine.VisibilityCondition{},
		},
	}

	if !needSurvive.Defined() {
		return []engine.Condition{placement}
	}
	return []engine.Condition{placement, exitSurvivalCondition(id, id+"_counter", mapName)}
}

func (g *ConditionsGenerator) visitPlaceCondition(m quest.VisitPlaceMission) []engine.Condition {
	mapName, ok := gamedata.PlaceMap(m.PlaceID)
	if !ok {
		g.logger.Error("no valid place_id provided for visit-place mission",
			zap.String("quest_id", g.quest.ID),
			zap.String("place_id", m.PlaceID))
		return nil
	}

	id, ok := MissionConditionID(g.quest.ID, m)
	if !ok {
		return nil
	}

	value := engine.StringValue(1)
	visit := engine.Condition{
		Parent: engine.ConditionCounterCreator,
		Props: engine.ConditionProps{
			ID: id,
			Counter: &engine.Counter{
				ID: id + "_counter",
				Conditions: []engine.CounterCondition{{
					Parent: engine.ConditionVisitPlace,
					Props: engine.CounterProps{
						ID:     id + "_visit_place",
						Target: engine.SingleTarget(m.PlaceID),
						Value:  "1",
					},
				}},
			},
			OneSessionOnly:       m.OneSessionOnly,
			Type:                 "Exploration",
			Value:                &value,
			VisibilityConditions: []engine.VisibilityCondition{},
		},
	}

	if !m.NeedSurvive.Defined() {
		return []engine.Condition{visit}
	}
	return []engine.Condition{visit, exitSurvivalCondition(id, id+"_exit_counter", mapName)}
}

// exitSurvivalCondition builds the paired "extract alive" counter for
// need-survive missions. It becomes visible only once the gating condition
// completes. oneSessionOnly stays false regardless of the parent mission so
// extraction progress survives across raids.
func exitSurvivalCondition(gateID, counterID, mapName string) engine.Condition {
	value := engine.StringValue(1)
	return engine.Condition{
		Parent: engine.ConditionCounterCreator,
		Props: engine.ConditionProps{
			ID: gateID + "_exit_location",
			Counter: &engine.Counter{
				ID: counterID,
				Conditions: []engine.CounterCondition{
					{
						Parent: engine.ConditionLocation,
						Props: engine.CounterProps{
							ID:     gateID + "_condition_location",
							Target: engine.ListTarget(gamedata.SurvivalExitTargets(mapName)...),
						},
					},
					{
						Parent: engine.ConditionExitStatus,
						Props: engine.CounterProps{
							ID:     gateID + "_condition_exitstatus",
							Target: engine.ListTarget(),
							Status: []string{"Survived", "Runner"},
						},
					},
				},
			},
			Type:  "Completion",
			Value: &value,
			VisibilityConditions: []engine.VisibilityCondition{{
				Parent: engine.ConditionCompleteCondition,
				Props: engine.VisibilityProps{
					ID:     gateID + "_visibility_condition",
					Target: gateID,
				},
			}},
		},
	}
}
