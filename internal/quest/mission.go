package quest

import (
	"encoding/json"
	"fmt"
)

// Mission type tags as they appear in authored quest files.
const (
	TypeKill              = "Kill"
	TypeGiveItem          = "GiveItem"
	TypeFindItem          = "FindItem"
	TypePlaceItem         = "PlaceItem"
	TypePlaceBeacon       = "PlaceBeacon"
	TypePlaceSignalJammer = "PlaceSignalJammer"
	TypeVisitPlace        = "VisitPlace"
)

// Mission is one authored sub-objective of a custom quest. It is a closed
// set of variants; the condition generator switches exhaustively over them
// and treats anything else as a non-fatal skip.
type Mission interface {
	// Type returns the authoring type tag.
	Type() string
	// Message returns the mission's display message.
	Message() Text

	sealed()
}

// KillMission asks the player to kill count targets, optionally restricted
// by location and weapon.
type KillMission struct {
	Target         string
	Locations      []string
	Weapons        []string
	OneSessionOnly bool
	Count          int
	Msg            Text
}

// GiveItemMission asks the player to hand over count of any accepted item.
type GiveItemMission struct {
	AcceptedItems   []string
	Count           int
	FoundInRaidOnly bool
	Msg             Text
}

// FindItemMission asks the player to obtain count of any accepted item
// in-raid.
type FindItemMission struct {
	AcceptedItems []string
	Count         int
	Msg           Text
}

// PlaceItemMission asks the player to leave an accepted item in a zone.
type PlaceItemMission struct {
	AcceptedItems  []string
	ZoneID         string
	PlantTime      int
	NeedSurvive    Text
	OneSessionOnly bool
	Msg            Text
}

// PlaceBeaconMission asks the player to plant a beacon in a zone.
type PlaceBeaconMission struct {
	ZoneID         string
	PlantTime      int
	NeedSurvive    Text
	OneSessionOnly bool
	Msg            Text
}

// PlaceSignalJammerMission asks the player to plant a signal jammer in a
// zone.
type PlaceSignalJammerMission struct {
	ZoneID         string
	PlantTime      int
	NeedSurvive    Text
	OneSessionOnly bool
	Msg            Text
}

// VisitPlaceMission asks the player to reach a place.
type VisitPlaceMission struct {
	PlaceID        string
	NeedSurvive    Text
	OneSessionOnly bool
	Msg            Text
}

// UnknownMission preserves a mission whose type tag is not recognised.
// Decoding keeps it so the generator can log and skip it instead of failing
// the whole quest file.
type UnknownMission struct {
	TypeTag string
}

func (m KillMission) Type() string              { return TypeKill }
func (m GiveItemMission) Type() string          { return TypeGiveItem }
func (m FindItemMission) Type() string          { return TypeFindItem }
func (m PlaceItemMission) Type() string         { return TypePlaceItem }
func (m PlaceBeaconMission) Type() string       { return TypePlaceBeacon }
func (m PlaceSignalJammerMission) Type() string { return TypePlaceSignalJammer }
func (m VisitPlaceMission) Type() string        { return TypeVisitPlace }
func (m UnknownMission) Type() string           { return m.TypeTag }

func (m KillMission) Message() Text              { return m.Msg }
func (m GiveItemMission) Message() Text          { return m.Msg }
func (m FindItemMission) Message() Text          { return m.Msg }
func (m PlaceItemMission) Message() Text         { return m.Msg }
func (m PlaceBeaconMission) Message() Text       { return m.Msg }
func (m PlaceSignalJammerMission) Message() Text { return m.Msg }
func (m VisitPlaceMission) Message() Text        { return m.Msg }
func (m UnknownMission) Message() Text           { return Text{} }

func (KillMission) sealed()              {}
func (GiveItemMission) sealed()          {}
func (FindItemMission) sealed()          {}
func (PlaceItemMission) sealed()         {}
func (PlaceBeaconMission) sealed()       {}
func (PlaceSignalJammerMission) sealed() {}
func (VisitPlaceMission) sealed()        {}
func (UnknownMission) sealed()           {}

// SurvivalText returns the mission's need-survive message and whether the
// mission carries one.
func SurvivalText(m Mission) (Text, bool) {
	switch v := m.(type) {
	case PlaceItemMission:
		return v.NeedSurvive, v.NeedSurvive.Defined()
	case PlaceBeaconMission:
		return v.NeedSurvive, v.NeedSurvive.Defined()
	case PlaceSignalJammerMission:
		return v.NeedSurvive, v.NeedSurvive.Defined()
	case VisitPlaceMission:
		return v.NeedSurvive, v.NeedSurvive.Defined()
	}
	return Text{}, false
}

// locationList accepts either a single location string or a list.
type locationList []string

func (l *locationList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = locationList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("locations is neither string nor string list: %w", err)
	}
	*l = locationList(many)
	return nil
}

// missionWire is the superset of authored mission fields; the type tag
// selects which are meaningful.
type missionWire struct {
	Type            string       `json:"type"`
	Target          string       `json:"target"`
	Locations       locationList `json:"locations"`
	Weapons         []string     `json:"weapons"`
	OneSessionOnly  bool         `json:"one_session_only"`
	Count           *int         `json:"count"`
	AcceptedItems   []string     `json:"accepted_items"`
	FoundInRaidOnly bool         `json:"found_in_raid_only"`
	ZoneID          string       `json:"zone_id"`
	PlantTime       int          `json:"plant_time"`
	PlaceID         string       `json:"place_id"`
	NeedSurvive     Text         `json:"need_survive"`
	Message         Text         `json:"message"`
}

// Missions decodes a mission list, mapping each entry to its variant by type
// tag. Unrecognised tags decode to UnknownMission.
type Missions []Mission

func (ms *Missions) UnmarshalJSON(data []byte) error {
	var wires []missionWire
	if err := json.Unmarshal(data, &wires); err != nil {
		return fmt.Errorf("decoding missions: %w", err)
	}

	out := make(Missions, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toMission())
	}
	*ms = out
	return nil
}

func (w missionWire) toMission() Mission {
	count := 1
	if w.Count != nil {
		count = *w.Count
	}

	switch w.Type {
	case TypeKill:
		return KillMission{
			Target:         w.Target,
			Locations:      []string(w.Locations),
			Weapons:        w.Weapons,
			OneSessionOnly: w.OneSessionOnly,
			Count:          count,
			Msg:            w.Message,
		}
	case TypeGiveItem:
		return GiveItemMission{
			AcceptedItems:   w.AcceptedItems,
			Count:           count,
			FoundInRaidOnly: w.FoundInRaidOnly,
			Msg:             w.Message,
		}
	case TypeFindItem:
		return FindItemMission{
			AcceptedItems: w.AcceptedItems,
			Count:         count,
			Msg:           w.Message,
		}
	case TypePlaceItem:
		return PlaceItemMission{
			AcceptedItems:  w.AcceptedItems,
			ZoneID:         w.ZoneID,
			PlantTime:      w.PlantTime,
			NeedSurvive:    w.NeedSurvive,
			OneSessionOnly: w.OneSessionOnly,
			Msg:            w.Message,
		}
	case TypePlaceBeacon:
		return PlaceBeaconMission{
			ZoneID:         w.ZoneID,
			PlantTime:      w.PlantTime,
			NeedSurvive:    w.NeedSurvive,
			OneSessionOnly: w.OneSessionOnly,
			Msg:            w.Message,
		}
	case TypePlaceSignalJammer:
		return PlaceSignalJammerMission{
			ZoneID:         w.ZoneID,
			PlantTime:      w.PlantTime,
			NeedSurvive:    w.NeedSurvive,
			OneSessionOnly: w.OneSessionOnly,
			Msg:            w.Message,
		}
	case TypeVisitPlace:
		return VisitPlaceMission{
			PlaceID:        w.PlaceID,
			NeedSurvive:    w.NeedSurvive,
			OneSessionOnly: w.OneSessionOnly,
			Msg:            w.Message,
		}
	}
	return UnknownMission{TypeTag: w.Type}
}
