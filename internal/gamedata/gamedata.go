// Package gamedata maps authoring-time aliases (trader names, human map
// names, zone and place ids) onto the host engine's canonical identifiers.
package gamedata

import "strings"

// Item template ids planted by the fixed placement mission variants.
const (
	BeaconItemID       = "5991b51486f77447b112d44f"
	SignalJammerItemID = "5ac78a9b86f7741cca0bbd8d"
)

// AnyLocation is the wildcard that suppresses location restrictions.
const AnyLocation = "any"

var traderAliases = map[string]string{
	"prapor":      "54cb50c76803fa8b248b4571",
	"therapist":   "54cb57776803fa99248b456e",
	"fence":       "579dc571d53a0658a154fbec",
	"skier":       "58330581ace78e27b8b10cee",
	"peacekeeper": "5935c25fb3acc3127c3d8cd9",
	"mechanic":    "5a7c2eca46aef81a7ca2145d",
	"ragman":      "5ac3b934156ae10c4430e83c",
	"jaeger":      "5c0647fdd443bc2504c2d371",
}

var descriptiveLocationAliases = map[string]string{
	"bigmap":      "56f40101d2720b2a4d8b45d6",
	"customs":     "56f40101d2720b2a4d8b45d6",
	"factory":     "55f2d3fd4bdc2d5f408b4567",
	"interchange": "5714dbc024597771384a510d",
	"laboratory":  "5b0fc42d86f7744a585f9105",
	"labs":        "5b0fc42d86f7744a585f9105",
	"lighthouse":  "5704e4dad2720bb55b8b4567",
	"rezervbase":  "5704e5fad2720bc05b8b4567",
	"reserve":     "5704e5fad2720bc05b8b4567",
	"shoreline":   "5704e554d2720bac5b8b456e",
	"woods":       "5704e3c2d2720bac5b8b4567",
}

// locationAliases expands a human map alias into one or more engine map keys.
var locationAliases = map[string][]string{
	"factory":     {"factory4_day", "factory4_night"},
	"customs":     {"bigmap"},
	"reserve":     {"RezervBase"},
	"labs":        {"laboratory"},
	"woods":       {"Woods"},
	"shoreline":   {"Shoreline"},
	"interchange": {"Interchange"},
	"lighthouse":  {"Lighthouse"},
}

// zonesByMap lists the plantable/leave-item zone ids of each map.
var zonesByMap = map[string][]string{
	"bigmap": {
		"case_extraction",
		"quest_zone_delivery",
		"quest_container_place",
		"prapor_27_1",
		"prapor_27_2",
		"prapor_hq_area_check_1",
	},
	"factory4_day": {
		"quest_zone_place_flash_1",
		"quest_zone_place_flash_2",
	},
	"Interchange": {
		"quest_zone_place_ulu",
		"quest_zone_place_oli1",
		"quest_zone_place_oli2",
	},
	"laboratory": {
		"lab_place_blood_1",
		"lab_place_blood_2",
	},
	"Lighthouse": {
		"quest_zone_place_mech_lh1",
		"quest_zone_place_mech_lh2",
	},
	"RezervBase": {
		"quest_zone_place_pacemaker_1",
		"quest_zone_place_pacemaker_2",
	},
	"Shoreline": {
		"place_pacemaker_SCOUT_01",
		"place_pacemaker_SCOUT_02",
		"place_SADOVOD_01",
		"place_SADOVOD_02",
	},
	"Woods": {
		"place_peacemaker_001",
		"place_flash_keeper_2",
	},
}

// placesByMap lists the visit-place trigger ids of each map.
var placesByMap = map[string][]string{
	"bigmap": {
		"gazel",
		"baraban",
		"qlight_extraction",
	},
	"factory4_day": {
		"th_ext",
	},
	"Interchange": {
		"EXFIL_Interchange",
	},
	"Lighthouse": {
		"terragroup_lab_entrance",
	},
	"RezervBase": {
		"station_ext",
	},
	"Shoreline": {
		"tunnel_shared",
		"pier_exit",
	},
	"Woods": {
		"woods_old_station",
	},
}

var (
	zoneToMap  = invert(zonesByMap)
	placeToMap = invert(placesByMap)
)

func invert(byMap map[string][]string) map[string]string {
	out := make(map[string]string)
	for mapName, ids := range byMap {
		for _, id := range ids {
			out[id] = mapName
		}
	}
	return out
}

// TraderID resolves a trader alias (case-insensitively) to its canonical id.
// Unknown values pass through unchanged and are treated as raw trader ids.
func TraderID(aliasOrID string) string {
	if id, ok := traderAliases[strings.ToLower(aliasOrID)]; ok {
		return id
	}
	return aliasOrID
}

// DescriptiveLocationID resolves a descriptive-location alias to the engine
// location id. Unknown values pass through unchanged.
func DescriptiveLocationID(aliasOrID string) string {
	if id, ok := descriptiveLocationAliases[strings.ToLower(aliasOrID)]; ok {
		return id
	}
	return aliasOrID
}

// ZoneMap returns the map a plant zone belongs to.
func ZoneMap(zoneID string) (string, bool) {
	m, ok := zoneToMap[zoneID]
	return m, ok
}

// PlaceMap returns the map a visit place belongs to.
func PlaceMap(placeID string) (string, bool) {
	m, ok := placeToMap[placeID]
	return m, ok
}

// ExpandLocations expands human map aliases into engine map keys. Already
// canonical entries pass through unchanged, so expansion is idempotent.
func ExpandLocations(locations []string) []string {
	var out []string
	for _, loc := range locations {
		if expanded, ok := locationAliases[loc]; ok {
			out = append(out, expanded...)
		} else {
			out = append(out, loc)
		}
	}
	return out
}

// Unrestricted reports whether a location list means "no location
// restriction": an empty list or any entry equal to the wildcard.
func Unrestricted(locations []string) bool {
	if len(locations) == 0 {
		return true
	}
	for _, loc := range locations {
		if loc == AnyLocation {
			return true
		}
	}
	return false
}

// SurvivalExitTargets returns the maps an exit-survival counter must match
// for a mission on mapName. Factory runs split into day and night variants.
func SurvivalExitTargets(mapName string) []string {
	if mapName == "factory" || mapName == "factory4_day" || mapName == "factory4_night" {
		return []string{"factory4_day", "factory4_night"}
	}
	return []string{mapName}
}
