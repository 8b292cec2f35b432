// Package cosmos provides the static mission catalogs and scenario generation.
// Every table here is process-wide constant data: the simulation only ever
// reads it.
package cosmos

import "strings"

// StatDelta is a species' one-time additive adjustment to base stats.
type StatDelta struct {
	Strength     int
	Empathy      int
	Intelligence int
	Mobility     int
	Tactical     int
}

// SpeciesModifiers maps species name to its stat adjustment, applied once
// at squad construction and clamped by the stats type.
var SpeciesModifiers = map[string]StatDelta{
	"Vyr'khai":   {Strength: 6, Empathy: -2, Intelligence: 0, Mobility: 4, Tactical: 5},
	"Lumenari":   {Strength: 1, Empathy: 8, Intelligence: 4, Mobility: 1, Tactical: 1},
	"Zephryl":    {Strength: 1, Empathy: 1, Intelligence: 3, Mobility: 8, Tactical: 3},
	"Mycelian":   {Strength: -1, Empathy: 6, Intelligence: 6, Mobility: -1, Tactical: 2},
	"Ferroth":    {Strength: 8, Empathy: -3, Intelligence: 2, Mobility: -2, Tactical: 4},
	"Aetherborn": {Strength: 9, Empathy: 2, Intelligence: 8, Mobility: 7, Tactical: 4},
	"Kinetari":   {Strength: 5, Empathy: 1, Intelligence: 4, Mobility: 7, Tactical: 5},
	"Verdan":     {Strength: 3, Empathy: 2, Intelligence: 5, Mobility: 1, Tactical: 7},
}

// RoleDescriptions maps each known role to its flavor description.
var RoleDescriptions = map[string]string{
	"Longsight":         "Marksman from the Vyr'khai star-clans",
	"Lifebinder":        "Medic-priest of the Lumenari bioconclave",
	"Specter":           "Recon shade of the Zephryl drift",
	"Whisper":           "Diplomat-chorus from the Mycelian hegemony",
	"Archivist":         "Sentient archive node of the Ferroth lattice",
	"Brawler":           "Hand-to-hand combat specialist",
	"Armsmaster":        "Weapons specialist",
	"Explosives Expert": "Specialist in demolition and ordnance",
}

// Galaxies lists the mission theatres.
var Galaxies = []string{
	"Andromeda (M31)", "Triangulum (M33)", "Sombrero (M104)", "Whirlpool (M51)",
	"Sagittarius Dwarf", "Large Magellanic Cloud", "Nyx Halo", "Aetheric Veil",
	"Kijani Spiral", "Umbral Reef", "Karibu Vortex", "Centaurus A", "Messier 81",
	"Sculptor Galaxy", "Fornax Cluster", "Perseus Cluster", "Coma Cluster",
}

// Terrains lists the nine terrain types.
var Terrains = []string{
	"Urban Lattice", "Desert Glass", "Ice Ridge", "Oceanic Platforms",
	"Jungle Canopy", "Volcanic Spires", "Acidic Swamps", "Crystal Caves",
	"Floating Islands",
}

// WeatherConditions lists the nine weather types.
var WeatherConditions = []string{
	"Clear", "Ion Storm", "Radiation Flare", "Sandstorm", "Cryo Blizzards",
	"Plasma Rain", "Gravity Eddies", "Sonic Winds", "Magnetic Anomalies",
}

// ScenarioKeys are the discrete states of the Q-table, in table row order.
// Each key is a substring of exactly one narrative template below.
var ScenarioKeys = []string{"magnetar", "xenofauna", "pirate", "ocean", "schism"}

// Narratives are the scenario templates, index-aligned with ScenarioKeys.
var Narratives = []string{
	"Refugee flotilla near a magnetar; containment fields failing.",
	"Xenofauna stampede through crystalline corridors; civilians trapped.",
	"Pirate corsairs blockading stargate; reactor leaks destabilising transit.",
	"Planetary ocean rising after moon-shear; bio-domes at risk.",
	"Clan schism; peace-talks collapsing on neutral ring-station.",
}

// BanterLines holds flavor lines per role for the mission log.
var BanterLines = map[string][]string{
	"Longsight": {
		"Vacuum steady. Pulse steadier.",
		"Line held. Regrets pending.",
		"One pulse—one ending—preferably not ours.",
	},
	"Lifebinder": {
		"Biofield humming. Statistics declining.",
		"If it bleeds, I can stabilise it.",
		"Life prefers cooperation; let's oblige.",
	},
	"Specter": {
		"Ghost-walk engaged. Doors where walls used to be.",
		"Paths mapped. Shadows compliant.",
		"Seen and unseen are tactical categories.",
	},
	"Whisper": {
		"Words first, wounds last.",
		"Lower the heat; raise the harmony.",
		"Consent acquired. Conflict retired.",
	},
	"Archivist": {
		"Recording. Remembering. History has teeth.",
		"Truth cached. Lies quarantined.",
		"Ethics subroutines purring. Do better.",
	},
	"Brawler": {
		"Close quarters. Good.",
		"My hands are registered weapons.",
		"Less talk, more impact.",
	},
	"Armsmaster": {
		"Ordnance prepped.",
		"Picking the right tool for the job.",
		"Let the weapon do the talking.",
	},
	"Explosives Expert": {
		"Charge set. Stand clear.",
		"Demolitions are a delicate art.",
		"Making exits where there weren't any.",
	},
}

// planetSyllables feed procedural planet name generation.
var planetSyllables = []string{
	"ka", "ru", "sha", "vel", "dra", "tor", "my", "cel", "lum", "vyr",
	"fer", "ze", "phy", "ae", "ki", "ja", "ni", "um", "bral", "xon",
	"lyr", "qel", "zix", "vok", "nar", "pyl", "cre", "dax", "jyn",
}

// ScenarioIndex maps a narrative to its Q-table row by matching scenario
// keys against the lowered text. Returns false when no key matches, which
// sends callers down the rule-based path.
func ScenarioIndex(narrative string) (int, bool) {
	lower := strings.ToLower(narrative)
	for i, key := range ScenarioKeys {
		if strings.Contains(lower, key) {
			return i, true
		}
	}
	return 0, false
}
