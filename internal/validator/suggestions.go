package validator

import (
	"strings"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
)

type suggestion struct {
	keyword string
	text    string
}

var keywordSuggestions = []suggestion{
	{"connectivity", "Increase corridor width or add more connections between rooms"},
	{"boundary", "Ensure level boundaries are properly sealed except for designated exits"},
	{"spawn", "Add more valid spawn points away from walls and hazards"},
	{"room", "Increase minimum room size or add more rooms"},
	{"combat", "Create larger open areas suitable for combat encounters"},
	{"terrain", "Reduce hazardous terrain or ensure enemy types match terrain"},
	{"enemy", "Check enemy spawn positions and ensure they can reach the player"},
	{"portal", "Place the portal on floor that is reachable from the player spawn"},
	{"complexity", "Reduce level complexity by simplifying layout or reducing size"},
}

var styleSuggestions = map[string]suggestion{
	entities.StyleDungeon: {"room", "Dungeon levels should have multiple connected rooms"},
	entities.StyleCave:    {"connectivity", "Cave levels need more natural, winding corridors"},
	entities.StyleOutdoor: {"terrain", "Outdoor levels should have varied but traversable terrain"},
	entities.StyleHybrid:  {"connectivity", "Hybrid levels should join their rooms and caverns with wide passages"},
}

// Suggestions derives fix hints from issue keywords and the level style
func Suggestions(issues []string, style string) []string {
	if len(issues) == 0 {
		return nil
	}
	text := strings.ToLower(strings.Join(issues, " "))

	var out []string
	for _, s := range keywordSuggestions {
		if strings.Contains(text, s.keyword) {
			out = append(out, s.text)
		}
	}
	if s, ok := styleSuggestions[style]; ok && strings.Contains(text, s.keyword) {
		out = append(out, s.text)
	}
	return out
}
