// Package level maps lifetime check-in counts to named progression tiers.
package level

// Level is one tier of the progression roadmap. Min is the lifetime check-in
// count required; RoutineMin additionally gates the top tiers on completed
// routines.
type Level struct {
	Name       string `json:"name"`
	Min        int    `json:"min"`
	RoutineMin int    `json:"routine_min,omitempty"`
	Color      string `json:"color"`
	Icon       string `json:"icon"`
	Desc       string `json:"desc"`
}

// Levels is the fixed threshold table, ascending.
var Levels = []Level{
	{Name: "Seed", Min: 0, Color: "#A8D5BA", Icon: "🌱", Desc: "Just planted, the very first check-ins"},
	{Name: "Sprout", Min: 4, Color: "#77DD77", Icon: "🌿", Desc: "Past the three-day hump"},
	{Name: "Bloom", Min: 11, Color: "#FFB7B2", Icon: "🌸", Desc: "Habits starting to flower"},
	{Name: "Neon", Min: 26, RoutineMin: 2, Color: "#00F3FF", Icon: "⚡", Desc: "Radiating steady routine energy"},
	{Name: "Master", Min: 51, RoutineMin: 4, Color: "#FFD046", Icon: "👑", Desc: "Routine has become the life itself"},
}

// ForCount returns the highest tier whose thresholds are met by the given
// lifetime check-in count and completed-routine count.
func ForCount(checkIns, completedRoutines int) Level {
	current := Levels[0]
	for _, l := range Levels {
		if checkIns >= l.Min && completedRoutines >= l.RoutineMin {
			current = l
		}
	}
	return current
}

// Next returns the tier after current, or false when current is the top tier.
func Next(current Level) (Level, bool) {
	for i, l := range Levels {
		if l.Name == current.Name && i+1 < len(Levels) {
			return Levels[i+1], true
		}
	}
	return Level{}, false
}
