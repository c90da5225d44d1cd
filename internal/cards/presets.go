package cards

import "github.com/RLAlpha49/AniCards-sub005/internal/domain"

// CustomPreset is the sentinel preset name meaning "use the explicitly stored or
// overridden colors, including gradients".  It bypasses the named preset table.
const CustomPreset = "custom"

// DefaultPresets is the built-in named palette table.  Resolver functions take the
// table as an argument so tests can substitute fixture sets.
var DefaultPresets = map[string]domain.Palette{
	"default": {
		Title:      domain.FlatColor("#fe428e"),
		Background: domain.FlatColor("#141321"),
		Text:       domain.FlatColor("#a9fef7"),
		Circle:     domain.FlatColor("#fe428e"),
	},
	"anilistLight": {
		Title:      domain.FlatColor("#3cc8ff"),
		Background: domain.FlatColor("#fafafa"),
		Text:       domain.FlatColor("#333333"),
		Circle:     domain.FlatColor("#3cc8ff"),
	},
	"anilistDark": {
		Title:      domain.FlatColor("#3cc8ff"),
		Background: domain.FlatColor("#0b1622"),
		Text:       domain.FlatColor("#bfc7d5"),
		Circle:     domain.FlatColor("#3cc8ff"),
	},
	"sunset": {
		Title:      domain.FlatColor("#ff7e5f"),
		Background: domain.FlatColor("#2d1b2e"),
		Text:       domain.FlatColor("#feb47b"),
		Circle:     domain.FlatColor("#ff7e5f"),
	},
	"ocean": {
		Title:      domain.FlatColor("#00b4d8"),
		Background: domain.FlatColor("#03045e"),
		Text:       domain.FlatColor("#caf0f8"),
		Circle:     domain.FlatColor("#90e0ef"),
	},
	"forest": {
		Title:      domain.FlatColor("#95d5b2"),
		Background: domain.FlatColor("#081c15"),
		Text:       domain.FlatColor("#d8f3dc"),
		Circle:     domain.FlatColor("#52b788"),
	},
	"monochrome": {
		Title:      domain.FlatColor("#ffffff"),
		Background: domain.FlatColor("#000000"),
		Text:       domain.FlatColor("#c0c0c0"),
		Circle:     domain.FlatColor("#ffffff"),
	},
}
