package cards

import (
	"github.com/RLAlpha49/AniCards-sub005/internal/domain"
	"github.com/RLAlpha49/AniCards-sub005/internal/log"
)

// ResolveEffectivePreset picks the preset name in force for a request.  A URL
// value always wins over the stored one when present.
func ResolveEffectivePreset(urlParam, stored string) string {
	if urlParam != "" {
		return urlParam
	}
	return stored
}

// IsCustomPreset reports whether the resolved preset is the custom sentinel
func IsCustomPreset(name string) bool {
	return name == CustomPreset
}

// PresetColors looks up a named preset.  Unknown names return ok=false rather
// than an error; callers log and fall through to URL-param colors.
func PresetColors(presets map[string]domain.Palette, name string) (domain.Palette, bool) {
	p, ok := presets[name]
	return p, ok
}

// applyPalette returns cfg with all four color slots taken from the palette
func applyPalette(cfg domain.StoredCardConfig, p domain.Palette) domain.StoredCardConfig {
	cfg.TitleColor = p.Title
	cfg.BackgroundColor = p.Background
	cfg.TextColor = p.Text
	cfg.CircleColor = p.Circle
	return cfg
}

// applyColorParams returns cfg with any individually supplied URL colors laid
// over the existing slots.  Absent params leave their slot untouched.
func applyColorParams(cfg domain.StoredCardConfig, p Params) domain.StoredCardConfig {
	if p.TitleColor != "" {
		cfg.TitleColor = domain.FlatColor(p.TitleColor)
	}
	if p.BackgroundColor != "" {
		cfg.BackgroundColor = domain.FlatColor(p.BackgroundColor)
	}
	if p.TextColor != "" {
		cfg.TextColor = domain.FlatColor(p.TextColor)
	}
	if p.CircleColor != "" {
		cfg.CircleColor = domain.FlatColor(p.CircleColor)
	}
	return cfg
}

// ApplyColors resolves the color slots for a config given the effective preset.
//
// Precedence:
//  1. custom preset: the existing colors (stored gradients included) are kept and
//     the preset table is never consulted.  Only explicit per-field URL params may
//     replace individual slots.
//  2. known named preset: all four slots come from the preset, then per-field URL
//     params override on top.
//  3. no preset, or an unknown name: per-field URL params only.
func ApplyColors(cfg domain.StoredCardConfig, p Params, effectivePreset string, presets map[string]domain.Palette) domain.StoredCardConfig {
	if IsCustomPreset(effectivePreset) {
		return applyColorParams(cfg, p)
	}
	if effectivePreset != "" {
		if palette, ok := PresetColors(presets, effectivePreset); ok {
			return applyColorParams(applyPalette(cfg, palette), p)
		}
		log.Warn("Unknown color preset, falling through to URL colors", "preset", effectivePreset)
	}
	return applyColorParams(cfg, p)
}
