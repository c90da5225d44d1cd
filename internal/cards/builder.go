package cards

import (
	"fmt"
	"strconv"

	"github.com/RLAlpha49/AniCards-sub005/internal/domain"
	"github.com/RLAlpha49/AniCards-sub005/internal/log"
)

// Clamp bounds for the optional layout fields
const (
	MinBorderRadius = 0
	MaxBorderRadius = 20
	MinGridDim      = 1
	MaxGridDim      = 5
	DefaultGridDim  = 3
)

// NotFoundError indicates a card configuration is absent from the user's stored
// card list.  It is a recoverable, user-facing condition: the card needs to be
// regenerated, not a server failure.
type NotFoundError struct {
	CardName string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("card config %q not found, please regenerate the card", e.CardName)
}

// Resolved is the output of config resolution: the effective configuration, the
// variation to render, and the favorites list when the card shows one.
type Resolved struct {
	Config    domain.StoredCardConfig
	Variation string
	Favorites []string
}

// NeedsStoredConfig decides whether a request can be satisfied from its URL
// parameters alone, or whether the stored configuration must be loaded and merged.
//
// A stored config is required when:
//   - the custom preset is requested (its colors live only in storage),
//   - colors are not fully resolvable from the URL (no named non-custom preset
//     and not all four individual color params present),
//   - a boolean flag or grid dimension relevant to the requested card/variant is
//     absent from the URL.
//
// Returning false enables the stateless path for shareable card URLs.
func NeedsStoredConfig(p Params) bool {
	if IsCustomPreset(p.ColorPreset) {
		return true
	}

	colorsResolvable := (p.ColorPreset != "" && !IsCustomPreset(p.ColorPreset)) || p.hasAllColorParams()
	if !colorsResolvable {
		return true
	}

	if p.CardType.FavoritesRelevant() && !p.ShowFavorites.IsSet() {
		return true
	}
	if p.CardType.StatusColorsRelevant() && !p.UseStatusColors.IsSet() {
		return true
	}
	if p.Variation == "pie" && !p.ShowPiePercentages.IsSet() {
		return true
	}
	if p.CardType == domain.CardFavoritesGrid && (p.GridCols == "" || p.GridRows == "") {
		return true
	}

	return false
}

// BuildFromParams constructs a complete card config purely from request
// parameters, with no storage lookup.  Callers should gate on NeedsStoredConfig.
//
// A custom preset without a stored config has no colors to draw from, so only
// individual URL color params apply on that path.
func BuildFromParams(p Params, presets map[string]domain.Palette) domain.StoredCardConfig {
	cfg := domain.StoredCardConfig{
		CardName:  string(p.CardType),
		Variation: domain.DefaultVariation,
	}
	if p.Variation != "" {
		cfg.Variation = p.Variation
	}

	cfg = ApplyColors(cfg, p, p.ColorPreset, presets)
	if p.ColorPreset != "" && !IsCustomPreset(p.ColorPreset) {
		cfg.ColorPreset = p.ColorPreset
	}
	cfg = applyBorderParams(cfg, p)

	if p.CardType == domain.CardFavoritesGrid {
		cols := clampGridDim(p.GridCols)
		rows := clampGridDim(p.GridRows)
		cfg.GridCols = &cols
		cfg.GridRows = &rows
	}

	cfg = applyBooleanParams(cfg, p, cfg.Variation)
	return cfg
}

// ProcessStored resolves a card against the user's stored configuration.  The
// stored config is the baseline; any field not explicitly overridden by the URL
// keeps its previously saved value.
func ProcessStored(rec *domain.CardsRecord, p Params, user *domain.UserRecord, presets map[string]domain.Palette) (*Resolved, error) {
	stored := rec.Find(string(p.CardType))
	if stored == nil {
		return nil, &NotFoundError{CardName: string(p.CardType)}
	}

	cfg := *stored

	variation := domain.DefaultVariation
	if cfg.Variation != "" {
		variation = cfg.Variation
	}
	if p.Variation != "" {
		variation = p.Variation
	}
	cfg.Variation = variation

	effectivePreset := ResolveEffectivePreset(p.ColorPreset, stored.ColorPreset)
	if IsCustomPreset(stored.ColorPreset) {
		// Stored custom colors are sacrosanct; a named preset in the URL must
		// not replace them.  Individual color params still apply.
		effectivePreset = CustomPreset
	}
	cfg = ApplyColors(cfg, p, effectivePreset, presets)
	cfg = applyBorderParams(cfg, p)

	if p.CardType == domain.CardFavoritesGrid {
		if p.GridCols != "" {
			cols := clampGridDim(p.GridCols)
			cfg.GridCols = &cols
		}
		if p.GridRows != "" {
			rows := clampGridDim(p.GridRows)
			cfg.GridRows = &rows
		}
	}

	cfg = applyBooleanParams(cfg, p, variation)

	res := &Resolved{Config: cfg, Variation: variation}

	if p.CardType.FavoritesRelevant() {
		showFavorites := false
		if stored.ShowFavorites != nil {
			showFavorites = *stored.ShowFavorites
		}
		showFavorites = p.ShowFavorites.Bool(showFavorites)
		if showFavorites {
			res.Favorites = FavoriteNames(p.CardType, user)
		}
	}

	return res, nil
}

// applyBorderParams lays the border URL params over cfg.  An unparsable radius is
// ignored rather than failing the request.
func applyBorderParams(cfg domain.StoredCardConfig, p Params) domain.StoredCardConfig {
	if p.BorderColor != "" {
		cfg.BorderColor = p.BorderColor
	}
	if p.BorderRadius != "" {
		if r, err := strconv.Atoi(p.BorderRadius); err == nil {
			r = clampInt(r, MinBorderRadius, MaxBorderRadius)
			cfg.BorderRadius = &r
		} else {
			log.Warn("Ignoring unparsable borderRadius param", "value", p.BorderRadius)
		}
	}
	return cfg
}

// applyBooleanParams applies the tri-state boolean overrides.  Favorites is set
// whenever explicitly provided; status colors only apply to the two status
// distribution card types; pie percentages only when the effective variation is
// exactly "pie".
func applyBooleanParams(cfg domain.StoredCardConfig, p Params, variation string) domain.StoredCardConfig {
	if v := p.ShowFavorites.Ptr(); v != nil {
		cfg.ShowFavorites = v
	}
	if p.CardType.StatusColorsRelevant() {
		if v := p.UseStatusColors.Ptr(); v != nil {
			cfg.UseStatusColors = v
		}
	}
	if variation == "pie" {
		if v := p.ShowPiePercentages.Ptr(); v != nil {
			cfg.ShowPiePercentages = v
		}
	}
	return cfg
}

// FavoriteNames maps the user's favourites through the per-card-type category
func FavoriteNames(t domain.CardType, user *domain.UserRecord) []string {
	if user == nil || user.Stats == nil {
		return nil
	}
	fav := user.Stats.User.Favourites

	var items []domain.FavouriteItem
	switch t {
	case domain.CardAnimeStudios:
		items = fav.Studios
	case domain.CardAnimeVoiceActors, domain.CardAnimeStaff, domain.CardMangaStaff:
		items = fav.Staff
	default:
		return nil
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

func clampGridDim(s string) int {
	if s == "" {
		return DefaultGridDim
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return DefaultGridDim
	}
	return clampInt(v, MinGridDim, MaxGridDim)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
