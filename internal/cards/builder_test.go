package cards

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RLAlpha49/AniCards-sub005/internal/domain"
)

func fullColorParams(cardType domain.CardType) Params {
	return Params{
		CardType:        cardType,
		TitleColor:      "#111111",
		BackgroundColor: "#222222",
		TextColor:       "#333333",
		CircleColor:     "#444444",
	}
}

func TestNeedsStoredConfig(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   bool
	}{
		{
			name:   "custom preset always forces a fetch",
			params: Params{CardType: domain.CardAnimeStats, ColorPreset: "custom"},
			want:   true,
		},
		{
			name:   "named preset on a plain card is self-describing",
			params: Params{CardType: domain.CardAnimeStats, ColorPreset: "sunset"},
			want:   false,
		},
		{
			name:   "all four individual colors are self-describing",
			params: fullColorParams(domain.CardAnimeStats),
			want:   false,
		},
		{
			name: "three of four colors is not enough",
			params: Params{
				CardType:        domain.CardAnimeStats,
				TitleColor:      "#111111",
				BackgroundColor: "#222222",
				TextColor:       "#333333",
			},
			want: true,
		},
		{
			name:   "no colors at all",
			params: Params{CardType: domain.CardAnimeStats},
			want:   true,
		},
		{
			name:   "favorites-relevant type without the flag",
			params: Params{CardType: domain.CardAnimeStudios, ColorPreset: "default"},
			want:   true,
		},
		{
			name: "favorites-relevant type with an explicit false",
			params: Params{
				CardType:      domain.CardAnimeStudios,
				ColorPreset:   "default",
				ShowFavorites: False,
			},
			want: false,
		},
		{
			name:   "favorites flag irrelevant for genres card",
			params: Params{CardType: domain.CardAnimeGenres, ColorPreset: "default"},
			want:   false,
		},
		{
			name:   "status card without the status-colors flag",
			params: Params{CardType: domain.CardAnimeStatusDistribution, ColorPreset: "default"},
			want:   true,
		},
		{
			name: "status card with the flag",
			params: Params{
				CardType:        domain.CardMangaStatusDistribution,
				ColorPreset:     "default",
				UseStatusColors: True,
			},
			want: false,
		},
		{
			name: "pie variation without the percentages flag",
			params: Params{
				CardType:        domain.CardAnimeStatusDistribution,
				ColorPreset:     "default",
				Variation:       "pie",
				UseStatusColors: False,
			},
			want: true,
		},
		{
			name: "pie variation with the percentages flag",
			params: Params{
				CardType:           domain.CardAnimeStatusDistribution,
				ColorPreset:        "default",
				Variation:          "pie",
				UseStatusColors:    False,
				ShowPiePercentages: True,
			},
			want: false,
		},
		{
			name:   "favorites grid without dimensions",
			params: Params{CardType: domain.CardFavoritesGrid, ColorPreset: "default"},
			want:   true,
		},
		{
			name: "favorites grid with both dimensions",
			params: Params{
				CardType:    domain.CardFavoritesGrid,
				ColorPreset: "default",
				GridCols:    "3",
				GridRows:    "4",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsStoredConfig(tt.params))
		})
	}
}

// Any card/variant combination whose colors resolve from the URL and whose
// relevant flags are all present must be renderable statelessly, and vice versa.
func TestNeedsStoredConfigCrossProduct(t *testing.T) {
	cardTypes := []domain.CardType{
		domain.CardAnimeStats, domain.CardSocialStats,
		domain.CardAnimeGenres, domain.CardAnimeStudios, domain.CardMangaStaff,
		domain.CardAnimeStatusDistribution, domain.CardMangaStatusDistribution,
		domain.CardAnimeScoreDistribution, domain.CardMangaYearDistribution,
		domain.CardFavoritesGrid,
	}
	variations := []string{"", "default", "horizontal", "pie"}

	for _, cardType := range cardTypes {
		for _, variation := range variations {
			p := fullColorParams(cardType)
			p.Variation = variation
			p.ShowFavorites = False
			p.UseStatusColors = True
			p.ShowPiePercentages = False
			p.GridCols = "3"
			p.GridRows = "3"

			assert.False(t, NeedsStoredConfig(p),
				"fully specified params should not need storage: %s/%s", cardType, variation)

			// Removing colors alone must flip the predicate
			p.TitleColor = ""
			p.BackgroundColor = ""
			p.TextColor = ""
			p.CircleColor = ""
			assert.True(t, NeedsStoredConfig(p),
				"unresolvable colors must need storage: %s/%s", cardType, variation)
		}
	}
}

func TestBuildFromParamsIdempotent(t *testing.T) {
	p := fullColorParams(domain.CardAnimeScoreDistribution)
	p.Variation = "horizontal"
	p.BorderColor = "#555555"
	p.BorderRadius = "12"

	first := BuildFromParams(p, DefaultPresets)
	second := BuildFromParams(p, DefaultPresets)

	assert.Equal(t, first, second)
}

func TestBuildFromParams(t *testing.T) {
	t.Run("named preset fills all slots", func(t *testing.T) {
		p := Params{CardType: domain.CardAnimeStats, ColorPreset: "sunset"}
		cfg := BuildFromParams(p, DefaultPresets)

		assert.Equal(t, "sunset", cfg.ColorPreset)
		assert.Equal(t, domain.FlatColor("#ff7e5f"), cfg.TitleColor)
		assert.Equal(t, domain.FlatColor("#2d1b2e"), cfg.BackgroundColor)
		assert.Equal(t, domain.FlatColor("#feb47b"), cfg.TextColor)
		assert.Equal(t, domain.FlatColor("#ff7e5f"), cfg.CircleColor)
	})

	t.Run("individual params override the preset", func(t *testing.T) {
		p := Params{
			CardType:    domain.CardAnimeStats,
			ColorPreset: "sunset",
			TitleColor:  "#abcdef",
		}
		cfg := BuildFromParams(p, DefaultPresets)

		assert.Equal(t, domain.FlatColor("#abcdef"), cfg.TitleColor)
		assert.Equal(t, domain.FlatColor("#2d1b2e"), cfg.BackgroundColor)
	})

	t.Run("custom preset applies no palette", func(t *testing.T) {
		p := Params{
			CardType:    domain.CardAnimeStats,
			ColorPreset: "custom",
			TitleColor:  "#abcdef",
		}
		cfg := BuildFromParams(p, DefaultPresets)

		assert.Empty(t, cfg.ColorPreset)
		assert.Equal(t, domain.FlatColor("#abcdef"), cfg.TitleColor)
		assert.True(t, cfg.BackgroundColor.IsZero())
	})

	t.Run("variation defaults", func(t *testing.T) {
		cfg := BuildFromParams(Params{CardType: domain.CardAnimeStats}, DefaultPresets)
		assert.Equal(t, "default", cfg.Variation)

		cfg = BuildFromParams(Params{CardType: domain.CardAnimeStats, Variation: "pie"}, DefaultPresets)
		assert.Equal(t, "pie", cfg.Variation)
	})

	t.Run("border radius clamped and bad values ignored", func(t *testing.T) {
		cfg := BuildFromParams(Params{CardType: domain.CardAnimeStats, BorderRadius: "99"}, DefaultPresets)
		require.NotNil(t, cfg.BorderRadius)
		assert.Equal(t, 20, *cfg.BorderRadius)

		cfg = BuildFromParams(Params{CardType: domain.CardAnimeStats, BorderRadius: "lots"}, DefaultPresets)
		assert.Nil(t, cfg.BorderRadius)
	})
}

func TestBuildFromParamsGridClamp(t *testing.T) {
	tests := []struct {
		name     string
		cols     string
		rows     string
		wantCols int
		wantRows int
	}{
		{name: "above upper bound", cols: "7", rows: "3", wantCols: 5, wantRows: 3},
		{name: "below lower bound", cols: "0", rows: "-2", wantCols: 1, wantRows: 1},
		{name: "absent uses defaults", cols: "", rows: "", wantCols: 3, wantRows: 3},
		{name: "unparsable uses defaults", cols: "wide", rows: "2", wantCols: 3, wantRows: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{CardType: domain.CardFavoritesGrid, GridCols: tt.cols, GridRows: tt.rows}
			cfg := BuildFromParams(p, DefaultPresets)

			require.NotNil(t, cfg.GridCols)
			require.NotNil(t, cfg.GridRows)
			assert.Equal(t, tt.wantCols, *cfg.GridCols)
			assert.Equal(t, tt.wantRows, *cfg.GridRows)
		})
	}
}

func TestProcessStored(t *testing.T) {
	radius := 8
	showFavorites := true
	storedRecord := func() *domain.CardsRecord {
		return &domain.CardsRecord{
			UserID: 42,
			Cards: []domain.StoredCardConfig{
				{
					CardName:        string(domain.CardAnimeStudios),
					Variation:       "default",
					ColorPreset:     "ocean",
					TitleColor:      domain.FlatColor("#00b4d8"),
					BackgroundColor: domain.FlatColor("#03045e"),
					TextColor:       domain.FlatColor("#caf0f8"),
					CircleColor:     domain.FlatColor("#90e0ef"),
					BorderRadius:    &radius,
					ShowFavorites:   &showFavorites,
				},
			},
		}
	}
	user := &domain.UserRecord{
		Meta: &domain.UserMeta{ID: 42, Name: "tester"},
		Stats: &domain.StatsPart{User: domain.UserProfile{
			Favourites: domain.Favourites{
				Studios: []domain.FavouriteItem{{Name: "Kyoto Animation"}, {Name: "MAPPA"}},
			},
		}},
	}

	t.Run("missing card is a typed not-found", func(t *testing.T) {
		rec := &domain.CardsRecord{UserID: 42}
		_, err := ProcessStored(rec, Params{CardType: domain.CardAnimeStudios}, user, DefaultPresets)

		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, string(domain.CardAnimeStudios), notFound.CardName)
		assert.Contains(t, notFound.Error(), "regenerate")
	})

	t.Run("stored values survive when no overrides given", func(t *testing.T) {
		res, err := ProcessStored(storedRecord(), Params{CardType: domain.CardAnimeStudios}, user, DefaultPresets)
		require.NoError(t, err)

		assert.Equal(t, "default", res.Variation)
		assert.Equal(t, domain.FlatColor("#00b4d8"), res.Config.TitleColor)
		require.NotNil(t, res.Config.BorderRadius)
		assert.Equal(t, 8, *res.Config.BorderRadius)
		assert.Equal(t, []string{"Kyoto Animation", "MAPPA"}, res.Favorites)
	})

	t.Run("URL overrides layer over the stored baseline", func(t *testing.T) {
		p := Params{
			CardType:      domain.CardAnimeStudios,
			Variation:     "compact",
			TitleColor:    "#ffffff",
			ShowFavorites: False,
		}
		res, err := ProcessStored(storedRecord(), p, user, DefaultPresets)
		require.NoError(t, err)

		assert.Equal(t, "compact", res.Variation)
		assert.Equal(t, domain.FlatColor("#ffffff"), res.Config.TitleColor)
		// Untouched slot keeps the stored value
		assert.Equal(t, domain.FlatColor("#03045e"), res.Config.BackgroundColor)
		// Explicit false suppresses the stored favorites
		assert.Empty(t, res.Favorites)
	})

	t.Run("URL named preset replaces a stored named preset", func(t *testing.T) {
		p := Params{CardType: domain.CardAnimeStudios, ColorPreset: "monochrome"}
		res, err := ProcessStored(storedRecord(), p, user, DefaultPresets)
		require.NoError(t, err)

		assert.Equal(t, domain.FlatColor("#ffffff"), res.Config.TitleColor)
		assert.Equal(t, domain.FlatColor("#000000"), res.Config.BackgroundColor)
	})
}

// Stored custom colors must never be replaced from the preset table, no matter
// which preset name arrives in the URL.
func TestProcessStoredCustomPresetSacrosanct(t *testing.T) {
	gradient := &domain.Gradient{
		Rotation: 45,
		Stops: []domain.GradientStop{
			{Color: "#ff0000", Offset: 0},
			{Color: "#0000ff", Offset: 100},
		},
	}
	rec := &domain.CardsRecord{
		UserID: 7,
		Cards: []domain.StoredCardConfig{
			{
				CardName:        string(domain.CardAnimeScoreDistribution),
				ColorPreset:     "custom",
				TitleColor:      domain.ColorValue{Gradient: gradient},
				BackgroundColor: domain.FlatColor("#101010"),
				TextColor:       domain.FlatColor("#efefef"),
				CircleColor:     domain.FlatColor("#ab47bc"),
			},
		},
	}
	user := &domain.UserRecord{Meta: &domain.UserMeta{ID: 7, Name: "tester"}}

	for preset := range DefaultPresets {
		p := Params{CardType: domain.CardAnimeScoreDistribution, ColorPreset: preset}
		res, err := ProcessStored(rec, p, user, DefaultPresets)
		require.NoError(t, err)

		assert.Equal(t, gradient, res.Config.TitleColor.Gradient, "preset %q must not replace custom colors", preset)
		assert.Equal(t, domain.FlatColor("#101010"), res.Config.BackgroundColor)
		assert.Equal(t, domain.FlatColor("#efefef"), res.Config.TextColor)
		assert.Equal(t, domain.FlatColor("#ab47bc"), res.Config.CircleColor)
	}

	t.Run("individual params still override custom slots", func(t *testing.T) {
		p := Params{
			CardType:    domain.CardAnimeScoreDistribution,
			ColorPreset: "default",
			TextColor:   "#00ff00",
		}
		res, err := ProcessStored(rec, p, user, DefaultPresets)
		require.NoError(t, err)

		assert.Equal(t, domain.FlatColor("#00ff00"), res.Config.TextColor)
		assert.Equal(t, gradient, res.Config.TitleColor.Gradient)
	})
}

func TestParamsFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set("variation", "pie")
	q.Set("colorPreset", "ocean")
	q.Set("showFavorites", "true")
	q.Set("useStatusColors", "false")
	q.Set("showPiePercentages", "TRUE") // not the exact literal, treated as absent
	q.Set("gridCols", "4")

	p := ParamsFromQuery("animeStatusDistribution", q)

	assert.Equal(t, domain.CardAnimeStatusDistribution, p.CardType)
	assert.Equal(t, "pie", p.Variation)
	assert.Equal(t, "ocean", p.ColorPreset)
	assert.Equal(t, True, p.ShowFavorites)
	assert.Equal(t, False, p.UseStatusColors)
	assert.Equal(t, Unset, p.ShowPiePercentages)
	assert.Equal(t, "4", p.GridCols)
}

func TestTriBool(t *testing.T) {
	assert.Equal(t, True, ParseTriBool("true"))
	assert.Equal(t, False, ParseTriBool("false"))
	assert.Equal(t, Unset, ParseTriBool(""))
	assert.Equal(t, Unset, ParseTriBool("1"))

	assert.True(t, True.Bool(false))
	assert.False(t, False.Bool(true))
	assert.True(t, Unset.Bool(true))

	assert.Nil(t, Unset.Ptr())
	require.NotNil(t, True.Ptr())
	assert.True(t, *True.Ptr())
}
