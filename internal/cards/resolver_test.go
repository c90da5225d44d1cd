package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RLAlpha49/AniCards-sub005/internal/domain"
)

var fixturePresets = map[string]domain.Palette{
	"fixture": {
		Title:      domain.FlatColor("#100000"),
		Background: domain.FlatColor("#200000"),
		Text:       domain.FlatColor("#300000"),
		Circle:     domain.FlatColor("#400000"),
	},
}

func TestResolveEffectivePreset(t *testing.T) {
	tests := []struct {
		name     string
		urlParam string
		stored   string
		want     string
	}{
		{name: "url wins over stored", urlParam: "ocean", stored: "sunset", want: "ocean"},
		{name: "stored used when url absent", urlParam: "", stored: "sunset", want: "sunset"},
		{name: "both absent", urlParam: "", stored: "", want: ""},
		{name: "custom from url", urlParam: "custom", stored: "ocean", want: "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveEffectivePreset(tt.urlParam, tt.stored))
		})
	}
}

func TestIsCustomPreset(t *testing.T) {
	assert.True(t, IsCustomPreset("custom"))
	assert.False(t, IsCustomPreset("Custom"))
	assert.False(t, IsCustomPreset(""))
	assert.False(t, IsCustomPreset("default"))
}

func TestPresetColors(t *testing.T) {
	palette, ok := PresetColors(fixturePresets, "fixture")
	assert.True(t, ok)
	assert.Equal(t, domain.FlatColor("#100000"), palette.Title)

	_, ok = PresetColors(fixturePresets, "missing")
	assert.False(t, ok)
}

func TestApplyColors(t *testing.T) {
	base := domain.StoredCardConfig{
		TitleColor:      domain.FlatColor("#aaaaaa"),
		BackgroundColor: domain.FlatColor("#bbbbbb"),
	}

	t.Run("custom keeps existing colors", func(t *testing.T) {
		got := ApplyColors(base, Params{}, "custom", fixturePresets)
		assert.Equal(t, base, got)
	})

	t.Run("custom still honors individual params", func(t *testing.T) {
		got := ApplyColors(base, Params{TitleColor: "#cccccc"}, "custom", fixturePresets)
		assert.Equal(t, domain.FlatColor("#cccccc"), got.TitleColor)
		assert.Equal(t, domain.FlatColor("#bbbbbb"), got.BackgroundColor)
	})

	t.Run("known preset replaces every slot", func(t *testing.T) {
		got := ApplyColors(base, Params{}, "fixture", fixturePresets)
		assert.Equal(t, domain.FlatColor("#100000"), got.TitleColor)
		assert.Equal(t, domain.FlatColor("#200000"), got.BackgroundColor)
		assert.Equal(t, domain.FlatColor("#300000"), got.TextColor)
	})

	t.Run("params override on top of a preset", func(t *testing.T) {
		got := ApplyColors(base, Params{CircleColor: "#999999"}, "fixture", fixturePresets)
		assert.Equal(t, domain.FlatColor("#999999"), got.CircleColor)
		assert.Equal(t, domain.FlatColor("#100000"), got.TitleColor)
	})

	t.Run("unknown preset falls through to params only", func(t *testing.T) {
		got := ApplyColors(base, Params{TextColor: "#dddddd"}, "no-such-preset", fixturePresets)
		assert.Equal(t, domain.FlatColor("#aaaaaa"), got.TitleColor)
		assert.Equal(t, domain.FlatColor("#dddddd"), got.TextColor)
	})

	t.Run("no preset applies params only", func(t *testing.T) {
		got := ApplyColors(base, Params{}, "", fixturePresets)
		assert.Equal(t, base, got)
	})
}
