package cards

import (
	"net/url"

	"github.com/RLAlpha49/AniCards-sub005/internal/domain"
)

// TriBool models the "true" / "false" / absent tri-state of boolean URL parameters.
// Absence means "inherit whatever the stored config says".
type TriBool int

const (
	Unset TriBool = iota
	True
	False
)

// ParseTriBool maps the literal strings "true" and "false" to their TriBool values.
// Anything else, including the empty string, is Unset.
func ParseTriBool(s string) TriBool {
	switch s {
	case "true":
		return True
	case "false":
		return False
	}
	return Unset
}

// IsSet reports whether the parameter was explicitly provided
func (b TriBool) IsSet() bool {
	return b != Unset
}

// Bool collapses the tri-state to a plain bool, using fallback when unset
func (b TriBool) Bool(fallback bool) bool {
	switch b {
	case True:
		return true
	case False:
		return false
	}
	return fallback
}

// Ptr returns the explicit value as a *bool, or nil when unset
func (b TriBool) Ptr() *bool {
	switch b {
	case True:
		v := true
		return &v
	case False:
		v := false
		return &v
	}
	return nil
}

// Params holds the card-relevant request parameters.  All fields except CardType
// are optional; empty string means absent.
type Params struct {
	CardType           domain.CardType
	Variation          string
	ColorPreset        string
	TitleColor         string
	BackgroundColor    string
	TextColor          string
	CircleColor        string
	BorderColor        string
	BorderRadius       string
	ShowFavorites      TriBool
	UseStatusColors    TriBool
	ShowPiePercentages TriBool
	GridCols           string
	GridRows           string
}

// ParamsFromQuery extracts card parameters from a request query string
func ParamsFromQuery(cardType string, q url.Values) Params {
	return Params{
		CardType:           domain.CardType(cardType),
		Variation:          q.Get("variation"),
		ColorPreset:        q.Get("colorPreset"),
		TitleColor:         q.Get("titleColor"),
		BackgroundColor:    q.Get("backgroundColor"),
		TextColor:          q.Get("textColor"),
		CircleColor:        q.Get("circleColor"),
		BorderColor:        q.Get("borderColor"),
		BorderRadius:       q.Get("borderRadius"),
		ShowFavorites:      ParseTriBool(q.Get("showFavorites")),
		UseStatusColors:    ParseTriBool(q.Get("useStatusColors")),
		ShowPiePercentages: ParseTriBool(q.Get("showPiePercentages")),
		GridCols:           q.Get("gridCols"),
		GridRows:           q.Get("gridRows"),
	}
}

// hasAllColorParams reports whether every one of the four color slots was
// individually supplied in the URL.
func (p Params) hasAllColorParams() bool {
	return p.TitleColor != "" && p.BackgroundColor != "" && p.TextColor != "" && p.CircleColor != ""
}
