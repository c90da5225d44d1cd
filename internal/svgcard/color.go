package svgcard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/RLAlpha49/AniCards-sub005/internal/domain"
)

// Fallback colors for slots left unset by the configuration.  A custom preset
// resolved without a stored config can legitimately arrive here with blank slots.
const (
	fallbackTitle      = "#fe428e"
	fallbackBackground = "#141321"
	fallbackText       = "#a9fef7"
	fallbackCircle     = "#fe428e"
)

// Flat paint values flow from URL parameters into the <style> block and into
// fill/stroke attributes, where markup escaping alone cannot help (CSS is not
// XML).  Anything that is not a plain CSS color is discarded.
var (
	hexColorPattern  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColorPattern = regexp.MustCompile(`^(?:rgb|rgba|hsl|hsla)\([0-9.,%\s]+\)$`)
	nameColorPattern = regexp.MustCompile(`^[a-zA-Z]+$`)
)

// SafeColor reports whether s parses as a plain CSS color value: hex,
// rgb()/rgba(), hsl()/hsla(), or a bare color name.
func SafeColor(s string) bool {
	return hexColorPattern.MatchString(s) ||
		funcColorPattern.MatchString(s) ||
		nameColorPattern.MatchString(s)
}

// ResolvedColors carries the output of color processing: gradient definitions to
// inline into <defs>, plus a resolved paint value per slot (either a flat color
// or a url(#id) gradient reference).
type ResolvedColors struct {
	Defs       string
	Title      string
	Background string
	Text       string
	Circle     string
}

// ProcessColors resolves a palette into paint values, emitting linearGradient
// definitions for any gradient slots.
func ProcessColors(p domain.Palette) ResolvedColors {
	var defs strings.Builder
	resolve := func(c domain.ColorValue, id, fallback string) string {
		if c.IsGradient() {
			defs.WriteString(gradientDef(id, c.Gradient))
			return fmt.Sprintf("url(#%s)", id)
		}
		if !SafeColor(c.Flat) {
			return fallback
		}
		return c.Flat
	}

	return ResolvedColors{
		Title:      resolve(p.Title, "title-gradient", fallbackTitle),
		Background: resolve(p.Background, "background-gradient", fallbackBackground),
		Text:       resolve(p.Text, "text-gradient", fallbackText),
		Circle:     resolve(p.Circle, "circle-gradient", fallbackCircle),
		Defs:       defs.String(),
	}
}

// gradientDef emits a linearGradient element for one gradient descriptor
func gradientDef(id string, g *domain.Gradient) string {
	var stops strings.Builder
	for _, stop := range g.Stops {
		fmt.Fprintf(&stops, `<stop offset="%s%%" stop-color="%s"/>`,
			fmtNum(stop.Offset), Escape(stop.Color))
	}
	return fmt.Sprintf(`<linearGradient id="%s" gradientTransform="rotate(%s)">%s</linearGradient>`,
		id, fmtNum(g.Rotation), stops.String())
}
