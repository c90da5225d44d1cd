package svgcard

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// fmtNum renders a coordinate or size value rounded to 2 decimal places.  The
// rounding keeps dynamic layout arithmetic from bloating the markup with long
// float tails.
func fmtNum(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// FormatNumber is fmtNum for callers outside the package, used when a display
// value must match the rounding the markup uses internally.
func FormatNumber(v float64) string {
	return fmtNum(v)
}

// renderAttrs emits attributes sorted by name so output is deterministic
func renderAttrs(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, ` %s="%s"`, k, attrs[k])
	}
	return b.String()
}

// Text builds a <text> element.  Content must already be escaped.
func Text(attrs map[string]string, content SafeText) string {
	return fmt.Sprintf("<text%s>%s</text>", renderAttrs(attrs), content)
}

// Rect builds a self-closing <rect> element
func Rect(attrs map[string]string) string {
	return fmt.Sprintf("<rect%s/>", renderAttrs(attrs))
}

// Line builds a self-closing <line> element
func Line(attrs map[string]string) string {
	return fmt.Sprintf("<line%s/>", renderAttrs(attrs))
}

// Circle builds a self-closing <circle> element
func Circle(attrs map[string]string) string {
	return fmt.Sprintf("<circle%s/>", renderAttrs(attrs))
}

// Group wraps inner markup in a <g> element
func Group(attrs map[string]string, inner string) string {
	return fmt.Sprintf("<g%s>%s</g>", renderAttrs(attrs), inner)
}

// staggerStep is the animation delay between consecutive staggered elements
const staggerStep = 0.15

// StaggeredGroup wraps inner markup in a group tagged for the client-side
// stagger animation.  The delay is carried as an inline CSS custom property so
// the shared style block can reference it; static consumers ignore it.
func StaggeredGroup(index int, inner string) string {
	return Group(map[string]string{
		"class": "stagger",
		"style": fmt.Sprintf("--delay: %ss", fmtNum(float64(index)*staggerStep)),
	}, inner)
}

// ClampBorderRadius bounds a requested border radius into the valid range
func ClampBorderRadius(r int) int {
	if r < 0 {
		return 0
	}
	if r > 20 {
		return 20
	}
	return r
}
