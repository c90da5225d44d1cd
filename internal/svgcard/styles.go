package svgcard

import (
	"fmt"
	"strings"
)

// baseStyles renders the shared style block used by every card.  Header font size
// is dynamic; the stagger animation reads the per-group --delay custom property.
func baseStyles(colors ResolvedColors, headerFontSize int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `.header { font: 600 %dpx 'Segoe UI', Ubuntu, Sans-Serif; fill: %s; }`,
		headerFontSize, colors.Title)
	fmt.Fprintf(&b, ` .stat-label { font: 400 12px 'Segoe UI', Ubuntu, Sans-Serif; fill: %s; }`,
		colors.Text)
	fmt.Fprintf(&b, ` .stat-value { font: 600 12px 'Segoe UI', Ubuntu, Sans-Serif; fill: %s; }`,
		colors.Text)
	b.WriteString(` .stagger { opacity: 0; animation: fadeIn 0.3s ease-in-out forwards; animation-delay: var(--delay); }`)
	b.WriteString(` @keyframes fadeIn { to { opacity: 1; } }`)
	return b.String()
}

// distributionStyles adds the classes specific to distribution bodies
func distributionStyles(colors ResolvedColors) string {
	var b strings.Builder
	fmt.Fprintf(&b, ` .dist-bar { fill: %s; }`, colors.Circle)
	fmt.Fprintf(&b, ` .dist-line { stroke: %s; stroke-width: 2; fill: none; }`, colors.Circle)
	fmt.Fprintf(&b, ` .dist-area { fill: %s; opacity: 0.25; }`, colors.Circle)
	fmt.Fprintf(&b, ` .dist-dot { fill: %s; }`, colors.Title)
	fmt.Fprintf(&b, ` .gap-marker { stroke: %s; stroke-width: 1; stroke-dasharray: 3 3; opacity: 0.6; }`, colors.Text)
	fmt.Fprintf(&b, ` .gridline { stroke: %s; stroke-width: 0.5; opacity: 0.2; }`, colors.Text)
	return b.String()
}

// backgroundRect renders the card background honoring border color and radius.
// An empty or unparsable border color means no border stroke at all.
func backgroundRect(width, height float64, colors ResolvedColors, borderColor string, borderRadius int) string {
	attrs := map[string]string{
		"x":      "0.5",
		"y":      "0.5",
		"width":  fmtNum(width - 1),
		"height": fmtNum(height - 1),
		"rx":     fmt.Sprintf("%d", ClampBorderRadius(borderRadius)),
		"fill":   colors.Background,
	}
	if SafeColor(borderColor) {
		attrs["stroke"] = borderColor
		attrs["stroke-width"] = "1"
	}
	return Rect(attrs)
}
