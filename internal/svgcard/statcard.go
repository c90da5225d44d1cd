package svgcard

import (
	"fmt"
	"math"
	"strings"

	"github.com/RLAlpha49/AniCards-sub005/internal/domain"
)

// milestoneCircleRadius is the radius of the progress ring on the summary cards
const milestoneCircleRadius = 40.0

// Milestones walks 100/300/500 then every 1000.  The ring shows progress from
// the previous milestone towards the next one.
func milestonesFor(value int) (previous, current int) {
	milestones := []int{0, 100, 300, 500}
	maxMilestone := (value/1000 + 1) * 1000
	for m := 1000; m <= maxMilestone; m += 1000 {
		milestones = append(milestones, m)
	}

	for _, m := range milestones {
		if m < value && m > previous {
			previous = m
		}
	}
	current = maxMilestone
	for _, m := range milestones {
		if m > value && m < current {
			current = m
		}
	}
	return previous, current
}

// milestoneDash computes the stroke-dasharray/dashoffset pair for the ring
func milestoneDash(value, previous, current int) (dasharray, dashoffset float64) {
	circumference := 2 * math.Pi * milestoneCircleRadius
	if current == previous {
		return circumference, 0
	}
	progress := float64(value-previous) / float64(current-previous)
	return circumference, circumference * (1 - progress)
}

// StatRow is one label/value line on a summary card
type StatRow struct {
	Label string
	Value string
}

// StatSummaryInput describes the animeStats/mangaStats/socialStats cards
type StatSummaryInput struct {
	CardType     domain.CardType
	Username     string
	Rows         []StatRow
	RingValue    int // episodes watched or chapters read; <= 0 hides the ring
	RingLabel    string
	Palette      domain.Palette
	BorderColor  string
	BorderRadius int
}

// NewStatRow builds one display row for a summary card
func NewStatRow(label, value string) StatRow {
	return StatRow{Label: label, Value: value}
}

// StatSummary renders a summary card: label/value rows plus an optional
// milestone progress ring.
func StatSummary(in StatSummaryInput) string {
	colors := ProcessColors(in.Palette)

	width, height := 380.0, 180.0
	required := bodyTop + float64(len(in.Rows))*rowHeight + bottomPad
	if required > height {
		height = required
	}

	title := summaryTitle(in.CardType, in.Username)
	headerFont := FitFontSize(title, headerBaseFontSize, int(width)-140)

	pairs := make([]string, 0, len(in.Rows))
	for _, r := range in.Rows {
		pairs = append(pairs, r.Label+": "+r.Value)
	}
	desc := strings.Join(pairs, ", ")

	var svg strings.Builder
	fmt.Fprintf(&svg,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" role="img" aria-labelledby="card-title card-desc">`,
		fmtNum(width), fmtNum(height), fmtNum(width), fmtNum(height))
	fmt.Fprintf(&svg, `<title id="card-title">%s</title>`, Escape(title))
	fmt.Fprintf(&svg, `<desc id="card-desc">%s</desc>`, Escape(desc))
	if colors.Defs != "" {
		fmt.Fprintf(&svg, `<defs>%s</defs>`, colors.Defs)
	}
	fmt.Fprintf(&svg, `<style>%s .ring-bg { fill: none; stroke: %s; stroke-opacity: 0.2; stroke-width: 6; }`+
		` .ring { fill: none; stroke: %s; stroke-width: 6; stroke-linecap: round; }</style>`,
		baseStyles(colors, headerFont), colors.Circle, colors.Circle)
	svg.WriteString(backgroundRect(width, height, colors, in.BorderColor, in.BorderRadius))
	svg.WriteString(Text(map[string]string{
		"x": "20", "y": fmtNum(headerY), "class": "header",
	}, Escape(title)))

	for i, row := range in.Rows {
		y := bodyTop + float64(i)*rowHeight
		line := Text(map[string]string{
			"x": "25", "y": fmtNum(y + 14), "class": "stat-label",
		}, Escape(row.Label+":")) + Text(map[string]string{
			"x": "170", "y": fmtNum(y + 14), "class": "stat-value",
		}, Escape(row.Value))
		svg.WriteString(StaggeredGroup(i, line))
	}

	if in.RingValue > 0 {
		previous, current := milestonesFor(in.RingValue)
		dasharray, dashoffset := milestoneDash(in.RingValue, previous, current)
		cx, cy := width-75, height/2+10

		svg.WriteString(Circle(map[string]string{
			"cx": fmtNum(cx), "cy": fmtNum(cy), "r": fmtNum(milestoneCircleRadius), "class": "ring-bg",
		}))
		fmt.Fprintf(&svg,
			`<circle cx="%s" cy="%s" r="%s" class="ring" stroke-dasharray="%s" stroke-dashoffset="%s" transform="rotate(-90 %s %s)"/>`,
			fmtNum(cx), fmtNum(cy), fmtNum(milestoneCircleRadius),
			fmtNum(dasharray), fmtNum(dashoffset), fmtNum(cx), fmtNum(cy))
		svg.WriteString(Text(map[string]string{
			"x": fmtNum(cx), "y": fmtNum(cy + 4), "text-anchor": "middle", "class": "stat-value",
		}, Escape(fmt.Sprintf("%d", in.RingValue))))
		svg.WriteString(Text(map[string]string{
			"x": fmtNum(cx), "y": fmtNum(cy + milestoneCircleRadius + 18), "text-anchor": "middle", "class": "stat-label",
		}, Escape(fmt.Sprintf("%s (next: %d)", in.RingLabel, current))))
	}

	svg.WriteString(`</svg>`)
	return svg.String()
}

func summaryTitle(t domain.CardType, username string) string {
	switch t {
	case domain.CardAnimeStats:
		return fmt.Sprintf("%s's Anime Stats", username)
	case domain.CardMangaStats:
		return fmt.Sprintf("%s's Manga Stats", username)
	case domain.CardSocialStats:
		return fmt.Sprintf("%s's Social Stats", username)
	}
	return fmt.Sprintf("%s's %s", username, t)
}
