package svgcard

import (
	"fmt"
	"math"
	"strings"

	"github.com/RLAlpha49/AniCards-sub005/internal/domain"
)

// AniList-style list status colors, applied when useStatusColors is on
var statusColors = map[string]string{
	"CURRENT":   "#02a9ff",
	"PLANNING":  "#9256f3",
	"COMPLETED": "#7bd555",
	"DROPPED":   "#e85d75",
	"PAUSED":    "#f79a63",
	"REPEATING": "#3baeea",
}

// sliceOpacities fades consecutive slices when status colors are disabled
var sliceOpacities = []float64{1.0, 0.85, 0.7, 0.55, 0.4, 0.25}

// StatusDistributionInput describes a list-status distribution card
type StatusDistributionInput struct {
	CardType           domain.CardType
	Username           string
	Variant            string // "default" renders bars, "pie" a pie chart
	Statuses           []domain.StatusBucket
	Palette            domain.Palette
	UseStatusColors    bool
	ShowPiePercentages bool
	BorderColor        string
	BorderRadius       int
}

// StatusDistribution renders a status distribution card as an SVG document
func StatusDistribution(in StatusDistributionInput) string {
	colors := ProcessColors(in.Palette)

	statuses := make([]domain.StatusBucket, 0, len(in.Statuses))
	total := 0
	for _, s := range in.Statuses {
		if s.Count < 0 {
			continue
		}
		statuses = append(statuses, s)
		total += s.Count
	}

	width, height := 320.0, 260.0
	if in.Variant == "pie" {
		width = 340
	} else {
		required := bodyTop + float64(len(statuses))*rowHeight + bottomPad
		if required > height {
			height = required
		}
	}

	title := statusCardTitle(in.CardType, in.Username)
	desc := statusDescription(statuses)

	var body string
	if in.Variant == "pie" {
		body = pieBody(statuses, total, in, colors, width, height)
	} else {
		body = statusBarsBody(statuses, total, in, colors, width)
	}

	headerFont := FitFontSize(title, headerBaseFontSize, int(width)-30)

	var svg strings.Builder
	fmt.Fprintf(&svg,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" role="img" aria-labelledby="card-title card-desc">`,
		fmtNum(width), fmtNum(height), fmtNum(width), fmtNum(height))
	fmt.Fprintf(&svg, `<title id="card-title">%s</title>`, Escape(title))
	fmt.Fprintf(&svg, `<desc id="card-desc">%s</desc>`, Escape(desc))
	if colors.Defs != "" {
		fmt.Fprintf(&svg, `<defs>%s</defs>`, colors.Defs)
	}
	fmt.Fprintf(&svg, `<style>%s%s</style>`, baseStyles(colors, headerFont), distributionStyles(colors))
	svg.WriteString(backgroundRect(width, height, colors, in.BorderColor, in.BorderRadius))
	svg.WriteString(Text(map[string]string{
		"x": "20", "y": fmtNum(headerY), "class": "header",
	}, Escape(title)))
	svg.WriteString(body)
	svg.WriteString(`</svg>`)
	return svg.String()
}

func statusCardTitle(t domain.CardType, username string) string {
	media := "Anime"
	if t == domain.CardMangaStatusDistribution {
		media = "Manga"
	}
	return fmt.Sprintf("%s's %s Status Distribution", username, media)
}

func statusDescription(statuses []domain.StatusBucket) string {
	pairs := make([]string, 0, len(statuses))
	for _, s := range statuses {
		pairs = append(pairs, fmt.Sprintf("%s:%d", s.Status, s.Count))
	}
	return "Data: " + strings.Join(pairs, ", ")
}

// sliceFill picks the paint for one status slice or bar
func sliceFill(status string, index int, useStatusColors bool, colors ResolvedColors) (string, float64) {
	if useStatusColors {
		if c, ok := statusColors[status]; ok {
			return c, 1.0
		}
	}
	return colors.Circle, sliceOpacities[index%len(sliceOpacities)]
}

// statusBarsBody renders one proportional bar row per status
func statusBarsBody(statuses []domain.StatusBucket, total int, in StatusDistributionInput, colors ResolvedColors, width float64) string {
	maxCount := 1
	for _, s := range statuses {
		if s.Count > maxCount {
			maxCount = s.Count
		}
	}
	maxBarWidth := width - 110 - 55

	var b strings.Builder
	for i, s := range statuses {
		y := bodyTop + float64(i)*rowHeight
		barW := float64(s.Count) / float64(maxCount) * maxBarWidth
		if barW < minBarSize {
			barW = minBarSize
		}
		fill, opacity := sliceFill(s.Status, i, in.UseStatusColors, colors)

		var row strings.Builder
		row.WriteString(Text(map[string]string{
			"x": "100", "y": fmtNum(y + 14), "text-anchor": "end", "class": "stat-label",
		}, Escape(s.Status)))
		row.WriteString(Rect(map[string]string{
			"x": "110", "y": fmtNum(y + 4), "width": fmtNum(barW), "height": fmtNum(barThick),
			"rx": "2", "fill": fill, "fill-opacity": fmtNum(opacity),
		}))
		row.WriteString(Text(map[string]string{
			"x": fmtNum(110 + barW + countPadX), "y": fmtNum(y + 14), "class": "stat-value",
		}, Escape(fmt.Sprintf("%d", s.Count))))
		b.WriteString(StaggeredGroup(i, row.String()))
	}
	return b.String()
}

// pieBody renders the pie chart with a legend, optionally labelling each slice
// with its percentage
func pieBody(statuses []domain.StatusBucket, total int, in StatusDistributionInput, colors ResolvedColors, width, height float64) string {
	cx, cy, r := 95.0, 145.0, 70.0

	var b strings.Builder
	if total == 0 {
		b.WriteString(Text(map[string]string{
			"x": fmtNum(cx), "y": fmtNum(cy), "text-anchor": "middle", "class": "stat-label",
		}, Escape("No list entries yet")))
		return b.String()
	}

	angle := -math.Pi / 2 // start at 12 o'clock
	for i, s := range statuses {
		if s.Count == 0 {
			continue
		}
		frac := float64(s.Count) / float64(total)
		start := angle
		end := angle + frac*2*math.Pi
		angle = end

		fill, opacity := sliceFill(s.Status, i, in.UseStatusColors, colors)

		var slice string
		if frac >= 0.9999 {
			// A single status covers the whole pie; arcs degenerate, draw a circle
			slice = Circle(map[string]string{
				"cx": fmtNum(cx), "cy": fmtNum(cy), "r": fmtNum(r),
				"fill": fill, "fill-opacity": fmtNum(opacity),
			})
		} else {
			x1, y1 := cx+r*math.Cos(start), cy+r*math.Sin(start)
			x2, y2 := cx+r*math.Cos(end), cy+r*math.Sin(end)
			largeArc := 0
			if frac > 0.5 {
				largeArc = 1
			}
			slice = fmt.Sprintf(`<path d="M %s %s L %s %s A %s %s 0 %d 1 %s %s Z" fill="%s" fill-opacity="%s"/>`,
				fmtNum(cx), fmtNum(cy), fmtNum(x1), fmtNum(y1),
				fmtNum(r), fmtNum(r), largeArc, fmtNum(x2), fmtNum(y2),
				fill, fmtNum(opacity))
		}

		if in.ShowPiePercentages {
			mid := (start + end) / 2
			lx := cx + r*0.62*math.Cos(mid)
			ly := cy + r*0.62*math.Sin(mid)
			slice += Text(map[string]string{
				"x": fmtNum(lx), "y": fmtNum(ly + 4), "text-anchor": "middle", "class": "stat-value",
			}, Escape(fmt.Sprintf("%s%%", fmtNum(frac*100))))
		}
		b.WriteString(StaggeredGroup(i, slice))
	}

	// Legend to the right of the pie
	for i, s := range statuses {
		y := 80.0 + float64(i)*20
		fill, opacity := sliceFill(s.Status, i, in.UseStatusColors, colors)
		entry := Rect(map[string]string{
			"x": "195", "y": fmtNum(y), "width": "10", "height": "10", "rx": "2",
			"fill": fill, "fill-opacity": fmtNum(opacity),
		}) + Text(map[string]string{
			"x": "210", "y": fmtNum(y + 9), "class": "stat-label",
		}, Escape(fmt.Sprintf("%s (%d)", s.Status, s.Count)))
		b.WriteString(StaggeredGroup(i, entry))
	}
	return b.String()
}
