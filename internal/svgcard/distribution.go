package svgcard

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/RLAlpha49/AniCards-sub005/internal/domain"
)

// Distribution variants
const (
	VariantDefault    = "default"
	VariantHorizontal = "horizontal"
	VariantCumulative = "cumulative"
)

// Layout constants shared by the distribution bodies
const (
	headerBaseFontSize = 18
	headerY            = 30.0
	bodyTop            = 50.0
	rowHeight          = 22.0
	bottomPad          = 15.0
	minBarSize         = 2.0

	barLabelX = 42.0 // right edge of the value labels in the default layout
	barStartX = 50.0
	barThick  = 12.0
	countPadX = 8.0

	hPadX              = 30.0
	barSpacing         = 26.0
	barWidthVert       = 14.0
	maxBarHeight       = 90.0
	maxHorizontalItems = 12

	plotLeft   = 45.0
	plotRight  = 20.0
	plotTop    = 55.0
	plotBottom = 60.0
)

// gapNotice is the phrase included in the accessible description whenever
// displayed year buckets are not consecutive
const gapNotice = "non-consecutive years"

// distBaseDims is the per-(cardType, variant) base canvas lookup.  Computed
// dimensions never shrink below these.
var distBaseDims = map[string][2]float64{
	"animeScoreDistribution/default":    {320, 260},
	"animeScoreDistribution/horizontal": {360, 200},
	"animeScoreDistribution/cumulative": {380, 260},
	"mangaScoreDistribution/default":    {320, 260},
	"mangaScoreDistribution/horizontal": {360, 200},
	"mangaScoreDistribution/cumulative": {380, 260},
	"animeYearDistribution/default":     {320, 260},
	"animeYearDistribution/horizontal":  {380, 200},
	"mangaYearDistribution/default":     {320, 260},
	"mangaYearDistribution/horizontal":  {380, 200},
}

// variantBaseDims is the fallback when a card type is missing from the table
var variantBaseDims = map[string][2]float64{
	VariantDefault:    {320, 260},
	VariantHorizontal: {360, 200},
	VariantCumulative: {380, 260},
}

// DistributionInput is everything the distribution template needs to render.
// Rendering is pure: identical inputs produce identical markup.
type DistributionInput struct {
	CardType     domain.CardType
	Username     string
	Variant      string
	Kind         domain.DistributionKind
	Data         []domain.DistributionDatum
	Palette      domain.Palette
	BorderColor  string
	BorderRadius int
}

type bucket struct {
	value int
	count int
}

// NormalizeDistribution cleans raw distribution data: non-finite values or counts
// and negative counts are dropped, duplicate values are merged, and score data is
// padded with zero-count buckets over its natural range.  Year data is never
// padded; absent years simply do not exist.
func NormalizeDistribution(kind domain.DistributionKind, data []domain.DistributionDatum) []domain.DistributionDatum {
	merged := make(map[int]int)
	for _, d := range data {
		if !isFinite(d.Value) || !isFinite(d.Count) || d.Count < 0 {
			continue
		}
		merged[int(math.Round(d.Value))] += int(math.Round(d.Count))
	}

	if kind == domain.KindScore {
		padScoreBuckets(merged)
	}

	out := make([]domain.DistributionDatum, 0, len(merged))
	for v, c := range merged {
		out = append(out, domain.DistributionDatum{Value: float64(v), Count: float64(c)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// padScoreBuckets fills missing score buckets with zero counts.  The 1-10 range
// applies when the max observed value fits it; the 10-100 step 10 range applies
// when every provided value is a multiple of ten.  Anything else is left as-is.
func padScoreBuckets(merged map[int]int) {
	maxVal := 0
	allTens := true
	for v := range merged {
		if v > maxVal {
			maxVal = v
		}
		if v%10 != 0 {
			allTens = false
		}
	}

	switch {
	case maxVal <= 10:
		for v := 1; v <= 10; v++ {
			if _, ok := merged[v]; !ok {
				merged[v] = 0
			}
		}
	case maxVal <= 100 && allTens:
		for v := 10; v <= 100; v += 10 {
			if _, ok := merged[v]; !ok {
				merged[v] = 0
			}
		}
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Distribution renders a score or year distribution card as a complete SVG
// document string.
func Distribution(in DistributionInput) string {
	variant := in.Variant
	switch variant {
	case VariantHorizontal, VariantCumulative:
	default:
		variant = VariantDefault
	}
	// The cumulative curve only makes sense for score data
	if variant == VariantCumulative && in.Kind != domain.KindScore {
		variant = VariantDefault
	}

	colors := ProcessColors(in.Palette)

	normalized := NormalizeDistribution(in.Kind, in.Data)
	data := make([]bucket, 0, len(normalized))
	for _, d := range normalized {
		data = append(data, bucket{value: int(d.Value), count: int(d.Count)})
	}

	// Ascending for the cumulative curve so percentages accumulate correctly,
	// descending for everything else.
	if variant != VariantCumulative {
		sort.Slice(data, func(i, j int) bool { return data[i].value > data[j].value })
	}

	if variant == VariantHorizontal && len(data) > maxHorizontalItems {
		data = data[:maxHorizontalItems]
	}

	maxCount := 1
	for _, b := range data {
		if b.count > maxCount {
			maxCount = b.count
		}
	}

	gapAfter, gapNotes := detectGaps(in.Kind, data)

	width, height := distCanvasSize(in.CardType, variant, len(data))

	title := cardTitle(in.CardType, in.Username)
	desc := distDescription(variant, data, gapNotes)

	var body string
	switch variant {
	case VariantHorizontal:
		body = horizontalBody(data, maxCount, gapAfter, height)
	case VariantCumulative:
		body = cumulativeBody(data, width, height)
	default:
		body = defaultBody(data, maxCount, gapAfter, width)
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

// detectGaps flags positions where consecutive displayed year buckets differ by
// more than one.  Score data never produces gaps; its buckets are padded.
func detectGaps(kind domain.DistributionKind, data []bucket) (map[int]bool, []string) {
	if kind != domain.KindYear {
		return nil, nil
	}
	gapAfter := make(map[int]bool)
	var notes []string
	for i := 0; i+1 < len(data); i++ {
		lo, hi := data[i].value, data[i+1].value
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi-lo > 1 {
			gapAfter[i] = true
			notes = append(notes, fmt.Sprintf("%s: %d missing between %d and %d", gapNotice, hi-lo-1, lo, hi))
		}
	}
	return gapAfter, notes
}

// distCanvasSize computes final canvas dimensions: the base lookup grown to fit
// the rendered item count, never shrunk below the base.
func distCanvasSize(cardType domain.CardType, variant string, n int) (float64, float64) {
	base, ok := distBaseDims[string(cardType)+"/"+variant]
	if !ok {
		base = variantBaseDims[variant]
	}
	width, height := base[0], base[1]

	if variant == VariantHorizontal {
		required := 2*hPadX + float64(n)*barSpacing
		if required > width {
			width = required
		}
		return width, height
	}

	required := bodyTop + float64(n)*rowHeight + bottomPad
	if required > height {
		height = required
	}
	return width, height
}

// cardTitle builds the header/accessible title for a card
func cardTitle(t domain.CardType, username string) string {
	names := map[domain.CardType]string{
		domain.CardAnimeScoreDistribution: "Anime Score Distribution",
		domain.CardMangaScoreDistribution: "Manga Score Distribution",
		domain.CardAnimeYearDistribution:  "Anime Year Distribution",
		domain.CardMangaYearDistribution:  "Manga Year Distribution",
	}
	name, ok := names[t]
	if !ok {
		name = string(t)
	}
	return fmt.Sprintf("%s's %s", username, name)
}

// distDescription encodes every data point machine-readably as value:count pairs
// plus human-readable notes about gaps and curve semantics
func distDescription(variant string, data []bucket, gapNotes []string) string {
	pairs := make([]string, 0, len(data))
	for _, b := range data {
		pairs = append(pairs, fmt.Sprintf("%d:%d", b.value, b.count))
	}
	desc := "Data: " + strings.Join(pairs, ", ")
	if variant == VariantCumulative {
		desc += ". Cumulative percentage curve, accumulating from lowest to highest score"
	}
	for _, note := range gapNotes {
		desc += ". " + note
	}
	return desc
}

// defaultBody renders one row per bucket: value label, proportional horizontal
// bar, count label, optional gap marker.
func defaultBody(data []bucket, maxCount int, gapAfter map[int]bool, width float64) string {
	maxBarWidth := width - barStartX - 55

	var b strings.Builder
	for i, d := range data {
		y := bodyTop + float64(i)*rowHeight
		barW := float64(d.count) / float64(maxCount) * maxBarWidth
		if barW < minBarSize {
			barW = minBarSize
		}

		var row strings.Builder
		row.WriteString(Text(map[string]string{
			"x": fmtNum(barLabelX), "y": fmtNum(y + 14), "text-anchor": "end", "class": "stat-label",
		}, Escape(fmt.Sprintf("%d", d.value))))
		row.WriteString(Rect(map[string]string{
			"x": fmtNum(barStartX), "y": fmtNum(y + 4), "width": fmtNum(barW),
			"height": fmtNum(barThick), "rx": "2", "class": "dist-bar",
		}))
		row.WriteString(Text(map[string]string{
			"x": fmtNum(barStartX + barW + countPadX), "y": fmtNum(y + 14), "class": "stat-value",
		}, Escape(fmt.Sprintf("%d", d.count))))
		if gapAfter[i] {
			row.WriteString(Line(map[string]string{
				"x1": fmtNum(barLabelX - 20), "y1": fmtNum(y + rowHeight),
				"x2": fmtNum(width - 20), "y2": fmtNum(y + rowHeight),
				"class": "gap-marker",
			}))
		}
		b.WriteString(StaggeredGroup(i, row.String()))
	}
	return b.String()
}

// horizontalBody renders one column per bucket: vertical bar, count above,
// value below, optional gap marker between columns.
func horizontalBody(data []bucket, maxCount int, gapAfter map[int]bool, height float64) string {
	baseline := height - 35

	var b strings.Builder
	for i, d := range data {
		x := hPadX + float64(i)*barSpacing
		barH := float64(d.count) / float64(maxCount) * maxBarHeight
		if barH < minBarSize {
			barH = minBarSize
		}
		center := x + barWidthVert/2

		var col strings.Builder
		col.WriteString(Rect(map[string]string{
			"x": fmtNum(x), "y": fmtNum(baseline - barH), "width": fmtNum(barWidthVert),
			"height": fmtNum(barH), "rx": "2", "class": "dist-bar",
		}))
		col.WriteString(Text(map[string]string{
			"x": fmtNum(center), "y": fmtNum(baseline - barH - 6), "text-anchor": "middle", "class": "stat-value",
		}, Escape(fmt.Sprintf("%d", d.count))))
		col.WriteString(Text(map[string]string{
			"x": fmtNum(center), "y": fmtNum(baseline + 16), "text-anchor": "middle", "class": "stat-label",
		}, Escape(fmt.Sprintf("%d", d.value))))
		if gapAfter[i] {
			gx := x + barSpacing - 4
			col.WriteString(Line(map[string]string{
				"x1": fmtNum(gx), "y1": fmtNum(baseline - maxBarHeight),
				"x2": fmtNum(gx), "y2": fmtNum(baseline),
				"class": "gap-marker",
			}))
		}
		b.WriteString(StaggeredGroup(i, col.String()))
	}
	return b.String()
}

// cumulativeBody renders the running-percentage curve: gridlines, filled area,
// line, per-point dots and a legend distinguishing empty from populated data.
func cumulativeBody(data []bucket, width, height float64) string {
	left := plotLeft
	right := width - plotRight
	top := plotTop
	bottom := height - plotBottom

	total := 0
	for _, d := range data {
		total += d.count
	}

	var b strings.Builder

	// Percentage gridlines
	for _, pct := range []int{0, 25, 50, 75, 100} {
		y := bottom - (bottom-top)*float64(pct)/100
		b.WriteString(Line(map[string]string{
			"x1": fmtNum(left), "y1": fmtNum(y), "x2": fmtNum(right), "y2": fmtNum(y),
			"class": "gridline",
		}))
		b.WriteString(Text(map[string]string{
			"x": fmtNum(left - 6), "y": fmtNum(y + 4), "text-anchor": "end", "class": "stat-label",
		}, Escape(fmt.Sprintf("%d%%", pct))))
	}

	if total > 0 && len(data) > 0 {
		type point struct{ x, y float64 }
		points := make([]point, 0, len(data))
		running := 0
		for i, d := range data {
			running += d.count
			pct := float64(running) / float64(total) * 100
			x := left + (right-left)/2
			if len(data) > 1 {
				x = left + (right-left)*float64(i)/float64(len(data)-1)
			}
			points = append(points, point{x: x, y: bottom - (bottom-top)*pct/100})
		}

		// Filled area under the curve
		var path strings.Builder
		fmt.Fprintf(&path, "M %s %s", fmtNum(points[0].x), fmtNum(bottom))
		for _, p := range points {
			fmt.Fprintf(&path, " L %s %s", fmtNum(p.x), fmtNum(p.y))
		}
		fmt.Fprintf(&path, " L %s %s Z", fmtNum(points[len(points)-1].x), fmtNum(bottom))
		fmt.Fprintf(&b, `<path d="%s" class="dist-area"/>`, path.String())

		coords := make([]string, 0, len(points))
		for _, p := range points {
			coords = append(coords, fmtNum(p.x)+","+fmtNum(p.y))
		}
		fmt.Fprintf(&b, `<polyline points="%s" class="dist-line"/>`, strings.Join(coords, " "))

		for i, p := range points {
			dot := Circle(map[string]string{
				"cx": fmtNum(p.x), "cy": fmtNum(p.y), "r": "2.5", "class": "dist-dot",
			})
			label := Text(map[string]string{
				"x": fmtNum(p.x), "y": fmtNum(bottom + 16), "text-anchor": "middle", "class": "stat-label",
			}, Escape(fmt.Sprintf("%d", data[i].value)))
			b.WriteString(StaggeredGroup(i, dot+label))
		}

		b.WriteString(Text(map[string]string{
			"x": fmtNum(left), "y": fmtNum(height - 20), "class": "stat-label",
		}, Escape(fmt.Sprintf("Cumulative %% of %d scored entries", total))))
	} else {
		b.WriteString(Text(map[string]string{
			"x": fmtNum(left), "y": fmtNum(height - 20), "class": "stat-label",
		}, Escape("No scores yet")))
	}

	return b.String()
}
