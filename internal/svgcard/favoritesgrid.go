package svgcard

import (
	"fmt"
	"strings"

	"github.com/RLAlpha49/AniCards-sub005/internal/domain"
)

// Cell geometry for the favorites grid card
const (
	gridCellWidth  = 82.0
	gridCellHeight = 48.0
	gridGap        = 8.0
	gridPad        = 20.0
	gridTop        = 45.0
)

// FavoritesGridInput describes the favorites grid card
type FavoritesGridInput struct {
	Username     string
	Items        []domain.FavouriteItem
	Cols         int
	Rows         int
	Palette      domain.Palette
	BorderColor  string
	BorderRadius int
}

// FavoritesGrid renders a cols x rows grid of the user's favorites.  Grid
// dimensions are expected pre-clamped into [1,5]; out-of-range values are
// clamped again here as a backstop.
func FavoritesGrid(in FavoritesGridInput) string {
	cols := clampGrid(in.Cols)
	rows := clampGrid(in.Rows)
	colors := ProcessColors(in.Palette)

	width := gridPad*2 + float64(cols)*gridCellWidth + float64(cols-1)*gridGap
	height := gridTop + float64(rows)*gridCellHeight + float64(rows-1)*gridGap + 20

	title := fmt.Sprintf("%s's Favorites", in.Username)
	headerFont := FitFontSize(title, headerBaseFontSize, int(width)-30)

	names := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		names = append(names, item.Name)
	}
	desc := "Favorites: " + strings.Join(names, ", ")

	var svg strings.Builder
	fmt.Fprintf(&svg,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" role="img" aria-labelledby="card-title card-desc">`,
		fmtNum(width), fmtNum(height), fmtNum(width), fmtNum(height))
	fmt.Fprintf(&svg, `<title id="card-title">%s</title>`, Escape(title))
	fmt.Fprintf(&svg, `<desc id="card-desc">%s</desc>`, Escape(desc))
	if colors.Defs != "" {
		fmt.Fprintf(&svg, `<defs>%s</defs>`, colors.Defs)
	}
	fmt.Fprintf(&svg, `<style>%s .cell { fill: %s; fill-opacity: 0.15; stroke: %s; stroke-opacity: 0.4; }</style>`,
		baseStyles(colors, headerFont), colors.Circle, colors.Circle)
	svg.WriteString(backgroundRect(width, height, colors, in.BorderColor, in.BorderRadius))
	svg.WriteString(Text(map[string]string{
		"x": "20", "y": fmtNum(headerY), "class": "header",
	}, Escape(title)))

	for i := 0; i < cols*rows; i++ {
		col := i % cols
		row := i / cols
		x := gridPad + float64(col)*(gridCellWidth+gridGap)
		y := gridTop + float64(row)*(gridCellHeight+gridGap)

		var cell strings.Builder
		cell.WriteString(Rect(map[string]string{
			"x": fmtNum(x), "y": fmtNum(y), "width": fmtNum(gridCellWidth),
			"height": fmtNum(gridCellHeight), "rx": "4", "class": "cell",
		}))
		if i < len(in.Items) {
			cell.WriteString(Text(map[string]string{
				"x": fmtNum(x + gridCellWidth/2), "y": fmtNum(y + gridCellHeight/2 + 4),
				"text-anchor": "middle", "class": "stat-label",
			}, Escape(truncateName(in.Items[i].Name, 12))))
		}
		svg.WriteString(StaggeredGroup(i, cell.String()))
	}

	svg.WriteString(`</svg>`)
	return svg.String()
}

func clampGrid(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

// truncateName shortens long names so they fit a grid cell
func truncateName(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
