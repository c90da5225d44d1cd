package svgcard

import (
	"fmt"
	"strings"

	"github.com/RLAlpha49/AniCards-sub005/internal/domain"
)

// topListEntries caps the top stat list to five entries like the original cards
const topListEntries = 5

// TopListInput describes a genres/tags/staff/studios/voice-actors card
type TopListInput struct {
	CardType     domain.CardType
	Username     string
	Entries      []domain.NamedCount
	Favorites    []string // rendered as a footer when non-empty
	Palette      domain.Palette
	BorderColor  string
	BorderRadius int
}

// TopList renders the top-five stat list card with an optional favorites footer
func TopList(in TopListInput) string {
	colors := ProcessColors(in.Palette)

	entries := in.Entries
	if len(entries) > topListEntries {
		entries = entries[:topListEntries]
	}

	width, height := 340.0, 190.0
	if len(in.Favorites) > 0 {
		height += 24
	}

	title := topListTitle(in.CardType, in.Username)
	headerFont := FitFontSize(title, headerBaseFontSize, int(width)-30)

	pairs := make([]string, 0, len(entries))
	for _, e := range entries {
		pairs = append(pairs, fmt.Sprintf("%s:%d", e.Name, e.Count))
	}
	desc := "Data: " + strings.Join(pairs, ", ")

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

	maxCount := 1
	for _, e := range entries {
		if e.Count > maxCount {
			maxCount = e.Count
		}
	}

	for i, e := range entries {
		y := bodyTop + float64(i)*rowHeight
		barW := float64(e.Count) / float64(maxCount) * 120
		if barW < minBarSize {
			barW = minBarSize
		}
		row := Text(map[string]string{
			"x": "25", "y": fmtNum(y + 14), "class": "stat-label",
		}, Escape(truncateName(e.Name, 18))) + Rect(map[string]string{
			"x": "170", "y": fmtNum(y + 4), "width": fmtNum(barW), "height": fmtNum(barThick),
			"rx": "2", "class": "dist-bar",
		}) + Text(map[string]string{
			"x": fmtNum(170 + barW + countPadX), "y": fmtNum(y + 14), "class": "stat-value",
		}, Escape(fmt.Sprintf("%d", e.Count)))
		svg.WriteString(StaggeredGroup(i, row))
	}

	if len(in.Favorites) > 0 {
		y := bodyTop + float64(len(entries))*rowHeight + 12
		svg.WriteString(Text(map[string]string{
			"x": "25", "y": fmtNum(y), "class": "stat-label",
		}, Escape("Favorites: "+strings.Join(in.Favorites, ", "))))
	}

	svg.WriteString(`</svg>`)
	return svg.String()
}

func topListTitle(t domain.CardType, username string) string {
	names := map[domain.CardType]string{
		domain.CardAnimeGenres:      "Top Anime Genres",
		domain.CardAnimeTags:        "Top Anime Tags",
		domain.CardAnimeVoiceActors: "Top Anime Voice Actors",
		domain.CardAnimeStudios:     "Top Anime Studios",
		domain.CardAnimeStaff:       "Top Anime Staff",
		domain.CardMangaGenres:      "Top Manga Genres",
		domain.CardMangaTags:        "Top Manga Tags",
		domain.CardMangaStaff:       "Top Manga Staff",
	}
	name, ok := names[t]
	if !ok {
		name = string(t)
	}
	return fmt.Sprintf("%s's %s", username, name)
}
