// Package service orchestrates a card request end to end: username resolution,
// config resolution against storage, data selection and SVG rendering.
package service

import (
	"context"
	"fmt"

	"github.com/RLAlpha49/AniCards-sub005/internal/cards"
	"github.com/RLAlpha49/AniCards-sub005/internal/domain"
	"github.com/RLAlpha49/AniCards-sub005/internal/log"
	"github.com/RLAlpha49/AniCards-sub005/internal/store"
	"github.com/RLAlpha49/AniCards-sub005/internal/svgcard"
)

// UnknownCardTypeError marks a request for a card type the renderer does not know
type UnknownCardTypeError struct {
	CardType domain.CardType
}

func (e *UnknownCardTypeError) Error() string {
	return fmt.Sprintf("unknown card type %q", e.CardType)
}

// Service renders cards against the store
type Service struct {
	store   *store.Store
	presets map[string]domain.Palette
}

// New builds a Service.  A nil presets map falls back to the built-in presets.
func New(st *store.Store, presets map[string]domain.Palette) *Service {
	if presets == nil {
		presets = cards.DefaultPresets
	}
	return &Service{store: st, presets: presets}
}

// RenderCard resolves the username, determines the effective card configuration
// and renders the SVG document.
//
// Requests whose URL parameters pin down every relevant setting skip the stored
// card list entirely, which keeps shared card URLs working even for cards the
// user never saved.
func (s *Service) RenderCard(ctx context.Context, username string, p cards.Params) (string, error) {
	userID, ok, err := s.store.ResolveUserID(ctx, username)
	if err != nil {
		return "", fmt.Errorf("resolving username %q: %w", username, err)
	}
	if !ok {
		return "", store.ErrUserNotFound
	}
	return s.RenderCardByID(ctx, userID, p)
}

// RenderCardByID is RenderCard for callers that already hold the user id
func (s *Service) RenderCardByID(ctx context.Context, userID int64, p cards.Params) (string, error) {
	var resolved *cards.Resolved

	if cards.NeedsStoredConfig(p) {
		cardsRec, userRec, err := s.store.FetchUserData(ctx, userID, p.CardType)
		if err != nil {
			return "", err
		}
		resolved, err = cards.ProcessStored(cardsRec, p, userRec, s.presets)
		if err != nil {
			return "", err
		}
		return s.render(resolved, userRec)
	}

	userRec, err := s.store.FetchUserDataForCard(ctx, userID, p.CardType)
	if err != nil {
		return "", err
	}

	cfg := cards.BuildFromParams(p, s.presets)
	resolved = &cards.Resolved{Config: cfg, Variation: cfg.Variation}
	if p.CardType.FavoritesRelevant() && p.ShowFavorites.Bool(false) {
		resolved.Favorites = cards.FavoriteNames(p.CardType, userRec)
	}
	return s.render(resolved, userRec)
}

// render dispatches to the template for the card type
func (s *Service) render(res *cards.Resolved, user *domain.UserRecord) (string, error) {
	cardType := domain.CardType(res.Config.CardName)
	username := ""
	if user.Meta != nil {
		username = user.Meta.Name
	}

	palette := domain.Palette{
		Title:      res.Config.TitleColor,
		Background: res.Config.BackgroundColor,
		Text:       res.Config.TextColor,
		Circle:     res.Config.CircleColor,
	}
	borderRadius := 0
	if res.Config.BorderRadius != nil {
		borderRadius = *res.Config.BorderRadius
	}

	switch cardType {
	case domain.CardAnimeScoreDistribution, domain.CardMangaScoreDistribution,
		domain.CardAnimeYearDistribution, domain.CardMangaYearDistribution:
		return svgcard.Distribution(svgcard.DistributionInput{
			CardType:     cardType,
			Username:     username,
			Variant:      res.Variation,
			Kind:         cardType.DistributionKind(),
			Data:         distributionData(cardType, user),
			Palette:      palette,
			BorderColor:  res.Config.BorderColor,
			BorderRadius: borderRadius,
		}), nil

	case domain.CardAnimeStatusDistribution, domain.CardMangaStatusDistribution:
		return svgcard.StatusDistribution(svgcard.StatusDistributionInput{
			CardType:           cardType,
			Username:           username,
			Variant:            res.Variation,
			Statuses:           statusData(cardType, user),
			Palette:            palette,
			UseStatusColors:    boolValue(res.Config.UseStatusColors),
			ShowPiePercentages: boolValue(res.Config.ShowPiePercentages),
			BorderColor:        res.Config.BorderColor,
			BorderRadius:       borderRadius,
		}), nil

	case domain.CardFavoritesGrid:
		cols, rows := cards.DefaultGridDim, cards.DefaultGridDim
		if res.Config.GridCols != nil {
			cols = *res.Config.GridCols
		}
		if res.Config.GridRows != nil {
			rows = *res.Config.GridRows
		}
		return svgcard.FavoritesGrid(svgcard.FavoritesGridInput{
			Username:     username,
			Items:        gridItems(user),
			Cols:         cols,
			Rows:         rows,
			Palette:      palette,
			BorderColor:  res.Config.BorderColor,
			BorderRadius: borderRadius,
		}), nil

	case domain.CardAnimeStats, domain.CardMangaStats, domain.CardSocialStats:
		rows, ringValue, ringLabel := summaryRows(cardType, user)
		return svgcard.StatSummary(svgcard.StatSummaryInput{
			CardType:     cardType,
			Username:     username,
			Rows:         rows,
			RingValue:    ringValue,
			RingLabel:    ringLabel,
			Palette:      palette,
			BorderColor:  res.Config.BorderColor,
			BorderRadius: borderRadius,
		}), nil

	case domain.CardAnimeGenres, domain.CardAnimeTags, domain.CardAnimeVoiceActors,
		domain.CardAnimeStudios, domain.CardAnimeStaff,
		domain.CardMangaGenres, domain.CardMangaTags, domain.CardMangaStaff:
		return svgcard.TopList(svgcard.TopListInput{
			CardType:     cardType,
			Username:     username,
			Entries:      topListData(cardType, user),
			Favorites:    res.Favorites,
			Palette:      palette,
			BorderColor:  res.Config.BorderColor,
			BorderRadius: borderRadius,
		}), nil
	}

	log.Warn("Request for unknown card type", "cardType", cardType)
	return "", &UnknownCardTypeError{CardType: cardType}
}

// distributionData selects the score/year buckets for a distribution card type
func distributionData(t domain.CardType, user *domain.UserRecord) []domain.DistributionDatum {
	if user.Statistics == nil {
		return nil
	}
	st := user.Statistics

	switch t {
	case domain.CardAnimeScoreDistribution:
		return scoreData(st.AnimeScores)
	case domain.CardMangaScoreDistribution:
		return scoreData(st.MangaScores)
	case domain.CardAnimeYearDistribution:
		return yearData(st.AnimeYears)
	case domain.CardMangaYearDistribution:
		return yearData(st.MangaYears)
	}
	return nil
}

func scoreData(buckets []domain.ScoreBucket) []domain.DistributionDatum {
	data := make([]domain.DistributionDatum, 0, len(buckets))
	for _, b := range buckets {
		data = append(data, domain.DistributionDatum{Value: float64(b.Score), Count: float64(b.Count)})
	}
	return data
}

func yearData(buckets []domain.YearBucket) []domain.DistributionDatum {
	data := make([]domain.DistributionDatum, 0, len(buckets))
	for _, b := range buckets {
		data = append(data, domain.DistributionDatum{Value: float64(b.Year), Count: float64(b.Count)})
	}
	return data
}

func statusData(t domain.CardType, user *domain.UserRecord) []domain.StatusBucket {
	if user.Stats == nil {
		return nil
	}
	if t == domain.CardMangaStatusDistribution {
		return user.Stats.User.Statistics.Manga.Statuses
	}
	return user.Stats.User.Statistics.Anime.Statuses
}

// gridItems picks the favorites shown on the grid card: paged covers first,
// falling back to the favourites partition.
func gridItems(user *domain.UserRecord) []domain.FavouriteItem {
	if user.Pages != nil && len(user.Pages.Covers) > 0 {
		return user.Pages.Covers
	}
	if user.Favourites != nil {
		return user.Favourites.Anime
	}
	return nil
}

// summaryRows builds the label/value rows plus the milestone ring inputs for the
// summary cards.
func summaryRows(t domain.CardType, user *domain.UserRecord) ([]svgcard.StatRow, int, string) {
	if user.Stats == nil {
		return nil, 0, ""
	}
	profile := &user.Stats.User

	switch t {
	case domain.CardAnimeStats:
		a := profile.Statistics.Anime
		rows := []svgcard.StatRow{
			svgcard.NewStatRow("Count", fmt.Sprintf("%d", a.Count)),
			svgcard.NewStatRow("Episodes Watched", fmt.Sprintf("%d", a.EpisodesWatched)),
			svgcard.NewStatRow("Minutes Watched", fmt.Sprintf("%d", a.MinutesWatched)),
			svgcard.NewStatRow("Mean Score", svgcard.FormatNumber(a.MeanScore)),
			svgcard.NewStatRow("Standard Deviation", svgcard.FormatNumber(a.StandardDeviation)),
		}
		return rows, a.EpisodesWatched, "Episodes"
	case domain.CardMangaStats:
		m := profile.Statistics.Manga
		rows := []svgcard.StatRow{
			svgcard.NewStatRow("Count", fmt.Sprintf("%d", m.Count)),
			svgcard.NewStatRow("Chapters Read", fmt.Sprintf("%d", m.ChaptersRead)),
			svgcard.NewStatRow("Volumes Read", fmt.Sprintf("%d", m.VolumesRead)),
			svgcard.NewStatRow("Mean Score", svgcard.FormatNumber(m.MeanScore)),
			svgcard.NewStatRow("Standard Deviation", svgcard.FormatNumber(m.StandardDeviation)),
		}
		return rows, m.ChaptersRead, "Chapters"
	case domain.CardSocialStats:
		s := profile.Social
		rows := []svgcard.StatRow{
			svgcard.NewStatRow("Followers", fmt.Sprintf("%d", s.TotalFollowers)),
			svgcard.NewStatRow("Following", fmt.Sprintf("%d", s.TotalFollowing)),
			svgcard.NewStatRow("Activity", fmt.Sprintf("%d", s.TotalActivity)),
		}
		return rows, 0, ""
	}
	return nil, 0, ""
}

// topListData selects the named counts backing a top-list card
func topListData(t domain.CardType, user *domain.UserRecord) []domain.NamedCount {
	if user.Stats == nil {
		return nil
	}
	anime := user.Stats.User.Statistics.Anime
	manga := user.Stats.User.Statistics.Manga

	switch t {
	case domain.CardAnimeGenres:
		return anime.Genres
	case domain.CardAnimeTags:
		return anime.Tags
	case domain.CardAnimeVoiceActors:
		return anime.VoiceActors
	case domain.CardAnimeStudios:
		return anime.Studios
	case domain.CardAnimeStaff:
		return anime.Staff
	case domain.CardMangaGenres:
		return manga.Genres
	case domain.CardMangaTags:
		return manga.Tags
	case domain.CardMangaStaff:
		return manga.Staff
	}
	return nil
}

func boolValue(p *bool) bool {
	return p != nil && *p
}
