package domain

// CardType identifies one of the supported stat card kinds
type CardType string

const (
	CardAnimeStats              CardType = "animeStats"
	CardMangaStats              CardType = "mangaStats"
	CardSocialStats             CardType = "socialStats"
	CardAnimeGenres             CardType = "animeGenres"
	CardAnimeTags               CardType = "animeTags"
	CardAnimeVoiceActors        CardType = "animeVoiceActors"
	CardAnimeStudios            CardType = "animeStudios"
	CardAnimeStaff              CardType = "animeStaff"
	CardMangaGenres             CardType = "mangaGenres"
	CardMangaTags               CardType = "mangaTags"
	CardMangaStaff              CardType = "mangaStaff"
	CardAnimeStatusDistribution CardType = "animeStatusDistribution"
	CardMangaStatusDistribution CardType = "mangaStatusDistribution"
	CardAnimeScoreDistribution  CardType = "animeScoreDistribution"
	CardMangaScoreDistribution  CardType = "mangaScoreDistribution"
	CardAnimeYearDistribution   CardType = "animeYearDistribution"
	CardMangaYearDistribution   CardType = "mangaYearDistribution"
	CardFavoritesGrid           CardType = "favoritesGrid"
)

// DefaultVariation is used when neither the request nor the stored config names one
const DefaultVariation = "default"

// FavoritesRelevant reports whether the card type can render a favorites footer.
// Only people/studio style cards support it.
func (t CardType) FavoritesRelevant() bool {
	switch t {
	case CardAnimeVoiceActors, CardAnimeStudios, CardAnimeStaff, CardMangaStaff:
		return true
	}
	return false
}

// StatusColorsRelevant reports whether the useStatusColors flag applies to the card type
func (t CardType) StatusColorsRelevant() bool {
	return t == CardAnimeStatusDistribution || t == CardMangaStatusDistribution
}

// DistributionKind describes what the values of a distribution represent
type DistributionKind string

const (
	KindScore DistributionKind = "score"
	KindYear  DistributionKind = "year"
)

// DistributionKind returns the kind for score/year distribution cards, or empty string
// for card types that are not distributions.
func (t CardType) DistributionKind() DistributionKind {
	switch t {
	case CardAnimeScoreDistribution, CardMangaScoreDistribution:
		return KindScore
	case CardAnimeYearDistribution, CardMangaYearDistribution:
		return KindYear
	}
	return ""
}

// StoredCardConfig is one persisted card's rendering configuration.
//
// Pointer fields distinguish "explicitly set" from "absent, inherit the default".
// When ColorPreset is the literal "custom" the four color slots are authoritative
// and must never be replaced from the named preset table.
type StoredCardConfig struct {
	CardName           string     `json:"cardName"`
	Variation          string     `json:"variation,omitempty"`
	ColorPreset        string     `json:"colorPreset,omitempty"`
	TitleColor         ColorValue `json:"titleColor,omitempty"`
	BackgroundColor    ColorValue `json:"backgroundColor,omitempty"`
	TextColor          ColorValue `json:"textColor,omitempty"`
	CircleColor        ColorValue `json:"circleColor,omitempty"`
	BorderColor        string     `json:"borderColor,omitempty"`
	BorderRadius       *int       `json:"borderRadius,omitempty"`
	ShowFavorites      *bool      `json:"showFavorites,omitempty"`
	UseStatusColors    *bool      `json:"useStatusColors,omitempty"`
	ShowPiePercentages *bool      `json:"showPiePercentages,omitempty"`
	GridCols           *int       `json:"gridCols,omitempty"`
	GridRows           *int       `json:"gridRows,omitempty"`
}

// CardsRecord is a user's full card collection, ordered, unique by card name
type CardsRecord struct {
	UserID int64              `json:"userId"`
	Cards  []StoredCardConfig `json:"cards"`
}

// Find returns the first stored config matching the card name, or nil
func (r *CardsRecord) Find(cardName string) *StoredCardConfig {
	for i := range r.Cards {
		if r.Cards[i].CardName == cardName {
			return &r.Cards[i]
		}
	}
	return nil
}
