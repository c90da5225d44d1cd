package service

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RLAlpha49/AniCards-sub005/internal/cards"
	"github.com/RLAlpha49/AniCards-sub005/internal/domain"
	"github.com/RLAlpha49/AniCards-sub005/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("Failed to close test database: %v", err)
		}
	})

	st := store.New(db, nil)
	return New(st, nil), st
}

func seedUser(t *testing.T, st *store.Store) {
	t.Helper()

	rec := &domain.UserRecord{
		Meta: &domain.UserMeta{ID: 42, Name: "Tester"},
		Statistics: &domain.StatisticsPart{
			AnimeScores: []domain.ScoreBucket{{Score: 7, Count: 12}, {Score: 9, Count: 3}},
			AnimeYears:  []domain.YearBucket{{Year: 2018, Count: 2}, {Year: 2020, Count: 5}},
		},
	}
	rec.Stats = &domain.StatsPart{User: domain.UserProfile{
		Favourites: domain.Favourites{
			Studios: []domain.FavouriteItem{{Name: "MAPPA"}},
		},
	}}
	rec.Stats.User.Statistics.Anime = domain.MediaTypeStats{
		Count:           321,
		EpisodesWatched: 1500,
		MeanScore:       84.5,
		Genres:          []domain.NamedCount{{Name: "Action", Count: 50}},
		Studios:         []domain.NamedCount{{Name: "MAPPA", Count: 12}},
		Statuses:        []domain.StatusBucket{{Status: "COMPLETED", Count: 120}},
	}
	require.NoError(t, st.SaveUserRecord(context.Background(), rec))
}

func statelessParams(cardType domain.CardType) cards.Params {
	return cards.Params{
		CardType:           cardType,
		ColorPreset:        "default",
		ShowFavorites:      cards.False,
		UseStatusColors:    cards.True,
		ShowPiePercentages: cards.False,
		GridCols:           "3",
		GridRows:           "3",
	}
}

func TestRenderCardUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RenderCard(context.Background(), "nobody", statelessParams(domain.CardAnimeStats))
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestRenderCardStatelessPath(t *testing.T) {
	svc, st := newTestService(t)
	seedUser(t, st)

	svg, err := svc.RenderCard(context.Background(), "tester", statelessParams(domain.CardAnimeScoreDistribution))
	require.NoError(t, err)

	assert.Contains(t, svg, "Tester&apos;s Anime Score Distribution")
	assert.Contains(t, svg, "7:12")
	assert.Contains(t, svg, "9:3")
}

func TestRenderCardStoredPath(t *testing.T) {
	svc, st := newTestService(t)
	seedUser(t, st)
	ctx := context.Background()

	showFavorites := true
	require.NoError(t, st.SaveCards(ctx, &domain.CardsRecord{
		UserID: 42,
		Cards: []domain.StoredCardConfig{
			{
				CardName:      string(domain.CardAnimeStudios),
				ColorPreset:   "ocean",
				ShowFavorites: &showFavorites,
			},
		},
	}))

	// No URL colors or flags: the stored config must be fetched and honored
	svg, err := svc.RenderCard(ctx, "tester", cards.Params{CardType: domain.CardAnimeStudios})
	require.NoError(t, err)

	assert.Contains(t, svg, "Top Anime Studios")
	assert.Contains(t, svg, "MAPPA:12")
	assert.Contains(t, svg, "Favorites: MAPPA")
	assert.Contains(t, svg, "#03045e") // ocean background
}

func TestRenderCardStoredPathMissingCard(t *testing.T) {
	svc, st := newTestService(t)
	seedUser(t, st)

	_, err := svc.RenderCard(context.Background(), "tester", cards.Params{CardType: domain.CardAnimeStats})

	var notFound *cards.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestRenderCardAllTypes(t *testing.T) {
	svc, st := newTestService(t)
	seedUser(t, st)
	ctx := context.Background()

	types := []domain.CardType{
		domain.CardAnimeStats, domain.CardMangaStats, domain.CardSocialStats,
		domain.CardAnimeGenres, domain.CardAnimeTags, domain.CardAnimeVoiceActors,
		domain.CardAnimeStudios, domain.CardAnimeStaff,
		domain.CardMangaGenres, domain.CardMangaTags, domain.CardMangaStaff,
		domain.CardAnimeStatusDistribution, domain.CardMangaStatusDistribution,
		domain.CardAnimeScoreDistribution, domain.CardMangaScoreDistribution,
		domain.CardAnimeYearDistribution, domain.CardMangaYearDistribution,
		domain.CardFavoritesGrid,
	}

	for _, cardType := range types {
		t.Run(string(cardType), func(t *testing.T) {
			svg, err := svc.RenderCard(ctx, "tester", statelessParams(cardType))
			require.NoError(t, err)
			assert.Contains(t, svg, "<svg")
			assert.Contains(t, svg, "</svg>")
		})
	}
}

func TestRenderCardUnknownType(t *testing.T) {
	svc, st := newTestService(t)
	seedUser(t, st)

	_, err := svc.RenderCard(context.Background(), "tester", statelessParams("petRockCollection"))

	var unknown *UnknownCardTypeError
	assert.ErrorAs(t, err, &unknown)
}
