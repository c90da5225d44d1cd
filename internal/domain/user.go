package domain

// Partition names for the split user record in storage.  The meta partition is
// mandatory; a user without one does not exist as far as card rendering is concerned.
const (
	PartMeta       = "meta"
	PartStats      = "stats"
	PartFavourites = "favourites"
	PartStatistics = "statistics"
	PartPages      = "pages"
	PartPlanning   = "planning"
	PartCurrent    = "current"
	PartRewatched  = "rewatched"
	PartCompleted  = "completed"
)

// AllPartitions lists every user record partition in storage order
var AllPartitions = []string{
	PartMeta, PartStats, PartFavourites, PartStatistics, PartPages,
	PartPlanning, PartCurrent, PartRewatched, PartCompleted,
}

// UserMeta holds the identifying slice of a user record
type UserMeta struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar,omitempty"`
	SiteURL   string `json:"siteUrl,omitempty"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
}

// NamedCount is a generic name/count statistics pair (genres, tags, staff...)
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ScoreBucket is one entry of a score distribution
type ScoreBucket struct {
	Score int `json:"score"`
	Count int `json:"count"`
}

// StatusBucket is one entry of a list-status distribution
type StatusBucket struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// YearBucket is one entry of a release-year distribution
type YearBucket struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// MediaTypeStats carries the per-media-type statistics fetched from AniList
type MediaTypeStats struct {
	Count             int            `json:"count"`
	EpisodesWatched   int            `json:"episodesWatched,omitempty"`
	MinutesWatched    int            `json:"minutesWatched,omitempty"`
	ChaptersRead      int            `json:"chaptersRead,omitempty"`
	VolumesRead       int            `json:"volumesRead,omitempty"`
	MeanScore         float64        `json:"meanScore"`
	StandardDeviation float64        `json:"standardDeviation"`
	Genres            []NamedCount   `json:"genres,omitempty"`
	Tags              []NamedCount   `json:"tags,omitempty"`
	VoiceActors       []NamedCount   `json:"voiceActors,omitempty"`
	Studios           []NamedCount   `json:"studios,omitempty"`
	Staff             []NamedCount   `json:"staff,omitempty"`
	Statuses          []StatusBucket `json:"statuses,omitempty"`
}

// SocialStats carries follower/following/activity counts
type SocialStats struct {
	TotalFollowers int `json:"totalFollowers"`
	TotalFollowing int `json:"totalFollowing"`
	TotalActivity  int `json:"totalActivity"`
}

// FavouriteItem is one favorited entity (name plus optional cover image)
type FavouriteItem struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Favourites groups a user's favorited entities by category
type Favourites struct {
	Anime      []FavouriteItem `json:"anime,omitempty"`
	Manga      []FavouriteItem `json:"manga,omitempty"`
	Characters []FavouriteItem `json:"characters,omitempty"`
	Staff      []FavouriteItem `json:"staff,omitempty"`
	Studios    []FavouriteItem `json:"studios,omitempty"`
}

// UserProfile is the nested User object inside the stats partition.  The shape
// mirrors the AniList statistics query response.
type UserProfile struct {
	Statistics struct {
		Anime MediaTypeStats `json:"anime"`
		Manga MediaTypeStats `json:"manga"`
	} `json:"statistics"`
	Favourites Favourites  `json:"favourites"`
	Social     SocialStats `json:"social"`
}

// StatsPart is the stats partition of a user record
type StatsPart struct {
	User UserProfile `json:"User"`
}

// StatisticsPart holds the score and release-year distributions per media type
type StatisticsPart struct {
	AnimeScores []ScoreBucket `json:"animeScores,omitempty"`
	MangaScores []ScoreBucket `json:"mangaScores,omitempty"`
	AnimeYears  []YearBucket  `json:"animeYears,omitempty"`
	MangaYears  []YearBucket  `json:"mangaYears,omitempty"`
}

// PagesPart carries paged favourite covers used by the favorites grid card
type PagesPart struct {
	Covers []FavouriteItem `json:"covers,omitempty"`
}

// MediaEntry is one list entry inside the planning/current/rewatched/completed partitions
type MediaEntry struct {
	MediaID  int     `json:"mediaId"`
	Title    string  `json:"title"`
	Score    float64 `json:"score,omitempty"`
	Progress int     `json:"progress,omitempty"`
	Repeat   int     `json:"repeat,omitempty"`
}

// UserRecord is a user's record reconstructed from partitioned storage.  Meta is
// mandatory; every other part is optional and nil when absent.  Records are
// read-only within a request.
type UserRecord struct {
	Meta       *UserMeta       `json:"meta"`
	Stats      *StatsPart      `json:"stats,omitempty"`
	Favourites *Favourites     `json:"favourites,omitempty"`
	Statistics *StatisticsPart `json:"statistics,omitempty"`
	Pages      *PagesPart      `json:"pages,omitempty"`
	Planning   []MediaEntry    `json:"planning,omitempty"`
	Current    []MediaEntry    `json:"current,omitempty"`
	Rewatched  []MediaEntry    `json:"rewatched,omitempty"`
	Completed  []MediaEntry    `json:"completed,omitempty"`
}

// DistributionDatum is a single raw value/count pair handed to the distribution
// template engine.  Values are score buckets or calendar years; entries with
// non-finite members are dropped during normalization rather than rejected.
type DistributionDatum struct {
	Value float64 `json:"value"`
	Count float64 `json:"count"`
}
