package anilist

import "github.com/RLAlpha49/AniCards-sub005/internal/domain"

// Raw response shapes for the main user query.  These mirror the AniList schema
// and get mapped into domain types before anything else touches them.

type userResponse struct {
	User struct {
		ID     int64
		Name   string
		Avatar struct {
			Large string
		}
		SiteURL string `json:"siteUrl"`

		Statistics struct {
			Anime rawMediaStats
			Manga rawMediaStats
		}

		Favourites struct {
			Anime struct {
				Nodes []rawMediaNode
			}
			Manga struct {
				Nodes []rawMediaNode
			}
			Characters struct {
				Nodes []rawNamedNode
			}
			Staff struct {
				Nodes []rawNamedNode
			}
			Studios struct {
				Nodes []rawStudioNode
			}
		}
	}
}

type rawMediaStats struct {
	Count             int
	EpisodesWatched   int     `json:"episodesWatched"`
	MinutesWatched    int     `json:"minutesWatched"`
	ChaptersRead      int     `json:"chaptersRead"`
	VolumesRead       int     `json:"volumesRead"`
	MeanScore         float64 `json:"meanScore"`
	StandardDeviation float64 `json:"standardDeviation"`

	Scores      []rawScore
	Statuses    []rawStatus
	StartYears  []rawStartYear  `json:"startYears"`
	Genres      []rawGenre
	Tags        []rawTag
	VoiceActors []rawVoiceActor `json:"voiceActors"`
	Studios     []rawStudio
	Staff       []rawStaff
}

type rawScore struct {
	Score int
	Count int
}

type rawStatus struct {
	Status string
	Count  int
}

type rawStartYear struct {
	StartYear int `json:"startYear"`
	Count     int
}

type rawGenre struct {
	Genre string
	Count int
}

type rawTag struct {
	Tag struct {
		Name string
	}
	Count int
}

type rawVoiceActor struct {
	VoiceActor struct {
		Name rawFullName
	} `json:"voiceActor"`
	Count int
}

type rawStudio struct {
	Studio struct {
		Name string
	}
	Count int
}

type rawStaff struct {
	Staff struct {
		Name rawFullName
	}
	Count int
}

type rawFullName struct {
	Full string
}

type rawMediaNode struct {
	Title struct {
		UserPreferred string `json:"userPreferred"`
	}
	CoverImage struct {
		Medium string
	} `json:"coverImage"`
}

type rawNamedNode struct {
	Name  rawFullName
	Image struct {
		Medium string
	}
}

type rawStudioNode struct {
	Name string
}

func mediaItems(nodes []rawMediaNode) []domain.FavouriteItem {
	items := make([]domain.FavouriteItem, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, domain.FavouriteItem{Name: n.Title.UserPreferred, Image: n.CoverImage.Medium})
	}
	return items
}

func namedItems(nodes []rawNamedNode) []domain.FavouriteItem {
	items := make([]domain.FavouriteItem, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, domain.FavouriteItem{Name: n.Name.Full, Image: n.Image.Medium})
	}
	return items
}

func studioItems(nodes []rawStudioNode) []domain.FavouriteItem {
	items := make([]domain.FavouriteItem, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, domain.FavouriteItem{Name: n.Name})
	}
	return items
}

func scoreBuckets(raw []rawScore) []domain.ScoreBucket {
	buckets := make([]domain.ScoreBucket, 0, len(raw))
	for _, b := range raw {
		buckets = append(buckets, domain.ScoreBucket{Score: b.Score, Count: b.Count})
	}
	return buckets
}

func yearBuckets(raw []rawStartYear) []domain.YearBucket {
	buckets := make([]domain.YearBucket, 0, len(raw))
	for _, b := range raw {
		buckets = append(buckets, domain.YearBucket{Year: b.StartYear, Count: b.Count})
	}
	return buckets
}

func statusBuckets(raw []rawStatus) []domain.StatusBucket {
	buckets := make([]domain.StatusBucket, 0, len(raw))
	for _, b := range raw {
		buckets = append(buckets, domain.StatusBucket{Status: b.Status, Count: b.Count})
	}
	return buckets
}

func genreCounts(raw []rawGenre) []domain.NamedCount {
	counts := make([]domain.NamedCount, 0, len(raw))
	for _, g := range raw {
		counts = append(counts, domain.NamedCount{Name: g.Genre, Count: g.Count})
	}
	return counts
}

func tagCounts(raw []rawTag) []domain.NamedCount {
	counts := make([]domain.NamedCount, 0, len(raw))
	for _, t := range raw {
		counts = append(counts, domain.NamedCount{Name: t.Tag.Name, Count: t.Count})
	}
	return counts
}

func voiceActorCounts(raw []rawVoiceActor) []domain.NamedCount {
	counts := make([]domain.NamedCount, 0, len(raw))
	for _, v := range raw {
		counts = append(counts, domain.NamedCount{Name: v.VoiceActor.Name.Full, Count: v.Count})
	}
	return counts
}

func studioCounts(raw []rawStudio) []domain.NamedCount {
	counts := make([]domain.NamedCount, 0, len(raw))
	for _, s := range raw {
		counts = append(counts, domain.NamedCount{Name: s.Studio.Name, Count: s.Count})
	}
	return counts
}

func staffCounts(raw []rawStaff) []domain.NamedCount {
	counts := make([]domain.NamedCount, 0, len(raw))
	for _, s := range raw {
		counts = append(counts, domain.NamedCount{Name: s.Staff.Name.Full, Count: s.Count})
	}
	return counts
}
