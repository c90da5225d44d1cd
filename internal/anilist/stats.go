package anilist

import (
	"context"
	"fmt"
	"time"

	"github.com/RLAlpha49/AniCards-sub005/internal/domain"
	"github.com/RLAlpha49/AniCards-sub005/internal/log"
)

// FetchUserRecord pulls everything the cards need for one user and assembles the
// partitioned record the store persists.  Social stats need the user id, which
// we only have after the main query, so they go in a second round trip.
func (c *Client) FetchUserRecord(ctx context.Context, username string) (*domain.UserRecord, error) {
	var response userResponse
	if err := c.Query(ctx, mainUserQuery, map[string]interface{}{"userName": username}, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch user statistics: %w", err)
	}
	if response.User.ID == 0 {
		return nil, fmt.Errorf("no AniList user named %q", username)
	}

	social, err := c.fetchSocialStats(ctx, response.User.ID)
	if err != nil {
		// Social stats only feed one card; a stale zero value beats failing
		// the whole refresh.
		log.Warn("Failed to fetch social stats", "username", username, "error", err)
		social = domain.SocialStats{}
	}

	rec := assembleRecord(&response, social)
	log.Info("Fetched user record from AniList", "username", username, "id", rec.Meta.ID)
	return rec, nil
}

const mainUserQuery = `
    query ($userName: String) {
        User(name: $userName) {
            id
            name
            avatar {
                large
            }
            siteUrl
            statistics {
                anime {
                    count
                    episodesWatched
                    minutesWatched
                    meanScore
                    standardDeviation
                    scores(sort: MEAN_SCORE) {
                        score
                        count
                    }
                    statuses {
                        status
                        count
                    }
                    startYears {
                        startYear
                        count
                    }
                    genres(sort: COUNT_DESC) {
                        genre
                        count
                    }
                    tags(sort: COUNT_DESC) {
                        tag {
                            name
                        }
                        count
                    }
                    voiceActors(sort: COUNT_DESC) {
                        voiceActor {
                            name {
                                full
                            }
                        }
                        count
                    }
                    studios(sort: COUNT_DESC) {
                        studio {
                            name
                        }
                        count
                    }
                    staff(sort: COUNT_DESC) {
                        staff {
                            name {
                                full
                            }
                        }
                        count
                    }
                }
                manga {
                    count
                    chaptersRead
                    volumesRead
                    meanScore
                    standardDeviation
                    scores(sort: MEAN_SCORE) {
                        score
                        count
                    }
                    statuses {
                        status
                        count
                    }
                    startYears {
                        startYear
                        count
                    }
                    genres(sort: COUNT_DESC) {
                        genre
                        count
                    }
                    tags(sort: COUNT_DESC) {
                        tag {
                            name
                        }
                        count
                    }
                    staff(sort: COUNT_DESC) {
                        staff {
                            name {
                                full
                            }
                        }
                        count
                    }
                }
            }
            favourites {
                anime {
                    nodes {
                        title {
                            userPreferred
                        }
                        coverImage {
                            medium
                        }
                    }
                }
                manga {
                    nodes {
                        title {
                            userPreferred
                        }
                        coverImage {
                            medium
                        }
                    }
                }
                characters {
                    nodes {
                        name {
                            full
                        }
                        image {
                            medium
                        }
                    }
                }
                staff {
                    nodes {
                        name {
                            full
                        }
                        image {
                            medium
                        }
                    }
                }
                studios {
                    nodes {
                        name
                    }
                }
            }
        }
    }
`

// fetchSocialStats pulls follower/following/activity totals for a user id
func (c *Client) fetchSocialStats(ctx context.Context, userID int64) (domain.SocialStats, error) {
	query := `
        query ($userId: Int!) {
            followersPage: Page(perPage: 1) {
                pageInfo {
                    total
                }
                followers(userId: $userId) {
                    id
                }
            }
            followingPage: Page(perPage: 1) {
                pageInfo {
                    total
                }
                following(userId: $userId) {
                    id
                }
            }
            activityPage: Page(perPage: 1) {
                pageInfo {
                    total
                }
                activities(userId: $userId) {
                    __typename
                }
            }
        }
    `

	var response struct {
		FollowersPage struct {
			PageInfo struct{ Total int }
		} `json:"followersPage"`
		FollowingPage struct {
			PageInfo struct{ Total int }
		} `json:"followingPage"`
		ActivityPage struct {
			PageInfo struct{ Total int }
		} `json:"activityPage"`
	}

	if err := c.Query(ctx, query, map[string]interface{}{"userId": userID}, &response); err != nil {
		return domain.SocialStats{}, err
	}

	return domain.SocialStats{
		TotalFollowers: response.FollowersPage.PageInfo.Total,
		TotalFollowing: response.FollowingPage.PageInfo.Total,
		TotalActivity:  response.ActivityPage.PageInfo.Total,
	}, nil
}

// assembleRecord splits the API response into the storage partitions
func assembleRecord(resp *userResponse, social domain.SocialStats) *domain.UserRecord {
	u := &resp.User

	profile := domain.UserProfile{
		Favourites: domain.Favourites{
			Anime:      mediaItems(u.Favourites.Anime.Nodes),
			Manga:      mediaItems(u.Favourites.Manga.Nodes),
			Characters: namedItems(u.Favourites.Characters.Nodes),
			Staff:      namedItems(u.Favourites.Staff.Nodes),
			Studios:    studioItems(u.Favourites.Studios.Nodes),
		},
		Social: social,
	}
	profile.Statistics.Anime = mediaTypeStats(&u.Statistics.Anime)
	profile.Statistics.Manga = mediaTypeStats(&u.Statistics.Manga)

	statistics := &domain.StatisticsPart{
		AnimeScores: scoreBuckets(u.Statistics.Anime.Scores),
		MangaScores: scoreBuckets(u.Statistics.Manga.Scores),
		AnimeYears:  yearBuckets(u.Statistics.Anime.StartYears),
		MangaYears:  yearBuckets(u.Statistics.Manga.StartYears),
	}

	favourites := profile.Favourites

	return &domain.UserRecord{
		Meta: &domain.UserMeta{
			ID:        u.ID,
			Name:      u.Name,
			Avatar:    u.Avatar.Large,
			SiteURL:   u.SiteURL,
			UpdatedAt: time.Now().Unix(),
		},
		Stats:      &domain.StatsPart{User: profile},
		Favourites: &favourites,
		Statistics: statistics,
		Pages:      &domain.PagesPart{Covers: mediaItems(u.Favourites.Anime.Nodes)},
	}
}

func mediaTypeStats(s *rawMediaStats) domain.MediaTypeStats {
	return domain.MediaTypeStats{
		Count:             s.Count,
		EpisodesWatched:   s.EpisodesWatched,
		MinutesWatched:    s.MinutesWatched,
		ChaptersRead:      s.ChaptersRead,
		VolumesRead:       s.VolumesRead,
		MeanScore:         s.MeanScore,
		StandardDeviation: s.StandardDeviation,
		Genres:            genreCounts(s.Genres),
		Tags:              tagCounts(s.Tags),
		VoiceActors:       voiceActorCounts(s.VoiceActors),
		Studios:           studioCounts(s.Studios),
		Staff:             staffCounts(s.Staff),
		Statuses:          statusBuckets(s.Statuses),
	}
}
