// Package store is the partitioned user-record and card-record storage layer,
// backed by BadgerDB.  A user's record is split across per-part keys and
// reconstructed on read; card requests load only the partitions the card needs.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/RLAlpha49/AniCards-sub005/internal/domain"
	"github.com/RLAlpha49/AniCards-sub005/internal/log"
	"github.com/RLAlpha49/AniCards-sub005/internal/metrics"
)

// analyticsSubsystem labels the counters emitted by this package
const analyticsSubsystem = "cards"

// ErrUserNotFound indicates the mandatory meta partition is missing: as far as
// card rendering is concerned the user does not exist and needs to generate
// their cards first.
var ErrUserNotFound = errors.New("user data not found, please generate your cards first")

// CorruptedRecordError indicates a stored JSON fragment failed to parse.  Kind
// distinguishes a degraded user store from a degraded card store.
type CorruptedRecordError struct {
	Kind string // "user" or "card"
	Key  string
	Err  error
}

func (e *CorruptedRecordError) Error() string {
	return fmt.Sprintf("corrupted %s record at %s: %v", e.Kind, e.Key, e.Err)
}

func (e *CorruptedRecordError) Unwrap() error {
	return e.Err
}

// Store wraps the BadgerDB handle plus the analytics side channel
type Store struct {
	db      *badger.DB
	counter metrics.Counter
}

// Open opens (or creates) the store at dir
func Open(dir string, counter metrics.Counter) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("unable to open card store: %w", err)
	}
	return New(db, counter), nil
}

// New wraps an existing BadgerDB handle.  Used by tests with in-memory databases.
func New(db *badger.DB, counter metrics.Counter) *Store {
	if counter == nil {
		counter = metrics.Noop{}
	}
	return &Store{db: db, counter: counter}
}

// Close releases the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

func userKey(id int64, part string) string {
	return fmt.Sprintf("user:%d:%s", id, part)
}

func cardsKey(id int64) string {
	return fmt.Sprintf("cards:%d", id)
}

func usernameKey(name string) string {
	return "username:" + strings.ToLower(name)
}

// relevantPartitions returns the user-record partitions a card type needs.
// Unknown or empty card names load everything.
func relevantPartitions(cardType domain.CardType) []string {
	switch cardType {
	case domain.CardAnimeStats, domain.CardMangaStats, domain.CardSocialStats,
		domain.CardAnimeGenres, domain.CardAnimeTags, domain.CardAnimeVoiceActors,
		domain.CardAnimeStudios, domain.CardAnimeStaff,
		domain.CardMangaGenres, domain.CardMangaTags, domain.CardMangaStaff,
		domain.CardAnimeStatusDistribution, domain.CardMangaStatusDistribution:
		return []string{domain.PartMeta, domain.PartStats}
	case domain.CardAnimeScoreDistribution, domain.CardMangaScoreDistribution,
		domain.CardAnimeYearDistribution, domain.CardMangaYearDistribution:
		return []string{domain.PartMeta, domain.PartStatistics}
	case domain.CardFavoritesGrid:
		return []string{domain.PartMeta, domain.PartFavourites, domain.PartPages}
	}
	return domain.AllPartitions
}

// FetchUserDataForCard reconstructs the slice of a user record needed by the
// given card type.  A missing meta partition is ErrUserNotFound; an unparsable
// partition is a CorruptedRecordError and bumps the corrupted_user_records
// analytics counter.
func (s *Store) FetchUserDataForCard(ctx context.Context, userID int64, cardType domain.CardType) (*domain.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := &domain.UserRecord{}
	err := s.db.View(func(txn *badger.Txn) error {
		for _, part := range relevantPartitions(cardType) {
			key := userKey(userID, part)
			item, err := txn.Get([]byte(key))
			if errors.Is(err, badger.ErrKeyNotFound) {
				if part == domain.PartMeta {
					return ErrUserNotFound
				}
				continue
			}
			if err != nil {
				return fmt.Errorf("reading %s: %w", key, err)
			}
			if err := item.Value(func(val []byte) error {
				return parsePartition(rec, part, val)
			}); err != nil {
				s.counter.Increment(metrics.Key(analyticsSubsystem, metrics.EventCorruptedUserRecords))
				return &CorruptedRecordError{Kind: "user", Key: key, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FetchUserData loads the user's card list and the user-data partitions relevant
// to the card type (all partitions when cardType is empty).  Card-list storage
// errors propagate unwrapped so a backend failure stays distinguishable from a
// business-level not-found.
func (s *Store) FetchUserData(ctx context.Context, userID int64, cardType domain.CardType) (*domain.CardsRecord, *domain.UserRecord, error) {
	cardsRec, err := s.FetchCards(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	userRec, err := s.FetchUserDataForCard(ctx, userID, cardType)
	if err != nil {
		return nil, nil, err
	}
	return cardsRec, userRec, nil
}

// FetchCards loads a user's stored card list.  A missing key yields an empty
// record; an unparsable one is a CorruptedRecordError and bumps the
// corrupted_card_records counter.
func (s *Store) FetchCards(ctx context.Context, userID int64) (*domain.CardsRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := &domain.CardsRecord{UserID: userID}
	err := s.db.View(func(txn *badger.Txn) error {
		key := cardsKey(userID)
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &rec.Cards); err != nil {
				s.counter.Increment(metrics.Key(analyticsSubsystem, metrics.EventCorruptedCardRecords))
				return &CorruptedRecordError{Kind: "card", Key: key, Err: err}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ResolveUserID resolves a username through the secondary index.
// Case-insensitive; a miss returns ok=false, not an error.
func (s *Store) ResolveUserID(ctx context.Context, username string) (int64, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	var id int64
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(usernameKey(username)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			_, scanErr := fmt.Sscanf(string(val), "%d", &id)
			if scanErr != nil {
				return fmt.Errorf("bad username index entry for %q: %w", username, scanErr)
			}
			found = true
			return nil
		})
	})
	if err != nil {
		return 0, false, err
	}
	return id, found, nil
}

// Usernames lists every indexed username.  Used for fuzzy suggestions and the
// refresh job.
func (s *Store) Usernames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte("username:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			names = append(names, strings.TrimPrefix(string(it.Item().Key()), "username:"))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// SaveUserRecord writes every present partition of a user record plus the
// username index entry.  Used by the ingest path and the refresh job; the
// request path never writes.
func (s *Store) SaveUserRecord(ctx context.Context, rec *domain.UserRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec.Meta == nil {
		return errors.New("user record missing meta partition")
	}

	parts, err := marshalPartitions(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for part, data := range parts {
			if err := txn.Set([]byte(userKey(rec.Meta.ID, part)), data); err != nil {
				return fmt.Errorf("writing %s partition: %w", part, err)
			}
		}
		idx := usernameKey(rec.Meta.Name)
		if err := txn.Set([]byte(idx), []byte(fmt.Sprintf("%d", rec.Meta.ID))); err != nil {
			return fmt.Errorf("writing username index: %w", err)
		}
		return nil
	})
}

// SaveCards persists a user's card list
func (s *Store) SaveCards(ctx context.Context, rec *domain.CardsRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(rec.Cards)
	if err != nil {
		return fmt.Errorf("marshal card list: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(cardsKey(rec.UserID)), data)
	})
}

// parsePartition decodes one stored fragment into its slot on the record
func parsePartition(rec *domain.UserRecord, part string, data []byte) error {
	switch part {
	case domain.PartMeta:
		rec.Meta = &domain.UserMeta{}
		return json.Unmarshal(data, rec.Meta)
	case domain.PartStats:
		rec.Stats = &domain.StatsPart{}
		return json.Unmarshal(data, rec.Stats)
	case domain.PartFavourites:
		rec.Favourites = &domain.Favourites{}
		return json.Unmarshal(data, rec.Favourites)
	case domain.PartStatistics:
		rec.Statistics = &domain.StatisticsPart{}
		return json.Unmarshal(data, rec.Statistics)
	case domain.PartPages:
		rec.Pages = &domain.PagesPart{}
		return json.Unmarshal(data, rec.Pages)
	case domain.PartPlanning:
		return json.Unmarshal(data, &rec.Planning)
	case domain.PartCurrent:
		return json.Unmarshal(data, &rec.Current)
	case domain.PartRewatched:
		return json.Unmarshal(data, &rec.Rewatched)
	case domain.PartCompleted:
		return json.Unmarshal(data, &rec.Completed)
	}
	log.Warn("Skipping unknown user record partition", "part", part)
	return nil
}

// marshalPartitions encodes the present parts of a record for storage
func marshalPartitions(rec *domain.UserRecord) (map[string][]byte, error) {
	parts := make(map[string][]byte)
	put := func(part string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal %s partition: %w", part, err)
		}
		parts[part] = data
		return nil
	}

	if err := put(domain.PartMeta, rec.Meta); err != nil {
		return nil, err
	}
	if rec.Stats != nil {
		if err := put(domain.PartStats, rec.Stats); err != nil {
			return nil, err
		}
	}
	if rec.Favourites != nil {
		if err := put(domain.PartFavourites, rec.Favourites); err != nil {
			return nil, err
		}
	}
	if rec.Statistics != nil {
		if err := put(domain.PartStatistics, rec.Statistics); err != nil {
			return nil, err
		}
	}
	if rec.Pages != nil {
		if err := put(domain.PartPages, rec.Pages); err != nil {
			return nil, err
		}
	}
	if rec.Planning != nil {
		if err := put(domain.PartPlanning, rec.Planning); err != nil {
			return nil, err
		}
	}
	if rec.Current != nil {
		if err := put(domain.PartCurrent, rec.Current); err != nil {
			return nil, err
		}
	}
	if rec.Rewatched != nil {
		if err := put(domain.PartRewatched, rec.Rewatched); err != nil {
			return nil, err
		}
	}
	if rec.Completed != nil {
		if err := put(domain.PartCompleted, rec.Completed); err != nil {
			return nil, err
		}
	}
	return parts, nil
}
