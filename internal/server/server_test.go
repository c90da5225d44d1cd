package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RLAlpha49/AniCards-sub005/internal/anilist"
	"github.com/RLAlpha49/AniCards-sub005/internal/domain"
	"github.com/RLAlpha49/AniCards-sub005/internal/service"
	"github.com/RLAlpha49/AniCards-sub005/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("Failed to close test database: %v", err)
		}
	})

	st := store.New(db, nil)
	svc := service.New(st, nil)
	srv := New(Config{
		Addr:            "127.0.0.1:0",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}, svc, st, anilist.NewClient(""), nil, prometheus.NewRegistry())

	return srv, st
}

func seedUser(t *testing.T, st *store.Store) {
	t.Helper()
	rec := &domain.UserRecord{
		Meta: &domain.UserMeta{ID: 42, Name: "Tester"},
		Statistics: &domain.StatisticsPart{
			AnimeScores: []domain.ScoreBucket{{Score: 7, Count: 12}},
		},
	}
	require.NoError(t, st.SaveUserRecord(context.Background(), rec))
}

func doRequest(srv *Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	srv.http.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleCard(t *testing.T) {
	srv, st := newTestServer(t)
	seedUser(t, st)

	t.Run("renders SVG for a known user", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet,
			"/cards/animeScoreDistribution?username=tester&colorPreset=default")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "image/svg+xml")
		assert.Contains(t, rec.Body.String(), "7:12")
	})

	t.Run("userId works without the username index", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet,
			"/cards/animeScoreDistribution?userId=42&colorPreset=default")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing identity is a 400", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/cards/animeScoreDistribution")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	})

	t.Run("non-numeric userId is a 400", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/cards/animeScoreDistribution?userId=forty-two")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown username is a 404 with suggestions", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/cards/animeScoreDistribution?username=teser")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var payload errorPayload
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Contains(t, payload.Error, "not found")
		assert.Contains(t, payload.Suggestions, "tester")
	})

	t.Run("missing stored card config is a 404, not broken SVG", func(t *testing.T) {
		// No colorPreset: the stored config path is forced, and no cards are stored
		rec := doRequest(srv, http.MethodGet, "/cards/animeScoreDistribution?username=tester")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		assert.Contains(t, rec.Body.String(), "regenerate")
	})

	t.Run("markup in color params never reaches the document", func(t *testing.T) {
		payload := url.QueryEscape(`</style><script>alert(1)</script>`)
		rec := doRequest(srv, http.MethodGet,
			"/cards/animeScoreDistribution?username=tester&colorPreset=default&circleColor="+payload)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "<script")
	})

	t.Run("unknown card type is a 400", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/cards/petRocks?username=tester&colorPreset=default")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(srv, http.MethodGet, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(srv, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClassifyCardError(t *testing.T) {
	status, _ := classifyCardError(store.ErrUserNotFound)
	assert.Equal(t, http.StatusNotFound, status)

	status, msg := classifyCardError(&store.CorruptedRecordError{Kind: "user", Key: "user:1:meta"})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotContains(t, msg, "user:1:meta", "internal keys must not leak to clients")
}
