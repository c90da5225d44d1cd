// Package server exposes the card rendering service over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RLAlpha49/AniCards-sub005/internal/anilist"
	"github.com/RLAlpha49/AniCards-sub005/internal/cards"
	"github.com/RLAlpha49/AniCards-sub005/internal/domain"
	"github.com/RLAlpha49/AniCards-sub005/internal/log"
	"github.com/RLAlpha49/AniCards-sub005/internal/metrics"
	"github.com/RLAlpha49/AniCards-sub005/internal/service"
	"github.com/RLAlpha49/AniCards-sub005/internal/store"
)

// analyticsSubsystem labels the request counters emitted by this package
const analyticsSubsystem = "cards"

// maxSuggestions caps the fuzzy username suggestions on a 404
const maxSuggestions = 3

// Config holds the HTTP listener settings
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server wires the router, the card service and its collaborators
type Server struct {
	cfg     Config
	svc     *service.Service
	store   *store.Store
	anilist *anilist.Client
	counter metrics.Counter
	http    *http.Server
}

// New builds a Server.  The Prometheus registry backs /metrics; pass nil to use
// the default registry.
func New(cfg Config, svc *service.Service, st *store.Store, al *anilist.Client, counter metrics.Counter, reg *prometheus.Registry) *Server {
	if counter == nil {
		counter = metrics.Noop{}
	}
	s := &Server{cfg: cfg, svc: svc, store: st, anilist: al, counter: counter}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", s.handleHealth)
	if reg != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}
	r.Get("/cards/{cardType}", s.handleCard)
	r.Post("/users/{username}", s.handleGenerate)

	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown or a listener error
func (s *Server) ListenAndServe() error {
	log.Info("HTTP server listening", "addr", s.cfg.Addr)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleCard renders one card.  Errors always come back as a JSON payload with
// an appropriate status, never as a broken SVG document.
func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := cards.ParamsFromQuery(chi.URLParam(r, "cardType"), r.URL.Query())

	var (
		svg string
		err error
	)
	if idParam := r.URL.Query().Get("userId"); idParam != "" {
		var userID int64
		userID, err = strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			s.counter.Increment(metrics.Key(analyticsSubsystem, metrics.EventFailedRequests))
			writeError(w, http.StatusBadRequest, "userId must be an integer", nil)
			return
		}
		svg, err = s.svc.RenderCardByID(ctx, userID, p)
	} else if username := r.URL.Query().Get("username"); username != "" {
		svg, err = s.svc.RenderCard(ctx, username, p)
		if errors.Is(err, store.ErrUserNotFound) {
			s.counter.Increment(metrics.Key(analyticsSubsystem, metrics.EventFailedRequests))
			writeError(w, http.StatusNotFound, err.Error(), s.suggestUsernames(ctx, username))
			return
		}
	} else {
		s.counter.Increment(metrics.Key(analyticsSubsystem, metrics.EventFailedRequests))
		writeError(w, http.StatusBadRequest, "username or userId query parameter is required", nil)
		return
	}

	if err != nil {
		s.counter.Increment(metrics.Key(analyticsSubsystem, metrics.EventFailedRequests))
		status, msg := classifyCardError(err)
		log.Warn("Card request failed", "cardType", p.CardType, "status", status, "error", err)
		writeError(w, status, msg, nil)
		return
	}

	s.counter.Increment(metrics.Key(analyticsSubsystem, metrics.EventSuccessfulRequests))
	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write([]byte(svg))
}

// handleGenerate is the ingest path: fetch the user's data from AniList, persist
// the partitioned record and, when the body carries one, the card list.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	rec, err := s.anilist.FetchUserRecord(ctx, username)
	if err != nil {
		var netErr anilist.NetworkError
		if errors.As(err, &netErr) {
			writeError(w, http.StatusBadGateway, "AniList is unreachable, try again later", nil)
			return
		}
		writeError(w, http.StatusNotFound, err.Error(), nil)
		return
	}

	if err := s.store.SaveUserRecord(ctx, rec); err != nil {
		log.Error("Failed to persist user record", "username", username, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store user data", nil)
		return
	}

	if r.ContentLength > 0 {
		var cardList []domain.StoredCardConfig
		if err := json.NewDecoder(r.Body).Decode(&cardList); err != nil {
			writeError(w, http.StatusBadRequest, "invalid card list payload", nil)
			return
		}
		cardsRec := &domain.CardsRecord{UserID: rec.Meta.ID, Cards: cardList}
		if err := s.store.SaveCards(ctx, cardsRec); err != nil {
			log.Error("Failed to persist card list", "username", username, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to store card list", nil)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"userId":   rec.Meta.ID,
		"username": rec.Meta.Name,
	})
}

// classifyCardError maps service errors onto HTTP statuses.  Recoverable
// configuration misses are 404s; corrupted storage and everything else is a 500.
func classifyCardError(err error) (int, string) {
	var notFound *cards.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, notFound.Error()
	}
	if errors.Is(err, store.ErrUserNotFound) {
		return http.StatusNotFound, err.Error()
	}
	var unknown *service.UnknownCardTypeError
	if errors.As(err, &unknown) {
		return http.StatusBadRequest, unknown.Error()
	}
	var corrupted *store.CorruptedRecordError
	if errors.As(err, &corrupted) {
		return http.StatusInternalServerError, "stored record is corrupted, please regenerate your cards"
	}
	return http.StatusInternalServerError, "internal error"
}

// suggestUsernames fuzzy-matches the requested name against the known usernames
func (s *Server) suggestUsernames(ctx context.Context, username string) []string {
	names, err := s.store.Usernames(ctx)
	if err != nil {
		log.Warn("Failed to list usernames for suggestions", "error", err)
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(username, names)
	sort.Sort(ranks)
	suggestions := make([]string, 0, maxSuggestions)
	for _, rank := range ranks {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, rank.Target)
	}
	return suggestions
}

type errorPayload struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string, suggestions []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorPayload{Error: msg, Suggestions: suggestions})
}

// requestLogger logs one line per request with timing
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug("Handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
		)
	})
}
