// Package spectator serves a read-only live view of the session so the room
// can follow along on phones. It never mutates tournament state.
package spectator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"taikai/internal/config"
	"taikai/internal/tourney"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	cfg   config.Config
	log   *slog.Logger
	store *tourney.Store
	mux   *chi.Mux
}

func New(cfg config.Config, logger *slog.Logger, store *tourney.Store) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:   cfg,
		log:   logger,
		store: store,
		mux:   chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/rounds/{round}", s.handleRound)
		r.Get("/standings", s.handleStandings)
		r.Get("/reports", s.handleReports)
		r.Get("/events", s.handleEvents)
	})
}

type stateView struct {
	SessionID string           `json:"session_id"`
	Phase     tourney.Progress `json:"phase"`
	Teams     []tourney.Team   `json:"teams"`
	Rounds    []roundView      `json:"rounds"`
}

type roundView struct {
	Round   int         `json:"round"`
	Locked  bool        `json:"locked"`
	Matches []matchView `json:"matches"`
}

// matchView carries a team's order only once the round is locked. Before
// that spectators see just how many slots each team has filled, keeping
// submissions secret from the other side.
type matchView struct {
	Team1       int                          `json:"team1_id"`
	Team2       int                          `json:"team2_id"`
	OrderCounts map[string]int               `json:"order_counts"`
	Orders      map[string]map[string]string `json:"orders,omitempty"`
	Results     []resultView                 `json:"results"`
	Completed   bool                         `json:"completed"`
}

type resultView struct {
	Slot   string `json:"slot"`
	Winner int    `json:"winner_team_id,omitempty"`
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, stateView{
		SessionID: s.store.SessionID(),
		Phase:     s.store.Phase(),
		Teams:     s.store.Teams(),
		Rounds:    roundViews(s.store.Snapshot()),
	})
}

func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "round must be a number")
		return
	}
	round, err := s.store.Round(number - 1)
	if err != nil {
		if errors.Is(err, tourney.ErrRoundOutOfRange) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, roundViews([]tourney.Round{round})[0])
}

func (s *Server) handleStandings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Standings())
}

func (s *Server) handleReports(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"reports": s.store.Reports()})
}

// handleEvents streams store events over SSE until the client hangs up.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	id, events := s.store.Subscribe()
	defer s.store.Unsubscribe(id)

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case ev, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, payload)
			flusher.Flush()
		}
	}
}

func roundViews(rounds []tourney.Round) []roundView {
	out := make([]roundView, 0, len(rounds))
	for _, round := range rounds {
		rv := roundView{Round: round.Number, Locked: round.Locked}
		for i := range round.Matches {
			m := &round.Matches[i]
			mv := matchView{
				Team1:       m.Team1,
				Team2:       m.Team2,
				OrderCounts: make(map[string]int, 2),
				Completed:   m.Completed,
			}
			if round.Locked {
				mv.Orders = make(map[string]map[string]string, 2)
			}
			for _, teamID := range []int{m.Team1, m.Team2} {
				order, _ := m.Order(teamID)
				mv.OrderCounts[strconv.Itoa(teamID)] = order.Filled()
				if !round.Locked {
					continue
				}
				slots := make(map[string]string, tourney.NumSlots)
				for _, slot := range tourney.Slots() {
					if name := order.Player(slot); name != "" {
						slots[slot.String()] = name
					}
				}
				mv.Orders[strconv.Itoa(teamID)] = slots
			}
			for _, res := range m.Results {
				mv.Results = append(mv.Results, resultView{Slot: res.Slot.String(), Winner: res.Winner})
			}
			rv.Matches = append(rv.Matches, mv)
		}
		out = append(out, rv)
	}
	return out
}

// Run serves until the context is canceled, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger, store *tourney.Store) error {
	server := New(cfg, logger, store)
	httpServer := &http.Server{
		Addr:              cfg.SpectatorAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("spectator view listening", "addr", cfg.SpectatorAddr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
