package tourney

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event names pushed to spectator subscribers.
const (
	EventOrderSubmitted = "order-submitted"
	EventRoundLocked    = "round-locked"
	EventResultReported = "result-reported"
	EventMatchCompleted = "match-completed"
	EventStepAdvanced   = "step-advanced"
	EventSessionReset   = "session-reset"
)

type Event struct {
	Type   string    `json:"type"`
	Round  int       `json:"round,omitempty"`
	Match  int       `json:"match,omitempty"`
	Slot   string    `json:"slot,omitempty"`
	TeamID int       `json:"team_id,omitempty"`
	Step   Step      `json:"step,omitempty"`
	At     time.Time `json:"at"`
}

// ReportEntry is the in-memory audit trail of accepted result reports,
// including corrections. It exists for the spectator API only and is
// discarded with the session.
type ReportEntry struct {
	ID     string    `json:"id"`
	Round  int       `json:"round"`
	Match  int       `json:"match"`
	Slot   string    `json:"slot"`
	Winner int       `json:"winner_team_id"`
	At     time.Time `json:"at"`
}

// Store owns the round/match/result tree for one session. The active UI
// screen is the only writer; the mutex exists so read-only consumers (the
// spectator server) can snapshot concurrently.
type Store struct {
	mu        sync.RWMutex
	sessionID string
	teams     []Team
	configs   []RoundConfig
	rounds    []Round
	phase     Progress
	reports   []ReportEntry
	subs      map[int]chan Event
	nextSub   int
}

// NewStore builds the full round tree eagerly from static configuration:
// empty orders, unreported results, nothing locked or completed.
func NewStore(teams []Team, configs []RoundConfig) *Store {
	s := &Store{
		sessionID: uuid.NewString(),
		teams:     teams,
		configs:   configs,
		subs:      make(map[int]chan Event),
	}
	s.rebuild()
	return s
}

func (s *Store) rebuild() {
	s.rounds = make([]Round, len(s.configs))
	for i, cfg := range s.configs {
		s.rounds[i] = newRound(cfg)
	}
	s.phase = NewProgress(len(s.configs))
	s.reports = nil
}

// Reset reinitializes the session from static configuration. Escape hatch
// from the terminal standings view.
func (s *Store) Reset() {
	s.mu.Lock()
	s.sessionID = uuid.NewString()
	s.rebuild()
	s.mu.Unlock()
	s.publish(Event{Type: EventSessionReset})
}

// SessionID identifies the current session; Reset issues a new one.
func (s *Store) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

func (s *Store) Teams() []Team {
	out := make([]Team, len(s.teams))
	copy(out, s.teams)
	return out
}

func (s *Store) Team(id int) (Team, bool) {
	for _, t := range s.teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

func (s *Store) NumRounds() int {
	return len(s.configs)
}

// Round returns a copy of the indexed round.
func (s *Store) Round(idx int) (Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx < 0 || idx >= len(s.rounds) {
		return Round{}, ErrRoundOutOfRange
	}
	return s.rounds[idx], nil
}

// Snapshot deep-copies the full round history for read-only consumers.
func (s *Store) Snapshot() []Round {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Round, len(s.rounds))
	copy(out, s.rounds)
	return out
}

// SubmitAssignment replaces the named team's order for the target match in
// full; partial merges never happen. The round lock is recomputed after
// every accepted submission.
func (s *Store) SubmitAssignment(roundIdx, matchIdx, teamID int, order Assignment) error {
	s.mu.Lock()
	if roundIdx < 0 || roundIdx >= len(s.rounds) {
		s.mu.Unlock()
		return ErrRoundOutOfRange
	}
	round := &s.rounds[roundIdx]
	if matchIdx < 0 || matchIdx >= len(round.Matches) {
		s.mu.Unlock()
		return ErrMatchOutOfRange
	}
	match := &round.Matches[matchIdx]
	idx, ok := match.orderIndex(teamID)
	if !ok {
		s.mu.Unlock()
		return ErrUnknownTeam
	}
	team, ok := s.teamLocked(teamID)
	if !ok {
		s.mu.Unlock()
		return ErrUnknownTeam
	}
	if err := ValidateAssignment(team, order); err != nil {
		s.mu.Unlock()
		return err
	}

	match.Orders[idx] = order
	round.recomputeLocked()
	locked := round.Locked
	s.mu.Unlock()

	s.publish(Event{Type: EventOrderSubmitted, Round: roundIdx, Match: matchIdx, TeamID: teamID})
	if locked {
		s.publish(Event{Type: EventRoundLocked, Round: roundIdx})
	}
	return nil
}

// ReportResult sets one slot game's winner. Reporting an already-reported
// slot overwrites it; that is the correction path, not an error.
func (s *Store) ReportResult(roundIdx, matchIdx int, slot Slot, winnerTeamID int) error {
	if slot < SlotA || slot > SlotD {
		return ErrInvalidSlot
	}
	s.mu.Lock()
	if roundIdx < 0 || roundIdx >= len(s.rounds) {
		s.mu.Unlock()
		return ErrRoundOutOfRange
	}
	round := &s.rounds[roundIdx]
	if matchIdx < 0 || matchIdx >= len(round.Matches) {
		s.mu.Unlock()
		return ErrMatchOutOfRange
	}
	match := &round.Matches[matchIdx]
	if !match.HasTeam(winnerTeamID) {
		s.mu.Unlock()
		return ErrInvalidWinner
	}

	match.Results[slot].Winner = winnerTeamID
	match.recomputeCompleted()
	completed := match.Completed
	s.reports = append(s.reports, ReportEntry{
		ID:     uuid.NewString(),
		Round:  roundIdx,
		Match:  matchIdx,
		Slot:   slot.String(),
		Winner: winnerTeamID,
		At:     time.Now(),
	})
	s.mu.Unlock()

	s.publish(Event{Type: EventResultReported, Round: roundIdx, Match: matchIdx, Slot: slot.String(), TeamID: winnerTeamID})
	if completed {
		s.publish(Event{Type: EventMatchCompleted, Round: roundIdx, Match: matchIdx})
	}
	return nil
}

// IsTeamAssignmentComplete reports whether the team's order in its match of
// the indexed round has all four slots filled.
func (s *Store) IsTeamAssignmentComplete(roundIdx, teamID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if roundIdx < 0 || roundIdx >= len(s.rounds) {
		return false
	}
	round := &s.rounds[roundIdx]
	mi, ok := round.MatchForTeam(teamID)
	if !ok {
		return false
	}
	order, _ := round.Matches[mi].Order(teamID)
	return order.Complete()
}

// IsRoundFullyAssigned mirrors Round.Locked.
func (s *Store) IsRoundFullyAssigned(roundIdx int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if roundIdx < 0 || roundIdx >= len(s.rounds) {
		return false
	}
	return s.rounds[roundIdx].Locked
}

func (s *Store) IsRoundFullyReported(roundIdx int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if roundIdx < 0 || roundIdx >= len(s.rounds) {
		return false
	}
	for _, m := range s.rounds[roundIdx].Matches {
		if !m.Completed {
			return false
		}
	}
	return true
}

// SetPhase records the controller's position so spectators can follow the
// session. The Store does not gate or reorder steps.
func (s *Store) SetPhase(p Progress) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
	s.publish(Event{Type: EventStepAdvanced, Round: p.RoundIndex, Step: p.Step})
}

func (s *Store) Phase() Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *Store) Reports() []ReportEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ReportEntry, len(s.reports))
	copy(out, s.reports)
	return out
}

// Standings computes the current team ranking and player leaderboard from a
// snapshot. Valid at any point; intended for the terminal screen once all
// rounds are reported.
func (s *Store) Standings() Standings {
	return ComputeStandings(s.Teams(), s.Snapshot())
}

// Subscribe registers a spectator event channel. Slow subscribers drop
// events rather than block the session.
func (s *Store) Subscribe() (int, <-chan Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan Event, 16)
	s.subs[id] = ch
	return id, ch
}

func (s *Store) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Store) publish(ev Event) {
	ev.At = time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *Store) teamLocked(id int) (Team, bool) {
	for _, t := range s.teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}
