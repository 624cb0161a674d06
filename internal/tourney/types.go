package tourney

import (
	"errors"
	"fmt"
	"strings"
)

// NumSlots is the number of simultaneous boards per match.
const NumSlots = 4

var (
	ErrRoundOutOfRange   = errors.New("round index out of range")
	ErrMatchOutOfRange   = errors.New("match index out of range")
	ErrUnknownTeam       = errors.New("team does not play in this match")
	ErrInvalidAssignment = errors.New("assignment must place all four roster players, one per slot")
	ErrInvalidWinner     = errors.New("winner must be one of the two competing teams")
	ErrInvalidSlot       = errors.New("slot must be one of A, B, C, D")
)

// Slot identifies one of the four boards played in parallel within a match.
type Slot int

const (
	SlotA Slot = iota
	SlotB
	SlotC
	SlotD
)

func Slots() [NumSlots]Slot {
	return [NumSlots]Slot{SlotA, SlotB, SlotC, SlotD}
}

func (s Slot) String() string {
	if s < SlotA || s > SlotD {
		return "?"
	}
	return string(rune('A' + int(s)))
}

func ParseSlot(v string) (Slot, error) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "A":
		return SlotA, nil
	case "B":
		return SlotB, nil
	case "C":
		return SlotC, nil
	case "D":
		return SlotD, nil
	default:
		return 0, ErrInvalidSlot
	}
}

type Team struct {
	ID      int              `json:"id"`
	Name    string           `json:"name"`
	Players [NumSlots]string `json:"players"`
}

func (t Team) HasPlayer(name string) bool {
	for _, p := range t.Players {
		if p == name {
			return true
		}
	}
	return false
}

// RoundConfig pins one round-robin round: two team-id pairs covering all
// four teams.
type RoundConfig struct {
	Round    int       `json:"round"`
	Pairings [2][2]int `json:"pairings"`
}

// Assignment is a team's declared order for one match, indexed by Slot.
// An empty string means the slot has not been filled yet.
type Assignment [NumSlots]string

func (a Assignment) Player(s Slot) string {
	return a[s]
}

func (a Assignment) Filled() int {
	n := 0
	for _, p := range a {
		if p != "" {
			n++
		}
	}
	return n
}

func (a Assignment) Complete() bool {
	return a.Filled() == NumSlots
}

// GameResult records the outcome of a single slot game. Winner is the
// winning team's id, or zero while unreported. Individual games have no
// draws: every reported game resolves to exactly one team.
type GameResult struct {
	Slot   Slot `json:"slot"`
	Winner int  `json:"winner_team_id"`
}

func (r GameResult) Reported() bool {
	return r.Winner != 0
}

// Match is one pairing of two teams across four slot games. Orders[0]
// always belongs to Team1 and Orders[1] to Team2.
type Match struct {
	Team1     int                  `json:"team1_id"`
	Team2     int                  `json:"team2_id"`
	Orders    [2]Assignment        `json:"orders"`
	Results   [NumSlots]GameResult `json:"results"`
	Completed bool                 `json:"completed"`
}

func (m *Match) HasTeam(id int) bool {
	return id == m.Team1 || id == m.Team2
}

func (m *Match) orderIndex(teamID int) (int, bool) {
	switch teamID {
	case m.Team1:
		return 0, true
	case m.Team2:
		return 1, true
	default:
		return 0, false
	}
}

// Order returns the named team's assignment. The second value is false when
// the team does not play in this match.
func (m *Match) Order(teamID int) (Assignment, bool) {
	idx, ok := m.orderIndex(teamID)
	if !ok {
		return Assignment{}, false
	}
	return m.Orders[idx], true
}

// Score counts the reported slot wins for one team in this match.
func (m *Match) Score(teamID int) int {
	wins := 0
	for _, r := range m.Results {
		if r.Winner == teamID {
			wins++
		}
	}
	return wins
}

// Verdict resolves the match outcome from the slot scores. A 2-2 split is
// the draw case; winner is zero then.
func (m *Match) Verdict() (winner int, draw bool) {
	s1 := m.Score(m.Team1)
	s2 := m.Score(m.Team2)
	switch {
	case s1 > s2:
		return m.Team1, false
	case s2 > s1:
		return m.Team2, false
	default:
		return 0, true
	}
}

func (m *Match) recomputeCompleted() {
	for _, r := range m.Results {
		if !r.Reported() {
			m.Completed = false
			return
		}
	}
	m.Completed = true
}

// Round is one round-robin round of exactly two matches. Locked flips to
// true once every team in both matches has a complete order.
type Round struct {
	Number  int      `json:"round"`
	Matches [2]Match `json:"matches"`
	Locked  bool     `json:"locked"`
}

func (r *Round) recomputeLocked() {
	for i := range r.Matches {
		m := &r.Matches[i]
		if !m.Orders[0].Complete() || !m.Orders[1].Complete() {
			r.Locked = false
			return
		}
	}
	r.Locked = true
}

// MatchForTeam finds the match (by index) the team plays in this round.
func (r *Round) MatchForTeam(teamID int) (int, bool) {
	for i := range r.Matches {
		if r.Matches[i].HasTeam(teamID) {
			return i, true
		}
	}
	return 0, false
}

func newRound(cfg RoundConfig) Round {
	round := Round{Number: cfg.Round}
	for i, pair := range cfg.Pairings {
		m := Match{Team1: pair[0], Team2: pair[1]}
		for s, slot := range Slots() {
			m.Results[s] = GameResult{Slot: slot}
		}
		round.Matches[i] = m
	}
	return round
}

// ValidateAssignment checks that the order fills every slot with a distinct
// player from the team's roster.
func ValidateAssignment(team Team, a Assignment) error {
	seen := make(map[string]Slot, NumSlots)
	for _, slot := range Slots() {
		name := a[slot]
		if name == "" {
			return fmt.Errorf("%w: slot %s is empty", ErrInvalidAssignment, slot)
		}
		if !team.HasPlayer(name) {
			return fmt.Errorf("%w: %s is not on %s", ErrInvalidAssignment, name, team.Name)
		}
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("%w: %s is already in slot %s", ErrInvalidAssignment, name, prev)
		}
		seen[name] = slot
	}
	return nil
}
