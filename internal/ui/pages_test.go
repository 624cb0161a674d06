package ui

import (
	"io"
	"log/slog"
	"testing"

	"taikai/internal/announce"
	"taikai/internal/config"
	"taikai/internal/tourney"

	tea "github.com/charmbracelet/bubbletea"
)

func testSession() *session {
	return &session{
		cfg:       config.Config{ReportPassword: tourney.DefaultReportPassword},
		store:     tourney.NewStore(tourney.DefaultTeams(), tourney.DefaultRoundConfigs()),
		announcer: announce.Noop{},
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		styles:    DefaultStyles(),
		width:     100,
		height:    40,
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// press feeds one key and, when the page emits a command, the resulting
// message too. Good enough for the single-command pages here.
func press(t *testing.T, p page, s string) (page, tea.Msg) {
	t.Helper()
	p, cmd := p.update(key(s))
	if cmd == nil {
		return p, nil
	}
	return p, cmd()
}

func fullOrder(team tourney.Team) tourney.Assignment {
	return tourney.Assignment(team.Players)
}

func assignRound(t *testing.T, s *session, roundIdx int) {
	t.Helper()
	round := s.round(roundIdx)
	for i := range round.Matches {
		for _, id := range []int{round.Matches[i].Team1, round.Matches[i].Team2} {
			if err := s.store.SubmitAssignment(roundIdx, i, id, fullOrder(s.team(id))); err != nil {
				t.Fatalf("assign team %d: %v", id, err)
			}
		}
	}
}

func TestWelcomeEnterAdvances(t *testing.T) {
	s := testSession()
	_, msg := press(t, newWelcomePage(s), "enter")
	if _, ok := msg.(advanceMsg); !ok {
		t.Fatalf("msg = %T, want advanceMsg", msg)
	}
}

func TestRulesPagesBeforeAdvancing(t *testing.T) {
	s := testSession()
	var p page = newRulesPage(s)
	var msg tea.Msg
	for i := 0; i < len(rulesSections)-1; i++ {
		p, msg = press(t, p, "enter")
		if msg != nil {
			t.Fatalf("advanced early on page %d", i)
		}
	}
	_, msg = press(t, p, "enter")
	if _, ok := msg.(advanceMsg); !ok {
		t.Fatalf("msg = %T, want advanceMsg after last rules page", msg)
	}
}

func TestStrategyRegistersFullOrder(t *testing.T) {
	s := testSession()
	var p page = newStrategyPage(s, 0)

	// Open team 1's order modal and fill slots A..D with players 1..4.
	p, _ = press(t, p, "enter")
	for slot := 0; slot < tourney.NumSlots; slot++ {
		p, _ = press(t, p, "enter") // open player pick for current slot
		for i := 0; i < slot; i++ {
			p, _ = press(t, p, "down")
		}
		p, _ = press(t, p, "enter") // choose player
		if slot < tourney.NumSlots-1 {
			p, _ = press(t, p, "down") // next slot row
		}
	}
	p, _ = press(t, p, "down") // submit row
	p, _ = press(t, p, "enter")

	sp := p.(*strategyPage)
	if sp.mode != modeTeamSelect {
		t.Fatalf("mode = %v, want back at team select", sp.mode)
	}
	if !s.store.IsTeamAssignmentComplete(0, 1) {
		t.Fatal("team 1 order not stored")
	}
}

func TestStrategyRegisteredTeamStaysClosed(t *testing.T) {
	s := testSession()
	round := s.round(0)
	teamID := round.Matches[0].Team1
	matchIdx, _ := round.MatchForTeam(teamID)
	if err := s.store.SubmitAssignment(0, matchIdx, teamID, fullOrder(s.team(teamID))); err != nil {
		t.Fatalf("submit: %v", err)
	}

	var p page = newStrategyPage(s, 0)
	p, _ = press(t, p, "enter") // cursor sits on the registered team
	sp := p.(*strategyPage)
	if sp.mode != modeTeamSelect {
		t.Fatalf("mode = %v, registered order reopened", sp.mode)
	}
}

func TestStrategyDuplicateOpensSwapConfirm(t *testing.T) {
	s := testSession()
	p := newStrategyPage(s, 0)
	p.openOrderModal(1)
	team := s.team(1)
	p.draft[tourney.SlotA] = team.Players[0]

	// Pick the same player for slot B.
	p.slotCursor = int(tourney.SlotB)
	p.playerCursor = 0
	p.mode = modePlayerPick
	next, _ := p.update(key("enter"))
	sp := next.(*strategyPage)
	if sp.mode != modeSwapConfirm {
		t.Fatalf("mode = %v, want swap confirm", sp.mode)
	}

	next, _ = sp.update(key("right")) // select 入れ替える
	next, _ = next.(*strategyPage).update(key("enter"))
	sp = next.(*strategyPage)
	if got := sp.draft.Player(tourney.SlotA); got != "" {
		t.Fatalf("slot A still holds %q after swap", got)
	}
	if got := sp.draft.Player(tourney.SlotB); got != team.Players[0] {
		t.Fatalf("slot B = %q, want %q", got, team.Players[0])
	}
}

func TestBattleRejectsWrongPassword(t *testing.T) {
	s := testSession()
	assignRound(t, s, 0)
	p := newBattlePage(s, 0)
	p.openReportModal(0, tourney.SlotA)
	p.password.SetValue("0000")

	next, _ := p.update(key("enter"))
	bp := next.(*battlePage)
	if bp.reportErr == "" {
		t.Fatal("expected password mismatch error")
	}
	round := s.round(0)
	if round.Matches[0].Results[tourney.SlotA].Reported() {
		t.Fatal("result stored despite wrong password")
	}
}

func TestBattleReportsWithPassword(t *testing.T) {
	s := testSession()
	assignRound(t, s, 0)
	p := newBattlePage(s, 0)
	p.openReportModal(0, tourney.SlotA)
	p.password.SetValue(tourney.DefaultReportPassword)
	p.winnerCursor = 1 // team 2

	next, _ := p.update(key("enter"))
	bp := next.(*battlePage)
	if bp.modalOpen {
		t.Fatalf("modal still open, err=%q", bp.reportErr)
	}
	round := s.round(0)
	if got := round.Matches[0].Results[tourney.SlotA].Winner; got != 2 {
		t.Fatalf("winner = %d, want 2", got)
	}
}

func TestStandingsRevealAndReset(t *testing.T) {
	s := testSession()
	var p page = newStandingsPage(s)
	for i := 0; i < 4; i++ {
		p, _ = press(t, p, "enter")
	}
	if step := p.(*standingsPage).revealStep; step != 4 {
		t.Fatalf("revealStep = %d, want 4", step)
	}
	_, msg := press(t, p, "r")
	if _, ok := msg.(resetMsg); !ok {
		t.Fatalf("msg = %T, want resetMsg", msg)
	}
}

func TestModelWalksScreenSequence(t *testing.T) {
	store := tourney.NewStore(tourney.DefaultTeams(), tourney.DefaultRoundConfigs())
	m := NewModel(config.Config{}, store, announce.Noop{}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	next, _ := m.Update(advanceMsg{})
	m = next.(Model)
	if m.phase.Step != tourney.StepRules {
		t.Fatalf("step = %q, want %q", m.phase.Step, tourney.StepRules)
	}
	if store.Phase().Step != tourney.StepRules {
		t.Fatalf("store phase = %q, lags behind model", store.Phase().Step)
	}

	for _, want := range []tourney.Step{
		tourney.StepRoundPreview, tourney.StepStrategy, tourney.StepMatching,
		tourney.StepBattle, tourney.StepRoundReveal, tourney.StepRoundPreview,
	} {
		next, _ = m.Update(advanceMsg{})
		m = next.(Model)
		if m.phase.Step != want {
			t.Fatalf("step = %q, want %q", m.phase.Step, want)
		}
	}
	if m.phase.RoundIndex != 1 {
		t.Fatalf("round index = %d, want 1 after first reveal", m.phase.RoundIndex)
	}
}
