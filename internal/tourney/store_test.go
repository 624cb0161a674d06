package tourney

import (
	"errors"
	"testing"
)

func newTestStore() *Store {
	return NewStore(DefaultTeams(), DefaultRoundConfigs())
}

func fullOrder(team Team) Assignment {
	var a Assignment
	for i, slot := range Slots() {
		a[slot] = team.Players[i]
	}
	return a
}

func TestNewStoreBuildsEmptyTree(t *testing.T) {
	s := newTestStore()
	if s.NumRounds() != 3 {
		t.Fatalf("got %d rounds want 3", s.NumRounds())
	}
	for i := 0; i < s.NumRounds(); i++ {
		round, err := s.Round(i)
		if err != nil {
			t.Fatalf("round %d: %v", i, err)
		}
		if round.Locked {
			t.Fatalf("round %d locked at construction", i)
		}
		for _, m := range round.Matches {
			if m.Completed {
				t.Fatalf("round %d match completed at construction", i)
			}
			for _, r := range m.Results {
				if r.Reported() {
					t.Fatalf("round %d has reported result at construction", i)
				}
			}
			if m.Orders[0].Filled() != 0 || m.Orders[1].Filled() != 0 {
				t.Fatalf("round %d has populated order at construction", i)
			}
		}
	}
	round, _ := s.Round(0)
	if round.Matches[0].Team1 != 1 || round.Matches[0].Team2 != 2 {
		t.Fatalf("round 1 match 0 pairing %d-%d, want 1-2", round.Matches[0].Team1, round.Matches[0].Team2)
	}
	if round.Matches[1].Team1 != 3 || round.Matches[1].Team2 != 4 {
		t.Fatalf("round 1 match 1 pairing %d-%d, want 3-4", round.Matches[1].Team1, round.Matches[1].Team2)
	}
}

func TestSubmitAssignmentLocksRound(t *testing.T) {
	s := newTestStore()
	teams := s.Teams()

	for i, team := range teams {
		if s.IsRoundFullyAssigned(0) {
			t.Fatalf("round locked after only %d orders", i)
		}
		round, _ := s.Round(0)
		mi, ok := round.MatchForTeam(team.ID)
		if !ok {
			t.Fatalf("team %d has no match in round 1", team.ID)
		}
		if err := s.SubmitAssignment(0, mi, team.ID, fullOrder(team)); err != nil {
			t.Fatalf("submit team %d: %v", team.ID, err)
		}
		if !s.IsTeamAssignmentComplete(0, team.ID) {
			t.Fatalf("team %d order not complete after submit", team.ID)
		}
	}

	if !s.IsRoundFullyAssigned(0) {
		t.Fatalf("round not locked after all four orders")
	}
	round, _ := s.Round(0)
	if !round.Locked {
		t.Fatalf("Round.Locked not set")
	}
	if s.IsRoundFullyAssigned(1) {
		t.Fatalf("round 2 locked by round 1 submissions")
	}
}

func TestSubmitAssignmentOverwritesInFull(t *testing.T) {
	s := newTestStore()
	team, _ := s.Team(1)

	first := fullOrder(team)
	if err := s.SubmitAssignment(0, 0, team.ID, first); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	// Reversed order replaces the previous map entirely.
	second := Assignment{team.Players[3], team.Players[2], team.Players[1], team.Players[0]}
	if err := s.SubmitAssignment(0, 0, team.ID, second); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	round, _ := s.Round(0)
	got, _ := round.Matches[0].Order(team.ID)
	if got != second {
		t.Fatalf("order not overwritten: got %v want %v", got, second)
	}
}

func TestSubmitAssignmentValidation(t *testing.T) {
	s := newTestStore()
	team, _ := s.Team(1)

	missing := fullOrder(team)
	missing[SlotC] = ""
	if err := s.SubmitAssignment(0, 0, team.ID, missing); !errors.Is(err, ErrInvalidAssignment) {
		t.Fatalf("missing slot: got %v want ErrInvalidAssignment", err)
	}

	dup := fullOrder(team)
	dup[SlotB] = dup[SlotA]
	if err := s.SubmitAssignment(0, 0, team.ID, dup); !errors.Is(err, ErrInvalidAssignment) {
		t.Fatalf("duplicate player: got %v want ErrInvalidAssignment", err)
	}

	foreign := fullOrder(team)
	foreign[SlotD] = "部外者"
	if err := s.SubmitAssignment(0, 0, team.ID, foreign); !errors.Is(err, ErrInvalidAssignment) {
		t.Fatalf("foreign name: got %v want ErrInvalidAssignment", err)
	}

	// Team 3 plays in match 1, not match 0, in round 1.
	team3, _ := s.Team(3)
	if err := s.SubmitAssignment(0, 0, team3.ID, fullOrder(team3)); !errors.Is(err, ErrUnknownTeam) {
		t.Fatalf("wrong match: got %v want ErrUnknownTeam", err)
	}

	if err := s.SubmitAssignment(5, 0, team.ID, fullOrder(team)); !errors.Is(err, ErrRoundOutOfRange) {
		t.Fatalf("bad round: got %v want ErrRoundOutOfRange", err)
	}
	if err := s.SubmitAssignment(0, 9, team.ID, fullOrder(team)); !errors.Is(err, ErrMatchOutOfRange) {
		t.Fatalf("bad match: got %v want ErrMatchOutOfRange", err)
	}
}

func TestReportResultCompletesMatch(t *testing.T) {
	s := newTestStore()
	for i, slot := range Slots() {
		if s.IsRoundFullyReported(0) {
			t.Fatalf("round reported after %d games", i)
		}
		winner := 1
		if slot == SlotD {
			winner = 2
		}
		if err := s.ReportResult(0, 0, slot, winner); err != nil {
			t.Fatalf("report slot %s: %v", slot, err)
		}
	}
	round, _ := s.Round(0)
	if !round.Matches[0].Completed {
		t.Fatalf("match not completed after four reports")
	}
	if round.Matches[1].Completed {
		t.Fatalf("untouched match marked completed")
	}
	if s.IsRoundFullyReported(0) {
		t.Fatalf("round fully reported with match 1 open")
	}

	if got := round.Matches[0].Score(1); got != 3 {
		t.Fatalf("team 1 score %d want 3", got)
	}
	if winner, draw := round.Matches[0].Verdict(); draw || winner != 1 {
		t.Fatalf("verdict winner=%d draw=%v, want team 1", winner, draw)
	}
}

func TestReportResultCorrection(t *testing.T) {
	s := newTestStore()
	if err := s.ReportResult(0, 0, SlotA, 1); err != nil {
		t.Fatalf("first report: %v", err)
	}
	if err := s.ReportResult(0, 0, SlotA, 2); err != nil {
		t.Fatalf("correction: %v", err)
	}
	round, _ := s.Round(0)
	if got := round.Matches[0].Results[SlotA].Winner; got != 2 {
		t.Fatalf("corrected winner %d want 2", got)
	}
	// Exactly one final value: the correction must not double-count.
	if got := round.Matches[0].Score(1); got != 0 {
		t.Fatalf("team 1 still credited %d wins after correction", got)
	}
	if got := round.Matches[0].Score(2); got != 1 {
		t.Fatalf("team 2 credited %d wins want 1", got)
	}
	if got := len(s.Reports()); got != 2 {
		t.Fatalf("audit trail has %d entries want 2", got)
	}
}

func TestReportResultRejectsOutsiderWinner(t *testing.T) {
	s := newTestStore()
	if err := s.ReportResult(0, 0, SlotA, 3); !errors.Is(err, ErrInvalidWinner) {
		t.Fatalf("got %v want ErrInvalidWinner", err)
	}
	if err := s.ReportResult(0, 0, Slot(9), 1); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("got %v want ErrInvalidSlot", err)
	}
}

func TestResetReinitializes(t *testing.T) {
	s := newTestStore()
	team, _ := s.Team(1)
	if err := s.SubmitAssignment(0, 0, team.ID, fullOrder(team)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.ReportResult(0, 0, SlotA, 1); err != nil {
		t.Fatalf("report: %v", err)
	}
	prevSession := s.SessionID()

	s.Reset()

	if s.SessionID() == prevSession {
		t.Fatalf("session id unchanged after reset")
	}
	round, _ := s.Round(0)
	if round.Matches[0].Orders[0].Filled() != 0 {
		t.Fatalf("orders survived reset")
	}
	if round.Matches[0].Results[SlotA].Reported() {
		t.Fatalf("results survived reset")
	}
	if len(s.Reports()) != 0 {
		t.Fatalf("audit trail survived reset")
	}
	if got := s.Phase(); got.Step != StepWelcome || got.RoundIndex != 0 {
		t.Fatalf("phase after reset: %+v", got)
	}
}

func TestSubscribeReceivesEvents(t *testing.T) {
	s := newTestStore()
	id, ch := s.Subscribe()
	defer s.Unsubscribe(id)

	team, _ := s.Team(1)
	if err := s.SubmitAssignment(0, 0, team.ID, fullOrder(team)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	ev := <-ch
	if ev.Type != EventOrderSubmitted || ev.TeamID != 1 {
		t.Fatalf("got event %+v want order-submitted for team 1", ev)
	}

	if err := s.ReportResult(0, 1, SlotB, 4); err != nil {
		t.Fatalf("report: %v", err)
	}
	ev = <-ch
	if ev.Type != EventResultReported || ev.Slot != "B" || ev.TeamID != 4 {
		t.Fatalf("got event %+v want result-reported slot B team 4", ev)
	}
}

func TestEndToEndRoundOne(t *testing.T) {
	s := newTestStore()

	// Team 1 then team 2 fill match 0; both matches assigned locks the round.
	for _, id := range []int{1, 2} {
		team, _ := s.Team(id)
		if err := s.SubmitAssignment(0, 0, id, fullOrder(team)); err != nil {
			t.Fatalf("submit team %d: %v", id, err)
		}
	}
	round, _ := s.Round(0)
	if round.Matches[0].Orders[0].Filled() != 4 || round.Matches[0].Orders[1].Filled() != 4 {
		t.Fatalf("match 0 orders not populated")
	}
	if round.Locked {
		t.Fatalf("round locked before match 1 assigned")
	}
	for _, id := range []int{3, 4} {
		team, _ := s.Team(id)
		if err := s.SubmitAssignment(0, 1, id, fullOrder(team)); err != nil {
			t.Fatalf("submit team %d: %v", id, err)
		}
	}
	if !s.IsRoundFullyAssigned(0) {
		t.Fatalf("round not locked after all assignments")
	}

	// Team 1 wins 3 slots, team 2 wins 1.
	for _, slot := range Slots() {
		winner := 1
		if slot == SlotD {
			winner = 2
		}
		if err := s.ReportResult(0, 0, slot, winner); err != nil {
			t.Fatalf("report: %v", err)
		}
	}
	round, _ = s.Round(0)
	if !round.Matches[0].Completed {
		t.Fatalf("match 0 not completed")
	}

	standings := s.Standings()
	for _, row := range standings.Teams {
		if row.Team.ID == 1 {
			if row.Points != 2 || row.IndividualWins != 3 {
				t.Fatalf("team 1: points=%d wins=%d, want 2/3", row.Points, row.IndividualWins)
			}
		}
	}
}
