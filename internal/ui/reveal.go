package ui

import (
	"fmt"
	"strings"

	"taikai/internal/tourney"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// revealPage shows the round verdicts one match at a time, for drama.
type revealPage struct {
	s        *session
	roundIdx int
	revealed int
}

func newRevealPage(s *session, roundIdx int) *revealPage {
	return &revealPage{s: s, roundIdx: roundIdx}
}

func (p *revealPage) init() tea.Cmd { return nil }

func (p *revealPage) update(msg tea.Msg) (page, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "enter", " ":
		round := p.s.round(p.roundIdx)
		if p.revealed < len(round.Matches) {
			cmd := p.s.notifyCmd(p.verdictLine(&round, p.revealed))
			p.revealed++
			return p, cmd
		}
		return p, advanceNow
	}
	return p, nil
}

func (p *revealPage) verdictLine(round *tourney.Round, matchIdx int) string {
	m := &round.Matches[matchIdx]
	t1 := p.s.team(m.Team1)
	t2 := p.s.team(m.Team2)
	winner, draw := m.Verdict()
	outcome := "引き分け"
	if !draw {
		outcome = p.s.team(winner).Name + " 勝利"
	}
	return fmt.Sprintf("第%d回戦 %s %d - %d %s ｜ %s",
		round.Number, t1.Name, m.Score(m.Team1), m.Score(m.Team2), t2.Name, outcome)
}

func (p *revealPage) view() string {
	st := p.s.styles
	round := p.s.round(p.roundIdx)

	cards := make([]string, 0, len(round.Matches))
	for i := range round.Matches {
		cards = append(cards, p.matchCard(&round, i))
	}

	hint := "Enter 対戦結果を表示"
	if p.revealed >= len(round.Matches) {
		hint = "Enter 次へ進む"
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		st.Label.Render("ROUND RESULT"),
		st.Title.Render(fmt.Sprintf("第%d回戦 結果報告", round.Number)),
		"",
		lipgloss.JoinVertical(lipgloss.Center, cards...),
		"",
		st.Accent.Render(hint),
	)
	return lipgloss.Place(p.s.width, p.s.height, lipgloss.Center, lipgloss.Center, body)
}

func (p *revealPage) matchCard(round *tourney.Round, matchIdx int) string {
	st := p.s.styles
	m := &round.Matches[matchIdx]
	t1 := p.s.team(m.Team1)
	t2 := p.s.team(m.Team2)

	var b strings.Builder
	if matchIdx < p.revealed {
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			st.Subtitle.Render(t1.Name),
			st.Title.Render(fmt.Sprintf("%d - %d", m.Score(m.Team1), m.Score(m.Team2))),
			st.Subtitle.Render(t2.Name)))
		winner, draw := m.Verdict()
		if draw {
			b.WriteString(st.Muted.Render("引き分け"))
		} else {
			b.WriteString(st.Accent.Render(p.s.team(winner).Name + " 勝利"))
		}
	} else {
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			st.Subtitle.Render(t1.Name), st.Muted.Render("? - ?"), st.Subtitle.Render(t2.Name)))
		b.WriteString(st.Muted.Render("未発表"))
	}
	return st.Card.Render(b.String())
}
