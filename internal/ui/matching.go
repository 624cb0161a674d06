package ui

import (
	"fmt"
	"strings"

	"taikai/internal/tourney"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type matchingPage struct {
	s        *session
	roundIdx int
}

func newMatchingPage(s *session, roundIdx int) *matchingPage {
	return &matchingPage{s: s, roundIdx: roundIdx}
}

func (p *matchingPage) init() tea.Cmd { return nil }

func (p *matchingPage) update(msg tea.Msg) (page, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", " ":
			return p, advanceNow
		}
	}
	return p, nil
}

func (p *matchingPage) view() string {
	st := p.s.styles
	round := p.s.round(p.roundIdx)

	cards := make([]string, 0, len(round.Matches))
	for i := range round.Matches {
		cards = append(cards, p.matchCard(&round.Matches[i], i+1))
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		st.Title.Render(fmt.Sprintf("第%d回戦 対戦表", round.Number)),
		st.Muted.Render("配置図に従って速やかに着席してください。"),
		"",
		p.layoutMap(&round),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		"",
		st.Accent.Render("Enter 対局を開始する"),
	)
	return lipgloss.Place(p.s.width, p.s.height, lipgloss.Center, lipgloss.Center, body)
}

// layoutMap sketches the venue: match 1 boards in area A, match 2 in area B,
// slot A/B seats drawn per board row.
func (p *matchingPage) layoutMap(round *tourney.Round) string {
	st := p.s.styles
	areas := make([]string, 0, len(round.Matches))
	labels := [...]string{"エリア A (Match 1)", "エリア B (Match 2)"}
	for i := range round.Matches {
		m := &round.Matches[i]
		o1, _ := m.Order(m.Team1)
		o2, _ := m.Order(m.Team2)
		var b strings.Builder
		b.WriteString(st.Label.Render(labels[i]) + "\n")
		for _, slot := range [...]tourney.Slot{tourney.SlotA, tourney.SlotB} {
			b.WriteString(fmt.Sprintf("%s ── %s\n",
				seatBox(st, o1.Player(slot)), seatBox(st, o2.Player(slot))))
		}
		areas = append(areas, st.Card.Render(b.String()))
	}
	header := st.Subtitle.Render("会場座席配置図") + "  " + st.Muted.Render("右上から順に着席してください")
	return lipgloss.JoinVertical(lipgloss.Center, header,
		lipgloss.JoinHorizontal(lipgloss.Top, areas...))
}

func seatBox(st Styles, name string) string {
	if name == "" {
		name = "---"
	}
	return st.Text.Render("[ " + name + " ]")
}

func (p *matchingPage) matchCard(m *tourney.Match, number int) string {
	st := p.s.styles
	t1 := p.s.team(m.Team1)
	t2 := p.s.team(m.Team2)
	o1, _ := m.Order(m.Team1)
	o2, _ := m.Order(m.Team2)

	var b strings.Builder
	b.WriteString(st.Label.Render(fmt.Sprintf("MATCH %d", number)) + "\n")
	b.WriteString(st.Title.Render(t1.Name) + st.Muted.Render(" vs ") + st.Title.Render(t2.Name) + "\n\n")
	for _, slot := range tourney.Slots() {
		b.WriteString(fmt.Sprintf("%s  %s %s %s\n",
			st.Label.Render(slot.String()),
			st.Text.Render(o1.Player(slot)),
			st.Muted.Render("vs"),
			st.Text.Render(o2.Player(slot))))
	}
	return st.Card.Render(b.String())
}
