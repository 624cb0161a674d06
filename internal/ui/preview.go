package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type previewPage struct {
	s        *session
	roundIdx int
}

func newPreviewPage(s *session, roundIdx int) *previewPage {
	return &previewPage{s: s, roundIdx: roundIdx}
}

func (p *previewPage) init() tea.Cmd { return nil }

func (p *previewPage) update(msg tea.Msg) (page, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", " ":
			return p, advanceNow
		}
	}
	return p, nil
}

func (p *previewPage) view() string {
	st := p.s.styles
	round := p.s.round(p.roundIdx)

	cards := make([]string, 0, len(round.Matches))
	for i := range round.Matches {
		m := &round.Matches[i]
		t1 := p.s.team(m.Team1)
		t2 := p.s.team(m.Team2)
		var b strings.Builder
		b.WriteString(st.Title.Render(t1.Name) + st.Muted.Render("  vs  ") + st.Title.Render(t2.Name) + "\n\n")
		b.WriteString(st.Muted.Render(strings.Join(t1.Players[:], " / ")) + "\n")
		b.WriteString(st.Muted.Render(strings.Join(t2.Players[:], " / ")))
		cards = append(cards, st.Card.Render(b.String()))
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		st.Label.Render("ROUND"),
		st.Title.Render(fmt.Sprintf("第 %d 回戦", round.Number)),
		"",
		lipgloss.JoinVertical(lipgloss.Center, cards...),
		"",
		st.Accent.Render("Enter オーダー提出へ"),
	)
	return lipgloss.Place(p.s.width, p.s.height, lipgloss.Center, lipgloss.Center, body)
}
