package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// standingsPage announces the final ranking fourth place first, then the
// individual leaderboard.
type standingsPage struct {
	s          *session
	revealStep int
}

func newStandingsPage(s *session) *standingsPage {
	return &standingsPage{s: s}
}

func (p *standingsPage) init() tea.Cmd { return nil }

func (p *standingsPage) update(msg tea.Msg) (page, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "enter", " ":
		standings := p.s.store.Standings()
		if p.revealStep < len(standings.Teams) {
			p.revealStep++
			if p.revealStep == len(standings.Teams) && len(standings.Teams) > 0 {
				champion := standings.Teams[0]
				return p, p.s.notifyCmd(fmt.Sprintf("優勝: %s（勝ち点 %d・個人勝数 %d）",
					champion.Team.Name, champion.Points, champion.IndividualWins))
			}
		}
	case "r":
		return p, func() tea.Msg { return resetMsg{} }
	}
	return p, nil
}

func (p *standingsPage) view() string {
	st := p.s.styles
	standings := p.s.store.Standings()

	var b strings.Builder
	b.WriteString(st.Label.Render("OFFICIAL RECORDS") + "\n")
	b.WriteString(st.Title.Render("最終成績発表") + "\n\n")

	// Rows appear from the bottom of the table up.
	total := len(standings.Teams)
	for _, row := range standings.Teams {
		if total-row.Rank >= p.revealStep {
			b.WriteString(st.Muted.Render(fmt.Sprintf("第%d位  ──────", row.Rank)) + "\n")
			continue
		}
		name := st.Subtitle.Render(row.Team.Name)
		if row.Rank == 1 {
			name = st.Accent.Render(row.Team.Name)
		}
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			st.Label.Render(fmt.Sprintf("第%d位", row.Rank)),
			name,
			st.Muted.Render(fmt.Sprintf("勝ち点: %d | 個人勝数: %d", row.Points, row.IndividualWins))))
	}

	if p.revealStep >= total {
		b.WriteString("\n" + st.Subtitle.Render("個人勝数一覧") + "\n")
		b.WriteString(st.Muted.Render("順位  氏名        勝数") + "\n")
		for _, player := range standings.Players {
			b.WriteString(fmt.Sprintf("%s  %s  %s\n",
				st.Label.Render(fmt.Sprintf("%2d位", player.Rank)),
				st.Text.Render(fmt.Sprintf("%-10s", player.Name)),
				st.Title.Render(fmt.Sprintf("%d", player.Wins))))
		}
		b.WriteString("\n" + st.Help.Render("r 最初からやり直す  ctrl+c 終了"))
	} else {
		b.WriteString("\n" + st.Accent.Render("Enter 順位を表示する"))
	}

	return lipgloss.Place(p.s.width, p.s.height, lipgloss.Center, lipgloss.Center,
		st.Card.Render(b.String()))
}
