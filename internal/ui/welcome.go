package ui

import (
	"bytes"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mdp/qrterminal/v3"
)

type welcomePage struct {
	s  *session
	qr string
}

func newWelcomePage(s *session) *welcomePage {
	p := &welcomePage{s: s}
	if s.cfg.SpectatorEnabled && s.cfg.SpectatorURL != "" {
		var buf bytes.Buffer
		qrterminal.GenerateHalfBlock(s.cfg.SpectatorURL, qrterminal.L, &buf)
		p.qr = strings.TrimRight(buf.String(), "\n")
	}
	return p
}

func (p *welcomePage) init() tea.Cmd { return nil }

func (p *welcomePage) update(msg tea.Msg) (page, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", " ":
			return p, advanceNow
		}
	}
	return p, nil
}

func (p *welcomePage) view() string {
	st := p.s.styles
	blocks := []string{
		st.Label.Render("SGP SHOGI FEDERATION"),
		st.Title.Render("冬季合宿 団体戦"),
		st.Subtitle.Render("進行管理・スコアリングシステム"),
	}
	if p.qr != "" {
		blocks = append(blocks,
			"",
			p.qr,
			st.Muted.Render("観戦用ページ: "+p.s.cfg.SpectatorURL),
		)
	}
	blocks = append(blocks, "", st.Accent.Render("Enter で大会を開始する"), st.Help.Render("ctrl+c 終了"))

	body := lipgloss.JoinVertical(lipgloss.Center, blocks...)
	return lipgloss.Place(p.s.width, p.s.height, lipgloss.Center, lipgloss.Center, body)
}
