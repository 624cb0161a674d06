package ui

import (
	"fmt"
	"strings"

	"taikai/internal/tourney"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// battlePage tracks the eight slot games of the round and takes result
// reports. A report needs the shared password; a reported game can be
// reported again to correct a mistake.
type battlePage struct {
	s        *session
	roundIdx int
	cursor   int

	modalOpen    bool
	modalMatch   int
	modalSlot    tourney.Slot
	winnerCursor int
	password     textinput.Model
	reportErr    string
}

func newBattlePage(s *session, roundIdx int) *battlePage {
	ti := textinput.New()
	ti.Placeholder = "****"
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 16
	ti.Width = 12
	return &battlePage{s: s, roundIdx: roundIdx, password: ti}
}

func (p *battlePage) init() tea.Cmd { return nil }

// gameCount is fixed: two matches, four slots each.
func (p *battlePage) gameCount() int {
	return 2 * tourney.NumSlots
}

func (p *battlePage) gameAt(idx int) (matchIdx int, slot tourney.Slot) {
	return idx / tourney.NumSlots, tourney.Slot(idx % tourney.NumSlots)
}

func (p *battlePage) ready() bool {
	return p.s.store.IsRoundFullyReported(p.roundIdx)
}

func (p *battlePage) update(msg tea.Msg) (page, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	if p.modalOpen {
		return p.updateModal(key)
	}

	last := p.gameCount() - 1
	if p.ready() {
		last++ // extra row: tally the round
	}
	switch key.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < last {
			p.cursor++
		}
	case "enter", " ":
		if p.cursor == p.gameCount() {
			return p, advanceNow
		}
		p.openReportModal(p.gameAt(p.cursor))
	}
	return p, nil
}

func (p *battlePage) openReportModal(matchIdx int, slot tourney.Slot) {
	p.modalOpen = true
	p.modalMatch = matchIdx
	p.modalSlot = slot
	p.winnerCursor = 0
	p.reportErr = ""
	p.password.SetValue("")
	p.password.Focus()
}

func (p *battlePage) updateModal(key tea.KeyMsg) (page, tea.Cmd) {
	switch key.String() {
	case "esc":
		p.modalOpen = false
		p.password.Blur()
		return p, nil
	case "up", "down", "tab":
		p.winnerCursor = 1 - p.winnerCursor
		return p, nil
	case "enter":
		if p.password.Value() != p.s.cfg.ReportPassword {
			p.reportErr = "パスワードが一致しません"
			return p, nil
		}
		round := p.s.round(p.roundIdx)
		m := &round.Matches[p.modalMatch]
		winner := m.Team1
		if p.winnerCursor == 1 {
			winner = m.Team2
		}
		if err := p.s.store.ReportResult(p.roundIdx, p.modalMatch, p.modalSlot, winner); err != nil {
			p.reportErr = err.Error()
			return p, nil
		}
		p.s.log.Info("result reported",
			"round", p.roundIdx+1, "match", p.modalMatch+1, "slot", p.modalSlot.String(), "winner", winner)
		p.modalOpen = false
		p.password.Blur()
		return p, nil
	}
	var cmd tea.Cmd
	p.password, cmd = p.password.Update(key)
	return p, cmd
}

func (p *battlePage) view() string {
	if p.modalOpen {
		return lipgloss.Place(p.s.width, p.s.height, lipgloss.Center, lipgloss.Center, p.viewModal())
	}
	st := p.s.styles
	round := p.s.round(p.roundIdx)

	cards := make([]string, 0, len(round.Matches))
	for i := range round.Matches {
		cards = append(cards, p.matchCard(&round.Matches[i], i))
	}

	blocks := []string{
		st.Title.Render("対局進行中"),
		st.Muted.Render("対局が終了したスロットから結果を報告してください。"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
	}
	if p.ready() {
		marker := "  "
		label := st.Text.Render("ラウンド結果を集計する")
		if p.cursor == p.gameCount() {
			marker = st.Accent.Render("▸ ")
			label = st.Accent.Render("ラウンド結果を集計する")
		}
		blocks = append(blocks, "", marker+label)
	}
	blocks = append(blocks, "", st.Help.Render("↑/↓ 選択  Enter 報告（報告済みの訂正も可）"))

	body := lipgloss.JoinVertical(lipgloss.Center, blocks...)
	return lipgloss.Place(p.s.width, p.s.height, lipgloss.Center, lipgloss.Center, body)
}

func (p *battlePage) matchCard(m *tourney.Match, matchIdx int) string {
	st := p.s.styles
	t1 := p.s.team(m.Team1)
	t2 := p.s.team(m.Team2)
	o1, _ := m.Order(m.Team1)
	o2, _ := m.Order(m.Team2)

	status := st.BadgePending.Render("進行中")
	if m.Completed {
		status = st.BadgeDone.Render("対局終了")
	}

	var b strings.Builder
	b.WriteString(st.Title.Render(t1.Name+" vs "+t2.Name) + "  " + status + "\n\n")
	for _, slot := range tourney.Slots() {
		idx := matchIdx*tourney.NumSlots + int(slot)
		marker := "  "
		if !p.modalOpen && p.cursor == idx {
			marker = st.Accent.Render("▸ ")
		}
		line := fmt.Sprintf("%s %s vs %s", st.Label.Render(slot.String()),
			o1.Player(slot), o2.Player(slot))
		res := m.Results[slot]
		if res.Reported() {
			winnerOrder, _ := m.Order(res.Winner)
			line = st.Muted.Render(line) + "  " +
				st.Success.Render("勝者: "+winnerOrder.Player(slot))
		} else {
			line = st.Text.Render(line)
		}
		b.WriteString(marker + line + "\n")
	}
	card := st.Card
	if !p.modalOpen && p.cursor < p.gameCount() && p.cursor/tourney.NumSlots == matchIdx {
		card = st.CardSelected
	}
	return card.Render(b.String())
}

func (p *battlePage) viewModal() string {
	st := p.s.styles
	round := p.s.round(p.roundIdx)
	m := &round.Matches[p.modalMatch]
	t1 := p.s.team(m.Team1)
	t2 := p.s.team(m.Team2)
	o1, _ := m.Order(m.Team1)
	o2, _ := m.Order(m.Team2)

	var b strings.Builder
	b.WriteString(st.Title.Render(fmt.Sprintf("結果報告 (Slot %s)", p.modalSlot)) + "\n")
	b.WriteString(st.Muted.Render("勝利した選手を選択してください。") + "\n\n")

	rows := [...]struct {
		team   string
		player string
	}{
		{t1.Name, o1.Player(p.modalSlot)},
		{t2.Name, o2.Player(p.modalSlot)},
	}
	for i, row := range rows {
		marker := "  "
		line := st.Text.Render(fmt.Sprintf("%s  %s", row.team, row.player))
		if p.winnerCursor == i {
			marker = st.Accent.Render("▸ ")
			line = st.Title.Render(fmt.Sprintf("%s  %s", row.team, row.player))
		}
		b.WriteString(marker + line + "\n")
	}

	b.WriteString("\n" + st.Label.Render("管理者パスワード") + "\n")
	b.WriteString(p.password.View() + "\n")
	if p.reportErr != "" {
		b.WriteString(st.Error.Render(p.reportErr) + "\n")
	}
	b.WriteString("\n" + st.Help.Render("↑/↓ 勝者  Enter 報告  Esc 閉じる"))
	return st.Modal.Render(b.String())
}
