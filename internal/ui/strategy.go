package ui

import (
	"fmt"
	"strings"

	"taikai/internal/tourney"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type strategyMode int

const (
	modeTeamSelect strategyMode = iota
	modeSlotSelect
	modePlayerPick
	modeSwapConfirm
)

// strategyPage collects each team's slot order. Orders go to the store in
// full on confirmation; resubmitting a team replaces its previous order.
type strategyPage struct {
	s        *session
	roundIdx int

	announcement string
	mode         strategyMode
	cursor       int
	teamIDs      []int

	activeTeam  tourney.Team
	activeMatch int
	draft       tourney.Assignment
	slotCursor  int
	submitErr   string

	playerCursor int

	swapPlayer string
	swapFrom   tourney.Slot
	swapTo     tourney.Slot
	swapYes    bool
}

func newStrategyPage(s *session, roundIdx int) *strategyPage {
	round := s.round(roundIdx)
	ids := make([]int, 0, 4)
	for i := range round.Matches {
		ids = append(ids, round.Matches[i].Team1, round.Matches[i].Team2)
	}
	return &strategyPage{s: s, roundIdx: roundIdx, teamIDs: ids}
}

func (p *strategyPage) init() tea.Cmd {
	return fetchAnnouncement(p.s.announcer, p.roundIdx+1)
}

func (p *strategyPage) ready() bool {
	return p.s.store.IsRoundFullyAssigned(p.roundIdx)
}

func (p *strategyPage) update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case announcementMsg:
		if msg.round == p.roundIdx+1 {
			p.announcement = msg.text
		}
		return p, nil
	case tea.KeyMsg:
		switch p.mode {
		case modeTeamSelect:
			return p.updateTeamSelect(msg)
		case modeSlotSelect:
			return p.updateSlotSelect(msg)
		case modePlayerPick:
			return p.updatePlayerPick(msg)
		case modeSwapConfirm:
			return p.updateSwapConfirm(msg)
		}
	}
	return p, nil
}

func (p *strategyPage) updateTeamSelect(key tea.KeyMsg) (page, tea.Cmd) {
	last := len(p.teamIDs) - 1
	if p.ready() {
		last++ // extra row: confirm and continue
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
		if p.cursor == len(p.teamIDs) {
			return p, advanceNow
		}
		id := p.teamIDs[p.cursor]
		// Registration closes a team's order; no changes afterwards.
		if p.s.store.IsTeamAssignmentComplete(p.roundIdx, id) {
			return p, nil
		}
		p.openOrderModal(id)
	}
	return p, nil
}

func (p *strategyPage) openOrderModal(teamID int) {
	round := p.s.round(p.roundIdx)
	matchIdx, ok := round.MatchForTeam(teamID)
	if !ok {
		return
	}
	order, _ := round.Matches[matchIdx].Order(teamID)
	p.activeTeam = p.s.team(teamID)
	p.activeMatch = matchIdx
	p.draft = order
	p.slotCursor = 0
	p.submitErr = ""
	p.mode = modeSlotSelect
}

func (p *strategyPage) updateSlotSelect(key tea.KeyMsg) (page, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if p.slotCursor > 0 {
			p.slotCursor--
		}
	case "down", "j":
		if p.slotCursor < tourney.NumSlots {
			p.slotCursor++
		}
	case "x", "backspace":
		if p.slotCursor < tourney.NumSlots {
			p.draft[p.slotCursor] = ""
		}
	case "esc":
		p.mode = modeTeamSelect
	case "enter", " ":
		if p.slotCursor < tourney.NumSlots {
			p.playerCursor = 0
			p.mode = modePlayerPick
			return p, nil
		}
		err := p.s.store.SubmitAssignment(p.roundIdx, p.activeMatch, p.activeTeam.ID, p.draft)
		if err != nil {
			p.submitErr = "4名全員を重複なく選択してください"
			return p, nil
		}
		p.s.log.Info("order submitted", "round", p.roundIdx+1, "team", p.activeTeam.Name)
		p.mode = modeTeamSelect
	}
	return p, nil
}

func (p *strategyPage) updatePlayerPick(key tea.KeyMsg) (page, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if p.playerCursor > 0 {
			p.playerCursor--
		}
	case "down", "j":
		if p.playerCursor < tourney.NumSlots-1 {
			p.playerCursor++
		}
	case "esc":
		p.mode = modeSlotSelect
	case "enter", " ":
		name := p.activeTeam.Players[p.playerCursor]
		target := tourney.Slot(p.slotCursor)
		for _, slot := range tourney.Slots() {
			if slot != target && p.draft.Player(slot) == name {
				p.swapPlayer = name
				p.swapFrom = slot
				p.swapTo = target
				p.swapYes = false
				p.mode = modeSwapConfirm
				return p, nil
			}
		}
		p.draft[target] = name
		p.submitErr = ""
		p.mode = modeSlotSelect
	}
	return p, nil
}

func (p *strategyPage) updateSwapConfirm(key tea.KeyMsg) (page, tea.Cmd) {
	switch key.String() {
	case "left", "right", "h", "l", "tab":
		p.swapYes = !p.swapYes
	case "esc":
		p.mode = modePlayerPick
	case "enter", " ":
		if p.swapYes {
			p.draft[p.swapFrom] = ""
			p.draft[p.swapTo] = p.swapPlayer
			p.submitErr = ""
			p.mode = modeSlotSelect
		} else {
			p.mode = modePlayerPick
		}
	}
	return p, nil
}

func (p *strategyPage) view() string {
	var body string
	switch p.mode {
	case modeSlotSelect, modePlayerPick:
		body = p.viewOrderModal()
	case modeSwapConfirm:
		body = p.viewSwapModal()
	default:
		body = p.viewTeamList()
	}
	return lipgloss.Place(p.s.width, p.s.height, lipgloss.Center, lipgloss.Center, body)
}

func (p *strategyPage) viewTeamList() string {
	st := p.s.styles
	var b strings.Builder
	if p.announcement != "" {
		b.WriteString(st.Announce.Render("「"+p.announcement+"」") + "\n\n")
	}
	b.WriteString(st.Title.Render("オーダー提出") + "\n")
	b.WriteString(st.Muted.Render("各チームは出場スロットに選手を割り当ててください。") + "\n\n")

	for i, id := range p.teamIDs {
		team := p.s.team(id)
		done := p.s.store.IsTeamAssignmentComplete(p.roundIdx, id)
		badge := st.BadgePending.Render("未提出")
		name := st.Text.Render(team.Name)
		if done {
			badge = st.BadgeDone.Render("登録完了")
			name = st.Muted.Render(team.Name)
		}
		marker := "  "
		if p.mode == modeTeamSelect && p.cursor == i {
			marker = st.Accent.Render("▸ ")
			if !done {
				name = st.Title.Render(team.Name)
			}
		}
		b.WriteString(fmt.Sprintf("%s%s  %s\n", marker, name, badge))
	}

	if p.ready() {
		marker := "  "
		label := st.Text.Render("対戦カードを確定する")
		if p.cursor == len(p.teamIDs) {
			marker = st.Accent.Render("▸ ")
			label = st.Accent.Render("対戦カードを確定する")
		}
		b.WriteString("\n" + marker + label + "\n")
	}
	b.WriteString("\n" + st.Help.Render("↑/↓ 選択  Enter 決定"))
	return st.Card.Render(b.String())
}

func (p *strategyPage) viewOrderModal() string {
	st := p.s.styles
	var b strings.Builder
	b.WriteString(st.Title.Render(p.activeTeam.Name) + "\n")
	b.WriteString(st.Label.Render("オーダー入力") + "\n\n")

	for _, slot := range tourney.Slots() {
		name := p.draft.Player(slot)
		if name == "" {
			name = st.Muted.Render("未選択")
		} else {
			name = st.Text.Render(name)
		}
		marker := "  "
		if p.mode == modeSlotSelect && p.slotCursor == int(slot) {
			marker = st.Accent.Render("▸ ")
		}
		b.WriteString(fmt.Sprintf("%sSlot %s  %s\n", marker, slot, name))
	}

	remaining := tourney.NumSlots - p.draft.Filled()
	if remaining > 0 {
		b.WriteString("\n" + st.Muted.Render(fmt.Sprintf("残り %d 名の登録が必要です", remaining)) + "\n")
	} else {
		b.WriteString("\n" + st.Success.Render("全員選択されました") + "\n")
	}

	marker := "  "
	label := st.Text.Render("登録確定")
	if p.mode == modeSlotSelect && p.slotCursor == tourney.NumSlots {
		marker = st.Accent.Render("▸ ")
		label = st.Accent.Render("登録確定")
	}
	b.WriteString(marker + label + "\n")

	if p.submitErr != "" {
		b.WriteString(st.Error.Render("エラー："+p.submitErr) + "\n")
	}

	if p.mode == modePlayerPick {
		b.WriteString("\n" + st.Label.Render(fmt.Sprintf("Slot %s の選手", tourney.Slot(p.slotCursor))) + "\n")
		for i, name := range p.activeTeam.Players {
			marker := "  "
			line := st.Text.Render(name)
			if p.playerCursor == i {
				marker = st.Accent.Render("▸ ")
				line = st.Title.Render(name)
			}
			b.WriteString(marker + line + "\n")
		}
	}

	b.WriteString("\n" + st.Help.Render("↑/↓ 選択  Enter 決定  x クリア  Esc 戻る"))
	return st.Modal.Render(b.String())
}

func (p *strategyPage) viewSwapModal() string {
	st := p.s.styles
	var b strings.Builder
	b.WriteString(st.Text.Render(fmt.Sprintf("%s は既に スロット %s で選択されています。", p.swapPlayer, p.swapFrom)) + "\n")
	b.WriteString(st.Text.Render(fmt.Sprintf("スロット %s と入れ替えますか？", p.swapTo)) + "\n\n")

	noLabel := "戻る"
	yesLabel := "入れ替える"
	if p.swapYes {
		b.WriteString(st.Muted.Render("  "+noLabel) + "   " + st.Accent.Render("▸ "+yesLabel))
	} else {
		b.WriteString(st.Accent.Render("▸ "+noLabel) + "   " + st.Muted.Render("  "+yesLabel))
	}
	b.WriteString("\n\n" + st.Help.Render("←/→ 選択  Enter 決定"))
	return st.Modal.Render(b.String())
}
