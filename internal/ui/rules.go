package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type rulesSection struct {
	title string
	items []string
}

var rulesSections = []rulesSection{
	{
		title: "基本ルール",
		items: []string{
			"1チーム4名、全3回戦の総当たり形式です。",
			"各対局はA・B・C・Dの4スロットで同時に進行します。",
			"3勝以上で勝利、2勝2敗で引き分けとなります。",
			"結果は各自アプリ上で正確に報告してください。",
		},
	},
	{
		title: "オーダー決定",
		items: []string{
			"対局開始前に、誰がどのスロットに出場するかを登録します。",
			"登録が完了するまで、他チームのオーダーは公開されません。",
			"公平性を保つため、登録後の変更はできません。",
		},
	},
	{
		title: "進行手順",
		items: []string{
			"1. オーダー提出：各チームの責任者が登録を行います。",
			"2. 対局：表示された座席に移動し、速やかに開始してください。",
			"3. 勝敗報告：対局終了後、勝利した側がパスワードを入力し報告します。",
			"4. 集計：全局終了後、ラウンド結果が確定します。",
		},
	},
}

type rulesPage struct {
	s    *session
	page int
}

func newRulesPage(s *session) *rulesPage { return &rulesPage{s: s} }

func (p *rulesPage) init() tea.Cmd { return nil }

func (p *rulesPage) update(msg tea.Msg) (page, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "left", "h":
		if p.page > 0 {
			p.page--
		}
	case "right", "l":
		if p.page < len(rulesSections)-1 {
			p.page++
		}
	case "enter", " ":
		if p.page < len(rulesSections)-1 {
			p.page++
			return p, nil
		}
		return p, advanceNow
	}
	return p, nil
}

func (p *rulesPage) view() string {
	st := p.s.styles
	section := rulesSections[p.page]

	var b strings.Builder
	b.WriteString(st.Label.Render("GUIDE") + "\n")
	b.WriteString(st.Title.Render(section.title) + "\n\n")
	for _, item := range section.items {
		b.WriteString(st.Text.Render("・"+item) + "\n")
	}

	dots := make([]string, len(rulesSections))
	for i := range rulesSections {
		if i == p.page {
			dots[i] = st.Accent.Render("●")
		} else {
			dots[i] = st.Muted.Render("○")
		}
	}
	b.WriteString("\n" + strings.Join(dots, " "))

	hint := "Enter 次へ"
	if p.page == len(rulesSections)-1 {
		hint = "Enter 確認しました"
	}
	b.WriteString("\n" + st.Help.Render(hint+"  ←/→ ページ"))

	return lipgloss.Place(p.s.width, p.s.height, lipgloss.Center, lipgloss.Center,
		st.Card.Render(b.String()))
}
