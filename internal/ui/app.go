package ui

import (
	"context"
	"fmt"
	"log/slog"

	"taikai/internal/announce"
	"taikai/internal/config"
	"taikai/internal/tourney"

	tea "github.com/charmbracelet/bubbletea"
)

// session bundles everything the screens share. Screens hold a pointer so
// window size changes propagate without re-plumbing.
type session struct {
	cfg       config.Config
	store     *tourney.Store
	announcer announce.Announcer
	notifier  *announce.DiscordNotifier
	log       *slog.Logger
	styles    Styles
	width     int
	height    int
}

func (s *session) team(id int) tourney.Team {
	t, _ := s.store.Team(id)
	return t
}

func (s *session) round(idx int) tourney.Round {
	r, err := s.store.Round(idx)
	if err != nil {
		return tourney.Round{}
	}
	return r
}

// notifyCmd pushes one line to the Discord channel, if configured.
func (s *session) notifyCmd(message string) tea.Cmd {
	if s.notifier == nil {
		return nil
	}
	notifier := s.notifier
	return func() tea.Msg {
		notifier.Notify(message)
		return nil
	}
}

// page is one screen of the flow.
type page interface {
	init() tea.Cmd
	update(msg tea.Msg) (page, tea.Cmd)
	view() string
}

// advanceMsg asks the root model to move to the next screen. Screens emit
// it only after their own gate (round locked, all games reported) holds, so
// the transition itself never fails.
type advanceMsg struct{}

// resetMsg restarts the whole session from the final standings screen.
type resetMsg struct{}

// announcementMsg carries generated flavor text for the order screen.
type announcementMsg struct {
	round int
	text  string
}

func advanceNow() tea.Msg { return advanceMsg{} }

type Model struct {
	s     *session
	phase tourney.Progress
	page  page
}

func NewModel(cfg config.Config, store *tourney.Store, announcer announce.Announcer, notifier *announce.DiscordNotifier, logger *slog.Logger) Model {
	if announcer == nil {
		announcer = announce.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &session{
		cfg:       cfg,
		store:     store,
		announcer: announcer,
		notifier:  notifier,
		log:       logger,
		styles:    DefaultStyles(),
		width:     100,
		height:    32,
	}
	m := Model{s: s, phase: store.Phase()}
	m.page = m.pageFor(m.phase)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.page.init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.s.width = msg.Width
		m.s.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case advanceMsg:
		m.phase = m.phase.Advance()
		m.s.store.SetPhase(m.phase)
		m.s.log.Info("step advanced", "step", m.phase.Step, "round", m.phase.RoundIndex+1)
		m.page = m.pageFor(m.phase)
		return m, m.page.init()
	case resetMsg:
		m.s.store.Reset()
		m.phase = m.s.store.Phase()
		m.s.log.Info("session reset", "session_id", m.s.store.SessionID())
		m.page = m.pageFor(m.phase)
		return m, m.page.init()
	}

	var cmd tea.Cmd
	m.page, cmd = m.page.update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.page.view()
}

func (m Model) pageFor(p tourney.Progress) page {
	switch p.Step {
	case tourney.StepWelcome:
		return newWelcomePage(m.s)
	case tourney.StepRules:
		return newRulesPage(m.s)
	case tourney.StepRoundPreview:
		return newPreviewPage(m.s, p.RoundIndex)
	case tourney.StepStrategy:
		return newStrategyPage(m.s, p.RoundIndex)
	case tourney.StepMatching:
		return newMatchingPage(m.s, p.RoundIndex)
	case tourney.StepBattle:
		return newBattlePage(m.s, p.RoundIndex)
	case tourney.StepRoundReveal:
		return newRevealPage(m.s, p.RoundIndex)
	case tourney.StepFinalStandings:
		return newStandingsPage(m.s)
	default:
		return newWelcomePage(m.s)
	}
}

// fetchAnnouncement asks the announcer for a short MC line off the UI
// goroutine. Failures degrade to the fixed fallback inside Announce.
func fetchAnnouncement(a announce.Announcer, round int) tea.Cmd {
	return func() tea.Msg {
		moment := fmt.Sprintf("第%d回戦のオーダー提出が始まります", round)
		return announcementMsg{round: round, text: a.Announce(context.Background(), moment)}
	}
}

// Run blocks until the operator quits the program.
func Run(cfg config.Config, store *tourney.Store, announcer announce.Announcer, notifier *announce.DiscordNotifier, logger *slog.Logger) error {
	program := tea.NewProgram(NewModel(cfg, store, announcer, notifier, logger), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
