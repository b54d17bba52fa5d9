package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/ringtrail/internal/handlers"
	"github.com/jwebster45206/ringtrail/pkg/encounter"
	"github.com/jwebster45206/ringtrail/pkg/engine"
	"github.com/jwebster45206/ringtrail/pkg/state"
	"github.com/jwebster45206/ringtrail/pkg/textfilter"
)

// travelTickInterval is the real-time pace of one simulated travel hour.
const travelTickInterval = 700 * time.Millisecond

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config *ConsoleConfig
	client *http.Client
	gs     *state.GameState
	towns  map[string]*encounter.Town

	transcript []string
	viewport   viewport.Model
	spinner    spinner.Model

	ready   bool
	width   int
	height  int
	cursor  int
	err     error
	loading bool

	// Quit confirmation state
	showQuitModal bool
}

type runMsg struct {
	resp *handlers.RunResponse
	err  error
}

type travelTickMsg time.Time

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")). // gold
			Bold(true)

	narrativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // off-white

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // grey

	menuItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	menuSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("220")).
				Bold(true)

	menuDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")) // dark grey

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	victoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")). // green
			Bold(true)

	defeatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // red
			Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, resp *handlers.RunResponse) ConsoleUI {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	m := ConsoleUI{
		config:  cfg,
		client:  client,
		gs:      resp.State,
		towns:   encounter.DefaultTowns(),
		spinner: sp,
	}
	m.appendEvents(resp.Events)
	return m
}

func (m ConsoleUI) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - m.footerHeight()
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.writeTranscript()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case travelTickMsg:
		if m.gs.Mode == state.ModeTraveling && !m.loading && !m.gs.IsOver {
			m.loading = true
			return m, m.doOp(func() (*handlers.RunResponse, error) {
				return postTick(m.client, m.config.APIBaseURL, m.gs.ID)
			})
		}
		return m, nil

	case runMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.gs = msg.resp.State
		m.cursor = 0
		m.appendEvents(msg.resp.Events)
		m.writeTranscript()
		if m.gs.Mode == state.ModeTraveling && !m.gs.IsOver {
			return m, tea.Tick(travelTickInterval, func(t time.Time) tea.Msg {
				return travelTickMsg(t)
			})
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.showQuitModal = true
		return m, nil
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.cursor < len(m.menuItems())-1 {
			m.cursor++
		}
		return m, nil
	case tea.KeyEnter:
		return m.selectItem(m.cursor)
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch s := msg.String(); s {
	case "q":
		m.showQuitModal = true
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return m.selectItem(int(s[0] - '1'))
	}
	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			if msg.String() == "y" {
				return m, tea.Quit
			}
			m.showQuitModal = false
			return m, nil
		}
	}
	return m, nil
}

// menuItem is one selectable entry in the footer menu. Disabled entries
// render greyed out and ignore selection.
type menuItem struct {
	label    string
	disabled bool
	do       func(m *ConsoleUI) tea.Cmd
}

func (m ConsoleUI) selectItem(index int) (tea.Model, tea.Cmd) {
	items := m.menuItems()
	if m.loading || index < 0 || index >= len(items) {
		return m, nil
	}
	item := items[index]
	if item.disabled || item.do == nil {
		return m, nil
	}
	m.cursor = index
	m.loading = true
	return m, item.do(&m)
}

// menuItems derives the footer menu from the current mode. The server is
// authoritative; a stale menu entry just yields a conflict error.
func (m ConsoleUI) menuItems() []menuItem {
	gs := m.gs

	if gs.IsOver {
		return []menuItem{{label: "Quit", do: func(m *ConsoleUI) tea.Cmd {
			return tea.Quit
		}}}
	}

	if gs.Pending != nil {
		items := make([]menuItem, 0, len(gs.Pending.Options))
		for i, opt := range gs.Pending.Options {
			idx := i
			items = append(items, menuItem{label: opt, do: func(m *ConsoleUI) tea.Cmd {
				return m.doOp(func() (*handlers.RunResponse, error) {
					return postChoice(m.client, m.config.APIBaseURL, m.gs.ID, idx)
				})
			}})
		}
		return items
	}

	switch gs.Mode {
	case state.ModeTraveling:
		return []menuItem{{label: "Halt for now", do: func(m *ConsoleUI) tea.Cmd {
			return m.doOp(func() (*handlers.RunResponse, error) {
				return postTravel(m.client, m.config.APIBaseURL, m.gs.ID, "stop")
			})
		}}}

	case state.ModePaused:
		return []menuItem{
			{label: "Travel on", do: func(m *ConsoleUI) tea.Cmd {
				return m.doOp(func() (*handlers.RunResponse, error) {
					return postTravel(m.client, m.config.APIBaseURL, m.gs.ID, "start")
				})
			}},
			{label: "Make camp", do: func(m *ConsoleUI) tea.Cmd {
				return m.doOp(func() (*handlers.RunResponse, error) {
					return postTravel(m.client, m.config.APIBaseURL, m.gs.ID, "camp")
				})
			}},
		}

	case state.ModeCamp:
		items := []menuItem{
			{label: "Rest a full day", do: campDo(engine.CampRest)},
			{label: "Forage for food", do: campDo(engine.CampForage)},
			{label: "Hunt", do: campDo(engine.CampHunt)},
			{label: "Scavenge for supplies", do: campDo(engine.CampScavenge)},
		}
		if gs.Inventory["athelas"] > 0 {
			items = append(items, menuItem{
				label: fmt.Sprintf("Use athelas (%d)", gs.Inventory["athelas"]),
				do:    campDo(engine.CampAthelas),
			})
		}
		items = append(items, menuItem{label: "Break camp and travel on", do: func(m *ConsoleUI) tea.Cmd {
			return m.doOp(func() (*handlers.RunResponse, error) {
				return postTravel(m.client, m.config.APIBaseURL, m.gs.ID, "start")
			})
		}})
		return items

	case state.ModeTown:
		town := m.towns[gs.Location]
		if town == nil {
			return nil
		}
		items := make([]menuItem, 0, len(town.Actions))
		for i := range town.Actions {
			a := town.Actions[i]
			if a.OneTime && gs.CompletedActions[town.Key+":"+a.ID] {
				continue
			}
			if a.If != nil && !a.If(gs) {
				continue
			}
			items = append(items, menuItem{
				label:    a.Label,
				disabled: a.Disabled != nil && a.Disabled(gs),
				do: func(m *ConsoleUI) tea.Cmd {
					return m.doOp(func() (*handlers.RunResponse, error) {
						return postTown(m.client, m.config.APIBaseURL, m.gs.ID, a.ID)
					})
				},
			})
		}
		return items
	}

	return nil
}

func campDo(kind string) func(m *ConsoleUI) tea.Cmd {
	return func(m *ConsoleUI) tea.Cmd {
		return m.doOp(func() (*handlers.RunResponse, error) {
			return postCamp(m.client, m.config.APIBaseURL, m.gs.ID, kind)
		})
	}
}

func (m *ConsoleUI) doOp(call func() (*handlers.RunResponse, error)) tea.Cmd {
	return func() tea.Msg {
		resp, err := call()
		return runMsg{resp: resp, err: err}
	}
}

// appendEvents folds operation events into the narrative transcript.
func (m *ConsoleUI) appendEvents(events []engine.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case engine.EventTravel:
			m.transcript = append(m.transcript,
				statusStyle.Render(fmt.Sprintf("~ On the road: %s ~", textfilter.DisplayName(ev.Location))))
		case engine.EventEncounter:
			if ev.Prompt != nil {
				m.transcript = append(m.transcript,
					titleStyle.Render(ev.Prompt.Title)+"\n"+narrativeStyle.Render(ev.Prompt.Description))
			}
		case engine.EventVictory:
			m.transcript = append(m.transcript,
				victoryStyle.Render(ev.Title)+"\n"+narrativeStyle.Render(ev.Text))
		case engine.EventGameOver:
			m.transcript = append(m.transcript,
				defeatStyle.Render(ev.Title)+"\n"+narrativeStyle.Render(ev.Text))
		default:
			line := ""
			if ev.Title != "" {
				line = titleStyle.Render(ev.Title)
			}
			if ev.Text != "" {
				if line != "" {
					line += "\n"
				}
				line += narrativeStyle.Render(ev.Text)
			}
			if line != "" {
				m.transcript = append(m.transcript, line)
			}
		}
	}
}

func (m *ConsoleUI) writeTranscript() {
	if !m.ready {
		return
	}
	sep := "\n" + separatorStyle.Render(strings.Repeat("─", max(1, m.viewport.Width-4))) + "\n"
	content := strings.Join(m.transcript, sep)
	m.viewport.SetContent(wordwrap.String(content, m.viewport.Width-2))
	m.viewport.GotoBottom()
}

func (m ConsoleUI) footerHeight() int {
	// Status bar, separator, menu lines and an error line.
	return len(m.menuItems()) + 4
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", max(1, m.width))))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderMenu())
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	}
	return b.String()
}

func (m ConsoleUI) renderStatusBar() string {
	gs := m.gs
	day := int(gs.ElapsedHours/24) + 1
	parts := []string{
		textfilter.DisplayName(gs.Location),
		fmt.Sprintf("Day %d, %02d:00", day, int(gs.TimeOfDay())),
		fmt.Sprintf("%.0f/%.0f miles", gs.DistanceTraveled, gs.TargetDistance),
		fmt.Sprintf("Food %.0f", gs.Resources.Food),
		fmt.Sprintf("Supplies %.0f", gs.Resources.Supplies),
		fmt.Sprintf("Gold %.0f", gs.Resources.Gold),
		fmt.Sprintf("Morale %.0f", gs.Morale),
		fmt.Sprintf("Party %d/%d", gs.LivingCount(), len(gs.Roster)),
	}
	bar := statusStyle.Render(strings.Join(parts, "  │  "))
	if m.loading || gs.Mode == state.ModeTraveling {
		bar = m.spinner.View() + " " + bar
	}
	return bar
}

func (m ConsoleUI) renderMenu() string {
	items := m.menuItems()
	if len(items) == 0 {
		return statusStyle.Render("(waiting)")
	}
	lines := make([]string, 0, len(items))
	for i, item := range items {
		label := fmt.Sprintf("%d. %s", i+1, item.label)
		switch {
		case item.disabled:
			lines = append(lines, menuDisabledStyle.Render("  "+label))
		case i == m.cursor:
			lines = append(lines, menuSelectedStyle.Render("> "+label))
		default:
			lines = append(lines, menuItemStyle.Render("  "+label))
		}
	}
	return strings.Join(lines, "\n")
}

func (m ConsoleUI) renderQuitModal() string {
	modal := modalStyle.Render(
		titleStyle.Render("Abandon the quest?") + "\n\n" +
			menuItemStyle.Render("Press Enter or y to quit, any other key to return."))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
