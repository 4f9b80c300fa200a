package main

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mrbonezy/prdash/ui"
)

// statusRefresher is the collaborator the watch loop polls. Refresh returns
// a replacement snapshot, or the current one when nothing new is available.
type statusRefresher interface {
	Refresh(current *PrStatus) (*PrStatus, error)
}

type watchTickMsg time.Time

type refreshDoneMsg struct {
	status *PrStatus
	err    error
}

// watchModel drives the render/refresh loop. Every tick it rebuilds the row
// specs from the current snapshot and re-renders whether or not the data
// changed, so check spinners stay live. It quits once every check is
// terminal.
type watchModel struct {
	refresher statusRefresher
	status    *PrStatus
	registry  *ui.Registry
	styles    ui.Styles
	spinner   spinner.Model
	tick      time.Duration
	logger    *slog.Logger

	refreshing bool
	done       bool
	aborted    bool
}

func newWatchModel(refresher statusRefresher, status *PrStatus, tick time.Duration, logger *slog.Logger) watchModel {
	m := watchModel{
		refresher: refresher,
		status:    status,
		registry:  ui.NewRegistry(),
		styles:    ui.DefaultStyles(),
		spinner:   newSpinner(),
		tick:      tick,
		logger:    logger,
	}
	m.applyRows()
	return m
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, watchTickCmd(m.tick))
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.aborted = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case watchTickMsg:
		m.applyRows()
		if m.status.IsComplete() {
			m.done = true
			return m, tea.Quit
		}
		cmds := []tea.Cmd{watchTickCmd(m.tick)}
		if !m.refreshing {
			m.refreshing = true
			cmds = append(cmds, refreshStatusCmd(m.refresher, m.status))
		}
		return m, tea.Batch(cmds...)
	case refreshDoneMsg:
		m.refreshing = false
		if msg.err != nil {
			m.logger.Warn("refresh failed, keeping previous snapshot", "err", msg.err)
			return m, nil
		}
		m.status = msg.status
		return m, nil
	}
	return m, nil
}

func (m watchModel) View() string {
	return m.registry.Render(m.spinner.View(), m.styles) + "\n"
}

func (m *watchModel) applyRows() {
	m.registry.Apply(ui.BuildStatusRows(statusViewFor(m.status)))
}

// statusViewFor projects a snapshot into the render-ready view model.
func statusViewFor(status *PrStatus) ui.StatusView {
	view := ui.StatusView{
		Number:    status.Number,
		Title:     status.Title,
		URL:       status.URL,
		Body:      status.Body,
		State:     status.State,
		Author:    status.Author.Login,
		CreatedAt: status.CreatedAt,
		UpdatedAt: status.UpdatedAt,
		SHA:       status.HeadSHA(),
	}
	if status.URL != "" {
		view.URLText = termenv.Hyperlink(status.URL, status.URL)
	}
	for _, f := range status.Files {
		view.Files = append(view.Files, ui.FileRow{
			Path:      f.Path,
			Additions: f.Additions,
			Deletions: f.Deletions,
		})
	}
	for _, c := range status.StatusCheckRollup {
		view.Checks = append(view.Checks, ui.CheckRow{
			Name:     c.CheckName(),
			Label:    c.ShortLabel(),
			Terminal: c.IsTerminal(),
		})
	}
	return view
}

func watchTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func refreshStatusCmd(refresher statusRefresher, current *PrStatus) tea.Cmd {
	return func() tea.Msg {
		status, err := refresher.Refresh(current)
		return refreshDoneMsg{status: status, err: err}
	}
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
		FPS:    time.Second / 12,
	}
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	return s
}
