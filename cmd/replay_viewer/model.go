package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/config"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/simulator"
)

const (
	minInterval = 25 * time.Millisecond
	maxInterval = 2 * time.Second
)

type tickMsg struct {
	id int
}

// configMsg carries a reloaded config file.
type configMsg struct {
	viewer config.ViewerConfig
}

type model struct {
	sim         *simulator.Simulator
	playing     bool
	tickID      int
	interval    time.Duration
	showArmies  bool
	coordinates bool
	width       int
}

func newModel(sim *simulator.Simulator, vc config.ViewerConfig) model {
	m := model{sim: sim}
	m.applyViewerConfig(vc)
	return m
}

func (m *model) applyViewerConfig(vc config.ViewerConfig) {
	m.interval = clampInterval(time.Duration(vc.TurnIntervalMs) * time.Millisecond)
	m.showArmies = vc.ShowArmies
	m.coordinates = vc.ShowCoordinates
}

func clampInterval(d time.Duration) time.Duration {
	if d < minInterval {
		return minInterval
	}
	if d > maxInterval {
		return maxInterval
	}
	return d
}

func tickCmd(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case configMsg:
		m.applyViewerConfig(msg.viewer)
	case tickMsg:
		if !m.playing || msg.id != m.tickID {
			return m, nil
		}
		if m.sim.CurrentTurn() >= m.sim.MaxTurn() {
			m.playing = false
			return m, nil
		}
		m.sim.AdvanceOneTurn()
		return m, tickCmd(m.tickID, m.interval)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "p":
		return m.togglePlay()
	case "right", "l":
		m.playing = false
		m.sim.AdvanceOneTurn()
	case "left", "h":
		m.playing = false
		m.sim.RewindOneTurn()
	case "up", "k":
		m.playing = false
		m.sim.JumpToTurn(m.sim.CurrentTurn() + 50)
	case "down", "j":
		m.playing = false
		m.sim.JumpToTurn(m.sim.CurrentTurn() - 50)
	case "home", "g":
		m.playing = false
		m.sim.JumpToTurn(0)
	case "end", "G":
		m.playing = false
		m.sim.JumpToTurn(m.sim.MaxTurn())
	case "+", "=":
		m.interval = clampInterval(m.interval / 2)
	case "-":
		m.interval = clampInterval(m.interval * 2)
	case "a":
		m.showArmies = !m.showArmies
	case "c":
		m.coordinates = !m.coordinates
	}
	return m, nil
}

func (m model) togglePlay() (tea.Model, tea.Cmd) {
	if m.playing {
		m.playing = false
		return m, nil
	}
	if m.sim.CurrentTurn() >= m.sim.MaxTurn() {
		m.sim.JumpToTurn(0)
	}
	m.playing = true
	m.tickID++
	return m, tickCmd(m.tickID, m.interval)
}
