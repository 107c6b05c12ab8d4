package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/common"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/simulator"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(common.TextHex))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true)
	deadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
)

// cellStyles caches one style per background color.
var cellStyles = map[string]lipgloss.Style{}

func cellStyle(bg string) lipgloss.Style {
	if s, ok := cellStyles[bg]; ok {
		return s
	}
	s := lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(common.TextHex))
	cellStyles[bg] = s
	return s
}

func (m model) View() string {
	snap := m.sim.CurrentSnapshot()
	rec := m.sim.Record()

	title := rec.MapTitle
	if title == "" {
		title = rec.ID
	}
	status := "paused"
	if m.playing {
		status = "playing"
	}
	if m.sim.IsGameOver() {
		status = "game over"
	} else if m.sim.Overrun() && snap.Turn == m.sim.MaxTurn() {
		status = "stopped at turn limit"
	}
	header := titleStyle.Render(title) + dimStyle.Render(fmt.Sprintf("  turn %d/%d  %s  %s/turn",
		snap.Turn, m.sim.MaxTurn(), status, m.interval))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(m.renderBoard(snap)),
		paneStyle.Render(renderStandings(snap)),
	)

	help := dimStyle.Render("space play/pause  ←/→ step  ↑/↓ ±50  g/G start/end  +/- speed  a armies  c coords  q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

func (m model) renderBoard(snap *simulator.Snapshot) string {
	kind := make(map[int]byte, len(snap.Cities)+len(snap.Generals)+len(snap.Swamps))
	for _, s := range snap.Swamps {
		kind[s] = 's'
	}
	for _, c := range snap.Cities {
		kind[c] = 'c'
	}
	for _, g := range snap.Generals {
		if g != game.DeadGeneral {
			kind[g] = 'g'
		}
	}

	var sb strings.Builder
	if m.coordinates {
		sb.WriteString("   ")
		for x := 0; x < snap.Width; x++ {
			sb.WriteString(fmt.Sprintf("%3d", x))
		}
		sb.WriteString("\n")
	}
	for y := 0; y < snap.Height; y++ {
		if m.coordinates {
			sb.WriteString(fmt.Sprintf("%3d", y))
		}
		for x := 0; x < snap.Width; x++ {
			i := y*snap.Width + x
			bg, text := m.cell(snap.OwnerAt(i), snap.ArmyAt(i), kind[i])
			sb.WriteString(cellStyle(bg).Render(text))
		}
		if y < snap.Height-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// cell returns the background color and three-column text of one cell.
func (m model) cell(owner core.Owner, army int, kind byte) (string, string) {
	bg := common.NeutralHex
	switch {
	case owner == core.Mountain:
		return common.MountainHex, " ▲ "
	case owner.IsPlayer():
		bg = common.PlayerHex(owner.Player())
	case kind == 'c':
		bg = common.CityHex
	case kind == 's':
		bg = common.SwampHex
	}

	label := ""
	switch kind {
	case 'g':
		label = "♔"
	case 'c':
		label = "⬢"
	case 's':
		label = "≈"
	}
	if !m.showArmies || (army == 0 && !owner.IsPlayer()) {
		return bg, fmt.Sprintf("%-3s", " "+label)
	}
	return bg, fitArmy(label, army)
}

func fitArmy(label string, army int) string {
	width := 3 - len([]rune(label))
	s := strconv.Itoa(army)
	if len(s) > width {
		s = strings.Repeat("+", width)
	}
	return label + strings.Repeat(" ", width-len(s)) + s
}

func renderStandings(snap *simulator.Snapshot) string {
	headers := []string{"#", "Player", "Army", "Land"}
	if snap.Teams != nil {
		headers = append(headers, "Team")
	}

	rows := make([][]string, 0, len(snap.Scores))
	for rank, s := range snap.Scores {
		p, _ := snap.Player(s.Index)
		row := []string{strconv.Itoa(rank + 1), p.Username, strconv.Itoa(s.Total), strconv.Itoa(s.Tiles)}
		if snap.Teams != nil && s.Index < len(snap.Teams) {
			row = append(row, strconv.Itoa(snap.Teams[s.Index]))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(snap.Scores) {
				return lipgloss.NewStyle()
			}
			s := snap.Scores[row]
			if s.Dead {
				return deadStyle
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(lipgloss.Color(common.PlayerHex(s.Index)))
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}
