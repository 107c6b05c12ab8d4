package game

import (
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/core"
)

// ANSI color codes
const (
	ColorReset   = "\033[0m"
	ColorRed     = "\033[31m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorBlue    = "\033[34m"
	ColorPurple  = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorWhite   = "\033[37m"
	ColorGray    = "\033[90m"
	ColorBRed    = "\033[91m"
	ColorBGreen  = "\033[92m"
	ColorBYellow = "\033[93m"
	ColorBBlue   = "\033[94m"
	ColorBPurple = "\033[95m"
	ColorBCyan   = "\033[96m"
)

var playerColors = []string{
	ColorRed, ColorBlue, ColorGreen, ColorCyan, ColorYellow, ColorPurple,
	ColorBPurple, ColorBRed, ColorBYellow, ColorBGreen, ColorBBlue, ColorBCyan,
}

const (
	emptySymbol    = "·"
	citySymbol     = "⬢"
	generalSymbol  = "♔"
	mountainSymbol = "▲"
	swampSymbol    = "≈"
	playerSymbols  = "ABCDEFGHIJKL"
)

// RenderOptions controls RenderBoard output.
type RenderOptions struct {
	Color       bool
	Coordinates bool
}

// RenderBoard draws a board as text, three columns per cell. generals,
// cities and swamps mark special cells; DeadGeneral entries are skipped.
func RenderBoard(b *core.Board, generals, cities, swamps []int, opts RenderOptions) string {
	kind := make(map[int]byte, len(generals)+len(cities)+len(swamps))
	for _, s := range swamps {
		kind[s] = 's'
	}
	for _, c := range cities {
		kind[c] = 'c'
	}
	for _, g := range generals {
		if g != DeadGeneral {
			kind[g] = 'g'
		}
	}

	var sb strings.Builder
	sb.Grow((b.W*16 + 8) * (b.H + 3))

	if opts.Coordinates {
		sb.WriteString("   ")
		for x := 0; x < b.W; x++ {
			sb.WriteString(fixedWidth(x, 3))
		}
		sb.WriteString("\n")
	}

	for y := 0; y < b.H; y++ {
		if opts.Coordinates {
			sb.WriteString(fixedWidth(y, 3))
		}
		for x := 0; x < b.W; x++ {
			i := b.Idx(x, y)
			color, text := cellDisplay(b.OwnerAt(i), b.ArmyAt(i), kind[i])
			if opts.Color && color != "" {
				sb.WriteString(color)
				sb.WriteString(text)
				sb.WriteString(ColorReset)
			} else {
				sb.WriteString(text)
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(emptySymbol + "=empty " + citySymbol + "=city " + generalSymbol + "=general " +
		mountainSymbol + "=mountain " + swampSymbol + "=swamp A-L=players\n")
	return sb.String()
}

// RenderMatch draws the current board of m.
func (m *Match) RenderMatch(opts RenderOptions) string {
	return RenderBoard(m.Board, m.Generals, m.Cities, m.Swamps, opts)
}

// cellDisplay returns the color and the three-column text of a cell.
func cellDisplay(owner core.Owner, army int, kind byte) (string, string) {
	if owner == core.Mountain {
		return ColorGray, " " + mountainSymbol + " "
	}

	if !owner.IsPlayer() {
		switch {
		case kind == 'c':
			return ColorWhite, citySymbol + compactArmy(army, 2)
		case kind == 's':
			return ColorCyan, " " + swampSymbol + " "
		case army == 0:
			return ColorGray, " " + emptySymbol + " "
		default:
			return ColorGray, compactArmy(army, 3)
		}
	}

	color := playerColor(int(owner))
	letter := string(playerSymbols[int(owner)%len(playerSymbols)])
	switch kind {
	case 'g':
		return color, letter + generalSymbol + compactArmy(army, 1)
	case 'c':
		return color, letter + citySymbol + compactArmy(army, 1)
	}
	return color, letter + compactArmy(army, 2)
}

// compactArmy fits army into width columns, using + when it does not fit.
func compactArmy(army, width int) string {
	s := strconv.Itoa(army)
	if len(s) > width {
		return strings.Repeat("+", width)
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func fixedWidth(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// playerColor returns the ANSI color for the given player index
func playerColor(player int) string {
	if player < 0 || player >= len(playerColors) {
		return ColorWhite
	}
	return playerColors[player]
}
