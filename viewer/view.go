// Package viewer draws a piece and its level top-down on a tcell screen and
// turns key presses into turn commands
package viewer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/knot-runner/board"
	"github.com/lixenwraith/knot-runner/event"
	"github.com/lixenwraith/knot-runner/knot"
	"github.com/lixenwraith/knot-runner/level"
	"github.com/lixenwraith/knot-runner/parameter"
	"github.com/lixenwraith/knot-runner/piece"
)

const (
	statusRows = 3
	// pathSamples is the number of curve samples drawn per knot segment
	pathSamples = 12
)

var (
	stylePath     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePiece    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleHighlite = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	styleMessage  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// View renders one piece; it is also a bus handler collecting status messages
type View struct {
	screen tcell.Screen
	piece  *piece.Piece
	proj   Projector

	message string
	frames  int64
}

func NewView(screen tcell.Screen, p *piece.Piece) *View {
	v := &View{screen: screen, piece: p}
	v.Resize()
	return v
}

// Resize refits the level to the current screen size
func (v *View) Resize() {
	w, h := v.screen.Size()
	lo, hi := v.piece.Level.Graph.Bounds()
	v.proj = NewProjector(lo, hi, w, max(h-statusRows, 1))
}

func (v *View) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventKnotLand,
		event.EventJunctionEnter,
		event.EventAnimateRejected,
		event.EventRollResult,
		event.EventStatsChange,
		event.EventStarOffer,
	}
}

func (v *View) HandleEvent(ev event.GameEvent) {
	switch p := ev.Payload.(type) {
	case *event.KnotPayload:
		m := v.piece.Level.Meta(p.Knot)
		v.setMessage(fmt.Sprintf("landed on %s (%s)", p.Knot, m.Kind))
	case *event.JunctionPayload:
		v.setMessage(fmt.Sprintf("junction: %d ways, choose and press enter", len(p.Candidates)))
	case *event.RejectPayload:
		v.setMessage("move refused: " + p.Reason)
	case *event.RollPayload:
		v.setMessage(fmt.Sprintf("rolled %d", p.Value))
	case *event.StatsPayload:
		switch {
		case p.StarsDelta > 0:
			v.setMessage("got a star!")
		case p.CoinsDelta > 0:
			v.setMessage(fmt.Sprintf("+%d coins", p.CoinsDelta))
		case p.CoinsDelta < 0:
			v.setMessage(fmt.Sprintf("%d coins", p.CoinsDelta))
		}
	case *event.StarOfferPayload:
		if p.Affordable {
			v.setMessage(fmt.Sprintf("star for %d coins: b to buy, n to pass", p.Cost))
		} else {
			v.setMessage(fmt.Sprintf("star costs %d coins, n to pass", p.Cost))
		}
	}
}

func (v *View) setMessage(s string) {
	v.message = s
}

// Message returns the current status message
func (v *View) Message() string {
	return v.message
}

// Draw renders a full frame and shows it
func (v *View) Draw() {
	v.frames++
	v.screen.Clear()
	v.drawPaths()
	v.drawKnots()
	v.drawSelection()
	v.drawPiece()
	v.drawStatus()
	v.screen.Show()
}

func (v *View) drawPaths() {
	g := v.piece.Level.Graph
	for path := 0; path < g.PathCount(); path++ {
		segments := g.KnotCount(path) - 1
		if g.IsClosed(path) {
			segments++
		}
		n := segments * pathSamples
		for i := 0; i <= n; i++ {
			pos, _ := g.Evaluate(path, float64(i)/float64(n))
			x, y := v.proj.Cell(pos)
			v.screen.SetContent(x, y, '·', nil, stylePath)
		}
	}
}

func (v *View) drawKnots() {
	g := v.piece.Level.Graph
	for path := 0; path < g.PathCount(); path++ {
		for k := 0; k < g.KnotCount(path); k++ {
			idx := knot.Index{Path: path, Knot: k}
			if g.Canonical(idx) != idx {
				continue
			}
			r, style := knotGlyph(v.piece.Level.Meta(idx))
			x, y := v.proj.Cell(g.Position(idx))
			v.screen.SetContent(x, y, r, nil, style)
		}
	}
	for _, j := range v.piece.Level.Junctions() {
		x, y := v.proj.Cell(g.Position(j))
		v.screen.SetContent(x, y, '+', nil, stylePath.Bold(true))
	}
}

func knotGlyph(m level.Meta) (rune, tcell.Style) {
	switch m.Kind {
	case level.KindBlue:
		return 'o', tcell.StyleDefault.Foreground(tcell.ColorBlue)
	case level.KindRed:
		return 'o', tcell.StyleDefault.Foreground(tcell.ColorRed)
	case level.KindStar:
		return '*', tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	default:
		return 'o', tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
}

// drawSelection marks the knot the highlighted junction branch leads to
func (v *View) drawSelection() {
	pos, ok := v.piece.Engine.Preview()
	if !ok {
		return
	}
	x, y := v.proj.Cell(pos)
	primary, _, _, _ := v.screen.GetContent(x, y)
	v.screen.SetContent(x, y, primary, nil, styleHighlite)
}

func (v *View) drawPiece() {
	x, y := v.proj.Cell(v.piece.Driver.Position())
	v.screen.SetContent(x, y, '@', nil, stylePiece)
}

func (v *View) drawStatus() {
	_, h := v.screen.Size()
	p := v.piece
	st := p.Engine.State()
	stats := p.Board.Stats()

	line := fmt.Sprintf("coins %d  stars %d  turn %d  roll %d  steps %d  %s",
		stats.Coins(), stats.Stars(), p.Turn.Turns(), p.Turn.LastRoll(), st.RemainingSteps, p.Turn.Phase())
	v.drawText(0, h-statusRows, line, styleStatus)
	v.drawText(0, h-statusRows+1, helpLine(p.Turn.Phase()), styleHelp)
	v.drawText(0, h-statusRows+2, v.message, styleMessage)
}

func helpLine(phase board.TurnPhase) string {
	switch phase {
	case board.TurnReady:
		return "space roll  m mute  R reset  q quit"
	case board.TurnChoosing:
		return "j/k choose path  enter confirm"
	case board.TurnHeld:
		return fmt.Sprintf("b buy star (%d)  n pass", parameter.StarCost)
	default:
		return "q quit"
	}
}

func (v *View) drawText(x, y int, s string, style tcell.Style) {
	w, _ := v.screen.Size()
	for _, r := range s {
		if x >= w {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
