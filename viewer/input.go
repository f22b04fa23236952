package viewer

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/knot-runner/board"
)

// Command is a player intent decoded from a key
type Command uint8

const (
	CmdNone Command = iota
	CmdRoll
	CmdPrev
	CmdNext
	CmdConfirm
	CmdBuy
	CmdDecline
	CmdMute
	CmdReset
	CmdQuit
)

// Translate maps a key press to a command
func Translate(key tcell.Key, r rune, mod tcell.ModMask) Command {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CmdQuit
	case tcell.KeyEnter:
		return CmdConfirm
	case tcell.KeyUp, tcell.KeyLeft:
		return CmdPrev
	case tcell.KeyDown, tcell.KeyRight:
		return CmdNext
	case tcell.KeyRune:
	default:
		return CmdNone
	}

	if mod&tcell.ModCtrl != 0 {
		return CmdNone
	}
	switch r {
	case ' ', 'r':
		return CmdRoll
	case 'k', 'h':
		return CmdPrev
	case 'j', 'l':
		return CmdNext
	case 'b', 'y':
		return CmdBuy
	case 'n':
		return CmdDecline
	case 'm':
		return CmdMute
	case 'R':
		return CmdReset
	case 'q':
		return CmdQuit
	}
	return CmdNone
}

// Muter toggles audio cues
type Muter interface {
	ToggleMute() bool
}

// Apply executes cmd against the piece; returns true when the player quits
// Failures are reported on the status line, never returned
func (v *View) Apply(cmd Command, muter Muter) bool {
	p := v.piece
	switch cmd {
	case CmdQuit:
		return true
	case CmdRoll:
		if _, err := p.Turn.Roll(); err != nil {
			v.setMessage(describeError(err))
		}
	case CmdPrev:
		p.Turn.Steer(-1)
	case CmdNext:
		p.Turn.Steer(1)
	case CmdConfirm:
		if err := p.Turn.Confirm(); err != nil {
			v.setMessage(describeError(err))
		}
	case CmdBuy:
		if err := p.Board.BuyStar(); err != nil {
			v.setMessage(describeError(err))
		}
	case CmdDecline:
		if err := p.Board.Decline(); err != nil {
			v.setMessage(describeError(err))
		}
	case CmdMute:
		if muter == nil {
			return false
		}
		if muter.ToggleMute() {
			v.setMessage("sound off")
		} else {
			v.setMessage("sound on")
		}
	case CmdReset:
		p.Reset()
		v.setMessage("back to start")
	}
	return false
}

func describeError(err error) string {
	switch {
	case errors.Is(err, board.ErrTurnBusy):
		return "wait for the piece to stop"
	case errors.Is(err, board.ErrInsufficientCoins):
		return "not enough coins"
	case errors.Is(err, board.ErrNoOffer):
		return "nothing to buy here"
	default:
		return fmt.Sprintf("%v", err)
	}
}
