package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/knot-runner/board"
	"github.com/lixenwraith/knot-runner/event"
	"github.com/lixenwraith/knot-runner/parameter"
	"github.com/lixenwraith/knot-runner/piece"
)

// maxSimFrames bounds a simulation that cannot make progress
const maxSimFrames = 1 << 20

type simulateOptions struct {
	turns  int
	seed   uint64
	choose string
	buy    bool
	json   bool
	events []string
}

// simResult summarizes a finished simulation
type simResult struct {
	Turns   int    `json:"turns"`
	Frames  int    `json:"frames"`
	Coins   int    `json:"coins"`
	Stars   int    `json:"stars"`
	Knot    string `json:"knot"`
	Dropped uint64 `json:"dropped_events"`
}

func newSimulateCmd(flags *globalFlags) *cobra.Command {
	opts := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run turns headlessly and print the event log",
		Long: `simulate plays a level without a terminal UI. Each turn rolls the dice,
picks a junction candidate by the --choose strategy and answers star offers
per --buy. Every dispatched event is printed, one per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				opts.seed = cfg.Seed
			}
			lvl, err := loadLevel(cfg.Level)
			if err != nil {
				return err
			}

			filter, err := parseEventFilter(opts.events)
			if err != nil {
				return err
			}

			p := piece.New(lvl, piece.Options{
				Traversal: cfg.TraversalEngine(),
				Motion:    cfg.Motion(),
				Roller:    board.NewDiceRoller(diceSeed(opts.seed)),
				Logger:    stderrLogger(cfg.Log.Debug),
			})
			return runSimulation(cmd.OutOrStdout(), p, opts, filter)
		},
	}
	cmd.Flags().IntVar(&opts.turns, "turns", 10, "number of turns to play")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "dice seed; 0 seeds from the clock")
	cmd.Flags().StringVar(&opts.choose, "choose", "first", "junction strategy: first, last or random")
	cmd.Flags().BoolVar(&opts.buy, "buy", true, "buy stars when affordable")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print events as JSON lines")
	cmd.Flags().StringSliceVar(&opts.events, "events", nil, "only print these event types, e.g. KnotEnter,KnotLand")
	return cmd
}

func parseEventFilter(names []string) ([]event.EventType, error) {
	var types []event.EventType
	for _, name := range names {
		et, ok := event.GetEventType(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown event type %q", name)
		}
		types = append(types, et)
	}
	return types, nil
}

// runSimulation drives the piece through opts.turns full turns at the fixed frame step
func runSimulation(w io.Writer, p *piece.Piece, opts *simulateOptions, filter []event.EventType) error {
	switch opts.choose {
	case "first", "last", "random":
	default:
		return fmt.Errorf("unknown junction strategy %q", opts.choose)
	}

	var writeErr error
	p.Bus.Subscribe(func(ev event.GameEvent) {
		if writeErr == nil {
			writeErr = writeEvent(w, ev, opts.json)
		}
	}, filter...)

	pick := rand.New(rand.NewPCG(opts.seed, 0x6b6e6f74))
	dt := parameter.FrameUpdateInterval.Seconds()

	frames := 0
	for ; frames < maxSimFrames; frames++ {
		if writeErr != nil {
			return writeErr
		}
		switch p.Turn.Phase() {
		case board.TurnReady:
			if p.Turn.Turns() >= opts.turns {
				return writeSummary(w, p, frames, opts.json)
			}
			if _, err := p.Turn.Roll(); err != nil {
				return err
			}
		case board.TurnChoosing:
			if n := len(p.Engine.State().Walkable); n > 0 {
				p.Turn.Steer(chooseCandidate(opts.choose, n, pick))
			}
			if err := p.Turn.Confirm(); err != nil {
				return err
			}
		case board.TurnHeld:
			if _, ok := p.Board.Offer(); ok {
				if !opts.buy || p.Board.BuyStar() != nil {
					if err := p.Board.Decline(); err != nil {
						return err
					}
				}
			}
		}
		p.Update(dt)
	}
	return fmt.Errorf("simulation stalled after %d frames at %s", frames, p.Engine.State().Current)
}

// chooseCandidate returns the steer offset from the default selection
func chooseCandidate(strategy string, n int, r *rand.Rand) int {
	switch strategy {
	case "last":
		return n - 1
	case "random":
		return r.IntN(n)
	}
	return 0
}

func writeEvent(w io.Writer, ev event.GameEvent, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(struct {
			Frame   int64  `json:"frame"`
			Type    string `json:"type"`
			Payload any    `json:"payload,omitempty"`
		}{ev.Frame, ev.Type.String(), ev.Payload})
	}
	_, err := fmt.Fprintf(w, "%6d %-24s %s\n", ev.Frame, ev.Type, describePayload(ev.Payload))
	return err
}

func describePayload(payload any) string {
	switch pl := payload.(type) {
	case *event.KnotPayload:
		return fmt.Sprintf("knot=%s remaining=%d", pl.Knot, pl.Remaining)
	case *event.JunctionPayload:
		names := make([]string, len(pl.Candidates))
		for i, c := range pl.Candidates {
			names[i] = c.String()
		}
		return fmt.Sprintf("knot=%s active=%t candidates=[%s]", pl.Knot, pl.Active, strings.Join(names, " "))
	case *event.SelectionPayload:
		return fmt.Sprintf("index=%d candidate=%s", pl.Index, pl.Candidate)
	case *event.RejectPayload:
		return fmt.Sprintf("requested=%d reason=%s", pl.Requested, pl.Reason)
	case *event.PausePayload:
		return fmt.Sprintf("paused=%t", pl.Paused)
	case *event.RollPayload:
		return fmt.Sprintf("value=%d", pl.Value)
	case *event.StatsPayload:
		return fmt.Sprintf("coins=%d(%+d) stars=%d(%+d)", pl.Coins, pl.CoinsDelta, pl.Stars, pl.StarsDelta)
	case *event.StarOfferPayload:
		return fmt.Sprintf("knot=%s cost=%d affordable=%t", pl.Knot, pl.Cost, pl.Affordable)
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", payload)
}

func writeSummary(w io.Writer, p *piece.Piece, frames int, asJSON bool) error {
	res := simResult{
		Turns:   p.Turn.Turns(),
		Frames:  frames,
		Coins:   p.Board.Stats().Coins(),
		Stars:   p.Board.Stats().Stars(),
		Knot:    p.Engine.State().Current.String(),
		Dropped: p.Bus.Dropped(),
	}
	if asJSON {
		return json.NewEncoder(w).Encode(struct {
			Summary simResult `json:"summary"`
		}{res})
	}
	_, err := fmt.Fprintf(w, "turns=%d frames=%d coins=%d stars=%d knot=%s dropped=%d\n",
		res.Turns, res.Frames, res.Coins, res.Stars, res.Knot, res.Dropped)
	return err
}
