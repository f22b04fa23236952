package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/knot-runner/audio"
	"github.com/lixenwraith/knot-runner/board"
	"github.com/lixenwraith/knot-runner/config"
	"github.com/lixenwraith/knot-runner/event"
	"github.com/lixenwraith/knot-runner/metrics"
	"github.com/lixenwraith/knot-runner/parameter"
	"github.com/lixenwraith/knot-runner/piece"
	"github.com/lixenwraith/knot-runner/viewer"
)

func newPlayCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a level in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			return runPlay(cmd.Context(), cfg)
		},
	}
}

func runPlay(ctx context.Context, cfg *config.Config) error {
	logger, logFile := setupLogging(cfg.Log.Dir, cfg.Log.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	lvl, err := loadLevel(cfg.Level)
	if err != nil {
		return err
	}

	var handlers []event.Handler

	// Audio failures never stop the game
	var cues *audio.Cues
	audioCfg := audio.FromConfig(cfg.Audio)
	if audioCfg.Enabled {
		spk := audio.NewSpeaker(audioCfg)
		if err := spk.Initialize(); err != nil {
			logger.Warn("audio disabled", "error", err)
		} else {
			defer spk.Close()
			cues = audio.NewCues(audioCfg, spk)
			handlers = append(handlers, cues)
		}
	}

	var reg *prometheus.Registry
	if cfg.Metrics.Addr != "" {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		handlers = append(handlers, metrics.New(reg))
	}

	seed := diceSeed(cfg.Seed)
	p := piece.New(lvl, piece.Options{
		Traversal: cfg.TraversalEngine(),
		Motion:    cfg.Motion(),
		Roller:    board.NewDiceRoller(seed),
		Logger:    logger,
		Handlers:  handlers,
	})
	logger.Info("game start", "level", lvl.Name, "seed", seed, "piece", p.ID.String())

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()
	screen.Clear()

	view := viewer.NewView(screen, p)
	p.Bus.Register(view)

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	if reg != nil {
		serveMetrics(ctx, g, cfg.Metrics.Addr, reg, logger)
	}

	// PollEvent blocks, so it gets its own goroutine; Fini unblocks it with nil
	events := make(chan tcell.Event, 100)
	g.Go(guarded(screen, logger, func() error {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	}))

	g.Go(guarded(screen, logger, func() error {
		defer stop()
		defer screen.Fini()
		return frameLoop(ctx, p, view, cues, events)
	}))

	err = g.Wait()
	if cues != nil {
		played, suppressed := cues.Stats()
		logger.Info("audio", "played", played, "suppressed", suppressed)
	}
	logger.Info("game end",
		"turns", p.Turn.Turns(),
		"coins", p.Board.Stats().Coins(),
		"stars", p.Board.Stats().Stars(),
		"dropped_events", p.Bus.Dropped())
	return err
}

// frameLoop ticks the piece and redraws at a fixed rate until quit or cancel
func frameLoop(ctx context.Context, p *piece.Piece, view *viewer.View, cues *audio.Cues, events <-chan tcell.Event) error {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	var muter viewer.Muter
	if cues != nil {
		muter = cues
	}

	last := time.Now()
	view.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if view.Apply(viewer.Translate(ev.Key(), ev.Rune(), ev.Modifiers()), muter) {
					return nil
				}
			case *tcell.EventResize:
				view.Resize()
			}

		case now := <-ticker.C:
			p.Update(now.Sub(last).Seconds())
			last = now
			view.Draw()
		}
	}
}

func serveMetrics(ctx context.Context, g *errgroup.Group, addr string, reg *prometheus.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		logger.Info("metrics listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}
