package main

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestGuarded_RecoversPanic(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}

	fn := guarded(screen, slog.New(slog.DiscardHandler), func() error {
		panic("frame loop")
	})

	err := fn()
	if !errors.Is(err, errCrashed) {
		t.Errorf("Expected errCrashed, got %v", err)
	}
}

func TestGuarded_PassesThroughError(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	want := errors.New("boom")

	fn := guarded(screen, slog.New(slog.DiscardHandler), func() error { return want })
	if err := fn(); err != want {
		t.Errorf("Expected %v, got %v", want, err)
	}
}
