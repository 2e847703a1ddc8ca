package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/lox/settable/cmd/settable/shared"
	"github.com/lox/settable/internal/display"
	"github.com/lox/settable/internal/game"
	"github.com/lox/settable/internal/tui"
)

// PlayCmd runs one game to completion.
type PlayCmd struct {
	Config  string `kong:"default='settable.hcl',help='HCL config file'"`
	Players *int   `kong:"help='Number of players (overrides config)'"`
	Humans  *int   `kong:"help='Number of human players (overrides config)'"`
	Seed    *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Hints   bool   `kong:"help='Log the legal sets after every deal'"`
	TUI     bool   `kong:"help='Render the game in a terminal UI'"`
	LogFile string `kong:"default='settable.log',help='Log destination in TUI mode'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := game.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Players != nil {
		cfg.Players = *c.Players
	}
	if c.Humans != nil {
		cfg.HumanPlayers = *c.Humans
	}
	if c.Hints {
		cfg.Hints = true
	}

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
	}

	// Human players need somewhere to press keys.
	if cfg.HumanPlayers > 0 || c.TUI {
		return c.runTUI(cfg, seed)
	}
	return c.runHeadless(cfg, seed)
}

func (c *PlayCmd) runHeadless(cfg game.Config, seed int64) error {
	logger := shared.SetupLogger(c.Debug)
	ctx := shared.SetupSignalHandler(logger)

	disp := display.NewLogSink(cfg.Geometry(), logger)
	gm, err := game.New(cfg, disp, logger, game.Options{Seed: seed})
	if err != nil {
		return err
	}

	winners := gm.Run(ctx)
	logger.Info("Finished", "winners", winners)
	return nil
}

func (c *PlayCmd) runTUI(cfg game.Config, seed int64) error {
	// The TUI owns the terminal, so logs go to a file.
	logger, logFile, err := shared.SetupFileLogger(c.LogFile, c.Debug)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx := shared.SetupSignalHandler(logger)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := display.NewEvents(256)
	gm, err := game.New(cfg, events, logger, game.Options{Seed: seed})
	if err != nil {
		return err
	}

	model := tui.New(cfg, events.C(), func(player, slot int) {
		gm.Player(player).OnSelect(slot)
	}, cancel)
	program := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	var grp errgroup.Group
	grp.Go(func() error {
		winners := gm.Run(runCtx)
		logger.Info("Finished", "winners", winners)
		return nil
	})
	grp.Go(func() error {
		_, err := program.Run()
		// Leaving the UI aborts a game still in progress.
		cancel()
		return err
	})
	return grp.Wait()
}
