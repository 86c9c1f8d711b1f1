package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/logging"
	"github.com/tomz197/snake/internal/loop"
	"github.com/tomz197/snake/internal/snake"
	"github.com/tomz197/snake/internal/window"
	"github.com/tomz197/snake/internal/window/grid"
)

func init() {
	// raylib must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	logger := logging.New(os.Stderr, "snake-window", settings.LogLevel)

	game, err := snake.New(snake.Config{Width: settings.GridWidth, Height: settings.GridHeight})
	if err != nil {
		logger.Fatal("failed to create game", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := window.DefaultOptions()
	if _, err := grid.New(opts.Width, opts.Height, settings.GridWidth, settings.GridHeight); err != nil {
		logger.Fatal("grid does not fit the window", "err", err)
	}
	win := window.Open(opts)
	defer win.Close()

	// Frame pacing comes from vsync.
	runner := loop.NewRunner(game, win, loop.Options{
		MoveInterval: settings.MoveInterval,
		FoodInterval: settings.FoodInterval,
		Logger:       logger,
	})
	if err := runner.Run(ctx); err != nil {
		logger.Error("game error", "err", err)
	}
	logger.Info("window closed", "score", game.Score())
}
