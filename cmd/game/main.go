package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/logging"
	"github.com/tomz197/snake/internal/loop"
	"github.com/tomz197/snake/internal/snake"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := logging.NewFile(settings.LogFile, "game", settings.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	game, err := snake.New(snake.Config{Width: settings.GridWidth, Height: settings.GridHeight})
	if err != nil {
		fmt.Fprintf(os.Stderr, "game: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("game started", "width", settings.GridWidth, "height", settings.GridHeight)

	reader := bufio.NewReader(os.Stdin)
	err = loop.RunTerminal(ctx, game, reader, os.Stdout,
		loop.Options{
			MoveInterval: settings.MoveInterval,
			FoodInterval: settings.FoodInterval,
			FrameTime:    settings.FrameTime(),
			Logger:       logger,
		},
		loop.TerminalOptions{
			Profile: termenv.NewOutput(os.Stdout).ColorProfile(),
		},
	)
	if err != nil {
		logger.Error("game error", "err", err)
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("game ended", "score", game.Score())
}
