package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/draw"
	snakelog "github.com/tomz197/snake/internal/logging"
	"github.com/tomz197/snake/internal/loop"
	"github.com/tomz197/snake/internal/session"
	"github.com/tomz197/snake/internal/snake"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	logger := snakelog.New(os.Stderr, "snake-ssh", settings.LogLevel)

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", settings.SSHHost, "port", settings.SSHPort,
		"hostKeyPath", settings.SSHHostKey, "workingDir", workingDir)

	sessions := session.NewManager(logger.WithPrefix("sessions"))

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(settings.SSHHost, settings.SSHPort)),
		wish.WithMiddleware(
			gameMiddleware(settings, sessions, logger),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if settings.SSHHostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(settings.SSHHostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(settings.SSHHost, settings.SSHPort))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "sessions", sessions.Count())

	// Tell players, then give them the notice period to see it.
	if remaining := sessions.Shutdown(settings.ShutdownGrace); remaining > 0 {
		logger.Warn("closing sessions still connected", "sessions", remaining)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware runs an independent game for each SSH session.
func gameMiddleware(settings config.Settings, sessions *session.Manager, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			handle := sessions.Register(sess.User())
			defer sessions.Unregister(handle.ID)
			sessLog := logger.With("session", handle.ID, "user", sess.User())
			sessLog.Info("new game session", "terminal", pty.Term,
				"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			game, err := snake.New(snake.Config{Width: settings.GridWidth, Height: settings.GridHeight})
			if err != nil {
				sessLog.Error("failed to create game", "err", err)
				return
			}

			err = loop.RunTerminal(sess.Context(), game, bufio.NewReader(sess), sess,
				loop.Options{
					MoveInterval: settings.MoveInterval,
					FoodInterval: settings.FoodInterval,
					FrameTime:    settings.FrameTime(),
					Logger:       sessLog,
				},
				loop.TerminalOptions{
					TermSizeFunc:         sizeTracker.getSize,
					Profile:              termenv.ANSI256,
					InactivityWarn:       settings.InactivityWarn,
					InactivityDisconnect: settings.InactivityDisconnect,
					Events:               handle.Events,
					ShutdownDisplay:      settings.ShutdownDisplay,
				},
			)
			if err != nil {
				sessLog.Error("game error", "err", err)
			}
			sessLog.Info("game session ended", "score", game.Score())
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
