package main

import (
	"net"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/logging"
	"github.com/tomz197/snake/internal/web"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	logger := logging.New(os.Stderr, "snake-web", settings.LogLevel)

	gin.SetMode(config.GetEnv("GIN_MODE", gin.ReleaseMode))
	router := web.NewRouter(web.Options{
		SSHHost: settings.DisplayHost,
		SSHPort: settings.SSHPort,
	})

	addr := net.JoinHostPort(settings.WebHost, settings.WebPort)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := router.Run(addr); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
