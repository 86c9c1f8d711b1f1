// Package web serves the landing page that tells visitors how to connect.
package web

import (
	_ "embed"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed index.html
var htmlPage string

// Options is what the landing page shows.
type Options struct {
	SSHHost string
	SSHPort string
}

// NewRouter returns a gin engine with the landing page and a health check.
func NewRouter(opts Options) *gin.Engine {
	page := strings.NewReplacer(
		"{{.SSHHost}}", opts.SSHHost,
		"{{.SSHPort}}", opts.SSHPort,
	).Replace(htmlPage)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}
