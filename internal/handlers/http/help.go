package handlers

import (
	"bytes"
	_ "embed"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
)

//go:embed help.md
var helpMarkdown []byte

var renderHelp = sync.OnceValues(func() ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert(helpMarkdown, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
})

func (h *Handlers) registerHelpEndpoints(router *gin.Engine) {
	router.GET("/api/help", h.getHelp)
}

func (h *Handlers) getHelp(c *gin.Context) {
	html, err := renderHelp()
	if err != nil {
		fail(c, "help", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
