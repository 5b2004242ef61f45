package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"deckroll/internal/utils/command"
)

func (h *Handlers) registerDeckrollEndpoints(router *gin.Engine) {
	router.POST("/api/deckroll", h.postDeckroll)
}

type deckrollRequest struct {
	Command string `json:"command"`
	Amount  int    `json:"amount"`
}

type deckrollResponse struct {
	Deckcodes []string `json:"deckcodes"`
	Decklinks []string `json:"decklinks"`
}

// postDeckroll rolls one or more decks from a chat-style command string.
func (h *Handlers) postDeckroll(c *gin.Context) {
	var req deckrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "deckroll request", err)
		return
	}
	if req.Amount == 0 {
		req.Amount = 1
	}

	opts, err := command.ParseRollOptions(h.opts.Cards, h.opts.Command, req.Command)
	if err != nil {
		fail(c, "deckroll command", err)
		return
	}
	deckcodes, err := h.useCases.RollDecks(opts, req.Amount)
	if err != nil {
		fail(c, "deckroll", err)
		return
	}

	decklinks := make([]string, 0, len(deckcodes))
	for _, deckcode := range deckcodes {
		decklinks = append(decklinks, h.opts.DecklinkPrefix+deckcode)
	}
	c.JSON(http.StatusOK, deckrollResponse{Deckcodes: deckcodes, Decklinks: decklinks})
}
