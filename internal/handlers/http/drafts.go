package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"deckroll/internal/utils/command"
)

func (h *Handlers) registerDraftEndpoints(router *gin.Engine) {
	router.POST("/api/drafts", h.startDraft)
	router.GET("/api/drafts/:id", h.getDraft)
	router.POST("/api/drafts/:id/selections", h.applySelection)
	router.DELETE("/api/drafts/:id", h.abandonDraft)
}

type draftStartRequest struct {
	UserID  string `json:"userId"`
	Command string `json:"command"`
}

type selectionRequest struct {
	UserID string `json:"userId"`
	Option int    `json:"option"`
}

func (h *Handlers) startDraft(c *gin.Context) {
	var req draftStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "draft start request", err)
		return
	}
	opts, err := command.ParseDraftOptions(h.opts.Cards, h.opts.Command, req.Command)
	if err != nil {
		fail(c, "draft command", err)
		return
	}
	view, err := h.useCases.StartDraft(req.UserID, opts)
	if err != nil {
		fail(c, "draft start", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handlers) getDraft(c *gin.Context) {
	view, err := h.useCases.RenderDraft(c.Param("id"))
	if err != nil {
		fail(c, "draft lookup", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handlers) applySelection(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "draft selection request", err)
		return
	}
	view, _, err := h.useCases.ApplySelection(c.Param("id"), req.UserID, req.Option)
	if err != nil {
		fail(c, "draft selection", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handlers) abandonDraft(c *gin.Context) {
	view, err := h.useCases.AbandonDraft(c.Param("id"), c.Query("userId"))
	if err != nil {
		fail(c, "draft cancel", err)
		return
	}
	c.JSON(http.StatusOK, view)
}
