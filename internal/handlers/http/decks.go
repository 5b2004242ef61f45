package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"deckroll/internal/models"
)

func (h *Handlers) registerDeckEndpoints(router *gin.Engine) {
	router.POST("/api/decks/decode", h.decodeDeck)
	// deck codes are standard base64 and may contain slashes, so the qr
	// endpoint takes the code as a query parameter
	router.GET("/api/decks/qr", h.deckQR)
}

type decodeRequest struct {
	Deckcode string `json:"deckcode"`
}

type decodeResponse struct {
	Counts map[int]int `json:"counts"`
}

func (h *Handlers) decodeDeck(c *gin.Context) {
	var req decodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "deck decode request", err)
		return
	}
	counts, err := models.DecodeDeckCode(req.Deckcode)
	if err != nil {
		fail(c, "deck decode", err)
		return
	}
	c.JSON(http.StatusOK, decodeResponse{Counts: counts})
}

// deckQR renders the public deck link as a PNG QR code. The code is
// decoded first so malformed codes never become scannable garbage.
func (h *Handlers) deckQR(c *gin.Context) {
	deckcode := c.Query("deckcode")
	if _, err := models.DecodeDeckCode(deckcode); err != nil {
		fail(c, "deck qr", err)
		return
	}
	png, err := qrcode.Encode(h.opts.DecklinkPrefix+deckcode, qrcode.Medium, 256)
	if err != nil {
		fail(c, "deck qr", err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
