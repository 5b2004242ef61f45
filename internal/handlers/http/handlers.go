package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"deckroll/internal/models"
	"deckroll/internal/usecases"
	"deckroll/internal/utils/command"
)

// Options carries everything the HTTP surface needs besides the use cases:
// the catalog slice the command parser reads, the injected parser config
// and the public deck link prefix.
type Options struct {
	Cards          command.CardIndex
	Command        command.Config
	DecklinkPrefix string
}

type Handlers struct {
	useCases *usecases.UseCases
	opts     Options
}

func New(useCases *usecases.UseCases, opts Options) *Handlers {
	return &Handlers{useCases: useCases, opts: opts}
}

// Router builds the gin engine with every endpoint registered.
func (h *Handlers) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", h.getHealth)
	h.registerDeckrollEndpoints(router)
	h.registerDeckEndpoints(router)
	h.registerDraftEndpoints(router)
	h.registerHelpEndpoints(router)

	return router
}

func (h *Handlers) Listen(port int) error {
	slog.Info("listening on", "port", port)
	return h.Router().Run(fmt.Sprintf(":%v", port))
}

// badRequest reports a malformed request body.
func badRequest(c *gin.Context, errType string, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Type: errType, Message: err.Error()})
}

// fail maps the error taxonomy onto HTTP statuses and writes the shared
// error envelope.
func fail(c *gin.Context, errType string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalidConfiguration),
		errors.Is(err, models.ErrInvalidDeckMutation),
		errors.Is(err, models.ErrUnknownCard):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrSessionConflict):
		status = http.StatusConflict
	case errors.Is(err, models.ErrGenerationExhausted):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, models.ErrorResponse{Type: errType, Message: err.Error()})
}
