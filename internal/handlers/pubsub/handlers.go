// Package pubsub exposes the roll and draft operations over Redis work
// queues. Requests are BLPop'ed off shared lists so exactly one instance
// picks up each job; replies are published to the requester's personal
// channel wrapped in the external envelope.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"deckroll/internal/models"
	"deckroll/internal/usecases"
	"deckroll/internal/utils/command"
)

// Shared request queues.
const (
	RollRequestChannel  string = "RollRequestChannel"
	DraftRequestChannel string = "DraftRequestChannel"
)

// Response envelope types.
const (
	deckRolled    string = "deckRolled"
	draftState    string = "draftState"
	errorResponse string = "error"
)

type PubSubHandlers struct {
	useCases       *usecases.UseCases
	rdb            *redis.Client
	ctx            context.Context
	cards          command.CardIndex
	cmd            command.Config
	decklinkPrefix string
}

func New(useCases *usecases.UseCases, rdb *redis.Client, ctx context.Context, cards command.CardIndex, cmd command.Config, decklinkPrefix string) *PubSubHandlers {
	return &PubSubHandlers{
		useCases:       useCases,
		rdb:            rdb,
		ctx:            ctx,
		cards:          cards,
		cmd:            cmd,
		decklinkPrefix: decklinkPrefix,
	}
}

// Listen starts one listener goroutine per request queue.
func (h *PubSubHandlers) Listen() {
	go h.subscribeQueueRoll()
	go h.subscribeQueueDraft()

	slog.Info("gateway listening",
		"roll_queue", RollRequestChannel,
		"draft_queue", DraftRequestChannel,
	)
}

func (h *PubSubHandlers) subscribeQueueRoll() {
	for {
		result, err := h.rdb.BLPop(h.ctx, 0, RollRequestChannel).Result()
		if err != nil {
			slog.Error("BLPop failed on roll queue", "error", err)
			time.Sleep(1 * time.Second)
			continue
		}
		if len(result) < 2 {
			continue
		}
		go h.processRoll(result[1])
	}
}

func (h *PubSubHandlers) subscribeQueueDraft() {
	for {
		result, err := h.rdb.BLPop(h.ctx, 0, DraftRequestChannel).Result()
		if err != nil {
			slog.Error("BLPop failed on draft queue", "error", err)
			time.Sleep(1 * time.Second)
			continue
		}
		if len(result) < 2 {
			continue
		}
		go h.processDraft(result[1])
	}
}

func (h *PubSubHandlers) processRoll(payload string) {
	var req models.RollRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		slog.Error("malformed roll request", "error", err, "payload", payload)
		return
	}
	slog.Info("processing roll job", "user", req.UserID)

	amount := req.Amount
	if amount == 0 {
		amount = 1
	}

	deckcodes, err := h.rollFromCommand(req.Command, amount)
	if err != nil {
		slog.Error("roll job failed", "user", req.UserID, "error", err)
		h.sendResponse(req.ClientReplyChannel, req.UserID, errorResponse, models.ErrorResponse{
			Type:    errorResponse,
			Message: err.Error(),
		})
		return
	}

	decklinks := make([]string, 0, len(deckcodes))
	for _, deckcode := range deckcodes {
		decklinks = append(decklinks, h.decklinkPrefix+deckcode)
	}
	h.sendResponse(req.ClientReplyChannel, req.UserID, deckRolled, models.RollResponse{
		Deckcodes: deckcodes,
		Decklinks: decklinks,
	})
}

func (h *PubSubHandlers) rollFromCommand(text string, amount int) ([]string, error) {
	opts, err := command.ParseRollOptions(h.cards, h.cmd, text)
	if err != nil {
		return nil, err
	}
	return h.useCases.RollDecks(opts, amount)
}

// processDraft decodes the outer envelope and dispatches on its type.
func (h *PubSubHandlers) processDraft(payload string) {
	var envelope models.ExternalRequest
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		slog.Error("malformed draft envelope", "error", err, "payload", payload)
		return
	}
	slog.Info("processing draft job", "type", envelope.Type, "user", envelope.UserID)

	var replyChannel string
	var view models.DraftView
	var processingError error

	switch envelope.Type {
	case "draftStart":
		var req models.DraftStartRequest
		if err := json.Unmarshal(envelope.Data, &req); err != nil {
			processingError = fmt.Errorf("malformed draft start request: %w", err)
			replyChannel = replyChannelOf(envelope.Data)
			break
		}
		replyChannel = req.ClientReplyChannel
		var opts models.DraftOptions
		opts, processingError = command.ParseDraftOptions(h.cards, h.cmd, req.Command)
		if processingError == nil {
			view, processingError = h.useCases.StartDraft(envelope.UserID, opts)
		}

	case "pick":
		var req models.PickRequest
		if err := json.Unmarshal(envelope.Data, &req); err != nil {
			processingError = fmt.Errorf("malformed pick request: %w", err)
			replyChannel = replyChannelOf(envelope.Data)
			break
		}
		replyChannel = req.ClientReplyChannel
		view, _, processingError = h.useCases.ApplySelection(req.SessionID, envelope.UserID, req.Option)

	case "cancel":
		var req models.CancelRequest
		if err := json.Unmarshal(envelope.Data, &req); err != nil {
			processingError = fmt.Errorf("malformed cancel request: %w", err)
			replyChannel = replyChannelOf(envelope.Data)
			break
		}
		replyChannel = req.ClientReplyChannel
		view, processingError = h.useCases.AbandonDraft(req.SessionID, envelope.UserID)

	default:
		processingError = fmt.Errorf("unknown draft request type %q", envelope.Type)
		replyChannel = replyChannelOf(envelope.Data)
	}

	if processingError != nil {
		slog.Error("draft job failed", "type", envelope.Type, "user", envelope.UserID, "error", processingError)
		if replyChannel == "" {
			slog.Warn("draft job failed with no known reply channel", "type", envelope.Type, "user", envelope.UserID)
			return
		}
		h.sendResponse(replyChannel, envelope.UserID, errorResponse, models.ErrorResponse{
			Type:    errorResponse,
			Message: processingError.Error(),
		})
		return
	}
	h.sendResponse(replyChannel, envelope.UserID, draftState, view)
}

// replyChannelOf salvages the reply channel from an otherwise undecodable
// request so the client still hears about the failure.
func replyChannelOf(data json.RawMessage) string {
	var base struct {
		ClientReplyChannel string `json:"clientReplyChannel"`
	}
	if json.Unmarshal(data, &base) == nil {
		return base.ClientReplyChannel
	}
	return ""
}

func (h *PubSubHandlers) sendResponse(replyChannel, userID, responseType string, data interface{}) {
	dataRaw, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to serialize response data", "type", responseType, "error", err)
		return
	}

	resp := models.ExternalResponse{
		Type:   responseType,
		UserID: userID,
		Data:   dataRaw,
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		slog.Error("failed to serialize response envelope", "type", responseType, "error", err)
		return
	}

	if err := h.rdb.Publish(h.ctx, replyChannel, payload).Err(); err != nil {
		slog.Error("failed to publish response", "channel", replyChannel, "error", err)
	}
}
