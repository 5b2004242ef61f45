package models

import "encoding/json"

// Gateway envelopes. Requests arrive on Redis work queues; responses are
// published to the requester's personal reply channel.

// ExternalRequest is the outer envelope of a draft-queue message.
type ExternalRequest struct {
	Type   string          `json:"type"`
	UserID string          `json:"userId"`
	Data   json.RawMessage `json:"data"`
}

// ExternalResponse is the outer envelope published back to the client.
type ExternalResponse struct {
	Type   string          `json:"type"`
	UserID string          `json:"userId"`
	Data   json.RawMessage `json:"data"`
}

// RollRequest asks for one or more rolled deck codes.
type RollRequest struct {
	UserID             string `json:"userId"`
	ClientReplyChannel string `json:"clientReplyChannel"`
	Command            string `json:"command"`
	Amount             int    `json:"amount"`
}

type RollResponse struct {
	Deckcodes []string `json:"deckcodes"`
	Decklinks []string `json:"decklinks"`
}

// DraftStartRequest opens a draft session for a user.
type DraftStartRequest struct {
	UserID             string `json:"userId"`
	ClientReplyChannel string `json:"clientReplyChannel"`
	Command            string `json:"command"`
}

// PickRequest applies one option selection to an open session.
type PickRequest struct {
	UserID             string `json:"userId"`
	ClientReplyChannel string `json:"clientReplyChannel"`
	SessionID          string `json:"sessionId"`
	Option             int    `json:"option"`
}

// CancelRequest abandons an open session.
type CancelRequest struct {
	UserID             string `json:"userId"`
	ClientReplyChannel string `json:"clientReplyChannel"`
	SessionID          string `json:"sessionId"`
}

type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
