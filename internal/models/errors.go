package models

import "errors"

// Failure taxonomy. Callers match with errors.Is; call sites wrap these
// with fmt.Errorf("...: %w", err) to name the violated rule.
var (
	// ErrInvalidDeckMutation: a deck legality invariant was violated. The
	// deck is left unchanged.
	ErrInvalidDeckMutation = errors.New("invalid deck mutation")

	// ErrUnknownCard: the catalog has no card with the requested id.
	ErrUnknownCard = errors.New("unknown card")

	// ErrCatalogUnavailable: neither the network source nor the local
	// fallback file could supply the card list.
	ErrCatalogUnavailable = errors.New("card catalog unavailable")

	// ErrGenerationExhausted: the roll retry bound was reached without
	// producing a deck that passes every configured check.
	ErrGenerationExhausted = errors.New("deck generation exhausted")

	// ErrInvalidConfiguration: an options record violates a documented
	// bound. Raised before any deck, roll or draft is constructed.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrSessionConflict: a second session for the same user, an event from
	// a non-owning user, or an option index outside the current choices.
	ErrSessionConflict = errors.New("session conflict")
)
