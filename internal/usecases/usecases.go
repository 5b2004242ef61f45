package usecases

import (
	"sync"

	"deckroll/internal/repositories"
)

// UseCases wires the catalog repository to the roll and draft operations
// and owns the draft session registry. The catalog snapshot is read-only
// after load, so only the registry needs the mutex.
type UseCases struct {
	repos *repositories.Repositories

	draftsMU     sync.Mutex
	drafts       map[string]*Draft
	draftsByUser map[string]string
}

func New(repos *repositories.Repositories) *UseCases {
	return &UseCases{
		repos:        repos,
		drafts:       make(map[string]*Draft),
		draftsByUser: make(map[string]string),
	}
}
