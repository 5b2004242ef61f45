package models

// DraftStatus is the closed set of states a draft session moves through.
// Completed and Abandoned are terminal.
type DraftStatus string

const (
	DraftInit           DraftStatus = "Init"
	DraftPickingFaction DraftStatus = "Picking Faction"
	DraftPickingCards   DraftStatus = "Picking Cards"
	DraftCompleted      DraftStatus = "Draft Completed"
	DraftAbandoned      DraftStatus = "Draft Abandoned"
)

func (s DraftStatus) Terminal() bool {
	return s == DraftCompleted || s == DraftAbandoned
}

// Choice is one selectable option of the current turn: a single card, a
// general, or a pre-grouped bucket of cards picked as a unit.
type Choice struct {
	CardIDs []int    `json:"cardIds"`
	Names   []string `json:"names"`
}

// DraftView is the render snapshot handed to the messaging gateway.
type DraftView struct {
	SessionID  string      `json:"sessionId"`
	UserID     string      `json:"userId"`
	Status     DraftStatus `json:"status"`
	StatusText string      `json:"statusText"`
	Faction    Faction     `json:"faction,omitempty"`
	Drafted    int         `json:"drafted"`
	DeckSize   int         `json:"deckSize"`
	Choices    []Choice    `json:"choices"`
	Deckcode   string      `json:"deckcode,omitempty"`
}
