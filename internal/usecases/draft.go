package usecases

import (
	"fmt"
	"math/rand"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"deckroll/internal/models"
	"deckroll/internal/repositories"
)

// bucketRollRetries bounds the re-rolls used to avoid offering the same
// card bucket twice in one turn.
const bucketRollRetries = 10

type draftMsgKind int

const (
	msgSelect draftMsgKind = iota
	msgCancel
	msgView
)

type draftMsg struct {
	kind   draftMsgKind
	userID string
	option int
	reply  chan draftReply
}

type draftReply struct {
	view      models.DraftView
	completed bool
	err       error
}

// Draft is one interactive session. All state below is touched only by the
// session goroutine, which consumes the inbox one message at a time, so
// turns are strictly sequential and need no lock.
type Draft struct {
	id     string
	userID string
	repos  *repositories.Repositories
	rng    *rand.Rand

	deck           *models.Deck
	status         models.DraftStatus
	factionWeights map[models.Faction]float64
	cardWeights    map[int]float64

	// offer sizes shrink for the remainder of the session when slots or
	// draftable cards run short
	factionOffers        int
	cardOffersPerPick    int
	cardsToChoosePerPick int
	bucketSize           int

	choices    []models.Choice
	pending    []int
	statusText string

	inbox chan draftMsg
	done  chan struct{}
}

// StartDraft opens a session for the user, rolls the first choice set and
// registers it. A user can hold at most one live session.
func (u *UseCases) StartDraft(userID string, opts models.DraftOptions) (models.DraftView, error) {
	if err := opts.Validate(); err != nil {
		return models.DraftView{}, err
	}

	u.draftsMU.Lock()
	defer u.draftsMU.Unlock()
	if sessionID, ok := u.draftsByUser[userID]; ok {
		return models.DraftView{}, fmt.Errorf("user %s already drafts in session %s: %w", userID, sessionID, models.ErrSessionConflict)
	}

	d := &Draft{
		id:                   uuid.NewString(),
		userID:               userID,
		repos:                u.repos,
		rng:                  rand.New(rand.NewSource(time.Now().UnixNano())),
		deck:                 models.NewDeck(u.repos.Catalog, opts.DeckSize),
		status:               models.DraftInit,
		factionWeights:       copyWeights(opts.FactionWeights),
		cardWeights:          copyWeights(opts.CardWeights),
		factionOffers:        opts.FactionOffers,
		cardOffersPerPick:    opts.CardOffersPerPick,
		cardsToChoosePerPick: opts.CardsToChoosePerPick,
		bucketSize:           opts.BucketSize,
		inbox:                make(chan draftMsg),
		done:                 make(chan struct{}),
	}
	if err := d.start(); err != nil {
		return models.DraftView{}, err
	}

	u.drafts[d.id] = d
	u.draftsByUser[userID] = d.id
	go d.run()

	return d.view(), nil
}

// ApplySelection forwards one option selection to the session. It reports
// whether the draft is still continuing or just completed.
func (u *UseCases) ApplySelection(sessionID, userID string, option int) (models.DraftView, bool, error) {
	reply, err := u.post(sessionID, draftMsg{kind: msgSelect, userID: userID, option: option})
	if err != nil {
		return models.DraftView{}, false, err
	}
	if reply.completed {
		u.unregister(sessionID)
	}
	return reply.view, reply.completed, reply.err
}

// AbandonDraft cancels the session from any non-terminal state.
func (u *UseCases) AbandonDraft(sessionID, userID string) (models.DraftView, error) {
	reply, err := u.post(sessionID, draftMsg{kind: msgCancel, userID: userID})
	if err != nil {
		return models.DraftView{}, err
	}
	if reply.err == nil {
		u.unregister(sessionID)
	}
	return reply.view, reply.err
}

// AbandonDraftByUser cancels the user's live session, if any.
func (u *UseCases) AbandonDraftByUser(userID string) (models.DraftView, error) {
	u.draftsMU.Lock()
	sessionID, ok := u.draftsByUser[userID]
	u.draftsMU.Unlock()
	if !ok {
		return models.DraftView{}, fmt.Errorf("user %s has no open draft: %w", userID, models.ErrSessionConflict)
	}
	return u.AbandonDraft(sessionID, userID)
}

// RenderDraft returns the display snapshot for the gateway.
func (u *UseCases) RenderDraft(sessionID string) (models.DraftView, error) {
	reply, err := u.post(sessionID, draftMsg{kind: msgView})
	if err != nil {
		return models.DraftView{}, err
	}
	return reply.view, reply.err
}

func (u *UseCases) post(sessionID string, msg draftMsg) (draftReply, error) {
	u.draftsMU.Lock()
	d, ok := u.drafts[sessionID]
	u.draftsMU.Unlock()
	if !ok {
		return draftReply{}, fmt.Errorf("no open draft session %s: %w", sessionID, models.ErrSessionConflict)
	}
	msg.reply = make(chan draftReply, 1)
	select {
	case d.inbox <- msg:
		return <-msg.reply, nil
	case <-d.done:
		return draftReply{}, fmt.Errorf("draft session %s has ended: %w", sessionID, models.ErrSessionConflict)
	}
}

// unregister removes the session exactly once; later lookups fail with a
// session conflict instead of racing on a finished session's id.
func (u *UseCases) unregister(sessionID string) {
	u.draftsMU.Lock()
	defer u.draftsMU.Unlock()
	if d, ok := u.drafts[sessionID]; ok {
		delete(u.draftsByUser, d.userID)
		delete(u.drafts, sessionID)
	}
}

// run consumes selection events one at a time and exits on the message
// that drove the session into a terminal state.
func (d *Draft) run() {
	defer close(d.done)
	for msg := range d.inbox {
		var reply draftReply
		switch msg.kind {
		case msgView:
			reply = draftReply{view: d.view()}
		case msgCancel:
			reply.err = d.abandon(msg.userID)
			reply.view = d.view()
		case msgSelect:
			reply.completed, reply.err = d.applySelection(msg.userID, msg.option)
			reply.view = d.view()
		}
		msg.reply <- reply
		if d.status.Terminal() {
			return
		}
	}
}

func (d *Draft) start() error {
	d.status = models.DraftPickingFaction
	return d.rollFactionChoices()
}

func (d *Draft) abandon(userID string) error {
	if userID != d.userID {
		return fmt.Errorf("draft belongs to another user: %w", models.ErrSessionConflict)
	}
	d.status = models.DraftAbandoned
	d.choices = nil
	d.pending = nil
	d.statusText = "Draft abandoned"
	return nil
}

// applySelection is the state machine transition for one selection event.
// Invalid events are rejected without mutating any state.
func (d *Draft) applySelection(userID string, option int) (bool, error) {
	if userID != d.userID {
		return false, fmt.Errorf("draft belongs to another user: %w", models.ErrSessionConflict)
	}
	if option < 0 || option >= len(d.choices) {
		return false, fmt.Errorf("option %d outside current choices: %w", option, models.ErrSessionConflict)
	}

	switch d.status {
	case models.DraftPickingFaction:
		return false, d.pickGeneral(option)
	case models.DraftPickingCards:
		return d.pickCards(option)
	default:
		return false, fmt.Errorf("draft is %s: %w", d.status, models.ErrSessionConflict)
	}
}

// pickGeneral applies the faction pick: the chosen general fixes the deck
// faction and every off-faction, non-Neutral card weight drops to zero.
func (d *Draft) pickGeneral(option int) error {
	generalID := d.choices[option].CardIDs[0]
	if err := d.deck.AddCardAndCount(generalID, 1); err != nil {
		return err
	}
	for cardID := range d.cardWeights {
		card, err := d.repos.Catalog.CardByID(cardID)
		if err != nil {
			return err
		}
		if card.Faction != d.deck.Faction() && card.Faction != models.Neutral {
			d.cardWeights[cardID] = 0
		}
	}
	d.status = models.DraftPickingCards
	return d.rollCardChoices()
}

// pickCards collects selections until the turn's quota is reached, then
// applies all of them and rolls the next choice set or completes.
func (d *Draft) pickCards(option int) (bool, error) {
	if slices.Contains(d.pending, option) {
		return false, fmt.Errorf("option %d already selected this pick: %w", option, models.ErrSessionConflict)
	}
	d.pending = append(d.pending, option)
	if len(d.pending) < d.cardsToChoosePerPick {
		return false, nil
	}

	for _, picked := range d.pending {
		for _, cardID := range d.choices[picked].CardIDs {
			if err := d.deck.AddCardAndCount(cardID, 1); err != nil {
				return false, err
			}
			// a card at three copies is never offered again
			if d.deck.Count(cardID) == 3 {
				delete(d.cardWeights, cardID)
			}
		}
	}
	d.pending = nil

	if d.deck.RemainingSlots() == 0 {
		d.status = models.DraftCompleted
		d.choices = nil
		d.statusText = "Draft completed"
		return true, nil
	}
	return false, d.rollCardChoices()
}

// rollFactionChoices offers one uniformly rolled general per offered
// faction, factions drawn without replacement from the weight map.
func (d *Draft) rollFactionChoices() error {
	available := positiveWeightCount(d.factionWeights)
	if available == 0 {
		return fmt.Errorf("no faction with positive weight: %w", models.ErrInvalidConfiguration)
	}
	offers := d.factionOffers
	if available < offers {
		offers = available
	}
	factions, err := sampleWithoutReplacement(d.rng, d.factionWeights, offers)
	if err != nil {
		return fmt.Errorf("roll faction offers: %w", err)
	}
	choices := make([]models.Choice, 0, len(factions))
	for _, faction := range factions {
		generals := d.repos.Catalog.GeneralsByFaction(faction)
		if len(generals) == 0 {
			return fmt.Errorf("faction %s has no eligible generals", faction)
		}
		general := generals[d.rng.Intn(len(generals))]
		choices = append(choices, models.Choice{CardIDs: []int{general.ID}, Names: []string{general.Name}})
	}
	d.choices = choices
	d.statusText = "Pick your general"
	return nil
}

// rollCardChoices rolls the next turn's options, shrinking the offer,
// choose and bucket sizes for the rest of the session when the remaining
// slots or the remaining draftable cards run short.
func (d *Draft) rollCardChoices() error {
	draftable := positiveWeightCount(d.cardWeights)
	if d.deck.RemainingSlots() < d.cardsToChoosePerPick {
		d.cardsToChoosePerPick = d.deck.RemainingSlots()
	}
	if draftable < d.cardOffersPerPick {
		d.cardOffersPerPick = draftable
	}
	if d.deck.RemainingSlots() < d.bucketSize {
		d.bucketSize = d.deck.RemainingSlots()
	}
	if draftable < d.bucketSize {
		d.bucketSize = draftable
		d.cardOffersPerPick = 1
	}
	if d.cardsToChoosePerPick > d.cardOffersPerPick {
		d.cardsToChoosePerPick = d.cardOffersPerPick
	}
	if d.cardOffersPerPick < 1 || d.bucketSize < 1 {
		return fmt.Errorf("no card left to draft: %w", errNoCandidates)
	}

	if d.bucketSize == 1 {
		cardIDs, err := sampleWithoutReplacement(d.rng, d.cardWeights, d.cardOffersPerPick)
		if err != nil {
			return fmt.Errorf("roll card offers: %w", err)
		}
		choices := make([]models.Choice, 0, len(cardIDs))
		for _, cardID := range cardIDs {
			card, err := d.repos.Catalog.CardByID(cardID)
			if err != nil {
				return err
			}
			choices = append(choices, models.Choice{CardIDs: []int{cardID}, Names: []string{card.Name}})
		}
		d.choices = choices
		d.statusText = fmt.Sprintf("Pick %d card(s)", d.cardsToChoosePerPick)
		return nil
	}
	return d.rollBucketChoices()
}

// rollBucketChoices groups offers into buckets of bucketSize distinct
// cards, re-rolling up to bucketRollRetries times to avoid offering the
// same group twice, then accepting the duplicate.
func (d *Draft) rollBucketChoices() error {
	choices := make([]models.Choice, 0, d.cardOffersPerPick)
	seen := make(map[string]bool)
	for len(choices) < d.cardOffersPerPick {
		var bucket models.Choice
		for retry := 0; retry < bucketRollRetries; retry++ {
			cardIDs, err := sampleWithoutReplacement(d.rng, d.cardWeights, d.bucketSize)
			if err != nil {
				return fmt.Errorf("roll card bucket: %w", err)
			}
			sort.Ints(cardIDs)
			bucket = models.Choice{CardIDs: cardIDs}
			if !seen[fmt.Sprint(cardIDs)] {
				break
			}
		}
		seen[fmt.Sprint(bucket.CardIDs)] = true
		for _, cardID := range bucket.CardIDs {
			card, err := d.repos.Catalog.CardByID(cardID)
			if err != nil {
				return err
			}
			bucket.Names = append(bucket.Names, card.Name)
		}
		choices = append(choices, bucket)
	}
	d.choices = choices
	d.statusText = fmt.Sprintf("Pick %d card bucket(s)", d.cardsToChoosePerPick)
	return nil
}

func (d *Draft) view() models.DraftView {
	view := models.DraftView{
		SessionID:  d.id,
		UserID:     d.userID,
		Status:     d.status,
		StatusText: d.statusText,
		Faction:    d.deck.Faction(),
		Drafted:    d.deck.TotalCards(),
		DeckSize:   d.deck.MaxCards(),
		Choices:    slices.Clone(d.choices),
	}
	if d.status == models.DraftCompleted {
		view.Deckcode = d.deck.CodeSnapshot()
	}
	return view
}
