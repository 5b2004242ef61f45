package usecases

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"deckroll/internal/models"
)

// RollAttempts bounds the generate-then-validate retry loop.
const RollAttempts = 100

// RollDeck produces one legal, constraint-satisfying deck code, retrying
// up to RollAttempts times. The generator never shares its weight maps:
// callers hand over an independent copy per invocation.
func (u *UseCases) RollDeck(opts models.RollOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return u.rollValidated(rng, opts)
}

// RollDecks rolls amount independent decks with the same configuration.
func (u *UseCases) RollDecks(opts models.RollOptions, amount int) ([]string, error) {
	if amount < 1 || amount > 1000 {
		return nil, fmt.Errorf("amount of decks %d out of allowed range: %w", amount, models.ErrInvalidConfiguration)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	deckcodes := make([]string, 0, amount)
	for i := 0; i < amount; i++ {
		deckcode, err := u.rollValidated(rng, opts)
		if err != nil {
			return nil, err
		}
		deckcodes = append(deckcodes, deckcode)
	}
	return deckcodes, nil
}

func (u *UseCases) rollValidated(rng *rand.Rand, opts models.RollOptions) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= RollAttempts; attempt++ {
		deck, err := u.rollOnce(rng, opts)
		if err != nil {
			lastErr = err
			continue
		}
		return deck.CodeSnapshot(), nil
	}
	slog.Error("deck roll gave up", "attempts", RollAttempts, "lastError", lastErr)
	return "", fmt.Errorf("no valid deck after %d attempts (last failure: %v): %w", RollAttempts, lastErr, models.ErrGenerationExhausted)
}

// rollOnce is one attempt: faction, general, then card-by-card fill,
// followed by the post-hoc composition checks.
func (u *UseCases) rollOnce(rng *rand.Rand, opts models.RollOptions) (*models.Deck, error) {
	faction, err := weightedChoice(rng, opts.FactionWeights)
	if err != nil {
		return nil, fmt.Errorf("roll faction: %w", err)
	}

	generals := u.repos.Catalog.GeneralsByFaction(faction)
	if len(generals) == 0 {
		return nil, fmt.Errorf("faction %s has no eligible generals", faction)
	}
	general := generals[rng.Intn(len(generals))]

	deck := models.NewDeck(u.repos.Catalog, opts.DeckSize)
	if err := deck.AddCardAndCount(general.ID, 1); err != nil {
		return nil, err
	}

	// rollable set: faction plus Neutral collectibles, each with its
	// configured weight; picked cards are zeroed so no card is offered
	// twice within one roll
	rollable := make(map[int]float64)
	for _, card := range u.repos.Catalog.CollectibleCardsByFaction(faction) {
		rollable[card.ID] = opts.CardWeights[card.ID]
	}
	for _, card := range u.repos.Catalog.CollectibleCardsByFaction(models.Neutral) {
		rollable[card.ID] = opts.CardWeights[card.ID]
	}

	for deck.RemainingSlots() > 0 {
		cardID, err := weightedChoice(rng, rollable)
		if err != nil {
			return nil, fmt.Errorf("no card left to roll: %w", err)
		}
		count, err := rollCount(rng, deck.RemainingSlots(), opts)
		if err != nil {
			return nil, err
		}
		if err := deck.AddCardAndCount(cardID, count); err != nil {
			return nil, err
		}
		rollable[cardID] = 0
	}

	if err := check1And2Drops(deck, opts); err != nil {
		return nil, err
	}
	if err := checkRemoval(deck, opts); err != nil {
		return nil, err
	}
	return deck, nil
}

// rollCount picks how many copies the rolled card gets: forced single for
// the last slot, the 2-way distribution for two slots, otherwise 3-way.
func rollCount(rng *rand.Rand, remainingSlots int, opts models.RollOptions) (int, error) {
	switch {
	case remainingSlots == 1:
		return 1, nil
	case remainingSlots == 2:
		return weightedChoice(rng, opts.CountChancesTwoSlots)
	default:
		return weightedChoice(rng, opts.CountChances)
	}
}

// check1And2Drops enforces the optional bounds on minions costing 2 or
// less. Minions are walked in mana-then-name order, stopping past mana 2.
func check1And2Drops(deck *models.Deck, opts models.RollOptions) error {
	if opts.Min1And2Drops <= 0 && opts.Max1And2Drops == models.NotConfigured {
		return nil
	}
	groups, err := deck.GroupedByType()
	if err != nil {
		return err
	}
	drops := 0
	for _, minion := range groups[models.Minion] {
		if minion.Mana > 2 {
			break
		}
		drops += deck.Count(minion.ID)
	}
	if opts.Min1And2Drops > 0 && drops < opts.Min1And2Drops {
		return fmt.Errorf("rolled deck has %d one-and-two-drops, need at least %d", drops, opts.Min1And2Drops)
	}
	if opts.Max1And2Drops != models.NotConfigured && drops > opts.Max1And2Drops {
		return fmt.Errorf("rolled deck has %d one-and-two-drops, allowed at most %d", drops, opts.Max1And2Drops)
	}
	return nil
}

// checkRemoval enforces the legacy-catalog minimums against the injected
// removal sets.
func checkRemoval(deck *models.Deck, opts models.RollOptions) error {
	if !opts.Legacy {
		return nil
	}
	hard, soft, total := 0, 0, 0
	for cardID, count := range deck.Counts() {
		if opts.Removal.Hard[cardID] {
			hard += count
		}
		if opts.Removal.Soft[cardID] {
			soft += count
		}
		if opts.Removal.Hard[cardID] || opts.Removal.Soft[cardID] {
			total += count
		}
	}
	var failures []error
	if opts.MinHardRemoval > 0 && hard < opts.MinHardRemoval {
		failures = append(failures, fmt.Errorf("%d hard removal cards, need at least %d", hard, opts.MinHardRemoval))
	}
	if opts.MinSoftRemoval > 0 && soft < opts.MinSoftRemoval {
		failures = append(failures, fmt.Errorf("%d soft removal cards, need at least %d", soft, opts.MinSoftRemoval))
	}
	if opts.MinTotalRemoval > 0 && total < opts.MinTotalRemoval {
		failures = append(failures, fmt.Errorf("%d total removal cards, need at least %d", total, opts.MinTotalRemoval))
	}
	return errors.Join(failures...)
}
