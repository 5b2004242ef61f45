package models

import "fmt"

const (
	// MaxDeckSize bounds the cards=N modification.
	MaxDeckSize = 100
	// MaxFactionWeight bounds per-faction weight overrides.
	MaxFactionWeight = 100000
	// MaxRarityWeightFactor bounds per-rarity weight multipliers.
	MaxRarityWeightFactor = 10000

	// NotConfigured marks an optional bound that was not given.
	NotConfigured = -1
)

// RemovalSets are injected configuration naming the card ids counted as
// removal by the legacy catalog checks. Membership is data, not logic.
type RemovalSets struct {
	Hard map[int]bool
	Soft map[int]bool
}

// RollOptions configures one deck roll. Weight maps are owned by a single
// roll; callers pass an independent copy per invocation.
type RollOptions struct {
	DeckSize       int
	FactionWeights map[Faction]float64
	CardWeights    map[int]float64

	// CountChances holds the relative chances for rolling a card as a
	// 1/2/3-of; CountChancesTwoSlots the 1/2-of chances used when exactly
	// two slots remain. Weights are relative, not probabilities.
	CountChances         map[int]float64
	CountChancesTwoSlots map[int]float64

	Min1And2Drops int
	Max1And2Drops int

	Legacy          bool
	Removal         RemovalSets
	MinHardRemoval  int
	MinSoftRemoval  int
	MinTotalRemoval int
}

// Validate checks the structural bounds. Out-of-range values are errors,
// never clamped.
func (o RollOptions) Validate() error {
	if o.DeckSize < 1 || o.DeckSize > MaxDeckSize {
		return fmt.Errorf("deck size %d must be between 1 and %d: %w", o.DeckSize, MaxDeckSize, ErrInvalidConfiguration)
	}
	if len(o.FactionWeights) == 0 {
		return fmt.Errorf("at least one faction must be allowed: %w", ErrInvalidConfiguration)
	}
	for faction, weight := range o.FactionWeights {
		if weight < 0 || weight > MaxFactionWeight {
			return fmt.Errorf("weight %v for faction %s out of range: %w", weight, faction, ErrInvalidConfiguration)
		}
	}
	for id, weight := range o.CardWeights {
		if weight < 0 {
			return fmt.Errorf("negative weight for card %d: %w", id, ErrInvalidConfiguration)
		}
	}
	for _, count := range []int{1, 2, 3} {
		if _, ok := o.CountChances[count]; !ok {
			return fmt.Errorf("count chances must include %d-ofs: %w", count, ErrInvalidConfiguration)
		}
	}
	for _, count := range []int{1, 2} {
		if _, ok := o.CountChancesTwoSlots[count]; !ok {
			return fmt.Errorf("two-slot count chances must include %d-ofs: %w", count, ErrInvalidConfiguration)
		}
	}
	if o.Min1And2Drops > o.DeckSize {
		return fmt.Errorf("min 1-and-2-drops %d exceeds deck size %d: %w", o.Min1And2Drops, o.DeckSize, ErrInvalidConfiguration)
	}
	if o.Max1And2Drops != NotConfigured && o.Max1And2Drops < o.Min1And2Drops {
		return fmt.Errorf("max 1-and-2-drops %d below min %d: %w", o.Max1And2Drops, o.Min1And2Drops, ErrInvalidConfiguration)
	}
	if !o.Legacy && (o.MinHardRemoval > 0 || o.MinSoftRemoval > 0 || o.MinTotalRemoval > 0) {
		return fmt.Errorf("removal minimums require the legacy catalog: %w", ErrInvalidConfiguration)
	}
	return nil
}

// DraftOptions configures one interactive draft session.
type DraftOptions struct {
	DeckSize       int
	FactionWeights map[Faction]float64
	CardWeights    map[int]float64

	FactionOffers        int
	CardOffersPerPick    int
	CardsToChoosePerPick int
	BucketSize           int
}

func (o DraftOptions) Validate() error {
	if o.DeckSize < 1 || o.DeckSize > MaxDeckSize {
		return fmt.Errorf("deck size %d must be between 1 and %d: %w", o.DeckSize, MaxDeckSize, ErrInvalidConfiguration)
	}
	if len(o.FactionWeights) == 0 {
		return fmt.Errorf("at least one faction must be allowed: %w", ErrInvalidConfiguration)
	}
	for faction, weight := range o.FactionWeights {
		if weight < 0 || weight > MaxFactionWeight {
			return fmt.Errorf("weight %v for faction %s out of range: %w", weight, faction, ErrInvalidConfiguration)
		}
	}
	for id, weight := range o.CardWeights {
		if weight < 0 {
			return fmt.Errorf("negative weight for card %d: %w", id, ErrInvalidConfiguration)
		}
	}
	if o.FactionOffers < 1 || o.FactionOffers > 6 {
		return fmt.Errorf("faction offers %d must be between 1 and 6: %w", o.FactionOffers, ErrInvalidConfiguration)
	}
	if o.CardOffersPerPick < 2 || o.CardOffersPerPick > 10 {
		return fmt.Errorf("card offers per pick %d must be between 2 and 10: %w", o.CardOffersPerPick, ErrInvalidConfiguration)
	}
	if o.CardsToChoosePerPick < 1 || o.CardsToChoosePerPick >= o.CardOffersPerPick {
		return fmt.Errorf("cards to choose per pick %d must be between 1 and offers-1: %w", o.CardsToChoosePerPick, ErrInvalidConfiguration)
	}
	if o.BucketSize < 1 || o.BucketSize > 5 {
		return fmt.Errorf("card bucket size %d must be between 1 and 5: %w", o.BucketSize, ErrInvalidConfiguration)
	}
	if o.BucketSize > 1 && o.CardsToChoosePerPick > 1 {
		return fmt.Errorf("bucket mode and multi-select are mutually exclusive: %w", ErrInvalidConfiguration)
	}
	return nil
}
