// Package command parses the chat command grammar of the roll and draft
// bots into validated option records. Unrecognized text is ignored;
// recognized values outside their documented bounds are configuration
// errors, never clamped.
package command

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"deckroll/internal/models"
)

// CardIndex is the slice of the catalog the parser needs to materialize
// weight presets.
type CardIndex interface {
	CollectibleCards() []models.Card
	CollectibleCardsByFaction(faction models.Faction) []models.Card
}

// Config carries the injected data-only settings: the legacy removal sets
// and the ban list toggled by the "ban-list" keyword.
type Config struct {
	Removal models.RemovalSets
	Banned  map[int]bool
}

var (
	deckSizeRE      = regexp.MustCompile(`\bcards=(\d+)`)
	countChancesRE  = regexp.MustCompile(`count-chances=(\d+)/(\d+)/(\d+)`)
	twoSlotRE       = regexp.MustCompile(`count-chances-two-remaining-deck-slots=(\d+)/(\d+)`)
	minDropsRE      = regexp.MustCompile(`min-1-and-2-drops=(\d+)`)
	maxDropsRE      = regexp.MustCompile(`max-1-and-2-drops=(\d+)`)
	minHardRE       = regexp.MustCompile(`min-hard-removal=(\d+)`)
	minSoftRE       = regexp.MustCompile(`min-soft-removal=(\d+)`)
	minTotalRE      = regexp.MustCompile(`min-total-removal=(\d+)`)
	factionOffersRE = regexp.MustCompile(`faction-offers=(\d+)`)
	cardOffersRE    = regexp.MustCompile(`card-offers-per-pick=(\d+)`)
	cardsToChooseRE = regexp.MustCompile(`cards-to-choose-per-pick=(\d+)`)
	bucketSizeRE    = regexp.MustCompile(`card-bucket-size=(\d+)`)
)

// ParseRollOptions builds a RollOptions record from free-form command
// text, e.g. "magmar=0 epic=10 half-faction-half-neutral count-chances=33/33/34".
func ParseRollOptions(cards CardIndex, cfg Config, text string) (models.RollOptions, error) {
	text = strings.ToLower(text)
	opts := models.RollOptions{
		DeckSize:             models.DefaultDeckSize,
		FactionWeights:       defaultFactionWeights(),
		CountChances:         map[int]float64{1: 20, 2: 30, 3: 50},
		CountChancesTwoSlots: map[int]float64{1: 33, 2: 67},
		Max1And2Drops:        models.NotConfigured,
		Legacy:               strings.Contains(text, "legacy"),
		Removal:              cfg.Removal,
	}

	if value, ok, err := intOption(deckSizeRE, text, 1, models.MaxDeckSize, "cards"); err != nil {
		return opts, err
	} else if ok {
		opts.DeckSize = value
	}

	for _, faction := range models.MainFactions {
		re := regexp.MustCompile(strings.ToLower(string(faction)) + `=(\d+)`)
		if value, ok, err := intOption(re, text, 0, models.MaxFactionWeight, string(faction)+" weight"); err != nil {
			return opts, err
		} else if ok {
			opts.FactionWeights[faction] = float64(value)
		}
	}

	opts.CardWeights = cardWeightPreset(cards, text)
	if err := applyRarityFactors(cards, text, opts.CardWeights); err != nil {
		return opts, err
	}
	if strings.Contains(text, "ban-list") {
		for cardID := range cfg.Banned {
			opts.CardWeights[cardID] = 0
		}
	}

	if chances, err := distribution(countChancesRE, text, []int{1, 2, 3}, "count-chances"); err != nil {
		return opts, err
	} else if chances != nil {
		opts.CountChances = chances
	}
	if chances, err := distribution(twoSlotRE, text, []int{1, 2}, "count-chances-two-remaining-deck-slots"); err != nil {
		return opts, err
	} else if chances != nil {
		opts.CountChancesTwoSlots = chances
	}

	if value, ok, err := intOption(minDropsRE, text, 0, models.MaxDeckSize, "min-1-and-2-drops"); err != nil {
		return opts, err
	} else if ok {
		opts.Min1And2Drops = value
	}
	if value, ok, err := intOption(maxDropsRE, text, 0, models.MaxDeckSize, "max-1-and-2-drops"); err != nil {
		return opts, err
	} else if ok {
		opts.Max1And2Drops = value
	}

	if opts.Legacy {
		for _, bound := range []struct {
			re     *regexp.Regexp
			target *int
			name   string
		}{
			{minHardRE, &opts.MinHardRemoval, "min-hard-removal"},
			{minSoftRE, &opts.MinSoftRemoval, "min-soft-removal"},
			{minTotalRE, &opts.MinTotalRemoval, "min-total-removal"},
		} {
			if value, ok, err := intOption(bound.re, text, 0, models.MaxDeckSize, bound.name); err != nil {
				return opts, err
			} else if ok {
				*bound.target = value
			}
		}
	}

	return opts, opts.Validate()
}

// ParseDraftOptions reuses the roll grammar for sizes and weights and adds
// the draft-only offer settings.
func ParseDraftOptions(cards CardIndex, cfg Config, text string) (models.DraftOptions, error) {
	rollOpts, err := ParseRollOptions(cards, cfg, text)
	if err != nil {
		return models.DraftOptions{}, err
	}
	text = strings.ToLower(text)
	opts := models.DraftOptions{
		DeckSize:             rollOpts.DeckSize,
		FactionWeights:       rollOpts.FactionWeights,
		CardWeights:          rollOpts.CardWeights,
		FactionOffers:        3,
		CardOffersPerPick:    3,
		CardsToChoosePerPick: 1,
		BucketSize:           1,
	}

	if value, ok, err := intOption(factionOffersRE, text, 1, 6, "faction-offers"); err != nil {
		return opts, err
	} else if ok {
		opts.FactionOffers = value
	}
	if value, ok, err := intOption(cardOffersRE, text, 2, 10, "card-offers-per-pick"); err != nil {
		return opts, err
	} else if ok {
		opts.CardOffersPerPick = value
	}
	if value, ok, err := intOption(cardsToChooseRE, text, 1, 9, "cards-to-choose-per-pick"); err != nil {
		return opts, err
	} else if ok {
		opts.CardsToChoosePerPick = value
	}
	if value, ok, err := intOption(bucketSizeRE, text, 1, 5, "card-bucket-size"); err != nil {
		return opts, err
	} else if ok {
		opts.BucketSize = value
	}

	return opts, opts.Validate()
}

func defaultFactionWeights() map[models.Faction]float64 {
	weights := make(map[models.Faction]float64, len(models.MainFactions))
	for _, faction := range models.MainFactions {
		weights[faction] = 1
	}
	return weights
}

// cardWeightPreset picks one of the three card-weight presets: uniform,
// half-faction-half-neutral (faction cards upweighted so the rolled
// faction and Neutral are equally likely overall), or only-faction.
func cardWeightPreset(cards CardIndex, text string) map[int]float64 {
	weights := make(map[int]float64)
	switch {
	case strings.Contains(text, "half-faction-half-neutral"):
		neutralCount := len(cards.CollectibleCardsByFaction(models.Neutral))
		for _, card := range cards.CollectibleCards() {
			factionCount := len(cards.CollectibleCardsByFaction(card.Faction))
			if factionCount == 0 {
				continue
			}
			weights[card.ID] = float64(neutralCount) / float64(factionCount)
		}
	case strings.Contains(text, "only-faction"):
		for _, card := range cards.CollectibleCards() {
			if card.Faction == models.Neutral {
				weights[card.ID] = 0
			} else {
				weights[card.ID] = 1
			}
		}
	default:
		for _, card := range cards.CollectibleCards() {
			weights[card.ID] = 1
		}
	}
	return weights
}

func applyRarityFactors(cards CardIndex, text string, weights map[int]float64) error {
	for _, rarity := range models.StandardRarities {
		re := regexp.MustCompile(strings.ToLower(string(rarity)) + `=(\d+)`)
		factor, ok, err := intOption(re, text, 0, models.MaxRarityWeightFactor, string(rarity)+" weight factor")
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		for _, card := range cards.CollectibleCards() {
			if card.Rarity == rarity {
				weights[card.ID] *= float64(factor)
			}
		}
	}
	return nil
}

func intOption(re *regexp.Regexp, text string, min, max int, name string) (int, bool, error) {
	match := re.FindStringSubmatch(text)
	if match == nil {
		return 0, false, nil
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false, fmt.Errorf("%s value %q is not a number: %w", name, match[1], models.ErrInvalidConfiguration)
	}
	if value < min || value > max {
		return 0, false, fmt.Errorf("%s value %d must be between %d and %d: %w", name, value, min, max, models.ErrInvalidConfiguration)
	}
	return value, true, nil
}

// distribution parses a slash-separated percentage list; the parts must
// sum to exactly 100.
func distribution(re *regexp.Regexp, text string, counts []int, name string) (map[int]float64, error) {
	match := re.FindStringSubmatch(text)
	if match == nil {
		return nil, nil
	}
	chances := make(map[int]float64, len(counts))
	sum := 0
	for i, count := range counts {
		value, err := strconv.Atoi(match[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s value %q is not a number: %w", name, match[i+1], models.ErrInvalidConfiguration)
		}
		chances[count] = float64(value)
		sum += value
	}
	if sum != 100 {
		return nil, fmt.Errorf("%s must sum up to 100, got %d: %w", name, sum, models.ErrInvalidConfiguration)
	}
	return chances, nil
}
