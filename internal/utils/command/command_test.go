package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deckroll/internal/models"
	"deckroll/internal/repositories/catalog"
)

func testIndex() *catalog.Catalog {
	return catalog.FromCards([]models.Card{
		{ID: 101, Name: "Argeon", Faction: models.Lyonar, Rarity: models.Basic, Type: models.General},
		{ID: 110, Name: "Lion Adept", Faction: models.Lyonar, Rarity: models.Common, Type: models.Minion, Mana: 1},
		{ID: 111, Name: "Sun Seer", Faction: models.Lyonar, Rarity: models.Epic, Type: models.Minion, Mana: 2},
		{ID: 910, Name: "Ember Sprite", Faction: models.Neutral, Rarity: models.Common, Type: models.Minion, Mana: 1},
		{ID: 911, Name: "Cairn Watcher", Faction: models.Neutral, Rarity: models.Rare, Type: models.Minion, Mana: 3},
	}, nil)
}

func emptyConfig() Config {
	return Config{
		Removal: models.RemovalSets{Hard: map[int]bool{}, Soft: map[int]bool{}},
		Banned:  map[int]bool{},
	}
}

func TestParseRollOptionsDefaults(t *testing.T) {
	opts, err := ParseRollOptions(testIndex(), emptyConfig(), "")
	require.NoError(t, err)

	assert.Equal(t, models.DefaultDeckSize, opts.DeckSize)
	assert.False(t, opts.Legacy)
	for _, faction := range models.MainFactions {
		assert.Equal(t, 1.0, opts.FactionWeights[faction])
	}
	assert.Equal(t, map[int]float64{1: 20, 2: 30, 3: 50}, opts.CountChances)
	assert.Equal(t, map[int]float64{1: 33, 2: 67}, opts.CountChancesTwoSlots)
	assert.Equal(t, 0, opts.Min1And2Drops)
	assert.Equal(t, models.NotConfigured, opts.Max1And2Drops)
	// uniform preset covers every collectible
	assert.Equal(t, map[int]float64{110: 1, 111: 1, 910: 1, 911: 1}, opts.CardWeights)
}

func TestParseRollOptionsModifications(t *testing.T) {
	text := "cards=30 magmar=0 vanar=350 count-chances=10/20/70 count-chances-two-remaining-deck-slots=50/50 min-1-and-2-drops=4 max-1-and-2-drops=9"
	opts, err := ParseRollOptions(testIndex(), emptyConfig(), text)
	require.NoError(t, err)

	assert.Equal(t, 30, opts.DeckSize)
	assert.Equal(t, 0.0, opts.FactionWeights[models.Magmar])
	assert.Equal(t, 350.0, opts.FactionWeights[models.Vanar])
	assert.Equal(t, 1.0, opts.FactionWeights[models.Lyonar])
	assert.Equal(t, map[int]float64{1: 10, 2: 20, 3: 70}, opts.CountChances)
	assert.Equal(t, map[int]float64{1: 50, 2: 50}, opts.CountChancesTwoSlots)
	assert.Equal(t, 4, opts.Min1And2Drops)
	assert.Equal(t, 9, opts.Max1And2Drops)
}

func TestParseRollOptionsIgnoresUnknownText(t *testing.T) {
	opts, err := ParseRollOptions(testIndex(), emptyConfig(), "please roll me something spicy")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultDeckSize, opts.DeckSize)
}

func TestParseRollOptionsBounds(t *testing.T) {
	tests := []string{
		"cards=0",
		"cards=101",
		"lyonar=100001",
		"epic=10001",
		"count-chances=50/50/50",
		"count-chances=10/10/10",
		"count-chances-two-remaining-deck-slots=60/50",
		"legacy min-hard-removal=101",
	}
	for _, text := range tests {
		_, err := ParseRollOptions(testIndex(), emptyConfig(), text)
		assert.ErrorIs(t, err, models.ErrInvalidConfiguration, "command %q", text)
	}
}

func TestParseRollOptionsOnlyFactionPreset(t *testing.T) {
	opts, err := ParseRollOptions(testIndex(), emptyConfig(), "only-faction")
	require.NoError(t, err)
	assert.Equal(t, 0.0, opts.CardWeights[910])
	assert.Equal(t, 0.0, opts.CardWeights[911])
	assert.Equal(t, 1.0, opts.CardWeights[110])
}

func TestParseRollOptionsHalfFactionHalfNeutralPreset(t *testing.T) {
	opts, err := ParseRollOptions(testIndex(), emptyConfig(), "half-faction-half-neutral")
	require.NoError(t, err)
	// two neutral and two lyonar collectibles: lyonar cards weigh 2/2 = 1
	assert.Equal(t, 1.0, opts.CardWeights[110])
	assert.Equal(t, 1.0, opts.CardWeights[910])
}

func TestParseRollOptionsRarityFactors(t *testing.T) {
	opts, err := ParseRollOptions(testIndex(), emptyConfig(), "epic=0 rare=3")
	require.NoError(t, err)
	assert.Equal(t, 0.0, opts.CardWeights[111])
	assert.Equal(t, 3.0, opts.CardWeights[911])
	assert.Equal(t, 1.0, opts.CardWeights[110])
}

func TestParseRollOptionsBanList(t *testing.T) {
	cfg := emptyConfig()
	cfg.Banned[110] = true

	opts, err := ParseRollOptions(testIndex(), cfg, "ban-list")
	require.NoError(t, err)
	assert.Equal(t, 0.0, opts.CardWeights[110])
	assert.Equal(t, 1.0, opts.CardWeights[111])

	// without the toggle banned cards keep their weight
	opts, err = ParseRollOptions(testIndex(), cfg, "")
	require.NoError(t, err)
	assert.Equal(t, 1.0, opts.CardWeights[110])
}

func TestParseRollOptionsLegacyRemoval(t *testing.T) {
	cfg := emptyConfig()
	cfg.Removal.Hard[911] = true

	opts, err := ParseRollOptions(testIndex(), cfg, "legacy min-hard-removal=2 min-total-removal=3")
	require.NoError(t, err)
	assert.True(t, opts.Legacy)
	assert.Equal(t, 2, opts.MinHardRemoval)
	assert.Equal(t, 3, opts.MinTotalRemoval)
	assert.True(t, opts.Removal.Hard[911])

	// removal minimums are ignored outside legacy mode
	opts, err = ParseRollOptions(testIndex(), cfg, "min-hard-removal=2")
	require.NoError(t, err)
	assert.Equal(t, 0, opts.MinHardRemoval)
}

func TestParseDraftOptionsDefaults(t *testing.T) {
	opts, err := ParseDraftOptions(testIndex(), emptyConfig(), "")
	require.NoError(t, err)

	assert.Equal(t, models.DefaultDeckSize, opts.DeckSize)
	assert.Equal(t, 3, opts.FactionOffers)
	assert.Equal(t, 3, opts.CardOffersPerPick)
	assert.Equal(t, 1, opts.CardsToChoosePerPick)
	assert.Equal(t, 1, opts.BucketSize)
}

func TestParseDraftOptionsModifications(t *testing.T) {
	text := "cards=20 faction-offers=5 card-offers-per-pick=4 cards-to-choose-per-pick=2"
	opts, err := ParseDraftOptions(testIndex(), emptyConfig(), text)
	require.NoError(t, err)

	assert.Equal(t, 20, opts.DeckSize)
	assert.Equal(t, 5, opts.FactionOffers)
	assert.Equal(t, 4, opts.CardOffersPerPick)
	assert.Equal(t, 2, opts.CardsToChoosePerPick)
}

func TestParseDraftOptionsBounds(t *testing.T) {
	tests := []string{
		"faction-offers=0",
		"faction-offers=7",
		"card-offers-per-pick=1",
		"card-offers-per-pick=11",
		"card-bucket-size=6",
		"card-offers-per-pick=3 cards-to-choose-per-pick=3",
		"card-bucket-size=2 cards-to-choose-per-pick=2 card-offers-per-pick=4",
	}
	for _, text := range tests {
		_, err := ParseDraftOptions(testIndex(), emptyConfig(), text)
		assert.ErrorIs(t, err, models.ErrInvalidConfiguration, "command %q", text)
	}
}
