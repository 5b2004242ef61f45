package usecases

import (
	"deckroll/internal/models"
	"deckroll/internal/repositories"
	"deckroll/internal/repositories/catalog"
)

func intPtr(v int) *int { return &v }

// fixtureCards is a small two-faction catalog with enough collectibles to
// fill the deck sizes the tests use.
func fixtureCards() []models.Card {
	return []models.Card{
		{ID: 101, Name: "Argeon", Faction: models.Lyonar, Rarity: models.Basic, Type: models.General, Mana: 0, Attack: intPtr(2), Health: intPtr(25)},
		{ID: 102, Name: "Ziran", Faction: models.Lyonar, Rarity: models.Basic, Type: models.General, Mana: 0, Attack: intPtr(2), Health: intPtr(25)},
		{ID: 201, Name: "Kaleos", Faction: models.Songhai, Rarity: models.Basic, Type: models.General, Mana: 0, Attack: intPtr(2), Health: intPtr(25)},

		{ID: 110, Name: "Lion Adept", Faction: models.Lyonar, Rarity: models.Common, Type: models.Minion, Mana: 1},
		{ID: 111, Name: "Sun Seer", Faction: models.Lyonar, Rarity: models.Common, Type: models.Minion, Mana: 2},
		{ID: 112, Name: "Arc Knight", Faction: models.Lyonar, Rarity: models.Rare, Type: models.Minion, Mana: 3},
		{ID: 113, Name: "Sky Phalanx", Faction: models.Lyonar, Rarity: models.Epic, Type: models.Spell, Mana: 5},
		{ID: 114, Name: "Lance Guard", Faction: models.Lyonar, Rarity: models.Common, Type: models.Minion, Mana: 4},

		{ID: 210, Name: "Fox Blade", Faction: models.Songhai, Rarity: models.Common, Type: models.Minion, Mana: 2},
		{ID: 211, Name: "Mist Walker", Faction: models.Songhai, Rarity: models.Common, Type: models.Minion, Mana: 3},

		{ID: 910, Name: "Ember Sprite", Faction: models.Neutral, Rarity: models.Common, Type: models.Minion, Mana: 1},
		{ID: 911, Name: "Cairn Watcher", Faction: models.Neutral, Rarity: models.Rare, Type: models.Minion, Mana: 3},
		{ID: 912, Name: "Glass Golem", Faction: models.Neutral, Rarity: models.Common, Type: models.Minion, Mana: 4},
		{ID: 913, Name: "Void Scribe", Faction: models.Neutral, Rarity: models.Epic, Type: models.Spell, Mana: 2},
	}
}

func testRepos() *repositories.Repositories {
	return repositories.New(catalog.FromCards(fixtureCards(), nil))
}

func uniformCardWeights() map[int]float64 {
	weights := make(map[int]float64)
	for _, card := range fixtureCards() {
		if card.Type != models.General && card.Rarity.Collectible() {
			weights[card.ID] = 1
		}
	}
	return weights
}

func baseRollOptions() models.RollOptions {
	return models.RollOptions{
		DeckSize:             10,
		FactionWeights:       map[models.Faction]float64{models.Lyonar: 1},
		CardWeights:          uniformCardWeights(),
		CountChances:         map[int]float64{1: 20, 2: 30, 3: 50},
		CountChancesTwoSlots: map[int]float64{1: 33, 2: 67},
		Max1And2Drops:        models.NotConfigured,
	}
}

func baseDraftOptions() models.DraftOptions {
	return models.DraftOptions{
		DeckSize:             8,
		FactionWeights:       map[models.Faction]float64{models.Lyonar: 1},
		CardWeights:          uniformCardWeights(),
		FactionOffers:        2,
		CardOffersPerPick:    2,
		CardsToChoosePerPick: 1,
		BucketSize:           1,
	}
}
