package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCards map[int]Card

func (s stubCards) CardByID(id int) (Card, error) {
	card, ok := s[id]
	if !ok {
		return Card{}, fmt.Errorf("no card with id %d: %w", id, ErrUnknownCard)
	}
	return card, nil
}

func testCards() stubCards {
	return stubCards{
		1: {ID: 1, Name: "Sunforge Vanguard", Faction: Lyonar, Rarity: Basic, Type: General, Mana: 0},
		2: {ID: 2, Name: "Windblade Adept", Faction: Lyonar, Rarity: Common, Type: Minion, Mana: 2},
		3: {ID: 3, Name: "Silverguard Knight", Faction: Lyonar, Rarity: Rare, Type: Minion, Mana: 3},
		4: {ID: 4, Name: "Tempest", Faction: Lyonar, Rarity: Rare, Type: Spell, Mana: 2},
		5: {ID: 5, Name: "Bloodtear Alchemist", Faction: Neutral, Rarity: Common, Type: Minion, Mana: 1},
		6: {ID: 6, Name: "Katara", Faction: Songhai, Rarity: Common, Type: Minion, Mana: 2},
		7: {ID: 7, Name: "Azure Herald", Faction: Neutral, Rarity: Basic, Type: Minion, Mana: 2},
		8: {ID: 8, Name: "Second General", Faction: Songhai, Rarity: Basic, Type: General, Mana: 0},
	}
}

func TestDeckFirstCardMustBeOneGeneral(t *testing.T) {
	cards := testCards()

	deck := NewDeck(cards, 40)
	err := deck.AddCardAndCount(2, 1)
	assert.ErrorIs(t, err, ErrInvalidDeckMutation)

	deck = NewDeck(cards, 40)
	err = deck.AddCardAndCount(1, 2)
	assert.ErrorIs(t, err, ErrInvalidDeckMutation)

	deck = NewDeck(cards, 40)
	require.NoError(t, deck.AddCardAndCount(1, 1))
	assert.Equal(t, Lyonar, deck.Faction())
	assert.Equal(t, 1, deck.TotalCards())
}

func TestDeckRejectsIllegalAddsWithoutMutating(t *testing.T) {
	cards := testCards()

	deck := NewDeck(cards, 5)
	require.NoError(t, deck.AddCardAndCount(1, 1))
	require.NoError(t, deck.AddCardAndCount(2, 2))
	before := deck.CodeSnapshot()

	tests := []struct {
		name   string
		cardID int
		count  int
	}{
		{"unknown card", 99, 1},
		{"off-faction card", 6, 1},
		{"second general", 8, 1},
		{"non-collectible rarity", 7, 1},
		{"count above three", 2, 2},
		{"count below one", 3, 0},
		{"overflowing max size", 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := deck.AddCardAndCount(tt.cardID, tt.count)
			require.Error(t, err)
			assert.Equal(t, before, deck.CodeSnapshot(), "failed add must not change the deck")
			assert.Equal(t, 3, deck.TotalCards())
		})
	}
}

func TestDeckNeutralAndFactionCardsAllowed(t *testing.T) {
	deck := NewDeck(testCards(), 40)
	require.NoError(t, deck.AddCardAndCount(1, 1))
	assert.NoError(t, deck.AddCardAndCount(2, 3))
	assert.NoError(t, deck.AddCardAndCount(5, 2))
	assert.Equal(t, 34, deck.RemainingSlots())
	assert.Equal(t, 3, deck.Count(2))
}

func TestDeckCodeRoundTrip(t *testing.T) {
	deck := NewDeck(testCards(), 40)
	require.NoError(t, deck.AddCardAndCount(1, 1))
	require.NoError(t, deck.AddCardAndCount(2, 3))
	require.NoError(t, deck.AddCardAndCount(4, 2))
	require.NoError(t, deck.AddCardAndCount(5, 1))

	counts, err := DecodeDeckCode(deck.CodeSnapshot())
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 1, 2: 3, 4: 2, 5: 1}, counts)
}

func TestDecodeDeckCodeStripsNameTag(t *testing.T) {
	deck := NewDeck(testCards(), 40)
	require.NoError(t, deck.AddCardAndCount(1, 1))
	require.NoError(t, deck.AddCardAndCount(3, 2))
	tagged := "[My Deck]" + deck.CodeSnapshot()

	counts, err := DecodeDeckCode(tagged)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 1, 3: 2}, counts)
}

func TestDecodeDeckCodeMalformed(t *testing.T) {
	for _, code := range []string{"not base64!!!", "YWJjZGVm", "MTox,Mjoy"} {
		_, err := DecodeDeckCode(code)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, "code %q", code)
	}
}

func TestGroupedByTypeSortsByManaThenName(t *testing.T) {
	deck := NewDeck(testCards(), 40)
	require.NoError(t, deck.AddCardAndCount(1, 1))
	require.NoError(t, deck.AddCardAndCount(3, 1))
	require.NoError(t, deck.AddCardAndCount(2, 1))
	require.NoError(t, deck.AddCardAndCount(5, 1))
	require.NoError(t, deck.AddCardAndCount(4, 1))

	groups, err := deck.GroupedByType()
	require.NoError(t, err)

	minions := groups[Minion]
	require.Len(t, minions, 3)
	assert.Equal(t, []int{5, 2, 3}, []int{minions[0].ID, minions[1].ID, minions[2].ID})
	require.Len(t, groups[Spell], 1)
	assert.Equal(t, 4, groups[Spell][0].ID)
	require.Len(t, groups[General], 1)
}
