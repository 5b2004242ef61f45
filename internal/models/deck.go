package models

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const DefaultDeckSize = 40

// CardSource resolves card ids against the catalog snapshot. The deck only
// needs lookups; the full catalog interface lives in repositories.
type CardSource interface {
	CardByID(id int) (Card, error)
}

// Deck is a mutable aggregate of (card, count) pairs under the legality
// rules. The faction stays unset until the first card (a general) is added.
// A deck belongs to exactly one roll or draft and is never shared.
type Deck struct {
	cards    CardSource
	counts   map[int]int
	faction  Faction
	maxCards int
	total    int
}

func NewDeck(cards CardSource, maxCards int) *Deck {
	if maxCards <= 0 {
		maxCards = DefaultDeckSize
	}
	return &Deck{
		cards:    cards,
		counts:   make(map[int]int),
		maxCards: maxCards,
	}
}

func (d *Deck) Faction() Faction    { return d.faction }
func (d *Deck) MaxCards() int       { return d.maxCards }
func (d *Deck) TotalCards() int     { return d.total }
func (d *Deck) RemainingSlots() int { return d.maxCards - d.total }

// Count returns how many copies of the card the deck currently holds.
func (d *Deck) Count(cardID int) int { return d.counts[cardID] }

// Counts returns a copy of the card id -> count map.
func (d *Deck) Counts() map[int]int {
	counts := make(map[int]int, len(d.counts))
	for id, count := range d.counts {
		counts[id] = count
	}
	return counts
}

// AddCardAndCount adds count copies of the card, enforcing every legality
// invariant. The add is atomic: on failure the deck is unchanged.
//
// Rules: the first card must be exactly one general and fixes the faction;
// every later card must be a collectible from the deck's faction or
// Neutral; the resulting per-card count must stay in [1,3]; the total must
// not exceed the maximum size.
func (d *Deck) AddCardAndCount(cardID, count int) error {
	card, err := d.cards.CardByID(cardID)
	if err != nil {
		return err
	}
	if d.total == 0 {
		if card.Type != General || count != 1 {
			return fmt.Errorf("the first card must be one general: %w", ErrInvalidDeckMutation)
		}
		d.faction = card.Faction
	} else {
		switch {
		case card.Type == General || card.Type == Token || !card.Rarity.Collectible():
			return fmt.Errorf("card %q is not collectible: %w", card.Name, ErrInvalidDeckMutation)
		case card.Faction != d.faction && card.Faction != Neutral:
			return fmt.Errorf("card %q belongs to %s, deck is %s: %w", card.Name, card.Faction, d.faction, ErrInvalidDeckMutation)
		case d.counts[cardID]+count < 1 || d.counts[cardID]+count > 3:
			return fmt.Errorf("count for %q would become %d: %w", card.Name, d.counts[cardID]+count, ErrInvalidDeckMutation)
		case d.total+count > d.maxCards:
			return fmt.Errorf("deck size would exceed %d: %w", d.maxCards, ErrInvalidDeckMutation)
		}
	}
	d.counts[cardID] += count
	d.total += count
	return nil
}

// CodeSnapshot serializes the deck as the portable deck code: every
// "count:id" pair with count in [1,3], comma-joined, base64-encoded.
// Pure; counts outside 1..3 are dropped silently.
func (d *Deck) CodeSnapshot() string {
	pairs := make([]string, 0, len(d.counts))
	ids := make([]int, 0, len(d.counts))
	for id := range d.counts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		count := d.counts[id]
		if count < 1 || count > 3 {
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%d:%d", count, id))
	}
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(pairs, ",")))
}

// DecodeDeckCode reverses CodeSnapshot. An optional leading "[name]" tag is
// consumed and discarded; it is never re-added on encode.
func DecodeDeckCode(deckcode string) (map[int]int, error) {
	if strings.HasPrefix(deckcode, "[") {
		if end := strings.Index(deckcode, "]"); end >= 0 {
			deckcode = deckcode[end+1:]
		}
	}
	decoded, err := base64.StdEncoding.DecodeString(deckcode)
	if err != nil {
		return nil, fmt.Errorf("malformed deck code: %w", ErrInvalidConfiguration)
	}
	counts := make(map[int]int)
	if len(decoded) == 0 {
		return counts, nil
	}
	for _, pair := range strings.Split(string(decoded), ",") {
		count, id, found := strings.Cut(pair, ":")
		if !found {
			return nil, fmt.Errorf("malformed deck code entry %q: %w", pair, ErrInvalidConfiguration)
		}
		countValue, err := strconv.Atoi(count)
		if err != nil {
			return nil, fmt.Errorf("malformed count in %q: %w", pair, ErrInvalidConfiguration)
		}
		idValue, err := strconv.Atoi(id)
		if err != nil {
			return nil, fmt.Errorf("malformed card id in %q: %w", pair, ErrInvalidConfiguration)
		}
		counts[idValue] = countValue
	}
	return counts, nil
}

// GroupedByType partitions the held cards by category, each group sorted by
// mana cost then name. Used for display and for the 1-and-2-drop check.
func (d *Deck) GroupedByType() (map[CardType][]Card, error) {
	groups := make(map[CardType][]Card)
	for id := range d.counts {
		card, err := d.cards.CardByID(id)
		if err != nil {
			return nil, err
		}
		groups[card.Type] = append(groups[card.Type], card)
	}
	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			if group[i].Mana != group[j].Mana {
				return group[i].Mana < group[j].Mana
			}
			return group[i].Name < group[j].Name
		})
	}
	return groups, nil
}
