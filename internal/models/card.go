package models

import "fmt"

// Faction is one of the six playable alignments plus the cross-faction
// Neutral bucket. The cards.json wire format carries factions as integers,
// so parsing happens once at catalog load.
type Faction string

const (
	Lyonar    Faction = "Lyonar"
	Songhai   Faction = "Songhai"
	Vetruvian Faction = "Vetruvian"
	Abyssian  Faction = "Abyssian"
	Magmar    Faction = "Magmar"
	Vanar     Faction = "Vanar"
	Neutral   Faction = "Neutral"
)

// MainFactions are the factions a deck can belong to (Neutral excluded).
var MainFactions = []Faction{Lyonar, Songhai, Vetruvian, Abyssian, Magmar, Vanar}

var factionsByWireID = map[int]Faction{
	1:   Lyonar,
	2:   Songhai,
	3:   Vetruvian,
	4:   Abyssian,
	5:   Magmar,
	6:   Vanar,
	100: Neutral,
}

// FactionFromWireID maps the integer faction code used by cards.json.
func FactionFromWireID(id int) (Faction, error) {
	faction, ok := factionsByWireID[id]
	if !ok {
		return "", fmt.Errorf("unknown faction code %d: %w", id, ErrInvalidConfiguration)
	}
	return faction, nil
}

type Rarity string

const (
	Common    Rarity = "Common"
	Rare      Rarity = "Rare"
	Epic      Rarity = "Epic"
	Legendary Rarity = "Legendary"
	Mythron   Rarity = "Mythron"
	Basic     Rarity = "Basic"
	TokenTier Rarity = "Token"
)

// StandardRarities are the rarities eligible for deck inclusion.
var StandardRarities = []Rarity{Common, Rare, Epic, Legendary}

// Collectible reports whether the rarity alone permits deck inclusion.
func (r Rarity) Collectible() bool {
	for _, standard := range StandardRarities {
		if r == standard {
			return true
		}
	}
	return false
}

type CardType string

const (
	General  CardType = "General"
	Minion   CardType = "Minion"
	Spell    CardType = "Spell"
	Artifact CardType = "Artifact"
	Token    CardType = "Token"
)

// Card is an immutable record owned by the catalog. Attack and Health are
// pointers because spells and artifacts carry neither.
type Card struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Faction Faction  `json:"faction"`
	Rarity  Rarity   `json:"rarity"`
	Type    CardType `json:"cardType"`
	Mana    int      `json:"mana"`
	Attack  *int     `json:"attack,omitempty"`
	Health  *int     `json:"health,omitempty"`
	CardSet string   `json:"cardSet"`
}
