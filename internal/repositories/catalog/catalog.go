package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"deckroll/internal/models"
)

// Catalog is the process-lifetime immutable card snapshot. After Load it is
// read-only and safely shared by every roll and draft without locking.
type Catalog struct {
	allCards    []models.Card
	byID        map[int]models.Card
	generals    map[models.Faction][]models.Card
	collectible map[models.Faction][]models.Card
}

// rawCard mirrors the cards.json wire format, where factions are integers.
type rawCard struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Faction int    `json:"faction"`
	Rarity  string `json:"rarity"`
	Type    string `json:"cardType"`
	Mana    int    `json:"mana"`
	Attack  *int   `json:"attack"`
	Health  *int   `json:"health"`
	CardSet string `json:"cardSet"`
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

// Load fetches the card list from url, falling back to the local file when
// the network source fails. Both sources absent is ErrCatalogUnavailable.
// excludedSets names special/promo card sets kept out of the collectible
// buckets.
func Load(url, fallbackFile string, excludedSets []string) (*Catalog, error) {
	payload, err := fetch(url)
	if err != nil {
		slog.Warn("card list fetch failed, trying local file", "url", url, "file", fallbackFile, "error", err)
		payload, err = os.ReadFile(fallbackFile)
		if err != nil {
			return nil, fmt.Errorf("no card source reachable: %w", models.ErrCatalogUnavailable)
		}
	}

	var raw []rawCard
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decode card list: %w", models.ErrCatalogUnavailable)
	}

	cards := make([]models.Card, 0, len(raw))
	for _, entry := range raw {
		faction, err := models.FactionFromWireID(entry.Faction)
		if err != nil {
			return nil, err
		}
		cards = append(cards, models.Card{
			ID:      entry.ID,
			Name:    entry.Name,
			Faction: faction,
			Rarity:  models.Rarity(entry.Rarity),
			Type:    models.CardType(entry.Type),
			Mana:    entry.Mana,
			Attack:  entry.Attack,
			Health:  entry.Health,
			CardSet: entry.CardSet,
		})
	}
	slog.Info("card catalog loaded", "cards", len(cards))
	return FromCards(cards, excludedSets), nil
}

func fetch(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("no card list url configured")
	}
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("card list request returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// FromCards builds the snapshot from an already-loaded card list.
func FromCards(cards []models.Card, excludedSets []string) *Catalog {
	excluded := make(map[string]bool, len(excludedSets))
	for _, set := range excludedSets {
		excluded[set] = true
	}

	c := &Catalog{
		allCards:    cards,
		byID:        make(map[int]models.Card, len(cards)),
		generals:    make(map[models.Faction][]models.Card),
		collectible: make(map[models.Faction][]models.Card),
	}
	for _, card := range cards {
		c.byID[card.ID] = card
		if card.Type == models.General {
			c.generals[card.Faction] = append(c.generals[card.Faction], card)
			continue
		}
		if card.Type != models.Token && card.Rarity.Collectible() && !excluded[card.CardSet] {
			c.collectible[card.Faction] = append(c.collectible[card.Faction], card)
		}
	}
	return c
}

func (c *Catalog) AllCards() []models.Card { return c.allCards }

func (c *Catalog) CardByID(id int) (models.Card, error) {
	card, ok := c.byID[id]
	if !ok {
		return models.Card{}, fmt.Errorf("no card with id %d: %w", id, models.ErrUnknownCard)
	}
	return card, nil
}

func (c *Catalog) GeneralsByFaction(faction models.Faction) []models.Card {
	return c.generals[faction]
}

// CollectibleCardsByFaction includes the virtual Neutral faction key.
func (c *Catalog) CollectibleCardsByFaction(faction models.Faction) []models.Card {
	return c.collectible[faction]
}

func (c *Catalog) CollectibleCards() []models.Card {
	var cards []models.Card
	for _, faction := range append(models.MainFactions, models.Neutral) {
		cards = append(cards, c.collectible[faction]...)
	}
	return cards
}
