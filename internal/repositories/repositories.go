package repositories

import (
	"deckroll/internal/models"
	"deckroll/internal/repositories/catalog"
)

type Repositories struct {
	Catalog interface {
		AllCards() []models.Card
		CardByID(id int) (models.Card, error)
		GeneralsByFaction(faction models.Faction) []models.Card
		CollectibleCardsByFaction(faction models.Faction) []models.Card
		CollectibleCards() []models.Card
	}
}

func New(cards *catalog.Catalog) *Repositories {
	return &Repositories{Catalog: cards}
}
