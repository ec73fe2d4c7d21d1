package storage

import (
	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
)

type Repository interface {
	// Heroes
	CreateHero(h *game.HeroRecord) error
	GetHeroByUUID(uuid string) (*game.HeroRecord, error)
	UpdateHero(h *game.HeroRecord) error

	// Roster creatures
	GetRoster(heroID uint) ([]game.CreatureRecord, error)
	GetCreatureByUUID(uuid string) (*game.CreatureRecord, error)
	// SaveCreature inserts or updates by unit UUID.
	SaveCreature(c *game.CreatureRecord) error
	DeleteCreature(uuid string) error
}
