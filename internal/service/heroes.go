package service

import (
	"errors"

	"github.com/google/uuid"

	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
	"github.com/milkshakeiii/cursesgame-sub000/internal/storage"
)

// CreateHeroRequest carries the hero's identity and attribute spread.
type CreateHeroRequest struct {
	Name         string `json:"name" binding:"required"`
	Intelligence int    `json:"intelligence"`
	Wisdom       int    `json:"wisdom"`
	Charisma     int    `json:"charisma"`
}

// CreateHero persists a fresh hero with baseline combat stats.
func CreateHero(repo storage.Repository, req CreateHeroRequest) (*game.HeroRecord, error) {
	rec := &game.HeroRecord{
		HeroUUID:     uuid.NewString(),
		Name:         req.Name,
		Intelligence: req.Intelligence,
		Wisdom:       req.Wisdom,
		Charisma:     req.Charisma,

		BaseMeleeAttack:  3,
		BaseRangedAttack: 2,
		BaseMagicAttack:  2,
		BaseDefense:      2,
		BaseDodge:        1,
		BaseResistance:   1,

		MaxHealth: 25,
	}
	if err := repo.CreateHero(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetHero loads a hero record by UUID.
func GetHero(repo storage.Repository, heroUUID string) (*game.HeroRecord, error) {
	rec, err := repo.GetHeroByUUID(heroUUID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrHeroNotFound
	}
	return rec, err
}

// GetRoster loads a hero's saved creatures, rebuilt at full health.
func GetRoster(repo storage.Repository, heroID uint) ([]*game.Creature, error) {
	records, err := repo.GetRoster(heroID)
	if err != nil {
		return nil, err
	}
	out := make([]*game.Creature, 0, len(records))
	for i := range records {
		c, err := records[i].Creature()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
