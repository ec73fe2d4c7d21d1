package service

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/milkshakeiii/cursesgame-sub000/internal/engine"
	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
	"github.com/milkshakeiii/cursesgame-sub000/internal/logging"
	"github.com/milkshakeiii/cursesgame-sub000/internal/storage"
)

// CreateEncounterRequest selects the opposition. When Boss is set it
// overrides the terrain spawn; Creatures overrides both and names the enemy
// units explicitly.
type CreateEncounterRequest struct {
	HeroUUID  string   `json:"hero_uuid" binding:"required"`
	Biome     string   `json:"biome"`
	Terrain   string   `json:"terrain"`
	Boss      string   `json:"boss"`
	Creatures []string `json:"creatures"`
}

// CreateEncounter builds a live encounter: the hero and roster on the player
// grid, spawned enemies on the enemy grid. Returns the encounter ID.
func CreateEncounter(repo storage.Repository, reg *game.Registry, store *EncounterStore, rng *rand.Rand, req CreateEncounterRequest) (string, *Session, error) {
	heroRec, err := GetHero(repo, req.HeroUUID)
	if err != nil {
		return "", nil, err
	}
	hero := heroRec.Hero()
	roster, err := GetRoster(repo, heroRec.ID)
	if err != nil {
		return "", nil, err
	}

	enemies, err := spawnEnemies(reg, rng, req)
	if err != nil {
		return "", nil, err
	}

	enc := &game.Encounter{ID: uuid.NewString()}
	placePlayerTeam(&enc.PlayerTeam, hero, roster)
	placeEnemyTeam(&enc.EnemyTeam, enemies)

	sess := &Session{Enc: enc, Hero: hero, HeroRecord: heroRec, Rng: rng}
	store.put(enc.ID, sess)

	logging.Info("encounter created", logging.Fields{
		"encounter_id": enc.ID,
		"hero_id":      heroRec.HeroUUID,
		"enemies":      len(enemies),
	})
	return enc.ID, sess, nil
}

func spawnEnemies(reg *game.Registry, rng *rand.Rand, req CreateEncounterRequest) ([]*game.Creature, error) {
	if len(req.Creatures) > 0 {
		out := make([]*game.Creature, 0, len(req.Creatures))
		for _, name := range req.Creatures {
			c, err := reg.Spawn(name)
			if err != nil {
				return nil, ErrUnknownCreature
			}
			out = append(out, c)
		}
		return out, nil
	}
	if req.Boss != "" {
		b := reg.Boss(req.Boss)
		if b == nil {
			return nil, ErrUnknownCreature
		}
		return []*game.Creature{b}, nil
	}
	c, err := reg.SpawnForTerrain(rng, req.Biome, req.Terrain)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrSafeTerrain
	}
	return []*game.Creature{c}, nil
}

// placePlayerTeam puts the hero at the middle of the back column and fills
// the roster front column first so melee creatures start unblocked. The back
// corner cells stay last so a 2x2 creature can still claim a full block.
// Creatures that do not fit stay in reserve for this encounter.
func placePlayerTeam(team *game.Team, hero *game.Hero, roster []*game.Creature) {
	engine.PlaceUnit(team, hero, 0, 1)
	order := []int{
		engine.CoordsToIndex(2, 1), engine.CoordsToIndex(2, 0), engine.CoordsToIndex(2, 2),
		engine.CoordsToIndex(1, 0), engine.CoordsToIndex(1, 1), engine.CoordsToIndex(1, 2),
		engine.CoordsToIndex(0, 0), engine.CoordsToIndex(0, 2),
	}
	for _, c := range roster {
		placed := false
		for _, idx := range order {
			col, row := engine.IndexToCoords(idx)
			if engine.PlacementFree(team, col, row, c.GetFootprint(), nil) {
				engine.PlaceUnit(team, c, col, row)
				placed = true
				break
			}
		}
		if !placed {
			logging.Warn("no room for roster creature", logging.Fields{"creature": c.Name})
		}
	}
}

// placeEnemyTeam centers the first enemy and spreads the rest outward along
// the enemy front column.
func placeEnemyTeam(team *game.Team, enemies []*game.Creature) {
	order := []int{
		engine.CoordsToIndex(1, 1),
		engine.CoordsToIndex(0, 0), engine.CoordsToIndex(0, 2),
		engine.CoordsToIndex(0, 1), engine.CoordsToIndex(1, 0), engine.CoordsToIndex(1, 2),
		engine.CoordsToIndex(2, 0), engine.CoordsToIndex(2, 2), engine.CoordsToIndex(2, 1),
	}
	for _, c := range enemies {
		for _, idx := range order {
			col, row := engine.IndexToCoords(idx)
			if engine.PlacementFree(team, col, row, c.GetFootprint(), nil) {
				engine.PlaceUnit(team, c, col, row)
				break
			}
		}
	}
}
