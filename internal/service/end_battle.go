package service

import (
	"github.com/milkshakeiii/cursesgame-sub000/internal/engine"
	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
	"github.com/milkshakeiii/cursesgame-sub000/internal/logging"
	"github.com/milkshakeiii/cursesgame-sub000/internal/storage"
)

// EndBattleResult reports progression applied at the close of an encounter.
type EndBattleResult struct {
	Victory   bool     `json:"victory"`
	TierUps   []string `json:"tier_ups,omitempty"`
	Recruited []string `json:"recruited,omitempty"`
	Log       []string `json:"log,omitempty"`
}

// EndBattle closes the encounter. A victory credits every surviving creature
// with the battle, applies tier advancement, saves new recruits and persists
// the whole roster. A defeat persists nothing; the roster stands as it was
// before the encounter. The session is removed either way.
func (s *EncounterStore) EndBattle(repo storage.Repository, id string) (*EndBattleResult, error) {
	out := &EndBattleResult{}
	err := s.With(id, func(sess *Session) error {
		out.Victory = sess.Victory
		if !sess.Victory {
			return nil
		}

		outcome := engine.EndBattle(&sess.Enc.PlayerTeam, sess.Hero)
		out.Log = outcome.Log
		for _, tu := range outcome.TierUps {
			out.TierUps = append(out.TierUps, tu.Name)
		}

		sess.HeroRecord.Battle = sess.Hero.Battle
		if err := repo.UpdateHero(sess.HeroRecord); err != nil {
			return err
		}

		// Participants covers displaced creatures too: growth may cost a
		// grid slot but never roster membership.
		for _, c := range outcome.Participants {
			if err := saveCreature(repo, sess.HeroRecord.ID, c); err != nil {
				return err
			}
		}
		for _, c := range sess.Recruits {
			if err := saveCreature(repo, sess.HeroRecord.ID, c); err != nil {
				return err
			}
			out.Recruited = append(out.Recruited, c.Name)
		}

		logging.Info("encounter ended", logging.Fields{
			"encounter_id": id,
			"hero_id":      sess.HeroRecord.HeroUUID,
			"tier_ups":     len(out.TierUps),
			"recruited":    len(out.Recruited),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.remove(id)
	return out, nil
}

func saveCreature(repo storage.Repository, heroID uint, c *game.Creature) error {
	rec, err := game.NewCreatureRecord(c, heroID)
	if err != nil {
		return err
	}
	return repo.SaveCreature(rec)
}
