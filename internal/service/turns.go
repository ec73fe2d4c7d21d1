package service

import (
	"github.com/milkshakeiii/cursesgame-sub000/internal/engine"
	"github.com/milkshakeiii/cursesgame-sub000/internal/logging"
)

// TurnResult reports one side's resolved turn.
type TurnResult struct {
	Declared engine.Square          `json:"declared"`
	Attacks  []engine.AttackResult  `json:"attacks,omitempty"`
	Converts []engine.ConvertResult `json:"converts,omitempty"`
	Over     bool                   `json:"over"`
	Victory  bool                   `json:"victory"`
}

// PlayerAttack resolves the whole player team's attack against one declared
// square.
func (s *EncounterStore) PlayerAttack(id string, declared engine.Square) (*TurnResult, error) {
	var out *TurnResult
	err := s.With(id, func(sess *Session) error {
		if sess.Over {
			return ErrEncounterOver
		}
		if !declared.InBounds() {
			return ErrInvalidSquare
		}
		results := engine.ResolveTeamAttack(sess.Enc, sess.Hero, sess.Rng, true, declared)
		out = &TurnResult{Declared: declared, Attacks: results}
		s.checkOutcome(sess, out)
		return nil
	})
	return out, err
}

// PlayerConvert resolves the player team's conversion attempt against one
// declared enemy square. Completed conversions join the pending recruits.
func (s *EncounterStore) PlayerConvert(id string, declared engine.Square) (*TurnResult, error) {
	var out *TurnResult
	err := s.With(id, func(sess *Session) error {
		if sess.Over {
			return ErrEncounterOver
		}
		if !declared.InBounds() {
			return ErrInvalidSquare
		}
		results, converted := engine.ResolveTeamConvert(sess.Enc, sess.Hero, sess.Rng, declared)
		sess.Recruits = append(sess.Recruits, converted...)
		for _, c := range converted {
			logging.Info("creature converted", logging.Fields{
				"encounter_id": sess.Enc.ID,
				"creature":     c.Name,
			})
		}
		out = &TurnResult{Declared: declared, Converts: results}
		s.checkOutcome(sess, out)
		return nil
	})
	return out, err
}

// EnemyTurn resolves the enemy side: target selection, every enemy unit's
// attack and any scripted movement.
func (s *EncounterStore) EnemyTurn(id string) (*TurnResult, error) {
	var out *TurnResult
	err := s.With(id, func(sess *Session) error {
		if sess.Over {
			return ErrEncounterOver
		}
		declared, results := engine.ExecuteEnemyTurn(sess.Enc, sess.Hero, sess.Rng)
		out = &TurnResult{Declared: declared, Attacks: results}
		s.checkOutcome(sess, out)
		return nil
	})
	return out, err
}

// checkOutcome marks the session over when either grid is out of the fight:
// the enemy side cleared, or the hero defeated.
func (s *EncounterStore) checkOutcome(sess *Session, out *TurnResult) {
	if len(sess.Enc.EnemyTeam.UniqueUnits()) == 0 {
		sess.Over = true
		sess.Victory = true
	} else if sess.Enc.FindHero() == nil {
		sess.Over = true
		sess.Victory = false
	}
	out.Over = sess.Over
	out.Victory = sess.Victory
}
