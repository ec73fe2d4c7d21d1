package engine

import "github.com/milkshakeiii/cursesgame-sub000/internal/game"

// Target is one struck unit and the square it was struck at.
type Target struct {
	Unit game.Unit
	Col  int
	Row  int
}

// MeleeTarget resolves the single legal melee target for an attacker at slot
// attackerIdx. Melee only reaches the attacker's own row, and is blocked
// entirely when an ally stands between the attacker and its team's front
// edge (front is the highest local column for the player side, the lowest
// for the enemy side). The declared square is honored only when it names the
// nearest enemy in that row. Returns the zero Target and false otherwise.
func MeleeTarget(enc *game.Encounter, attackerPlayerSide bool, attackerIdx int, declared Square) (Target, bool) {
	attackerCol, attackerRow := IndexToCoords(attackerIdx)
	if declared.Row != attackerRow {
		return Target{}, false
	}

	allies := enc.Team(attackerPlayerSide)
	attacker := allies[attackerIdx]
	if attacker == nil {
		return Target{}, false
	}
	for col := 0; col < 3; col++ {
		inFront := (attackerPlayerSide && col > attackerCol) || (!attackerPlayerSide && col < attackerCol)
		if !inFront {
			continue
		}
		blocker := allies.At(col, attackerRow)
		if blocker != nil && blocker.GetID() != attacker.GetID() {
			return Target{}, false
		}
	}

	enemies := enc.Team(!attackerPlayerSide)
	closestCol := -1
	var closest game.Unit
	for col := 0; col < 3; col++ {
		enemy := enemies.At(col, attackerRow)
		if enemy == nil {
			continue
		}
		// The defender column nearest the attacking team's front is the
		// lowest for a player attacker and the highest for an enemy attacker.
		if closest == nil || (attackerPlayerSide && col < closestCol) || (!attackerPlayerSide && col > closestCol) {
			closest = enemy
			closestCol = col
		}
	}
	if closest == nil || declared.Col != closestCol {
		return Target{}, false
	}
	return Target{Unit: closest, Col: closestCol, Row: attackerRow}, true
}

// MeleeTargets resolves a melee attack including the Piercing rider: with
// Piercing every distinct unit in the defender's row is struck, otherwise
// only the nearest one.
func MeleeTargets(enc *game.Encounter, attackerPlayerSide bool, attackerIdx int, atk game.Attack, declared Square) []Target {
	primary, ok := MeleeTarget(enc, attackerPlayerSide, attackerIdx, declared)
	if !ok {
		return nil
	}
	if !atk.HasAbility(game.AttackPiercing) {
		return []Target{primary}
	}
	enemies := enc.Team(!attackerPlayerSide)
	seen := make(map[string]bool, 3)
	targets := make([]Target, 0, 3)
	for col := 0; col < 3; col++ {
		u := enemies.At(col, primary.Row)
		if u == nil || seen[u.GetID()] {
			continue
		}
		seen[u.GetID()] = true
		targets = append(targets, Target{Unit: u, Col: col, Row: primary.Row})
	}
	return targets
}

// RangedTargets resolves a ranged attack: the declared square must fall in
// the attack's inclusive global-column-distance band; with Splash the
// in-bounds orthogonal neighbors of the declared square are struck too. Each
// distinct unit is struck once even when its footprint spans several hit
// squares.
func RangedTargets(enc *game.Encounter, attackerPlayerSide bool, attackerIdx int, atk game.Attack, declared Square) []Target {
	if !declared.InBounds() {
		return nil
	}
	attackerCol, _ := IndexToCoords(attackerIdx)
	dist := ColumnDistance(
		GlobalColumn(attackerPlayerSide, attackerCol),
		GlobalColumn(!attackerPlayerSide, declared.Col),
	)
	lo, hi := atk.RangeBand()
	if dist < lo || dist > hi {
		return nil
	}

	squares := []Square{declared}
	if atk.HasAbility(game.AttackSplash) {
		squares = append(squares, AdjacentSquares(declared)...)
	}

	enemies := enc.Team(!attackerPlayerSide)
	seen := make(map[string]bool, len(squares))
	targets := make([]Target, 0, len(squares))
	for _, s := range squares {
		u := enemies.At(s.Col, s.Row)
		if u == nil || seen[u.GetID()] {
			continue
		}
		seen[u.GetID()] = true
		targets = append(targets, Target{Unit: u, Col: s.Col, Row: s.Row})
	}
	return targets
}

// MagicTargets resolves a magic attack: every distinct unit in the mirror
// column (2 - attacker local column) of the opposing team is struck. The
// declared square is irrelevant beyond selecting the attack.
func MagicTargets(enc *game.Encounter, attackerPlayerSide bool, attackerIdx int) []Target {
	attackerCol, _ := IndexToCoords(attackerIdx)
	mirrorCol := 2 - attackerCol

	enemies := enc.Team(!attackerPlayerSide)
	seen := make(map[string]bool, 3)
	targets := make([]Target, 0, 3)
	for row := 0; row < 3; row++ {
		u := enemies.At(mirrorCol, row)
		if u == nil || seen[u.GetID()] {
			continue
		}
		seen[u.GetID()] = true
		targets = append(targets, Target{Unit: u, Col: mirrorCol, Row: row})
	}
	return targets
}

// AttackTargets dispatches on attack type and returns the struck set. An
// illegal or out-of-range declaration yields an empty set, never an error.
func AttackTargets(enc *game.Encounter, attackerPlayerSide bool, attackerIdx int, atk game.Attack, declared Square) []Target {
	switch atk.Type {
	case game.AttackMelee:
		return MeleeTargets(enc, attackerPlayerSide, attackerIdx, atk, declared)
	case game.AttackRanged:
		return RangedTargets(enc, attackerPlayerSide, attackerIdx, atk, declared)
	case game.AttackMagic:
		return MagicTargets(enc, attackerPlayerSide, attackerIdx)
	}
	return nil
}

// CanAttack reports whether the attack would strike at least one unit.
func CanAttack(enc *game.Encounter, attackerPlayerSide bool, attackerIdx int, atk game.Attack, declared Square) bool {
	return len(AttackTargets(enc, attackerPlayerSide, attackerIdx, atk, declared)) > 0
}
