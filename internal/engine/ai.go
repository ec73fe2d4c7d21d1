package engine

import (
	"math/rand"

	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
)

// ChooseEnemyAction scans every square of the player grid and returns the
// declaration square with the highest predicted total damage. Each unique
// enemy unit contributes its single best attack against the candidate
// square; evasion is ignored. Ties keep the earlier square in row-major
// order. A square where any attack connects beats the center fallback even
// at zero total damage, since connecting attacks still land their riders;
// only a board with no reachable square at all defaults to center.
func ChooseEnemyAction(enc *game.Encounter, hero *game.Hero) Square {
	best := Square{Col: 1, Row: 1}
	bestDmg := -1
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			candidate := Square{Col: col, Row: row}
			total := -1
			for _, u := range enc.EnemyTeam.UniqueUnits() {
				dmg := bestUnitDamage(enc, hero, u, candidate)
				if dmg < 0 {
					continue
				}
				if total < 0 {
					total = 0
				}
				total += dmg
			}
			if total > bestDmg {
				best = candidate
				bestDmg = total
			}
		}
	}
	return best
}

// bestUnitDamage is the unit's strongest single attack against the square,
// considering every cell a 2x2 body occupies. Returns -1 when no attack can
// strike the square, as opposed to 0 for attacks that connect harmlessly.
func bestUnitDamage(enc *game.Encounter, hero *game.Hero, u game.Unit, declared Square) int {
	best := -1
	for _, cell := range OccupiedCells(&enc.EnemyTeam, u) {
		for _, atk := range u.GetAttacks() {
			if total := estimateAttackDamage(enc, hero, false, cell, u, atk, declared); total > best {
				best = total
			}
		}
	}
	return best
}

// ExecuteEnemyTurn runs the enemy side's full turn: pick a declaration
// square, resolve every enemy unit's attack against it, then shift the
// Dragon King one orthogonal step when present.
func ExecuteEnemyTurn(enc *game.Encounter, hero *game.Hero, rng *rand.Rand) (Square, []AttackResult) {
	declared := ChooseEnemyAction(enc, hero)
	results := ResolveTeamAttack(enc, hero, rng, false, declared)
	moveDragonKing(enc, rng)
	return declared, results
}

// moveDragonKing tries the four orthogonal offsets in shuffled order and
// takes the first legal one. A fully blocked king stays put without remark.
func moveDragonKing(enc *game.Encounter, rng *rand.Rand) {
	var king game.Unit
	for _, u := range enc.EnemyTeam.UniqueUnits() {
		if u.GetName() == game.BossDragonKing {
			king = u
			break
		}
	}
	if king == nil {
		return
	}
	offsets := make([][2]int, len(orthogonal))
	copy(offsets, orthogonal[:])
	rng.Shuffle(len(offsets), func(i, j int) { offsets[i], offsets[j] = offsets[j], offsets[i] })
	for _, off := range offsets {
		if MoveUnit(&enc.EnemyTeam, king, off[0], off[1]) {
			enc.Log = append(enc.Log, king.GetName()+" repositions")
			return
		}
	}
}
