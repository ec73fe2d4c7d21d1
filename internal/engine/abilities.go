package engine

import (
	"math/rand"

	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
)

// RollEvasion returns true when the defender's Evasion ability cancels all
// incoming damage (uniform roll 1-100 against the ability's percentage).
func RollEvasion(rng *rand.Rand, defender game.Unit) bool {
	pct, ok := defender.AbilityValue(game.AbilityEvasion)
	if !ok || pct <= 0 {
		return false
	}
	return rng.Intn(100)+1 <= pct
}

// GuardianBonus sums floor(0.5*defense) and floor(0.5*dodge) contributed by
// orthogonally adjacent allies with Guardian. Multiple Guardians stack.
func GuardianBonus(team *game.Team, u game.Unit) (defense, dodge int) {
	for _, ally := range adjacentAllies(team, u) {
		if ally.HasAbility(game.AbilityGuardian) {
			defense += ally.DefenseOf(game.StatDefense) / 2
			dodge += ally.DefenseOf(game.StatDodge) / 2
		}
	}
	return defense, dodge
}

// ProtectorBonus sums floor(0.5*resistance) contributed by orthogonally
// adjacent allies with Protector.
func ProtectorBonus(team *game.Team, u game.Unit) int {
	bonus := 0
	for _, ally := range adjacentAllies(team, u) {
		if ally.HasAbility(game.AbilityProtector) {
			bonus += ally.DefenseOf(game.StatResistance) / 2
		}
	}
	return bonus
}

// ShieldWallBonus grants the unit floor(0.5*own defense/dodge) per
// same-named ally anywhere on its team, excluding itself.
func ShieldWallBonus(team *game.Team, u game.Unit) (defense, dodge int) {
	if !u.HasAbility(game.AbilityShieldWall) {
		return 0, 0
	}
	n := sameNameCount(team, u)
	if n == 0 {
		return 0, 0
	}
	return u.DefenseOf(game.StatDefense) / 2 * n, u.DefenseOf(game.StatDodge) / 2 * n
}

// PackHunterBonus grants floor(0.5*attack damage) per same-named ally for
// melee and ranged attacks. Magic attacks never benefit.
func PackHunterBonus(team *game.Team, u game.Unit, atk game.Attack) int {
	if atk.Type == game.AttackMagic || !u.HasAbility(game.AbilityPackHunter) {
		return 0
	}
	return atk.Damage / 2 * sameNameCount(team, u)
}

// HealingAmount returns the column heal value of the unit's Healing ability,
// or 0.
func HealingAmount(u game.Unit) int {
	v, ok := u.AbilityValue(game.AbilityHealing)
	if !ok {
		return 0
	}
	return v
}

// EffectiveDefense is the defender's full mitigation value for one stat:
// own stat, plus the hero's WIS ally buff (player-side non-hero units only),
// plus Guardian/Protector auras and the Shield Wall composition bonus.
// Computed fresh every resolution; adjacency and composition change each turn.
func EffectiveDefense(enc *game.Encounter, hero *game.Hero, defenderPlayerSide bool, defender game.Unit, stat game.DefenseStat) int {
	team := enc.Team(defenderPlayerSide)
	total := defender.DefenseOf(stat)
	if defenderPlayerSide && hero != nil && !defender.IsHero() {
		total += hero.AllyDefenseBuff()
	}
	switch stat {
	case game.StatDefense:
		gd, _ := GuardianBonus(team, defender)
		sd, _ := ShieldWallBonus(team, defender)
		total += gd + sd
	case game.StatDodge:
		_, gd := GuardianBonus(team, defender)
		_, sd := ShieldWallBonus(team, defender)
		total += gd + sd
	case game.StatResistance:
		total += ProtectorBonus(team, defender)
	}
	return total
}

// EffectiveAttackDamage is the attack's base damage plus the attacker's Pack
// Hunter bonus. Debuff penalties are applied separately during damage
// resolution.
func EffectiveAttackDamage(team *game.Team, attacker game.Unit, atk game.Attack) int {
	return atk.Damage + PackHunterBonus(team, attacker, atk)
}

// adjacentAllies returns the distinct units on orthogonally adjacent squares,
// excluding the unit itself. For a 2x2 unit every occupied cell contributes
// neighbors.
func adjacentAllies(team *game.Team, u game.Unit) []game.Unit {
	seen := map[string]bool{u.GetID(): true}
	allies := make([]game.Unit, 0, 4)
	for _, idx := range OccupiedCells(team, u) {
		col, row := IndexToCoords(idx)
		for _, n := range AdjacentSquares(Square{Col: col, Row: row}) {
			ally := team.At(n.Col, n.Row)
			if ally == nil || seen[ally.GetID()] {
				continue
			}
			seen[ally.GetID()] = true
			allies = append(allies, ally)
		}
	}
	return allies
}

// sameNameCount counts distinct allies sharing the unit's name.
func sameNameCount(team *game.Team, u game.Unit) int {
	n := 0
	for _, other := range team.UniqueUnits() {
		if other.GetID() != u.GetID() && other.GetName() == u.GetName() {
			n++
		}
	}
	return n
}
