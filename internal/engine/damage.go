package engine

import (
	"math"

	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
)

// debuffPenalty is the flat damage lost per stack: 6 for the type-specific
// debuff (defanged/blinded/silenced), 3 per weakened stack for every type.
func debuffPenalty(t game.AttackType, debuffs map[game.Debuff]int) int {
	if debuffs == nil {
		return 0
	}
	penalty := debuffs[game.DebuffWeakened] * 3
	switch t {
	case game.AttackMelee:
		penalty += debuffs[game.DebuffDefanged] * 6
	case game.AttackRanged:
		penalty += debuffs[game.DebuffBlinded] * 6
	case game.AttackMagic:
		penalty += debuffs[game.DebuffSilenced] * 6
	}
	return penalty
}

// ResolveDamage computes the final damage of one attack against one defender.
//
// Order matters: Flying zeroes melee before any math; debuff penalties can
// zero the attack outright, in which case no defense subtraction or chip
// floor applies; otherwise the type-matched defense is subtracted and the
// result clamps to a minimum of 1.
func ResolveDamage(atk game.Attack, attackDamage int, attackerDebuffs map[game.Debuff]int, defenderFlying bool, effectiveDefense int) int {
	if atk.Type == game.AttackMelee && defenderFlying {
		return 0
	}
	effective := attackDamage - debuffPenalty(atk.Type, attackerDebuffs)
	if effective <= 0 {
		return 0
	}
	dmg := effective - effectiveDefense
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// ConversionPoints computes the progress one attack adds toward converting a
// defending creature: floor(damage * efficacy/100), multiplied by 1.5
// (floored) when the defender is below half health, then reduced by the
// defender's single highest defense stat. Never negative.
func ConversionPoints(attackDamage int, effectiveEfficacy int, defender *game.Creature) int {
	base := attackDamage * effectiveEfficacy / 100
	if defender.CurrentHealth*2 < defender.MaxHealth {
		base = int(math.Floor(float64(base) * 1.5))
	}
	highest := defender.Defense
	if defender.Dodge > highest {
		highest = defender.Dodge
	}
	if defender.Resistance > highest {
		highest = defender.Resistance
	}
	if base <= highest {
		return 0
	}
	return base - highest
}
