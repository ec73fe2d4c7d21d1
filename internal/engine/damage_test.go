package engine

import (
	"testing"

	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
)

func TestResolveDamage_FlyingStopsMelee(t *testing.T) {
	atk := game.Attack{Type: game.AttackMelee, Damage: 50}
	if got := ResolveDamage(atk, 50, nil, true, 0); got != 0 {
		t.Fatalf("melee against a flying defender must deal 0, got %d", got)
	}
	ranged := game.Attack{Type: game.AttackRanged, Damage: 5}
	if got := ResolveDamage(ranged, 5, nil, true, 0); got != 5 {
		t.Fatalf("flying must not stop ranged attacks, got %d", got)
	}
}

func TestResolveDamage_DebuffsZeroWithoutChipFloor(t *testing.T) {
	atk := game.Attack{Type: game.AttackMelee, Damage: 5}
	debuffs := map[game.Debuff]int{game.DebuffWeakened: 2}
	// 5 - 2*3 <= 0: the attack fizzles entirely, no minimum-1 chip.
	if got := ResolveDamage(atk, 5, debuffs, false, 0); got != 0 {
		t.Fatalf("debuff-zeroed attack must deal 0, got %d", got)
	}

	// 10 - 1*3 - 1*6 = 1 survives the penalties.
	debuffs = map[game.Debuff]int{game.DebuffWeakened: 1, game.DebuffDefanged: 1}
	if got := ResolveDamage(atk, 10, debuffs, false, 0); got != 1 {
		t.Fatalf("expected 1 after stacked penalties, got %d", got)
	}

	// Defanged stacks must not touch ranged attacks.
	ranged := game.Attack{Type: game.AttackRanged, Damage: 5}
	debuffs = map[game.Debuff]int{game.DebuffDefanged: 3}
	if got := ResolveDamage(ranged, 5, debuffs, false, 0); got != 5 {
		t.Fatalf("defanged must only affect melee, got %d", got)
	}
}

func TestResolveDamage_ChipFloorAgainstDefense(t *testing.T) {
	atk := game.Attack{Type: game.AttackRanged, Damage: 3}
	if got := ResolveDamage(atk, 3, nil, false, 10); got != 1 {
		t.Fatalf("defense cannot reduce a live attack below 1, got %d", got)
	}
}

func TestConversionPoints(t *testing.T) {
	defender := testCreature("goblin", 10)
	defender.CurrentHealth = 4
	defender.Defense = 2

	// floor(10 * 50/100) = 5, below half health *1.5 -> 7, minus 2 -> 5.
	if got := ConversionPoints(10, 50, defender); got != 5 {
		t.Fatalf("expected 5 conversion points, got %d", got)
	}

	defender.CurrentHealth = 10
	if got := ConversionPoints(10, 50, defender); got != 3 {
		t.Fatalf("expected 3 points at full health, got %d", got)
	}

	defender.Resistance = 20
	if got := ConversionPoints(10, 50, defender); got != 0 {
		t.Fatalf("points must clamp at 0 against high defenses, got %d", got)
	}
}
