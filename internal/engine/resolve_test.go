package engine

import (
	"math/rand"
	"testing"

	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
)

func testRng() *rand.Rand { return rand.New(rand.NewSource(1)) }

func TestResolveAttack_DealsDamageAndSpendsDebuffs(t *testing.T) {
	enc := testEncounter()
	attacker := testCreature("wolf", 10, game.Attack{Type: game.AttackMelee, Damage: 12})
	attacker.Debuffs = map[game.Debuff]int{game.DebuffWeakened: 2}
	placeAt(&enc.PlayerTeam, attacker, 2, 0)
	defender := testCreature("goblin", 20)
	defender.Defense = 1
	placeAt(&enc.EnemyTeam, defender, 0, 0)

	res := ResolveAttack(enc, nil, testRng(), UnitRef{PlayerSide: true, Index: CoordsToIndex(2, 0)}, attacker.Attacks[0], Square{Col: 0, Row: 0})

	// 12 - 2*3 weakened - 1 defense = 5.
	if len(res.Struck) != 1 || res.Struck[0].Damage != 5 {
		t.Fatalf("expected one strike for 5, got %+v", res.Struck)
	}
	if defender.CurrentHealth != 15 {
		t.Fatalf("expected defender at 15 health, got %d", defender.CurrentHealth)
	}
	if attacker.Debuffs[game.DebuffWeakened] != 1 {
		t.Fatalf("attacking must spend one weakened stack, got %d", attacker.Debuffs[game.DebuffWeakened])
	}
	if len(res.Log) == 0 {
		t.Fatalf("expected log lines")
	}
}

func TestResolveAttack_RiderDebuffsDefender(t *testing.T) {
	enc := testEncounter()
	atk := game.Attack{Type: game.AttackMelee, Damage: 3, Abilities: []game.AttackAbility{game.AttackWeakening}}
	attacker := testCreature("spider", 10, atk)
	placeAt(&enc.PlayerTeam, attacker, 2, 0)
	defender := testCreature("goblin", 20)
	placeAt(&enc.EnemyTeam, defender, 0, 0)

	ResolveAttack(enc, nil, testRng(), UnitRef{PlayerSide: true, Index: CoordsToIndex(2, 0)}, atk, Square{Col: 0, Row: 0})
	ResolveAttack(enc, nil, testRng(), UnitRef{PlayerSide: true, Index: CoordsToIndex(2, 0)}, atk, Square{Col: 0, Row: 0})

	if defender.Debuffs[game.DebuffWeakened] != 2 {
		t.Fatalf("expected 2 weakened stacks on the defender, got %d", defender.Debuffs[game.DebuffWeakened])
	}
	if len(attacker.Debuffs) != 0 {
		t.Fatalf("riders land on the defender, not the attacker: %v", attacker.Debuffs)
	}
}

func TestResolveAttack_LifelinkHealsAttacker(t *testing.T) {
	enc := testEncounter()
	attacker := testCreature("vampire", 20, game.Attack{Type: game.AttackMelee, Damage: 6})
	attacker.CurrentHealth = 10
	attacker.Abilities = []game.Ability{{Kind: game.AbilityLifelink}}
	placeAt(&enc.PlayerTeam, attacker, 2, 0)
	placeAt(&enc.EnemyTeam, testCreature("goblin", 20), 0, 0)

	ResolveAttack(enc, nil, testRng(), UnitRef{PlayerSide: true, Index: CoordsToIndex(2, 0)}, attacker.Attacks[0], Square{Col: 0, Row: 0})

	if attacker.CurrentHealth != 16 {
		t.Fatalf("expected lifelink to restore 6 health, got %d", attacker.CurrentHealth)
	}
}

func TestResolveAttack_MagicHealsOwnColumn(t *testing.T) {
	enc := testEncounter()
	atk := game.Attack{Type: game.AttackMagic, Damage: 4}
	healer := testCreature("shaman", 10, atk)
	healer.Abilities = []game.Ability{{Kind: game.AbilityHealing, Value: 3}}
	placeAt(&enc.PlayerTeam, healer, 1, 0)
	ally := testCreature("wolf", 10)
	ally.CurrentHealth = 5
	placeAt(&enc.PlayerTeam, ally, 1, 2)
	bystander := testCreature("bear", 10)
	bystander.CurrentHealth = 5
	placeAt(&enc.PlayerTeam, bystander, 0, 2)
	placeAt(&enc.EnemyTeam, testCreature("goblin", 20), 1, 1)

	res := ResolveAttack(enc, nil, testRng(), UnitRef{PlayerSide: true, Index: CoordsToIndex(1, 0)}, atk, Square{Col: 1, Row: 1})

	if ally.CurrentHealth != 8 {
		t.Fatalf("expected column ally healed to 8, got %d", ally.CurrentHealth)
	}
	if bystander.CurrentHealth != 5 {
		t.Fatalf("healing must stay in the caster's column, got %d", bystander.CurrentHealth)
	}
	if len(res.Healed) == 0 {
		t.Fatalf("expected heal records")
	}
}

func TestResolveAttack_DefeatedUnitsLeaveTheGrid(t *testing.T) {
	enc := testEncounter()
	attacker := testCreature("wolf", 10, game.Attack{Type: game.AttackMelee, Damage: 30})
	placeAt(&enc.PlayerTeam, attacker, 2, 0)
	defender := testCreature("slime", 5)
	placeAt(&enc.EnemyTeam, defender, 0, 0)

	ResolveAttack(enc, nil, testRng(), UnitRef{PlayerSide: true, Index: CoordsToIndex(2, 0)}, attacker.Attacks[0], Square{Col: 0, Row: 0})

	if enc.EnemyTeam.IndexOf(defender) != -1 {
		t.Fatalf("defeated defender must be removed from the grid")
	}
}

func TestResolveAttack_EvasionCancelsDamageNotRiders(t *testing.T) {
	enc := testEncounter()
	atk := game.Attack{Type: game.AttackMelee, Damage: 10, Abilities: []game.AttackAbility{game.AttackWeakening}}
	attacker := testCreature("wolf", 10, atk)
	placeAt(&enc.PlayerTeam, attacker, 2, 0)
	defender := testCreature("eagle", 20)
	defender.Abilities = []game.Ability{{Kind: game.AbilityEvasion, Value: 100}}
	placeAt(&enc.EnemyTeam, defender, 0, 0)

	res := ResolveAttack(enc, nil, testRng(), UnitRef{PlayerSide: true, Index: CoordsToIndex(2, 0)}, atk, Square{Col: 0, Row: 0})

	if !res.Struck[0].Evaded || res.Struck[0].Damage != 0 {
		t.Fatalf("expected a guaranteed evade, got %+v", res.Struck[0])
	}
	if defender.CurrentHealth != 20 {
		t.Fatalf("evaded attack must deal no damage, got %d", defender.CurrentHealth)
	}
	if defender.Debuffs[game.DebuffWeakened] != 1 {
		t.Fatalf("riders still land on an evaded attack, got %v", defender.Debuffs)
	}
}

func TestResolveConvert_AccumulatesAndCompletes(t *testing.T) {
	enc := testEncounter()
	atk := game.Attack{Type: game.AttackMelee, Damage: 10}
	attacker := testCreature("centaur", 10, atk)
	attacker.ConversionEfficacy = 50
	placeAt(&enc.PlayerTeam, attacker, 2, 1)
	defender := testCreature("goblin", 10)
	defender.CurrentHealth = 4
	defender.Defense = 2
	defender.ConversionProgress = 96
	placeAt(&enc.EnemyTeam, defender, 0, 1)

	res := ResolveConvert(enc, nil, testRng(), UnitRef{PlayerSide: true, Index: CoordsToIndex(2, 1)}, atk, Square{Col: 0, Row: 1})

	if res.Progress != 5 {
		t.Fatalf("expected 5 conversion points, got %d", res.Progress)
	}
	if res.Converted == nil || res.Converted.ID != defender.ID {
		t.Fatalf("expected the defender to convert at 100 progress")
	}
	if enc.EnemyTeam.IndexOf(defender) != -1 {
		t.Fatalf("converted creature must leave the enemy grid")
	}
	if defender.CurrentHealth != 4 {
		t.Fatalf("conversion must not damage the defender, got %d", defender.CurrentHealth)
	}
}

func TestResolveConvert_NeverTargetsHero(t *testing.T) {
	enc := testEncounter()
	atk := game.Attack{Type: game.AttackMelee, Damage: 10}
	attacker := testCreature("centaur", 10, atk)
	attacker.ConversionEfficacy = 50
	placeAt(&enc.EnemyTeam, attacker, 0, 1)
	hero := &game.Hero{ID: "hero-1", Name: "Hero", MaxHealth: 20, CurrentHealth: 20}
	placeAt(&enc.PlayerTeam, hero, 2, 1)

	res := ResolveConvert(enc, nil, testRng(), UnitRef{PlayerSide: false, Index: CoordsToIndex(0, 1)}, atk, Square{Col: 2, Row: 1})
	if res.Progress != 0 || res.Converted != nil {
		t.Fatalf("heroes must be immune to conversion, got %+v", res)
	}
}

func TestResolveConvert_HeroEfficacyBonus(t *testing.T) {
	enc := testEncounter()
	atk := game.Attack{Type: game.AttackMelee, Damage: 10}
	attacker := testCreature("centaur", 10, atk)
	attacker.ConversionEfficacy = 50
	placeAt(&enc.PlayerTeam, attacker, 2, 1)
	defender := testCreature("goblin", 10)
	placeAt(&enc.EnemyTeam, defender, 0, 1)

	hero := &game.Hero{ID: "hero-1", Name: "Hero", Charisma: 8}
	// Efficacy 50 * 1.2 = 60 -> floor(10*60/100) = 6 points.
	res := ResolveConvert(enc, hero, testRng(), UnitRef{PlayerSide: true, Index: CoordsToIndex(2, 1)}, atk, Square{Col: 0, Row: 1})
	if res.Progress != 6 {
		t.Fatalf("expected 6 points with the charisma bonus, got %d", res.Progress)
	}
}
