package engine

import (
	"testing"

	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
)

func TestEndBattle_TierUpAppliesDeltas(t *testing.T) {
	var team game.Team
	c := testCreature("wolf", 10, game.Attack{Type: game.AttackMelee, Damage: 4})
	c.BaseRequirement = 3
	c.BattlesCompleted = 2
	c.TierBonuses = []game.TierBonus{{
		Tier: 2, Battles: 3,
		MaxHealth: 5, Defense: 1, MeleeDamage: 2,
		Abilities: []game.Ability{{Kind: game.AbilityPackHunter}},
	}}
	placeAt(&team, c, 0, 0)

	out := EndBattle(&team, nil)

	if c.BattlesCompleted != 3 || c.Tier != 2 {
		t.Fatalf("expected tier 2 after 3 battles, got tier %d at %d battles", c.Tier, c.BattlesCompleted)
	}
	if c.MaxHealth != 15 || c.CurrentHealth != 15 || c.Defense != 1 {
		t.Fatalf("expected stat deltas applied, got hp %d/%d def %d", c.CurrentHealth, c.MaxHealth, c.Defense)
	}
	if c.Attacks[0].Damage != 6 {
		t.Fatalf("expected melee damage 6, got %d", c.Attacks[0].Damage)
	}
	if !c.HasAbility(game.AbilityPackHunter) {
		t.Fatalf("expected the new ability granted")
	}
	if len(out.TierUps) != 1 || out.TierUps[0].NewTier != 2 {
		t.Fatalf("expected one tier-up record, got %+v", out.TierUps)
	}
}

func TestEndBattle_IntelligenceShortensRequirement(t *testing.T) {
	var team game.Team
	c := testCreature("wolf", 10)
	c.BaseRequirement = 3
	c.TierBonuses = []game.TierBonus{{Tier: 2, Battles: 3, MaxHealth: 1}}
	placeAt(&team, c, 0, 0)
	hero := &game.Hero{ID: "hero-1", Name: "Hero", Intelligence: 10}

	EndBattle(&team, hero)

	// Threshold 3 - 10/5 = 1 battle.
	if c.Tier != 2 {
		t.Fatalf("expected tier 2 after one battle with INT 10, got %d", c.Tier)
	}
	if hero.Battle != 1 {
		t.Fatalf("expected the hero's battle count to rise, got %d", hero.Battle)
	}
}

func TestEndBattle_ZeroBaseRequirementNeverAdvances(t *testing.T) {
	var team game.Team
	c := testCreature("golem", 10)
	c.BattlesCompleted = 99
	c.TierBonuses = []game.TierBonus{{Tier: 2, Battles: 1, MaxHealth: 1}}
	placeAt(&team, c, 0, 0)

	EndBattle(&team, nil)

	if c.Tier != 1 {
		t.Fatalf("a zero base requirement must block advancement, got tier %d", c.Tier)
	}
}

func TestEndBattle_OneTierPerBattle(t *testing.T) {
	var team game.Team
	c := testCreature("wolf", 10)
	c.BaseRequirement = 1
	c.BattlesCompleted = 10
	c.TierBonuses = []game.TierBonus{
		{Tier: 2, Battles: 1, MaxHealth: 1},
		{Tier: 3, Battles: 1, MaxHealth: 1},
	}
	placeAt(&team, c, 0, 0)

	EndBattle(&team, nil)
	if c.Tier != 2 {
		t.Fatalf("expected exactly one tier per battle, got %d", c.Tier)
	}
	EndBattle(&team, nil)
	if c.Tier != 3 {
		t.Fatalf("expected tier 3 after the second battle, got %d", c.Tier)
	}
}

func TestEndBattle_GrowthExpandsInPlace(t *testing.T) {
	var team game.Team
	c := testCreature("drake", 10)
	c.BaseRequirement = 1
	c.TierBonuses = []game.TierBonus{{Tier: 2, Battles: 1, Size: game.Footprint2x2, Glyphs: []string{"D", "D", "D", "D"}}}
	placeAt(&team, c, 0, 0)

	out := EndBattle(&team, nil)

	if len(out.GrewTo2x2) != 1 || len(out.Displaced) != 0 {
		t.Fatalf("expected in-place growth, got grew=%d displaced=%d", len(out.GrewTo2x2), len(out.Displaced))
	}
	if got := len(OccupiedCells(&team, c)); got != 4 {
		t.Fatalf("expected the grown creature in 4 cells, got %d", got)
	}
}

func TestEndBattle_GrowthDisplacesWhenBlocked(t *testing.T) {
	var team game.Team
	c := testCreature("drake", 10)
	c.BaseRequirement = 1
	c.TierBonuses = []game.TierBonus{{Tier: 2, Battles: 1, Size: game.Footprint2x2}}
	// Fill every other cell so no 2x2 block fits.
	for i := 0; i < game.TeamSlots; i++ {
		if i == 4 {
			placeAt(&team, c, 1, 1)
		} else {
			team[i] = testCreature("wolf", 10)
		}
	}

	out := EndBattle(&team, nil)

	if len(out.Displaced) != 1 || out.Displaced[0].ID != c.ID {
		t.Fatalf("expected the grown creature displaced off a full grid, got %+v", out.Displaced)
	}
	if team.IndexOf(c) != -1 {
		t.Fatalf("a displaced creature must not keep a grid slot")
	}
}
