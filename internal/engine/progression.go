package engine

import (
	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
)

// TierUp records one creature advancing a tier at the end of a battle.
type TierUp struct {
	Unit    *game.Creature `json:"-"`
	UnitID  string         `json:"unit_id"`
	Name    string         `json:"name"`
	NewTier int            `json:"new_tier"`
}

// BattleOutcome summarizes end-of-battle progression for the winning side.
// Displaced holds grown creatures that could not fit their new 2x2 body
// anywhere on the grid and must be re-placed by the caller.
type BattleOutcome struct {
	Participants []*game.Creature `json:"-"`
	TierUps      []TierUp         `json:"tier_ups,omitempty"`
	GrewTo2x2    []*game.Creature `json:"-"`
	Displaced    []*game.Creature `json:"-"`
	Log          []string         `json:"log"`
}

// EndBattle credits every surviving player creature with a completed battle
// and applies at most one tier advancement each. The hero's Battle attribute
// rises by one. Conversion progress and debuffs are combat-only state and
// are cleared here.
func EndBattle(team *game.Team, hero *game.Hero) BattleOutcome {
	out := BattleOutcome{}
	if hero != nil {
		hero.Battle++
	}
	for _, u := range team.UniqueUnits() {
		c, ok := u.(*game.Creature)
		if !ok {
			continue
		}
		c.BattlesCompleted++
		c.ConversionProgress = 0
		c.Debuffs = nil
		out.Participants = append(out.Participants, c)

		bonus, ok := nextTierBonus(c, hero)
		if !ok {
			continue
		}
		grew := applyTierBonus(c, bonus)
		out.TierUps = append(out.TierUps, TierUp{Unit: c, UnitID: c.ID, Name: c.Name, NewTier: c.Tier})
		out.Log = append(out.Log, c.Name+" advances to a new tier")
		if grew {
			out.GrewTo2x2 = append(out.GrewTo2x2, c)
			if !growInPlace(team, c) {
				team.Remove(c)
				out.Displaced = append(out.Displaced, c)
				out.Log = append(out.Log, c.Name+" outgrows its position")
			}
		}
	}
	return out
}

// nextTierBonus finds the bonus for the creature's next tier and checks the
// battle requirement. A zero base requirement marks a creature that never
// advances. The hero's Intelligence shaves one battle off the requirement
// per 5 points, floored at one battle.
func nextTierBonus(c *game.Creature, hero *game.Hero) (game.TierBonus, bool) {
	if c.BaseRequirement == 0 {
		return game.TierBonus{}, false
	}
	for _, tb := range c.TierBonuses {
		if tb.Tier != c.Tier+1 {
			continue
		}
		threshold := tb.Battles
		if hero != nil {
			threshold -= hero.Intelligence / 5
		}
		if threshold < 1 {
			threshold = 1
		}
		if c.BattlesCompleted >= threshold {
			return tb, true
		}
		return game.TierBonus{}, false
	}
	return game.TierBonus{}, false
}

// applyTierBonus mutates the creature with one tier's deltas. Returns true
// when the bonus grew the creature from 1x1 to 2x2.
func applyTierBonus(c *game.Creature, tb game.TierBonus) bool {
	c.Tier = tb.Tier

	c.MaxHealth += tb.MaxHealth
	c.CurrentHealth += tb.MaxHealth
	if c.CurrentHealth > c.MaxHealth {
		c.CurrentHealth = c.MaxHealth
	}
	c.Defense += tb.Defense
	c.Dodge += tb.Dodge
	c.Resistance += tb.Resistance
	c.ConversionEfficacy += tb.ConversionEfficacy

	for i := range c.Attacks {
		switch c.Attacks[i].Type {
		case game.AttackMelee:
			c.Attacks[i].Damage += tb.MeleeDamage
		case game.AttackRanged:
			c.Attacks[i].Damage += tb.RangedDamage
		case game.AttackMagic:
			c.Attacks[i].Damage += tb.MagicDamage
		}
		for _, ab := range tb.AttackAbilities[c.Attacks[i].Type] {
			if !c.Attacks[i].HasAbility(ab) {
				c.Attacks[i].Abilities = append(c.Attacks[i].Abilities, ab)
			}
		}
	}
	if tb.NewAttack != nil {
		na := *tb.NewAttack
		na.Abilities = append([]game.AttackAbility(nil), tb.NewAttack.Abilities...)
		c.Attacks = append(c.Attacks, na)
	}

	for _, ab := range tb.Abilities {
		mergeAbility(c, ab)
	}
	if tb.HealingBonus != 0 {
		mergeAbility(c, game.Ability{Kind: game.AbilityHealing, Value: tb.HealingBonus})
	}

	grew := false
	if tb.Size == game.Footprint2x2 && c.GetFootprint() != game.Footprint2x2 {
		grew = true
	}
	if tb.Size != "" {
		c.Size = tb.Size
	}
	if len(tb.Glyphs) > 0 {
		c.Glyphs = append([]string(nil), tb.Glyphs...)
		c.Glyph = tb.Glyphs[0]
	}
	return grew
}

// mergeAbility stacks the value onto an existing ability of the same kind or
// grants it fresh.
func mergeAbility(c *game.Creature, ab game.Ability) {
	for i := range c.Abilities {
		if c.Abilities[i].Kind == ab.Kind {
			c.Abilities[i].Value += ab.Value
			return
		}
	}
	c.Abilities = append(c.Abilities, ab)
}

// growInPlace tries to expand a freshly 2x2 creature around its current
// cell. The four anchor candidates each keep the original cell inside the
// new body; the first fully free placement wins.
func growInPlace(team *game.Team, c *game.Creature) bool {
	cells := OccupiedCells(team, c)
	if len(cells) == 0 {
		return false
	}
	col, row := IndexToCoords(cells[0])
	for _, d := range [4][2]int{{0, 0}, {-1, 0}, {0, -1}, {-1, -1}} {
		aCol, aRow := col+d[0], row+d[1]
		if PlacementFree(team, aCol, aRow, game.Footprint2x2, c) {
			PlaceUnit(team, c, aCol, aRow)
			return true
		}
	}
	return false
}
