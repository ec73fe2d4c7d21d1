package game

import "testing"

func TestHeroCombatStats(t *testing.T) {
	h := &Hero{
		Intelligence: 10, Wisdom: 8, Charisma: 4, Battle: 5,
		BaseMeleeAttack: 3, BaseRangedAttack: 2, BaseMagicAttack: 2,
		BaseDefense: 2, BaseDodge: 1, BaseResistance: 1,
	}
	// battle_scale = 0.25 + 0.05*5 = 0.5: effective INT 5, WIS 4, CHA 2.
	stats := h.CombatStats()
	if stats.MeleeAttack != 5 || stats.RangedAttack != 4 || stats.MagicAttack != 3 {
		t.Fatalf("unexpected attack stats: %+v", stats)
	}
	if stats.Defense != 3 || stats.Dodge != 2 || stats.Resistance != 1 {
		t.Fatalf("unexpected defense stats: %+v", stats)
	}
}

func TestHeroEfficacyAndBuffs(t *testing.T) {
	h := &Hero{Wisdom: 9, Charisma: 8}
	if got := h.AllyDefenseBuff(); got != 2 {
		t.Fatalf("expected +2 from 9 WIS, got %d", got)
	}
	// +10% per 4 CHA: 50 * 1.2 = 60.
	if got := h.EffectiveEfficacy(50); got != 60 {
		t.Fatalf("expected efficacy 60, got %d", got)
	}
}

func TestCreatureHealthClamping(t *testing.T) {
	c := &Creature{ID: "c1", Name: "Wolf", MaxHealth: 10, CurrentHealth: 10}
	if removed := c.ApplyDamage(25); removed != 10 || c.CurrentHealth != 0 {
		t.Fatalf("expected health clamped at 0, removed=%d health=%d", removed, c.CurrentHealth)
	}
	if restored := c.Heal(99); restored != 10 || c.CurrentHealth != 10 {
		t.Fatalf("expected health clamped at max, restored=%d health=%d", restored, c.CurrentHealth)
	}
}

func TestSpendDebuffs(t *testing.T) {
	c := &Creature{ID: "c1", Name: "Wolf", MaxHealth: 10, CurrentHealth: 10}
	c.AddDebuff(DebuffWeakened)
	c.AddDebuff(DebuffWeakened)
	c.AddDebuff(DebuffBlinded)

	spent := c.SpendDebuffs()
	if len(spent) != 2 {
		t.Fatalf("expected both kinds spent once, got %v", spent)
	}
	if c.Debuffs[DebuffWeakened] != 1 {
		t.Fatalf("expected one weakened stack left, got %d", c.Debuffs[DebuffWeakened])
	}
	if _, ok := c.Debuffs[DebuffBlinded]; ok {
		t.Fatalf("expected the blinded stack removed entirely")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := &Creature{
		ID: "c1", Name: "Wolf", MaxHealth: 10, CurrentHealth: 10,
		Attacks:   []Attack{{Type: AttackMelee, Damage: 4}},
		Abilities: []Ability{{Kind: AbilityPackHunter}},
	}
	cp := c.Clone()
	if cp.ID == c.ID {
		t.Fatalf("clone must get a fresh unit id")
	}
	cp.Attacks[0].Damage = 99
	cp.AddDebuff(DebuffWeakened)
	if c.Attacks[0].Damage != 4 || len(c.Debuffs) != 0 {
		t.Fatalf("clone mutation leaked into the template")
	}
}

func TestAttackRangeBandDefault(t *testing.T) {
	a := Attack{Type: AttackRanged, Damage: 3}
	lo, hi := a.RangeBand()
	if lo != 1 || hi != 3 {
		t.Fatalf("expected default 1-3 band, got %d-%d", lo, hi)
	}
	b := Attack{Type: AttackRanged, Damage: 3, RangeMin: 2, RangeMax: 3}
	lo, hi = b.RangeBand()
	if lo != 2 || hi != 3 {
		t.Fatalf("expected explicit band kept, got %d-%d", lo, hi)
	}
}
