package game

import (
	"math"

	"github.com/google/uuid"
)

// AttackType is one of the three attack categories. Each is mitigated by a
// different defense stat and targeted by different geometry.
type AttackType string

const (
	AttackMelee  AttackType = "melee"
	AttackRanged AttackType = "ranged"
	AttackMagic  AttackType = "magic"
)

// DefenseStat selects which mitigation stat an attack is resolved against.
type DefenseStat string

const (
	StatDefense    DefenseStat = "defense"
	StatDodge      DefenseStat = "dodge"
	StatResistance DefenseStat = "resistance"
)

// DefenseStatFor returns the stat that mitigates the given attack type.
func DefenseStatFor(t AttackType) DefenseStat {
	switch t {
	case AttackRanged:
		return StatDodge
	case AttackMagic:
		return StatResistance
	}
	return StatDefense
}

// Attack is one attack a unit can make. Damage is the base value before any
// modifier. RangeMin/RangeMax form the inclusive column-distance band for
// ranged attacks; both zero means the default 1-3 band.
type Attack struct {
	Type      AttackType      `json:"type" yaml:"type"`
	Damage    int             `json:"damage" yaml:"damage"`
	RangeMin  int             `json:"range_min,omitempty" yaml:"range_min,omitempty"`
	RangeMax  int             `json:"range_max,omitempty" yaml:"range_max,omitempty"`
	Abilities []AttackAbility `json:"abilities,omitempty" yaml:"abilities,omitempty"`
}

// RangeBand returns the effective inclusive range band for a ranged attack.
func (a Attack) RangeBand() (int, int) {
	if a.RangeMin == 0 && a.RangeMax == 0 {
		return 1, 3
	}
	return a.RangeMin, a.RangeMax
}

// HasAbility reports whether the attack carries the given rider.
func (a Attack) HasAbility(ab AttackAbility) bool {
	for _, x := range a.Abilities {
		if x == ab {
			return true
		}
	}
	return false
}

// Footprint is the number of grid cells a unit occupies.
type Footprint string

const (
	Footprint1x1 Footprint = "1x1"
	Footprint2x2 Footprint = "2x2"
)

// Unit is the capability surface shared by heroes and creatures. A unit with
// a 2x2 footprint is referenced from up to four grid cells; resolvers must
// dedupe by GetID, never by slot.
type Unit interface {
	GetID() string
	GetName() string
	GetGlyph() string
	GetFootprint() Footprint

	GetMaxHealth() int
	GetHealth() int
	// ApplyDamage reduces health by n (clamped at 0) and returns the amount
	// actually removed.
	ApplyDamage(n int) int
	// Heal raises health by n (clamped at max) and returns the amount
	// actually restored.
	Heal(n int) int

	// DefenseOf returns the unit's own value for a mitigation stat, before
	// team bonuses. For heroes this is the attribute-derived stat.
	DefenseOf(stat DefenseStat) int

	GetAttacks() []Attack
	GetAbilities() []Ability
	HasAbility(kind AbilityKind) bool
	// AbilityValue returns the numeric parameter of a parameterized ability
	// and whether the unit has it.
	AbilityValue(kind AbilityKind) (int, bool)

	GetDebuffs() map[Debuff]int
	AddDebuff(d Debuff)
	// SpendDebuffs removes one stack of every active debuff kind and returns
	// the kinds that were reduced. Called when the unit performs an attack.
	SpendDebuffs() []Debuff

	IsHero() bool
}

// TierBonus is one declarative progression step for a creature: the deltas
// applied when the creature reaches Tier after Battles completed encounters.
type TierBonus struct {
	Tier    int `json:"tier" yaml:"tier"`
	Battles int `json:"battles" yaml:"battles"`

	MaxHealth          int `json:"max_health,omitempty" yaml:"max_health,omitempty"`
	Defense            int `json:"defense,omitempty" yaml:"defense,omitempty"`
	Dodge              int `json:"dodge,omitempty" yaml:"dodge,omitempty"`
	Resistance         int `json:"resistance,omitempty" yaml:"resistance,omitempty"`
	ConversionEfficacy int `json:"conversion_efficacy,omitempty" yaml:"conversion_efficacy,omitempty"`

	MeleeDamage  int `json:"melee_damage,omitempty" yaml:"melee_damage,omitempty"`
	RangedDamage int `json:"ranged_damage,omitempty" yaml:"ranged_damage,omitempty"`
	MagicDamage  int `json:"magic_damage,omitempty" yaml:"magic_damage,omitempty"`

	NewAttack       *Attack                        `json:"new_attack,omitempty" yaml:"new_attack,omitempty"`
	AttackAbilities map[AttackType][]AttackAbility `json:"attack_abilities,omitempty" yaml:"attack_abilities,omitempty"`
	Abilities       []Ability                      `json:"abilities,omitempty" yaml:"abilities,omitempty"`
	HealingBonus    int                            `json:"healing_bonus,omitempty" yaml:"healing_bonus,omitempty"`

	Size   Footprint `json:"size,omitempty" yaml:"size,omitempty"`
	Glyphs []string  `json:"glyphs,omitempty" yaml:"glyphs,omitempty"`
}

// Creature is a tameable combatant. Instances are spawned from registry
// templates by deep copy; persistent progression state survives encounters
// through CreatureRecord.
type Creature struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Glyph  string    `json:"glyph"`
	Color  [3]int    `json:"color"`
	Size   Footprint `json:"size"`
	Glyphs []string  `json:"glyphs,omitempty"`

	MaxHealth     int `json:"max_health"`
	CurrentHealth int `json:"current_health"`
	Defense       int `json:"defense"`
	Dodge         int `json:"dodge"`
	Resistance    int `json:"resistance"`

	ConversionEfficacy int `json:"conversion_efficacy"`
	ConversionProgress int `json:"conversion_progress"`

	Attacks   []Attack       `json:"attacks"`
	Abilities []Ability      `json:"abilities"`
	Debuffs   map[Debuff]int `json:"debuffs,omitempty"`

	Tier             int         `json:"tier"`
	BattlesCompleted int         `json:"battles_completed"`
	BaseRequirement  int         `json:"base_requirement"`
	TierBonuses      []TierBonus `json:"tier_bonuses,omitempty"`
}

func (c *Creature) GetID() string    { return c.ID }
func (c *Creature) GetName() string  { return c.Name }
func (c *Creature) GetGlyph() string { return c.Glyph }

func (c *Creature) GetFootprint() Footprint {
	if c.Size == "" {
		return Footprint1x1
	}
	return c.Size
}

func (c *Creature) GetMaxHealth() int { return c.MaxHealth }
func (c *Creature) GetHealth() int    { return c.CurrentHealth }

func (c *Creature) ApplyDamage(n int) int {
	if n < 0 {
		n = 0
	}
	before := c.CurrentHealth
	c.CurrentHealth -= n
	if c.CurrentHealth < 0 {
		c.CurrentHealth = 0
	}
	return before - c.CurrentHealth
}

func (c *Creature) Heal(n int) int {
	if n < 0 {
		n = 0
	}
	before := c.CurrentHealth
	c.CurrentHealth += n
	if c.CurrentHealth > c.MaxHealth {
		c.CurrentHealth = c.MaxHealth
	}
	return c.CurrentHealth - before
}

func (c *Creature) DefenseOf(stat DefenseStat) int {
	switch stat {
	case StatDodge:
		return c.Dodge
	case StatResistance:
		return c.Resistance
	}
	return c.Defense
}

func (c *Creature) GetAttacks() []Attack    { return c.Attacks }
func (c *Creature) GetAbilities() []Ability { return c.Abilities }

func (c *Creature) HasAbility(kind AbilityKind) bool {
	_, ok := hasAbility(c.Abilities, kind)
	return ok
}

func (c *Creature) AbilityValue(kind AbilityKind) (int, bool) {
	return hasAbility(c.Abilities, kind)
}

func (c *Creature) GetDebuffs() map[Debuff]int { return c.Debuffs }

func (c *Creature) AddDebuff(d Debuff) {
	if c.Debuffs == nil {
		c.Debuffs = make(map[Debuff]int)
	}
	c.Debuffs[d]++
}

func (c *Creature) SpendDebuffs() []Debuff { return spendDebuffs(c.Debuffs) }

func (c *Creature) IsHero() bool { return false }

// Clone returns an independent deep copy with a fresh unit ID.
func (c *Creature) Clone() *Creature {
	cp := *c
	cp.ID = uuid.NewString()
	cp.Glyphs = append([]string(nil), c.Glyphs...)
	cp.Attacks = cloneAttacks(c.Attacks)
	cp.Abilities = append([]Ability(nil), c.Abilities...)
	if c.Debuffs != nil {
		cp.Debuffs = make(map[Debuff]int, len(c.Debuffs))
		for k, v := range c.Debuffs {
			cp.Debuffs[k] = v
		}
	}
	cp.TierBonuses = cloneTierBonuses(c.TierBonuses)
	return &cp
}

func cloneAttacks(in []Attack) []Attack {
	out := make([]Attack, len(in))
	for i, a := range in {
		out[i] = a
		out[i].Abilities = append([]AttackAbility(nil), a.Abilities...)
	}
	return out
}

func cloneTierBonuses(in []TierBonus) []TierBonus {
	out := make([]TierBonus, len(in))
	for i, tb := range in {
		out[i] = tb
		out[i].Glyphs = append([]string(nil), tb.Glyphs...)
		out[i].Abilities = append([]Ability(nil), tb.Abilities...)
		if tb.NewAttack != nil {
			na := *tb.NewAttack
			na.Abilities = append([]AttackAbility(nil), tb.NewAttack.Abilities...)
			out[i].NewAttack = &na
		}
		if tb.AttackAbilities != nil {
			m := make(map[AttackType][]AttackAbility, len(tb.AttackAbilities))
			for k, v := range tb.AttackAbilities {
				m[k] = append([]AttackAbility(nil), v...)
			}
			out[i].AttackAbilities = m
		}
	}
	return out
}

// Hero is the player character. Combat stats are derived from attributes,
// never stored: battle_scale = 0.25 + 0.05*Battle, and each attribute maps to
// an attack/defense stat pair (INT -> ranged/dodge, WIS -> melee/defense,
// CHA -> magic/resistance).
type Hero struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Glyph string `json:"glyph"`
	Color [3]int `json:"color"`

	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
	Battle       int `json:"battle"`

	BaseMeleeAttack  int `json:"base_melee_attack"`
	BaseRangedAttack int `json:"base_ranged_attack"`
	BaseMagicAttack  int `json:"base_magic_attack"`
	BaseDefense      int `json:"base_defense"`
	BaseDodge        int `json:"base_dodge"`
	BaseResistance   int `json:"base_resistance"`

	MaxHealth     int `json:"max_health"`
	CurrentHealth int `json:"current_health"`

	Abilities []Ability      `json:"abilities,omitempty"`
	Debuffs   map[Debuff]int `json:"debuffs,omitempty"`
}

// HeroStats holds the hero's derived effective combat stats.
type HeroStats struct {
	MeleeAttack  int `json:"melee_attack"`
	RangedAttack int `json:"ranged_attack"`
	MagicAttack  int `json:"magic_attack"`
	Defense      int `json:"defense"`
	Dodge        int `json:"dodge"`
	Resistance   int `json:"resistance"`
}

// CombatStats derives the hero's effective combat stats from attributes.
func (h *Hero) CombatStats() HeroStats {
	scale := 0.25 + 0.05*float64(h.Battle)
	effective := func(attr int) int {
		return int(math.Floor(float64(attr) * scale))
	}
	return HeroStats{
		MeleeAttack:  h.BaseMeleeAttack + effective(h.Wisdom)/2,
		RangedAttack: h.BaseRangedAttack + effective(h.Intelligence)/2,
		MagicAttack:  h.BaseMagicAttack + effective(h.Charisma)/2,
		Defense:      h.BaseDefense + effective(h.Wisdom)/3,
		Dodge:        h.BaseDodge + effective(h.Intelligence)/3,
		Resistance:   h.BaseResistance + effective(h.Charisma)/3,
	}
}

// AllyDefenseBuff is the flat defense/dodge/resistance bonus the hero grants
// to every non-hero ally (+1 per 4 WIS).
func (h *Hero) AllyDefenseBuff() int { return h.Wisdom / 4 }

// EffectiveEfficacy applies the hero's multiplicative CHA bonus (+10% per
// 4 CHA) to a creature's base conversion efficacy.
func (h *Hero) EffectiveEfficacy(baseEfficacy int) int {
	mult := 1.0 + 0.10*float64(h.Charisma/4)
	return int(math.Floor(float64(baseEfficacy) * mult))
}

func (h *Hero) GetID() string           { return h.ID }
func (h *Hero) GetName() string         { return h.Name }
func (h *Hero) GetGlyph() string        { return h.Glyph }
func (h *Hero) GetFootprint() Footprint { return Footprint1x1 }

func (h *Hero) GetMaxHealth() int { return h.MaxHealth }
func (h *Hero) GetHealth() int    { return h.CurrentHealth }

func (h *Hero) ApplyDamage(n int) int {
	if n < 0 {
		n = 0
	}
	before := h.CurrentHealth
	h.CurrentHealth -= n
	if h.CurrentHealth < 0 {
		h.CurrentHealth = 0
	}
	return before - h.CurrentHealth
}

func (h *Hero) Heal(n int) int {
	if n < 0 {
		n = 0
	}
	before := h.CurrentHealth
	h.CurrentHealth += n
	if h.CurrentHealth > h.MaxHealth {
		h.CurrentHealth = h.MaxHealth
	}
	return h.CurrentHealth - before
}

func (h *Hero) DefenseOf(stat DefenseStat) int {
	stats := h.CombatStats()
	switch stat {
	case StatDodge:
		return stats.Dodge
	case StatResistance:
		return stats.Resistance
	}
	return stats.Defense
}

// GetAttacks synthesizes the hero's three attacks from derived stats. The
// ranged attack uses a fixed 2-3 band.
func (h *Hero) GetAttacks() []Attack {
	stats := h.CombatStats()
	return []Attack{
		{Type: AttackMelee, Damage: stats.MeleeAttack},
		{Type: AttackRanged, Damage: stats.RangedAttack, RangeMin: 2, RangeMax: 3},
		{Type: AttackMagic, Damage: stats.MagicAttack},
	}
}

func (h *Hero) GetAbilities() []Ability { return h.Abilities }

func (h *Hero) HasAbility(kind AbilityKind) bool {
	_, ok := hasAbility(h.Abilities, kind)
	return ok
}

func (h *Hero) AbilityValue(kind AbilityKind) (int, bool) {
	return hasAbility(h.Abilities, kind)
}

func (h *Hero) GetDebuffs() map[Debuff]int { return h.Debuffs }

func (h *Hero) AddDebuff(d Debuff) {
	if h.Debuffs == nil {
		h.Debuffs = make(map[Debuff]int)
	}
	h.Debuffs[d]++
}

func (h *Hero) SpendDebuffs() []Debuff { return spendDebuffs(h.Debuffs) }

func (h *Hero) IsHero() bool { return true }

func hasAbility(abilities []Ability, kind AbilityKind) (int, bool) {
	for _, a := range abilities {
		if a.Kind == kind {
			return a.Value, true
		}
	}
	return 0, false
}

func spendDebuffs(debuffs map[Debuff]int) []Debuff {
	spent := make([]Debuff, 0, len(debuffs))
	for kind := range debuffs {
		debuffs[kind]--
		spent = append(spent, kind)
		if debuffs[kind] <= 0 {
			delete(debuffs, kind)
		}
	}
	return spent
}
