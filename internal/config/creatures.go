package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
)

type attackEntry struct {
	Type      string   `yaml:"type"`
	Damage    int      `yaml:"damage"`
	RangeMin  int      `yaml:"range_min"`
	RangeMax  int      `yaml:"range_max"`
	Abilities []string `yaml:"abilities"`
}

type tierBonusEntry struct {
	Tier    int `yaml:"tier"`
	Battles int `yaml:"battles"`

	MaxHealth          int `yaml:"max_health"`
	Defense            int `yaml:"defense"`
	Dodge              int `yaml:"dodge"`
	Resistance         int `yaml:"resistance"`
	ConversionEfficacy int `yaml:"conversion_efficacy"`

	MeleeDamage  int `yaml:"melee_damage"`
	RangedDamage int `yaml:"ranged_damage"`
	MagicDamage  int `yaml:"magic_damage"`

	NewAttack       *attackEntry        `yaml:"new_attack"`
	AttackAbilities map[string][]string `yaml:"attack_abilities"`
	Abilities       []string            `yaml:"abilities"`
	HealingBonus    int                 `yaml:"healing_bonus"`

	Size   string   `yaml:"size"`
	Glyphs []string `yaml:"glyphs"`
}

type creatureEntry struct {
	Name               string           `yaml:"name"`
	Glyph              string           `yaml:"glyph"`
	Color              [3]int           `yaml:"color"`
	Size               string           `yaml:"size"`
	Glyphs             []string         `yaml:"glyphs"`
	MaxHealth          int              `yaml:"max_health"`
	Defense            int              `yaml:"defense"`
	Dodge              int              `yaml:"dodge"`
	Resistance         int              `yaml:"resistance"`
	ConversionEfficacy int              `yaml:"conversion_efficacy"`
	Attacks            []attackEntry    `yaml:"attacks"`
	Abilities          []string         `yaml:"abilities"`
	BaseRequirement    int              `yaml:"base_requirement"`
	TierBonuses        []tierBonusEntry `yaml:"tier_bonuses"`
}

type rawRegistry struct {
	// biome -> terrain -> creatures; an empty terrain list marks safe ground.
	Biomes map[string]map[string][]creatureEntry `yaml:"biomes"`
	Bosses []creatureEntry                       `yaml:"bosses"`
}

var validAttackTypes = map[string]game.AttackType{
	"melee":  game.AttackMelee,
	"ranged": game.AttackRanged,
	"magic":  game.AttackMagic,
}

// LoadCreatures reads the creature registry YAML at path, validates it and
// builds the runtime registry.
func LoadCreatures(path string) (*game.Registry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read creature file %s: %w", path, err)
	}
	var rr rawRegistry
	if err := yaml.Unmarshal(b, &rr); err != nil {
		return nil, fmt.Errorf("failed to parse creature file %s: %w", path, err)
	}
	if len(rr.Biomes) == 0 {
		return nil, fmt.Errorf("creature file %s: no biomes defined", path)
	}

	nameSet := make(map[string]struct{})
	byTerrain := make(map[string]map[string][]*game.Creature, len(rr.Biomes))
	for biome, terrains := range rr.Biomes {
		byTerrain[biome] = make(map[string][]*game.Creature, len(terrains))
		for terrain, entries := range terrains {
			byTerrain[biome][terrain] = []*game.Creature{}
			for _, e := range entries {
				c, err := e.creature()
				if err != nil {
					return nil, fmt.Errorf("creature file %s: %w", path, err)
				}
				ln := strings.ToLower(c.Name)
				if _, exists := nameSet[ln]; exists {
					return nil, fmt.Errorf("creature file %s: duplicate creature name '%s'", path, c.Name)
				}
				nameSet[ln] = struct{}{}
				byTerrain[biome][terrain] = append(byTerrain[biome][terrain], c)
			}
		}
	}

	bosses := make([]*game.Creature, 0, len(rr.Bosses))
	for _, e := range rr.Bosses {
		c, err := e.creature()
		if err != nil {
			return nil, fmt.Errorf("creature file %s: %w", path, err)
		}
		ln := strings.ToLower(c.Name)
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("creature file %s: duplicate creature name '%s'", path, c.Name)
		}
		nameSet[ln] = struct{}{}
		bosses = append(bosses, c)
	}

	return game.NewRegistry(byTerrain, bosses), nil
}

func (e creatureEntry) creature() (*game.Creature, error) {
	if strings.TrimSpace(e.Name) == "" {
		return nil, fmt.Errorf("creature entry missing 'name'")
	}
	if e.MaxHealth <= 0 {
		return nil, fmt.Errorf("creature '%s': max_health must be positive", e.Name)
	}
	if len(e.Attacks) == 0 {
		return nil, fmt.Errorf("creature '%s': at least one attack is required", e.Name)
	}
	size := game.Footprint1x1
	if e.Size != "" {
		size = game.Footprint(e.Size)
		if size != game.Footprint1x1 && size != game.Footprint2x2 {
			return nil, fmt.Errorf("creature '%s': unknown size '%s'", e.Name, e.Size)
		}
	}
	attacks := make([]game.Attack, 0, len(e.Attacks))
	for _, a := range e.Attacks {
		atk, err := a.attack(e.Name)
		if err != nil {
			return nil, err
		}
		attacks = append(attacks, atk)
	}
	bonuses := make([]game.TierBonus, 0, len(e.TierBonuses))
	prev := 0
	for _, tb := range e.TierBonuses {
		if tb.Tier != prev+1 {
			return nil, fmt.Errorf("creature '%s': tier bonuses must be consecutive from 1, found tier %d", e.Name, tb.Tier)
		}
		prev = tb.Tier
		gb, err := tb.bonus(e.Name)
		if err != nil {
			return nil, err
		}
		bonuses = append(bonuses, gb)
	}
	if len(bonuses) > 0 && e.BaseRequirement == 0 {
		return nil, fmt.Errorf("creature '%s': tier bonuses defined but base_requirement is 0", e.Name)
	}
	return &game.Creature{
		Name:               e.Name,
		Glyph:              e.Glyph,
		Color:              e.Color,
		Size:               size,
		Glyphs:             e.Glyphs,
		MaxHealth:          e.MaxHealth,
		CurrentHealth:      e.MaxHealth,
		Defense:            e.Defense,
		Dodge:              e.Dodge,
		Resistance:         e.Resistance,
		ConversionEfficacy: e.ConversionEfficacy,
		Attacks:            attacks,
		Abilities:          game.ParseAbilities(e.Abilities),
		BaseRequirement:    e.BaseRequirement,
		TierBonuses:        bonuses,
	}, nil
}

func (a attackEntry) attack(owner string) (game.Attack, error) {
	t, ok := validAttackTypes[a.Type]
	if !ok {
		return game.Attack{}, fmt.Errorf("creature '%s': unknown attack type '%s'", owner, a.Type)
	}
	if a.Damage <= 0 {
		return game.Attack{}, fmt.Errorf("creature '%s': %s attack damage must be positive", owner, a.Type)
	}
	if a.RangeMin > a.RangeMax {
		return game.Attack{}, fmt.Errorf("creature '%s': %s attack range band %d-%d is inverted", owner, a.Type, a.RangeMin, a.RangeMax)
	}
	abilities := make([]game.AttackAbility, 0, len(a.Abilities))
	for _, s := range a.Abilities {
		abilities = append(abilities, game.AttackAbility(s))
	}
	return game.Attack{
		Type:      t,
		Damage:    a.Damage,
		RangeMin:  a.RangeMin,
		RangeMax:  a.RangeMax,
		Abilities: abilities,
	}, nil
}

func (tb tierBonusEntry) bonus(owner string) (game.TierBonus, error) {
	out := game.TierBonus{
		Tier:               tb.Tier,
		Battles:            tb.Battles,
		MaxHealth:          tb.MaxHealth,
		Defense:            tb.Defense,
		Dodge:              tb.Dodge,
		Resistance:         tb.Resistance,
		ConversionEfficacy: tb.ConversionEfficacy,
		MeleeDamage:        tb.MeleeDamage,
		RangedDamage:       tb.RangedDamage,
		MagicDamage:        tb.MagicDamage,
		Abilities:          game.ParseAbilities(tb.Abilities),
		HealingBonus:       tb.HealingBonus,
		Glyphs:             tb.Glyphs,
	}
	if tb.Battles <= 0 {
		return out, fmt.Errorf("creature '%s': tier %d bonus needs a positive 'battles'", owner, tb.Tier)
	}
	if tb.NewAttack != nil {
		atk, err := tb.NewAttack.attack(owner)
		if err != nil {
			return out, err
		}
		out.NewAttack = &atk
	}
	if len(tb.AttackAbilities) > 0 {
		out.AttackAbilities = make(map[game.AttackType][]game.AttackAbility, len(tb.AttackAbilities))
		for ts, abs := range tb.AttackAbilities {
			t, ok := validAttackTypes[ts]
			if !ok {
				return out, fmt.Errorf("creature '%s': tier %d grants abilities for unknown attack type '%s'", owner, tb.Tier, ts)
			}
			for _, s := range abs {
				out.AttackAbilities[t] = append(out.AttackAbilities[t], game.AttackAbility(s))
			}
		}
	}
	if tb.Size != "" {
		size := game.Footprint(tb.Size)
		if size != game.Footprint1x1 && size != game.Footprint2x2 {
			return out, fmt.Errorf("creature '%s': tier %d has unknown size '%s'", owner, tb.Tier, tb.Size)
		}
		out.Size = size
	}
	return out, nil
}
