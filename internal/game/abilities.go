package game

import (
	"fmt"
	"strconv"
	"strings"
)

// AbilityKind identifies a unit-level passive ability.
// Using a dedicated type instead of plain string makes code safer and self-documenting.
type AbilityKind string

const (
	AbilityEvasion    AbilityKind = "Evasion"
	AbilityFlying     AbilityKind = "Flying"
	AbilityHaste      AbilityKind = "Haste"
	AbilityLifelink   AbilityKind = "Lifelink"
	AbilityHealing    AbilityKind = "Healing"
	AbilityGuardian   AbilityKind = "Guardian"
	AbilityProtector  AbilityKind = "Protector"
	AbilityShieldWall AbilityKind = "Shield Wall"
	AbilityPackHunter AbilityKind = "Pack Hunter"
)

// Ability is a parsed ability tag. Value carries the numeric parameter for
// parameterized kinds ("Evasion 50%" -> {Evasion, 50}, "Healing 3" ->
// {Healing, 3}) and is zero for the rest. Tags are parsed once at data-load
// time; unknown tags are preserved verbatim in Kind so future data degrades
// to "no bonus" instead of failing resolution.
type Ability struct {
	Kind  AbilityKind `json:"kind" yaml:"kind"`
	Value int         `json:"value,omitempty" yaml:"value,omitempty"`
}

// ParseAbility converts a free-form ability tag into its tagged form.
func ParseAbility(tag string) Ability {
	s := strings.TrimSpace(tag)
	if s == "" {
		return Ability{}
	}
	fields := strings.Fields(s)
	last := fields[len(fields)-1]
	if v, err := strconv.Atoi(strings.TrimSuffix(last, "%")); err == nil && len(fields) > 1 {
		return Ability{Kind: AbilityKind(strings.Join(fields[:len(fields)-1], " ")), Value: v}
	}
	return Ability{Kind: AbilityKind(s)}
}

// ParseAbilities parses a list of tags, dropping empty entries.
func ParseAbilities(tags []string) []Ability {
	out := make([]Ability, 0, len(tags))
	for _, t := range tags {
		if a := ParseAbility(t); a.Kind != "" {
			out = append(out, a)
		}
	}
	return out
}

func (a Ability) String() string {
	if a.Value == 0 {
		return string(a.Kind)
	}
	if a.Kind == AbilityEvasion {
		return fmt.Sprintf("%s %d%%", a.Kind, a.Value)
	}
	return fmt.Sprintf("%s %d", a.Kind, a.Value)
}

// AttackAbility identifies an ability attached to a single attack rather than
// to the wielding unit. It re-evaluates every time that attack connects.
type AttackAbility string

const (
	AttackPiercing  AttackAbility = "Piercing"
	AttackSplash    AttackAbility = "Splash"
	AttackWeakening AttackAbility = "Weakening"
	AttackDefanging AttackAbility = "Defanging"
	AttackBlinding  AttackAbility = "Blinding"
	AttackSilencing AttackAbility = "Silencing"
)

// Debuff identifies a stacking penalty kind on a unit. A missing key in a
// unit's debuff map means zero stacks.
type Debuff string

const (
	DebuffWeakened Debuff = "weakened"
	DebuffDefanged Debuff = "defanged"
	DebuffBlinded  Debuff = "blinded"
	DebuffSilenced Debuff = "silenced"
)

// DebuffForAttackAbility maps an attack rider to the debuff it imposes on the
// defender. The second return is false for non-debuff attack abilities.
func DebuffForAttackAbility(a AttackAbility) (Debuff, bool) {
	switch a {
	case AttackWeakening:
		return DebuffWeakened, true
	case AttackDefanging:
		return DebuffDefanged, true
	case AttackBlinding:
		return DebuffBlinded, true
	case AttackSilencing:
		return DebuffSilenced, true
	}
	return "", false
}
