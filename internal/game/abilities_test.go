package game

import "testing"

func TestParseAbility(t *testing.T) {
	cases := []struct {
		tag   string
		kind  AbilityKind
		value int
	}{
		{"Flying", AbilityFlying, 0},
		{"Evasion 50%", AbilityEvasion, 50},
		{"Healing 3", AbilityHealing, 3},
		{"Shield Wall", AbilityShieldWall, 0},
		{"Pack Hunter", AbilityPackHunter, 0},
	}
	for _, tc := range cases {
		got := ParseAbility(tc.tag)
		if got.Kind != tc.kind || got.Value != tc.value {
			t.Fatalf("ParseAbility(%q) = %+v", tc.tag, got)
		}
	}
}

func TestAbilityStringRoundTrip(t *testing.T) {
	for _, tag := range []string{"Evasion 50%", "Healing 3", "Lifelink"} {
		if got := ParseAbility(tag).String(); got != tag {
			t.Fatalf("expected %q, got %q", tag, got)
		}
	}
}

func TestDebuffForAttackAbility(t *testing.T) {
	if d, ok := DebuffForAttackAbility(AttackWeakening); !ok || d != DebuffWeakened {
		t.Fatalf("expected weakened, got %s %v", d, ok)
	}
	if _, ok := DebuffForAttackAbility(AttackPiercing); ok {
		t.Fatalf("piercing must not map to a debuff")
	}
}
