package engine

import (
	"fmt"
	"math/rand"

	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
)

// UnitRef addresses one slot of one side's grid.
type UnitRef struct {
	PlayerSide bool `json:"player_side"`
	Index      int  `json:"index"`
}

// Strike is one struck unit with the damage it took. Damage 0 covers misses
// that still connected (Flying immunity, zeroed-out attacks, evasion).
type Strike struct {
	Unit   game.Unit `json:"-"`
	UnitID string    `json:"unit_id"`
	Col    int       `json:"col"`
	Row    int       `json:"row"`
	Damage int       `json:"damage"`
	Evaded bool      `json:"evaded,omitempty"`
}

// Heal is one healed unit with the amount actually restored.
type Heal struct {
	Unit   game.Unit `json:"-"`
	UnitID string    `json:"unit_id"`
	Amount int       `json:"amount"`
}

// AttackResult reports everything one resolved attack did.
type AttackResult struct {
	Struck []Strike `json:"struck"`
	Healed []Heal   `json:"healed,omitempty"`
	Log    []string `json:"log"`
}

// ConvertResult reports one conversion attempt. Converted is non-nil when the
// defender's progress reached 100 and it left the enemy grid.
type ConvertResult struct {
	Progress  int            `json:"progress"`
	Converted *game.Creature `json:"-"`
	Log       []string       `json:"log"`
}

// --- Battle context ----------------------------------------------------

type battleContext struct {
	enc  *game.Encounter
	hero *game.Hero
	rng  *rand.Rand
	log  []string
}

func newBattleContext(enc *game.Encounter, hero *game.Hero, rng *rand.Rand) *battleContext {
	return &battleContext{enc: enc, hero: hero, rng: rng, log: make([]string, 0, 16)}
}

func (bc *battleContext) addf(format string, args ...interface{}) {
	bc.log = append(bc.log, fmt.Sprintf(format, args...))
}

// ResolveAttack resolves one unit's attack against a declared square and
// applies every result to encounter state. Illegal declarations (blocked
// melee, out-of-band ranged, missing attacker) return an empty struck list.
func ResolveAttack(enc *game.Encounter, hero *game.Hero, rng *rand.Rand, attacker UnitRef, atk game.Attack, declared Square) AttackResult {
	bc := newBattleContext(enc, hero, rng)
	res := bc.resolveAttack(attacker, atk, declared)
	enc.Log = append(enc.Log, res.Log...)
	return res
}

func (bc *battleContext) resolveAttack(ref UnitRef, atk game.Attack, declared Square) AttackResult {
	bc.log = bc.log[:0]
	team := bc.enc.Team(ref.PlayerSide)
	if ref.Index < 0 || ref.Index >= game.TeamSlots || team[ref.Index] == nil {
		return AttackResult{}
	}
	attacker := team[ref.Index]

	targets := AttackTargets(bc.enc, ref.PlayerSide, ref.Index, atk, declared)
	if len(targets) == 0 {
		return AttackResult{Log: append([]string(nil), bc.log...)}
	}

	struck := make([]Strike, 0, len(targets))
	healed := make([]Heal, 0, 2)
	for _, tgt := range targets {
		struck = append(struck, bc.strike(ref.PlayerSide, attacker, atk, tgt))
	}

	// Healing triggers only on the attacker's own magic attacks, healing
	// every ally sharing the attacker's column (self included).
	if atk.Type == game.AttackMagic {
		healed = append(healed, bc.columnHeal(ref.PlayerSide, attacker)...)
	}

	// Performing an attack spends one stack of every active debuff kind on
	// the attacker, never on the defender.
	for _, kind := range attacker.SpendDebuffs() {
		bc.addf("%s shakes off one %s stack", attacker.GetName(), kind)
	}

	bc.sweepDefeated(!ref.PlayerSide)

	return AttackResult{Struck: struck, Healed: healed, Log: append([]string(nil), bc.log...)}
}

// strike applies one attack to one defender and returns the record.
func (bc *battleContext) strike(attackerPlayerSide bool, attacker game.Unit, atk game.Attack, tgt Target) Strike {
	defender := tgt.Unit
	rec := Strike{Unit: defender, UnitID: defender.GetID(), Col: tgt.Col, Row: tgt.Row}

	if RollEvasion(bc.rng, defender) {
		rec.Evaded = true
		bc.addf("%s evades %s's %s attack", defender.GetName(), attacker.GetName(), atk.Type)
	} else {
		attackerTeam := bc.enc.Team(attackerPlayerSide)
		effDamage := EffectiveAttackDamage(attackerTeam, attacker, atk)
		effDefense := EffectiveDefense(bc.enc, bc.hero, !attackerPlayerSide, defender, game.DefenseStatFor(atk.Type))
		flying := defender.HasAbility(game.AbilityFlying)

		dmg := ResolveDamage(atk, effDamage, attacker.GetDebuffs(), flying, effDefense)
		applied := defender.ApplyDamage(dmg)
		rec.Damage = applied

		switch {
		case atk.Type == game.AttackMelee && flying:
			bc.addf("%s is flying; %s's melee attack deals no damage", defender.GetName(), attacker.GetName())
		case applied == 0:
			bc.addf("%s's %s attack fizzles against %s", attacker.GetName(), atk.Type, defender.GetName())
		default:
			bc.addf("%s hits %s for %d %s damage", attacker.GetName(), defender.GetName(), applied, atk.Type)
		}

		if applied > 0 && attacker.HasAbility(game.AbilityLifelink) {
			if restored := attacker.Heal(applied); restored > 0 {
				bc.addf("%s drains %d health", attacker.GetName(), restored)
			}
		}
	}

	// Attack riders land whenever the attack connects, damage or not.
	for _, ab := range atk.Abilities {
		if d, ok := game.DebuffForAttackAbility(ab); ok {
			defender.AddDebuff(d)
			bc.addf("%s is %s", defender.GetName(), d)
		}
	}
	return rec
}

// columnHeal applies the attacker's Healing ability down its own column.
func (bc *battleContext) columnHeal(attackerPlayerSide bool, attacker game.Unit) []Heal {
	amount := HealingAmount(attacker)
	if amount == 0 {
		return nil
	}
	team := bc.enc.Team(attackerPlayerSide)
	idx := team.IndexOf(attacker)
	if idx < 0 {
		return nil
	}
	col := idx % 3

	healed := make([]Heal, 0, 3)
	seen := make(map[string]bool, 3)
	for row := 0; row < 3; row++ {
		ally := team.At(col, row)
		if ally == nil || seen[ally.GetID()] {
			continue
		}
		seen[ally.GetID()] = true
		if restored := ally.Heal(amount); restored > 0 {
			healed = append(healed, Heal{Unit: ally, UnitID: ally.GetID(), Amount: restored})
			bc.addf("%s heals %s for %d", attacker.GetName(), ally.GetName(), restored)
		}
	}
	return healed
}

// sweepDefeated removes units at zero health from every slot they occupy.
func (bc *battleContext) sweepDefeated(playerSide bool) {
	team := bc.enc.Team(playerSide)
	for _, u := range team.UniqueUnits() {
		if u.GetHealth() <= 0 {
			team.Remove(u)
			bc.addf("%s is defeated", u.GetName())
		}
	}
}

// ResolveTeamAttack drives every unique unit on the acting side against the
// declared square, each with its strongest legal attack, in row-major slot
// order. Units with no legal attack contribute an empty result.
func ResolveTeamAttack(enc *game.Encounter, hero *game.Hero, rng *rand.Rand, playerSide bool, declared Square) []AttackResult {
	results := make([]AttackResult, 0, game.TeamSlots)
	for _, u := range enc.Team(playerSide).UniqueUnits() {
		idx := enc.Team(playerSide).IndexOf(u)
		if idx < 0 {
			continue // already removed by an earlier defeat sweep
		}
		atk, ok := bestAttackAgainst(enc, hero, playerSide, idx, declared)
		if !ok {
			continue
		}
		results = append(results, ResolveAttack(enc, hero, rng, UnitRef{PlayerSide: playerSide, Index: idx}, atk, declared))
	}
	return results
}

// bestAttackAgainst picks the unit's highest-estimated-damage attack able to
// strike the declared square. A 2x2 unit is considered from each cell it
// occupies, covering both rows for melee eligibility.
func bestAttackAgainst(enc *game.Encounter, hero *game.Hero, playerSide bool, slotIdx int, declared Square) (game.Attack, bool) {
	team := enc.Team(playerSide)
	u := team[slotIdx]
	if u == nil {
		return game.Attack{}, false
	}
	best := game.Attack{}
	bestDmg := -1
	for _, cell := range OccupiedCells(team, u) {
		for _, atk := range u.GetAttacks() {
			total := estimateAttackDamage(enc, hero, playerSide, cell, u, atk, declared)
			if total < 0 {
				continue
			}
			if total > bestDmg {
				best = atk
				bestDmg = total
			}
		}
	}
	return best, bestDmg >= 0
}

// estimateAttackDamage predicts the total damage of one attack declared at a
// square, with no randomness (evasion is ignored). Returns -1 when the
// attack cannot strike anything from that cell.
func estimateAttackDamage(enc *game.Encounter, hero *game.Hero, attackerPlayerSide bool, attackerIdx int, attacker game.Unit, atk game.Attack, declared Square) int {
	targets := AttackTargets(enc, attackerPlayerSide, attackerIdx, atk, declared)
	if len(targets) == 0 {
		return -1
	}
	attackerTeam := enc.Team(attackerPlayerSide)
	effDamage := EffectiveAttackDamage(attackerTeam, attacker, atk)
	total := 0
	for _, tgt := range targets {
		effDefense := EffectiveDefense(enc, hero, !attackerPlayerSide, tgt.Unit, game.DefenseStatFor(atk.Type))
		total += ResolveDamage(atk, effDamage, attacker.GetDebuffs(), tgt.Unit.HasAbility(game.AbilityFlying), effDefense)
	}
	return total
}

// ResolveConvert resolves one creature's conversion attempt against the
// defender at the declared square. The attack must be able to strike the
// declared square; only the unit standing there accumulates progress.
// Conversion never targets a hero, and heroes never convert.
func ResolveConvert(enc *game.Encounter, hero *game.Hero, rng *rand.Rand, attacker UnitRef, atk game.Attack, declared Square) ConvertResult {
	bc := newBattleContext(enc, hero, rng)
	res := bc.resolveConvert(attacker, atk, declared)
	enc.Log = append(enc.Log, res.Log...)
	return res
}

func (bc *battleContext) resolveConvert(ref UnitRef, atk game.Attack, declared Square) ConvertResult {
	bc.log = bc.log[:0]
	team := bc.enc.Team(ref.PlayerSide)
	if ref.Index < 0 || ref.Index >= game.TeamSlots || team[ref.Index] == nil {
		return ConvertResult{}
	}
	attacker, ok := team[ref.Index].(*game.Creature)
	if !ok || attacker.ConversionEfficacy <= 0 {
		return ConvertResult{}
	}

	var defender *game.Creature
	for _, tgt := range AttackTargets(bc.enc, ref.PlayerSide, ref.Index, atk, declared) {
		if tgt.Col != declared.Col || tgt.Row != declared.Row {
			continue
		}
		c, ok := tgt.Unit.(*game.Creature)
		if !ok {
			return ConvertResult{} // heroes cannot be converted
		}
		defender = c
		break
	}
	if defender == nil {
		return ConvertResult{Log: append([]string(nil), bc.log...)}
	}

	efficacy := attacker.ConversionEfficacy
	if bc.hero != nil {
		efficacy = bc.hero.EffectiveEfficacy(efficacy)
	}
	attackerTeam := bc.enc.Team(ref.PlayerSide)
	points := ConversionPoints(EffectiveAttackDamage(attackerTeam, attacker, atk), efficacy, defender)

	defender.ConversionProgress += points
	bc.addf("%s sways %s: +%d conversion (%d/100)", attacker.GetName(), defender.GetName(), points, defender.ConversionProgress)

	res := ConvertResult{Progress: points}
	if defender.ConversionProgress >= 100 {
		bc.enc.Team(!ref.PlayerSide).Remove(defender)
		defender.ConversionProgress = 0
		defender.Debuffs = nil
		res.Converted = defender
		bc.addf("%s is converted and joins the roster", defender.GetName())
	}
	res.Log = append([]string(nil), bc.log...)
	return res
}

// ResolveTeamConvert drives every player-side creature able to legally reach
// the declared square. The hero never contributes. Returns the per-unit
// results plus any creatures whose progress completed.
func ResolveTeamConvert(enc *game.Encounter, hero *game.Hero, rng *rand.Rand, declared Square) ([]ConvertResult, []*game.Creature) {
	results := make([]ConvertResult, 0, game.TeamSlots)
	converted := make([]*game.Creature, 0, 1)
	for _, u := range enc.PlayerTeam.UniqueUnits() {
		c, ok := u.(*game.Creature)
		if !ok || c.ConversionEfficacy <= 0 {
			continue
		}
		idx := enc.PlayerTeam.IndexOf(u)
		if idx < 0 {
			continue
		}
		atk, ok := bestAttackAgainst(enc, hero, true, idx, declared)
		if !ok {
			continue
		}
		res := ResolveConvert(enc, hero, rng, UnitRef{PlayerSide: true, Index: idx}, atk, declared)
		results = append(results, res)
		if res.Converted != nil {
			converted = append(converted, res.Converted)
			break // the defender left the grid; nothing further to convert there
		}
	}
	return results, converted
}
