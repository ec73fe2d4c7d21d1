package game

// TeamSlots is the number of cells in one side's 3x3 grid.
const TeamSlots = 9

// Team is one side's grid, addressed by row*3+col. A nil slot is empty; a
// 2x2 unit appears in all four slots it spans.
type Team [TeamSlots]Unit

// At returns the unit occupying (col, row), or nil.
func (t *Team) At(col, row int) Unit { return t[row*3+col] }

// IndexOf returns the first slot index holding the unit, or -1. Matching is
// by unit ID, so it stays valid across serialization.
func (t *Team) IndexOf(u Unit) int {
	if u == nil {
		return -1
	}
	for i, other := range t {
		if other != nil && other.GetID() == u.GetID() {
			return i
		}
	}
	return -1
}

// UniqueUnits returns each distinct unit once, in row-major slot order.
func (t *Team) UniqueUnits() []Unit {
	seen := make(map[string]bool, TeamSlots)
	units := make([]Unit, 0, TeamSlots)
	for _, u := range t {
		if u == nil || seen[u.GetID()] {
			continue
		}
		seen[u.GetID()] = true
		units = append(units, u)
	}
	return units
}

// Remove clears every slot the unit occupies.
func (t *Team) Remove(u Unit) {
	if u == nil {
		return
	}
	for i, other := range t {
		if other != nil && other.GetID() == u.GetID() {
			t[i] = nil
		}
	}
}

// Encounter is one battle between the player's team and an enemy team.
// Player local column 0 is the back rank and 2 the front; the enemy grid is
// mirrored, with local column 0 the front. The asymmetry only matters for
// ranged distance, via the global column transform.
type Encounter struct {
	ID         string   `json:"id"`
	PlayerTeam Team     `json:"-"`
	EnemyTeam  Team     `json:"-"`
	Log        []string `json:"log"`
}

// Team returns the grid for the requested side.
func (e *Encounter) Team(playerSide bool) *Team {
	if playerSide {
		return &e.PlayerTeam
	}
	return &e.EnemyTeam
}

// FindHero returns the hero on the player team, or nil.
func (e *Encounter) FindHero() *Hero {
	for _, u := range e.PlayerTeam {
		if h, ok := u.(*Hero); ok {
			return h
		}
	}
	return nil
}

// HasHaste reports whether any enemy unit carries Haste. The enemy side then
// acts first in the exchange; enforcing the ordering is the turn driver's
// job, not the engine's.
func (e *Encounter) HasHaste() bool {
	for _, u := range e.EnemyTeam.UniqueUnits() {
		if u.HasAbility(AbilityHaste) {
			return true
		}
	}
	return false
}
