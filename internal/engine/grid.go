package engine

import "github.com/milkshakeiii/cursesgame-sub000/internal/game"

// Square addresses one cell of a 3x3 team grid.
type Square struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// InBounds reports whether the square lies on the 3x3 grid.
func (s Square) InBounds() bool {
	return s.Col >= 0 && s.Col < 3 && s.Row >= 0 && s.Row < 3
}

// IndexToCoords converts a slot index (0-8) to (col, row).
func IndexToCoords(i int) (int, int) { return i % 3, i / 3 }

// CoordsToIndex converts (col, row) to a slot index.
func CoordsToIndex(col, row int) int { return row*3 + col }

// GlobalColumn maps a local column to the unified 0-5 column space used for
// ranged distance. Player columns map directly; enemy columns shift by 3.
// Never used for row addressing.
func GlobalColumn(playerSide bool, localCol int) int {
	if playerSide {
		return localCol
	}
	return 3 + localCol
}

// ColumnDistance is the absolute distance between two global columns.
func ColumnDistance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

var orthogonal = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// AdjacentSquares returns the in-bounds orthogonal neighbors of a square.
func AdjacentSquares(s Square) []Square {
	out := make([]Square, 0, 4)
	for _, d := range orthogonal {
		n := Square{Col: s.Col + d[0], Row: s.Row + d[1]}
		if n.InBounds() {
			out = append(out, n)
		}
	}
	return out
}

// OccupiedCells returns every slot index the unit occupies, in slot order.
func OccupiedCells(team *game.Team, u game.Unit) []int {
	cells := make([]int, 0, 4)
	for i, other := range team {
		if other != nil && other.GetID() == u.GetID() {
			cells = append(cells, i)
		}
	}
	return cells
}

// PlacementFree reports whether the square block of the given footprint with
// top-left (col, row) fits on the grid and every covered cell is empty or
// already occupied by self.
func PlacementFree(team *game.Team, col, row int, footprint game.Footprint, self game.Unit) bool {
	span := 1
	if footprint == game.Footprint2x2 {
		span = 2
	}
	if col < 0 || row < 0 || col+span > 3 || row+span > 3 {
		return false
	}
	for r := row; r < row+span; r++ {
		for c := col; c < col+span; c++ {
			u := team.At(c, r)
			if u != nil && (self == nil || u.GetID() != self.GetID()) {
				return false
			}
		}
	}
	return true
}

// PlaceUnit writes the unit into every cell of its footprint anchored at
// (col, row), returning any distinct units that were displaced. The caller is
// responsible for re-homing displaced units.
func PlaceUnit(team *game.Team, u game.Unit, col, row int) []game.Unit {
	span := 1
	if u.GetFootprint() == game.Footprint2x2 {
		span = 2
	}
	displaced := make([]game.Unit, 0, 2)
	seen := make(map[string]bool)
	for r := row; r < row+span; r++ {
		for c := col; c < col+span; c++ {
			prev := team.At(c, r)
			if prev != nil && prev.GetID() != u.GetID() && !seen[prev.GetID()] {
				seen[prev.GetID()] = true
				displaced = append(displaced, prev)
			}
		}
	}
	for _, d := range displaced {
		team.Remove(d)
	}
	team.Remove(u)
	for r := row; r < row+span; r++ {
		for c := col; c < col+span; c++ {
			team[CoordsToIndex(c, r)] = u
		}
	}
	return displaced
}

// MoveUnit shifts a unit one step by (dCol, dRow). The move succeeds only if
// every destination cell is in bounds and free (or part of the unit's current
// footprint) and the occupied cell set actually changes. Returns false on a
// blocked or no-op move, leaving the grid untouched.
func MoveUnit(team *game.Team, u game.Unit, dCol, dRow int) bool {
	cells := OccupiedCells(team, u)
	if len(cells) == 0 || (dCol == 0 && dRow == 0) {
		return false
	}
	dest := make([]int, 0, len(cells))
	for _, idx := range cells {
		col, row := IndexToCoords(idx)
		n := Square{Col: col + dCol, Row: row + dRow}
		if !n.InBounds() {
			return false
		}
		occupant := team.At(n.Col, n.Row)
		if occupant != nil && occupant.GetID() != u.GetID() {
			return false
		}
		dest = append(dest, CoordsToIndex(n.Col, n.Row))
	}
	for _, idx := range cells {
		team[idx] = nil
	}
	for _, idx := range dest {
		team[idx] = u
	}
	return true
}
