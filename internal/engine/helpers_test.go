package engine

import (
	"fmt"

	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
)

var testIDSeq int

func testCreature(name string, health int, atks ...game.Attack) *game.Creature {
	testIDSeq++
	return &game.Creature{
		ID:            fmt.Sprintf("test-%s-%d", name, testIDSeq),
		Name:          name,
		Glyph:         "t",
		MaxHealth:     health,
		CurrentHealth: health,
		Attacks:       atks,
		Tier:          1,
	}
}

func placeAt(team *game.Team, u game.Unit, col, row int) {
	team[row*3+col] = u
}

func testEncounter() *game.Encounter {
	return &game.Encounter{ID: "test-encounter"}
}
