package service

import (
	"math/rand"
	"testing"

	"github.com/milkshakeiii/cursesgame-sub000/internal/engine"
	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
	"github.com/milkshakeiii/cursesgame-sub000/internal/storage"
)

type mockRepo struct {
	heroes    map[string]*game.HeroRecord
	rosters   map[uint][]game.CreatureRecord
	saved     []*game.CreatureRecord
	heroSaved bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		heroes:  make(map[string]*game.HeroRecord),
		rosters: make(map[uint][]game.CreatureRecord),
	}
}

func (m *mockRepo) CreateHero(h *game.HeroRecord) error {
	h.ID = uint(len(m.heroes) + 1)
	m.heroes[h.HeroUUID] = h
	return nil
}

func (m *mockRepo) GetHeroByUUID(uuid string) (*game.HeroRecord, error) {
	if h, ok := m.heroes[uuid]; ok {
		return h, nil
	}
	return nil, storage.ErrNotFound
}

func (m *mockRepo) UpdateHero(h *game.HeroRecord) error {
	m.heroSaved = true
	m.heroes[h.HeroUUID] = h
	return nil
}

func (m *mockRepo) GetRoster(heroID uint) ([]game.CreatureRecord, error) {
	return m.rosters[heroID], nil
}

func (m *mockRepo) GetCreatureByUUID(uuid string) (*game.CreatureRecord, error) {
	for i := range m.saved {
		if m.saved[i].UnitUUID == uuid {
			return m.saved[i], nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *mockRepo) SaveCreature(c *game.CreatureRecord) error {
	m.saved = append(m.saved, c)
	return nil
}

func (m *mockRepo) DeleteCreature(uuid string) error { return nil }

func testRegistry() *game.Registry {
	imp := &game.Creature{
		Name: "Imp", Glyph: "i",
		MaxHealth: 3, CurrentHealth: 3,
		ConversionEfficacy: 30,
		Attacks:            []game.Attack{{Type: game.AttackMelee, Damage: 2}},
	}
	return game.NewRegistry(map[string]map[string][]*game.Creature{
		"cavern": {"dirt": {imp}},
	}, nil)
}

func seedHero(t *testing.T, repo *mockRepo) *game.HeroRecord {
	t.Helper()
	rec, err := CreateHero(repo, CreateHeroRequest{Name: "Tess"})
	if err != nil {
		t.Fatalf("create hero: %v", err)
	}
	return rec
}

func TestCreateEncounter_PlacesBothTeams(t *testing.T) {
	repo := newMockRepo()
	rec := seedHero(t, repo)
	store := NewEncounterStore()

	id, sess, err := CreateEncounter(repo, testRegistry(), store, rand.New(rand.NewSource(1)), CreateEncounterRequest{
		HeroUUID: rec.HeroUUID, Creatures: []string{"Imp"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatalf("expected an encounter id")
	}
	if sess.Enc.FindHero() == nil {
		t.Fatalf("expected the hero on the player grid")
	}
	if got := len(sess.Enc.EnemyTeam.UniqueUnits()); got != 1 {
		t.Fatalf("expected 1 enemy, got %d", got)
	}
}

func TestCreateEncounter_UnknownHero(t *testing.T) {
	store := NewEncounterStore()
	_, _, err := CreateEncounter(newMockRepo(), testRegistry(), store, rand.New(rand.NewSource(1)), CreateEncounterRequest{
		HeroUUID: "missing", Creatures: []string{"Imp"},
	})
	if err != ErrHeroNotFound {
		t.Fatalf("expected ErrHeroNotFound, got %v", err)
	}
}

func TestPlayerAttack_WinsAndPersistsProgress(t *testing.T) {
	repo := newMockRepo()
	rec := seedHero(t, repo)
	store := NewEncounterStore()
	id, _, err := CreateEncounter(repo, testRegistry(), store, rand.New(rand.NewSource(1)), CreateEncounterRequest{
		HeroUUID: rec.HeroUUID, Creatures: []string{"Imp"},
	})
	if err != nil {
		t.Fatalf("create encounter: %v", err)
	}

	// The hero's melee attack kills the 3-health enemy outright.
	res, err := store.PlayerAttack(id, engine.Square{Col: 1, Row: 1})
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if !res.Over || !res.Victory {
		t.Fatalf("expected a victory, got %+v", res)
	}

	end, err := store.EndBattle(repo, id)
	if err != nil {
		t.Fatalf("end battle: %v", err)
	}
	if !end.Victory {
		t.Fatalf("expected a victorious end")
	}
	if !repo.heroSaved || repo.heroes[rec.HeroUUID].Battle != 1 {
		t.Fatalf("expected the hero battle count persisted")
	}
	if _, err := store.PlayerAttack(id, engine.Square{Col: 1, Row: 1}); err != ErrEncounterNotFound {
		t.Fatalf("expected the session removed, got %v", err)
	}
}

func TestPlayerConvert_RecruitSavedOnVictory(t *testing.T) {
	repo := newMockRepo()
	rec := seedHero(t, repo)
	ox := &game.Creature{
		ID: "ox-1", Name: "Ox", Glyph: "o",
		MaxHealth: 20, CurrentHealth: 20,
		ConversionEfficacy: 100,
		Attacks:            []game.Attack{{Type: game.AttackMelee, Damage: 100}},
	}
	oxRec, err := game.NewCreatureRecord(ox, rec.ID)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	repo.rosters[rec.ID] = []game.CreatureRecord{*oxRec}

	store := NewEncounterStore()
	id, _, err := CreateEncounter(repo, testRegistry(), store, rand.New(rand.NewSource(1)), CreateEncounterRequest{
		HeroUUID: rec.HeroUUID, Creatures: []string{"Imp"},
	})
	if err != nil {
		t.Fatalf("create encounter: %v", err)
	}

	// 100 damage at 100 efficacy converts the enemy in one declaration.
	res, err := store.PlayerConvert(id, engine.Square{Col: 1, Row: 1})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !res.Over || !res.Victory {
		t.Fatalf("expected conversion to clear the enemy grid, got %+v", res)
	}

	end, err := store.EndBattle(repo, id)
	if err != nil {
		t.Fatalf("end battle: %v", err)
	}
	if len(end.Recruited) != 1 || end.Recruited[0] != "Imp" {
		t.Fatalf("expected the Imp recruited, got %v", end.Recruited)
	}
	found := false
	for _, c := range repo.saved {
		if c.Name == "Imp" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the recruit persisted")
	}
}

func TestEndBattle_DefeatPersistsNothing(t *testing.T) {
	repo := newMockRepo()
	rec := seedHero(t, repo)
	store := NewEncounterStore()
	id, sess, err := CreateEncounter(repo, testRegistry(), store, rand.New(rand.NewSource(1)), CreateEncounterRequest{
		HeroUUID: rec.HeroUUID, Creatures: []string{"Imp"},
	})
	if err != nil {
		t.Fatalf("create encounter: %v", err)
	}
	sess.Over = true
	sess.Victory = false

	end, err := store.EndBattle(repo, id)
	if err != nil {
		t.Fatalf("end battle: %v", err)
	}
	if end.Victory {
		t.Fatalf("expected a defeat result")
	}
	if repo.heroSaved || len(repo.saved) != 0 {
		t.Fatalf("a defeat must not persist progression")
	}
}
