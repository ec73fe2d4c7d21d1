package game

import (
	"fmt"
	"math/rand"
	"sort"
)

// Registry holds creature templates keyed by name, indexed by biome/terrain,
// plus the boss table. Templates are never handed out directly; Spawn deep
// copies so every placed unit owns independent stat and debuff state.
type Registry struct {
	byName    map[string]*Creature
	byTerrain map[string]map[string][]string
	bosses    map[string]*Creature
}

// NewRegistry builds a registry from templates. The terrain index maps
// biome -> terrain -> creature names; bosses are not terrain-bound.
func NewRegistry(byTerrain map[string]map[string][]*Creature, bosses []*Creature) *Registry {
	r := &Registry{
		byName:    make(map[string]*Creature),
		byTerrain: make(map[string]map[string][]string),
		bosses:    make(map[string]*Creature),
	}
	for biome, terrains := range byTerrain {
		r.byTerrain[biome] = make(map[string][]string, len(terrains))
		for terrain, creatures := range terrains {
			r.byTerrain[biome][terrain] = []string{}
			for _, c := range creatures {
				r.byName[c.Name] = c
				r.byTerrain[biome][terrain] = append(r.byTerrain[biome][terrain], c.Name)
			}
			sort.Strings(r.byTerrain[biome][terrain])
		}
	}
	for _, b := range bosses {
		r.bosses[b.Name] = b
	}
	return r
}

// Spawn creates a fresh instance of a named creature (bosses included).
func (r *Registry) Spawn(name string) (*Creature, error) {
	if t, ok := r.bosses[name]; ok {
		return t.Clone(), nil
	}
	if t, ok := r.byName[name]; ok {
		return t.Clone(), nil
	}
	return nil, fmt.Errorf("unknown creature: %s", name)
}

// SpawnForTerrain picks a random creature for the biome/terrain combination
// and spawns it. Returns nil with no error for safe terrain (no creatures).
func (r *Registry) SpawnForTerrain(rng *rand.Rand, biome, terrain string) (*Creature, error) {
	terrains, ok := r.byTerrain[biome]
	if !ok {
		return nil, fmt.Errorf("unknown biome: %s", biome)
	}
	names, ok := terrains[terrain]
	if !ok {
		return nil, fmt.Errorf("unknown terrain %s in biome %s", terrain, biome)
	}
	if len(names) == 0 {
		return nil, nil
	}
	return r.Spawn(names[rng.Intn(len(names))])
}

// Boss spawns a named boss, or nil if the name is not a boss.
func (r *Registry) Boss(name string) *Creature {
	if t, ok := r.bosses[name]; ok {
		return t.Clone()
	}
	return nil
}

// CreatureNames lists all template names for a biome/terrain combination.
// Safe terrain yields an empty slice; an unknown combination yields nil.
func (r *Registry) CreatureNames(biome, terrain string) []string {
	terrains, ok := r.byTerrain[biome]
	if !ok {
		return nil
	}
	names, ok := terrains[terrain]
	if !ok {
		return nil
	}
	return append([]string{}, names...)
}

// BossDragonKing is the boss with scripted post-attack movement.
const BossDragonKing = "Dragon King"
