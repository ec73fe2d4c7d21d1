package service

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
)

var (
	ErrHeroNotFound      = errors.New("hero not found")
	ErrEncounterNotFound = errors.New("encounter not found")
	ErrEncounterOver     = errors.New("encounter is already over")
	ErrInvalidSquare     = errors.New("declared square is off the grid")
	ErrSafeTerrain       = errors.New("no creatures spawn on this terrain")
	ErrUnknownCreature   = errors.New("unknown creature")
)

// Session is one live encounter. Combat state lives only here; nothing is
// persisted until the encounter ends.
type Session struct {
	Enc        *game.Encounter
	Hero       *game.Hero
	HeroRecord *game.HeroRecord
	Rng        *rand.Rand

	// Recruits are creatures converted during this encounter, waiting for
	// the end-of-battle save.
	Recruits []*game.Creature
	Over     bool
	Victory  bool
}

// EncounterStore keeps live encounters in memory, keyed by encounter UUID.
// All access goes through With so each session mutates under the lock.
type EncounterStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewEncounterStore() *EncounterStore {
	return &EncounterStore{sessions: make(map[string]*Session)}
}

func (s *EncounterStore) put(id string, sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
}

// With runs fn against the named session while holding the store lock.
func (s *EncounterStore) With(id string, fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrEncounterNotFound
	}
	return fn(sess)
}

func (s *EncounterStore) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
