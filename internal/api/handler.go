package api

import (
	"math/rand"

	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
	"github.com/milkshakeiii/cursesgame-sub000/internal/service"
	"github.com/milkshakeiii/cursesgame-sub000/internal/storage"
)

// EncounterHandler groups all HTTP handlers around the shared dependencies.
type EncounterHandler struct {
	repo     storage.Repository
	registry *game.Registry
	store    *service.EncounterStore
	rng      *rand.Rand
}

// NewEncounterHandler creates a handler backed by the given repository,
// creature registry and live-encounter store.
func NewEncounterHandler(repo storage.Repository, registry *game.Registry, store *service.EncounterStore, rng *rand.Rand) *EncounterHandler {
	return &EncounterHandler{repo: repo, registry: registry, store: store, rng: rng}
}
