package api

import (
	"errors"
	"net/http"

	"github.com/milkshakeiii/cursesgame-sub000/internal/constants"
	"github.com/milkshakeiii/cursesgame-sub000/internal/engine"
	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
	"github.com/milkshakeiii/cursesgame-sub000/internal/logging"
	"github.com/milkshakeiii/cursesgame-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type unitView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Glyph     string `json:"glyph"`
	Footprint string `json:"footprint"`
	Col       int    `json:"col"`
	Row       int    `json:"row"`
	Health    int    `json:"health"`
	MaxHealth int    `json:"max_health"`
	Hero      bool   `json:"hero,omitempty"`

	Debuffs            map[game.Debuff]int `json:"debuffs,omitempty"`
	ConversionProgress int                 `json:"conversion_progress,omitempty"`
}

type encounterView struct {
	ID         string     `json:"id"`
	Player     []unitView `json:"player"`
	Enemy      []unitView `json:"enemy"`
	EnemyHaste bool       `json:"enemy_haste"`
	Over       bool       `json:"over"`
	Victory    bool       `json:"victory"`
	Log        []string   `json:"log"`
}

func teamView(team *game.Team) []unitView {
	units := team.UniqueUnits()
	out := make([]unitView, 0, len(units))
	for _, u := range units {
		idx := team.IndexOf(u)
		col, row := engine.IndexToCoords(idx)
		v := unitView{
			ID:        u.GetID(),
			Name:      u.GetName(),
			Glyph:     u.GetGlyph(),
			Footprint: string(u.GetFootprint()),
			Col:       col,
			Row:       row,
			Health:    u.GetHealth(),
			MaxHealth: u.GetMaxHealth(),
			Hero:      u.IsHero(),
			Debuffs:   u.GetDebuffs(),
		}
		if c, ok := u.(*game.Creature); ok {
			v.ConversionProgress = c.ConversionProgress
		}
		out = append(out, v)
	}
	return out
}

func snapshot(sess *service.Session) encounterView {
	return encounterView{
		ID:         sess.Enc.ID,
		Player:     teamView(&sess.Enc.PlayerTeam),
		Enemy:      teamView(&sess.Enc.EnemyTeam),
		EnemyHaste: sess.Enc.HasHaste(),
		Over:       sess.Over,
		Victory:    sess.Victory,
		Log:        sess.Enc.Log,
	}
}

// CreateEncounter starts a battle against terrain spawns, a named enemy
// group or a boss.
func (h *EncounterHandler) CreateEncounter(c *gin.Context) {
	var req service.CreateEncounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	_, sess, err := service.CreateEncounter(h.repo, h.registry, h.store, h.rng, req)
	switch {
	case errors.Is(err, service.ErrHeroNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrHeroNotFound})
		return
	case errors.Is(err, service.ErrUnknownCreature):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownCreature})
		return
	case errors.Is(err, service.ErrSafeTerrain):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyMessage: "nothing lives here"})
		return
	case err != nil:
		logging.Error("failed to create encounter", err, nil)
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownTerrain})
		return
	}
	c.JSON(http.StatusCreated, snapshot(sess))
}

// GetEncounter returns the current state of a live encounter.
func (h *EncounterHandler) GetEncounter(c *gin.Context) {
	var view encounterView
	err := h.store.With(c.Param("encounterID"), func(sess *service.Session) error {
		view = snapshot(sess)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrEncounterNotFound})
		return
	}
	c.JSON(http.StatusOK, view)
}

type declareRequest struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func (h *EncounterHandler) runTurn(c *gin.Context, run func(id string, declared engine.Square) (*service.TurnResult, error)) {
	var req declareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	res, err := run(c.Param("encounterID"), engine.Square{Col: req.Col, Row: req.Row})
	switch {
	case errors.Is(err, service.ErrEncounterNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrEncounterNotFound})
		return
	case errors.Is(err, service.ErrEncounterOver):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrEncounterOver})
		return
	case errors.Is(err, service.ErrInvalidSquare):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidSquare})
		return
	case err != nil:
		logging.Error("turn failed", err, logging.Fields{constants.LogFieldEncounterID: c.Param("encounterID")})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	c.JSON(http.StatusOK, res)
}

// Attack resolves the player team's attack on a declared square.
func (h *EncounterHandler) Attack(c *gin.Context) {
	h.runTurn(c, h.store.PlayerAttack)
}

// Convert resolves the player team's conversion attempt on a declared square.
func (h *EncounterHandler) Convert(c *gin.Context) {
	h.runTurn(c, h.store.PlayerConvert)
}

// EnemyTurn resolves the enemy side's full turn.
func (h *EncounterHandler) EnemyTurn(c *gin.Context) {
	res, err := h.store.EnemyTurn(c.Param("encounterID"))
	switch {
	case errors.Is(err, service.ErrEncounterNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrEncounterNotFound})
		return
	case errors.Is(err, service.ErrEncounterOver):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrEncounterOver})
		return
	case err != nil:
		logging.Error("enemy turn failed", err, logging.Fields{constants.LogFieldEncounterID: c.Param("encounterID")})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	c.JSON(http.StatusOK, res)
}

// EndBattle closes the encounter and persists progression on a victory.
func (h *EncounterHandler) EndBattle(c *gin.Context) {
	res, err := h.store.EndBattle(h.repo, c.Param("encounterID"))
	switch {
	case errors.Is(err, service.ErrEncounterNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrEncounterNotFound})
		return
	case err != nil:
		logging.Error("failed to end encounter", err, logging.Fields{constants.LogFieldEncounterID: c.Param("encounterID")})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSaveRoster})
		return
	}
	c.JSON(http.StatusOK, res)
}
