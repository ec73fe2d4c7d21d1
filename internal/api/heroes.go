package api

import (
	"errors"
	"net/http"

	"github.com/milkshakeiii/cursesgame-sub000/internal/constants"
	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
	"github.com/milkshakeiii/cursesgame-sub000/internal/logging"
	"github.com/milkshakeiii/cursesgame-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type heroView struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Intelligence int            `json:"intelligence"`
	Wisdom       int            `json:"wisdom"`
	Charisma     int            `json:"charisma"`
	Battle       int            `json:"battle"`
	MaxHealth    int            `json:"max_health"`
	Stats        game.HeroStats `json:"stats"`
}

func newHeroView(rec *game.HeroRecord) heroView {
	h := rec.Hero()
	return heroView{
		ID:           rec.HeroUUID,
		Name:         rec.Name,
		Intelligence: rec.Intelligence,
		Wisdom:       rec.Wisdom,
		Charisma:     rec.Charisma,
		Battle:       rec.Battle,
		MaxHealth:    rec.MaxHealth,
		Stats:        h.CombatStats(),
	}
}

// CreateHero registers a new hero.
func (h *EncounterHandler) CreateHero(c *gin.Context) {
	var req service.CreateHeroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	rec, err := service.CreateHero(h.repo, req)
	if err != nil {
		logging.Error("failed to create hero", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateHero})
		return
	}
	c.JSON(http.StatusCreated, newHeroView(rec))
}

// GetHero returns a hero with derived combat stats.
func (h *EncounterHandler) GetHero(c *gin.Context) {
	rec, err := service.GetHero(h.repo, c.Param("heroID"))
	if errors.Is(err, service.ErrHeroNotFound) {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrHeroNotFound})
		return
	}
	if err != nil {
		logging.Error("failed to fetch hero", err, logging.Fields{constants.LogFieldHeroID: c.Param("heroID")})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchHero})
		return
	}
	c.JSON(http.StatusOK, newHeroView(rec))
}

// GetRoster returns the hero's saved creatures at full health.
func (h *EncounterHandler) GetRoster(c *gin.Context) {
	rec, err := service.GetHero(h.repo, c.Param("heroID"))
	if errors.Is(err, service.ErrHeroNotFound) {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrHeroNotFound})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchHero})
		return
	}
	roster, err := service.GetRoster(h.repo, rec.ID)
	if err != nil {
		logging.Error("failed to fetch roster", err, logging.Fields{constants.LogFieldHeroID: rec.HeroUUID})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRoster})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roster": roster})
}
