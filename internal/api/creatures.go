package api

import (
	"net/http"

	"github.com/milkshakeiii/cursesgame-sub000/internal/constants"

	"github.com/gin-gonic/gin"
)

// ListCreatures returns the creature names available for a biome/terrain
// combination (query params `biome` and `terrain`).
func (h *EncounterHandler) ListCreatures(c *gin.Context) {
	biome := c.Query("biome")
	terrain := c.Query("terrain")
	if biome == "" || terrain == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	names := h.registry.CreatureNames(biome, terrain)
	if names == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrUnknownTerrain})
		return
	}
	c.JSON(http.StatusOK, gin.H{"creatures": names})
}
