package main

import (
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/milkshakeiii/cursesgame-sub000/internal/api"
	"github.com/milkshakeiii/cursesgame-sub000/internal/config"
	"github.com/milkshakeiii/cursesgame-sub000/internal/constants"
	"github.com/milkshakeiii/cursesgame-sub000/internal/logging"
	"github.com/milkshakeiii/cursesgame-sub000/internal/service"
	"github.com/milkshakeiii/cursesgame-sub000/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// Path may be provided via BEASTGRID_CONFIG or defaults to
	// ./beastgrid_config.json in the current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./beastgrid_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid configuration", err, logging.Fields{"config_path": configPath})
	}
	if addr := os.Getenv(constants.EnvServerAddress); addr != "" {
		cfg.ServerAddress = addr
	}
	if dbPath := os.Getenv(constants.EnvDatabasePath); dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if creatures := os.Getenv(constants.EnvCreaturesPath); creatures != "" {
		cfg.CreaturesPath = creatures
	}

	registry, err := config.LoadCreatures(cfg.CreaturesPath)
	if err != nil {
		logging.Fatal("Missing or invalid creature registry", err, logging.Fields{constants.LogFieldPath: cfg.CreaturesPath})
	}

	db, err := storage.OpenAndMigrate(cfg.DatabasePath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db)

	store := service.NewEncounterStore()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	handler := api.NewEncounterHandler(repo, registry, store, rng)

	router := gin.Default()
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteHealth, func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
		})
		apiRoutes.GET("/version", api.Version)
		apiRoutes.GET(constants.RouteCreatures, handler.ListCreatures)

		apiRoutes.POST(constants.RouteHeroes, handler.CreateHero)
		apiRoutes.GET(constants.RouteHeroByID, handler.GetHero)
		apiRoutes.GET(constants.RouteHeroRoster, handler.GetRoster)

		apiRoutes.POST(constants.RouteEncounters, handler.CreateEncounter)
		apiRoutes.GET(constants.RouteEncounterByID, handler.GetEncounter)
		apiRoutes.POST(constants.RouteEncounterAttack, handler.Attack)
		apiRoutes.POST(constants.RouteEncounterConvert, handler.Convert)
		apiRoutes.POST(constants.RouteEncounterEnemyTurn, handler.EnemyTurn)
		apiRoutes.POST(constants.RouteEncounterEnd, handler.EndBattle)
	}

	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: cfg.ServerAddress})
	if err := router.Run(cfg.ServerAddress); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
