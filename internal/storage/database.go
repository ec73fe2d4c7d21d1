package storage

import (
	"github.com/milkshakeiii/cursesgame-sub000/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database and keeps the schema current via
// AutoMigrate. Creature stat sheets live in a JSON blob, so template changes
// in the creature registry never require a schema migration.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.HeroRecord{}, &game.CreatureRecord{}); err != nil {
		return nil, err
	}
	return db, nil
}
