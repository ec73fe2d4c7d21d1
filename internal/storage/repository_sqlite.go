package storage

import (
	"errors"

	"github.com/milkshakeiii/cursesgame-sub000/internal/game"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned for lookups that match no row.
var ErrNotFound = errors.New("not found")

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateHero(h *game.HeroRecord) error {
	return r.db.Create(h).Error
}

func (r *sqliteRepository) GetHeroByUUID(uuid string) (*game.HeroRecord, error) {
	var h game.HeroRecord
	err := r.db.Where("hero_uuid = ?", uuid).First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *sqliteRepository) UpdateHero(h *game.HeroRecord) error {
	return r.db.Save(h).Error
}

func (r *sqliteRepository) GetRoster(heroID uint) ([]game.CreatureRecord, error) {
	var out []game.CreatureRecord
	if err := r.db.Where("hero_id = ?", heroID).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sqliteRepository) GetCreatureByUUID(uuid string) (*game.CreatureRecord, error) {
	var c game.CreatureRecord
	err := r.db.Where("unit_uuid = ?", uuid).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *sqliteRepository) SaveCreature(c *game.CreatureRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "unit_uuid"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"hero_id", "name", "tier", "battles_completed", "sheet", "updated_at",
		}),
	}).Create(c).Error
}

func (r *sqliteRepository) DeleteCreature(uuid string) error {
	return r.db.Where("unit_uuid = ?", uuid).Delete(&game.CreatureRecord{}).Error
}
