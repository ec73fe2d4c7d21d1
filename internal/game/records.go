package game

import (
	"encoding/json"

	"gorm.io/gorm"
)

// CreatureRecord is the persistent form of a roster creature. Combat state
// (current health, debuffs, conversion progress) is transient and never
// persisted; the sheet column stores the full template state with tier
// bonuses already applied.
type CreatureRecord struct {
	gorm.Model
	UnitUUID         string `gorm:"uniqueIndex"`
	HeroID           uint   `gorm:"index"`
	Name             string
	Tier             int
	BattlesCompleted int
	Sheet            []byte `gorm:"type:blob"`
}

func (CreatureRecord) TableName() string { return "roster_creatures" }

// HeroRecord is the persistent hero: identity, attributes and base stats.
// Effective combat stats are derived at load time, never stored.
type HeroRecord struct {
	gorm.Model
	HeroUUID string `gorm:"uniqueIndex"`
	Name     string

	Intelligence int
	Wisdom       int
	Charisma     int
	Battle       int

	BaseMeleeAttack  int
	BaseRangedAttack int
	BaseMagicAttack  int
	BaseDefense      int
	BaseDodge        int
	BaseResistance   int

	MaxHealth int
}

func (HeroRecord) TableName() string { return "heroes" }

// NewCreatureRecord snapshots a creature for persistence.
func NewCreatureRecord(c *Creature, heroID uint) (*CreatureRecord, error) {
	saved := *c
	saved.CurrentHealth = saved.MaxHealth
	saved.ConversionProgress = 0
	saved.Debuffs = nil
	sheet, err := json.Marshal(&saved)
	if err != nil {
		return nil, err
	}
	return &CreatureRecord{
		UnitUUID:         c.ID,
		HeroID:           heroID,
		Name:             c.Name,
		Tier:             c.Tier,
		BattlesCompleted: c.BattlesCompleted,
		Sheet:            sheet,
	}, nil
}

// Creature rebuilds the in-memory creature from a record.
func (r *CreatureRecord) Creature() (*Creature, error) {
	var c Creature
	if err := json.Unmarshal(r.Sheet, &c); err != nil {
		return nil, err
	}
	c.CurrentHealth = c.MaxHealth
	return &c, nil
}

// UpdateFrom refreshes the record from a creature after a battle.
func (r *CreatureRecord) UpdateFrom(c *Creature) error {
	saved := *c
	saved.CurrentHealth = saved.MaxHealth
	saved.ConversionProgress = 0
	saved.Debuffs = nil
	sheet, err := json.Marshal(&saved)
	if err != nil {
		return err
	}
	r.Name = c.Name
	r.Tier = c.Tier
	r.BattlesCompleted = c.BattlesCompleted
	r.Sheet = sheet
	return nil
}

// Hero rebuilds the in-memory hero from a record at full health.
func (r *HeroRecord) Hero() *Hero {
	return &Hero{
		ID:               r.HeroUUID,
		Name:             r.Name,
		Glyph:            "@",
		Intelligence:     r.Intelligence,
		Wisdom:           r.Wisdom,
		Charisma:         r.Charisma,
		Battle:           r.Battle,
		BaseMeleeAttack:  r.BaseMeleeAttack,
		BaseRangedAttack: r.BaseRangedAttack,
		BaseMagicAttack:  r.BaseMagicAttack,
		BaseDefense:      r.BaseDefense,
		BaseDodge:        r.BaseDodge,
		BaseResistance:   r.BaseResistance,
		MaxHealth:        r.MaxHealth,
		CurrentHealth:    r.MaxHealth,
	}
}
