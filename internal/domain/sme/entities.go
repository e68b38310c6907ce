package sme

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("sme not found")

type SME struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	SMEID string `gorm:"column:sme_id;type:char(32);not null;uniqueIndex:ux_smes_sme_id" json:"sme_id"`
	// Reference to the registered user in the external identity system
	OwnerID   string          `gorm:"column:owner_id;type:char(32);not null;index" json:"owner_id"`
	Name      string          `gorm:"column:name;size:255;not null" json:"name"`
	Industry  string          `gorm:"column:industry;size:128" json:"industry"`
	Revenue   decimal.Decimal `gorm:"column:revenue;type:decimal(18,2)" json:"revenue"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SME) TableName() string { return "smes" }
