// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/domain/entity"
)

// GeneralLedgerModel represents the qbo_general_ledger table in the database.
type GeneralLedgerModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TxnDate   time.Time       `gorm:"type:date;index"`
	TxnType   string          `gorm:"type:varchar(32)"`
	Name      string          `gorm:"type:varchar(255)"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GeneralLedgerModel.
func (GeneralLedgerModel) TableName() string {
	return "qbo_general_ledger"
}

// ToEntity converts a GeneralLedgerModel to a domain GeneralLedgerEntry entity.
func (m *GeneralLedgerModel) ToEntity() entity.GeneralLedgerEntry {
	return entity.GeneralLedgerEntry{
		ID:      m.ID,
		TxnDate: m.TxnDate,
		TxnType: m.TxnType,
		Name:    m.Name,
		Amount:  m.Amount,
	}
}
