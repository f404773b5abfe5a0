// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/domain/entity"
)

// DealModel represents the deals table in the database.
// Underwriting columns are nullable; the source CRM feed does not guarantee
// them even on closed-won records.
type DealModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	LoanID        string           `gorm:"type:varchar(64);index"`
	CustomerName  string           `gorm:"type:varchar(255);not null;index"`
	DateCreated   time.Time        `gorm:"type:date;index"`
	Amount        *decimal.Decimal `gorm:"type:decimal(15,2)"`
	FactorRate    *decimal.Decimal `gorm:"type:decimal(6,4)"`
	LoanTerm      *int             `gorm:"type:integer"`
	IsClosedWon   bool             `gorm:"not null;index"`
	PartnerSource string           `gorm:"type:varchar(128)"`
	Commission    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TIB           *float64         `gorm:"type:numeric"`
	FICO          *float64         `gorm:"type:numeric"`
	CreatedAt     time.Time        `gorm:"not null"`
	UpdatedAt     time.Time        `gorm:"not null"`
}

// TableName returns the table name for the DealModel.
func (DealModel) TableName() string {
	return "deals"
}

// ToEntity converts a DealModel to a domain Deal entity.
func (m *DealModel) ToEntity() entity.Deal {
	return entity.Deal{
		ID:            m.ID,
		LoanID:        m.LoanID,
		CustomerName:  m.CustomerName,
		DateCreated:   m.DateCreated,
		Amount:        m.Amount,
		FactorRate:    m.FactorRate,
		LoanTerm:      m.LoanTerm,
		IsClosedWon:   m.IsClosedWon,
		PartnerSource: m.PartnerSource,
		Commission:    m.Commission,
		TIB:           m.TIB,
		FICO:          m.FICO,
	}
}
