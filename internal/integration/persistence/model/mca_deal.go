// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/domain/entity"
)

// MCADealModel represents the mca_deals table in the database.
type MCADealModel struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey"`
	DealNumber        string           `gorm:"type:varchar(64);index"`
	BusinessName      string           `gorm:"type:varchar(255);not null"`
	TotalFundedAmount *decimal.Decimal `gorm:"type:decimal(15,2)"`
	PaybackAmount     *decimal.Decimal `gorm:"type:decimal(15,2)"`
	FundedDate        *time.Time       `gorm:"type:date"`
	CreatedAt         time.Time        `gorm:"not null"`
	UpdatedAt         time.Time        `gorm:"not null"`
}

// TableName returns the table name for the MCADealModel.
func (MCADealModel) TableName() string {
	return "mca_deals"
}

// ToEntity converts an MCADealModel to a domain MCADeal entity.
func (m *MCADealModel) ToEntity() entity.MCADeal {
	return entity.MCADeal{
		ID:                m.ID,
		DealNumber:        m.DealNumber,
		BusinessName:      m.BusinessName,
		TotalFundedAmount: m.TotalFundedAmount,
		PaybackAmount:     m.PaybackAmount,
		FundedDate:        m.FundedDate,
	}
}
