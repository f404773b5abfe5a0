// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/domain/entity"
)

// TransactionModel represents the qbo_transactions table in the database.
type TransactionModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LoanID       string          `gorm:"type:varchar(64);index"`
	CustomerName string          `gorm:"type:varchar(255);not null;index"`
	Type         string          `gorm:"type:varchar(32);not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TxnDate      time.Time       `gorm:"type:date;index"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "qbo_transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() entity.Transaction {
	return entity.Transaction{
		ID:           m.ID,
		LoanID:       m.LoanID,
		CustomerName: m.CustomerName,
		Type:         entity.TransactionType(m.Type),
		Amount:       m.Amount,
		TxnDate:      m.TxnDate,
	}
}
