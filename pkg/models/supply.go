package models

import (
	"time"

	"github.com/shopspring/decimal"

	"relief/pkg/metadata"
)

// SupplyLot is a batch of a donated item held at one camp.
type SupplyLot struct {
	ID              int                   `json:"supply_id" db:"supply_id"`
	CampID          int                   `json:"camp_id" db:"camp_id"`
	DonationID      *int                  `json:"donation_id" db:"donation_id"`
	Category        string                `json:"category" db:"category"`
	Type            string                `json:"type" db:"type"`
	ItemName        string                `json:"item_name" db:"item_name"`
	Quantity        int                   `json:"quantity" db:"quantity"`
	CurrentQuantity int                   `json:"current_quantity" db:"current_quantity"`
	ExpiryDate      *time.Time            `json:"expiry_date" db:"expiry_date"`
	CreatedAt       time.Time             `json:"created_at" db:"created_at"`
	Status          metadata.SupplyStatus `json:"status" db:"-"`
}

func (s *SupplyLot) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   s.ID,
		ResourceType: "supply",
	}
}

// RemainingPercentage is current/original*100 rounded to two places.
func (s *SupplyLot) RemainingPercentage() decimal.Decimal {
	if s.Quantity <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.CurrentQuantity)).
		Div(decimal.NewFromInt(int64(s.Quantity))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

type LowStockAlert struct {
	SupplyLot
	StockPercentage decimal.Decimal `json:"stock_percentage"`
}

type SupplyStats struct {
	TotalLots         int `json:"total_lots"`
	TotalQuantity     int `json:"total_quantity"`
	RemainingQuantity int `json:"remaining_quantity"`
	AvailableLots     int `json:"available_lots"`
	LowStockLots      int `json:"low_stock_lots"`
	ExpiringSoonLots  int `json:"expiring_soon_lots"`
	ExpiredLots       int `json:"expired_lots"`
}
