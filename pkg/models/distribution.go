package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Distribution struct {
	ID              int       `json:"distribution_id" db:"distribution_id"`
	RequestID       int       `json:"request_id" db:"request_id"`
	VictimID        int       `json:"victim_id" db:"victim_id"`
	SupplyID        int       `json:"supply_id" db:"supply_id"`
	QuantityGiven   int       `json:"quantity_given" db:"quantity_given"`
	DateDistributed time.Time `json:"date_distributed" db:"date_distributed"`
}

func (d *Distribution) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   d.ID,
		ResourceType: "distribution",
	}
}

type DistributionStats struct {
	TotalDistributions         int             `json:"total_distributions" db:"total_distributions"`
	TotalQuantityDistributed   int             `json:"total_quantity_distributed" db:"total_quantity_distributed"`
	UniqueVictimsServed        int             `json:"unique_victims_served" db:"unique_victims_served"`
	RequestsFulfilled          int             `json:"requests_fulfilled" db:"requests_fulfilled"`
	UniqueSuppliesUsed         int             `json:"unique_supplies_used" db:"unique_supplies_used"`
	AvgQuantityPerDistribution decimal.Decimal `json:"avg_quantity_per_distribution" db:"avg_quantity_per_distribution"`
	DistributionsLastWeek      int             `json:"distributions_last_week" db:"distributions_last_week"`
	DistributionsLastMonth     int             `json:"distributions_last_month" db:"distributions_last_month"`
}
