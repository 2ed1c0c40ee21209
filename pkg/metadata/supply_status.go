package metadata

import "time"

type SupplyStatus string

const (
	SupplyAvailable    SupplyStatus = "Available"
	SupplyLowStock     SupplyStatus = "Low Stock"
	SupplyExpiringSoon SupplyStatus = "Expiring Soon"
	SupplyExpired      SupplyStatus = "Expired"
)

// LowStockRatio is the share of the original quantity under which a lot
// counts as low on stock.
const LowStockRatio = 0.2

// SupplyStatusFor derives the display label of a supply lot. Expiry wins
// over quantity; labels are never stored.
func SupplyStatusFor(current, original int, expiry *time.Time, now time.Time, expiringSoonDays int) SupplyStatus {
	if expiry != nil {
		today := calendarDay(now)
		expiryDay := calendarDay(*expiry)

		if expiryDay.Before(today) {
			return SupplyExpired
		}
		if !expiryDay.After(today.AddDate(0, 0, expiringSoonDays)) {
			return SupplyExpiringSoon
		}
	}

	if IsLowStock(current, original) {
		return SupplyLowStock
	}

	return SupplyAvailable
}

func IsLowStock(current, original int) bool {
	if original <= 0 {
		return false
	}
	return float64(current) < LowStockRatio*float64(original)
}

// calendarDay keeps the date as read in t's own location and drops the
// rest, so a local now and a DATE column scanned as UTC compare by day.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
