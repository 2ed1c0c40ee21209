package metadata

import (
	"testing"
	"time"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    RequestStatus
		to      RequestStatus
		want    RequestStatus
		wantErr bool
	}{
		{"pending to fulfilled", StatusPending, StatusFulfilled, StatusFulfilled, false},
		{"pending to rejected", StatusPending, StatusRejected, StatusRejected, false},
		{"pending to pending", StatusPending, StatusPending, StatusPending, true},
		{"fulfilled to rejected", StatusFulfilled, StatusRejected, StatusFulfilled, true},
		{"rejected to fulfilled", StatusRejected, StatusFulfilled, StatusRejected, true},
		{"fulfilled to pending", StatusFulfilled, StatusPending, StatusFulfilled, true},
		{"unknown target", StatusPending, RequestStatus("Cancelled"), StatusPending, true},
		{"unknown source", RequestStatus(""), StatusFulfilled, RequestStatus(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Transition(tt.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("Transition() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Transition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	if StatusPending.IsTerminal() {
		t.Errorf("Pending must not be terminal")
	}
	if !StatusFulfilled.IsTerminal() || !StatusRejected.IsTerminal() {
		t.Errorf("Fulfilled and Rejected must be terminal")
	}
}

func TestPriorityRank(t *testing.T) {
	if !(PriorityHigh.Rank() > PriorityMedium.Rank() && PriorityMedium.Rank() > PriorityLow.Rank()) {
		t.Errorf("ranks must order High > Medium > Low")
	}
	if Priority("Urgent").Rank() >= PriorityLow.Rank() {
		t.Errorf("unknown priority must rank below Low")
	}
}

func TestNewPriority(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Priority
		wantErr bool
	}{
		{"empty defaults to medium", "", PriorityMedium, false},
		{"high", "High", PriorityHigh, false},
		{"lowercase low", " low ", PriorityLow, false},
		{"invalid", "Critical", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPriority(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewPriority() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("NewPriority() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSupplyStatusFor(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	day := func(offset int) *time.Time {
		d := now.AddDate(0, 0, offset)
		return &d
	}

	tests := []struct {
		name     string
		current  int
		original int
		expiry   *time.Time
		expected SupplyStatus
	}{
		{"plenty without expiry", 80, 100, nil, SupplyAvailable},
		{"below twenty percent", 19, 100, nil, SupplyLowStock},
		{"exactly twenty percent", 20, 100, nil, SupplyAvailable},
		{"expired yesterday", 100, 100, day(-1), SupplyExpired},
		{"expires today", 100, 100, day(0), SupplyExpiringSoon},
		{"expires within window", 5, 100, day(7), SupplyExpiringSoon},
		{"expires after window", 5, 100, day(8), SupplyLowStock},
		{"zero original", 0, 0, nil, SupplyAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SupplyStatusFor(tt.current, tt.original, tt.expiry, now, 7); got != tt.expected {
				t.Errorf("SupplyStatusFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSupplyStatusForLocalClock(t *testing.T) {
	newYork := time.FixedZone("EST", -5*60*60)
	tokyo := time.FixedZone("JST", 9*60*60)
	expiry := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		expected SupplyStatus
	}{
		{"west of utc, expires today", time.Date(2024, 3, 10, 10, 0, 0, 0, newYork), SupplyExpiringSoon},
		{"west of utc, late evening", time.Date(2024, 3, 10, 23, 30, 0, 0, newYork), SupplyExpiringSoon},
		{"west of utc, day after", time.Date(2024, 3, 11, 0, 30, 0, 0, newYork), SupplyExpired},
		{"east of utc, early morning", time.Date(2024, 3, 10, 1, 0, 0, 0, tokyo), SupplyExpiringSoon},
		{"east of utc, day after", time.Date(2024, 3, 11, 1, 0, 0, 0, tokyo), SupplyExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SupplyStatusFor(100, 100, &expiry, tt.now, 7); got != tt.expected {
				t.Errorf("SupplyStatusFor() = %v, want %v", got, tt.expected)
			}
		})
	}

	window := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)
	beyond := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 10, 22, 0, 0, 0, newYork)
	if got := SupplyStatusFor(100, 100, &window, now, 7); got != SupplyExpiringSoon {
		t.Errorf("last day of window = %v, want %v", got, SupplyExpiringSoon)
	}
	if got := SupplyStatusFor(100, 100, &beyond, now, 7); got != SupplyAvailable {
		t.Errorf("day after window = %v, want %v", got, SupplyAvailable)
	}
}
