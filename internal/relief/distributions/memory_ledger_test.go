package distributions

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/doug-martin/goqu/v9"

	"relief/internal/repository"
	custom_error "relief/pkg/errors"
	"relief/pkg/metadata"
	"relief/pkg/models"
)

// memoryLedger is an in-memory stand-in for the three tables touched by a
// fulfilment. WithinTransaction serialises transactions the way row locks
// would and restores a snapshot when fn fails.
type memoryLedger struct {
	txMu sync.Mutex
	mu   sync.Mutex

	requests      map[int]models.Request
	supplies      map[int]models.SupplyLot
	distributions []models.Distribution
	nextID        int

	failInsert        error
	failDecrement     error
	failMarkFulfilled error
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		requests: map[int]models.Request{},
		supplies: map[int]models.SupplyLot{},
	}
}

func (l *memoryLedger) addRequest(r models.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests[r.ID] = r
}

func (l *memoryLedger) addSupply(s models.SupplyLot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.supplies[s.ID] = s
}

func (l *memoryLedger) request(id int) models.Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.requests[id]
}

func (l *memoryLedger) supply(id int) models.SupplyLot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.supplies[id]
}

func (l *memoryLedger) allDistributions() []models.Distribution {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.distributions)
}

func (l *memoryLedger) WithinTransaction(ctx context.Context, fn func(tx *goqu.TxDatabase) error) error {
	l.txMu.Lock()
	defer l.txMu.Unlock()

	l.mu.Lock()
	requests := maps.Clone(l.requests)
	supplies := maps.Clone(l.supplies)
	distributions := slices.Clone(l.distributions)
	nextID := l.nextID
	l.mu.Unlock()

	if err := fn(new(goqu.TxDatabase)); err != nil {
		l.mu.Lock()
		l.requests = requests
		l.supplies = supplies
		l.distributions = distributions
		l.nextID = nextID
		l.mu.Unlock()
		return err
	}

	return nil
}

func (l *memoryLedger) GetRequest(ctx context.Context, id int) (*models.Request, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.requests[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (l *memoryLedger) MarkFulfilled(ctx context.Context, tx *goqu.TxDatabase, id int, fulfilledAt time.Time) error {
	if l.failMarkFulfilled != nil {
		return l.failMarkFulfilled
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.requests[id]
	if !ok || r.Status != metadata.StatusPending {
		return custom_error.NewConflictError("request %d is no longer pending", id)
	}
	r.Status = metadata.StatusFulfilled
	r.FulfilledDate = &fulfilledAt
	l.requests[id] = r
	return nil
}

func (l *memoryLedger) GetSupply(ctx context.Context, id int) (*models.SupplyLot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.supplies[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (l *memoryLedger) Decrement(ctx context.Context, tx *goqu.TxDatabase, id int, amount int) error {
	if l.failDecrement != nil {
		return l.failDecrement
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.supplies[id]
	if !ok || s.CurrentQuantity < amount {
		return custom_error.NewValidationError("quantity_distributed", "insufficient stock")
	}
	s.CurrentQuantity -= amount
	l.supplies[id] = s
	return nil
}

func (l *memoryLedger) InsertDistribution(ctx context.Context, tx *goqu.TxDatabase, d models.Distribution) (*models.Distribution, error) {
	if l.failInsert != nil {
		return nil, l.failInsert
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, existing := range l.distributions {
		if existing.RequestID == d.RequestID {
			return nil, custom_error.WrapDBError("distribution for request", "23505")
		}
	}

	l.nextID++
	d.ID = l.nextID
	l.distributions = append(l.distributions, d)
	return &d, nil
}

func (l *memoryLedger) GetDistribution(ctx context.Context, id int) (*models.Distribution, error) {
	for _, d := range l.allDistributions() {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, nil
}

func (l *memoryLedger) GetDistributionsBy(ctx context.Context, conditions repository.QueryBuilder) ([]models.Distribution, error) {
	ex := conditions.BuildConditions(nil)
	var out []models.Distribution
	for _, d := range l.allDistributions() {
		if v, ok := ex["victim_id"]; ok && v != d.VictimID {
			continue
		}
		if v, ok := ex["supply_id"]; ok && v != d.SupplyID {
			continue
		}
		if v, ok := ex["request_id"]; ok && v != d.RequestID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (l *memoryLedger) GetDistributionsSince(ctx context.Context, since time.Time) ([]models.Distribution, error) {
	var out []models.Distribution
	for _, d := range l.allDistributions() {
		if !d.DateDistributed.Before(since) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (l *memoryLedger) GetStats(ctx context.Context, today time.Time) (*models.DistributionStats, error) {
	distributions := l.allDistributions()
	stats := models.DistributionStats{TotalDistributions: len(distributions)}
	for _, d := range distributions {
		stats.TotalQuantityDistributed += d.QuantityGiven
	}
	return &stats, nil
}
