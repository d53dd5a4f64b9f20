package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemon-dev/mnemon/pkg/domain/interfaces"
	"github.com/mnemon-dev/mnemon/pkg/domain/model"
)

type exchangeRepository struct {
	mu      sync.RWMutex
	records map[string][]*model.ExchangeRecord // key: userID, in insertion order
}

var _ interfaces.ExchangeRepository = &exchangeRepository{}

func newExchangeRepository() *exchangeRepository {
	return &exchangeRepository{
		records: make(map[string][]*model.ExchangeRecord),
	}
}

func (r *exchangeRepository) Append(_ context.Context, record *model.ExchangeRecord) error {
	if record == nil {
		return goerr.New("record is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Copy to avoid external mutation; history is append-only
	copied := *record
	if copied.ID == "" {
		copied.ID = model.NewExchangeID()
	}
	record.ID = copied.ID

	r.records[copied.UserID] = append(r.records[copied.UserID], &copied)
	return nil
}

func (r *exchangeRepository) ListByUser(_ context.Context, userID string) ([]*model.ExchangeRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.records[userID]

	// Stable sort keeps insertion order for equal timestamps
	sorted := make([]*model.ExchangeRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	result := make([]*model.ExchangeRecord, 0, len(sorted))
	for _, rec := range sorted {
		copied := *rec
		result = append(result, &copied)
	}
	return result, nil
}
