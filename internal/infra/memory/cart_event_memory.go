package memory

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type CartEventRepository struct {
	mu     sync.RWMutex
	nextID int64
	events []model.CartEvent
	now    func() time.Time
}

func NewCartEventRepository() *CartEventRepository {
	return &CartEventRepository{now: time.Now}
}

func (r *CartEventRepository) Create(ctx context.Context, ev model.CartEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	ev.ID = r.nextID
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = r.now()
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *CartEventRepository) List(ctx context.Context, filter repo.CartEventFilter) ([]model.CartEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	limit := filter.NormalizedLimit()

	out := []model.CartEvent{}
	skipped := 0
	//新しい順
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		ev := r.events[i]
		if filter.SessionID != "" && ev.SessionID != filter.SessionID {
			continue
		}
		if filter.Action != nil && ev.Action != *filter.Action {
			continue
		}
		if filter.CreatedFrom != nil && ev.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}
