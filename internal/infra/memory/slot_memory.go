package memory

import (
	"context"
	"sync"

	repo "storefront/internal/repository"
)

type slotKey struct {
	namespace string
	key       string
}

// SlotRepository はプロセス内だけで生きるスロット。
// STORAGE_DRIVER=memory とテストで使う。
type SlotRepository struct {
	mu    sync.RWMutex
	slots map[slotKey]string
}

func NewSlotRepository() *SlotRepository {
	return &SlotRepository{slots: make(map[slotKey]string)}
}

func (r *SlotRepository) Get(ctx context.Context, namespace, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.slots[slotKey{namespace, key}]
	if !ok {
		return "", repo.ErrNotFound
	}
	return v, nil
}

func (r *SlotRepository) Put(ctx context.Context, namespace, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots[slotKey{namespace, key}] = value
	return nil
}
