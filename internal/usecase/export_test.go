package usecase

import (
	"context"

	"storefront/internal/cart"
)

func (u *CartUsecase) AcquireStore(ctx context.Context, sessionID string) (*cart.Store, func(), error) {
	return u.acquire(ctx, sessionID)
}

func (u *CartUsecase) StoreCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.stores)
}
