package memory

import (
	"context"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// ProductRepository はカタログをメモリに保持する。投入順を保つ。
type ProductRepository struct {
	mu       sync.RWMutex
	order    []string
	products map[string]model.Product
}

func NewProductRepository(seed []model.Product) *ProductRepository {
	r := &ProductRepository{products: make(map[string]model.Product, len(seed))}
	r.put(seed)
	return r
}

func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.products[id])
	}
	return out, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *ProductRepository) Upsert(ctx context.Context, products []model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(products)
	return nil
}

// 投入順を保って上書き。r.muを保持して呼ぶ（生成時は不要）
func (r *ProductRepository) put(products []model.Product) {
	for _, p := range products {
		if _, ok := r.products[p.ID]; !ok {
			r.order = append(r.order, p.ID)
		}
		r.products[p.ID] = p
	}
}
