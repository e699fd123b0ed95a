package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品カタログの読み取りと、起動時のシード投入を約束。
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	// idは完全一致で探す。無ければErrNotFound
	FindByID(ctx context.Context, id string) (model.Product, error)
	Upsert(ctx context.Context, products []model.Product) error
}
