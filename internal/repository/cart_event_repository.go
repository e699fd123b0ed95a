package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

// カート履歴の絞り込み条件。
type CartEventFilter struct {
	SessionID   string
	Action      *model.CartAction
	CreatedFrom *time.Time
	Limit       int
	Offset      int
}

// DefaultEventLimit はLimit未指定（または範囲外）のときの件数。
const DefaultEventLimit = 50

// NormalizedLimit はLimitを 1..200 に収める。
func (f CartEventFilter) NormalizedLimit() int {
	if f.Limit <= 0 || f.Limit > 200 {
		return DefaultEventLimit
	}
	return f.Limit
}

// カート履歴の保存・一覧取得の約束。
type CartEventRepository interface {
	Create(ctx context.Context, ev model.CartEvent) error
	//新しい順に返す
	List(ctx context.Context, filter CartEventFilter) ([]model.CartEvent, error)
}
