package repository

import "context"

// 永続化スロット（namespace + key -> value）の約束。
// namespaceはセッションID、keyは "CART" など。
type SlotRepository interface {
	// 値が無ければErrNotFound
	Get(ctx context.Context, namespace, key string) (string, error)
	Put(ctx context.Context, namespace, key, value string) error
}
