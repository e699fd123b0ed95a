// 1セッション分のカート状態。
// 変更 → スロットへ保存 → オブザーバ通知 をロック内で順に行う。
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

// カートの保存キー
const SlotKey = "CART"

// 追加数量が1未満
var ErrInvalidQuantity = errors.New("quantity must be positive")

// 確定した変更。Lines/Totalは保存済みの状態
type Event struct {
	Namespace string
	Action    model.CartAction
	LineID    string
	Quantity  int64
	Lines     []model.CartLine
	Total     int64
}

// 変更確定後に同期で呼ばれる。Storeを呼び返さないこと
type Observer func(Event)

// 一貫したスナップショット
type View struct {
	Lines []model.CartLine
	Total int64
	Count int64
}

type subscription struct {
	id int
	fn Observer
}

// Store はカートと保存先スロットの唯一の書き手
type Store struct {
	mu        sync.Mutex
	slots     repository.SlotRepository
	namespace string
	cart      model.Cart
	observers []subscription
	nextSubID int
	log       *slog.Logger
}

type Option func(*Store)

// ロガー差し替え（nilは無視）
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// 生成時にオブザーバを登録
func WithObserver(o Observer) Option {
	return func(s *Store) {
		s.subscribe(o)
	}
}

// スロットからカートを復元。無い・壊れている場合は空カート、読み込み失敗のみエラー
func Load(ctx context.Context, slots repository.SlotRepository, namespace string, opts ...Option) (*Store, error) {
	s := &Store{
		slots:     slots,
		namespace: namespace,
		cart:      model.Cart{Lines: []model.CartLine{}},
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := slots.Get(ctx, namespace, SlotKey)
	if errors.Is(err, repository.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", namespace, err)
	}

	lines, err := decode(raw)
	if err != nil {
		s.log.Warn("discarding unreadable cart", "namespace", namespace, "err", err)
		return s, nil
	}
	s.cart.Lines = lines
	return s, nil
}

func decode(raw string) ([]model.CartLine, error) {
	var lines []model.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, err
	}
	c := model.Cart{Lines: lines}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []model.CartLine{}
	}
	return lines, nil
}

// 登録解除用のfuncを返す
func (s *Store) Subscribe(o Observer) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.subscribe(o)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.observers {
			if sub.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) subscribe(o Observer) int {
	s.nextSubID++
	s.observers = append(s.observers, subscription{id: s.nextSubID, fn: o})
	return s.nextSubID
}

// 既存明細は数量のみ加算（スナップショットは最初のまま）
func (s *Store) AddItem(ctx context.Context, p model.Product, qty int64) error {
	if qty < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.Add(p, qty); err != nil {
		return err
	}
	return s.commit(ctx, Event{Action: model.CartActionAdd, LineID: p.ID, Quantity: qty})
}

// 数量にdeltaを加算、0以下で明細削除。未知のidは無視
func (s *Store) ChangeQuantity(ctx context.Context, id string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := s.cart.ChangeQuantity(id, delta)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return s.commit(ctx, Event{Action: model.CartActionChangeQuantity, LineID: id, Quantity: delta})
}

// 明細を削除（無くても保存・通知する）
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Remove(id)
	return s.commit(ctx, Event{Action: model.CartActionRemove, LineID: id})
}

// 全明細を削除
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	return s.commit(ctx, Event{Action: model.CartActionClear})
}

func (s *Store) Lines() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Snapshot()
}

func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

func (s *Store) Count() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Count()
}

func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Lines: s.cart.Snapshot(),
		Total: s.cart.Total(),
		Count: s.cart.Count(),
	}
}

// 保存してから通知。s.muを保持して呼ぶ
// 保存失敗時はメモリ上の変更は残し、通知しない
func (s *Store) commit(ctx context.Context, ev Event) error {
	raw, err := json.Marshal(s.cart.Snapshot())
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.slots.Put(ctx, s.namespace, SlotKey, string(raw)); err != nil {
		return fmt.Errorf("save cart %s: %w", s.namespace, err)
	}

	ev.Namespace = s.namespace
	ev.Lines = s.cart.Snapshot()
	ev.Total = s.cart.Total()
	for _, sub := range s.observers {
		sub.fn(ev)
	}
	return nil
}
