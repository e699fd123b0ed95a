package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// CartUsecase は /cart の業務ロジック。
// セッションごとに cart.Store を1つ持ち、全ての読み書きはStore経由。
type CartUsecase struct {
	slots       repo.SlotRepository
	productRepo repo.ProductRepository
	eventRepo   repo.CartEventRepository
	links       *checkout.LinkBuilder
	destination string
	maxStores   int
	log         *slog.Logger

	mu     sync.Mutex
	stores map[string]*storeEntry
}

// refsは処理中のリクエスト数。0のものだけ追い出せる
type storeEntry struct {
	store *cart.Store
	refs  int
}

type CartUsecaseOptions struct {
	Destination string // チェックアウトの宛先（電話番号）
	MaxStores   int    // メモリに保持するStoreの上限
}

func NewCartUsecase(
	slots repo.SlotRepository,
	productRepo repo.ProductRepository,
	eventRepo repo.CartEventRepository,
	links *checkout.LinkBuilder,
	opts CartUsecaseOptions,
	log *slog.Logger,
) *CartUsecase {
	if opts.MaxStores < 1 {
		opts.MaxStores = 1024
	}
	if log == nil {
		log = slog.Default()
	}
	return &CartUsecase{
		slots:       slots,
		productRepo: productRepo,
		eventRepo:   eventRepo,
		links:       links,
		destination: opts.Destination,
		maxStores:   opts.MaxStores,
		log:         log,
		stores:      make(map[string]*storeEntry),
	}
}

type CartItemResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
	Quantity int64  `json:"quantity"`
	Subtotal int64  `json:"subtotal"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	Total      int64              `json:"total"`
	Count      int64              `json:"count"`
	TotalLabel string             `json:"total_label"`
}

type CheckoutResponse struct {
	URL        string `json:"url"`
	Total      int64  `json:"total"`
	TotalLabel string `json:"total_label"`
}

type AddCartInput struct {
	ProductID string
	Quantity  int64
}

type ChangeQuantityInput struct {
	Delta int64
}

func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartResponse, error) {
	s, release, err := u.acquire(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}
	defer release()
	return u.buildCartResponse(s.View()), nil
}

// AddToCart はカタログの商品を追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, sessionID string, in AddCartInput) (CartResponse, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	s, release, err := u.acquire(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}
	defer release()
	if err := s.AddItem(ctx, p, in.Quantity); err != nil {
		return CartResponse{}, u.storageError(sessionID, "add", err)
	}
	return u.buildCartResponse(s.View()), nil
}

// 数量をdelta分変更。0以下になった明細は消える。無いidは何もしない
func (u *CartUsecase) ChangeQuantity(ctx context.Context, sessionID string, lineID string, in ChangeQuantityInput) (CartResponse, error) {
	if strings.TrimSpace(lineID) == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Delta == 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid delta")
	}

	s, release, err := u.acquire(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}
	defer release()
	if err := s.ChangeQuantity(ctx, lineID, in.Delta); err != nil {
		return CartResponse{}, u.storageError(sessionID, "change quantity", err)
	}
	return u.buildCartResponse(s.View()), nil
}

// 明細削除。無いidは何もしない
func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID string, lineID string) (CartResponse, error) {
	if strings.TrimSpace(lineID) == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	s, release, err := u.acquire(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}
	defer release()
	if err := s.RemoveItem(ctx, lineID); err != nil {
		return CartResponse{}, u.storageError(sessionID, "remove", err)
	}
	return u.buildCartResponse(s.View()), nil
}

func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) (CartResponse, error) {
	s, release, err := u.acquire(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}
	defer release()
	if err := s.Clear(ctx); err != nil {
		return CartResponse{}, u.storageError(sessionID, "clear", err)
	}
	return u.buildCartResponse(s.View()), nil
}

// Checkout はメッセージリンクを作る。空カートは400で弾き、LinkBuilderは呼ばない。
func (u *CartUsecase) Checkout(ctx context.Context, sessionID string) (CheckoutResponse, error) {
	s, release, err := u.acquire(ctx, sessionID)
	if err != nil {
		return CheckoutResponse{}, err
	}
	defer release()

	v := s.View()
	if len(v.Lines) == 0 {
		return CheckoutResponse{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	link, err := u.links.Build(v.Lines, v.Total, u.destination)
	if err != nil {
		u.log.Error("checkout link failed", "session", sessionID, "err", err)
		return CheckoutResponse{}, NewHTTPError(http.StatusInternalServerError, "checkout unavailable")
	}

	u.log.Info("checkout link built", "session", sessionID, "lines", len(v.Lines), "total", v.Total)
	return CheckoutResponse{
		URL:        link,
		Total:      v.Total,
		TotalLabel: u.links.FormatMoney(v.Total),
	}, nil
}

// セッションのカート変更履歴（新しい順）
func (u *CartUsecase) ListEvents(ctx context.Context, sessionID string, limit int) ([]model.CartEvent, error) {
	if sessionID == "" {
		return []model.CartEvent{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}
	if limit < 0 || limit > 200 {
		return []model.CartEvent{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	events, err := u.eventRepo.List(ctx, repo.CartEventFilter{SessionID: sessionID, Limit: limit})
	if err != nil {
		return []model.CartEvent{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return events, nil
}

// acquire はセッションのStoreを返す。無ければスロットから復元して登録する。
// 使い終わったらreleaseを呼ぶこと（使用中のStoreは追い出さない）
func (u *CartUsecase) acquire(ctx context.Context, sessionID string) (*cart.Store, func(), error) {
	if sessionID == "" {
		return nil, nil, NewHTTPError(http.StatusUnauthorized, "no session")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	e, ok := u.stores[sessionID]
	if !ok {
		s, err := cart.Load(ctx, u.slots, sessionID,
			cart.WithLogger(u.log),
			cart.WithObserver(u.recordEvent),
		)
		if err != nil {
			return nil, nil, u.storageError(sessionID, "load", err)
		}
		u.evictIdle()
		e = &storeEntry{store: s}
		u.stores[sessionID] = e
	}
	e.refs++

	var once sync.Once
	release := func() {
		once.Do(func() {
			u.mu.Lock()
			defer u.mu.Unlock()
			e.refs--
		})
	}
	return e.store, release, nil
}

// 上限に達していたら未使用のStoreを1つ捨てる（状態はスロットに残っている）。
// 全部使用中なら一時的に上限を超える。u.muを保持して呼ぶ
func (u *CartUsecase) evictIdle() {
	if len(u.stores) < u.maxStores {
		return
	}
	for id, e := range u.stores {
		if e.refs == 0 {
			delete(u.stores, id)
			return
		}
	}
}

// cart.Storeのobserver。変更を履歴に残す
func (u *CartUsecase) recordEvent(ev cart.Event) {
	u.log.Debug("cart changed",
		"session", ev.Namespace,
		"action", ev.Action,
		"line", ev.LineID,
		"lines", len(ev.Lines),
		"total", ev.Total,
	)

	if u.eventRepo == nil {
		return
	}
	err := u.eventRepo.Create(context.Background(), model.CartEvent{
		SessionID: ev.Namespace,
		Action:    ev.Action,
		LineID:    ev.LineID,
		Quantity:  ev.Quantity,
		Total:     ev.Total,
		CreatedAt: time.Now(),
	})
	if err != nil {
		u.log.Warn("cart event not recorded", "session", ev.Namespace, "err", err)
	}
}

func (u *CartUsecase) storageError(sessionID, op string, err error) error {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		return NewHTTPError(http.StatusBadRequest, "invalid quantity")
	case errors.Is(err, model.ErrQuantityLimit), errors.Is(err, model.ErrTotalOverflow):
		return NewHTTPError(http.StatusBadRequest, "quantity limit exceeded")
	}
	u.log.Error("cart storage failed", "session", sessionID, "op", op, "err", err)
	return NewHTTPError(http.StatusInternalServerError, "storage error")
}

func (u *CartUsecase) buildCartResponse(v cart.View) CartResponse {
	items := make([]CartItemResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		items = append(items, CartItemResponse{
			ID:       l.ID,
			Name:     l.Name,
			Price:    l.Price,
			Image:    l.Image,
			Quantity: l.Quantity,
			Subtotal: l.Subtotal(),
		})
	}

	return CartResponse{
		Items:      items,
		Total:      v.Total,
		Count:      v.Count,
		TotalLabel: u.links.FormatMoney(v.Total),
	}
}
