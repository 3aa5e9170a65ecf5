package usecase

import (
	"context"
	"sync"

	"shoppingcart/internal/domain/model"
	"shoppingcart/internal/persistent"
	repo "shoppingcart/internal/repository"

	"github.com/sirupsen/logrus"
)

// 保存に使う固定キー
const DefaultStorageKey = "shopping-cart"

// CartUsecase はカートの状態を1か所で持つ。
// 明細は persistent.Value 経由で保存し、開閉状態はメモリだけに持つ。
type CartUsecase struct {
	items *persistent.Value[model.CartItems]
	log   *logrus.Entry

	uiMu   sync.RWMutex
	isOpen bool
}

// DI。key が空なら DefaultStorageKey。
// 保存済みの明細は model.CartItems の読み込み時に正規化される。
func NewCartUsecase(ctx context.Context, store repo.KVStore, key string, log *logrus.Entry) (*CartUsecase, error) {
	if key == "" {
		key = DefaultStorageKey
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	items, err := persistent.New(ctx, store, key,
		persistent.Lazy(func() model.CartItems { return model.CartItems{} }),
		persistent.WithLogger(log.WithField("component", "cart")),
	)
	if err != nil {
		return nil, err
	}

	return &CartUsecase{
		items: items,
		log:   log,
	}, nil
}

// 無ければ0
func (u *CartUsecase) GetItemQuantity(id int64) int64 {
	items := u.items.Get()
	if i := indexOf(items, id); i >= 0 {
		return items[i].Quantity
	}
	return 0
}

// 無ければ数量1で末尾に追加、あれば+1。
func (u *CartUsecase) IncreaseCartQuantity(ctx context.Context, id int64) error {
	err := u.items.Update(ctx, func(items model.CartItems) model.CartItems {
		if indexOf(items, id) < 0 {
			next := make([]model.CartItem, 0, len(items)+1)
			next = append(next, items...)
			return append(next, model.CartItem{ID: id, Quantity: 1})
		}
		return replaceQuantity(items, id, 1)
	})
	if err != nil {
		return newStorageError("increase cart quantity", err)
	}

	u.log.WithField("item_id", id).Debug("cart quantity increased")
	return nil
}

// 数量1なら削除、それ以外は-1。無いIDは何もしない（書き込みは行う）。
func (u *CartUsecase) DecreaseCartQuantity(ctx context.Context, id int64) error {
	err := u.items.Update(ctx, func(items model.CartItems) model.CartItems {
		i := indexOf(items, id)
		if i < 0 {
			return items
		}
		if items[i].Quantity <= 1 {
			return without(items, id)
		}
		return replaceQuantity(items, id, -1)
	})
	if err != nil {
		return newStorageError("decrease cart quantity", err)
	}

	u.log.WithField("item_id", id).Debug("cart quantity decreased")
	return nil
}

func (u *CartUsecase) RemoveFromCart(ctx context.Context, id int64) error {
	err := u.items.Update(ctx, func(items model.CartItems) model.CartItems {
		return without(items, id)
	})
	if err != nil {
		return newStorageError("remove from cart", err)
	}

	u.log.WithField("item_id", id).Debug("item removed from cart")
	return nil
}

// 明細を全削除
func (u *CartUsecase) ClearCart(ctx context.Context) error {
	if err := u.items.Set(ctx, model.CartItems{}); err != nil {
		return newStorageError("clear cart", err)
	}

	u.log.Debug("cart cleared")
	return nil
}

// 合計数量（毎回計算）
func (u *CartUsecase) CartQuantity() int64 {
	return model.TotalQuantity(u.items.Get())
}

// 追加順のコピーを返す
func (u *CartUsecase) CartItems() []model.CartItem {
	items := u.items.Get()
	out := make([]model.CartItem, len(items))
	copy(out, items)
	return out
}

func (u *CartUsecase) OpenCart() {
	u.uiMu.Lock()
	defer u.uiMu.Unlock()
	u.isOpen = true
}

func (u *CartUsecase) CloseCart() {
	u.uiMu.Lock()
	defer u.uiMu.Unlock()
	u.isOpen = false
}

func (u *CartUsecase) IsOpen() bool {
	u.uiMu.RLock()
	defer u.uiMu.RUnlock()
	return u.isOpen
}

func (u *CartUsecase) State() model.CartState {
	items := u.CartItems()
	return model.CartState{
		Items:        items,
		CartQuantity: model.TotalQuantity(items),
		IsOpen:       u.IsOpen(),
	}
}

func indexOf(items []model.CartItem, id int64) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// 元のスライスは書き換えない
func replaceQuantity(items []model.CartItem, id int64, delta int64) []model.CartItem {
	next := make([]model.CartItem, len(items))
	for i, it := range items {
		if it.ID == id {
			it.Quantity += delta
		}
		next[i] = it
	}
	return next
}

func without(items []model.CartItem, id int64) []model.CartItem {
	next := make([]model.CartItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	return next
}
