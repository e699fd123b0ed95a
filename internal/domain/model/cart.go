package model

import (
	"errors"
	"fmt"
	"math"
)

// 1明細あたりの数量上限
const MaxLineQuantity int64 = 9999

var (
	ErrInvalidLine   = errors.New("invalid cart line")
	ErrQuantityLimit = errors.New("quantity limit exceeded")
	ErrTotalOverflow = errors.New("cart total overflow")
)

// Cart は明細の順序付きリスト（追加順）。
// 同じidの明細は1つだけ、quantityは 1..MaxLineQuantity、合計はint64に収まる。
type Cart struct {
	Lines []CartLine
}

// 明細の位置。無ければ-1
func (c *Cart) index(id string) int {
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			return i
		}
	}
	return -1
}

// 同一商品は数量加算、無ければ末尾に追加。
// 上限超えや合計のオーバーフローになる場合は何も変えずにエラー。
func (c *Cart) Add(p Product, qty int64) error {
	i := c.index(p.ID)
	if i < 0 {
		if qty > MaxLineQuantity {
			return fmt.Errorf("%w: %d > %d", ErrQuantityLimit, qty, MaxLineQuantity)
		}
		c.Lines = append(c.Lines, NewCartLine(p, qty))
		if _, ok := checkedTotal(c.Lines); !ok {
			c.Lines = c.Lines[:len(c.Lines)-1]
			return ErrTotalOverflow
		}
		return nil
	}
	return c.grow(i, qty)
}

// ChangeQuantity は数量にdeltaを足す。0以下になったら明細ごと消す。
// 明細が無ければfalse。
func (c *Cart) ChangeQuantity(id string, delta int64) (bool, error) {
	i := c.index(id)
	if i < 0 {
		return false, nil
	}
	if delta > 0 {
		return true, c.grow(i, delta)
	}
	// quantity >= 1 なので負のdeltaでは桁あふれしない
	c.Lines[i].Quantity += delta
	if c.Lines[i].Quantity <= 0 {
		c.removeAt(i)
	}
	return true, nil
}

// i番目の明細をqty(>0)増やす
func (c *Cart) grow(i int, qty int64) error {
	cur := c.Lines[i].Quantity
	if qty > MaxLineQuantity-cur {
		return fmt.Errorf("%w: line %q", ErrQuantityLimit, c.Lines[i].ID)
	}
	c.Lines[i].Quantity = cur + qty
	if _, ok := checkedTotal(c.Lines); !ok {
		c.Lines[i].Quantity = cur
		return ErrTotalOverflow
	}
	return nil
}

func (c *Cart) Remove(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.removeAt(i)
	return true
}

func (c *Cart) removeAt(i int) {
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
}

func (c *Cart) Clear() {
	c.Lines = []CartLine{}
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// 合計金額（price * quantity の総和）
// Add/ChangeQuantity/Validateを通った明細なら桁あふれしない。
func (c Cart) Total() int64 {
	total, _ := checkedTotal(c.Lines)
	return total
}

// 数量の総和（カートアイコンのバッジ用）
func (c Cart) Count() int64 {
	var n int64
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Snapshot は呼び出し側が書き換えても影響しないコピーを返す。
func (c Cart) Snapshot() []CartLine {
	out := make([]CartLine, len(c.Lines))
	copy(out, c.Lines)
	return out
}

// Validate は保存データから復元した明細が不変条件を満たすか確認する。
func (c Cart) Validate() error {
	seen := make(map[string]struct{}, len(c.Lines))
	for i, l := range c.Lines {
		if l.ID == "" {
			return fmt.Errorf("%w: line %d has empty id", ErrInvalidLine, i)
		}
		if l.Quantity < 1 || l.Quantity > MaxLineQuantity {
			return fmt.Errorf("%w: line %q quantity %d", ErrInvalidLine, l.ID, l.Quantity)
		}
		if l.Price < 0 {
			return fmt.Errorf("%w: line %q price %d", ErrInvalidLine, l.ID, l.Price)
		}
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidLine, l.ID)
		}
		seen[l.ID] = struct{}{}
	}
	if _, ok := checkedTotal(c.Lines); !ok {
		return fmt.Errorf("%w: %v", ErrInvalidLine, ErrTotalOverflow)
	}
	return nil
}

// price*quantityの総和。負の値や桁あふれがあればfalse
func checkedTotal(lines []CartLine) (int64, bool) {
	var total int64
	for _, l := range lines {
		if l.Price < 0 || l.Quantity < 0 {
			return 0, false
		}
		if l.Quantity > 0 && l.Price > math.MaxInt64/l.Quantity {
			return 0, false
		}
		sub := l.Price * l.Quantity
		if total > math.MaxInt64-sub {
			return 0, false
		}
		total += sub
	}
	return total, true
}
