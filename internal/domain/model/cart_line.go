package model

// カートの明細
// 追加時点の商品情報（価格含む）をそのまま保持する。
type CartLine struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
	Quantity int64  `json:"quantity"`
}

// NewCartLine は商品のスナップショットから明細を作る。
func NewCartLine(p Product, qty int64) CartLine {
	return CartLine{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: qty,
	}
}

func (l CartLine) Subtotal() int64 {
	return l.Price * l.Quantity
}
