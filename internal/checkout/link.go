// 注文用のメッセージリンク（wa.me）を組み立てる
package checkout

import (
	"errors"
	"net/url"
	"strings"

	"storefront/internal/domain/model"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultBaseURL  = "https://wa.me/"
	DefaultGreeting = "Hello! I would like to place an order:"
	DefaultClosing  = "Please confirm availability."
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrNoDestination = errors.New("destination is required")
)

// 明細から注文メッセージ付きのURLを作る
type LinkBuilder struct {
	BaseURL  string
	Greeting string
	Closing  string
	Currency string
	Tag      language.Tag
}

func NewLinkBuilder(baseURL, greeting string) *LinkBuilder {
	b := &LinkBuilder{
		BaseURL:  baseURL,
		Greeting: greeting,
		Closing:  DefaultClosing,
		Currency: "Rp",
		Tag:      language.Indonesian,
	}
	if b.BaseURL == "" {
		b.BaseURL = DefaultBaseURL
	}
	if b.Greeting == "" {
		b.Greeting = DefaultGreeting
	}
	return b
}

// BaseURL + 宛先 + "?text=" + エンコード済みメッセージ。
// 空カートは呼び出し側で弾く前提（来たらErrEmptyCart）
func (b *LinkBuilder) Build(lines []model.CartLine, total int64, destination string) (string, error) {
	destination = strings.TrimPrefix(strings.TrimSpace(destination), "+")
	if destination == "" {
		return "", ErrNoDestination
	}
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	base := b.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + url.PathEscape(destination) + "?text=" + url.QueryEscape(b.Message(lines, total)), nil
}

// 注文メッセージ本文:
//
//	Hello! I would like to place an order:
//
//	- Teak Chair (x2): Rp 5.000.000
//
//	*Total Price: Rp 5.000.000*
//
//	Please confirm availability.
func (b *LinkBuilder) Message(lines []model.CartLine, total int64) string {
	p := message.NewPrinter(b.Tag)

	var sb strings.Builder
	sb.WriteString(b.Greeting)
	sb.WriteString("\n\n")
	for _, l := range lines {
		sb.WriteString(p.Sprintf("- %s (x%d): %s\n", l.Name, l.Quantity, b.money(p, l.Subtotal())))
	}
	sb.WriteString("\n*Total Price: " + b.money(p, total) + "*")
	if b.Closing != "" {
		sb.WriteString("\n\n" + b.Closing)
	}
	return sb.String()
}

// 通貨記号 + ロケールの桁区切り（Rp 5.000.000）
func (b *LinkBuilder) FormatMoney(amount int64) string {
	return b.money(message.NewPrinter(b.Tag), amount)
}

func (b *LinkBuilder) money(p *message.Printer, amount int64) string {
	return b.Currency + " " + p.Sprintf("%d", amount)
}
