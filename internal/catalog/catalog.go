// 固定の商品カタログ
package catalog

import "storefront/internal/domain/model"

// 表示順のカタログ（毎回新しいスライス）
func Seed() []model.Product {
	return []model.Product{
		{
			ID:          "1",
			Name:        "Teak Chair",
			Price:       2500000,
			Image:       "./images/products/chair-1.jpg",
			Description: "A minimalist chair carved from 100% solid Teak wood. Perfect for dining or accent use.",
		},
		{
			ID:          "2",
			Name:        "Wooden Bowl Set",
			Price:       150000,
			Image:       "./images/products/bowl-set.jpg",
			Description: "Handcrafted acacia wood bowls. Safe for food, easy to clean, and adds a natural touch.",
		},
		{
			ID:          "3",
			Name:        "Rustic Table",
			Price:       7000000,
			Image:       "./images/products/table.jpg",
			Description: "Reclaimed wood coffee table with a natural finish. Features a sturdy build and unique grain.",
		},
		{
			ID:          "4",
			Name:        "Vintage Lamp",
			Price:       500000,
			Image:       "./images/products/lamp.jpg",
			Description: "Warm ambient lighting with a hand-turned wooden base. Comes with an eco-friendly LED bulb.",
		},
	}
}
