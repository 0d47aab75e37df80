package store

import "self-order-api/models"

// seedDishes is the demo menu the mock store starts with, so the app is
// usable without a configured backend.
func seedDishes() []models.Dish {
	return []models.Dish{
		{
			ID:        101,
			Name:      "川味辣子鸡",
			Price:     38.00,
			Category:  models.CategoryMeat,
			Image:     "https://picsum.photos/id/292/300/300",
			Sales:     450,
			Spiciness: 4,
		},
		{
			ID:        102,
			Name:      "秘制红烧肉",
			Price:     45.00,
			Category:  models.CategoryMeat,
			Image:     "https://picsum.photos/id/488/300/300",
			Sales:     1200,
			Spiciness: 1,
		},
		{
			ID:       201,
			Name:     "清炒西兰花",
			Price:    18.00,
			Category: models.CategoryVeg,
			Image:    "https://picsum.photos/id/365/300/300",
			Sales:    890,
		},
		{
			ID:        202,
			Name:      "麻婆豆腐",
			Price:     22.00,
			Category:  models.CategoryVeg,
			Image:     "https://picsum.photos/id/490/300/300",
			Sales:     600,
			Spiciness: 3,
		},
		{
			ID:        301,
			Name:      "红烧牛肉面",
			Price:     28.00,
			Category:  models.CategorySoup,
			Image:     "https://picsum.photos/id/225/300/300",
			Sales:     2100,
			Spiciness: 2,
		},
		{
			ID:       401,
			Name:     "港式冻柠茶",
			Price:    12.00,
			Category: models.CategoryDrink,
			Image:    "https://picsum.photos/id/430/300/300",
			Sales:    3000,
		},
		{
			ID:        402,
			Name:      "精酿啤酒",
			Price:     25.00,
			Category:  models.CategoryDrink,
			Image:     "https://picsum.photos/id/443/300/300",
			Sales:     150,
			IsSoldOut: true,
		},
	}
}
