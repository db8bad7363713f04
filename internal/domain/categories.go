package domain

// Categories фиксированный набор категорий заказов.
var Categories = []string{
	"Сантехника",
	"Электрика",
	"Бытовой ремонт",
	"Клининг",
	"Сборка/установка",
	"Бытовая техника",
	"Другое",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
