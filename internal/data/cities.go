// Package data содержит статические справочники.
package data

import "strings"

// Cities список городов для фильтрации заказов и подписок исполнителей.
var Cities = []string{
	"Москва",
	"Санкт-Петербург",
	"Новосибирск",
	"Екатеринбург",
	"Казань",
	"Нижний Новгород",
	"Челябинск",
	"Самара",
	"Омск",
	"Ростов-на-Дону",
	"Уфа",
	"Красноярск",
	"Воронеж",
	"Пермь",
	"Волгоград",
	"Краснодар",
	"Саратов",
	"Тюмень",
	"Тольятти",
	"Ижевск",
	"Барнаул",
	"Ульяновск",
	"Иркутск",
	"Хабаровск",
	"Ярославль",
	"Владивосток",
	"Махачкала",
	"Томск",
	"Оренбург",
	"Кемерово",
	"Новокузнецк",
	"Рязань",
	"Астрахань",
	"Набережные Челны",
	"Пенза",
	"Липецк",
	"Киров",
	"Чебоксары",
	"Калининград",
	"Тула",
}

// SearchCities возвращает города, содержащие query (без учета регистра).
// Пустой запрос возвращает полный список.
func SearchCities(query string) []string {
	if query == "" {
		return Cities
	}
	q := strings.ToLower(query)
	var res []string
	for _, city := range Cities {
		if strings.Contains(strings.ToLower(city), q) {
			res = append(res, city)
		}
	}
	return res
}
