package repoargs

// UpsertUser данные из telegram initData. Запись создается при первом входе,
// при повторных входах обновляются только профильные поля.
type UpsertUser struct {
	ID           int64
	Username     string
	FirstName    string
	LastName     string
	LanguageCode string
}

type UpdateNotificationSettings struct {
	Enabled          *bool
	FrequencyMinutes *int
}

// AdjustCounters дельты счетчиков заказов юзера. Счетчик активных заказов
// не опускается ниже нуля.
type AdjustCounters struct {
	ActiveDelta    int
	CompletedDelta int
}
