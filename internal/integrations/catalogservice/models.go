package catalogservice

// Service модель услуги из каталога салона
type Service struct {
	ID                    string `json:"id"`
	SalonID               string `json:"salonId"`
	Name                  string `json:"name"`
	DurationMinutes       int    `json:"durationMinutes"`
	PriceAmount           int64  `json:"priceAmount"` // в минимальных денежных единицах
	OvertimeRatePerMinute int64  `json:"overtimeRatePerMinute"`
}

// Staff модель мастера салона с расписанием работы
type Staff struct {
	ID           string       `json:"id"`
	SalonID      string       `json:"salonId"`
	Name         string       `json:"name"`
	WorkingHours WeekSchedule `json:"workingHours"`
}

// WeekSchedule расписание работы мастера по дням недели
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule рабочие часы одного дня
type DaySchedule struct {
	IsWorking bool    `json:"isWorking"`
	OpenTime  *string `json:"openTime,omitempty"`  // "09:00"
	CloseTime *string `json:"closeTime,omitempty"` // "18:00"
}
