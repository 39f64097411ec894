package cache

import "fmt"

// StatsKey - ключ таблицы статистики; импорт удаляет его, чтобы сервис перечитал источник
const StatsKey = "stats:regions"

func weatherKey(place string) string {
	return fmt.Sprintf("weather:%s", place)
}
