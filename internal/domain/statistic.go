package domain

import (
	"strconv"
)

// NotAvailable - отображаемое значение для отсутствующих данных
const NotAvailable = "not available"

// ClaimCounts - разбивка количества заявлений/титулов
type ClaimCounts struct {
	Individual int64 `json:"individual"`
	Community  int64 `json:"community"`
	Total      int64 `json:"total"`
}

// RegionStatistic - статистика по заявлениям для региона.
// ClaimsRejected == nil означает "нет данных", это не то же самое, что 0.
type RegionStatistic struct {
	Region            string      `json:"region"`
	ClaimsReceived    ClaimCounts `json:"claims_received"`
	TitlesDistributed ClaimCounts `json:"titles_distributed"`
	ClaimsRejected    *int64      `json:"claims_rejected"`
	ClaimsDisposed    int64       `json:"claims_disposed"`
	PercentDisposed   float64     `json:"percent_disposed"`
	ClaimsPending     int64       `json:"claims_pending"`
}

// ClampedPercent возвращает PercentDisposed, ограниченный диапазоном [0, 100].
// Значение из источника не пересчитывается.
func (s *RegionStatistic) ClampedPercent() float64 {
	switch {
	case s.PercentDisposed < 0:
		return 0
	case s.PercentDisposed > 100:
		return 100
	default:
		return s.PercentDisposed
	}
}

// RejectedDisplay форматирует ClaimsRejected для панели
func (s *RegionStatistic) RejectedDisplay() string {
	if s.ClaimsRejected == nil {
		return NotAvailable
	}
	return strconv.FormatInt(*s.ClaimsRejected, 10)
}

// Consistent проверяет инвариант claims_disposed <= claims_received.total
func (s *RegionStatistic) Consistent() bool {
	return s.ClaimsDisposed <= s.ClaimsReceived.Total
}

// StatsTable - неизменяемая таблица статистики, ключ - нормализованное имя региона
type StatsTable struct {
	records map[string]*RegionStatistic
}

// NewStatsTable строит таблицу; fold нормализует имя региона (регистр и пробелы).
// При дублях побеждает первая запись.
func NewStatsTable(records []RegionStatistic, fold func(string) string) *StatsTable {
	t := &StatsTable{records: make(map[string]*RegionStatistic, len(records))}
	for i := range records {
		key := fold(records[i].Region)
		if key == "" {
			continue
		}
		if _, exists := t.records[key]; exists {
			continue
		}
		rec := records[i]
		t.records[key] = &rec
	}
	return t
}

// Lookup ищет запись по уже нормализованному ключу
func (t *StatsTable) Lookup(key string) (*RegionStatistic, bool) {
	if t == nil {
		return nil, false
	}
	rec, ok := t.records[key]
	return rec, ok
}

// Len возвращает количество записей
func (t *StatsTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// StatsPanelStatus - состояние панели статистики
type StatsPanelStatus string

const (
	StatsPanelIdle    StatsPanelStatus = "idle"
	StatsPanelOK      StatsPanelStatus = "ok"
	StatsPanelNoData  StatsPanelStatus = "no_data"
	StatsPanelCleared StatsPanelStatus = "cleared"
)

// StatsPanelNoDataMessage показывается вместо нулей, когда для региона нет записи
const StatsPanelNoDataMessage = "select a region with data"

// StatsPanel - то, что видит пользователь в боковой панели статистики
type StatsPanel struct {
	Status         StatsPanelStatus `json:"status"`
	Message        string           `json:"message,omitempty"`
	Statistic      *RegionStatistic `json:"statistic,omitempty"`
	ClaimsRejected string           `json:"claims_rejected_display,omitempty"`
}
