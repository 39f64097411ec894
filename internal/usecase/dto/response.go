package dto

import (
	"time"

	"github.com/region-map-service/internal/domain"
)

// SuggestResponse - варианты автодополнения
type SuggestResponse struct {
	Results []SuggestResult `json:"results"`
	Total   int             `json:"total"`
}

// SuggestResult - один найденный объект
type SuggestResult struct {
	Name       string             `json:"name"`
	Layer      domain.Layer       `json:"layer"`
	ParentName string             `json:"parent_name,omitempty"`
	Bound      domain.BoundingBox `json:"bound"`
}

// ChildrenResponse - ключи следующего уровня иерархии
type ChildrenResponse struct {
	Path     []string `json:"path"`
	Level    string   `json:"level"`
	Children []string `json:"children"`
}

// StatsRefreshResponse - результат перезагрузки таблицы статистики
type StatsRefreshResponse struct {
	Records     int       `json:"records"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// HealthResponse - состояние сервиса
type HealthResponse struct {
	Status     string   `json:"status"`
	Regions    int      `json:"regions"`
	SubRegions int      `json:"subregions"`
	Stats      int      `json:"stats_records"`
	Sessions   int      `json:"sessions"`
	Workers    []string `json:"workers"`
}
