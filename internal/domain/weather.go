package domain

import "time"

// WeatherSnapshot - текущая погода для выбранного региона.
// RegionName - тег региона, для которого был сделан запрос.
type WeatherSnapshot struct {
	RegionName   string    `json:"region_name"`
	Place        string    `json:"place"`
	TemperatureC float64   `json:"temperature_c"`
	Condition    string    `json:"condition"`
	WindSpeedMS  float64   `json:"wind_speed_ms"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// WeatherStatus - состояние панели погоды
type WeatherStatus string

const (
	WeatherIdle        WeatherStatus = "idle"
	WeatherLoading     WeatherStatus = "loading"
	WeatherReady       WeatherStatus = "ready"
	WeatherUnavailable WeatherStatus = "unavailable"
)
