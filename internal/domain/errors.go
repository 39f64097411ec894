package domain

import "errors"

var (
	// ErrEmptyQuery - пустой поисковый запрос (ошибка ввода, а не "ничего не найдено")
	ErrEmptyQuery = errors.New("empty search query")

	// ErrNoMatch - ни один объект не подошёл под запрос
	ErrNoMatch = errors.New("no region matches query")

	// ErrRegionNotFound - объект с таким именем отсутствует в слое
	ErrRegionNotFound = errors.New("region not found")

	// ErrNoActiveParent - район нельзя выбрать без активного штата
	ErrNoActiveParent = errors.New("no active parent region")

	// ErrSubRegionOutsideParent - район не принадлежит активному штату
	ErrSubRegionOutsideParent = errors.New("subregion does not belong to active parent")

	// ErrWeatherUnavailable - источник погоды не вернул данных
	ErrWeatherUnavailable = errors.New("weather data unavailable")

	// ErrSessionNotFound - сессии карты с таким ID нет
	ErrSessionNotFound = errors.New("map session not found")

	// ErrSessionClosed - сессия уже закрыта
	ErrSessionClosed = errors.New("map session closed")
)
