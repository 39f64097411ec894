package errors

import "net/http"

var (
	ErrEmptyQuery = New(
		"EMPTY_QUERY",
		"Search query is empty",
		http.StatusBadRequest,
	)

	ErrNoMatch = New(
		"NO_MATCH",
		"No region matches the query",
		http.StatusNotFound,
	)

	ErrRegionNotFound = New(
		"REGION_NOT_FOUND",
		"Region not found",
		http.StatusNotFound,
	)

	ErrNoActiveParent = New(
		"NO_ACTIVE_PARENT",
		"Select a parent region first",
		http.StatusConflict,
	)

	ErrSubRegionOutsideParent = New(
		"SUBREGION_OUTSIDE_PARENT",
		"Sub-region does not belong to the active region",
		http.StatusConflict,
	)

	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Map session not found",
		http.StatusNotFound,
	)

	ErrSessionClosed = New(
		"SESSION_CLOSED",
		"Map session is closed",
		http.StatusGone,
	)

	ErrStatsUnavailable = New(
		"STATS_UNAVAILABLE",
		"Statistics source is unavailable",
		http.StatusServiceUnavailable,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
