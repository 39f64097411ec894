package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/region-map-service/internal/domain"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"empty query", domain.ErrEmptyQuery, "EMPTY_QUERY", http.StatusBadRequest},
		{"wrapped no match", fmt.Errorf("search %q: %w", "xyz", domain.ErrNoMatch), "NO_MATCH", http.StatusNotFound},
		{"no active parent", domain.ErrNoActiveParent, "NO_ACTIVE_PARENT", http.StatusConflict},
		{"outside parent", domain.ErrSubRegionOutsideParent, "SUBREGION_OUTSIDE_PARENT", http.StatusConflict},
		{"session closed", domain.ErrSessionClosed, "SESSION_CLOSED", http.StatusGone},
		{"app error passthrough", ErrInvalidRequest, "INVALID_REQUEST", http.StatusBadRequest},
		{"unknown", stderrors.New("boom"), "INTERNAL_SERVER_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.err)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
		})
	}

	assert.Nil(t, Resolve(nil))
}

func TestWithDetails_DoesNotMutateShared(t *testing.T) {
	detailed := ErrInvalidRequest.WithDetails(map[string]interface{}{"field": "name"})

	assert.Equal(t, "name", detailed.Details["field"])
	assert.Nil(t, ErrInvalidRequest.Details)
	assert.True(t, stderrors.Is(detailed, ErrInvalidRequest))
	assert.False(t, stderrors.Is(detailed, ErrNoMatch))
}
