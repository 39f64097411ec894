package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/region-map-service/internal/domain"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails возвращает копию ошибки с деталями; общие переменные не меняются
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// Is сравнивает ошибки по коду, поэтому копии из WithDetails совпадают с оригиналом
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

var sentinels = []struct {
	err error
	app *AppError
}{
	{domain.ErrEmptyQuery, ErrEmptyQuery},
	{domain.ErrNoMatch, ErrNoMatch},
	{domain.ErrRegionNotFound, ErrRegionNotFound},
	{domain.ErrNoActiveParent, ErrNoActiveParent},
	{domain.ErrSubRegionOutsideParent, ErrSubRegionOutsideParent},
	{domain.ErrSessionNotFound, ErrSessionNotFound},
	{domain.ErrSessionClosed, ErrSessionClosed},
}

// Resolve переводит любую ошибку в AppError: доменные ошибки получают свой код,
// всё остальное становится INTERNAL_SERVER_ERROR.
func Resolve(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	for _, s := range sentinels {
		if stderrors.Is(err, s.err) {
			return s.app
		}
	}

	return ErrInternalServer
}
