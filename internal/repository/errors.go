package repository

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/ddenisova/targbulk/internal/constant"
)

// StatusError carries a non-2xx remote response so callers can classify
// it without string-matching wrapped error text.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote status %d", e.Code)
	}
	return fmt.Sprintf("remote status %d: %s", e.Code, e.Body)
}

// AsStatusError unwraps err down to a StatusError, if there is one.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsTerminatedEmployee reports whether err is the 400 the scheduling API
// returns when the target employee is marked dismissed.
func IsTerminatedEmployee(err error) bool {
	se, ok := AsStatusError(err)
	if !ok || se.Code != http.StatusBadRequest {
		return false
	}
	body := strings.ToLower(se.Body)
	return strings.Contains(body, constant.TERMINATED_MARKER_EN) ||
		strings.Contains(body, constant.TERMINATED_MARKER_RU)
}
