package performance

import (
	"PerfDash/impl/core"
	"errors"
	"net/http"
)

func errorStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrNoSnapshot):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrStaleSnapshot):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
