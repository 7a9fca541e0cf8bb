package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/notes/internal/errors"
)

// Page bounds for list endpoints.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

var (
	// ErrInvalidOffset is returned when offset is not a non-negative integer.
	ErrInvalidOffset = apperrors.Wrap(
		apperrors.ErrInvalidInput,
		"invalid offset parameter: must be a non-negative integer",
	)

	// ErrInvalidLimit is returned when limit is outside 1..MaxPageLimit.
	ErrInvalidLimit = apperrors.Wrap(
		apperrors.ErrInvalidInput,
		"invalid limit parameter: must be between 1 and 100",
	)
)

// Page is the window requested by the offset and limit query parameters.
type Page struct {
	Offset int
	Limit  int
}

// ParsePagination reads offset and limit from the query string. Missing
// values fall back to 0 and DefaultPageLimit. Other query parameters are
// left for the caller.
func ParsePagination(c *gin.Context) (Page, error) {
	page := Page{Limit: DefaultPageLimit}

	if raw, ok := c.GetQuery("offset"); ok {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return Page{}, ErrInvalidOffset
		}
		page.Offset = offset
	}

	if raw, ok := c.GetQuery("limit"); ok {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > MaxPageLimit {
			return Page{}, ErrInvalidLimit
		}
		page.Limit = limit
	}

	return page, nil
}
