package handler

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// pathID returns the :id parameter when it is a well-formed UUID.
func pathID(c echo.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// pageParams returns :page and :limit when both are positive integers and
// limit does not exceed maxLimit. A maxLimit of zero disables the cap.
func pageParams(c echo.Context, maxLimit int) (page, limit int, ok bool) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 1 {
		return 0, 0, false
	}
	limit, err = strconv.Atoi(c.Param("limit"))
	if err != nil || limit < 1 {
		return 0, 0, false
	}
	if maxLimit > 0 && limit > maxLimit {
		return 0, 0, false
	}
	return page, limit, true
}
