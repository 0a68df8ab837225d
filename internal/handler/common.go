// Package handler implements the dacha REST API.  Every error response is
// {"detail": "..."}; the front end shows the detail text as is.
package handler

import (
    "context"
    "io"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/dacha-booking/internal/validation"
)

const (
    defaultPageSize = 24
    maxPageSize     = 100
    maxBodyBytes    = 64 << 10
    dbTimeout       = 5 * time.Second
)

func detail(c echo.Context, status int, msg string) error {
    return c.JSON(status, echo.Map{"detail": msg})
}

// dbCtx bounds a handler's storage calls.
func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (int64, bool) {
    id, err := strconv.ParseInt(c.Param(name), 10, 64)
    if err != nil || id <= 0 {
        return 0, false
    }
    return id, true
}

// pageParams reads page and size, defaulting to 1 and 24 and capping size.
func pageParams(c echo.Context) (page, size int) {
    page, _ = strconv.Atoi(c.QueryParam("page"))
    if page < 1 {
        page = 1
    }
    size, _ = strconv.Atoi(c.QueryParam("size"))
    if size < 1 {
        size = defaultPageSize
    }
    if size > maxPageSize {
        size = maxPageSize
    }
    return page, size
}

func pageCount(total int64, size int) int {
    return int((total + int64(size) - 1) / int64(size))
}

// readValidated reads the request body and checks it against schema.  On
// failure the 400 response has already been written and ok is false.
func readValidated(c echo.Context, schema string) (body []byte, ok bool, err error) {
    body, err = io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
    if err != nil {
        return nil, false, detail(c, http.StatusBadRequest, "cannot read body")
    }
    if verr := validation.Validate(schema, body); verr != nil {
        return nil, false, detail(c, http.StatusBadRequest, verr.Error())
    }
    return body, true, nil
}
