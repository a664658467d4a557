package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "londonhealth/internal/errors"
	"londonhealth/internal/service"
)

// PageResponse wraps one page of results with its pagination window.
type PageResponse struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PerPage    int         `json:"per_page"`
	TotalPages int         `json:"total_pages"`
}

// NewPageResponse assembles a PageResponse with total_pages = ceil(total/perPage).
func NewPageResponse(items interface{}, total int64, page, perPage int) PageResponse {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = service.DefaultPerPage
	}
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return PageResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: pages,
	}
}

// pageParams reads ?page and ?per_page with defaults.
func pageParams(c echo.Context) (page, perPage int) {
	page = 1
	perPage = service.DefaultPerPage
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("per_page")); err == nil && v > 0 {
		perPage = v
	}
	return page, perPage
}

// domainError converts a service error into the standard JSON error shape.
func domainError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
