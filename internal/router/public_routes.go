package router

import (
	"github.com/labstack/echo/v4"

	"tablebook/internal/handler"
)

// RegisterPublic registers unauthenticated browse endpoints: store listing
// and search, store details, review listing and name autocomplete.  The
// caller passes the rate-limit and response-cache middleware so these
// read-heavy endpoints share one Redis budget.
func RegisterPublic(e *echo.Echo, store *handler.PublicStoreHandler, rev *handler.ReviewHandler, mws ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mws...)
	g.GET("/stores", store.List)
	g.GET("/stores/:id", store.Get)
	g.GET("/stores/:id/reviews", rev.ListByStore)
	g.GET("/search/autocomplete", store.Autocomplete)
}
