package router

import (
	"github.com/labstack/echo/v4"

	"tablebook/internal/handler"
	"tablebook/internal/middleware"
	"tablebook/internal/model"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT and the CUSTOMER role.  Customers can book
// reservations, list their own bookings, cancel them and write reviews for
// visited reservations.
func RegisterCustomer(e *echo.Echo, res *handler.CustomerReservationHandler, rev *handler.ReviewHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer),
	)
	g.POST("/reservations", res.Create)
	g.GET("/my-reservations", res.ListMine)
	g.PATCH("/reservations/:id/cancel", res.Cancel)

	g.POST("/reviews", rev.Create)
	g.PUT("/reviews/:id", rev.Update)
	g.DELETE("/reviews/:id", rev.Delete)
}
