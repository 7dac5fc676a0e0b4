package router

import (
	"github.com/labstack/echo/v4"

	"tablebook/internal/handler"
	"tablebook/internal/middleware"
	"tablebook/internal/model"
)

// RegisterPartner registers partner-scoped endpoints under /v1.  All routes
// require a valid JWT and the PARTNER role.  Partners manage their stores,
// act on incoming reservations and run the kiosk check-in.
func RegisterPartner(e *echo.Echo, store *handler.PartnerStoreHandler, res *handler.PartnerReservationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RolePartner),
	)
	g.POST("/stores", store.Create)
	g.PUT("/stores/:id", store.Update)
	g.DELETE("/stores/:id", store.Delete)

	g.GET("/stores/:id/reservations", res.ListByStore)
	g.PATCH("/stores/:store_id/reservations/:id/status", res.UpdateStatus)
	g.POST("/stores/:store_id/reservations/:id/checkin", res.CheckIn)
}
