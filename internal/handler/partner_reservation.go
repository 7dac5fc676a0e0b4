package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tablebook/internal/model"
	"tablebook/internal/queue"
	"tablebook/internal/repository"
	queuepublisher "tablebook/internal/service"
)

// PartnerReservationHandler serves the partner side of the reservation
// lifecycle: acting on incoming bookings, listing a store's reservations and
// the kiosk check-in endpoint.
type PartnerReservationHandler struct {
	Reservations *repository.ReservationRepo
	Stores       *repository.StoreRepo
}

func NewPartnerReservationHandler(resRepo *repository.ReservationRepo, storeRepo *repository.StoreRepo) *PartnerReservationHandler {
	if resRepo == nil || storeRepo == nil {
		panic("nil repository passed to NewPartnerReservationHandler")
	}
	return &PartnerReservationHandler{Reservations: resRepo, Stores: storeRepo}
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /v1/stores/:store_id/reservations/:id/status.
// The target status is parsed case-insensitively; an unknown name is a 400.
// The transition is applied unconditionally once ownership is verified — the
// lifecycle imposes no from-state guard on partner actions.
func (h *PartnerReservationHandler) UpdateStatus(c echo.Context) error {
	partnerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid store id"})
	}
	resID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status, err := model.ParseReservationStatus(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx := c.Request().Context()
	res, err := h.Reservations.GetByIDForPartner(ctx, resID, partnerID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if res.StoreID != storeID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	if err := h.Reservations.UpdateStatus(ctx, resID, status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
	}
	res.Status = status
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}

// ListByStore handles GET /v1/stores/:id/reservations.  Only the store's
// owner may list its reservations; results come back oldest first so the
// day's bookings read in arrival order.
func (h *PartnerReservationHandler) ListByStore(c echo.Context) error {
	partnerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	storeID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid store id"})
	}
	ctx := c.Request().Context()
	store, err := h.Stores.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !store.IsOwnedBy(partnerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	items, err := h.Reservations.ListByStore(ctx, storeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CheckIn handles POST /v1/stores/:store_id/reservations/:id/checkin, the
// kiosk arrival confirmation.  Inside the ten-minute window with an APPROVED
// reservation the guest is marked VISITED; any other combination marks the
// reservation NO_SHOW and fails.  The NO_SHOW write on the failure path is
// intentional: a failed check-in attempt is itself the no-show signal.
func (h *PartnerReservationHandler) CheckIn(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid store id"})
	}
	resID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	res, err := h.Reservations.GetByIDAndStore(ctx, resID, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	now := time.Now().UTC()
	if !res.CanCheckIn(now) {
		if err := h.Reservations.UpdateStatus(ctx, resID, model.StatusNoShow); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": "not a valid check-in window or status"})
	}

	if err := h.Reservations.UpdateStatus(ctx, resID, model.StatusVisited); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
	}
	res.Status = model.StatusVisited

	h.publishVisited(res, now)

	return c.JSON(http.StatusOK, echo.Map{"item": res})
}

// publishVisited emits the reservation.visited event.  Best effort: a broker
// outage never fails a check-in that already committed.
func (h *PartnerReservationHandler) publishVisited(res *model.Reservation, visitedAt time.Time) {
	storeName := ""
	if store, err := h.Stores.GetByID(context.Background(), res.StoreID); err == nil {
		storeName = store.Name
	}
	ev := queue.ReservationVisitedEvent{
		ReservationID: res.ID,
		CustomerID:    res.CustomerID,
		StoreID:       res.StoreID,
		StoreName:     storeName,
		PartyName:     res.PartyName,
		PartySize:     res.PartySize,
		ScheduledTime: res.ScheduledTime.Format(time.RFC3339),
		VisitedAt:     visitedAt.Format(time.RFC3339),
	}
	_ = queuepublisher.PublishReservationVisited(context.Background(), ev)
}
