package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"tablebook/internal/model"
	"tablebook/internal/repository"
)

// CustomerReservationHandler serves booking endpoints for authenticated
// customers.  JWT authentication and the CUSTOMER role are enforced by
// middleware before any of these methods run.
type CustomerReservationHandler struct {
	Reservations *repository.ReservationRepo
	Stores       *repository.StoreRepo
}

func NewCustomerReservationHandler(resRepo *repository.ReservationRepo, storeRepo *repository.StoreRepo) *CustomerReservationHandler {
	if resRepo == nil || storeRepo == nil {
		panic("nil repository passed to NewCustomerReservationHandler")
	}
	return &CustomerReservationHandler{Reservations: resRepo, Stores: storeRepo}
}

type createReservationReq struct {
	StoreID       uint64    `json:"store_id"`
	PartyName     string    `json:"party_name"`
	PartySize     int       `json:"party_size"`
	ScheduledTime time.Time `json:"scheduled_time"`
}

// Create handles POST /v1/reservations.  A booking starts in PENDING and
// waits for the partner to act on it.  The scheduled time must be strictly
// in the future, and an active (pending or approved) reservation with the
// same party name at the same store is rejected as a duplicate.
func (h *CustomerReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.PartyName = strings.TrimSpace(req.PartyName)
	if req.StoreID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "store_id is required"})
	}
	if req.PartyName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "party_name is required"})
	}
	if req.PartySize < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "party_size must be at least 1"})
	}
	if !req.ScheduledTime.After(time.Now().UTC()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "scheduled_time must be in the future"})
	}

	ctx := c.Request().Context()
	if _, err := h.Stores.GetByID(ctx, req.StoreID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	// Fail-fast duplicate check; the unique key on the reservations table is
	// the authoritative guard against concurrent identical requests.
	dup, err := h.Reservations.ExistsActiveDuplicate(ctx, req.StoreID, req.PartyName)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if dup {
		return c.JSON(http.StatusConflict, echo.Map{"error": "active reservation with this party name already exists"})
	}

	res := &model.Reservation{
		CustomerID:    userID,
		StoreID:       req.StoreID,
		PartyName:     req.PartyName,
		PartySize:     req.PartySize,
		ScheduledTime: req.ScheduledTime.UTC(),
	}
	if err := h.Reservations.Create(ctx, res); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "active reservation with this party name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": res})
}

// ListMine handles GET /v1/my-reservations.  Returns the customer's
// reservations, most recently created first; an empty array when none exist.
func (h *CustomerReservationHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Reservations.ListByCustomer(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Cancel handles PATCH /v1/reservations/:id/cancel.  Cancellation is a
// status write, never a delete, and is allowed from any current state as
// long as the reservation belongs to the caller.
func (h *CustomerReservationHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	res, err := h.Reservations.GetByID(ctx, resID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if res.CustomerID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Reservations.UpdateStatus(ctx, resID, model.StatusCanceled); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel reservation"})
	}
	res.Status = model.StatusCanceled
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}
