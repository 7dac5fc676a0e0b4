package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"tablebook/internal/model"
	"tablebook/internal/repository"
)

// ReviewHandler implements post-visit reviews.  A review exists only for a
// VISITED reservation, written by that reservation's customer, at most one
// per reservation.  Every write recomputes the owning store's average rating
// inside the same transaction, so the cached average is never observably
// inconsistent with the review set.
type ReviewHandler struct {
	Reviews      *repository.ReviewRepo
	Reservations *repository.ReservationRepo
	Stores       *repository.StoreRepo
}

func NewReviewHandler(reviewRepo *repository.ReviewRepo, resRepo *repository.ReservationRepo, storeRepo *repository.StoreRepo) *ReviewHandler {
	if reviewRepo == nil || resRepo == nil || storeRepo == nil {
		panic("nil repository passed to NewReviewHandler")
	}
	return &ReviewHandler{Reviews: reviewRepo, Reservations: resRepo, Stores: storeRepo}
}

type createReviewReq struct {
	ReservationID uint64  `json:"reservation_id"`
	Content       string  `json:"content"`
	Rating        float64 `json:"rating"`
}

type updateReviewReq struct {
	Content string  `json:"content"`
	Rating  float64 `json:"rating"`
}

// reviewJSON renders a review with its rating on the 0.0–5.0 scale.  The
// model stores ratings as the internal unit, which is not a wire format.
func reviewJSON(rv *model.Review) echo.Map {
	return echo.Map{
		"id":             rv.ID,
		"author_id":      rv.AuthorID,
		"store_id":       rv.StoreID,
		"reservation_id": rv.ReservationID,
		"content":        rv.Content,
		"rating":         rv.RatingScore(),
		"created_at":     rv.CreatedAt.Format(time.RFC3339),
		"updated_at":     rv.UpdatedAt.Format(time.RFC3339),
	}
}

// Create handles POST /v1/reviews.
func (h *ReviewHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ReservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation_id is required"})
	}
	if len(req.Content) > model.MaxReviewContentLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content too long"})
	}
	rating, err := model.RatingFromScore(req.Rating)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be a half-point value between 0.0 and 5.0"})
	}

	ctx := c.Request().Context()
	res, err := h.Reservations.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if res.CustomerID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if res.Status != model.StatusVisited {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation has not been visited"})
	}
	exists, err := h.Reviews.ExistsByReservation(ctx, req.ReservationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "review already exists for this reservation"})
	}

	tx, err := h.Reviews.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rv := &model.Review{
		AuthorID:      userID,
		StoreID:       res.StoreID,
		ReservationID: req.ReservationID,
		Content:       req.Content,
		Rating:        rating,
	}
	if err := h.Reviews.CreateTx(ctx, tx, rv); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "review already exists for this reservation"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
	}
	if err := h.recomputeAverage(c, tx, res.StoreID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update store rating"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusCreated, echo.Map{"item": reviewJSON(rv)})
}

// Update handles PUT /v1/reviews/:id.  Only the author may modify a review.
func (h *ReviewHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reviewID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	var req updateReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(req.Content) > model.MaxReviewContentLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content too long"})
	}
	rating, err := model.RatingFromScore(req.Rating)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be a half-point value between 0.0 and 5.0"})
	}

	ctx := c.Request().Context()
	rv, err := h.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if rv.AuthorID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	tx, err := h.Reviews.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Reviews.UpdateTx(ctx, tx, reviewID, req.Content, rating); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update review"})
	}
	if err := h.recomputeAverage(c, tx, rv.StoreID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update store rating"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	rv.Content = req.Content
	rv.Rating = rating
	rv.UpdatedAt = time.Now().UTC()
	return c.JSON(http.StatusOK, echo.Map{"item": reviewJSON(rv)})
}

// Delete handles DELETE /v1/reviews/:id.  Only the author may delete a
// review; the store average is recomputed and drops back to 0 when the last
// review goes.
func (h *ReviewHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reviewID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	ctx := c.Request().Context()
	rv, err := h.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if rv.AuthorID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	tx, err := h.Reviews.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Reviews.DeleteTx(ctx, tx, reviewID); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete review"})
	}
	if err := h.recomputeAverage(c, tx, rv.StoreID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update store rating"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{"deleted_id": reviewID})
}

// ListByStore handles GET /v1/stores/:id/reviews, public, newest first.
func (h *ReviewHandler) ListByStore(c echo.Context) error {
	storeID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid store id"})
	}
	page, pageSize := paging(c)

	ctx := c.Request().Context()
	if _, err := h.Stores.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items, total, err := h.Reviews.ListByStore(ctx, storeID, page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}
	out := make([]echo.Map, 0, len(items))
	for i := range items {
		out = append(out, reviewJSON(&items[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":     out,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// recomputeAverage recalculates the store's average review score within the
// transaction that changed the reviews, so the cached value and the review
// set always move together.
func (h *ReviewHandler) recomputeAverage(c echo.Context, tx *sql.Tx, storeID uint64) error {
	ctx := c.Request().Context()
	avg, err := h.Reviews.AverageScoreByStoreTx(ctx, tx, storeID)
	if err != nil {
		return err
	}
	return h.Stores.UpdateAverageRatingTx(ctx, tx, storeID, avg)
}

// paging reads page / page_size query parameters with sane defaults.
func paging(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = v
	}
	return page, pageSize
}
