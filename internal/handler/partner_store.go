package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"tablebook/internal/model"
	"tablebook/internal/repository"
	"tablebook/internal/trie"
)

// PartnerStoreHandler lets partners manage their stores.  Every catalog
// write that touches a store name is mirrored into the shared autocomplete
// index after the database write succeeds; the index is eventually
// consistent with the catalog and a stale suggestion is acceptable, so an
// index update never rolls back a committed catalog change.
type PartnerStoreHandler struct {
	Stores *repository.StoreRepo
	Names  *trie.Index
}

func NewPartnerStoreHandler(storeRepo *repository.StoreRepo, names *trie.Index) *PartnerStoreHandler {
	if storeRepo == nil || names == nil {
		panic("nil dependency passed to NewPartnerStoreHandler")
	}
	return &PartnerStoreHandler{Stores: storeRepo, Names: names}
}

type storeReq struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// Create handles POST /v1/stores.  No two stores may share a name+address
// pair; the unique key on the table is the authoritative guard and the
// existence check only fails fast.
func (h *PartnerStoreHandler) Create(c echo.Context) error {
	partnerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req storeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	if req.Name == "" || req.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and address are required"})
	}

	ctx := c.Request().Context()
	exists, err := h.Stores.ExistsByNameAndAddress(ctx, req.Name, req.Address)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "store with this name and address already exists"})
	}

	store := &model.Store{
		OwnerID:     partnerID,
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
	}
	if err := h.Stores.Create(ctx, store); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "store with this name and address already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create store"})
	}

	h.Names.Insert(store.Name)

	return c.JSON(http.StatusCreated, echo.Map{"item": store})
}

// Update handles PUT /v1/stores/:id.  Only the owner may modify a store.  A
// name change is propagated to the autocomplete index as a rename so a
// reader never sees the old name after the new one is live.
func (h *PartnerStoreHandler) Update(c echo.Context) error {
	partnerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	storeID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid store id"})
	}
	var req storeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	if req.Name == "" || req.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and address are required"})
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

	oldName := store.Name
	store.Name = req.Name
	store.Address = req.Address
	store.Description = req.Description
	if err := h.Stores.Update(ctx, store); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "store with this name and address already exists"})
		}
		if errors.Is(err, repository.ErrStoreNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update store"})
	}

	if oldName != store.Name {
		h.Names.Rename(oldName, store.Name)
	}

	return c.JSON(http.StatusOK, echo.Map{"item": store})
}

// Delete handles DELETE /v1/stores/:id.  Only the owner may delete a store;
// reservations and reviews go with it via cascading foreign keys, and the
// name leaves the autocomplete index.
func (h *PartnerStoreHandler) Delete(c echo.Context) error {
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
	if err := h.Stores.Delete(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete store"})
	}

	h.Names.Remove(store.Name)

	return c.NoContent(http.StatusNoContent)
}
