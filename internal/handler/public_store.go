package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"tablebook/internal/repository"
	"tablebook/internal/trie"
)

// PublicStoreHandler exposes unauthenticated store discovery: browsing,
// name search and prefix autocomplete.  These endpoints sit behind the
// Redis response cache and rate limiter in the public route group.
type PublicStoreHandler struct {
	Stores *repository.StoreRepo
	Names  *trie.Index
}

func NewPublicStoreHandler(storeRepo *repository.StoreRepo, names *trie.Index) *PublicStoreHandler {
	if storeRepo == nil || names == nil {
		panic("nil dependency passed to NewPublicStoreHandler")
	}
	return &PublicStoreHandler{Stores: storeRepo, Names: names}
}

// List handles GET /v1/stores.  An optional ?name= filter matches substrings
// case-insensitively; results are paginated.
func (h *PublicStoreHandler) List(c echo.Context) error {
	page, pageSize := paging(c)
	q := repository.StoreSearchQuery{
		Name:     strings.TrimSpace(c.QueryParam("name")),
		Page:     page,
		PageSize: pageSize,
	}
	items, total, err := h.Stores.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stores"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Get handles GET /v1/stores/:id.
func (h *PublicStoreHandler) Get(c echo.Context) error {
	storeID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid store id"})
	}
	store, err := h.Stores.GetByID(c.Request().Context(), storeID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": store})
}

// Autocomplete handles GET /v1/search/autocomplete?prefix=.  Suggestions
// come from the in-memory name index, not the database; they are advisory
// and may briefly lag the catalog.  An empty prefix returns every known
// name, no match returns an empty list.
func (h *PublicStoreHandler) Autocomplete(c echo.Context) error {
	prefix := c.QueryParam("prefix")
	names := h.Names.Search(prefix)
	return c.JSON(http.StatusOK, echo.Map{
		"prefix": prefix,
		"items":  names,
	})
}
