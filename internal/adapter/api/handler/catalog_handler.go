package handler

import (
	"github.com/labstack/echo/v4"

	"rivalioo/internal/usecase"
	"rivalioo/pkg/response"
)

type CatalogHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewCatalogHandler(catalogUseCase *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
	}
}

func (h *CatalogHandler) ListGames(c echo.Context) error {
	games, err := h.catalogUseCase.ListGames(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, games)
}

func (h *CatalogHandler) ListPackages(c echo.Context) error {
	packages, err := h.catalogUseCase.ListPackages(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, packages)
}

func (h *CatalogHandler) ListShopItems(c echo.Context) error {
	items, err := h.catalogUseCase.ListShopItems(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, items)
}

func (h *CatalogHandler) ListSubscriptionTiers(c echo.Context) error {
	tiers, err := h.catalogUseCase.ListSubscriptionTiers(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, tiers)
}

func (h *CatalogHandler) ListStreamers(c echo.Context) error {
	streamers, err := h.catalogUseCase.ListStreamers(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, streamers)
}
