package handler

import (
	"github.com/labstack/echo/v4"

	"rivalioo/internal/domain/entity"
	"rivalioo/internal/usecase"
	"rivalioo/pkg/response"
)

type CartHandler struct {
	cartUseCase *usecase.CartUseCase
}

func NewCartHandler(cartUseCase *usecase.CartUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
	}
}

type addProductRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"omitempty,min=1,max=99"`
}

type addRedemptionRequest struct {
	GameID    string `json:"game_id" validate:"required"`
	PackageID string `json:"package_id" validate:"required"`
	PlayerID  string `json:"player_id" validate:"required,max=64"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	owner, err := cartOwner(c, h.cartUseCase)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.cartUseCase.GetCart(owner))
}

func (h *CartHandler) AddProduct(c echo.Context) error {
	owner, err := cartOwner(c, h.cartUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	var req addProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	view, err := h.cartUseCase.AddProduct(c.Request().Context(), owner, usecase.AddProductInput{
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, view)
}

func (h *CartHandler) AddRedemption(c echo.Context) error {
	owner, err := cartOwner(c, h.cartUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	var req addRedemptionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	view, err := h.cartUseCase.AddRedemption(c.Request().Context(), owner, usecase.AddRedemptionInput{
		GameID:    req.GameID,
		PackageID: req.PackageID,
		PlayerID:  req.PlayerID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, view)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	owner, err := cartOwner(c, h.cartUseCase)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.cartUseCase.RemoveItem(owner, c.Param("id")))
}

func (h *CartHandler) Clear(c echo.Context) error {
	owner, err := cartOwner(c, h.cartUseCase)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.cartUseCase.Clear(owner))
}

func (h *CartHandler) GetTotal(c echo.Context) error {
	owner, err := cartOwner(c, h.cartUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	currency := entity.Currency(c.QueryParam("currency"))
	total, err := h.cartUseCase.Total(owner, currency)
	if err != nil {
		return response.Error(c, err)
	}
	if currency == "" {
		currency = entity.CurrencyINR
	}

	return response.Success(c, map[string]interface{}{
		"currency": currency,
		"total":    total,
	})
}

func (h *CartHandler) OpenDrawer(c echo.Context) error {
	owner, err := cartOwner(c, h.cartUseCase)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.cartUseCase.OpenDrawer(owner))
}

func (h *CartHandler) CloseDrawer(c echo.Context) error {
	owner, err := cartOwner(c, h.cartUseCase)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.cartUseCase.CloseDrawer(owner))
}

func (h *CartHandler) ToggleDrawer(c echo.Context) error {
	owner, err := cartOwner(c, h.cartUseCase)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.cartUseCase.ToggleDrawer(owner))
}
