package handler

import (
	"github.com/labstack/echo/v4"

	"rivalioo/internal/usecase"
	"rivalioo/pkg/response"
)

type CheckoutHandler struct {
	checkoutUseCase *usecase.CheckoutUseCase
	cartUseCase     *usecase.CartUseCase
}

func NewCheckoutHandler(checkoutUseCase *usecase.CheckoutUseCase, cartUseCase *usecase.CartUseCase) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
		cartUseCase:     cartUseCase,
	}
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	owner, err := cartOwner(c, h.cartUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	result, err := h.checkoutUseCase.Checkout(c.Request().Context(), getUserID(c), h.cartUseCase.Store(owner))
	if err != nil {
		// The message stays generic. Details list which lines went through.
		if result != nil {
			return response.ErrorWithDetails(c, err, result)
		}
		return response.Error(c, err)
	}

	return response.Created(c, result)
}
