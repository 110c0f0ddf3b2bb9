package handler

import (
	"github.com/labstack/echo/v4"

	"rivalioo/internal/adapter/api/middleware"
	"rivalioo/internal/usecase"
	"rivalioo/pkg/errors"
	"rivalioo/pkg/logger"
)

var (
	catalogHandler  *CatalogHandler
	cartHandler     *CartHandler
	checkoutHandler *CheckoutHandler
	orderHandler    *OrderHandler
	profileHandler  *ProfileHandler
	streamHandler   *StreamHandler
)

func Setup(
	catalogUseCase *usecase.CatalogUseCase,
	cartUseCase *usecase.CartUseCase,
	checkoutUseCase *usecase.CheckoutUseCase,
	orderUseCase *usecase.OrderUseCase,
	profileUseCase *usecase.ProfileUseCase,
	streamUseCase *usecase.StreamStatsUseCase,
) {
	catalogHandler = NewCatalogHandler(catalogUseCase)
	cartHandler = NewCartHandler(cartUseCase)
	checkoutHandler = NewCheckoutHandler(checkoutUseCase, cartUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	profileHandler = NewProfileHandler(profileUseCase)
	streamHandler = NewStreamHandler(streamUseCase)
}

func GetCatalogHandler() *CatalogHandler {
	return catalogHandler
}

func GetCartHandler() *CartHandler {
	return cartHandler
}

func GetCheckoutHandler() *CheckoutHandler {
	return checkoutHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetProfileHandler() *ProfileHandler {
	return profileHandler
}

func GetStreamHandler() *StreamHandler {
	return streamHandler
}

func getUserID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

// cartOwner keys the cart by user id, or by the anonymous session header. A
// signed-in request that still carries a session header takes over that
// session's cart.
func cartOwner(c echo.Context, carts *usecase.CartUseCase) (string, error) {
	session := c.Request().Header.Get(middleware.CartSessionHeader)

	if uid := getUserID(c); uid != "" {
		owner := "user:" + uid
		if session != "" {
			if n := carts.AdoptSession("session:"+session, owner); n > 0 {
				logger.Info("Moved %d cart lines from session to %s", n, owner)
			}
		}
		return owner, nil
	}
	if session != "" {
		return "session:" + session, nil
	}
	return "", errors.BadRequest(middleware.CartSessionHeader+" header is required for anonymous carts", nil)
}
