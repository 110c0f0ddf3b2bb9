package router

import (
	"github.com/labstack/echo/v4"

	"rivalioo/internal/adapter/api/handler"
)

// SetupCatalogRouter registers the public read-only catalog routes.
func SetupCatalogRouter(e *echo.Echo) {
	catalogHandler := handler.GetCatalogHandler()

	e.GET("/v1/catalog/games", catalogHandler.ListGames)
	e.GET("/v1/catalog/games/:id/packages", catalogHandler.ListPackages)
	e.GET("/v1/shop/items", catalogHandler.ListShopItems)
	e.GET("/v1/subscriptions/tiers", catalogHandler.ListSubscriptionTiers)
	e.GET("/v1/streamers", catalogHandler.ListStreamers)
}
