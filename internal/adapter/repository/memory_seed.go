package repository

import (
	"time"

	"rivalioo/internal/domain/entity"
)

// DemoCatalog is served when no backend credentials are configured.
type DemoCatalog struct {
	Games     []*entity.RedeemableGame
	Packages  []*entity.RedeemablePackage
	ShopItems []*entity.ShopItem
	Tiers     []*entity.SubscriptionTier
	Streamers []*entity.Streamer
}

func DefaultDemoCatalog() DemoCatalog {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	return DemoCatalog{
		Games: []*entity.RedeemableGame{
			{ID: "bgmi", Name: "Battlegrounds Mobile India", Slug: "bgmi", Image: "/images/games/bgmi.png", PlayerIDLabel: "Character ID", Status: entity.CatalogStatusActive, SortOrder: 1, CreatedAt: created},
			{ID: "free-fire", Name: "Free Fire MAX", Slug: "free-fire", Image: "/images/games/free-fire.png", PlayerIDLabel: "Player ID", Status: entity.CatalogStatusActive, SortOrder: 2, CreatedAt: created},
			{ID: "valorant", Name: "Valorant", Slug: "valorant", Image: "/images/games/valorant.png", PlayerIDLabel: "Riot ID", Status: entity.CatalogStatusActive, SortOrder: 3, CreatedAt: created},
			{ID: "codm", Name: "Call of Duty: Mobile", Slug: "codm", Image: "/images/games/codm.png", PlayerIDLabel: "UID", Status: entity.CatalogStatusInactive, SortOrder: 4, CreatedAt: created},
		},
		Packages: []*entity.RedeemablePackage{
			{ID: "bgmi-uc-60", GameID: "bgmi", AmountName: "60 UC", CreditsCost: 75, Status: entity.CatalogStatusActive, SortOrder: 1},
			{ID: "bgmi-uc-325", GameID: "bgmi", AmountName: "325 UC", CreditsCost: 380, Status: entity.CatalogStatusActive, SortOrder: 2},
			{ID: "bgmi-uc-660", GameID: "bgmi", AmountName: "660 UC", CreditsCost: 750, Status: entity.CatalogStatusActive, SortOrder: 3},
			{ID: "ff-diamonds-100", GameID: "free-fire", AmountName: "100 Diamonds", CreditsCost: 80, Status: entity.CatalogStatusActive, SortOrder: 1},
			{ID: "ff-diamonds-520", GameID: "free-fire", AmountName: "520 Diamonds", CreditsCost: 400, Status: entity.CatalogStatusActive, SortOrder: 2},
			{ID: "val-vp-475", GameID: "valorant", AmountName: "475 VP", CreditsCost: 400, Status: entity.CatalogStatusActive, SortOrder: 1},
			{ID: "val-vp-1000", GameID: "valorant", AmountName: "1000 VP", CreditsCost: 800, Status: entity.CatalogStatusInactive, SortOrder: 2},
		},
		ShopItems: []*entity.ShopItem{
			{ID: "jersey-2024", Name: "Rivalioo Pro Jersey", Image: "/images/shop/jersey.png", Price: 1499, Currency: entity.CurrencyINR, Stock: 120, Status: entity.CatalogStatusActive},
			{ID: "mousepad-xl", Name: "XL Mousepad", Image: "/images/shop/mousepad.png", Price: 799, Currency: entity.CurrencyINR, Stock: 60, Status: entity.CatalogStatusActive},
			{ID: "profile-frame-gold", Name: "Gold Profile Frame", Image: "/images/shop/frame.png", Price: 250, Currency: entity.CurrencyCredits, Stock: -1, Status: entity.CatalogStatusActive},
			{ID: "tournament-pass", Name: "Tournament Entry Pass", Image: "/images/shop/pass.png", Price: 100, Currency: entity.CurrencyINR, Stock: 500, Status: entity.CatalogStatusActive},
		},
		Tiers: []*entity.SubscriptionTier{
			{ID: "rookie", Name: "Rookie", PriceINR: 0, Credits: 0, Perks: []string{"Join open tournaments"}, SortOrder: 1},
			{ID: "pro", Name: "Pro", PriceINR: 199, Credits: 250, Perks: []string{"250 monthly credits", "Priority registration"}, SortOrder: 2},
			{ID: "legend", Name: "Legend", PriceINR: 499, Credits: 700, Perks: []string{"700 monthly credits", "Priority registration", "Exclusive scrims"}, SortOrder: 3},
		},
		Streamers: []*entity.Streamer{
			{ID: "mortal", Name: "Mortal", Game: "BGMI", ChannelID: "UCz6nJ6TeN4O_x7Vd5Z8RJzA", VideoID: "h7Qe1wY2pXk", SortOrder: 1},
			{ID: "scout", Name: "Scout", Game: "BGMI", ChannelID: "UCp3rR0E0yJcmYHR3LqWw2mQ", VideoID: "Lm3vT8cRz0A", SortOrder: 2},
			{ID: "total-gaming", Name: "Total Gaming", Game: "Free Fire", ChannelID: "UCBbT0y6Y5FkgBWdoHTzvz-A", VideoID: "pX92nB4dQeU", SortOrder: 3},
			{ID: "scout-clips", Name: "Scout Clips", Game: "BGMI", ChannelID: "UCp3rR0E0yJcmYHR3LqWw2mQ", VideoID: "Vt6yK1sMw8E", SortOrder: 4},
		},
	}
}

func DefaultDemoProfiles() []*entity.Profile {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []*entity.Profile{
		{ID: "demo-user", Username: "demo", Credits: 1000, LastSeenAt: created, CreatedAt: created},
	}
}
