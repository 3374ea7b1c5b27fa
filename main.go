package main

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"sixthsoul_bff/checkout"
	"sixthsoul_bff/client"
	"sixthsoul_bff/config"
	"sixthsoul_bff/database"
	"sixthsoul_bff/geo"
	"sixthsoul_bff/handler"
	"sixthsoul_bff/helper"
	"sixthsoul_bff/router"
	"sixthsoul_bff/session"
	"sixthsoul_bff/utils"
)

func main() {
	settings := config.Load()
	if settings.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 4 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     settings.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-Page-Path",
		AllowCredentials: true,
		MaxAge:           600,
	}))

	rdb := redis.NewClient(&redis.Options{
		Addr:     settings.RedisAddr,
		Password: settings.RedisPassword,
		DB:       settings.RedisDB,
	})
	defer rdb.Close()

	db := database.ConnectDB(settings)
	fees := database.NewFeeConfigRepo(db)
	orders := database.NewOrderRepo(db)

	upstream := client.New(settings.UpstreamURL, &http.Client{Timeout: 15 * time.Second})
	geoProvider := geo.NewCachedProvider(
		geo.NewHTTPProvider(settings.GeoURL, &http.Client{Timeout: 10 * time.Second}),
		rdb,
	)
	mailer := utils.NewMailer(settings)

	h := &handler.Handler{
		API:          upstream,
		Sessions:     session.NewStore(rdb),
		Signer:       session.NewSigner(settings.JWTSecret),
		Checkout:     checkout.NewAggregator(checkout.NewRedisDraftStore(rdb), fees, orders, mailer),
		Geo:          geoProvider,
		Orders:       orders,
		Notifier:     mailer,
		VNPay:        handler.NewVNPay(settings),
		Cld:          helper.InitCloudinary(settings),
		Redis:        rdb,
		AppURL:       settings.AppURL,
		SecureCookie: settings.SecureCookie,
	}

	helper.StartFeeSyncScheduler(upstream, fees)
	defer helper.StopFeeSyncScheduler()
	if err := helper.StartGeoRefreshScheduler(geoProvider); err != nil {
		log.Errorf("Lỗi khởi tạo scheduler địa giới: %v", err)
	}
	defer helper.StopGeoRefreshScheduler()

	router.SetupRoutes(app, h)
	if err := app.Listen(settings.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
