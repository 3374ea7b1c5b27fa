package router

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"sixthsoul_bff/client"
	"sixthsoul_bff/handler"
	"sixthsoul_bff/middleware"
	"sixthsoul_bff/model"
	"sixthsoul_bff/validate"
)

func SetupRoutes(app *fiber.App, h *handler.Handler) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New(), middleware.Session(h.Sessions, h.Signer))

	customer := middleware.RequireScope(client.ScopeCustomer)
	admin := middleware.RequireScope(client.ScopeAdmin)

	auth := v1.Group("/auth")
	auth.Post("/login", validate.Login(), h.Login(client.ScopeCustomer))
	auth.Post("/logout", h.Logout(client.ScopeCustomer))
	auth.Get("/me", h.Me(client.ScopeCustomer))

	profile := v1.Group("/profile", logger.New(), customer)
	profile.Get("/", h.Profile)
	profile.Get("/addresses", h.Addresses)
	profile.Post("/addresses", validate.Body[model.AddressInput](), h.CreateAddress)
	profile.Put("/addresses/:addressId", validate.GetById("addressId"), validate.Body[model.AddressInput](), h.UpdateAddress)
	profile.Delete("/addresses/:addressId", validate.GetById("addressId"), h.DeleteAddress)
	profile.Get("/loyalty", h.Loyalty)

	geo := v1.Group("/geo", logger.New())
	geo.Get("/provinces", h.Provinces)
	geo.Get("/provinces/:code/districts", validate.GetCode("code"), h.Districts)
	geo.Get("/districts/:code/wards", validate.GetCode("code"), h.Wards)
	geo.Post("/prefill", h.Prefill)

	cart := v1.Group("/cart", logger.New(), customer)
	cart.Get("/", h.Cart)

	checkout := v1.Group("/checkout", logger.New(), customer)
	checkout.Post("/", validate.Body[model.StartCheckoutInput](), h.StartCheckout)
	checkout.Get("/:id", h.GetCheckout)
	checkout.Put("/:id/address", validate.Body[model.ChangeAddressInput](), h.ChangeCheckoutAddress)
	checkout.Put("/:id/shipping", validate.Body[model.ChangeShippingInput](), h.ChangeCheckoutShipping)
	checkout.Post("/:id/voucher", validate.ApplyVoucher(), h.ApplyVoucher)
	checkout.Delete("/:id/voucher", h.RemoveVoucher)
	checkout.Post("/:id/submit", validate.CheckoutForm(), h.SubmitCheckout)

	orders := v1.Group("/orders", logger.New(), customer)
	orders.Get("/", validate.Query[model.Pagination](), h.ListOrders)
	orders.Get("/:orderNumber", h.Order)
	orders.Get("/:orderNumber/confirmation", h.OrderConfirmation)

	returns := v1.Group("/returns", logger.New(), customer)
	returns.Get("/", validate.Query[model.Pagination](), h.MyReturns)
	returns.Post("/", validate.Body[model.CreateReturnInput](), h.CreateReturn)
	returns.Get("/order/:orderNumber", h.ReturnForOrder)

	reviews := v1.Group("/reviews", logger.New())
	reviews.Get("/product/:productId", validate.GetById("productId"), validate.Query[model.Pagination](), h.ProductReviews)
	reviews.Get("/mine", customer, validate.Query[model.Pagination](), h.MyReviews)
	reviews.Post("/", customer, validate.Body[model.ReviewInput](), h.CreateReview)
	reviews.Post("/upload-signature", customer, validate.Body[handler.ReviewUploadInput](), h.ReviewUploadSignature)

	collections := v1.Group("/collections", logger.New())
	collections.Get("/", validate.Query[model.Pagination](), h.Collections)
	collections.Get("/:slug", h.Collection)

	payment := v1.Group("/payment", logger.New())
	payment.Get("/vnpay/return", h.VNPayReturn)
	payment.Get("/vnpay/ipn", h.VNPayIPN)

	adm := v1.Group("/admin", logger.New())
	admAuth := adm.Group("/auth")
	admAuth.Post("/login", validate.Login(), h.Login(client.ScopeAdmin))
	admAuth.Post("/logout", h.Logout(client.ScopeAdmin))
	admAuth.Get("/me", h.Me(client.ScopeAdmin))

	adm.Get("/users", admin, validate.Query[model.FilterUser](), handler.AdminList[model.User, model.FilterUser](h, client.PathAdminUsers))
	adm.Get("/vouchers", admin, validate.Query[model.FilterVoucher](), handler.AdminList[model.Voucher, model.FilterVoucher](h, client.PathAdminVouchers))
	adm.Get("/collections", admin, validate.Query[model.FilterCollection](), handler.AdminList[model.Collection, model.FilterCollection](h, client.PathAdminCollections))
	adm.Get("/returns", admin, validate.Query[model.FilterReturn](), handler.AdminList[model.ReturnRequest, model.FilterReturn](h, client.PathAdminReturns))
	adm.Get("/login-activities", admin, validate.Query[model.FilterLoginActivity](), handler.AdminList[model.LoginActivity, model.FilterLoginActivity](h, client.PathAdminLoginActivity))
	adm.Get("/loyalty-points", admin, validate.Query[model.FilterLoyaltyPoint](), handler.AdminList[model.LoyaltyPoint, model.FilterLoyaltyPoint](h, client.PathAdminLoyaltyPoints))
	adm.Get("/shipping-fee-configs", admin, validate.Query[model.Pagination](), handler.AdminList[model.ShippingFeeConfig, model.Pagination](h, client.PathAdminShippingConfig))
	adm.Post("/:resource/actions", admin, validate.Resource(), validate.Action(), h.AdminAction)

	adm.Get("/console/:resource", admin, handler.UpgradeConsole, validate.Resource(), websocket.New(h.AdminConsole))
}
