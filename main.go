package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Lebronlang/Boardify/routes"
	"github.com/Lebronlang/Boardify/services"
	"github.com/Lebronlang/Boardify/storage"
	"github.com/Lebronlang/Boardify/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"github.com/shopspring/decimal"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	storage.InitializeDB()
	storage.InitializeRedis()

	// Money fields serialize as plain JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	notifier := services.NewQueueNotifier(storage.Redis)
	routes.UseServices(services.NewRegistry(storage.DB, notifier))

	worker := services.NewNotificationWorker(storage.Redis, storage.DB)
	go worker.Run(context.Background())

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	// Minimal middleware - compression only
	app.Use(iris.Compression)

	// JWT Verifiers
	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	authenticated := []iris.Handler{accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware}

	// Health check endpoint
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
	}
	app.Post("/api/user/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	property := app.Party("/api/property")
	{
		property.Get("/", routes.GetProperties)
		property.Get("/{id:uint}", routes.GetProperty)
		property.Get("/{id:uint}/availability", routes.CheckAvailability)
		property.Get("/{id:uint}/reviews", routes.GetPropertyReviews)
		property.Post("/", append(authenticated, utils.LandlordOnlyMiddleware, routes.CreateProperty)...)
		property.Patch("/{id:uint}", append(authenticated, utils.LandlordOnlyMiddleware, routes.UpdateProperty)...)
		property.Delete("/{id:uint}", append(authenticated, utils.LandlordOnlyMiddleware, routes.DeleteProperty)...)
		property.Post("/{id:uint}/reviews", append(authenticated, utils.TenantOnlyMiddleware, routes.CreateReview)...)
		property.Get("/{id:uint}/reviews/eligibility", append(authenticated, utils.TenantOnlyMiddleware, routes.GetReviewEligibility)...)
	}

	booking := app.Party("/api/booking", authenticated...)
	{
		booking.Post("/property/{id:uint}", utils.TenantOnlyMiddleware, routes.CreateBooking)
		booking.Get("/reference/{code}", routes.GetBookingByReference)
		booking.Get("/mine", utils.TenantOnlyMiddleware, routes.GetMyBookings)
		booking.Get("/pending", utils.LandlordOnlyMiddleware, routes.GetPendingBookings)
		booking.Get("/approved", utils.LandlordOnlyMiddleware, routes.GetApprovedBookings)
		booking.Post("/{id:uint}/approve", utils.LandlordOnlyMiddleware, routes.ApproveBooking)
		booking.Post("/{id:uint}/reject", utils.LandlordOnlyMiddleware, routes.RejectBooking)
		booking.Post("/{id:uint}/cancel", utils.TenantOnlyMiddleware, routes.CancelBooking)
	}

	billing := app.Party("/api/billing", authenticated...)
	{
		billing.Get("/", routes.GetBills)
		billing.Get("/invoice", routes.GetMonthlyInvoice)
		billing.Post("/{id:uint}/refresh", routes.RefreshBill)
		billing.Post("/{id:uint}/pay", routes.PayBill)
	}

	review := app.Party("/api/review", authenticated...)
	{
		review.Patch("/{id:uint}", utils.TenantOnlyMiddleware, routes.UpdateReview)
		review.Delete("/{id:uint}", routes.DeleteReview)
	}

	support := app.Party("/api/support", authenticated...)
	{
		support.Post("/", routes.CreateHelpTicket)
		support.Get("/mine", routes.GetMyHelpTickets)
	}

	notifications := app.Party("/api/notifications", authenticated...)
	{
		notifications.Get("/", routes.GetMyNotifications)
		notifications.Patch("/{id:uint}/read", routes.MarkNotificationRead)
	}

	admin := app.Party("/api/admin", append(authenticated, utils.AdminOnlyMiddleware)...)
	{
		admin.Get("/commissions", routes.GetCommissionSummary)
		admin.Get("/bookings", routes.GetAllBookings)
		admin.Get("/tickets", routes.GetAllHelpTickets)
		admin.Patch("/tickets/{id:uint}", routes.ResolveHelpTicket)
		admin.Post("/users/{id:uint}/approve", routes.ApproveLandlord)
		admin.Get("/audit", routes.GetAuditLogs)
	}

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
