package main

import (
	"log"
	"os"
	"strings"

	"tourism-sewa-server/routes"
	"tourism-sewa-server/storage"
	"tourism-sewa-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development (when RENDER env var is not set)
	if os.Getenv("RENDER") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeCloudinary()

	app := iris.Default()
	app.Validator = validator.New()

	app.UseRouter(corsMiddleware())

	tokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("TOKEN_SECRET")))
	tokenVerifier.Extractors = []jwt.TokenExtractor{utils.TokenFromCookie}
	verifyMiddleware := tokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"success": true, "status": "ok"})
	})

	auth := app.Party("/api/auth")
	{
		auth.Post("/register", routes.Register)
		auth.Post("/login", routes.Login)
		auth.Post("/logout", verifyMiddleware, utils.BlocklistMiddleware, routes.Logout)
		auth.Get("/me", verifyMiddleware, utils.BlocklistMiddleware, utils.TouristOnlyMiddleware, routes.GetUserProfile)
	}

	businessAuth := app.Party("/api/auth2")
	{
		businessAuth.Post("/register", routes.RegisterBusiness)
		businessAuth.Post("/login", routes.LoginBusiness)
		businessAuth.Post("/logout", verifyMiddleware, utils.BlocklistMiddleware, routes.LogoutBusiness)
		businessAuth.Get("/me", verifyMiddleware, utils.BlocklistMiddleware, utils.BusinessOnlyMiddleware, routes.GetBusinessProfile)
	}

	admin := app.Party("/api/admin")
	{
		admin.Post("/login", routes.AdminLogin)
		admin.Post("/logout", verifyMiddleware, utils.BlocklistMiddleware, routes.AdminLogout)
		admin.Get("/me", verifyMiddleware, utils.BlocklistMiddleware, utils.AdminOnlyMiddleware, routes.GetAdminProfile)

		adminReviews := admin.Party("/reviews", verifyMiddleware, utils.BlocklistMiddleware, utils.AdminOnlyMiddleware)
		adminReviews.Get("/pending", routes.GetPendingReviews)
		adminReviews.Patch("/{id:uint}/approve", routes.ApproveReview)
		adminReviews.Delete("/{id:uint}/reject", routes.RejectReview)
		adminReviews.Delete("/{id:uint}", routes.DeleteReview)
	}

	business := app.Party("/api/businesses")
	{
		business.Get("/", routes.GetBusinesses)
		business.Get("/{id:uint}", routes.GetBusinessByID)
	}

	experience := app.Party("/api/experiences")
	{
		experience.Get("/", routes.GetExperiences)
		experience.Get("/featured", routes.GetFeaturedExperiences)
		experience.Get("/search", routes.SearchExperiences)
		experience.Get("/2/{id:uint}", routes.GetExperiencesByBusiness)
		experience.Get("/{id:uint}", routes.GetExperienceByID)
		experience.Post("/", verifyMiddleware, utils.BlocklistMiddleware, utils.BusinessOnlyMiddleware, routes.CreateExperience)
		experience.Put("/{id:uint}", verifyMiddleware, utils.BlocklistMiddleware, utils.BusinessOnlyMiddleware, routes.UpdateExperience)
		experience.Delete("/{id:uint}", verifyMiddleware, utils.BlocklistMiddleware, utils.BusinessOnlyMiddleware, routes.DeleteExperience)
	}

	booking := app.Party("/api/bookings", verifyMiddleware, utils.BlocklistMiddleware)
	{
		booking.Post("/", utils.TouristOnlyMiddleware, routes.CreateBooking)
		booking.Get("/get", utils.TouristOnlyMiddleware, routes.GetMyBookings)
		booking.Get("/{businessId:uint}", utils.BusinessOnlyMiddleware, routes.GetBookingsForBusiness)
		booking.Get("/get/{id:uint}", utils.TouristOnlyMiddleware, routes.GetBookingByID)
		booking.Put("/{id:uint}/status", utils.BusinessOnlyMiddleware, routes.UpdateBookingStatus)
		booking.Delete("/{id:uint}", utils.TouristOnlyMiddleware, routes.DeleteBooking)
	}

	payments := app.Party("/api/payments", verifyMiddleware, utils.BlocklistMiddleware, utils.TouristOnlyMiddleware)
	{
		payments.Post("/create-payment-intent", routes.CreatePaymentIntent)
	}

	// Stripe calls this endpoint directly; authentication is the webhook
	// signature, not a cookie.
	app.Post("/stripe-webhook", routes.HandleStripeWebhook)

	reviews := app.Party("/api/reviews")
	{
		reviews.Get("/", routes.GetReviews)
		reviews.Get("/{id:uint}", routes.GetReviewByID)
		reviews.Post("/", verifyMiddleware, utils.BlocklistMiddleware, utils.TouristOnlyMiddleware, routes.CreateReview)
		reviews.Delete("/{id:uint}", verifyMiddleware, utils.BlocklistMiddleware, utils.TouristOnlyMiddleware, routes.DeleteReview)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	app.Listen(":" + port)
}

// corsMiddleware allows the configured front-end origins with credentials so
// the httpOnly token cookie survives cross-origin requests.
func corsMiddleware() iris.Handler {
	allowed := map[string]bool{}
	for _, origin := range strings.Split(os.Getenv("CORS_ORIGIN"), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed[origin] = true
		}
	}
	if len(allowed) == 0 {
		allowed["http://localhost:5173"] = true
	}

	return func(ctx iris.Context) {
		origin := ctx.GetHeader("Origin")
		if allowed[origin] {
			ctx.Header("Access-Control-Allow-Origin", origin)
			ctx.Header("Access-Control-Allow-Credentials", "true")
			ctx.Header("Access-Control-Allow-Headers", "Content-Type, Stripe-Signature")
			ctx.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
		}
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	}
}
