package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/msme-awards/adjudication-api/internal/handlers"
	"github.com/msme-awards/adjudication-api/internal/identity"
	"github.com/msme-awards/adjudication-api/internal/middleware"
	"github.com/msme-awards/adjudication-api/internal/store"
)

func Setup(
	app *fiber.App,
	provider identity.Provider,
	accounts store.Accounts,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	registrationHandler *handlers.RegistrationHandler,
	accountHandler *handlers.AccountHandler,
	reviewHandler *handlers.ReviewHandler,
	decisionHandler *handlers.DecisionHandler,
	invitationHandler *handlers.InvitationHandler,
	dataHandler *handlers.ApplicationDataHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Public sign-up surface, rate-limited harder than the rest.
	// Applied per-route so the stricter limit cannot bleed into the
	// authenticated routes below.
	strict := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	api.Post("/login", strict, authHandler.Login)
	api.Get("/verify-registration-link/:token", strict, registrationHandler.VerifyLink)
	api.Post("/signup", strict, registrationHandler.SignUp)

	authed := middleware.Authenticated(provider, accounts)
	approved := middleware.RequireApproved()

	// Status check is the one authenticated route a pending account may
	// call; everything below also requires approval.
	api.Post("/check-user-status", authed, authHandler.CheckStatus)

	profile := api.Group("/profile", authed, approved)
	profile.Get("/:userId", accountHandler.GetProfile)
	profile.Put("/:userId", accountHandler.UpdateProfile)
	profile.Put("/:userId/picture", accountHandler.UpdatePicture)

	admin := api.Group("/admin", authed, approved, middleware.RequireAdmin())
	admin.Post("/generate-registration-link", registrationHandler.GenerateLink)
	admin.Post("/assign-role", accountHandler.AssignRole)
	admin.Get("/users", accountHandler.ListUsers)
	admin.Get("/activity-logs", accountHandler.ActivityLogs)
	admin.Get("/total-adjudicators", accountHandler.TotalAdjudicators)
	admin.Get("/all-review-counts", reviewHandler.AllReviewCounts)
	admin.Get("/application-reviews/:applicationId", reviewHandler.ApplicationReviews)
	admin.Post("/send-invite", invitationHandler.SendInvite)
	admin.Post("/final-approval", decisionHandler.FinalApproval)
	admin.Post("/final-rejection", decisionHandler.FinalRejection)
	admin.Get("/final-decision/:applicationId", decisionHandler.GetDecision)
	admin.Get("/all-final-decisions", decisionHandler.AllDecisions)

	adjudicator := api.Group("/adjudicator", authed, approved, middleware.RequireAdjudicator())
	adjudicator.Get("/applications", accountHandler.PendingApplications)
	adjudicator.Post("/approve-application", accountHandler.Approve)
	adjudicator.Post("/reject-application", accountHandler.Reject)
	adjudicator.Post("/submit-review", reviewHandler.Submit)
	adjudicator.Get("/my-reviews", reviewHandler.MyReviews)
	adjudicator.Get("/my-review/:applicationId", reviewHandler.MyReview)

	viewer := api.Group("/viewer", authed, approved, middleware.RequireViewer())
	viewer.Get("/adjudication-data", reviewHandler.AdjudicationData)

	data := api.Group("/competition-data", authed, approved)
	data.Get("/", dataHandler.List)
	data.Post("/refresh", dataHandler.Refresh)
	data.Get("/filter", dataHandler.Filter)
	data.Put("/:id/status", dataHandler.UpdateStatus)
	data.Post("/initialize-pending", dataHandler.InitializePending)
}
