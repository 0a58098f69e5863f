package api

import (
	stdhttp "net/http"

	intconfig "flightschool/internal/config"
	"flightschool/internal/domain"
	h "flightschool/internal/http/handlers"
	"flightschool/internal/http/middleware"
	"flightschool/internal/idempotency"
	"flightschool/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the router wires into middleware and handlers.
type Deps struct {
	Handlers *h.Handlers
	Tokens   middleware.TokenParser
	// Idempotency may be nil, which disables key deduplication.
	Idempotency idempotency.Store
}

func NewRouter(env intconfig.Env, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(env.CORSAllowedOrigins),
		middleware.Metrics(),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Logger.WithError(err).Warn("failed to set trusted proxies")
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":      "route not found",
			"code":       "not_found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": middleware.GetRequestID(c),
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	hs := deps.Handlers
	staff := middleware.RequireRoles(domain.RoleAdmin, domain.RoleInstructor)

	api := r.Group("/api")
	{
		api.GET("/health", hs.Health)
		api.GET("/db-check", hs.DBCheck)
		api.POST("/auth/login", hs.Login)

		authed := api.Group("", middleware.Auth(deps.Tokens), middleware.Idempotency(deps.Idempotency))
		authed.GET("/auth/me", hs.Me)

		bookings := authed.Group("/bookings")
		bookings.GET("", hs.ListBookings)
		bookings.POST("", hs.CreateMemberBooking)
		bookings.POST("/trial", staff, hs.CreateTrialBooking)
		bookings.GET("/:id", hs.GetBooking)
		bookings.PUT("/:id", staff, hs.UpdateBooking)
		bookings.POST("/:id/confirm", staff, hs.ConfirmBooking)
		bookings.POST("/:id/checkout", hs.CheckoutBooking)
		bookings.POST("/:id/complete", staff, hs.CompleteBooking)
		bookings.GET("/:id/signout-sheet", hs.SignoutSheet)
		bookings.POST("/:id/debrief", staff, hs.CreateDebrief)
		bookings.GET("/:id/debrief", hs.GetDebrief)
		bookings.POST("/:id/solo-signout", hs.SubmitSoloSignout)
		bookings.POST("/solo-signouts/:id/review", staff, hs.ReviewSoloSignout)

		aircraft := authed.Group("/aircraft")
		aircraft.GET("", hs.ListAircraft)
		aircraft.GET("/:id", hs.GetAircraft)
		aircraft.POST("", staff, hs.CreateAircraft)
		aircraft.PUT("/:id", staff, hs.UpdateAircraft)

		members := authed.Group("/members")
		members.GET("", staff, hs.ListMembers)
		members.POST("", staff, hs.CreateMember)
		members.GET("/:id", hs.GetMember)
		members.PUT("/:id", staff, hs.UpdateMember)
		members.GET("/:id/memberships", hs.ListMemberships)
		members.POST("/:id/memberships", staff, hs.AddMembership)
		members.GET("/:id/enrollments", hs.ListEnrollments)
		members.POST("/:id/enrollments", staff, hs.Enroll)

		defects := authed.Group("/defects")
		defects.GET("", hs.ListDefects)
		defects.POST("", hs.ReportDefect)
		defects.GET("/:id", hs.GetDefect)
		defects.PUT("/:id/status", staff, hs.UpdateDefectStatus)
		defects.POST("/:id/comments", hs.AddDefectComment)

		invoices := authed.Group("/invoices")
		invoices.GET("", hs.ListInvoices)
		invoices.POST("", staff, hs.CreateInvoice)
		invoices.GET("/:id", hs.GetInvoice)
		invoices.POST("/:id/payments", hs.RecordPayment)
		invoices.POST("/:id/cancel", staff, hs.CancelInvoice)
		invoices.GET("/:id/pdf", hs.InvoicePDF)

		authed.POST("/charges/quote", hs.QuoteCharges)

		mountCatalog(authed, hs, staff)

		tasks := authed.Group("/tasks", staff)
		tasks.GET("", hs.ListTasks)
		tasks.POST("", hs.CreateTask)
		tasks.GET("/:id", hs.GetTask)
		tasks.PUT("/:id/status", hs.UpdateTaskStatus)
		tasks.POST("/:id/assignments", hs.AssignTask)
		tasks.POST("/:id/comments", hs.CommentTask)
	}

	return r
}

// Catalog resources are readable by everyone signed in; staff maintain them.
func mountCatalog(g *gin.RouterGroup, hs *h.Handlers, staff gin.HandlerFunc) {
	g.GET("/flight-types", hs.ListFlightTypes)
	g.POST("/flight-types", staff, hs.CreateFlightType)
	g.GET("/chargeables", hs.ListChargeables)
	g.POST("/chargeables", staff, hs.CreateChargeable)
	g.GET("/lessons", hs.ListLessons)
	g.POST("/lessons", staff, hs.CreateLesson)
	g.GET("/syllabuses", hs.ListSyllabuses)
	g.POST("/syllabuses", staff, hs.CreateSyllabus)
	g.GET("/membership-types", hs.ListMembershipTypes)
	g.POST("/membership-types", staff, hs.CreateMembershipType)
}
