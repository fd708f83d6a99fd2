package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domainSalon "github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/token"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucAuth "github.com/BruksfildServices01/salon-scheduler/internal/usecase/auth"
	ucSalon "github.com/BruksfildServices01/salon-scheduler/internal/usecase/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// Deps is everything the router needs. SalonCache, Images, Audit, Metrics
// and Gatherer are optional.
type Deps struct {
	Config *config.Config
	Store  *repository.Store
	Tokens *token.Issuer
	Logger *zap.Logger

	// SalonCache serves the public catalog reads. Writes and bookings read
	// through its Primary view.
	SalonCache *cache.SalonCache
	Images     ucSalon.ImageStore
	Audit      *audit.Dispatcher
	Metrics    *metrics.Metrics
	Gatherer   prometheus.Gatherer
}

// NewRouter builds the gin engine with global middleware, operational
// endpoints and the API.
func NewRouter(d Deps) *gin.Engine {
	validators.RegisterBindings()

	r := gin.New()

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.RecoveryMiddleware(d.Logger))
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running...")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	store := d.Store

	// Writes and price snapshots never start from a cached salon.
	var catalog, salons domainSalon.Repository = store.Salons, store.Salons
	if d.SalonCache != nil {
		catalog, salons = d.SalonCache, d.SalonCache.Primary()
	}

	authOpts := ucAuth.Options{
		IsAdminEmail:        cfg.IsAdminEmail,
		ValidateEmailDomain: cfg.ValidateEmailDomain,
	}

	// ======================================================
	// USE CASES
	// ======================================================
	var addImage *ucSalon.AddSalonImage
	if d.Images != nil {
		addImage = ucSalon.NewAddSalonImage(salons, d.Images, d.Audit)
	}

	salonHandler := handlers.NewSalonHandler(
		ucSalon.NewListSalons(catalog),
		ucSalon.NewGetSalon(catalog),
		ucSalon.NewCreateSalon(salons, d.Audit),
		ucSalon.NewUpdateSalon(salons, d.Audit),
		ucSalon.NewDeleteSalon(salons, d.Audit),
		addImage,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(store.Appointments, salons, d.Audit, d.Metrics, ucAppointment.CreateOptions{
			ConflictCheck: cfg.BookingConflictCheck,
			Timezone:      cfg.Timezone,
		}),
		ucAppointment.NewListMyAppointments(store.Appointments, salons),
		ucAppointment.NewListSalonAppointments(store.Appointments, salons, store.Users),
		ucAppointment.NewGetAppointment(store.Appointments, salons, store.Users),
		ucAppointment.NewUpdateAppointmentStatus(store.Appointments, d.Audit, d.Metrics, cfg.Timezone),
		ucAppointment.NewCancelAppointment(store.Appointments, d.Audit, d.Metrics, cfg.Timezone),
		ucAppointment.NewExportSalonAppointments(store.Appointments, salons, store.Users),
	)

	authHandler := handlers.NewAuthHandler(
		ucAuth.NewRegister(store.Users, d.Tokens, d.Audit, authOpts),
		ucAuth.NewLogin(store.Users, d.Tokens, authOpts),
	)

	var oauthHandler *handlers.OAuthHandler
	if cfg.GoogleOAuthEnabled() {
		oauthHandler = handlers.NewOAuthHandler(handlers.GoogleOAuthConfig{
			ClientID:       cfg.GoogleClientID,
			ClientSecret:   cfg.GoogleClientSecret,
			RedirectURL:    cfg.GoogleCallbackURL,
			SecureCookie:   cfg.IsProduction(),
			AllowedOrigins: cfg.RedirectOrigins(),
		}, ucAuth.NewGoogleLogin(store.Users, d.Tokens, d.Audit, authOpts))
	}

	// ======================================================
	// API
	// ======================================================
	gate := middleware.NewGate(middleware.AuthMiddleware(d.Tokens, store.Users))
	gate.Register(r.Group("/api"), Policy(authHandler, oauthHandler, salonHandler, appointmentHandler))
}

// Policy is the access table of the API. Ownership rules (booker or admin)
// are enforced by the use cases on top of the level listed here.
func Policy(
	auth *handlers.AuthHandler,
	oauth *handlers.OAuthHandler,
	salons *handlers.SalonHandler,
	appointments *handlers.AppointmentHandler,
) []middleware.Route {
	const (
		public = middleware.Public
		authn  = middleware.Authenticated
		admin  = middleware.Admin
	)

	googleStart, googleCallback := oauthDisabled, oauthDisabled
	if oauth != nil {
		googleStart, googleCallback = oauth.Start, oauth.Callback
	}

	return []middleware.Route{
		// AUTH
		{Method: http.MethodPost, Path: "/auth/register", Access: public, Handler: auth.Register},
		{Method: http.MethodPost, Path: "/auth/login", Access: public, Handler: auth.Login},
		{Method: http.MethodGet, Path: "/auth/profile", Access: authn, Handler: auth.Profile},
		{Method: http.MethodGet, Path: "/auth/google", Access: public, Handler: googleStart},
		{Method: http.MethodGet, Path: "/auth/google/callback", Access: public, Handler: googleCallback},

		// SALONS
		{Method: http.MethodGet, Path: "/salons", Access: public, Handler: salons.List},
		{Method: http.MethodPost, Path: "/salons", Access: admin, Handler: salons.Create},
		{Method: http.MethodGet, Path: "/salons/:id", Access: public, Handler: salons.Get},
		{Method: http.MethodPut, Path: "/salons/:id", Access: admin, Handler: salons.Update},
		{Method: http.MethodDelete, Path: "/salons/:id", Access: admin, Handler: salons.Delete},
		{Method: http.MethodPost, Path: "/salons/:id/images", Access: admin, Handler: salons.UploadImage},

		// APPOINTMENTS
		{Method: http.MethodPost, Path: "/appointments", Access: authn, Handler: appointments.Create},
		{Method: http.MethodGet, Path: "/appointments/myappointments", Access: authn, Handler: appointments.ListMine},
		{Method: http.MethodGet, Path: "/appointments/salon/:id", Access: admin, Handler: appointments.ListForSalon},
		{Method: http.MethodGet, Path: "/appointments/salon/:id/export", Access: admin, Handler: appointments.Export},
		{Method: http.MethodGet, Path: "/appointments/:id", Access: authn, Handler: appointments.Get},
		{Method: http.MethodDelete, Path: "/appointments/:id", Access: authn, Handler: appointments.Cancel},
		{Method: http.MethodPut, Path: "/appointments/:id/status", Access: admin, Handler: appointments.UpdateStatus},
	}
}

func oauthDisabled(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotImplemented, gin.H{"message": "Google login is not configured"})
}
