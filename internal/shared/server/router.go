package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fna-backend/internal/agents"
	"fna-backend/internal/intake"
	"fna-backend/internal/leads"
	"fna-backend/internal/notifications"
	"fna-backend/internal/prospects"
	"fna-backend/internal/referrals"
	"fna-backend/internal/shared/auth"
	"fna-backend/internal/shared/config"
	"fna-backend/internal/shared/email"
	"fna-backend/internal/shared/metrics"
	"fna-backend/internal/shared/server/middleware"
	"fna-backend/internal/shared/server/respond"
	"fna-backend/internal/shared/storage/db"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	sessions := auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL)

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				middleware.AuthGroup:   middleware.AuthRule(),
				middleware.PublicGroup: middleware.PublicRule(),
			},
			GroupFor: rateLimitGroup,
		}),
		middleware.Session(sessions),
	)

	// Dependencies
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var mail email.Sender = email.LogSender{}
	if cfg.EmailEnabled {
		sender, err := email.NewSESSender(context.Background(), cfg.AWSRegion, cfg.EmailFrom)
		if err != nil {
			log.Printf("failed to init ses sender, falling back to log sender: %v", err)
		} else {
			mail = sender
		}
	}

	var agentRepo agents.Repo
	var prospectRepo prospects.Repo
	var notificationRepo notifications.Repo
	var referralRepo referrals.Repo
	var intakeRepo intake.Repo
	var leadRepo leads.Repo
	if sqlDB != nil {
		agentRepo = &agents.PGRepo{DB: sqlDB}
		prospectRepo = &prospects.PGRepo{DB: sqlDB}
		notificationRepo = &notifications.PGRepo{DB: sqlDB}
		referralRepo = &referrals.PGRepo{DB: sqlDB}
		intakeRepo = &intake.PGRepo{DB: sqlDB}
		leadRepo = &leads.PGRepo{DB: sqlDB}
	} else {
		agentRepo = agents.NewMemoryRepo()
		prospectRepo = prospects.NewMemoryRepo()
		notificationRepo = notifications.NewMemoryRepo()
		referralRepo = referrals.NewMemoryRepo()
		intakeRepo = intake.NewMemoryRepo()
		leadRepo = leads.NewMemoryRepo()
	}

	agentSvc := agents.NewService(agentRepo)
	prospectSvc := prospects.NewService(prospectRepo)
	notificationSvc := notifications.NewService(notificationRepo)
	referralSvc := referrals.NewService(referralRepo, prospectSvc, notificationSvc, mail)
	intakeSvc := intake.NewService(intakeRepo, prospectSvc, referralSvc)
	leadSvc := leads.NewService(leadRepo, agentSvc, prospectSvc, notificationSvc, referralSvc)

	secureCookies := cfg.Env == "production"
	agentHandler := agents.NewHandler(agentSvc, sessions, mail, cfg.AppBaseURL, secureCookies)
	prospectHandler := prospects.NewHandler(prospectSvc)
	notificationHandler := notifications.NewHandler(notificationSvc)
	intakeHandler := intake.NewHandler(intakeSvc)
	leadHandler := leads.NewHandler(leadSvc)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	agentHandler.RegisterRoutes(api)
	prospectHandler.RegisterRoutes(api)
	notificationHandler.RegisterRoutes(api)
	intakeHandler.RegisterRoutes(api)
	leadHandler.RegisterRoutes(api)
	leadHandler.RegisterPublicRoutes(api.Group("/public"))

	r.GET("/metrics", metrics.Handler())

	return r
}

func rateLimitGroup(c *gin.Context) string {
	path := c.Request.URL.Path
	switch {
	case strings.HasPrefix(path, "/api/v1/auth/"):
		return middleware.AuthGroup
	case strings.HasPrefix(path, "/api/v1/public/"):
		return middleware.PublicGroup
	default:
		return ""
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
