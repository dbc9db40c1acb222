package app

import (
	"database/sql"
	"os"

	"pto-track/internal/absence"
	"pto-track/internal/authz"
	"pto-track/internal/calendar"
	"pto-track/internal/event"
	"pto-track/internal/group"
	"pto-track/internal/identity"
	"pto-track/internal/middleware"
	"pto-track/internal/resource"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	resourceRepo := resource.NewRepository(gormDB)
	groupRepo := group.NewRepository(gormDB)
	absenceRepo := absence.NewRepository(gormDB)
	eventRepo := event.NewRepository(gormDB)

	// --- Route-level RBAC ---
	enforcer, err := authz.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	resourceService := resource.NewService(db, resourceRepo, rdb)
	groupService := group.NewService(db, groupRepo, rdb)
	absenceService := absence.NewService(db, absenceRepo)
	eventService := event.NewService(db, eventRepo)

	// --- Identity ---
	var claims identity.ClaimsProvider
	if os.Getenv("AUTH_MODE") == "jwt" {
		claims = identity.NewJWTClaimsProvider(os.Getenv("JWT_SECRET"))
	} else {
		claims = identity.NewMockClaimsProvider()
	}

	// --- Handlers ---
	resourceHandler := resource.NewHandler(resourceService)
	groupHandler := group.NewHandler(groupService)
	absenceHandler := absence.NewHandler(absenceService)
	eventHandler := event.NewHandler(eventService)
	identityHandler := identity.NewHandler(claims)
	calendarHandler := calendar.NewHandler()

	// --- Middleware chain ---
	limiter := middleware.NewIPRateLimiter(rate.Limit(20), 40)
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimit(limiter))

	api := router.Group("/api")
	api.Use(identity.Middleware(claims, resourceService))

	// --- Routes ---
	absence.RegisterRoutes(api, absenceHandler, enforcer)
	resource.RegisterRoutes(api, resourceHandler, enforcer)
	group.RegisterRoutes(api, groupHandler, enforcer)
	event.RegisterRoutes(api, eventHandler)
	identity.RegisterRoutes(api, identityHandler)
	calendar.RegisterRoutes(api, calendarHandler)

	return nil
}
