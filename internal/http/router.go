package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"booking-service/internal/auth"
	"booking-service/internal/http/handlers"
	"booking-service/internal/http/middleware"
	"booking-service/internal/model"
)

// NewRouter assembles the HTTP surface. Route permissions:
// auth endpoints are public, slot creation and admin cancel require ADMIN,
// everything else just needs a valid token.
func NewRouter(
	env string,
	tokens *auth.TokenProvider,
	authHandler *handlers.AuthHandler,
	slotHandler *handlers.SlotHandler,
	bookingHandler *handlers.BookingHandler,
	logger *zap.Logger,
) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(logger))

	api := router.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("", middleware.JWTAuth(tokens))
	authed.GET("/slots", slotHandler.List)
	authed.POST("/slots", middleware.RequireRole(model.RoleAdmin), slotHandler.Create)

	authed.POST("/bookings", bookingHandler.Book)
	authed.GET("/bookings", bookingHandler.List)
	authed.POST("/bookings/:id/cancel", bookingHandler.Cancel)

	admin := authed.Group("/admin", middleware.RequireRole(model.RoleAdmin))
	admin.POST("/bookings/:id/cancel", bookingHandler.AdminCancel)

	return router
}
