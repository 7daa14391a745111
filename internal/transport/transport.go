package transport

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/solomonczyk/autoservice/internal/entity"
	"github.com/solomonczyk/autoservice/internal/transport/middleware"
)

func InitRoutes(
	authHandler *AuthHandler,
	slotHandler *SlotHandler,
	appointmentHandler *AppointmentHandler,
	catalogHandler *CatalogHandler,
	clientHandler *ClientHandler,
	streamHandler *StreamHandler,
	authMW *middleware.AuthMiddleware,
) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))
	router.Use(middleware.Logger())

	// Таймаут не вешается на роутер целиком, чтобы не обрывать
	// SSE-поток обновлений
	timeout := middleware.Timeout(30 * time.Second)

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes
		auth := api.Group("/auth", timeout)
		{
			auth.POST("/login", authHandler.Login)
		}

		// Slot routes: публичные, используются страницей записи
		slots := api.Group("/slots", timeout)
		{
			slots.GET("/available", slotHandler.GetAvailableSlots)
		}

		// Appointment routes
		appointments := api.Group("/appointments", timeout, authMW.Required())
		{
			appointments.POST("", appointmentHandler.CreateAppointment)
			appointments.GET("", appointmentHandler.GetAppointments)
			appointments.GET("/:id", appointmentHandler.GetAppointment)
			appointments.PATCH("/:id", appointmentHandler.RescheduleAppointment)
			appointments.PATCH("/:id/status", appointmentHandler.UpdateStatus)
			appointments.POST("/:id/cancel", appointmentHandler.CancelAppointment)
		}

		// Catalog routes
		services := api.Group("/services", timeout)
		{
			services.GET("", catalogHandler.GetServices)
			services.POST("", authMW.Required(), authMW.RequireRole(entity.RoleAdmin), catalogHandler.CreateService)
			services.DELETE("/:id", authMW.Required(), authMW.RequireRole(entity.RoleAdmin), catalogHandler.DeleteService)
		}

		shops := api.Group("/shops", timeout, authMW.Required(), authMW.RequireRole(entity.RoleAdmin))
		{
			shops.GET("", catalogHandler.GetShops)
		}

		// Client routes
		clients := api.Group("/clients", timeout, authMW.Required())
		{
			clients.GET("", clientHandler.GetClients)
			clients.GET("/:id/appointments", clientHandler.GetClientAppointments)
			clients.POST("/:id/telegram", clientHandler.LinkTelegram)
		}

		// Live updates for the dashboard
		api.GET("/updates/stream", streamHandler.Stream)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return router
}
