package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"roomify/handlers"
	"roomify/middleware"
)

// RegisterPublicRoutes registers the customer-facing endpoints.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/site-content", hb.SiteContentHandler)
		api.GET("/rooms", hb.ListRoomsHandler)
		api.GET("/rooms/:id", hb.GetRoomHandler)
		api.GET("/rooms/:id/availability", hb.RoomAvailabilityHandler)
		api.POST("/book", hb.CreateBookingHandler)
		api.GET("/bookings/check", hb.CheckBookingHandler)
	}
}

// RegisterChatRoutes registers the chat platform webhook endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.POST("/message", hb.ChatMessageHandler)
		api.POST("/follow", hb.ChatFollowHandler)
	}
}

// RegisterAdminRoutes registers the admin panel endpoints. Everything past
// login requires the admin JWT.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/admin/api")
	{
		adminGroup.POST("/login", hb.AdminLoginHandler)

		adminGroup.Use(middleware.JWTAuthAdminMiddleware())
		adminGroup.GET("/rooms", hb.AdminListRoomsHandler)
		adminGroup.POST("/rooms", hb.AdminCreateRoomHandler)
		adminGroup.PATCH("/rooms/:id", hb.AdminUpdateRoomHandler)
		adminGroup.DELETE("/rooms/:id", hb.AdminDeactivateRoomHandler)
		adminGroup.POST("/rooms/:id/photo", hb.UploadRoomPhotoHandler)

		adminGroup.GET("/bookings", hb.AdminListBookingsHandler)
		adminGroup.POST("/bookings/:id/cancel", hb.AdminCancelBookingHandler)
		adminGroup.POST("/bookings/:id/complete", hb.AdminCompleteBookingHandler)

		adminGroup.GET("/blocked-slots", hb.AdminListBlackoutsHandler)
		adminGroup.POST("/blocked-slots", hb.AdminCreateBlackoutHandler)
		adminGroup.DELETE("/blocked-slots/:id", hb.AdminDeleteBlackoutHandler)

		adminGroup.GET("/site-content", hb.AdminGetContentHandler)
		adminGroup.PUT("/site-content", hb.AdminSetContentHandler)

		adminGroup.GET("/stats", hb.AdminStatsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterPublicRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
