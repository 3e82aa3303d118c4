package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Public endpoints
	SiteContentHandler      gin.HandlerFunc
	ListRoomsHandler        gin.HandlerFunc
	GetRoomHandler          gin.HandlerFunc
	RoomAvailabilityHandler gin.HandlerFunc
	CreateBookingHandler    gin.HandlerFunc
	CheckBookingHandler     gin.HandlerFunc

	// Chat webhook endpoints
	ChatMessageHandler gin.HandlerFunc
	ChatFollowHandler  gin.HandlerFunc

	// Admin endpoints
	AdminLoginHandler           gin.HandlerFunc
	AdminListRoomsHandler       gin.HandlerFunc
	AdminCreateRoomHandler      gin.HandlerFunc
	AdminUpdateRoomHandler      gin.HandlerFunc
	AdminDeactivateRoomHandler  gin.HandlerFunc
	AdminListBookingsHandler    gin.HandlerFunc
	AdminCancelBookingHandler   gin.HandlerFunc
	AdminCompleteBookingHandler gin.HandlerFunc
	AdminListBlackoutsHandler   gin.HandlerFunc
	AdminCreateBlackoutHandler  gin.HandlerFunc
	AdminDeleteBlackoutHandler  gin.HandlerFunc
	AdminGetContentHandler      gin.HandlerFunc
	AdminSetContentHandler      gin.HandlerFunc
	AdminStatsHandler           gin.HandlerFunc
	UploadRoomPhotoHandler      gin.HandlerFunc
}
