package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"roomify/config"
	blockedRepo "roomify/database/repository/blocked"
	bookingRepo "roomify/database/repository/booking"
	contentRepo "roomify/database/repository/content"
	roomRepo "roomify/database/repository/room"
	"roomify/models"
	svc "roomify/services/booking"
	"roomify/utils"
)

const adminTokenDuration = 12 * time.Hour

// AdminHandler encapsulates the admin panel operations.
type AdminHandler struct {
	Rooms      roomRepo.RoomRepository
	Bookings   bookingRepo.BookingRepository
	Blocked    blockedRepo.BlockedRepository
	Content    contentRepo.ContentRepository
	BookingSvc svc.BookingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	rooms roomRepo.RoomRepository,
	bookings bookingRepo.BookingRepository,
	blocked blockedRepo.BlockedRepository,
	content contentRepo.ContentRepository,
	bookingSvc svc.BookingService,
) *AdminHandler {
	return &AdminHandler{
		Rooms:      rooms,
		Bookings:   bookings,
		Blocked:    blocked,
		Content:    content,
		BookingSvc: bookingSvc,
	}
}

// LoginHandler exchanges the admin password for a JWT.
func (ah *AdminHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if !checkAdminPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.GenerateAdminToken(adminTokenDuration)
	if err != nil {
		getLogger(c).Error("failed to sign admin token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func checkAdminPassword(password string) bool {
	if hash := config.AppConfig.AdminPasswordHash; hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	// Development fallback.
	plain := config.AppConfig.AdminPassword
	return plain != "" && plain == password
}

// ListRoomsHandler returns every room, active or not.
func (ah *AdminHandler) ListRoomsHandler(c *gin.Context) {
	rooms, err := ah.Rooms.List(c.Request.Context())
	if err != nil {
		getLogger(c).Error("failed to list rooms", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch rooms"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// CreateRoomHandler adds a room to the catalogue.
func (ah *AdminHandler) CreateRoomHandler(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if room.Name == "" || room.Capacity <= 0 || room.HourlyRate < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, positive capacity and non-negative hourly rate are required"})
		return
	}

	room.ID = uuid.New().String()
	room.IsActive = true
	room.CreatedAt = time.Now()
	if err := ah.Rooms.Create(c.Request.Context(), &room); err != nil {
		getLogger(c).Error("failed to create room", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}
	c.JSON(http.StatusCreated, room)
}

// UpdateRoomHandler applies a partial update to a room.
func (ah *AdminHandler) UpdateRoomHandler(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	// Identity and creation fields are not updatable.
	delete(updates, "id")
	delete(updates, "_id")
	delete(updates, "created_at")
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no updatable fields provided"})
		return
	}

	room, err := ah.Rooms.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		if err == roomRepo.ErrRoomNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		getLogger(c).Error("failed to update room", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update room"})
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeactivateRoomHandler retires a room from the public catalogue. Existing
// bookings are untouched.
func (ah *AdminHandler) DeactivateRoomHandler(c *gin.Context) {
	if err := ah.Rooms.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		if err == roomRepo.ErrRoomNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		getLogger(c).Error("failed to deactivate room", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deactivate room"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "room deactivated"})
}

// ListBookingsHandler lists bookings, optionally filtered by date, status
// and room.
func (ah *AdminHandler) ListBookingsHandler(c *gin.Context) {
	filter := bookingRepo.BookingFilter{
		Date:   c.Query("date"),
		Status: c.Query("status"),
		RoomID: c.Query("room_id"),
	}
	bookings, err := ah.BookingSvc.ListBookings(c.Request.Context(), filter)
	if err != nil {
		getLogger(c).Error("failed to list bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CancelBookingHandler cancels a booking on the customer's behalf.
func (ah *AdminHandler) CancelBookingHandler(c *gin.Context) {
	if err := ah.BookingSvc.CancelBooking(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// CompleteBookingHandler marks a booking as held.
func (ah *AdminHandler) CompleteBookingHandler(c *gin.Context) {
	if err := ah.BookingSvc.CompleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking completed"})
}

// ListBlackoutsHandler lists blackout windows for a date, venue-wide ones
// included.
func (ah *AdminHandler) ListBlackoutsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	blocks, err := ah.Blocked.ListForDate(c.Request.Context(), date)
	if err != nil {
		getLogger(c).Error("failed to list blackout windows", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch blackout windows"})
		return
	}
	c.JSON(http.StatusOK, blocks)
}

// CreateBlackoutHandler declares a blackout window. An empty room_id makes
// it venue-wide. Inputs are held to the same format rules as customer
// bookings.
func (ah *AdminHandler) CreateBlackoutHandler(c *gin.Context) {
	var req struct {
		RoomID string `json:"room_id"`
		Date   string `json:"date" binding:"required"`
		Start  string `json:"start" binding:"required"`
		End    string `json:"end" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	start, err := svc.ToMinutes(req.Start)
	if err != nil {
		respondServiceError(c, getLogger(c), err)
		return
	}
	end, err := svc.ToMinutes(req.End)
	if err != nil {
		respondServiceError(c, getLogger(c), err)
		return
	}
	if start >= end {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be before end"})
		return
	}
	if req.RoomID != "" {
		if _, err := ah.Rooms.GetByID(c.Request.Context(), req.RoomID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
	}

	block := models.BlockedSlot{
		ID:        uuid.New().String(),
		RoomID:    req.RoomID,
		Date:      req.Date,
		Start:     req.Start,
		End:       req.End,
		Reason:    strings.TrimSpace(req.Reason),
		CreatedAt: time.Now(),
	}
	if err := ah.Blocked.Create(c.Request.Context(), &block); err != nil {
		getLogger(c).Error("failed to create blackout window", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create blackout window"})
		return
	}
	c.JSON(http.StatusCreated, block)
}

// DeleteBlackoutHandler removes a blackout window.
func (ah *AdminHandler) DeleteBlackoutHandler(c *gin.Context) {
	if err := ah.Blocked.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if err == blockedRepo.ErrBlockNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "blackout window not found"})
			return
		}
		getLogger(c).Error("failed to delete blackout window", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete blackout window"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "blackout window removed"})
}

// GetContentHandler returns every site content entry.
func (ah *AdminHandler) GetContentHandler(c *gin.Context) {
	content, err := ah.Content.GetAll(c.Request.Context())
	if err != nil {
		getLogger(c).Error("failed to fetch site content", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch site content"})
		return
	}
	c.JSON(http.StatusOK, content)
}

// SetContentHandler upserts site content entries.
func (ah *AdminHandler) SetContentHandler(c *gin.Context) {
	var entries map[string]string
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	for key, value := range entries {
		if err := ah.Content.Set(c.Request.Context(), key, value); err != nil {
			getLogger(c).Error("failed to set site content",
				zap.String("key", key), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save site content"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "site content saved"})
}

// StatsHandler returns the dashboard aggregates.
func (ah *AdminHandler) StatsHandler(c *gin.Context) {
	stats, err := ah.BookingSvc.Stats(c.Request.Context())
	if err != nil {
		getLogger(c).Error("failed to compute stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
