package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	roomRepo "roomify/database/repository/room"
	svc "roomify/services/booking"
)

// RoomHandler serves the public room catalogue and availability views.
type RoomHandler struct {
	Rooms      roomRepo.RoomRepository
	BookingSvc svc.BookingService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(rooms roomRepo.RoomRepository, bookingSvc svc.BookingService) *RoomHandler {
	return &RoomHandler{Rooms: rooms, BookingSvc: bookingSvc}
}

// ListRoomsHandler returns every active room.
func (h *RoomHandler) ListRoomsHandler(c *gin.Context) {
	rooms, err := h.Rooms.ListActive(c.Request.Context())
	if err != nil {
		getLogger(c).Error("failed to list rooms", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch rooms"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoomHandler returns a single active room by id.
func (h *RoomHandler) GetRoomHandler(c *gin.Context) {
	room, err := h.Rooms.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		getLogger(c).Error("failed to fetch room", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch room"})
		return
	}
	if !room.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, room)
}

// RoomAvailabilityHandler returns the occupied intervals for a room on a
// date. Intervals carry only times and a booked/blocked tag, never who
// booked them.
func (h *RoomHandler) RoomAvailabilityHandler(c *gin.Context) {
	roomID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	if _, err := h.Rooms.GetByID(c.Request.Context(), roomID); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		getLogger(c).Error("failed to fetch room", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch room"})
		return
	}

	intervals, err := h.BookingSvc.OccupiedIntervals(c.Request.Context(), roomID, date)
	if err != nil {
		getLogger(c).Error("failed to compute availability", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room_id":   roomID,
		"date":      date,
		"intervals": intervals,
	})
}
