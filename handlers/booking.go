package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roomify/models"
	svc "roomify/services/booking"
)

// BookingHandler serves the public booking endpoints.
type BookingHandler struct {
	BookingSvc svc.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingSvc svc.BookingService) *BookingHandler {
	return &BookingHandler{BookingSvc: bookingSvc}
}

type createBookingRequest struct {
	RoomID     string           `json:"room_id"`
	Date       string           `json:"date"`
	Segments   []models.Segment `json:"segments"`
	Start      string           `json:"start"`
	End        string           `json:"end"`
	Name       string           `json:"name"`
	Phone      string           `json:"phone"`
	Email      string           `json:"email"`
	Department string           `json:"department"`
	Attendees  int              `json:"attendees"`
	Purpose    string           `json:"purpose"`
	Note       string           `json:"note"`
}

// CreateBookingHandler books a room. The request carries either a segments
// array or a single start/end pair, which is treated as a one-segment
// booking.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	segments := req.Segments
	if len(segments) == 0 {
		if req.Start == "" || req.End == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "either segments or a start/end pair is required"})
			return
		}
		segments = []models.Segment{{Start: req.Start, End: req.End}}
	}

	booking, err := h.BookingSvc.CreateBooking(c.Request.Context(), svc.CreateBookingInput{
		RoomID:     req.RoomID,
		Date:       req.Date,
		Segments:   segments,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Department: req.Department,
		Attendees:  req.Attendees,
		Purpose:    req.Purpose,
		Note:       req.Note,
	})
	if err != nil {
		respondServiceError(c, getLogger(c), err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// CheckBookingHandler looks a booking up by number plus the phone it was
// made under. Both must match.
func (h *BookingHandler) CheckBookingHandler(c *gin.Context) {
	number := c.Query("number")
	phone := c.Query("phone")
	if number == "" || phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "number and phone query parameters are required"})
		return
	}

	booking, err := h.BookingSvc.LookupBooking(c.Request.Context(), number, phone)
	if err != nil {
		respondServiceError(c, getLogger(c), err)
		return
	}

	c.JSON(http.StatusOK, booking)
}
