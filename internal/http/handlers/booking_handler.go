package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"booking-service/internal/http/middleware"
	"booking-service/internal/model"
	"booking-service/internal/service"
)

type BookingHandler struct {
	bookingService *service.BookingService
	logger         *zap.Logger
}

func NewBookingHandler(bookingService *service.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, logger: logger}
}

type bookingResponse struct {
	BookingID int64     `json:"bookingId"`
	SlotID    int64     `json:"slotId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`

	Slot *slotResponse `json:"slot,omitempty"`
}

func toBookingResponse(booking *model.Booking) bookingResponse {
	resp := bookingResponse{
		BookingID: booking.ID,
		SlotID:    booking.SlotID,
		Status:    string(booking.Status),
		CreatedAt: booking.CreatedAt,
	}
	if booking.Slot != nil {
		slot := toSlotResponse(booking.Slot)
		resp.Slot = &slot
	}
	return resp
}

// Book handles POST /api/bookings?slotId=<id>.
func (h *BookingHandler) Book(c *gin.Context) {
	slotID, err := strconv.ParseInt(c.Query("slotId"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "slotId query parameter is required")
		return
	}

	booking, err := h.bookingService.BookSlot(c.Request.Context(), slotID, middleware.UserID(c))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	writeSuccess(c, "Slot booked successfully", toBookingResponse(booking))
}

// List handles GET /api/bookings: the requester's own bookings.
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.bookingService.GetUserBookings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, toBookingResponse(booking))
	}

	writeSuccess(c, "Bookings fetched successfully", out)
}

// Cancel handles POST /api/bookings/:id/cancel. Owners only.
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.cancel(c, middleware.IsAdmin(c))
}

// AdminCancel handles POST /api/admin/bookings/:id/cancel. Any booking.
func (h *BookingHandler) AdminCancel(c *gin.Context) {
	h.cancel(c, true)
}

func (h *BookingHandler) cancel(c *gin.Context, isAdmin bool) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	if err := h.bookingService.CancelBooking(c.Request.Context(), bookingID, middleware.UserID(c), isAdmin); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	writeSuccess(c, "Booking cancelled", nil)
}
