package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"booking-service/internal/model"
	"booking-service/internal/service"
)

type SlotHandler struct {
	slotService *service.SlotService
	logger      *zap.Logger
}

func NewSlotHandler(slotService *service.SlotService, logger *zap.Logger) *SlotHandler {
	return &SlotHandler{slotService: slotService, logger: logger}
}

type createSlotRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type slotResponse struct {
	ID        int64     `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

func toSlotResponse(slot *model.Slot) slotResponse {
	return slotResponse{
		ID:        slot.ID,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Status:    string(slot.Status),
	}
}

// Create handles POST /api/slots. Admin only.
func (h *SlotHandler) Create(c *gin.Context) {
	var req createSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	slot, err := h.slotService.CreateSlot(c.Request.Context(), req.StartTime, req.EndTime)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	writeSuccess(c, "Slot created successfully", toSlotResponse(slot))
}

// List handles GET /api/slots.
func (h *SlotHandler) List(c *gin.Context) {
	slots, err := h.slotService.GetAllSlots(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	out := make([]slotResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, toSlotResponse(slot))
	}

	writeSuccess(c, "Slots fetched successfully", out)
}
