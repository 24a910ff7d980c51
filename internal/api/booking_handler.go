package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingHandler covers slot management and the two-step payment flow.
type BookingHandler struct {
	bookingService   service.BookingService
	communityService service.CommunityService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService service.BookingService, communityService service.CommunityService) *BookingHandler {
	return &BookingHandler{
		bookingService:   bookingService,
		communityService: communityService,
	}
}

// --- DTOs ---

type CreateIntentRequest struct {
	Price     float64 `json:"price" binding:"required"`
	TrainerID string  `json:"trainerId" binding:"required"`
	SlotID    string  `json:"slotId" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
}

type CreateIntentResponse struct {
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
}

type SavePaymentRequest struct {
	IdempotencyKey string  `json:"idempotencyKey"`
	Price          float64 `json:"price" binding:"required"`
	Currency       string  `json:"currency"`
	TrainerID      string  `json:"trainerId" binding:"required"`
	TrainerName    string  `json:"trainerName"`
	SlotID         string  `json:"slotId" binding:"required"`
	UserEmail      string  `json:"userEmail" binding:"required,email"`
	UserName       string  `json:"userName"`
	GatewayRef     string  `json:"gatewayRef"`
}

type AddSlotsRequest struct {
	Days     []string `json:"days" binding:"required,min=1"`
	SlotTime string   `json:"slotTime"`
	Classes  []string `json:"classes"`
}

// DashboardStatsResponse feeds the admin overview screen.
type DashboardStatsResponse struct {
	Bookings []domain.Payment    `json:"bookings"`
	Stats    []domain.Subscriber `json:"stats"`
}

// --- Handler Methods ---

// CreatePaymentIntent handles POST /create-payment-intent. The slot is put on
// hold for the reservation window before the gateway is asked for an intent.
func (h *BookingHandler) CreatePaymentIntent(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, err := primitive.ObjectIDFromHex(req.TrainerID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
		return
	}

	result, err := h.bookingService.CreateIntent(c.Request.Context(), service.IntentRequest{
		Price:      req.Price,
		TrainerID:  trainerID,
		SlotID:     req.SlotID,
		PayerEmail: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSlotNotFound):
			abortWithError(c, http.StatusNotFound, "Slot not found")
		case errors.Is(err, service.ErrSlotUnavailable):
			abortWithError(c, http.StatusConflict, "Slot is no longer available")
		case errors.Is(err, service.ErrGatewayFailure):
			abortWithError(c, http.StatusBadGateway, "Payment provider is unavailable, please retry")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create payment intent")
		}
		return
	}

	c.JSON(http.StatusOK, CreateIntentResponse{
		IntentID:     result.IntentID,
		ClientSecret: result.ClientSecret,
	})
}

// SavePayment handles POST /payments: it marks the slot booked and persists
// the payment record. Clients that retry with the same idempotency key get
// the original record back.
func (h *BookingHandler) SavePayment(c *gin.Context) {
	var req SavePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, err := primitive.ObjectIDFromHex(req.TrainerID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
		return
	}

	key := req.IdempotencyKey
	if key == "" {
		key = service.NewIdempotencyKey()
	}

	payment := &domain.Payment{
		IdempotencyKey: key,
		Price:          req.Price,
		Currency:       req.Currency,
		TrainerID:      trainerID,
		TrainerName:    req.TrainerName,
		SlotID:         req.SlotID,
		UserEmail:      req.UserEmail,
		UserName:       req.UserName,
		GatewayRef:     req.GatewayRef,
		CreatedAt:      time.Now(),
	}

	saved, err := h.bookingService.ConfirmPayment(c.Request.Context(), payment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlotNotFound):
			abortWithError(c, http.StatusNotFound, "Slot not found")
		case errors.Is(err, service.ErrSlotUnavailable):
			abortWithError(c, http.StatusConflict, "Slot is already booked by another member")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to save payment")
		}
		return
	}

	c.JSON(http.StatusOK, saved)
}

// ListAllSlots handles GET /all-slots.
func (h *BookingHandler) ListAllSlots(c *gin.Context) {
	slots, err := h.bookingService.ListAllSlots(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch slots")
		return
	}
	c.JSON(http.StatusOK, slots)
}

// RemoveSlot handles DELETE /slots/:id.
func (h *BookingHandler) RemoveSlot(c *gin.Context) {
	err := h.bookingService.RemoveSlot(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSlotNotFound) {
			abortWithError(c, http.StatusNotFound, "Slot not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete slot")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot deleted successfully"})
}

// AddTrainerSlots handles POST /trainer-slots/:email.
func (h *BookingHandler) AddTrainerSlots(c *gin.Context) {
	var req AddSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err := h.bookingService.AddSlots(c.Request.Context(), c.Param("email"), req.Days, req.SlotTime, req.Classes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound):
			abortWithError(c, http.StatusNotFound, "Trainer not found")
		case errors.Is(err, service.ErrDuplicateSlotID):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add trainer slots")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Slot and classes updated successfully"})
}

// ListBookedTrainers handles GET /booked-trainers: the payment records, which
// carry the trainer and slot each member booked.
func (h *BookingHandler) ListBookedTrainers(c *gin.Context) {
	payments, err := h.bookingService.ListPayments(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch booked trainers")
		return
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	c.JSON(http.StatusOK, payments)
}

// DashboardStats handles GET /admin/dashboard-stats.
func (h *BookingHandler) DashboardStats(c *gin.Context) {
	bookings, err := h.bookingService.ListPayments(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}
	subscribers, err := h.communityService.ListSubscribers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}
	if bookings == nil {
		bookings = []domain.Payment{}
	}
	if subscribers == nil {
		subscribers = []domain.Subscriber{}
	}
	c.JSON(http.StatusOK, DashboardStatsResponse{Bookings: bookings, Stats: subscribers})
}
