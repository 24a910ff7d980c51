package api

import (
	"errors"
	"fmt"
	"net/http"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerHandler exposes the trainer application lifecycle.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- DTOs ---

// TrainerApplicationRequest is the POST /trainers payload. The per-class
// maps are keyed by class name.
type TrainerApplicationRequest struct {
	FullName          string              `json:"fullName" binding:"required"`
	Email             string              `json:"email" binding:"required,email"`
	Age               int                 `json:"age"`
	Experience        string              `json:"experience"`
	Skills            []string            `json:"skills"`
	ProfileImage      string              `json:"profileImage"`
	Facebook          string              `json:"facebook"`
	Twitter           string              `json:"twitter"`
	Instagram         string              `json:"instagram"`
	AvailableDays     []string            `json:"availableDays"`
	AvailableTime     string              `json:"availableTime"`
	Classes           []string            `json:"classes"`
	ClassDescriptions map[string]string   `json:"classDescriptions"`
	ClassEquipment    map[string][]string `json:"classEquipment"`
	ClassDurations    map[string]string   `json:"classDurations"`
	ClassImages       map[string]string   `json:"classImages"`
}

type UpdateStatusRequest struct {
	Status domain.TrainerStatus `json:"status" binding:"required"`
}

type RejectRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

// --- Handler Methods ---

// Apply handles POST /trainers.
func (h *TrainerHandler) Apply(c *gin.Context) {
	var req TrainerApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	app := service.TrainerApplication{
		FullName:     req.FullName,
		Email:        req.Email,
		Age:          req.Age,
		Experience:   req.Experience,
		Skills:       req.Skills,
		ProfileImage: req.ProfileImage,
		Social: domain.SocialLinks{
			Facebook:  req.Facebook,
			Twitter:   req.Twitter,
			Instagram: req.Instagram,
		},
		AvailableDays:     req.AvailableDays,
		AvailableTime:     req.AvailableTime,
		Classes:           req.Classes,
		ClassDescriptions: req.ClassDescriptions,
		ClassEquipment:    req.ClassEquipment,
		ClassDurations:    req.ClassDurations,
		ClassImages:       req.ClassImages,
	}

	trainer, err := h.trainerService.Apply(c.Request.Context(), app)
	if err != nil {
		if errors.Is(err, service.ErrTrainerAlreadyApplied) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to submit trainer application")
		}
		return
	}

	c.JSON(http.StatusCreated, trainer)
}

// ListActive handles GET /trainers.
func (h *TrainerHandler) ListActive(c *gin.Context) {
	trainers, err := h.trainerService.ListActive(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch trainers")
		return
	}
	if trainers == nil {
		trainers = []domain.Trainer{}
	}
	c.JSON(http.StatusOK, trainers)
}

// ListPending handles GET /pending-trainers.
func (h *TrainerHandler) ListPending(c *gin.Context) {
	trainers, err := h.trainerService.ListPending(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch pending trainers")
		return
	}
	if trainers == nil {
		trainers = []domain.Trainer{}
	}
	c.JSON(http.StatusOK, trainers)
}

// ListApplications handles GET /all-trainers: every pending or rejected
// application for the admin review screen.
func (h *TrainerHandler) ListApplications(c *gin.Context) {
	trainers, err := h.trainerService.ListPendingOrRejected(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch trainer applications")
		return
	}
	if trainers == nil {
		trainers = []domain.Trainer{}
	}
	c.JSON(http.StatusOK, trainers)
}

// GetByID handles GET /trainers/:id.
func (h *TrainerHandler) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid trainer ID format",
		})
		return
	}

	trainer, err := h.trainerService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Trainer not found",
			})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to fetch trainer details",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    trainer,
	})
}

// GetProfileByID handles GET /trainer/:id. Unlike GET /trainers/:id this
// returns the bare document without the success envelope.
func (h *TrainerHandler) GetProfileByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
		return
	}

	trainer, err := h.trainerService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, "Trainer not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch trainer")
		}
		return
	}
	c.JSON(http.StatusOK, trainer)
}

// GetProfile handles GET /trainer-profile/:email.
func (h *TrainerHandler) GetProfile(c *gin.Context) {
	trainer, err := h.trainerService.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, "Trainer not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch trainer profile")
		}
		return
	}
	c.JSON(http.StatusOK, trainer)
}

// UpdateStatus handles PATCH /trainers/:id.
func (h *TrainerHandler) UpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err = h.trainerService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, "Trainer not found")
		} else if errors.Is(err, service.ErrInvalidTrainerStatus) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update trainer status")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trainer status updated successfully"})
}

// Reject handles PATCH /trainers/:id/reject.
func (h *TrainerHandler) Reject(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err = h.trainerService.Reject(c.Request.Context(), id, req.Feedback)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, "Trainer not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to reject trainer")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trainer rejected and feedback saved successfully"})
}

// Remove handles DELETE /trainers/:id.
func (h *TrainerHandler) Remove(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
		return
	}

	err = h.trainerService.Remove(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, "Trainer not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to remove trainer")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trainer deleted and role updated successfully"})
}
