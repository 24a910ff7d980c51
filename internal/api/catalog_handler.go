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

// CatalogHandler exposes the class catalog.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type AddClassRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Intensity   []string `json:"intensity"`
	Equipment   []string `json:"equipment"`
	Duration    string   `json:"duration"`
	Image       string   `json:"image"`
}

// ListClasses handles GET /classes.
func (h *CatalogHandler) ListClasses(c *gin.Context) {
	classes, err := h.catalogService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch classes")
		return
	}
	if classes == nil {
		classes = []domain.Class{}
	}
	c.JSON(http.StatusOK, classes)
}

// AddClass handles POST /classes.
func (h *CatalogHandler) AddClass(c *gin.Context) {
	var req AddClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	class := &domain.Class{
		Name:        req.Name,
		Description: req.Description,
		Intensity:   req.Intensity,
		Equipment:   req.Equipment,
		Duration:    req.Duration,
		Image:       req.Image,
	}

	created, err := h.catalogService.Add(c.Request.Context(), class)
	if err != nil {
		if errors.Is(err, service.ErrClassAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Error adding class")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"insertedId": created.ID.Hex(),
		"message":    "Class added successfully",
	})
}

// GetClassDetail handles GET /classes/:id: the class document plus the
// active trainers teaching it.
func (h *CatalogHandler) GetClassDetail(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid class ID format",
		})
		return
	}

	detail, err := h.catalogService.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Class not found",
			})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error fetching class details",
			})
		}
		return
	}

	trainers := detail.Trainers
	if trainers == nil {
		trainers = []domain.Trainer{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"classDetails": detail.Class,
		"trainers":     trainers,
	})
}
