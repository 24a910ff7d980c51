package api

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MediaHandler issues presigned URLs for profile and class images. The
// browser uploads directly to the object store; this API never sees the
// image bytes.
type MediaHandler struct {
	store storage.MediaStorage
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(store storage.MediaStorage) *MediaHandler {
	return &MediaHandler{store: store}
}

type UploadURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// CreateUploadURL handles POST /media/upload-url. The object key is
// namespaced under the requesting user so uploads cannot collide or
// overwrite another account's media.
func (h *MediaHandler) CreateUploadURL(c *gin.Context) {
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if !strings.HasPrefix(req.ContentType, "image/") {
		abortWithError(c, http.StatusBadRequest, "Only image uploads are supported")
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	ext := path.Ext(req.FileName)
	objectKey := fmt.Sprintf("media/%s/%s%s", userID, uuid.NewString(), ext)

	url, err := h.store.GeneratePresignedUploadURL(c.Request.Context(), objectKey, req.ContentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL")
		return
	}

	c.JSON(http.StatusOK, UploadURLResponse{
		UploadURL: url,
		ObjectKey: objectKey,
	})
}

type DownloadURLResponse struct {
	DownloadURL string `json:"downloadUrl"`
	ObjectKey   string `json:"objectKey"`
}

// CreateDownloadURL handles GET /media/download-url?key=... and returns a
// temporary GET URL for a stored object.
func (h *MediaHandler) CreateDownloadURL(c *gin.Context) {
	objectKey := c.Query("key")
	if objectKey == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'key' is required")
		return
	}

	url, err := h.store.GeneratePresignedDownloadURL(c.Request.Context(), objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL")
		return
	}

	c.JSON(http.StatusOK, DownloadURLResponse{
		DownloadURL: url,
		ObjectKey:   objectKey,
	})
}

// DeleteObject handles DELETE /media/object/*key. Non-admin callers may only
// delete objects under their own media/<userID>/ prefix.
func (h *MediaHandler) DeleteObject(c *gin.Context) {
	objectKey := strings.TrimPrefix(c.Param("key"), "/")
	if objectKey == "" {
		abortWithError(c, http.StatusBadRequest, "Object key is required")
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	ownPrefix := fmt.Sprintf("media/%s/", userID)
	if role != domain.RoleAdmin && !strings.HasPrefix(objectKey, ownPrefix) {
		abortWithError(c, http.StatusForbidden, "Cannot delete another account's media")
		return
	}

	if err := h.store.DeleteObject(c.Request.Context(), objectKey); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete object")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Object deleted successfully"})
}
