package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fittrack/fitness-tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

type fakeMediaStorage struct {
	deletedKeys []string
	failErr     error
}

func (f *fakeMediaStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	if f.failErr != nil {
		return "", f.failErr
	}
	return "https://store.example.com/upload/" + objectKey, nil
}

func (f *fakeMediaStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	if f.failErr != nil {
		return "", f.failErr
	}
	return "https://store.example.com/get/" + objectKey, nil
}

func (f *fakeMediaStorage) DeleteObject(ctx context.Context, objectKey string) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.deletedKeys = append(f.deletedKeys, objectKey)
	return nil
}

func newMediaRouter(store *fakeMediaStorage, userID string, role domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserIDKey, userID)
		c.Set(ContextUserRoleKey, role)
	})
	handler := NewMediaHandler(store)
	router.POST("/media/upload-url", handler.CreateUploadURL)
	router.GET("/media/download-url", handler.CreateDownloadURL)
	router.DELETE("/media/object/*key", handler.DeleteObject)
	return router
}

func TestCreateUploadURLNamespacesKeyUnderUser(t *testing.T) {
	router := newMediaRouter(&fakeMediaStorage{}, "user-1", domain.RoleMember)

	body := `{"fileName":"avatar.png","contentType":"image/png"}`
	req := httptest.NewRequest(http.MethodPost, "/media/upload-url", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "media/user-1/") {
		t.Fatalf("object key must live under the user's prefix: %s", w.Body.String())
	}
}

func TestCreateUploadURLRejectsNonImage(t *testing.T) {
	router := newMediaRouter(&fakeMediaStorage{}, "user-1", domain.RoleMember)

	body := `{"fileName":"run.sh","contentType":"application/x-sh"}`
	req := httptest.NewRequest(http.MethodPost, "/media/upload-url", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-image content type, got %d", w.Code)
	}
}

func TestCreateDownloadURLRequiresKey(t *testing.T) {
	router := newMediaRouter(&fakeMediaStorage{}, "user-1", domain.RoleMember)

	req := httptest.NewRequest(http.MethodGet, "/media/download-url", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a key, got %d", w.Code)
	}
}

func TestCreateDownloadURLReturnsPresignedURL(t *testing.T) {
	router := newMediaRouter(&fakeMediaStorage{}, "user-1", domain.RoleMember)

	req := httptest.NewRequest(http.MethodGet, "/media/download-url?key=media/user-1/pic.png", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "https://store.example.com/get/media/user-1/pic.png") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestDeleteObjectOwnPrefix(t *testing.T) {
	store := &fakeMediaStorage{}
	router := newMediaRouter(store, "user-1", domain.RoleMember)

	req := httptest.NewRequest(http.MethodDelete, "/media/object/media/user-1/pic.png", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.deletedKeys) != 1 || store.deletedKeys[0] != "media/user-1/pic.png" {
		t.Fatalf("unexpected deletions: %v", store.deletedKeys)
	}
}

func TestDeleteObjectForeignPrefixForbidden(t *testing.T) {
	store := &fakeMediaStorage{}
	router := newMediaRouter(store, "user-1", domain.RoleMember)

	req := httptest.NewRequest(http.MethodDelete, "/media/object/media/user-2/pic.png", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another account's media, got %d", w.Code)
	}
	if len(store.deletedKeys) != 0 {
		t.Fatalf("nothing should be deleted, got %v", store.deletedKeys)
	}
}

func TestDeleteObjectAdminMayDeleteAny(t *testing.T) {
	store := &fakeMediaStorage{}
	router := newMediaRouter(store, "admin-1", domain.RoleAdmin)

	req := httptest.NewRequest(http.MethodDelete, "/media/object/media/user-2/pic.png", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin delete, got %d", w.Code)
	}
	if len(store.deletedKeys) != 1 {
		t.Fatalf("expected one deletion, got %v", store.deletedKeys)
	}
}
