package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubUserService struct {
	createErr error
	getErr    error
	user      *domain.User
}

func (s *stubUserService) CreateUser(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user.ID = primitive.NewObjectID()
	return user, nil
}

func (s *stubUserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.user, nil
}

func (s *stubUserService) UpdateProfile(ctx context.Context, email string, fields map[string]interface{}) error {
	return s.getErr
}

func newUserRouter(svc service.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewUserHandler(svc)
	router.POST("/users", handler.CreateUser)
	router.GET("/users/:email", handler.GetUser)
	router.PATCH("/users/:email", handler.UpdateUser)
	return router
}

func TestCreateUserDuplicateReturns400(t *testing.T) {
	router := newUserRouter(&stubUserService{createErr: service.ErrUserAlreadyExists})

	body := `{"name":"Sky Chen","email":"sky@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate user, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "User already exists") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestCreateUserValidatesEmail(t *testing.T) {
	router := newUserRouter(&stubUserService{})

	body := `{"name":"Sky Chen","email":"not-an-email"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed email, got %d", w.Code)
	}
}

func TestGetUserNotFoundReturns404(t *testing.T) {
	router := newUserRouter(&stubUserService{getErr: service.ErrUserNotFound})

	req := httptest.NewRequest(http.MethodGet, "/users/ghost@example.com", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", w.Code)
	}
}

func TestGetUserOmitsSensitiveFields(t *testing.T) {
	router := newUserRouter(&stubUserService{user: &domain.User{
		ID:           primitive.NewObjectID(),
		Name:         "Sky Chen",
		Email:        "sky@example.com",
		PasswordHash: "should-never-leak",
		Role:         domain.RoleMember,
	}})

	req := httptest.NewRequest(http.MethodGet, "/users/sky@example.com", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "should-never-leak") {
		t.Fatal("response leaked the password hash")
	}
}
