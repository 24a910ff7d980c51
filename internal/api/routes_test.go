package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Minimal service stubs so SetupRoutes can be exercised end to end.

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return &domain.User{ID: primitive.NewObjectID(), Name: name, Email: email, Role: domain.RoleMember}, nil
}

func (stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return "", nil, service.ErrAuthenticationFailed
}

func (stubAuthService) AdminLogin(ctx context.Context, email, password string) (string, *domain.User, error) {
	return "", nil, service.ErrAuthenticationFailed
}

type stubBookingService struct{}

func (stubBookingService) AddSlots(ctx context.Context, trainerEmail string, days []string, slotTime string, classes []string) error {
	return nil
}

func (stubBookingService) ListAllSlots(ctx context.Context) ([]domain.TrainerSlot, error) {
	return []domain.TrainerSlot{}, nil
}

func (stubBookingService) RemoveSlot(ctx context.Context, slotID string) error { return nil }

func (stubBookingService) CreateIntent(ctx context.Context, req service.IntentRequest) (*service.IntentResult, error) {
	return &service.IntentResult{IntentID: "pi_stub", ClientSecret: "cs_stub"}, nil
}

func (stubBookingService) ConfirmPayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	return p, nil
}

func (stubBookingService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return nil, nil
}

func (stubBookingService) ExpireReservations(ctx context.Context) (int64, error) { return 0, nil }

type stubCatalogService struct{}

func (stubCatalogService) List(ctx context.Context) ([]domain.Class, error) { return nil, nil }

func (stubCatalogService) Add(ctx context.Context, class *domain.Class) (*domain.Class, error) {
	class.ID = primitive.NewObjectID()
	return class, nil
}

func (stubCatalogService) GetDetail(ctx context.Context, id primitive.ObjectID) (*service.ClassDetail, error) {
	return nil, service.ErrClassNotFound
}

type stubCommunityService struct {
	subscribeCalls int
}

func (s *stubCommunityService) AddReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	return review, nil
}

func (s *stubCommunityService) ListReviews(ctx context.Context) ([]domain.Review, error) {
	return nil, nil
}

func (s *stubCommunityService) AddForumPost(ctx context.Context, post *domain.ForumPost) (*domain.ForumPost, error) {
	return post, nil
}

func (s *stubCommunityService) ListForumPosts(ctx context.Context) ([]domain.ForumPost, error) {
	return nil, nil
}

func (s *stubCommunityService) GetForumPost(ctx context.Context, id primitive.ObjectID) (*domain.ForumPost, error) {
	return nil, service.ErrForumPostNotFound
}

func (s *stubCommunityService) Vote(ctx context.Context, id primitive.ObjectID, voteType string) error {
	return nil
}

func (s *stubCommunityService) Subscribe(ctx context.Context, name, email string) (*domain.Subscriber, error) {
	s.subscribeCalls++
	return &domain.Subscriber{ID: primitive.NewObjectID(), Name: name, Email: email}, nil
}

func (s *stubCommunityService) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	return []domain.Subscriber{}, nil
}

func (s *stubCommunityService) GetFeedbackByEmail(ctx context.Context, email string) (*domain.Feedback, error) {
	return nil, service.ErrFeedbackNotFound
}

func newAppRouter(trainer *domain.Trainer) (*gin.Engine, *stubCommunityService) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	community := &stubCommunityService{}
	SetupRoutes(
		router,
		"test-secret-do-not-use",
		stubAuthService{},
		&stubUserService{},
		&stubTrainerService{trainer: trainer},
		stubBookingService{},
		stubCatalogService{},
		community,
		&fakeMediaStorage{},
	)
	return router, community
}

func TestNewsletterRoutesMatchFrontendPaths(t *testing.T) {
	router, community := newAppRouter(nil)

	body := `{"name":"Sky Chen","email":"sky@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/newsletter/subscribe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("POST /newsletter/subscribe: expected 201, got %d", w.Code)
	}
	if community.subscribeCalls != 1 {
		t.Fatalf("expected 1 subscribe call, got %d", community.subscribeCalls)
	}

	req = httptest.NewRequest(http.MethodGet, "/newsletter/subscribers", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /newsletter/subscribers: expected 200, got %d", w.Code)
	}
}

func TestBareTrainerDocumentRoute(t *testing.T) {
	trainer := &domain.Trainer{
		ID:       primitive.NewObjectID(),
		FullName: "Jordan Li",
		Email:    "jordan@example.com",
		Status:   domain.TrainerActive,
	}
	router, _ := newAppRouter(trainer)

	req := httptest.NewRequest(http.MethodGet, "/trainer/"+trainer.ID.Hex(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /trainer/:id: expected 200, got %d", w.Code)
	}

	// The bare route returns the document itself, no success envelope.
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if _, hasEnvelope := body["success"]; hasEnvelope {
		t.Fatal("bare trainer route must not wrap the document in an envelope")
	}
	if body["email"] != "jordan@example.com" {
		t.Fatalf("unexpected document: %v", body)
	}
}

func TestMediaRoutesRequireAuth(t *testing.T) {
	router, _ := newAppRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/media/download-url?key=media/u/pic.png", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", w.Code)
	}
}
