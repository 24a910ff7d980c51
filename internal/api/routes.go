package api

import (
	"net/http"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"
	"fittrack/fitness-tracker/internal/storage"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler onto the router. Paths are root-level
// because the deployed frontend calls them without a version prefix.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	userService service.UserService,
	trainerService service.TrainerService,
	bookingService service.BookingService,
	catalogService service.CatalogService,
	communityService service.CommunityService,
	mediaStorage storage.MediaStorage,
) {

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	trainerHandler := NewTrainerHandler(trainerService)
	bookingHandler := NewBookingHandler(bookingService, communityService)
	catalogHandler := NewCatalogHandler(catalogService)
	communityHandler := NewCommunityHandler(communityService)
	mediaHandler := NewMediaHandler(mediaStorage)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Fitness Tracker Server is running")
	})
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// --- Auth ---
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/admin-login", authHandler.AdminLogin)
	}

	// --- Users ---
	router.POST("/users", userHandler.CreateUser)
	router.GET("/users/:email", userHandler.GetUser)
	router.PATCH("/users/:email", userHandler.UpdateUser)

	// --- Trainers ---
	router.GET("/trainers", trainerHandler.ListActive)
	router.POST("/trainers", trainerHandler.Apply)
	router.GET("/trainers/:id", trainerHandler.GetByID)
	router.GET("/trainer/:id", trainerHandler.GetProfileByID)
	router.GET("/trainer-profile/:email", trainerHandler.GetProfile)

	// --- Classes ---
	router.GET("/classes", catalogHandler.ListClasses)
	router.POST("/classes", catalogHandler.AddClass)
	router.GET("/classes/:id", catalogHandler.GetClassDetail)

	// --- Slots & Payments ---
	router.GET("/all-slots", bookingHandler.ListAllSlots)
	router.DELETE("/slots/:id", bookingHandler.RemoveSlot)
	router.POST("/trainer-slots/:email", bookingHandler.AddTrainerSlots)
	router.POST("/create-payment-intent", bookingHandler.CreatePaymentIntent)
	router.POST("/payments", bookingHandler.SavePayment)
	router.GET("/booked-trainers", bookingHandler.ListBookedTrainers)

	// --- Community ---
	router.POST("/reviews", communityHandler.AddReview)
	router.GET("/reviews", communityHandler.ListReviews)
	router.POST("/forums", communityHandler.AddForumPost)
	router.GET("/forums", communityHandler.ListForumPosts)
	router.GET("/forums/:id", communityHandler.GetForumPost)
	router.POST("/forums/:id/vote", communityHandler.Vote)
	router.POST("/newsletter/subscribe", communityHandler.Subscribe)
	router.GET("/newsletter/subscribers", communityHandler.ListSubscribers)
	router.GET("/feedback/:email", communityHandler.GetFeedback)

	// --- Media (authenticated users only) ---
	media := router.Group("/media")
	media.Use(authMiddleware)
	{
		media.POST("/upload-url", mediaHandler.CreateUploadURL)
		media.GET("/download-url", mediaHandler.CreateDownloadURL)
		media.DELETE("/object/*key", mediaHandler.DeleteObject)
	}

	// --- Admin ---
	admin := router.Group("")
	admin.Use(authMiddleware, RoleMiddleware(domain.RoleAdmin))
	{
		admin.GET("/pending-trainers", trainerHandler.ListPending)
		admin.GET("/all-trainers", trainerHandler.ListApplications)
		admin.PATCH("/trainers/:id", trainerHandler.UpdateStatus)
		admin.PATCH("/trainers/:id/reject", trainerHandler.Reject)
		admin.DELETE("/trainers/:id", trainerHandler.Remove)
		admin.GET("/admin/dashboard-stats", bookingHandler.DashboardStats)
	}
}
