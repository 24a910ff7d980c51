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

// CommunityHandler covers reviews, the forum, newsletter signups and
// feedback lookup.
type CommunityHandler struct {
	communityService service.CommunityService
}

// NewCommunityHandler creates a new CommunityHandler.
func NewCommunityHandler(communityService service.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

// --- DTOs ---

type AddReviewRequest struct {
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment" binding:"required"`
}

type AddForumPostRequest struct {
	Title   string      `json:"title" binding:"required"`
	Content string      `json:"content"`
	Author  string      `json:"author"`
	Role    domain.Role `json:"role"`
}

type VoteRequest struct {
	VoteType string `json:"voteType" binding:"required"`
}

type SubscribeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,email"`
}

// --- Reviews ---

// AddReview handles POST /reviews.
func (h *CommunityHandler) AddReview(c *gin.Context) {
	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	review, err := h.communityService.AddReview(c.Request.Context(), &domain.Review{
		UserEmail: req.UserEmail,
		UserName:  req.UserName,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save review")
		return
	}
	c.JSON(http.StatusCreated, review)
}

// ListReviews handles GET /reviews.
func (h *CommunityHandler) ListReviews(c *gin.Context) {
	reviews, err := h.communityService.ListReviews(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

// --- Forum ---

// AddForumPost handles POST /forums.
func (h *CommunityHandler) AddForumPost(c *gin.Context) {
	var req AddForumPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	post, err := h.communityService.AddForumPost(c.Request.Context(), &domain.ForumPost{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
		Role:    req.Role,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save forum post")
		return
	}
	c.JSON(http.StatusCreated, post)
}

// ListForumPosts handles GET /forums.
func (h *CommunityHandler) ListForumPosts(c *gin.Context) {
	posts, err := h.communityService.ListForumPosts(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch forum posts")
		return
	}
	if posts == nil {
		posts = []domain.ForumPost{}
	}
	c.JSON(http.StatusOK, posts)
}

// GetForumPost handles GET /forums/:id.
func (h *CommunityHandler) GetForumPost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid forum post ID format")
		return
	}

	post, err := h.communityService.GetForumPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrForumPostNotFound) {
			abortWithError(c, http.StatusNotFound, "Forum post not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch forum post")
		}
		return
	}
	c.JSON(http.StatusOK, post)
}

// Vote handles POST /forums/:id/vote.
func (h *CommunityHandler) Vote(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid forum post ID format")
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err = h.communityService.Vote(c.Request.Context(), id, req.VoteType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidVoteType):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrForumPostNotFound):
			abortWithError(c, http.StatusNotFound, "Forum post not found")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to record vote")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vote recorded successfully"})
}

// --- Newsletter ---

// Subscribe handles POST /newsletter/subscribe.
func (h *CommunityHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	sub, err := h.communityService.Subscribe(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to subscribe")
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// ListSubscribers handles GET /newsletter/subscribers.
func (h *CommunityHandler) ListSubscribers(c *gin.Context) {
	subs, err := h.communityService.ListSubscribers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch subscribers")
		return
	}
	if subs == nil {
		subs = []domain.Subscriber{}
	}
	c.JSON(http.StatusOK, subs)
}

// --- Feedback ---

// GetFeedback handles GET /feedback/:email: the most recent feedback note
// left for the given user, e.g. a trainer rejection reason.
func (h *CommunityHandler) GetFeedback(c *gin.Context) {
	feedback, err := h.communityService.GetFeedbackByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, service.ErrFeedbackNotFound) {
			abortWithError(c, http.StatusNotFound, "Feedback not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch feedback")
		}
		return
	}
	c.JSON(http.StatusOK, feedback)
}
