package service

import (
	"context"
	"errors"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrForumPostNotFound = errors.New("forum post not found")
	ErrFeedbackNotFound  = errors.New("feedback not found")
	ErrInvalidVoteType   = errors.New("vote type must be upvotes or downvotes")
)

// CommunityService covers the append-only community features: reviews,
// forum posts with vote tallies, newsletter signups and feedback lookup.
type CommunityService interface {
	AddReview(ctx context.Context, review *domain.Review) (*domain.Review, error)
	ListReviews(ctx context.Context) ([]domain.Review, error)

	AddForumPost(ctx context.Context, post *domain.ForumPost) (*domain.ForumPost, error)
	ListForumPosts(ctx context.Context) ([]domain.ForumPost, error)
	GetForumPost(ctx context.Context, id primitive.ObjectID) (*domain.ForumPost, error)
	// Vote bumps one of the two tally fields. The field name is whitelisted
	// here so an arbitrary client string can never reach the $inc.
	Vote(ctx context.Context, id primitive.ObjectID, voteType string) error

	Subscribe(ctx context.Context, name, email string) (*domain.Subscriber, error)
	ListSubscribers(ctx context.Context) ([]domain.Subscriber, error)

	GetFeedbackByEmail(ctx context.Context, email string) (*domain.Feedback, error)
}

type communityService struct {
	reviewRepo     repository.ReviewRepository
	forumRepo      repository.ForumRepository
	newsletterRepo repository.NewsletterRepository
	feedbackRepo   repository.FeedbackRepository
}

// NewCommunityService creates a new instance of communityService.
func NewCommunityService(
	reviewRepo repository.ReviewRepository,
	forumRepo repository.ForumRepository,
	newsletterRepo repository.NewsletterRepository,
	feedbackRepo repository.FeedbackRepository,
) CommunityService {
	return &communityService{
		reviewRepo:     reviewRepo,
		forumRepo:      forumRepo,
		newsletterRepo: newsletterRepo,
		feedbackRepo:   feedbackRepo,
	}
}

func (s *communityService) AddReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	id, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		return nil, err
	}
	review.ID = id
	return review, nil
}

func (s *communityService) ListReviews(ctx context.Context) ([]domain.Review, error) {
	return s.reviewRepo.List(ctx)
}

func (s *communityService) AddForumPost(ctx context.Context, post *domain.ForumPost) (*domain.ForumPost, error) {
	if post == nil || post.Title == "" {
		return nil, errors.New("forum post title is required")
	}
	id, err := s.forumRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	post.ID = id
	return post, nil
}

func (s *communityService) ListForumPosts(ctx context.Context) ([]domain.ForumPost, error) {
	return s.forumRepo.List(ctx)
}

func (s *communityService) GetForumPost(ctx context.Context, id primitive.ObjectID) (*domain.ForumPost, error) {
	post, err := s.forumRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrForumPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *communityService) Vote(ctx context.Context, id primitive.ObjectID, voteType string) error {
	if voteType != "upvotes" && voteType != "downvotes" {
		return ErrInvalidVoteType
	}
	err := s.forumRepo.IncrementVote(ctx, id, voteType)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrForumPostNotFound
	}
	return err
}

func (s *communityService) Subscribe(ctx context.Context, name, email string) (*domain.Subscriber, error) {
	if email == "" {
		return nil, errors.New("subscriber email is required")
	}
	sub := &domain.Subscriber{Name: name, Email: email}
	id, err := s.newsletterRepo.Create(ctx, sub)
	if err != nil {
		return nil, err
	}
	sub.ID = id
	return sub, nil
}

func (s *communityService) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	return s.newsletterRepo.List(ctx)
}

func (s *communityService) GetFeedbackByEmail(ctx context.Context, email string) (*domain.Feedback, error) {
	feedback, err := s.feedbackRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return feedback, nil
}
