package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rakhulsr/go-cosmetics/app/apperr"
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/repositories"
)

type BrandReviewSummary struct {
	Reviews       []models.BrandReview `json:"reviews"`
	AverageRating float64              `json:"average_rating"`
	ReviewCount   int64                `json:"review_count"`
}

type BrandReviewService struct {
	reviewRepo repositories.ReviewRepository
	userRepo   repositories.UserRepository
}

func NewBrandReviewService(reviewRepo repositories.ReviewRepository, userRepo repositories.UserRepository) *BrandReviewService {
	return &BrandReviewService{reviewRepo: reviewRepo, userRepo: userRepo}
}

func (s *BrandReviewService) Summary(ctx context.Context) (*BrandReviewSummary, error) {
	reviews, err := s.reviewRepo.ListBrand(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch brand reviews: %w", err)
	}
	avg, count, err := s.reviewRepo.BrandStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch brand review stats: %w", err)
	}
	return &BrandReviewSummary{Reviews: reviews, AverageRating: roundRating(avg), ReviewCount: count}, nil
}

func (s *BrandReviewService) Create(ctx context.Context, userID string, in ReviewInput) (*models.BrandReview, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, apperr.Validation("Rating must be between 1 and 5")
	}
	existing, err := s.reviewRepo.FindBrandByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check brand reviews: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("You have already submitted a brand review")
	}

	review := &models.BrandReview{UserID: userID, Rating: in.Rating, Comment: strings.TrimSpace(in.Comment)}
	if err := s.reviewRepo.CreateBrand(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to add brand review: %w", err)
	}
	review.UserName = "Anonymous"
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil && user != nil && user.Name != "" {
		review.UserName = user.Name
	}
	return review, nil
}

// ownedReview loads a brand review the caller may change: its author or an admin.
func (s *BrandReviewService) ownedReview(ctx context.Context, id, userID string, isAdmin bool) (*models.BrandReview, error) {
	review, err := s.reviewRepo.FindBrandByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load brand review: %w", err)
	}
	if review == nil {
		return nil, apperr.NotFound("Brand review not found")
	}
	if !isAdmin && review.UserID != userID {
		return nil, apperr.Forbidden("Not authorized to modify this review")
	}
	return review, nil
}

func (s *BrandReviewService) Update(ctx context.Context, id, userID string, isAdmin bool, in ReviewInput) (*models.BrandReview, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, apperr.Validation("Rating must be between 1 and 5")
	}
	review, err := s.ownedReview(ctx, id, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	review.Rating = in.Rating
	review.Comment = strings.TrimSpace(in.Comment)
	if err := s.reviewRepo.UpdateBrand(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update brand review: %w", err)
	}
	return review, nil
}

func (s *BrandReviewService) Delete(ctx context.Context, id, userID string, isAdmin bool) error {
	if _, err := s.ownedReview(ctx, id, userID, isAdmin); err != nil {
		return err
	}
	if err := s.reviewRepo.DeleteBrand(ctx, id); err != nil {
		return fmt.Errorf("failed to delete brand review: %w", err)
	}
	return nil
}
