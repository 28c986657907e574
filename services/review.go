package services

import (
	"errors"

	"github.com/Lebronlang/Boardify/models"

	"gorm.io/gorm"
)

// ReviewService gates review submission behind an approved stay: one review
// per tenant per property, rating 1 to 5.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

func (s *ReviewService) Submit(tenantID, propertyID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	var property models.Property
	if err := s.db.First(&property, propertyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var approved int64
	if err := s.db.Model(&models.Booking{}).
		Where("property_id = ? AND tenant_id = ? AND status = ?",
			propertyID, tenantID, models.BookingStatusApproved).
		Count(&approved).Error; err != nil {
		return nil, err
	}
	if approved == 0 {
		return nil, ErrNotEligible
	}

	var existing models.Review
	err := s.db.Where("property_id = ? AND tenant_id = ?", propertyID, tenantID).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateReview
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := models.Review{
		PropertyID: propertyID,
		TenantID:   tenantID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// Edit lets the authoring tenant change rating and comment.
func (s *ReviewService) Edit(reviewID, tenantID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if review.TenantID != tenantID {
		return nil, ErrUnauthorized
	}

	review.Rating = rating
	review.Comment = comment
	if err := s.db.Model(&models.Review{}).Where("id = ?", review.ID).
		Updates(map[string]interface{}{"rating": rating, "comment": comment}).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes a review. The authoring tenant may delete their own; admins
// may delete any.
func (s *ReviewService) Delete(reviewID, actorID uint, isAdmin bool) error {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	if review.TenantID != actorID && !isAdmin {
		return ErrUnauthorized
	}
	return s.db.Delete(&review).Error
}

// RatingSummary is the read-time aggregate for a property; the mean is never
// stored on the property row.
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

func (s *ReviewService) ListForProperty(propertyID uint) ([]models.Review, *RatingSummary, error) {
	var reviews []models.Review
	if err := s.db.Preload("Tenant").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, nil, err
	}

	summary := RatingSummary{ReviewCount: len(reviews)}
	if len(reviews) > 0 {
		var total float64
		for _, r := range reviews {
			total += float64(r.Rating)
		}
		summary.AverageRating = total / float64(len(reviews))
	}
	return reviews, &summary, nil
}

// Eligibility reports whether the tenant could submit a review right now.
func (s *ReviewService) Eligibility(tenantID, propertyID uint) (canReview, hasReview bool, err error) {
	var approved int64
	if err := s.db.Model(&models.Booking{}).
		Where("property_id = ? AND tenant_id = ? AND status = ?",
			propertyID, tenantID, models.BookingStatusApproved).
		Count(&approved).Error; err != nil {
		return false, false, err
	}

	var existing models.Review
	findErr := s.db.Where("property_id = ? AND tenant_id = ?", propertyID, tenantID).
		First(&existing).Error
	if findErr == nil {
		hasReview = true
	} else if !errors.Is(findErr, gorm.ErrRecordNotFound) {
		return false, false, findErr
	}

	return approved > 0 && !hasReview, hasReview, nil
}
