package services

import (
	"testing"

	"github.com/Lebronlang/Boardify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRequiresApprovedStay(t *testing.T) {
	db, reg, _ := newTestRegistry(t)
	landlord := seedUser(t, db, models.RoleLandlord)
	tenant := seedUser(t, db, models.RoleTenant)
	property := seedProperty(t, db, landlord.ID, 3000, 5)

	_, err := reg.Reviews.Submit(tenant.ID, property.ID, 4, "decent place")
	assert.ErrorIs(t, err, ErrNotEligible)

	booking, err := reg.Bookings.Create(tenant.ID, property.ID, "2025-01-01", "2025-02-01")
	require.NoError(t, err)

	// Pending does not unlock the review form.
	_, err = reg.Reviews.Submit(tenant.ID, property.ID, 4, "decent place")
	assert.ErrorIs(t, err, ErrNotEligible)

	_, err = reg.Bookings.Approve(booking.ID, landlord.ID)
	require.NoError(t, err)

	review, err := reg.Reviews.Submit(tenant.ID, property.ID, 4, "decent place")
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)

	_, err = reg.Reviews.Submit(tenant.ID, property.ID, 5, "changed my mind")
	assert.ErrorIs(t, err, ErrDuplicateReview)
}

func TestReviewRatingBounds(t *testing.T) {
	db, reg, _ := newTestRegistry(t)
	landlord := seedUser(t, db, models.RoleLandlord)
	tenant := seedUser(t, db, models.RoleTenant)
	property := seedProperty(t, db, landlord.ID, 3000, 5)

	_, err := reg.Reviews.Submit(tenant.ID, property.ID, 0, "")
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = reg.Reviews.Submit(tenant.ID, property.ID, 6, "")
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestReviewEditAndDelete(t *testing.T) {
	db, reg, _ := newTestRegistry(t)
	landlord := seedUser(t, db, models.RoleLandlord)
	tenant := seedUser(t, db, models.RoleTenant)
	stranger := seedUser(t, db, models.RoleTenant)
	admin := seedUser(t, db, models.RoleAdmin)
	property := seedProperty(t, db, landlord.ID, 3000, 5)

	booking, err := reg.Bookings.Create(tenant.ID, property.ID, "2025-01-01", "2025-02-01")
	require.NoError(t, err)
	_, err = reg.Bookings.Approve(booking.ID, landlord.ID)
	require.NoError(t, err)

	review, err := reg.Reviews.Submit(tenant.ID, property.ID, 3, "ok")
	require.NoError(t, err)

	_, err = reg.Reviews.Edit(review.ID, stranger.ID, 1, "sabotage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	edited, err := reg.Reviews.Edit(review.ID, tenant.ID, 5, "grew on me")
	require.NoError(t, err)
	assert.Equal(t, 5, edited.Rating)

	assert.ErrorIs(t, reg.Reviews.Delete(review.ID, stranger.ID, false), ErrUnauthorized)
	require.NoError(t, reg.Reviews.Delete(review.ID, admin.ID, true))
	assert.ErrorIs(t, reg.Reviews.Delete(review.ID, admin.ID, true), ErrNotFound)
}

func TestRatingSummaryIsComputedAtReadTime(t *testing.T) {
	db, reg, _ := newTestRegistry(t)
	landlord := seedUser(t, db, models.RoleLandlord)
	property := seedProperty(t, db, landlord.ID, 3000, 5)

	ratings := []int{5, 4, 2}
	for _, rating := range ratings {
		tenant := seedUser(t, db, models.RoleTenant)
		booking, err := reg.Bookings.Create(tenant.ID, property.ID, "2025-01-01", "2025-02-01")
		require.NoError(t, err)
		_, err = reg.Bookings.Approve(booking.ID, landlord.ID)
		require.NoError(t, err)
		_, err = reg.Reviews.Submit(tenant.ID, property.ID, rating, "")
		require.NoError(t, err)
	}

	reviews, summary, err := reg.Reviews.ListForProperty(property.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 3)
	assert.Equal(t, 3, summary.ReviewCount)
	assert.InDelta(t, 11.0/3.0, summary.AverageRating, 1e-9)
}

func TestReviewEligibility(t *testing.T) {
	db, reg, _ := newTestRegistry(t)
	landlord := seedUser(t, db, models.RoleLandlord)
	tenant := seedUser(t, db, models.RoleTenant)
	property := seedProperty(t, db, landlord.ID, 3000, 5)

	canReview, hasReview, err := reg.Reviews.Eligibility(tenant.ID, property.ID)
	require.NoError(t, err)
	assert.False(t, canReview)
	assert.False(t, hasReview)

	booking, err := reg.Bookings.Create(tenant.ID, property.ID, "2025-01-01", "2025-02-01")
	require.NoError(t, err)
	_, err = reg.Bookings.Approve(booking.ID, landlord.ID)
	require.NoError(t, err)

	canReview, hasReview, err = reg.Reviews.Eligibility(tenant.ID, property.ID)
	require.NoError(t, err)
	assert.True(t, canReview)
	assert.False(t, hasReview)

	_, err = reg.Reviews.Submit(tenant.ID, property.ID, 5, "")
	require.NoError(t, err)

	canReview, hasReview, err = reg.Reviews.Eligibility(tenant.ID, property.ID)
	require.NoError(t, err)
	assert.False(t, canReview)
	assert.True(t, hasReview)
}
