package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/servicehub/servicehub-api/models"
)

// ReviewController owns review submission and listing. The provider's
// rating aggregate is a stored (sum, count) pair bumped in the same
// transaction as each insert, so concurrent reviews never compute a stale
// average.
type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(conn *gorm.DB) *ReviewController {
	return &ReviewController{DB: conn}
}

type reviewInput struct {
	BookingID  uint   `json:"bookingId"`
	ProviderID uint   `json:"providerId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// Submit records a review for a completed booking. Eligibility: the booking
// must belong to the reviewing client, reference the reviewed provider and
// be completed. One review per booking per client.
func (r *ReviewController) Submit(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(reviewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Cannot parse JSON",
		})
	}

	review := models.Review{
		BookingID:  input.BookingID,
		ProviderID: input.ProviderID,
		ClientID:   userID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := review.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	var booking models.Booking
	if err := r.DB.Where("id = ? AND user_id = ? AND provider_id = ? AND status = ?",
		input.BookingID, userID, input.ProviderID, models.StatusCompleted).
		First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Booking not found or not completed",
		})
	}

	exists, err := review.HasExistingReview(r.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error",
		})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Already reviewed",
		})
	}

	err = r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return tx.Model(&models.Provider{}).Where("id = ?", input.ProviderID).
			Updates(map[string]interface{}{
				"rating_sum":   gorm.Expr("rating_sum + ?", review.Rating),
				"review_count": gorm.Expr("review_count + 1"),
			}).Error
	})
	if err != nil {
		// The unique index catches a duplicate that slipped past the
		// pre-check under concurrency.
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Already reviewed",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Thank you for your review!",
	})
}

// ListForProvider returns a provider's reviews, newest first, with reviewer
// display names.
func (r *ReviewController) ListForProvider(c *fiber.Ctx) error {
	providerID, err := parseProviderID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid provider id",
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	var reviews []models.Review
	if err := r.DB.Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch reviews",
		})
	}

	var total int64
	r.DB.Model(&models.Review{}).Where("provider_id = ?", providerID).Count(&total)

	clientIDs := make([]uint, 0, len(reviews))
	for _, review := range reviews {
		clientIDs = append(clientIDs, review.ClientID)
	}
	clientNames := map[uint]string{}
	if len(clientIDs) > 0 {
		var clients []models.User
		r.DB.Select("id, name").Where("id IN ?", clientIDs).Find(&clients)
		for _, client := range clients {
			clientNames[client.ID] = client.Name
		}
	}

	formatted := make([]fiber.Map, 0, len(reviews))
	for _, review := range reviews {
		formatted = append(formatted, fiber.Map{
			"id":         review.ID,
			"rating":     review.Rating,
			"comment":    review.Comment,
			"createdAt":  review.CreatedAt,
			"clientName": clientNames[review.ClientID],
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"reviews": formatted,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}
