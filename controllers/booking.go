package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/servicehub/servicehub-api/cache"
	"github.com/servicehub/servicehub-api/models"
	"github.com/servicehub/servicehub-api/utils"
)

// BookingController owns booking creation, the public availability calendar
// and the status transitions.
type BookingController struct {
	DB     *gorm.DB
	Cache  *cache.AvailabilityCache
	Mailer *utils.Mailer
}

func NewBookingController(conn *gorm.DB, availability *cache.AvailabilityCache, mailer *utils.Mailer) *BookingController {
	return &BookingController{DB: conn, Cache: availability, Mailer: mailer}
}

// Availability returns every non-cancelled booking range for a provider.
// Cancelled bookings are excluded so their days become bookable again.
// Served from Redis when a fresh entry exists.
func (b *BookingController) Availability(c *fiber.Ctx) error {
	providerID, err := parseProviderID(c, "providerId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid provider id",
		})
	}

	if ranges, ok := b.Cache.Get(c.Context(), providerID); ok {
		return c.JSON(fiber.Map{
			"success":     true,
			"bookedDates": ranges,
		})
	}

	var bookings []models.Booking
	if err := b.DB.Where("provider_id = ? AND status <> ?", providerID, models.StatusCancelled).
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error",
		})
	}

	ranges := make([]cache.BookedRange, 0, len(bookings))
	for _, booking := range bookings {
		ranges = append(ranges, cache.BookedRange{
			Start: booking.DateRange.Start,
			End:   booking.DateRange.End,
		})
	}

	if err := b.Cache.Set(c.Context(), providerID, ranges); err != nil {
		log.Printf("Failed to cache availability for provider %d: %v", providerID, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"bookedDates": ranges,
	})
}

type createBookingInput struct {
	ProviderID   uint            `json:"providerId"`
	SelectedDate json.RawMessage `json:"selectedDate"`
	IsLongTerm   bool            `json:"isLongTerm"`
}

// Create places a pending booking over the requested day range. The
// requested range is re-checked against pending/confirmed bookings inside
// the transaction, under a row lock, so two concurrent requests for the
// same days cannot both succeed.
func (b *BookingController) Create(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(createBookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Cannot parse JSON",
		})
	}

	start, end, err := parseSelectedDate(input.SelectedDate, input.IsLongTerm)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	var provider models.Provider
	if err := b.DB.Preload("User").First(&provider, input.ProviderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Provider not found",
		})
	}

	booking := models.Booking{
		UserID:     userID,
		ProviderID: provider.ID,
		DateRange:  models.DateRange{Start: start, End: end},
		Status:     models.StatusPending,
	}

	err = b.DB.Transaction(func(tx *gorm.DB) error {
		available, err := utils.CheckDateAvailability(tx, &provider, start, end)
		if err != nil {
			return err
		}
		if !available {
			return errDatesTaken
		}
		return tx.Create(&booking).Error
	})
	if err == errDatesTaken {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Selected dates are no longer available",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error",
		})
	}

	b.Cache.Invalidate(c.Context(), provider.ID)
	b.notify(provider.User.Email, "New booking request",
		fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>You have a new booking request for %s to %s.</p>
			<p>Open your dashboard to accept or decline it.</p>
		`, provider.User.Name,
			booking.DateRange.Start.Format(utils.DateLayout),
			booking.DateRange.End.Format(utils.DateLayout)))

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Booking created",
	})
}

var errDatesTaken = fmt.Errorf("dates taken")

// parseSelectedDate normalizes the booking form input: a single ISO date
// for short jobs, a [start, end] pair for long-term ones. Single-day
// bookings get start == end.
func parseSelectedDate(raw json.RawMessage, isLongTerm bool) (time.Time, time.Time, error) {
	if len(raw) == 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("selectedDate is required")
	}

	if isLongTerm {
		var pair []string
		if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
			return time.Time{}, time.Time{}, fmt.Errorf("selectedDate must be a [start, end] pair")
		}
		start, err := utils.ParseDate(pair[0])
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := utils.ParseDate(pair[1])
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, fmt.Errorf("end date precedes start date")
		}
		return start, end, nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("selectedDate must be a date string")
	}
	day, err := utils.ParseDate(single)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day, day, nil
}

// MyBookings lists the authenticated client's bookings with provider
// display data, newest range first.
func (b *BookingController) MyBookings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var bookings []models.Booking
	if err := b.DB.Preload("Provider.User").Where("user_id = ?", userID).
		Order("range_start DESC").Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error",
		})
	}

	formatted := make([]fiber.Map, 0, len(bookings))
	for _, booking := range bookings {
		formatted = append(formatted, fiber.Map{
			"id":        booking.ID,
			"dateRange": booking.DateRange,
			"status":    booking.Status,
			"provider": fiber.Map{
				"id":           booking.Provider.ID,
				"name":         booking.Provider.User.Name,
				"profileImage": booking.Provider.ProfileImage,
				"category":     booking.Provider.Category,
				"district":     booking.Provider.District,
			},
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"bookings": formatted,
	})
}

// Cancel transitions a client's own booking to cancelled. Ownership
// mismatches and illegal transitions both surface as NotFound.
func (b *BookingController) Cancel(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var booking models.Booking
	if err := b.DB.Where("id = ? AND user_id = ?", c.Params("bookingId"), userID).
		First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Booking not found",
		})
	}

	if err := booking.UpdateStatus(b.DB, models.StatusCancelled); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Booking not found",
		})
	}

	b.Cache.Invalidate(c.Context(), booking.ProviderID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Booking cancelled",
	})
}

// Accept lets the owning provider confirm a pending booking.
func (b *BookingController) Accept(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var provider models.Provider
	if err := b.DB.Where("user_id = ?", userID).First(&provider).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Provider profile not found",
		})
	}

	var booking models.Booking
	if err := b.DB.Preload("User").
		Where("id = ? AND provider_id = ? AND status = ?",
			c.Params("bookingId"), provider.ID, models.StatusPending).
		First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Booking not found",
		})
	}

	if err := booking.UpdateStatus(b.DB, models.StatusConfirmed); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Booking not found",
		})
	}

	b.notify(booking.User.Email, "Booking confirmed",
		fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Your booking for %s to %s has been confirmed.</p>
		`, booking.User.Name,
			booking.DateRange.Start.Format(utils.DateLayout),
			booking.DateRange.End.Format(utils.DateLayout)))

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Booking accepted",
	})
}

// Complete lets the owning client close out a confirmed booking.
func (b *BookingController) Complete(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var booking models.Booking
	if err := b.DB.Where("id = ? AND user_id = ? AND status = ?",
		c.Params("bookingId"), userID, models.StatusConfirmed).
		First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Booking not found or not confirmed",
		})
	}

	if err := booking.UpdateStatus(b.DB, models.StatusCompleted); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Booking not found or not confirmed",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Job marked as completed!",
	})
}

// ProviderBookings is the provider's dashboard view: all bookings with
// client display data, the expanded occupied-day overlay and the current
// rating aggregate. Cancelled bookings stay in the list but are excluded
// from the overlay.
func (b *BookingController) ProviderBookings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var provider models.Provider
	if err := b.DB.Where("user_id = ?", userID).First(&provider).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Provider profile not found",
		})
	}

	var bookings []models.Booking
	if err := b.DB.Preload("User").Where("provider_id = ?", provider.ID).
		Order("created_at DESC").Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error",
		})
	}

	active := make([]models.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.Status != models.StatusCancelled {
			active = append(active, booking)
		}
	}
	bookedDates := utils.ExpandDailyOccupancy(active)

	formatted := make([]fiber.Map, 0, len(bookings))
	for _, booking := range bookings {
		district := "N/A"
		if booking.User.District != nil {
			district = *booking.User.District
		}
		formatted = append(formatted, fiber.Map{
			"id":        booking.ID,
			"dateRange": booking.DateRange,
			"status":    booking.Status,
			"client": fiber.Map{
				"name":         booking.User.Name,
				"profileImage": booking.User.ProfileImage,
				"phone":        booking.User.Phone,
				"district":     district,
			},
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"bookings":    formatted,
		"bookedDates": bookedDates,
		"rating":      provider.Rating,
		"reviewCount": provider.ReviewCount,
	})
}

// ProviderStats computes the dashboard numbers for the authenticated
// provider.
func (b *BookingController) ProviderStats(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var provider models.Provider
	if err := b.DB.Where("user_id = ?", userID).First(&provider).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Provider profile not found",
		})
	}

	var bookings []models.Booking
	if err := b.DB.Where("provider_id = ?", provider.ID).Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats":   BuildProviderStats(bookings, time.Now()),
	})
}

func (b *BookingController) notify(to, subject, body string) {
	if to == "" {
		return
	}
	if err := b.Mailer.Send(to, subject, body); err != nil {
		log.Printf("Failed to send %q email to %s: %v", subject, to, err)
	}
}
