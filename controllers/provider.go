package controllers

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/servicehub/servicehub-api/cache"
	"github.com/servicehub/servicehub-api/models"
	"github.com/servicehub/servicehub-api/utils"
)

// ProviderController owns provider registration, discovery, the
// availability template and the earnings ledger.
type ProviderController struct {
	DB       *gorm.DB
	Uploader *utils.Uploader
	Cache    *cache.AvailabilityCache
}

func NewProviderController(conn *gorm.DB, uploader *utils.Uploader, availability *cache.AvailabilityCache) *ProviderController {
	return &ProviderController{DB: conn, Uploader: uploader, Cache: availability}
}

// Register creates the provider profile for the authenticated user and flips
// the user's provider flag. One profile per user.
func (p *ProviderController) Register(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := p.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	var existing models.Provider
	if p.DB.Where("user_id = ?", userID).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Provider profile already exists",
		})
	}

	category := strings.TrimSpace(c.FormValue("category"))
	district := strings.TrimSpace(c.FormValue("district"))
	education := strings.TrimSpace(c.FormValue("education"))
	experience := strings.TrimSpace(c.FormValue("experience"))
	if category == "" || district == "" || education == "" || experience == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "category, district, education and experience are required",
		})
	}

	provider := models.Provider{
		UserID:           userID,
		Category:         category,
		District:         district,
		Education:        education,
		Experience:       experience,
		WorkImages:       models.StringList{},
		WorkingDays:      models.StringList{},
		UnavailableDates: models.StringList{},
		StartTime:        "09:00",
		EndTime:          "17:00",
	}

	if file, err := c.FormFile("profileImage"); err == nil {
		url, err := p.uploadImage(c, file, fmt.Sprintf("provider_%d_profile", userID), "provider_profiles", true)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to upload profile image",
				Error:   err.Error(),
			})
		}
		provider.ProfileImage = url
	}

	if form, err := c.MultipartForm(); err == nil {
		workFiles := form.File["workImages"]
		if len(workFiles) > 5 {
			workFiles = workFiles[:5]
		}
		for _, workFile := range workFiles {
			url, err := p.uploadImage(c, workFile, utils.GenerateUploadID(fmt.Sprintf("provider_%d_work", userID)), "work_images", false)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
					Message: "Failed to upload work image",
					Error:   err.Error(),
				})
			}
			provider.WorkImages = append(provider.WorkImages, url)
		}
	}

	err := p.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&provider).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("is_provider", true).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create provider profile",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Provider profile created successfully",
		"provider": provider,
	})
}

func (p *ProviderController) uploadImage(c *fiber.Ctx, file *multipart.FileHeader, publicID, folder string, thumbnail bool) (string, error) {
	allowedTypes := map[string]bool{"image/jpeg": true, "image/png": true}
	if !allowedTypes[file.Header.Get("Content-Type")] {
		return "", fmt.Errorf("only JPEG/PNG images are allowed")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return p.Uploader.Upload(c.Context(), f, publicID, folder, thumbnail)
}

// ByCategory lists providers in a category. The URL slug is hyphenated
// lowercase; stored categories are Title Case.
func (p *ProviderController) ByCategory(c *fiber.Ctx) error {
	categoryName := titleCase(strings.ReplaceAll(c.Params("categoryName"), "-", " "))

	var providers []models.Provider
	if err := p.DB.Preload("User").Where("category = ?", categoryName).Find(&providers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error",
		})
	}

	providerList := make([]fiber.Map, 0, len(providers))
	for _, provider := range providers {
		providerList = append(providerList, fiber.Map{
			"id":           provider.ID,
			"name":         provider.User.Name,
			"profileImage": provider.ProfileImage,
			"district":     provider.District,
			"education":    provider.Education,
			"experience":   provider.Experience,
			"category":     provider.Category,
			"workImages":   provider.WorkImages,
			"rating":       provider.Rating,
			"reviewCount":  provider.ReviewCount,
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"count":     len(providerList),
		"providers": providerList,
	})
}

// ProfileView is the public provider profile.
func (p *ProviderController) ProfileView(c *fiber.Ctx) error {
	var provider models.Provider
	if err := p.DB.Preload("User").First(&provider, c.Params("providerId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Provider not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"provider": fiber.Map{
			"id":           provider.ID,
			"name":         provider.User.Name,
			"profileImage": provider.ProfileImage,
			"category":     provider.Category,
			"district":     provider.District,
			"education":    provider.Education,
			"experience":   provider.Experience,
			"workImages":   provider.WorkImages,
			"rating":       provider.Rating,
			"reviewCount":  provider.ReviewCount,
		},
	})
}

// GetProfile returns the authenticated provider's own profile, including
// the availability template the public view omits.
func (p *ProviderController) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var provider models.Provider
	if err := p.DB.Preload("User").Where("user_id = ?", userID).First(&provider).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Provider profile not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"provider": fiber.Map{
			"id":               provider.ID,
			"name":             provider.User.Name,
			"category":         provider.Category,
			"district":         provider.District,
			"education":        provider.Education,
			"experience":       provider.Experience,
			"profileImage":     provider.ProfileImage,
			"workImages":       provider.WorkImages,
			"workingDays":      provider.WorkingDays,
			"startTime":        provider.StartTime,
			"endTime":          provider.EndTime,
			"unavailableDates": provider.UnavailableDates,
			"rating":           provider.Rating,
			"reviewCount":      provider.ReviewCount,
		},
	})
}

type availabilityInput struct {
	WorkingDays      []string `json:"workingDays"`
	StartTime        string   `json:"startTime"`
	EndTime          string   `json:"endTime"`
	UnavailableDates []string `json:"unavailableDates"`
}

var weekdayNames = map[string]bool{
	"Sunday": true, "Monday": true, "Tuesday": true, "Wednesday": true,
	"Thursday": true, "Friday": true, "Saturday": true,
}

// UpdateAvailability replaces the provider's schedule template and blackout
// dates. Blackout changes alter what booking creation will accept, so the
// cached availability entry is dropped.
func (p *ProviderController) UpdateAvailability(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var provider models.Provider
	if err := p.DB.Where("user_id = ?", userID).First(&provider).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Provider profile not found",
		})
	}

	input := new(availabilityInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Cannot parse JSON",
		})
	}

	for _, day := range input.WorkingDays {
		if !weekdayNames[day] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": fmt.Sprintf("invalid working day %q", day),
			})
		}
	}

	startTime, err := time.Parse("15:04", input.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "startTime must be HH:MM",
		})
	}
	endTime, err := time.Parse("15:04", input.EndTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "endTime must be HH:MM",
		})
	}
	if !startTime.Before(endTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "startTime must be before endTime",
		})
	}

	for _, day := range input.UnavailableDates {
		if _, err := time.Parse(utils.DateLayout, day); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": fmt.Sprintf("invalid date %q", day),
			})
		}
	}

	updates := map[string]interface{}{
		"working_days":      models.StringList(input.WorkingDays),
		"start_time":        input.StartTime,
		"end_time":          input.EndTime,
		"unavailable_dates": models.StringList(input.UnavailableDates),
	}
	if err := p.DB.Model(&provider).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save availability",
		})
	}

	p.Cache.Invalidate(c.Context(), provider.ID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Availability updated successfully",
	})
}

// ListEarnings returns the provider's ledger, newest first.
func (p *ProviderController) ListEarnings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var provider models.Provider
	if err := p.DB.Where("user_id = ?", userID).First(&provider).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Provider profile not found",
		})
	}

	var earnings []models.Earning
	if err := p.DB.Where("provider_id = ?", provider.ID).
		Order("date DESC").Find(&earnings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch earnings",
		})
	}

	var total float64
	for _, earning := range earnings {
		total += earning.Amount
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"earnings": earnings,
		"total":    total,
	})
}

type earningInput struct {
	Amount    float64 `json:"amount"`
	PayerName string  `json:"payerName"`
	Date      string  `json:"date"`
	Note      string  `json:"note"`
}

// AddEarning appends one ledger entry. Entries are never edited or removed.
func (p *ProviderController) AddEarning(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var provider models.Provider
	if err := p.DB.Where("user_id = ?", userID).First(&provider).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Provider profile not found",
		})
	}

	input := new(earningInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Cannot parse JSON",
		})
	}

	if input.Amount <= 0 || input.PayerName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "A positive amount and payer name are required",
		})
	}

	date := time.Now()
	if input.Date != "" {
		parsed, err := utils.ParseDate(input.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid date",
			})
		}
		date = parsed
	}

	earning := models.Earning{
		ProviderID: provider.ID,
		Amount:     input.Amount,
		PayerName:  input.PayerName,
		Date:       date,
		Note:       input.Note,
	}
	if err := p.DB.Create(&earning).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to record earning",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"earning": earning,
	})
}

// titleCase capitalizes the first letter of each space-separated word, so
// the URL slug "interior-design" matches the stored "Interior Design".
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// parseProviderID converts a path parameter into a provider id.
func parseProviderID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	return uint(id), err
}
