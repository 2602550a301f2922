package controllers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/servicehub/servicehub-api/models"
	"github.com/servicehub/servicehub-api/utils"
)

// AuthController owns signup, login and account-profile operations.
type AuthController struct {
	DB        *gorm.DB
	Mailer    *utils.Mailer
	Uploader  *utils.Uploader
	JWTSecret string
}

func NewAuthController(conn *gorm.DB, mailer *utils.Mailer, uploader *utils.Uploader, jwtSecret string) *AuthController {
	return &AuthController{DB: conn, Mailer: mailer, Uploader: uploader, JWTSecret: jwtSecret}
}

type signupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Signup creates a client account, emails a verification code and issues a
// session token.
func (a *AuthController) Signup(c *fiber.Ctx) error {
	input := new(signupInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}

	if input.Name == "" || input.Email == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "All fields are required",
		})
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existingUser models.User
	if a.DB.Where("email = ?", email).First(&existingUser).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "User with this email already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to hash password",
			Error:   err.Error(),
		})
	}

	user := models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Password:     string(hashedPassword),
		Phone:        strings.TrimSpace(input.Phone),
		IsProvider:   false,
		OTP:          utils.GenerateOTP(),
		OTPExpiresAt: time.Now().Add(15 * time.Minute),
	}

	if err := a.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error during signup",
			Error:   err.Error(),
		})
	}

	emailBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to ServiceHub! Use the code below to verify your email address.</p>
		<p><strong>%s</strong></p>
		<p>The code expires in 15 minutes.</p>
	`, user.Name, user.OTP)
	if err := a.Mailer.Send(user.Email, "Verify your ServiceHub email", emailBody); err != nil {
		log.Printf("Failed to send verification email to %s: %v", user.Email, err)
	}

	token, err := a.issueToken(&user, false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"token":   token,
		"user": fiber.Map{
			"id":           user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"phone":        user.Phone,
			"isProvider":   false,
			"profileImage": "",
		},
	})
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user. The provider flag in the token reflects
// whether a provider profile exists, not the possibly stale user column.
func (a *AuthController) Login(c *fiber.Ctx) error {
	input := new(loginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}

	if input.Email == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Email and password are required",
		})
	}

	var user models.User
	if a.DB.Where("email = ?", strings.ToLower(input.Email)).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid email or password",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid email or password",
		})
	}

	var provider models.Provider
	isProvider := a.DB.Where("user_id = ?", user.ID).First(&provider).RowsAffected > 0

	token, err := a.issueToken(&user, isProvider)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user": fiber.Map{
			"id":           user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"phone":        user.Phone,
			"isProvider":   isProvider,
			"profileImage": user.ProfileImage,
		},
	})
}

// Me returns the current user's profile.
func (a *AuthController) Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := a.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":           user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"phone":        user.Phone,
			"district":     user.District,
			"profileImage": user.ProfileImage,
			"isVerified":   user.IsVerified,
		},
	})
}

// UpdateProfile changes name/phone and optionally replaces the profile
// image via a multipart upload.
func (a *AuthController) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := a.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	updateData := map[string]interface{}{}
	if name := c.FormValue("name"); name != "" {
		updateData["name"] = name
	}
	if phone := c.FormValue("phone"); phone != "" {
		updateData["phone"] = phone
	}

	if file, err := c.FormFile("profileImage"); err == nil {
		f, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Failed to read profile image",
			})
		}
		defer f.Close()

		publicID := fmt.Sprintf("user_%d_profile", userID)
		secureURL, err := a.Uploader.Upload(c.Context(), f, publicID, "profile_pictures", true)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to upload profile image",
			})
		}
		updateData["profile_image"] = secureURL
	}

	if len(updateData) > 0 {
		if err := a.DB.Model(&user).Updates(updateData).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Update failed",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user": fiber.Map{
			"id":           user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"phone":        user.Phone,
			"profileImage": user.ProfileImage,
		},
	})
}

type districtInput struct {
	District string `json:"district"`
}

// AddDistrict sets the client's district. A district is required before the
// first booking can be placed.
func (a *AuthController) AddDistrict(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(districtInput)
	if err := c.BodyParser(input); err != nil || input.District == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "District is required",
		})
	}

	if err := a.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("district", input.District).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update district",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "District updated",
	})
}

type verifyEmailInput struct {
	OTP string `json:"otp"`
}

// VerifyEmail checks the signup code and flips the verified flag.
func (a *AuthController) VerifyEmail(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(verifyEmailInput)
	if err := c.BodyParser(input); err != nil || input.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "OTP is required",
		})
	}

	var user models.User
	if err := a.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	if user.OTP == "" || user.OTP != input.OTP || time.Now().After(user.OTPExpiresAt) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid or expired OTP",
		})
	}

	updates := map[string]interface{}{"is_verified": true, "otp": ""}
	if err := a.DB.Model(&user).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to verify email",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Email verified",
	})
}

func (a *AuthController) issueToken(user *models.User, isProvider bool) (string, error) {
	claims := jwt.MapClaims{
		"id":         user.ID,
		"email":      user.Email,
		"isProvider": isProvider,
		"exp":        time.Now().Add(7 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.JWTSecret))
}
