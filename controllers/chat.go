package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/servicehub/servicehub-api/models"
)

// ChatController relays messages between clients and providers. Threads are
// identified by the (provider, client) pair; clients poll for new messages.
type ChatController struct {
	DB *gorm.DB
}

func NewChatController(conn *gorm.DB) *ChatController {
	return &ChatController{DB: conn}
}

// ClientThread returns the authenticated client's conversation with a
// provider in insertion order.
func (ch *ChatController) ClientThread(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	providerID, err := parseProviderID(c, "providerId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid provider id",
		})
	}

	var provider models.Provider
	if err := ch.DB.First(&provider, providerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Provider not found",
		})
	}

	var messages []models.Message
	if err := ch.DB.Where("provider_id = ? AND client_id = ?", providerID, userID).
		Order("created_at ASC").Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"messages": messages,
	})
}

type clientMessageInput struct {
	ProviderID uint   `json:"providerId"`
	Message    string `json:"message"`
}

// ClientSend appends a client message to the thread with a provider.
func (ch *ChatController) ClientSend(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(clientMessageInput)
	if err := c.BodyParser(input); err != nil || strings.TrimSpace(input.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Message text is required",
		})
	}

	var provider models.Provider
	if err := ch.DB.First(&provider, input.ProviderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Provider not found",
		})
	}

	msg := models.Message{
		ProviderID: provider.ID,
		ClientID:   userID,
		Body:       input.Message,
		Sender:     models.SenderClient,
	}
	if err := ch.DB.Create(&msg).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to send message",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": msg,
	})
}

// ProviderConversations rolls up the provider's threads to the latest
// message per client.
func (ch *ChatController) ProviderConversations(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var provider models.Provider
	if err := ch.DB.Where("user_id = ?", userID).First(&provider).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Provider profile not found",
		})
	}

	var messages []models.Message
	if err := ch.DB.Where("provider_id = ?", provider.ID).
		Order("created_at DESC").Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error",
		})
	}

	clients := ch.usersByID(messageClientIDs(messages))

	seen := map[uint]bool{}
	conversations := []fiber.Map{}
	for _, msg := range messages {
		if seen[msg.ClientID] {
			continue
		}
		seen[msg.ClientID] = true

		client := clients[msg.ClientID]
		conversations = append(conversations, fiber.Map{
			"clientId":    msg.ClientID,
			"clientName":  client.Name,
			"clientImage": client.ProfileImage,
			"lastMessage": msg.Body,
			"lastTime":    msg.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"conversations": conversations,
	})
}

// ProviderThread returns the provider's conversation with one client.
func (ch *ChatController) ProviderThread(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var provider models.Provider
	if err := ch.DB.Where("user_id = ?", userID).First(&provider).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Provider profile not found",
		})
	}

	var messages []models.Message
	if err := ch.DB.Where("provider_id = ? AND client_id = ?", provider.ID, c.Params("clientId")).
		Order("created_at ASC").Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"messages": messages,
	})
}

type providerReplyInput struct {
	ClientID uint   `json:"clientId"`
	Message  string `json:"message"`
}

// ProviderReply appends a provider message to the thread with a client.
func (ch *ChatController) ProviderReply(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var provider models.Provider
	if err := ch.DB.Where("user_id = ?", userID).First(&provider).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Provider profile not found",
		})
	}

	input := new(providerReplyInput)
	if err := c.BodyParser(input); err != nil || strings.TrimSpace(input.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Message text is required",
		})
	}

	msg := models.Message{
		ProviderID: provider.ID,
		ClientID:   input.ClientID,
		Body:       input.Message,
		Sender:     models.SenderProvider,
	}
	if err := ch.DB.Create(&msg).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to send message",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": msg,
	})
}

// ClientConversations rolls up the client's threads to the latest message
// per provider.
func (ch *ChatController) ClientConversations(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var messages []models.Message
	if err := ch.DB.Where("client_id = ?", userID).
		Order("created_at DESC").Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error",
		})
	}

	providerIDs := make([]uint, 0, len(messages))
	for _, msg := range messages {
		providerIDs = append(providerIDs, msg.ProviderID)
	}

	providers := map[uint]models.Provider{}
	if len(providerIDs) > 0 {
		var rows []models.Provider
		ch.DB.Preload("User").Where("id IN ?", providerIDs).Find(&rows)
		for _, row := range rows {
			providers[row.ID] = row
		}
	}

	seen := map[uint]bool{}
	conversations := []fiber.Map{}
	for _, msg := range messages {
		if seen[msg.ProviderID] {
			continue
		}
		seen[msg.ProviderID] = true

		provider := providers[msg.ProviderID]
		conversations = append(conversations, fiber.Map{
			"providerId":    msg.ProviderID,
			"providerName":  provider.User.Name,
			"providerImage": provider.ProfileImage,
			"lastMessage":   msg.Body,
			"lastTime":      msg.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"conversations": conversations,
	})
}

func (ch *ChatController) usersByID(ids []uint) map[uint]models.User {
	users := map[uint]models.User{}
	if len(ids) == 0 {
		return users
	}

	var rows []models.User
	ch.DB.Where("id IN ?", ids).Find(&rows)
	for _, row := range rows {
		users[row.ID] = row
	}
	return users
}

func messageClientIDs(messages []models.Message) []uint {
	ids := make([]uint, 0, len(messages))
	for _, msg := range messages {
		ids = append(ids, msg.ClientID)
	}
	return ids
}
