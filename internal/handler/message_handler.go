package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"roomlink/internal/response"
	"roomlink/internal/service"
)

// MessageHandler handles conversation and message endpoints.
type MessageHandler struct {
	messagingService service.MessagingService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messagingService service.MessagingService) *MessageHandler {
	return &MessageHandler{messagingService: messagingService}
}

// SendMessageRequest represents a message send request.
type SendMessageRequest struct {
	SenderID   uint   `json:"senderId" validate:"required"`
	ReceiverID uint   `json:"receiverId" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

// MarkAsReadRequest identifies the message to mark read.
type MarkAsReadRequest struct {
	MessageID uint `json:"messageId" validate:"required"`
}

// ListConversations godoc
// @Summary List a user's conversations with last message and unread count
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId query int true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /conversations [get]
func (h *MessageHandler) ListConversations(c echo.Context) error {
	userID, err := strconv.Atoi(c.QueryParam("userId"))
	if err != nil || userID <= 0 {
		return response.Fail(c, http.StatusBadRequest, "userId is required")
	}

	conversations, err := h.messagingService.ListConversations(c.Request().Context(), uint(userID))
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "conversations", conversations)
}

// History godoc
// @Summary Get a conversation's messages, oldest first
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param conversationId query int true "Conversation ID"
// @Param afterId query int false "Return only messages after this id"
// @Param limit query int false "Maximum messages to return"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /messages [get]
func (h *MessageHandler) History(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}

	conversationID, err := strconv.Atoi(c.QueryParam("conversationId"))
	if err != nil || conversationID <= 0 {
		return response.Fail(c, http.StatusBadRequest, "conversationId is required")
	}

	afterID := 0
	if raw := c.QueryParam("afterId"); raw != "" {
		if afterID, err = strconv.Atoi(raw); err != nil || afterID < 0 {
			return response.Fail(c, http.StatusBadRequest, "invalid afterId")
		}
	}
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
			return response.Fail(c, http.StatusBadRequest, "invalid limit")
		}
	}

	messages, err := h.messagingService.History(c.Request().Context(), uint(conversationID), claims.UserID, uint(afterID), limit)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "messages", messages)
}

// Send godoc
// @Summary Send a message, creating the conversation if needed
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SendMessageRequest true "Message data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /messages/send [post]
func (h *MessageHandler) Send(c echo.Context) error {
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}

	message, err := h.messagingService.SendMessage(c.Request().Context(), req.SenderID, req.ReceiverID, req.Content)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "message sent", message)
}

// MarkAsRead godoc
// @Summary Mark a message as read (idempotent)
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MarkAsReadRequest true "Message id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /messages/markAsRead [post]
func (h *MessageHandler) MarkAsRead(c echo.Context) error {
	var req MarkAsReadRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}

	message, err := h.messagingService.MarkRead(c.Request().Context(), req.MessageID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "message marked as read", message)
}
