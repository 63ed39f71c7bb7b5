package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/app/services"
	"github.com/edusphere/edusphere/internal/middleware"
	"github.com/edusphere/edusphere/internal/pkg/helpers"
)

// MessageController handles direct message operations
type MessageController struct {
	messageService *services.MessageService
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService *services.MessageService) *MessageController {
	return &MessageController{messageService: messageService}
}

// SendMessage sends a direct message to another user
// @Summary Send a direct message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendDirectMessageRequest true "Message information"
// @Success 201 {object} dto.APIResponse{data=models.DirectMessage} "Message sent successfully"
// @Failure 400 {object} dto.ErrorResponse "Cannot message yourself"
// @Failure 404 {object} dto.ErrorResponse "Receiver not found"
// @Router /messages [post]
func (c *MessageController) SendMessage(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.SendDirectMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	message, err := c.messageService.Send(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(message))
}

// GetMessage retrieves a message visible to the authenticated user
// @Summary Get message by ID
// @Description Reading a received message marks it as read
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse{data=models.DirectMessage} "Message retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Router /messages/{id} [get]
func (c *MessageController) GetMessage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	message, err := c.messageService.Get(ctx, id, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(message))
}

// Inbox retrieves the authenticated user's received messages
// @Summary List inbox
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread messages"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Messages retrieved successfully"
// @Router /messages/inbox [get]
func (c *MessageController) Inbox(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	unreadOnly, _ := strconv.ParseBool(ctx.DefaultQuery("unread", "false"))
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	messages, total, err := c.messageService.Inbox(ctx, userID, unreadOnly, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{
		Items:      messages,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// Sent retrieves the authenticated user's sent messages
// @Summary List sent messages
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Messages retrieved successfully"
// @Router /messages/sent [get]
func (c *MessageController) Sent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	messages, total, err := c.messageService.Sent(ctx, userID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{
		Items:      messages,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// Conversation retrieves the message thread with another user
// @Summary List conversation
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Other user ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Messages retrieved successfully"
// @Router /messages/conversations/{userId} [get]
func (c *MessageController) Conversation(ctx *gin.Context) {
	otherID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	messages, total, err := c.messageService.Conversation(ctx, userID, otherID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{
		Items:      messages,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// MarkMessageRead marks a received message as read
// @Summary Mark a message read
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse "Message marked as read"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Router /messages/{id}/read [post]
func (c *MessageController) MarkMessageRead(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.messageService.MarkRead(ctx, id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Message marked as read", nil))
}

// DeleteMessage hides a message for the authenticated user
// @Summary Delete a direct message
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 204 "Message deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Router /messages/{id} [delete]
func (c *MessageController) DeleteMessage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.messageService.Delete(ctx, id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
