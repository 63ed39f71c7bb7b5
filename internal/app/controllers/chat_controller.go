package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/app/services"
	"github.com/edusphere/edusphere/internal/middleware"
)

// ChatController handles chat room and message operations
type ChatController struct {
	chatService *services.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// CreateRoom creates a chat room with the authenticated user as admin
// @Summary Create a chat room
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateChatRoomRequest true "Room information"
// @Success 201 {object} dto.APIResponse{data=models.ChatRoom} "Room created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Internship or participant not found"
// @Router /chat/rooms [post]
func (c *ChatController) CreateRoom(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateChatRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	room, err := c.chatService.CreateRoom(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(room))
}

// ListRooms retrieves the authenticated user's chat rooms
// @Summary List own chat rooms
// @Description Rooms are ordered by most recent activity
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ChatRoom} "Rooms retrieved successfully"
// @Router /chat/rooms [get]
func (c *ChatController) ListRooms(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	rooms, err := c.chatService.ListRooms(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(rooms))
}

// GetRoom retrieves a chat room with its participants
// @Summary Get chat room by ID
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} dto.APIResponse{data=models.ChatRoom} "Room retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Router /chat/rooms/{id} [get]
func (c *ChatController) GetRoom(ctx *gin.Context) {
	roomID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	room, err := c.chatService.GetRoom(ctx, roomID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(room))
}

// AddParticipant adds a user to a chat room
// @Summary Add a participant
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param request body dto.AddParticipantRequest true "Participant information"
// @Success 200 {object} dto.APIResponse "Participant added successfully"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Failure 404 {object} dto.ErrorResponse "Room or user not found"
// @Router /chat/rooms/{id}/participants [post]
func (c *ChatController) AddParticipant(ctx *gin.Context) {
	roomID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.AddParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.chatService.AddParticipant(ctx, roomID, userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Participant added successfully", nil))
}

// LeaveRoom removes the authenticated user from a chat room
// @Summary Leave a chat room
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} dto.APIResponse "Left room successfully"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Router /chat/rooms/{id}/leave [post]
func (c *ChatController) LeaveRoom(ctx *gin.Context) {
	roomID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.chatService.LeaveRoom(ctx, roomID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Left room successfully", nil))
}

// SendMessage posts a message to a chat room
// @Summary Send a chat message
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param request body dto.SendChatMessageRequest true "Message content"
// @Success 201 {object} dto.APIResponse{data=models.ChatMessage} "Message sent successfully"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Router /chat/rooms/{id}/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	roomID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.SendChatMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	message, err := c.chatService.SendMessage(ctx, roomID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(message))
}

// ListMessages retrieves a room's message history, newest first
// @Summary List chat messages
// @Description Use the before cursor to page further back in history
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param before query string false "Return messages sent before this RFC 3339 timestamp"
// @Param limit query int false "Maximum number of messages" default(50)
// @Success 200 {object} dto.APIResponse{data=[]models.ChatMessage} "Messages retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Router /chat/rooms/{id}/messages [get]
func (c *ChatController) ListMessages(ctx *gin.Context) {
	roomID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var before *time.Time
	if beforeStr := ctx.Query("before"); beforeStr != "" {
		parsed, err := time.Parse(time.RFC3339, beforeStr)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid before cursor")
			errorDetail = errorDetail.WithDetails("before must be an RFC 3339 timestamp")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		before = &parsed
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	messages, err := c.chatService.ListMessages(ctx, roomID, userID, before, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(messages))
}
