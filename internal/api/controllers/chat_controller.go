package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vivubot/internal/models/request_models"
	"vivubot/internal/services"
	"vivubot/pkg/utils"
)

type ChatController struct {
	chatService services.ChatServiceInterface
}

func NewChatController(chatService services.ChatServiceInterface) *ChatController {
	return &ChatController{chatService: chatService}
}

// SaveMessage godoc
// @Summary Append a message to a chat session
// @Description Creates the session on first use. userId is attached the first time it is supplied.
// @Tags Chat
// @Accept json
// @Produce json
// @Param body body request_models.SaveMessageRequest true "Message"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/chat/save-message [post]
func (h *ChatController) SaveMessage(c *gin.Context) {
	var req request_models.SaveMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.UserID == "" {
		req.UserID = c.GetString(utils.UserIDKey)
	}

	if err := h.chatService.SaveMessage(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Message saved")
}

// GetHistory godoc
// @Summary Get the messages of a session
// @Tags Chat
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} response_models.ChatHistoryResponse
// @Router /api/chat/history/{sessionId} [get]
func (h *ChatController) GetHistory(c *gin.Context) {
	history, err := h.chatService.GetHistory(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, history, "History fetched successfully")
}

// ListSessions godoc
// @Summary List chat sessions, newest first
// @Tags Chat
// @Produce json
// @Param userId query string false "Owner; defaults to the bearer identity"
// @Success 200 {object} response_models.ChatSessionsResponse
// @Router /api/chat/sessions [get]
func (h *ChatController) ListSessions(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = c.GetString(utils.UserIDKey)
	}

	sessions, err := h.chatService.ListSessions(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, sessions, "Sessions fetched successfully")
}

// DeleteSession godoc
// @Summary Delete a chat session and its messages
// @Tags Chat
// @Param sessionId path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/chat/sessions/{sessionId} [delete]
func (h *ChatController) DeleteSession(c *gin.Context) {
	if err := h.chatService.DeleteSession(c.Request.Context(), c.Param("sessionId")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Session deleted")
}
