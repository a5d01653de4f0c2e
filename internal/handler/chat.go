package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"trading-assistant/internal/assistant"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

const maxMessageLength = 4000

type ChatRequest struct {
	ConversationID string `json:"conversation_id" binding:"required"`
	UserName       string `json:"user_name"`
	Message        string `json:"message" binding:"required"`
}

// Chat godoc
// @Summary      Send a chat message
// @Description  Routes the message to tokenomics, prediction, news, portfolio or chat and returns the assistant turn
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request  body  ChatRequest  true  "Chat message"
// @Success      200  {object}  domain.ConversationTurn
// @Failure      400  {object}  map[string]string
// @Router       /api/chat [post]
func (h *Handler) Chat(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.chat")
	defer span.End()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conversation_id and message are required"})
		return
	}
	if len(req.Message) > maxMessageLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message too long"})
		return
	}
	span.SetAttributes(attribute.String("conversation.id", req.ConversationID))

	userName := strings.TrimSpace(req.UserName)
	if userName == "" {
		userName = "there"
	}

	turn, err := h.Assistant.Handle(ctx, req.ConversationID, userName, req.Message)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, assistant.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, turn)
}

// GetConversation godoc
// @Summary      Conversation history
// @Description  Returns the most recent turns of a conversation, oldest first
// @Tags         chat
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id     path   string  true   "Conversation ID"
// @Param        limit  query  int     false  "Number of turns (max 20)"  default(20)
// @Success      200  {object}  map[string]interface{}
// @Router       /api/conversations/{id} [get]
func (h *Handler) GetConversation(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-conversation")
	defer span.End()

	id := c.Param("id")
	span.SetAttributes(attribute.String("conversation.id", id))

	limit := assistant.MaxHistoryMessages
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	turns, err := h.Assistant.History(ctx, id, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"conversation_id": id,
		"turns":           turns,
	})
}
