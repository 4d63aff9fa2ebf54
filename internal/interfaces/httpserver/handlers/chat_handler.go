package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/personachat/server/internal/domain/chat"
	"github.com/personachat/server/internal/domain/llm"
	"github.com/personachat/server/internal/infrastructure/auth"
	"github.com/personachat/server/internal/interfaces/httpserver/dto"
	"github.com/personachat/server/internal/utils/apperrors"
)

// ChatHandler exposes the turn submission endpoint.
type ChatHandler struct {
	service chat.Service
	log     zerolog.Logger
}

// NewChatHandler constructs the handler.
func NewChatHandler(service chat.Service, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log.With().Str("handler", "chat").Logger(),
	}
}

// Send handles POST /v1/chat
// @Summary Submit a chat turn
// @Description Generates a persona reply. Signed-in turns are persisted; guest turns are not.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat turn"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} apperrors.HTTPErrorResponse
// @Router /v1/chat [post]
func (h *ChatHandler) Send(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.WriteValidationError(c, err.Error())
		return
	}

	params := chat.TurnParams{
		Messages: make([]llm.ChatMessage, 0, len(req.Messages)),
		Persona:  req.Persona,
		Identity: auth.Identity(c),
	}
	for _, m := range req.Messages {
		params.Messages = append(params.Messages, llm.ChatMessage{Role: m.Role, Content: m.Content})
	}
	if req.ConversationID != nil {
		params.ConversationID = *req.ConversationID
	}

	result, err := h.service.SendTurn(c.Request.Context(), params)
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}

	// Guest turns echo back whatever conversation_id the client supplied;
	// persisted turns carry the server-issued one.
	c.JSON(http.StatusOK, dto.ChatResponse{
		Reply:          result.Reply,
		ConversationID: result.ConversationID,
	})
}
