package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/personachat/server/internal/domain/conversation"
	"github.com/personachat/server/internal/domain/user"
	"github.com/personachat/server/internal/infrastructure/auth"
	"github.com/personachat/server/internal/infrastructure/metrics"
	"github.com/personachat/server/internal/interfaces/httpserver/dto"
	"github.com/personachat/server/internal/utils/apperrors"
)

// ConversationHandler exposes the conversation listing, fetch and delete
// endpoints. All of them sit behind the required-auth gate.
type ConversationHandler struct {
	users         user.Repository
	conversations conversation.Repository
	log           zerolog.Logger
}

// NewConversationHandler constructs the handler.
func NewConversationHandler(users user.Repository, conversations conversation.Repository, log zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		users:         users,
		conversations: conversations,
		log:           log.With().Str("handler", "conversation").Logger(),
	}
}

// List handles GET /v1/conversations
// @Summary List conversations
// @Description Returns the caller's newest conversations, most recently updated first.
// @Tags Conversations
// @Produce json
// @Success 200 {array} dto.ConversationSummary
// @Failure 401 {object} apperrors.HTTPErrorResponse
// @Router /v1/conversations [get]
func (h *ConversationHandler) List(c *gin.Context) {
	identity := auth.Identity(c)
	if identity == nil {
		apperrors.WriteUnauthorized(c, "missing identity")
		return
	}

	// An identity that has never sent a persisted turn has no user row yet;
	// that renders as an empty sidebar, not an error.
	owner, err := h.users.FindByExternalID(c.Request.Context(), identity.Subject)
	if err != nil {
		metrics.ConversationOpsTotal.WithLabelValues("list", "error").Inc()
		apperrors.WriteError(c, err, h.log)
		return
	}
	if owner == nil {
		c.JSON(http.StatusOK, []dto.ConversationSummary{})
		return
	}

	summaries, err := h.conversations.ListByUser(c.Request.Context(), owner.ID)
	if err != nil {
		metrics.ConversationOpsTotal.WithLabelValues("list", "error").Inc()
		apperrors.WriteError(c, err, h.log)
		return
	}

	metrics.ConversationOpsTotal.WithLabelValues("list", "ok").Inc()
	c.JSON(http.StatusOK, dto.FromSummaries(summaries))
}

// Get handles GET /v1/conversations/:conversation_id
// @Summary Fetch a conversation transcript
// @Tags Conversations
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Success 200 {object} dto.ConversationPayload
// @Failure 404 {object} apperrors.HTTPErrorResponse
// @Router /v1/conversations/{conversation_id} [get]
func (h *ConversationHandler) Get(c *gin.Context) {
	conv, err := h.conversations.GetByPublicID(c.Request.Context(), c.Param("conversation_id"))
	if err != nil {
		metrics.ConversationOpsTotal.WithLabelValues("get", "error").Inc()
		apperrors.WriteError(c, err, h.log)
		return
	}

	metrics.ConversationOpsTotal.WithLabelValues("get", "ok").Inc()
	c.JSON(http.StatusOK, dto.FromConversation(conv))
}

// Delete handles DELETE /v1/conversations/:conversation_id
// @Summary Delete a conversation
// @Description Removes the conversation and its messages. Only the owner can delete.
// @Tags Conversations
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} apperrors.HTTPErrorResponse
// @Router /v1/conversations/{conversation_id} [delete]
func (h *ConversationHandler) Delete(c *gin.Context) {
	identity := auth.Identity(c)
	if identity == nil {
		apperrors.WriteUnauthorized(c, "missing identity")
		return
	}

	owner, err := h.users.FindByExternalID(c.Request.Context(), identity.Subject)
	if err != nil {
		metrics.ConversationOpsTotal.WithLabelValues("delete", "error").Inc()
		apperrors.WriteError(c, err, h.log)
		return
	}
	if owner == nil {
		apperrors.WriteNotFound(c, "conversation not found")
		return
	}

	if err := h.conversations.DeleteOwned(c.Request.Context(), c.Param("conversation_id"), owner.ID); err != nil {
		metrics.ConversationOpsTotal.WithLabelValues("delete", "error").Inc()
		apperrors.WriteError(c, err, h.log)
		return
	}

	metrics.ConversationOpsTotal.WithLabelValues("delete", "ok").Inc()
	c.JSON(http.StatusOK, dto.DeleteResponse{Success: true})
}
