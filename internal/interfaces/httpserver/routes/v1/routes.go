package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/personachat/server/internal/infrastructure/auth"
	"github.com/personachat/server/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers  *handlers.Provider
	validator *auth.Validator
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider, validator *auth.Validator) *Routes {
	return &Routes{
		handlers:  handlerProvider,
		validator: validator,
	}
}

// Register attaches all v1 routes under the /v1 prefix. The chat route sees
// identity when present but never rejects guests; the conversation routes
// require a valid token.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/v1")

	registerPersonaRoutes(group, r.handlers.Persona)
	registerChatRoutes(group.Group("", r.validator.OptionalAuth()), r.handlers.Chat)
	registerConversationRoutes(group.Group("", r.validator.RequireAuth()), r.handlers.Conversation)
}
