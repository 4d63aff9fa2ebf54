package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/personachat/server/internal/domain/persona"
	"github.com/personachat/server/internal/interfaces/httpserver/dto"
)

// PersonaHandler exposes the persona catalog.
type PersonaHandler struct {
	log zerolog.Logger
}

// NewPersonaHandler constructs the handler.
func NewPersonaHandler(log zerolog.Logger) *PersonaHandler {
	return &PersonaHandler{
		log: log.With().Str("handler", "persona").Logger(),
	}
}

// List handles GET /v1/personas
// @Summary List selectable personas
// @Tags Personas
// @Produce json
// @Success 200 {array} dto.PersonaPayload
// @Router /v1/personas [get]
func (h *PersonaHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromPersonas(persona.All()))
}
