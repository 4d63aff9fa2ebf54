package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/personachat/server/internal/interfaces/httpserver/handlers"
)

func registerPersonaRoutes(router gin.IRoutes, handler *handlers.PersonaHandler) {
	router.GET("/personas", handler.List)
}
