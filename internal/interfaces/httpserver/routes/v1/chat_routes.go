package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/personachat/server/internal/interfaces/httpserver/handlers"
)

func registerChatRoutes(router gin.IRoutes, handler *handlers.ChatHandler) {
	router.POST("/chat", handler.Send)
}
