package handlers

import (
	"log"
	"net/http"

	"github.com/ilyasseisov/flashcards/internal/services"
	"github.com/ilyasseisov/flashcards/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub         *ws.Hub
	quizService *services.QuizService
}

func NewWSHandler(hub *ws.Hub, quizService *services.QuizService) *WSHandler {
	return &WSHandler{hub: hub, quizService: quizService}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket godoc
// @Summary      WebSocket connection for quiz session updates
// @Description  Receive the session state after every transition
// @Tags         websocket
// @Param        token path string true "Session token"
// @Router       /ws/quiz/{token} [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Param("token")
	if _, err := h.quizService.GetState(token); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(token, conn)
	defer h.hub.RemoveConnection(token, conn)

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
